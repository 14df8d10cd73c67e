// internal/service/product/domain/repository.go
package domain

import "context"

// ProductRepository 是库存存储的抽象。
type ProductRepository interface {
	FindByID(ctx context.Context, id int) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)

	// FindByName 按名称模糊匹配，大小写不敏感。
	FindByName(ctx context.Context, name string) ([]Product, error)

	// DecrementStockBatch 在一个事务中对一批商品执行扣减。
	// 任意一行查不到或库存不足时整批回滚，存储保持原状；
	// 全部通过时一次性提交并返回更新后的商品。
	// 实现必须用行级锁防止两个并发预留基于同一份旧读数双双通过校验。
	DecrementStockBatch(ctx context.Context, items []ProductQuantity) ([]Product, error)
}
