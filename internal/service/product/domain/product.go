// internal/service/product/domain/product.go
package domain

import "time"

// Product 是库存的持久化主体。
// QuantityAvailable 永远不允许为负，所有扣减都必须经过仓储的原子批量操作。
type Product struct {
	ID                int
	Name              string
	SupplierID        int
	CategoryID        int
	QuantityAvailable int
	CreatedAt         time.Time
}

// UpdateStock 在内存中扣减库存。调用前必须已经通过可用量校验。
func (p *Product) UpdateStock(quantity int) {
	p.QuantityAvailable -= quantity
}

// Category 仅作为查询协作方存在，维护操作不在本服务核心范围内。
type Category struct {
	ID          int
	Description string
}

type Supplier struct {
	ID   int
	Name string
}
