// internal/service/product/domain/port/sales.go
package port

import "context"

// SalesClient 按商品ID查询关联的销售单。
// 实现负责把协作方的原始失败翻译成本服务的错误分类，不向上泄漏。
type SalesClient interface {
	FindSalesByProductID(ctx context.Context, productID int) ([]string, error)
}
