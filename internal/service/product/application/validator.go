// internal/service/product/application/validator.go
package application

import "catalog/internal/service/product/domain"

// validateProductStockEvent 对入站预留请求做纯结构校验，不访问存储、无副作用。
// 对同一个非法请求重复调用永远得到同一类错误。
func validateProductStockEvent(event *domain.ProductStockEvent) error {
	if event == nil || event.SalesID == "" {
		return domain.NewValidationError("The product data and the sales ID must be informed.")
	}
	if len(event.Products) == 0 {
		return domain.NewValidationError("The sales products must be informed.")
	}
	for _, item := range event.Products {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return domain.NewValidationError("The productID and the quantity must be informed.")
		}
	}
	return nil
}
