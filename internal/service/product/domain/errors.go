// internal/service/product/domain/errors.go
package domain

import "fmt"

// 本服务的错误分类：
//   - ValidationError: 请求结构/字段缺失，未触达存储
//   - NotFoundError:   引用的实体不存在
//   - OutOfStockError: 请求数量超过可用库存，携带出问题的商品ID
//   - PublishError:    确认消息发送时 broker 不可达
// 同步接口直接把错误原因返回给调用方；异步路径在编排层捕获并转为 REJECTED 确认。

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewProductNotFoundError() *NotFoundError {
	return &NotFoundError{Message: "There's no product for the given ID."}
}

type OutOfStockError struct {
	ProductID int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("The product %d is out of stock.", e.ProductID)
}

type PublishError struct {
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish confirmation event: %v", e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
