// internal/service/product/domain/port/confirmation.go
package port

import (
	"context"

	"catalog/internal/service/product/domain"
)

// ConfirmationPublisher 把销售确认事件发往 broker。
// 对调用方而言是 fire-and-forget：实现必须吞掉并记录发送失败，
// 绝不把错误抛回预留编排流程。
type ConfirmationPublisher interface {
	Publish(ctx context.Context, event domain.SalesConfirmationEvent)
}
