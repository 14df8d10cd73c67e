// internal/service/product/domain/port/guard.go
package port

import "context"

// ReservationGuard 记录已处理过的 salesId。
// broker 是 at-least-once 投递，worker 在扣减提交后、ack 前崩溃会导致重投；
// 没有这层防护，同一笔销售会被扣减两次。
type ReservationGuard interface {
	AlreadyProcessed(ctx context.Context, salesID string) (bool, error)
	MarkProcessed(ctx context.Context, salesID string) error
}
