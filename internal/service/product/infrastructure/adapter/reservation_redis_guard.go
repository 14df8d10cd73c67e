// internal/service/product/infrastructure/adapter/reservation_redis_guard.go
package adapter

import (
	"context"
	"time"

	"catalog/internal/pkg/redis"
)

const (
	processedKeyPrefix = "reservation:processed:"
	// 重投递只会发生在消息仍在 broker 里的窗口内，记录无需永久保留
	processedKeyTTL = 7 * 24 * time.Hour
)

// ReservationRedisGuard 用 Redis 记录已处理的 salesId，
// 作为 at-least-once 投递下防止重复扣减的幂等防护。
type ReservationRedisGuard struct {
	client *redis.Client
}

func NewReservationRedisGuard(client *redis.Client) *ReservationRedisGuard {
	return &ReservationRedisGuard{client: client}
}

func (g *ReservationRedisGuard) AlreadyProcessed(ctx context.Context, salesID string) (bool, error) {
	return g.client.Exists(ctx, processedKeyPrefix+salesID)
}

func (g *ReservationRedisGuard) MarkProcessed(ctx context.Context, salesID string) error {
	// key 已存在说明并发 worker 先标记了同一笔销售，同样视为成功
	_, err := g.client.SetNX(ctx, processedKeyPrefix+salesID, time.Now().UTC().Format(time.RFC3339), processedKeyTTL)
	return err
}
