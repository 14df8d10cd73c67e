// internal/service/product/infrastructure/adapter/confirmation_kafka_adapter.go
package adapter

import (
	"context"
	"encoding/json"

	"catalog/internal/pkg/logger"
	"catalog/internal/pkg/metrics"
	"catalog/internal/pkg/mq"
	"catalog/internal/service/product/domain"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// confirmationWriter 抽掉 kafka.Writer 的具体类型，便于测试替换。
type confirmationWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ConfirmationKafkaAdapter 把销售确认事件发往确认 topic，按 salesId 作为分区键。
// 对调用方是 fire-and-forget：发送失败记日志、计数后吞掉，不重试也不上抛。
// 这是一个刻意保留的薄弱点——broker 恰好在此刻不可达时，
// 这笔销售的结果会丢失，销售侧永远等不到确认，只能靠监控指标发现。
type ConfirmationKafkaAdapter struct {
	writer confirmationWriter
}

func NewConfirmationKafkaAdapter(writer confirmationWriter) *ConfirmationKafkaAdapter {
	return &ConfirmationKafkaAdapter{writer: writer}
}

func (a *ConfirmationKafkaAdapter) Publish(ctx context.Context, event domain.SalesConfirmationEvent) {
	log := logger.Ctx(ctx)

	payload, err := json.Marshal(event)
	if err != nil {
		// 固定结构体序列化失败属于程序 bug，同样不允许打断消费流程
		log.Error().Err(err).Str("sales_id", event.SalesID).Msg("Failed to marshal sales confirmation event")
		metrics.ConfirmationPublishFailures.Inc()
		return
	}

	log.Info().RawJSON("payload", payload).Msg("Sending sales confirmation message")

	msg := kafka.Message{Key: []byte(event.SalesID), Value: payload}
	carrier := mq.KafkaHeaderCarrier(msg.Headers)
	otel.GetTextMapPropagator().Inject(ctx, &carrier)
	msg.Headers = carrier

	if err := a.writer.WriteMessages(ctx, msg); err != nil {
		publishErr := &domain.PublishError{Err: err}
		log.Error().Err(publishErr).Str("sales_id", event.SalesID).
			Msg("Error while trying to send sales confirmation message")
		metrics.ConfirmationPublishFailures.Inc()
		return
	}

	log.Info().Str("sales_id", event.SalesID).Str("status", string(event.Status)).
		Msg("Sales confirmation message was sent successfully")
}
