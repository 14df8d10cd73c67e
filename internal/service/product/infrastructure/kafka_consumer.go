// internal/service/product/infrastructure/kafka_consumer.go
package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"catalog/internal/pkg/config"
	"catalog/internal/pkg/logger"
	"catalog/internal/pkg/metrics"
	"catalog/internal/pkg/mq"
	"catalog/internal/service/product/application"
	"catalog/internal/service/product/domain"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

// ReservationConsumer 是驱动适配器：监听库存预留消息并驱动应用服务。
// 多个 worker 共享一个消费组，broker 把每条消息投给其中一个 worker，
// 不同销售单的预留可以并发处理，顺序无关紧要（每笔扣减独立且原子）。
type ReservationConsumer struct {
	brokers []string
	topic   string
	groupID string
	workers int
	appSvc  *application.StockService
}

func NewReservationConsumer(cfg *config.Config, appSvc *application.StockService) *ReservationConsumer {
	return &ReservationConsumer{
		brokers: cfg.Kafka.Brokers,
		topic:   cfg.Kafka.ProductStockTopic,
		groupID: cfg.Kafka.GroupID,
		workers: cfg.Kafka.ConsumerWorkers,
		appSvc:  appSvc,
	}
}

// Run 启动全部 worker 并阻塞直到 ctx 取消。
func (c *ReservationConsumer) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < c.workers; i++ {
		worker := i
		g.Go(func() error {
			return c.runWorker(gctx, worker)
		})
	}
	return g.Wait()
}

func (c *ReservationConsumer) runWorker(ctx context.Context, worker int) error {
	reader := mq.NewKafkaReader(c.brokers, c.topic, c.groupID)
	defer reader.Close()

	log := logger.Ctx(ctx)
	log.Info().Int("worker", worker).Str("topic", c.topic).Msg("Reservation consumer worker started")

	for {
		// 用 FetchMessage 而不是 ReadMessage：处理完成后才提交 offset，
		// worker 中途崩溃时消息未被 ack，broker 会重投给组内其他 worker。
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Int("worker", worker).Msg("Reservation consumer worker shutting down")
				return nil
			}
			log.Error().Err(err).Int("worker", worker).Msg("Could not fetch message, retrying")
			time.Sleep(time.Second)
			continue
		}

		c.processMessage(ctx, msg)

		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Int("worker", worker).Msg("Failed to commit message offset")
		}
	}
}

// processMessage 反序列化消息并调用应用服务。
// 业务失败由应用服务消化为 REJECTED 确认；这里只处理传输层问题。
func (c *ReservationConsumer) processMessage(parentCtx context.Context, msg kafka.Message) {
	// 续接上游（sales-api）注入的链路上下文
	carrier := mq.KafkaHeaderCarrier(msg.Headers)
	ctx := otel.GetTextMapPropagator().Extract(parentCtx, &carrier)

	var event domain.ProductStockEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 反序列化失败拿不到 salesId，无从应答：记日志后丢弃，不能让坏消息卡住队列
		logger.Ctx(ctx).Error().Err(err).
			Str("topic", msg.Topic).
			Int64("offset", msg.Offset).
			Msg("Failed to unmarshal reservation message, dropping")
		metrics.ReservationsProcessed.WithLabelValues("dropped").Inc()
		return
	}

	// 请求级 logger：transactionid 贯穿这条消息产生的每一行日志
	msgLogger := logger.Ctx(ctx).With().
		Str("transactionid", event.TransactionID).
		Str("sales_id", event.SalesID).
		Logger()
	ctx = msgLogger.WithContext(ctx)

	msgLogger.Info().
		RawJSON("payload", msg.Value).
		Msg("Receiving stock update message")

	c.appSvc.HandleProductStockEvent(ctx, &event)
}
