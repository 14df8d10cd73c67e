// internal/service/product/infrastructure/kafka_consumer_test.go
package infrastructure

import (
	"context"
	"testing"

	"catalog/internal/pkg/config"
	"catalog/internal/service/product/application"
	"catalog/internal/service/product/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

type memoryRepo struct {
	products map[int]*domain.Product
}

func (r *memoryRepo) FindByID(_ context.Context, id int) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.NewProductNotFoundError()
	}
	copied := *p
	return &copied, nil
}

func (r *memoryRepo) FindAll(context.Context) ([]domain.Product, error) { return nil, nil }

func (r *memoryRepo) FindByName(context.Context, string) ([]domain.Product, error) {
	return nil, nil
}

func (r *memoryRepo) DecrementStockBatch(_ context.Context, items []domain.ProductQuantity) ([]domain.Product, error) {
	for _, item := range items {
		p, ok := r.products[item.ProductID]
		if !ok {
			return nil, domain.NewProductNotFoundError()
		}
		if item.Quantity > p.QuantityAvailable {
			return nil, &domain.OutOfStockError{ProductID: p.ID}
		}
	}
	var updated []domain.Product
	for _, item := range items {
		p := r.products[item.ProductID]
		p.UpdateStock(item.Quantity)
		updated = append(updated, *p)
	}
	return updated, nil
}

type capturingPublisher struct {
	events []domain.SalesConfirmationEvent
}

func (p *capturingPublisher) Publish(_ context.Context, event domain.SalesConfirmationEvent) {
	p.events = append(p.events, event)
}

type noopGuard struct{}

func (noopGuard) AlreadyProcessed(context.Context, string) (bool, error) { return false, nil }
func (noopGuard) MarkProcessed(context.Context, string) error            { return nil }

type noopSales struct{}

func (noopSales) FindSalesByProductID(context.Context, int) ([]string, error) { return nil, nil }

func newTestConsumer(repo *memoryRepo) (*ReservationConsumer, *capturingPublisher) {
	publisher := &capturingPublisher{}
	svc := application.NewStockService(repo, publisher, noopGuard{}, noopSales{}, otel.Tracer("test"))
	cfg := &config.Config{}
	cfg.Kafka.ProductStockTopic = "product-stock-update"
	cfg.Kafka.ConsumerWorkers = 1
	return NewReservationConsumer(cfg, svc), publisher
}

func TestProcessMessage_DrivesReservationToConfirmation(t *testing.T) {
	repo := &memoryRepo{products: map[int]*domain.Product{1: {ID: 1, QuantityAvailable: 10}}}
	consumer, publisher := newTestConsumer(repo)

	consumer.processMessage(context.Background(), kafka.Message{
		Topic: "product-stock-update",
		Value: []byte(`{"salesId":"S1","transactionid":"tx-1","products":[{"productId":1,"quantity":4}]}`),
	})

	assert.Equal(t, 6, repo.products[1].QuantityAvailable)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, domain.StatusApproved, publisher.events[0].Status)
	assert.Equal(t, "tx-1", publisher.events[0].TransactionID)
}

func TestProcessMessage_MalformedPayloadIsDroppedWithoutConfirmation(t *testing.T) {
	repo := &memoryRepo{products: map[int]*domain.Product{1: {ID: 1, QuantityAvailable: 10}}}
	consumer, publisher := newTestConsumer(repo)

	// 反序列化失败拿不到 salesId，无从应答：消息被丢弃且不得 panic
	assert.NotPanics(t, func() {
		consumer.processMessage(context.Background(), kafka.Message{
			Topic: "product-stock-update",
			Value: []byte(`{not json`),
		})
	})

	assert.Equal(t, 10, repo.products[1].QuantityAvailable)
	assert.Empty(t, publisher.events)
}

func TestProcessMessage_BadMessageDoesNotAffectFollowingMessages(t *testing.T) {
	repo := &memoryRepo{products: map[int]*domain.Product{1: {ID: 1, QuantityAvailable: 10}}}
	consumer, publisher := newTestConsumer(repo)

	consumer.processMessage(context.Background(), kafka.Message{
		Value: []byte(`{"salesId":"S-bad","transactionid":"tx-bad","products":[{"productId":1,"quantity":999}]}`),
	})
	consumer.processMessage(context.Background(), kafka.Message{
		Value: []byte(`{"salesId":"S-good","transactionid":"tx-good","products":[{"productId":1,"quantity":2}]}`),
	})

	assert.Equal(t, 8, repo.products[1].QuantityAvailable)
	require.Len(t, publisher.events, 2)
	assert.Equal(t, domain.StatusRejected, publisher.events[0].Status)
	assert.Equal(t, domain.StatusApproved, publisher.events[1].Status)
}
