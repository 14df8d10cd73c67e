// internal/service/product/application/stock_service.go
package application

import (
	"context"
	"strings"

	"catalog/internal/pkg/logger"
	"catalog/internal/pkg/metrics"
	"catalog/internal/service/product/domain"
	"catalog/internal/service/product/domain/port"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// 预留处理的状态机:
//   RECEIVED → VALIDATED → MUTATED → CONFIRMED       (成功)
//   RECEIVED → FAILED → REJECTED-SENT                (任意阶段失败)
// 无论走哪条路径，每条被接受的消息恰好发出一条确认事件。
const (
	stateReceived  = "RECEIVED"
	stateValidated = "VALIDATED"
	stateMutated   = "MUTATED"
	stateFailed    = "FAILED"
)

// StockService 编排库存预留的全部业务流程。
// 所有外部协作方都以 port 注入，可在测试中替换。
type StockService struct {
	products  domain.ProductRepository
	publisher port.ConfirmationPublisher
	guard     port.ReservationGuard
	sales     port.SalesClient
	tracer    trace.Tracer
}

func NewStockService(
	products domain.ProductRepository,
	publisher port.ConfirmationPublisher,
	guard port.ReservationGuard,
	sales port.SalesClient,
	tracer trace.Tracer,
) *StockService {
	return &StockService{
		products:  products,
		publisher: publisher,
		guard:     guard,
		sales:     sales,
		tracer:    tracer,
	}
}

// HandleProductStockEvent 是异步预留路径的唯一入口。
// 业务错误在这里被消化为 REJECTED 确认，绝不向消费循环传播——
// 一条坏消息不允许搞垮监听进程，也不允许阻塞后续消息。
func (s *StockService) HandleProductStockEvent(ctx context.Context, event *domain.ProductStockEvent) {
	ctx, span := s.tracer.Start(ctx, "product-api.HandleProductStockEvent", trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()

	span.SetAttributes(
		attribute.String("sales.id", event.SalesID),
		attribute.String("transactionid", event.TransactionID),
		attribute.Int("sales.products", len(event.Products)),
	)

	status := s.processReservation(ctx, event)

	confirmation := domain.SalesConfirmationEvent{
		SalesID:       event.SalesID,
		Status:        status,
		TransactionID: event.TransactionID,
	}
	s.publisher.Publish(ctx, confirmation)
	span.AddEvent("confirmation published", trace.WithAttributes(attribute.String("sales.status", string(status))))

	metrics.ReservationsProcessed.WithLabelValues(strings.ToLower(string(status))).Inc()
}

// processReservation 驱动状态机并返回最终结果。
func (s *StockService) processReservation(ctx context.Context, event *domain.ProductStockEvent) domain.SalesStatus {
	log := logger.Ctx(ctx)
	span := trace.SpanFromContext(ctx)
	span.AddEvent(stateReceived)

	if err := validateProductStockEvent(event); err != nil {
		log.Error().Err(err).Str("sales_id", event.SalesID).Str("state", stateFailed).
			Msg("Reservation request failed validation")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.StatusRejected
	}
	span.AddEvent(stateValidated)

	// 重投递防护：broker 是 at-least-once，提交扣减后崩溃会导致同一条消息再来一次。
	// 已处理过的 salesId 不再碰库存，但仍要重发 APPROVED，让销售侧拿到结果。
	processed, err := s.guard.AlreadyProcessed(ctx, event.SalesID)
	if err != nil {
		// 防护不可用时继续处理：可用性优先，重复风险回到源系统的原始水位
		log.Warn().Err(err).Str("sales_id", event.SalesID).Msg("Reservation guard unavailable, proceeding without duplicate check")
	} else if processed {
		log.Warn().Str("sales_id", event.SalesID).Msg("Duplicate reservation delivery, stock left untouched")
		span.AddEvent("duplicate delivery detected")
		return domain.StatusApproved
	}

	updated, err := s.products.DecrementStockBatch(ctx, event.Products)
	if err != nil {
		log.Error().Err(err).Str("sales_id", event.SalesID).Str("state", stateFailed).
			Msg("Error while trying to update stock")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.StatusRejected
	}
	span.AddEvent(stateMutated)

	if err := s.guard.MarkProcessed(ctx, event.SalesID); err != nil {
		// 标记失败不影响本次结果，只是失去了对下一次重投递的防护
		log.Warn().Err(err).Str("sales_id", event.SalesID).Msg("Failed to record processed sales ID")
	}

	log.Info().Str("sales_id", event.SalesID).Int("products_updated", len(updated)).
		Msg("Stock decremented for all products in the sale")
	return domain.StatusApproved
}

// CheckProductsStock 是同步的非变更预检：逐行校验字段、查库、比对可用量，
// 第一行失败即短路返回，整个过程不写任何数据。
func (s *StockService) CheckProductsStock(ctx context.Context, request *domain.StockCheckRequest) error {
	ctx, span := s.tracer.Start(ctx, "product-api.CheckProductsStock")
	defer span.End()

	if request == nil || len(request.Products) == 0 {
		metrics.StockCheckRejections.Inc()
		return domain.NewValidationError("The request data must be informed.")
	}

	for _, item := range request.Products {
		if err := s.validateStock(ctx, item); err != nil {
			metrics.StockCheckRejections.Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	span.AddEvent("stock check passed")
	return nil
}

func (s *StockService) validateStock(ctx context.Context, item domain.ProductQuantity) error {
	if item.ProductID == 0 || item.Quantity <= 0 {
		return domain.NewValidationError("Product ID and quantity must be informed.")
	}
	product, err := s.products.FindByID(ctx, item.ProductID)
	if err != nil {
		return err
	}
	if item.Quantity > product.QuantityAvailable {
		return &domain.OutOfStockError{ProductID: product.ID}
	}
	return nil
}

// FindByID 按ID查询商品，ID 缺失按校验错误处理。
func (s *StockService) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	if id == 0 {
		return nil, domain.NewValidationError("The product ID must be informed.")
	}
	return s.products.FindByID(ctx, id)
}

// FindAll 返回全部商品，只读。
func (s *StockService) FindAll(ctx context.Context) ([]domain.Product, error) {
	return s.products.FindAll(ctx)
}

// FindByName 按名称模糊查询商品，名称缺失按校验错误处理。
func (s *StockService) FindByName(ctx context.Context, name string) ([]domain.Product, error) {
	if name == "" {
		return nil, domain.NewValidationError("The product name must be informed.")
	}
	return s.products.FindByName(ctx, name)
}

// ProductSales 聚合了商品与它关联的销售单。
type ProductSales struct {
	Product  *domain.Product
	SalesIDs []string
}

// FindProductSales 查询商品并向 sales-api 协作方取回关联销售单。
func (s *StockService) FindProductSales(ctx context.Context, id int) (*ProductSales, error) {
	ctx, span := s.tracer.Start(ctx, "product-api.FindProductSales")
	defer span.End()

	product, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	salesIDs, err := s.sales.FindSalesByProductID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &ProductSales{Product: product, SalesIDs: salesIDs}, nil
}
