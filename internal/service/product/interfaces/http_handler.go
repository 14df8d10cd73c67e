// internal/service/product/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"catalog/internal/pkg/logger"
	"catalog/internal/service/product/application"
	"catalog/internal/service/product/domain"
	"catalog/internal/service/product/domain/port"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "product-api"

// ProductHandler 封装 product-api 的 HTTP 处理器。
type ProductHandler struct {
	service        *application.StockService
	tokenValidator port.TokenValidator
}

func NewProductHandler(service *application.StockService, tokenValidator port.TokenValidator) *ProductHandler {
	return &ProductHandler{service: service, tokenValidator: tokenValidator}
}

// RegisterRoutes 在 ServeMux 上注册所有路由。
func (h *ProductHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/product/check-stock", h.withRequestContext(h.checkStockHandler))
	mux.HandleFunc("GET /api/product", h.withRequestContext(h.findAllHandler))
	mux.HandleFunc("GET /api/product/{id}", h.withRequestContext(h.findByIDHandler))
	mux.HandleFunc("GET /api/product/name/{name}", h.withRequestContext(h.findByNameHandler))
	mux.HandleFunc("GET /api/product/{id}/sales", h.withRequestContext(h.findProductSalesHandler))
}

// checkStockHandler 是同步的非变更库存预检，sales-api 下单前调用。
func (h *ProductHandler) checkStockHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer(serviceName).Start(r.Context(), "product-api.CheckStock")
	defer span.End()

	var request domain.StockCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, domain.NewValidationError("The request data must be informed."))
		return
	}

	span.SetAttributes(attribute.Int("stock_check.products", len(request.Products)))
	logger.Ctx(ctx).Info().Interface("products", request.Products).Msg("Request to POST product stock check")

	if err := h.service.CheckProductsStock(ctx, &request); err != nil {
		span.RecordError(err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Status: http.StatusOK, Message: "The stock is ok!"})
}

func (h *ProductHandler) findByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, domain.NewValidationError("The product ID must be informed."))
		return
	}

	product, err := h.service.FindByID(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) findAllHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *ProductHandler) findByNameHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.FindByName(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *ProductHandler) findProductSalesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, domain.NewValidationError("The product ID must be informed."))
		return
	}
	span.SetAttributes(attribute.Int("product.id", id))

	sales, err := h.service.FindProductSales(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ProductSalesResponse{
		ProductResponse: toProductResponse(sales.Product),
		SalesIDs:        sales.SalesIDs,
	})
}

// writeError 把领域错误映射为对调用方的拒绝响应。
// 校验与库存不足按 400 返回；实体不存在按 404；其余视为内部错误。
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		outOfStockErr *domain.OutOfStockError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &outOfStockErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Status: http.StatusBadRequest, Message: err.Error()})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Status: http.StatusNotFound, Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Status: http.StatusInternalServerError, Message: "Internal server error."})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
