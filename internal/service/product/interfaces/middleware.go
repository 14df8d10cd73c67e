// internal/service/product/interfaces/middleware.go
package interfaces

import (
	"net/http"

	"catalog/internal/pkg/logger"
	"catalog/internal/pkg/requestmeta"
	"catalog/internal/pkg/tracing"
	"catalog/internal/service/product/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// withRequestContext 是所有受保护路由的入口中间件：
//  1. 续接上游注入的链路上下文
//  2. 强制要求 transactionid 头并校验 Authorization
//  3. 为本次请求生成 serviceid
//  4. 把 transactionid/serviceid/trace_id 写入请求级 logger 并注入 context
//
// 关联标识从这里进入 context 后显式随参数传递，不依赖任何全局状态。
func (h *ProductHandler) withRequestContext(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		transactionID := r.Header.Get(requestmeta.HeaderTransactionID)
		if transactionID == "" {
			writeError(w, domain.NewValidationError("The transactionid header is required."))
			return
		}

		token := r.Header.Get(requestmeta.HeaderAuthorization)
		if err := h.tokenValidator.ValidateAuthorization(token); err != nil {
			writeError(w, err)
			return
		}

		serviceID := uuid.New().String()

		ctx = requestmeta.WithTransactionID(ctx, transactionID)
		ctx = requestmeta.WithServiceID(ctx, serviceID)
		ctx = requestmeta.WithAuthToken(ctx, token)

		reqLogger := logger.Ctx(ctx).With().
			Str("transactionid", transactionID).
			Str("serviceid", serviceID).
			Str("trace_id", tracing.GetTraceIDFromContext(ctx)).
			Logger()
		ctx = reqLogger.WithContext(ctx)

		next(w, r.WithContext(ctx))
	}
}
