// internal/pkg/requestmeta/meta.go
package requestmeta

import "context"

// HTTP 头约定：调用方传入 transactionid，本服务为每个请求生成 serviceid。
// 两者必须出现在所有日志行和所有出站调用中，用于端到端追踪一次订单流程。
const (
	HeaderTransactionID = "transactionid"
	HeaderServiceID     = "serviceid"
	HeaderAuthorization = "Authorization"
)

type contextKey int

const (
	transactionIDKey contextKey = iota
	serviceIDKey
	authTokenKey
)

func WithTransactionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, transactionIDKey, id)
}

func TransactionID(ctx context.Context) string {
	v, _ := ctx.Value(transactionIDKey).(string)
	return v
}

func WithServiceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, serviceIDKey, id)
}

func ServiceID(ctx context.Context) string {
	v, _ := ctx.Value(serviceIDKey).(string)
	return v
}

// WithAuthToken 保存调用方的原始 Authorization 头，供出站调用透传。
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

func AuthToken(ctx context.Context) string {
	v, _ := ctx.Value(authTokenKey).(string)
	return v
}
