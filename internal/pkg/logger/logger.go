// internal/pkg/logger/logger.go
package logger

import (
	"context"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Init 配置全局 zerolog，并为所有日志打上 service 标签。
func Init(serviceName string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zlog.Logger = zlog.With().Str("service", serviceName).Logger()
}

// Ctx 返回 context 中携带的请求级 logger；
// 没有注入过时回退到全局 logger，保证调用方永远拿到可用实例。
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &zlog.Logger
}
