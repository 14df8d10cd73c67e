// internal/pkg/bootstrap/app.go
package bootstrap

import (
	"context"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"catalog/internal/pkg/logger"
	"catalog/internal/pkg/tracing"

	"golang.org/x/sync/errgroup"
)

type AppCtx struct {
	Mux *http.ServeMux
}

// AppInfo 包含了启动服务所需的所有特定信息。
type AppInfo struct {
	ServiceName      string
	Port             int
	JaegerEndpoint   string
	RegisterHandlers func(appCtx AppCtx) // 每个服务注册自己的 HTTP 路由
	// Workers 是与 HTTP 服务并行运行的后台任务（如 Kafka 消费循环）。
	// worker 必须在 ctx 取消后尽快返回。
	Workers []func(ctx context.Context) error
	// OnShutdown 在服务停止后执行资源清理，按注册顺序调用。
	OnShutdown []func()
}

// StartService 封装了通用的启动和优雅关停逻辑。
// 收到 SIGINT/SIGTERM 后取消根 context，等待 worker 退出，再依次关闭资源。
func StartService(info AppInfo) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracerProvider(info.ServiceName, info.JaegerEndpoint)
	if err != nil {
		logger.Ctx(ctx).Fatal().Err(err).Msg("failed to initialize tracer provider")
	}

	mux := http.NewServeMux()
	if info.RegisterHandlers != nil {
		info.RegisterHandlers(AppCtx{Mux: mux})
	}
	server := &http.Server{Addr: ":" + strconv.Itoa(info.Port), Handler: mux}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Ctx(gctx).Info().Int("port", info.Port).Msgf("%s listening", info.ServiceName)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	for _, w := range info.Workers {
		worker := w
		g.Go(func() error {
			return worker(gctx)
		})
	}

	// 阻塞直到退出信号或任一 worker 报错
	<-gctx.Done()
	logger.Ctx(ctx).Info().Msgf("Shutting down service %s...", info.ServiceName)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("Error shutting down http server")
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Ctx(ctx).Error().Err(err).Msg("Worker exited with error")
	}

	for _, fn := range info.OnShutdown {
		fn()
	}

	// 最后关闭 TracerProvider，确保缓冲中的 trace 全部发出
	if err := tp.Shutdown(shutdownCtx); err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("Error shutting down tracer provider")
	}

	logger.Ctx(ctx).Info().Msgf("Service %s gracefully shut down.", info.ServiceName)
}
