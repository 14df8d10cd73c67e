// cmd/product-api/main.go
package main

import (
	"context"

	"catalog/internal/pkg/bootstrap"
	"catalog/internal/pkg/config"
	"catalog/internal/pkg/httpclient"
	"catalog/internal/pkg/logger"
	"catalog/internal/pkg/mq"
	"catalog/internal/pkg/redis"
	"catalog/internal/service/product/application"
	"catalog/internal/service/product/infrastructure"
	"catalog/internal/service/product/infrastructure/adapter"
	"catalog/internal/service/product/interfaces"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

const serviceName = "product-api"

// main 是应用的"组装根" (Composition Root)：
// 创建并组装所有依赖项，然后把 HTTP 服务与消费 worker 交给 bootstrap 托管。
func main() {
	logger.Init(serviceName)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := infrastructure.NewMysqlDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize mysql")
	}

	redisClient, err := redis.NewClient(cfg.Redis.Addr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize redis client")
	}

	confirmationWriter := mq.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.SalesConfirmationTopic)

	tracer := otel.Tracer(serviceName)

	productRepo := infrastructure.NewGormProductRepository(db)
	publisher := adapter.NewConfirmationKafkaAdapter(confirmationWriter)
	guard := adapter.NewReservationRedisGuard(redisClient)
	salesClient := adapter.NewSalesHTTPAdapter(httpclient.NewClient(tracer), cfg.SalesAPI.URL)
	tokenValidator := adapter.NewStaticTokenValidator(cfg.Auth.APISecret)

	stockService := application.NewStockService(productRepo, publisher, guard, salesClient, tracer)

	consumer := infrastructure.NewReservationConsumer(cfg, stockService)
	handler := interfaces.NewProductHandler(stockService, tokenValidator)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName:    serviceName,
		Port:           cfg.Service.Port,
		JaegerEndpoint: cfg.Jaeger.Endpoint,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			handler.RegisterRoutes(appCtx.Mux)
		},
		Workers: []func(ctx context.Context) error{
			consumer.Run,
		},
		OnShutdown: []func(){
			func() { _ = confirmationWriter.Close() },
			func() { _ = redisClient.Close() },
		},
	})
}
