// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReservationsProcessed 按最终结果（approved/rejected/dropped）统计库存预留处理量。
	ReservationsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_api_reservations_processed_total",
		Help: "Number of stock reservation messages processed, by outcome.",
	}, []string{"outcome"})

	// ConfirmationPublishFailures 统计确认消息发送失败次数。
	// 发送失败会被吞掉不重试，这是对账时发现丢失确认的唯一线索。
	ConfirmationPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_api_confirmation_publish_failures_total",
		Help: "Number of sales confirmation events that could not be published.",
	})

	// StockCheckRejections 统计同步 check-stock 接口的拒绝次数。
	StockCheckRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_api_stock_check_rejections_total",
		Help: "Number of synchronous stock checks that were rejected.",
	})
)
