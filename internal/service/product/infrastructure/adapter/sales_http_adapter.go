// internal/service/product/infrastructure/adapter/sales_http_adapter.go
package adapter

import (
	"context"
	"fmt"

	"catalog/internal/pkg/httpclient"
	"catalog/internal/pkg/logger"
	"catalog/internal/pkg/requestmeta"
	"catalog/internal/service/product/domain"
)

// SalesHTTPAdapter 是 port.SalesClient 的 HTTP 实现，指向 sales-api。
// 协作方的任何失败都被翻译为本服务的校验错误，原始错误不向上泄漏。
type SalesHTTPAdapter struct {
	client  *httpclient.Client
	baseURL string
}

func NewSalesHTTPAdapter(client *httpclient.Client, baseURL string) *SalesHTTPAdapter {
	return &SalesHTTPAdapter{client: client, baseURL: baseURL}
}

type salesByProductResponse struct {
	SalesIDs []string `json:"salesIds"`
}

func (a *SalesHTTPAdapter) FindSalesByProductID(ctx context.Context, productID int) ([]string, error) {
	log := logger.Ctx(ctx)

	transactionID := requestmeta.TransactionID(ctx)
	serviceID := requestmeta.ServiceID(ctx)

	log.Info().
		Int("product_id", productID).
		Str("transactionid", transactionID).
		Str("serviceid", serviceID).
		Msg("Sending GET request to orders by productId")

	url := fmt.Sprintf("%s/api/orders/product/%d", a.baseURL, productID)
	headers := map[string]string{
		requestmeta.HeaderTransactionID: transactionID,
		requestmeta.HeaderServiceID:     serviceID,
		requestmeta.HeaderAuthorization: requestmeta.AuthToken(ctx),
	}

	var response salesByProductResponse
	if err := a.client.GetJSON(ctx, url, headers, &response); err != nil {
		log.Error().Err(err).Int("product_id", productID).Msg("Error trying to call Sales-API")
		return nil, domain.NewValidationError("The sales could not be found.")
	}

	log.Info().
		Int("product_id", productID).
		Strs("sales_ids", response.SalesIDs).
		Str("transactionid", transactionID).
		Msg("Receiving response from orders by productId")

	return response.SalesIDs, nil
}
