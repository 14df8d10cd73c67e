// internal/service/product/interfaces/dto.go
package interfaces

import (
	"time"

	"catalog/internal/service/product/domain"
)

// SuccessResponse / ErrorResponse 保持与 sales-api 约定的响应形状。
type SuccessResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type ProductResponse struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	QuantityAvailable int    `json:"quantity_available"`
	SupplierID        int    `json:"supplierId"`
	CategoryID        int    `json:"categoryId"`
	CreatedAt         string `json:"created_at"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	var createdAt string
	if !p.CreatedAt.IsZero() {
		createdAt = p.CreatedAt.Format(time.DateTime)
	}
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		QuantityAvailable: p.QuantityAvailable,
		SupplierID:        p.SupplierID,
		CategoryID:        p.CategoryID,
		CreatedAt:         createdAt,
	}
}

func toProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	return responses
}

type ProductSalesResponse struct {
	ProductResponse
	SalesIDs []string `json:"salesIds"`
}
