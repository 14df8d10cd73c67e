// internal/service/product/infrastructure/gorm_model.go
package infrastructure

import (
	"time"

	"catalog/internal/service/product/domain"
)

// ProductModel 对应 PRODUCT 表，列名沿用既有库表结构。
type ProductModel struct {
	ID                int       `gorm:"column:ID;primaryKey;autoIncrement"`
	Name              string    `gorm:"column:NAME;not null"`
	SupplierID        int       `gorm:"column:FK_SUPPLIER;not null"`
	CategoryID        int       `gorm:"column:FK_CATEGORY;not null"`
	QuantityAvailable int       `gorm:"column:QUANTITY_AVAILABLE;not null"`
	CreatedAt         time.Time `gorm:"column:CREATED_AT;not null;<-:create"`
}

func (ProductModel) TableName() string { return "PRODUCT" }

func toDomainProduct(m *ProductModel) *domain.Product {
	return &domain.Product{
		ID:                m.ID,
		Name:              m.Name,
		SupplierID:        m.SupplierID,
		CategoryID:        m.CategoryID,
		QuantityAvailable: m.QuantityAvailable,
		CreatedAt:         m.CreatedAt,
	}
}

func toDomainProducts(models []ProductModel) []domain.Product {
	products := make([]domain.Product, 0, len(models))
	for i := range models {
		products = append(products, *toDomainProduct(&models[i]))
	}
	return products
}
