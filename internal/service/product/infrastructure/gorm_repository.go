// internal/service/product/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"
	"errors"
	"strings"

	"catalog/internal/pkg/logger"
	"catalog/internal/service/product/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository 是 domain.ProductRepository 的 GORM 实现。
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewProductNotFoundError()
		}
		return nil, err
	}
	return toDomainProduct(&model), nil
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var models []ProductModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(models), nil
}

func (r *GormProductRepository) FindByName(ctx context.Context, name string) ([]domain.Product, error) {
	var models []ProductModel
	err := r.db.WithContext(ctx).
		Where("LOWER(NAME) LIKE ?", "%"+strings.ToLower(name)+"%").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainProducts(models), nil
}

// DecrementStockBatch 在单个事务里完成整批扣减。
// 每行先用 SELECT ... FOR UPDATE 锁住商品行再比对可用量：
// 两个并发预留抢同一个商品时，后到者会阻塞在行锁上，
// 拿到锁后读到的是已扣减的新值，不可能基于旧读数把库存扣成负。
// 任意一行失败即返回错误，gorm 回滚整个事务，存储保持原状。
func (r *GormProductRepository) DecrementStockBatch(ctx context.Context, items []domain.ProductQuantity) ([]domain.Product, error) {
	log := logger.Ctx(ctx)
	var updated []domain.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var model ProductModel
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, item.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					log.Error().Int("product_id", item.ProductID).Msg("Stock decrement refers to a missing product")
					return domain.NewProductNotFoundError()
				}
				return err
			}

			if item.Quantity > model.QuantityAvailable {
				log.Error().
					Int("product_id", model.ID).
					Int("requested", item.Quantity).
					Int("available", model.QuantityAvailable).
					Msg("Requested quantity exceeds available stock")
				return &domain.OutOfStockError{ProductID: model.ID}
			}

			model.QuantityAvailable -= item.Quantity
			if err := tx.Model(&ProductModel{}).
				Where("ID = ?", model.ID).
				Update("QUANTITY_AVAILABLE", model.QuantityAvailable).Error; err != nil {
				return err
			}
			updated = append(updated, *toDomainProduct(&model))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
