package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sweetshop/internal/model"
)

// StockMovementRepository defines audit-trail persistence operations.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *model.StockMovement) error
	CreateBatch(ctx context.Context, movements []model.StockMovement) error
	ListBySweet(ctx context.Context, sweetID uuid.UUID) ([]model.StockMovement, error)
}

type stockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository builds a GORM-backed repository.
func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) Create(ctx context.Context, movement *model.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *stockMovementRepository) CreateBatch(ctx context.Context, movements []model.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&movements).Error
}

func (r *stockMovementRepository) ListBySweet(ctx context.Context, sweetID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	if err := r.db.WithContext(ctx).
		Where("sweet_id = ?", sweetID).
		Order("created_at DESC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
