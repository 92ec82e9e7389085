package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sweetshop/internal/model"
)

// SweetFilter holds the optional, conjunctive search predicates.
type SweetFilter struct {
	Query    string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// SweetRepository defines catalog persistence operations.
type SweetRepository interface {
	Create(ctx context.Context, sweet *model.Sweet) error
	Update(ctx context.Context, sweet *model.Sweet) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sweet, error)
	List(ctx context.Context) ([]model.Sweet, error)
	Search(ctx context.Context, filter SweetFilter) ([]model.Sweet, error)
	// DecrementQuantity atomically applies quantity = quantity - n only where
	// quantity >= n, and reports whether a row was affected. This is the sole
	// stock-decrement path; there is no read-check-write variant.
	DecrementQuantity(ctx context.Context, id uuid.UUID, n int) (bool, error)
	// IncrementQuantity atomically applies quantity = quantity + n and reports
	// whether a row was affected.
	IncrementQuantity(ctx context.Context, id uuid.UUID, n int) (bool, error)
}

type sweetRepository struct {
	db *gorm.DB
}

// NewSweetRepository builds a GORM-backed repository.
func NewSweetRepository(db *gorm.DB) SweetRepository {
	return &sweetRepository{db: db}
}

func (r *sweetRepository) Create(ctx context.Context, sweet *model.Sweet) error {
	return r.db.WithContext(ctx).Create(sweet).Error
}

func (r *sweetRepository) Update(ctx context.Context, sweet *model.Sweet) error {
	return r.db.WithContext(ctx).Save(sweet).Error
}

// Delete removes the record permanently. Returns false when no row matched.
func (r *sweetRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Sweet{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *sweetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Sweet, error) {
	var sweet model.Sweet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&sweet).Error; err != nil {
		return nil, err
	}
	return &sweet, nil
}

// List returns the full catalog, newest first.
func (r *sweetRepository) List(ctx context.Context) ([]model.Sweet, error) {
	var sweets []model.Sweet
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

// Search applies the filter predicates conjunctively, newest first.
func (r *sweetRepository) Search(ctx context.Context, filter SweetFilter) ([]model.Sweet, error) {
	q := r.db.WithContext(ctx).Model(&model.Sweet{})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		q = q.Where("name LIKE ? OR category LIKE ? OR description LIKE ?", pattern, pattern, pattern)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", filter.MaxPrice)
	}

	var sweets []model.Sweet
	if err := q.Order("created_at DESC").Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

func (r *sweetRepository) DecrementQuantity(ctx context.Context, id uuid.UUID, n int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Sweet{}).
		Where("id = ? AND quantity >= ?", id, n).
		Update("quantity", gorm.Expr("quantity - ?", n))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *sweetRepository) IncrementQuantity(ctx context.Context, id uuid.UUID, n int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Sweet{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", n))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
