package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sweetshop/internal/cache"
	"sweetshop/internal/errors"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
)

const sweetCacheTTL = 5 * time.Minute

// SweetInput carries validated fields for catalog creation.
type SweetInput struct {
	Name        string
	Category    string
	Price       *decimal.Decimal
	Quantity    *int
	Description string
	ImageURL    string
}

// SweetUpdate carries a partial update. A nil field is absent and leaves the
// stored value untouched; a present field replaces it after validation.
type SweetUpdate struct {
	Name        *string
	Category    *string
	Price       *decimal.Decimal
	Quantity    *int
	Description *string
	ImageURL    *string
}

// SweetService handles catalog operations.
type SweetService interface {
	List(ctx context.Context) ([]model.Sweet, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Sweet, error)
	Search(ctx context.Context, filter repository.SweetFilter) ([]model.Sweet, error)
	Create(ctx context.Context, input SweetInput) (*model.Sweet, error)
	Update(ctx context.Context, id uuid.UUID, update SweetUpdate) (*model.Sweet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sweetService struct {
	repo  repository.SweetRepository
	cache *cache.Client
}

// NewSweetService creates a new catalog service.
func NewSweetService(repo repository.SweetRepository, cache *cache.Client) SweetService {
	return &sweetService{
		repo:  repo,
		cache: cache,
	}
}

// SweetCacheKey is the redis key for a cached sweet record.
func SweetCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("sweet:%s", id.String())
}

// List returns the catalog, newest first.
func (s *sweetService) List(ctx context.Context) ([]model.Sweet, error) {
	return s.repo.List(ctx)
}

// Get retrieves a sweet by ID with caching.
func (s *sweetService) Get(ctx context.Context, id uuid.UUID) (*model.Sweet, error) {
	if data, _ := s.cache.Get(ctx, SweetCacheKey(id)); data != nil {
		var cached model.Sweet
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSweetNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(sweet); err == nil {
		_ = s.cache.Set(ctx, SweetCacheKey(id), payload, sweetCacheTTL)
	}

	return sweet, nil
}

// Search returns sweets matching all present filter predicates, newest first.
func (s *sweetService) Search(ctx context.Context, filter repository.SweetFilter) ([]model.Sweet, error) {
	return s.repo.Search(ctx, filter)
}

// Create validates and persists a new sweet.
func (s *sweetService) Create(ctx context.Context, input SweetInput) (*model.Sweet, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.NewValidation("Name is required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, errors.NewValidation("Category is required")
	}
	if input.Price == nil || input.Price.IsNegative() {
		return nil, errors.NewValidation("Price must be a positive number")
	}
	if input.Quantity == nil || *input.Quantity < 0 {
		return nil, errors.NewValidation("Quantity must be a non-negative integer")
	}

	sweet := &model.Sweet{
		Name:        name,
		Category:    category,
		Price:       *input.Price,
		Quantity:    *input.Quantity,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}

	if err := s.repo.Create(ctx, sweet); err != nil {
		return nil, fmt.Errorf("create sweet: %w", err)
	}

	return sweet, nil
}

// Update applies a partial update. Every field uses explicit-presence
// semantics: present fields replace stored values after validation, absent
// fields are retained. A present empty description or imageUrl clears the
// stored value; a present empty name or category is rejected.
func (s *sweetService) Update(ctx context.Context, id uuid.UUID, update SweetUpdate) (*model.Sweet, error) {
	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSweetNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, errors.NewValidation("Name cannot be empty")
		}
		sweet.Name = name
	}
	if update.Category != nil {
		category := strings.TrimSpace(*update.Category)
		if category == "" {
			return nil, errors.NewValidation("Category cannot be empty")
		}
		sweet.Category = category
	}
	if update.Price != nil {
		if update.Price.IsNegative() {
			return nil, errors.NewValidation("Price must be a positive number")
		}
		sweet.Price = *update.Price
	}
	if update.Quantity != nil {
		if *update.Quantity < 0 {
			return nil, errors.NewValidation("Quantity must be a non-negative integer")
		}
		sweet.Quantity = *update.Quantity
	}
	if update.Description != nil {
		sweet.Description = *update.Description
	}
	if update.ImageURL != nil {
		sweet.ImageURL = *update.ImageURL
	}

	if err := s.repo.Update(ctx, sweet); err != nil {
		return nil, fmt.Errorf("update sweet: %w", err)
	}

	_ = s.cache.Delete(ctx, SweetCacheKey(id))

	return sweet, nil
}

// Delete removes a sweet permanently.
func (s *sweetService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}
	if !deleted {
		return errors.ErrSweetNotFound
	}

	_ = s.cache.Delete(ctx, SweetCacheKey(id))

	return nil
}
