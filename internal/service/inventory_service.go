package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sweetshop/internal/cache"
	"sweetshop/internal/errors"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
)

// InventoryService handles stock mutation.
type InventoryService interface {
	// Purchase decrements stock for any authenticated user.
	Purchase(ctx context.Context, sweetID uuid.UUID, quantity int, userID uuid.UUID) (*model.Sweet, error)
	// Restock increments stock; admin-only, enforced at the route.
	Restock(ctx context.Context, sweetID uuid.UUID, quantity int, userID uuid.UUID) (*model.Sweet, error)
	// Movements lists the audit trail for a sweet, newest first.
	Movements(ctx context.Context, sweetID uuid.UUID) ([]model.StockMovement, error)
}

type inventoryService struct {
	sweetRepo    repository.SweetRepository
	movementRepo repository.StockMovementRepository
	cache        *cache.Client
	// Channel for async movement recording
	movementChannel chan model.StockMovement
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(
	sweetRepo repository.SweetRepository,
	movementRepo repository.StockMovementRepository,
	cache *cache.Client,
) InventoryService {
	service := &inventoryService{
		sweetRepo:       sweetRepo,
		movementRepo:    movementRepo,
		cache:           cache,
		movementChannel: make(chan model.StockMovement, 100),
	}

	// Start async movement worker
	go service.movementWorker(context.Background())

	return service
}

// movementWorker persists stock movements asynchronously in batches.
func (s *inventoryService) movementWorker(ctx context.Context) {
	batch := make([]model.StockMovement, 0, 10)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case movement, ok := <-s.movementChannel:
			if !ok {
				if len(batch) > 0 {
					_ = s.movementRepo.CreateBatch(ctx, batch)
				}
				return
			}
			batch = append(batch, movement)
			if len(batch) >= 10 {
				_ = s.movementRepo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				_ = s.movementRepo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			return
		}
	}
}

// Purchase atomically decrements stock. The conditional update only matches
// rows with quantity >= requested, so quantity can never go negative no
// matter how many purchases race. When no row is affected, one follow-up read
// picks the failure: missing record, zero stock, or insufficient stock with
// the live available amount.
func (s *inventoryService) Purchase(ctx context.Context, sweetID uuid.UUID, quantity int, userID uuid.UUID) (*model.Sweet, error) {
	if quantity < 1 {
		return nil, errors.NewValidation("Quantity must be at least 1")
	}

	updated, err := s.sweetRepo.DecrementQuantity(ctx, sweetID, quantity)
	if err != nil {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}

	if !updated {
		sweet, err := s.sweetRepo.FindByID(ctx, sweetID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrSweetNotFound
			}
			return nil, err
		}
		if sweet.Quantity == 0 {
			return nil, errors.ErrOutOfStock
		}
		return nil, &errors.InsufficientStockError{Available: sweet.Quantity}
	}

	sweet, err := s.sweetRepo.FindByID(ctx, sweetID)
	if err != nil {
		return nil, fmt.Errorf("reload sweet: %w", err)
	}

	_ = s.cache.Delete(ctx, SweetCacheKey(sweetID))
	s.recordMovement(ctx, sweetID, userID, model.MovementPurchase, quantity)

	return sweet, nil
}

// Restock atomically increments stock. There is no upper bound and no
// out-of-stock gate; restocking an item at zero is explicitly permitted.
func (s *inventoryService) Restock(ctx context.Context, sweetID uuid.UUID, quantity int, userID uuid.UUID) (*model.Sweet, error) {
	if quantity < 1 {
		return nil, errors.NewValidation("Quantity must be at least 1")
	}

	updated, err := s.sweetRepo.IncrementQuantity(ctx, sweetID, quantity)
	if err != nil {
		return nil, fmt.Errorf("increment stock: %w", err)
	}
	if !updated {
		return nil, errors.ErrSweetNotFound
	}

	sweet, err := s.sweetRepo.FindByID(ctx, sweetID)
	if err != nil {
		return nil, fmt.Errorf("reload sweet: %w", err)
	}

	_ = s.cache.Delete(ctx, SweetCacheKey(sweetID))
	s.recordMovement(ctx, sweetID, userID, model.MovementRestock, quantity)

	return sweet, nil
}

// Movements lists the audit trail for a sweet.
func (s *inventoryService) Movements(ctx context.Context, sweetID uuid.UUID) ([]model.StockMovement, error) {
	if _, err := s.sweetRepo.FindByID(ctx, sweetID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSweetNotFound
		}
		return nil, err
	}
	return s.movementRepo.ListBySweet(ctx, sweetID)
}

// recordMovement queues an audit row without blocking the request.
func (s *inventoryService) recordMovement(ctx context.Context, sweetID, userID uuid.UUID, movementType model.MovementType, quantity int) {
	movement := model.StockMovement{
		SweetID:  sweetID,
		UserID:   userID,
		Type:     movementType,
		Quantity: quantity,
	}

	select {
	case s.movementChannel <- movement:
	default:
		// Channel full, record synchronously as fallback
		_ = s.movementRepo.Create(ctx, &movement)
	}
}
