package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/repository"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// InventoryService manages the product catalog.
type InventoryService struct {
	items repository.InventoryRepository
	publisher
}

// InventoryDependencies bundles collaborators for InventoryService.
type InventoryDependencies struct {
	InventoryRepo repository.InventoryRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// InventoryInput describes a new catalog item.
type InventoryInput struct {
	Name     string
	SKU      string
	Category string
	Price    float64
	Stock    int
}

// InventoryPatch carries partial item updates.
type InventoryPatch struct {
	Name     *string
	SKU      *string
	Category *string
	Price    *float64
	Stock    *int
}

// NewInventoryService constructs the service.
func NewInventoryService(deps InventoryDependencies) *InventoryService {
	return &InventoryService{
		items:     deps.InventoryRepo,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// List returns catalog items newest first.
func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.items.List(ctx)
}

// Create stores a new item.
func (s *InventoryService) Create(ctx context.Context, actor domain.Identity, input InventoryInput) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{
		Name:     strings.TrimSpace(input.Name),
		SKU:      strings.TrimSpace(input.SKU),
		Category: strings.TrimSpace(input.Category),
		Price:    input.Price,
		Stock:    input.Stock,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, skuConflict(err)
	}
	s.publish(ctx, events.EventInventoryChanged, actor, item.ID, events.NamedPayload{Name: item.Name})
	return item, nil
}

// Update applies patch to the item with id.
func (s *InventoryService) Update(ctx context.Context, actor domain.Identity, id string, patch InventoryPatch) (*domain.InventoryItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "inventory item")
	}
	if patch.Name != nil {
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.SKU != nil {
		item.SKU = strings.TrimSpace(*patch.SKU)
	}
	if patch.Category != nil {
		item.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Stock != nil {
		item.Stock = *patch.Stock
	}
	if err := s.items.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrSKUTaken) {
			return nil, skuConflict(err)
		}
		return nil, notFound(err, "inventory item")
	}
	s.publish(ctx, events.EventInventoryChanged, actor, item.ID, events.NamedPayload{Name: item.Name})
	return item, nil
}

func skuConflict(err error) error {
	if errors.Is(err, repository.ErrSKUTaken) {
		return apperrors.NewConflict("SKU already exists.", nil)
	}
	return err
}
