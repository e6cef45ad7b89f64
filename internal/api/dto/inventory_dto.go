package dto

import (
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

// CreateInventoryRequest payload.
type CreateInventoryRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	SKU      string  `json:"sku" validate:"required,max=64"`
	Category string  `json:"category" validate:"max=100"`
	Price    float64 `json:"price" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
}

// UpdateInventoryRequest payload; absent fields are left unchanged.
type UpdateInventoryRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=200"`
	SKU      *string  `json:"sku" validate:"omitempty,min=1,max=64"`
	Category *string  `json:"category" validate:"omitempty,max=100"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock    *int     `json:"stock" validate:"omitempty,gte=0"`
}

// InventoryResponse view.
type InventoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromInventoryItem maps a catalog item.
func FromInventoryItem(i *domain.InventoryItem) InventoryResponse {
	return InventoryResponse{
		ID:        i.ID,
		Name:      i.Name,
		SKU:       i.SKU,
		Category:  i.Category,
		Price:     i.Price,
		Stock:     i.Stock,
		CreatedAt: i.CreatedAt,
	}
}

// FromInventoryItems maps a list.
func FromInventoryItems(items []domain.InventoryItem) []InventoryResponse {
	out := make([]InventoryResponse, len(items))
	for i := range items {
		out[i] = FromInventoryItem(&items[i])
	}
	return out
}
