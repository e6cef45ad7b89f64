package domain

import "time"

// InventoryItem is a catalog product with stock on hand.
type InventoryItem struct {
	ID        string
	Name      string
	SKU       string
	Category  string
	Price     float64
	Stock     int
	CreatedAt time.Time
}
