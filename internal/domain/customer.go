package domain

import "time"

// Customer is a paying account.
type Customer struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Company      string
	TotalSpent   float64
	LastPurchase *time.Time
	Notes        []string
	CreatedAt    time.Time
}
