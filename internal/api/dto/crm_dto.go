package dto

import (
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

// CreateLeadRequest payload.
type CreateLeadRequest struct {
	Name           string            `json:"name" validate:"required,max=200"`
	Company        string            `json:"company" validate:"max=200"`
	Email          string            `json:"email" validate:"omitempty,email"`
	Status         domain.LeadStatus `json:"status" validate:"omitempty,oneof=New Contacted Qualified Lost"`
	Score          int               `json:"score" validate:"gte=0,lte=100"`
	LastContact    *time.Time        `json:"lastContact"`
	EstimatedValue float64           `json:"estimatedValue" validate:"gte=0"`
}

// UpdateLeadRequest payload; absent fields are left unchanged.
type UpdateLeadRequest struct {
	Name           *string            `json:"name" validate:"omitempty,min=1,max=200"`
	Company        *string            `json:"company" validate:"omitempty,max=200"`
	Email          *string            `json:"email" validate:"omitempty,email"`
	Status         *domain.LeadStatus `json:"status" validate:"omitempty,oneof=New Contacted Qualified Lost"`
	Score          *int               `json:"score" validate:"omitempty,gte=0,lte=100"`
	LastContact    *time.Time         `json:"lastContact"`
	EstimatedValue *float64           `json:"estimatedValue" validate:"omitempty,gte=0"`
}

// LeadResponse view.
type LeadResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Company        string            `json:"company"`
	Email          string            `json:"email"`
	Status         domain.LeadStatus `json:"status"`
	Score          int               `json:"score"`
	LastContact    *time.Time        `json:"lastContact"`
	EstimatedValue float64           `json:"estimatedValue"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// InsightResponse carries generated text.
type InsightResponse struct {
	Text string `json:"text"`
}

// FromLead maps a domain lead.
func FromLead(l *domain.Lead) LeadResponse {
	return LeadResponse{
		ID:             l.ID,
		Name:           l.Name,
		Company:        l.Company,
		Email:          l.Email,
		Status:         l.Status,
		Score:          l.Score,
		LastContact:    l.LastContact,
		EstimatedValue: l.EstimatedValue,
		CreatedAt:      l.CreatedAt,
	}
}

// FromLeads maps a list.
func FromLeads(leads []domain.Lead) []LeadResponse {
	out := make([]LeadResponse, len(leads))
	for i := range leads {
		out[i] = FromLead(&leads[i])
	}
	return out
}

// CreateDealRequest payload.
type CreateDealRequest struct {
	Title       string           `json:"title" validate:"required,max=200"`
	Company     string           `json:"company" validate:"max=200"`
	Value       float64          `json:"value" validate:"gte=0"`
	Stage       domain.DealStage `json:"stage" validate:"omitempty,oneof=Prospect Proposal Negotiation 'Closed Won' 'Closed Lost'"`
	Probability int              `json:"probability" validate:"gte=0,lte=100"`
}

// UpdateDealRequest payload; absent fields are left unchanged.
type UpdateDealRequest struct {
	Title       *string           `json:"title" validate:"omitempty,min=1,max=200"`
	Company     *string           `json:"company" validate:"omitempty,max=200"`
	Value       *float64          `json:"value" validate:"omitempty,gte=0"`
	Stage       *domain.DealStage `json:"stage" validate:"omitempty,oneof=Prospect Proposal Negotiation 'Closed Won' 'Closed Lost'"`
	Probability *int              `json:"probability" validate:"omitempty,gte=0,lte=100"`
}

// DealResponse view.
type DealResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Company     string           `json:"company"`
	Value       float64          `json:"value"`
	Stage       domain.DealStage `json:"stage"`
	Probability int              `json:"probability"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// FromDeal maps a domain deal.
func FromDeal(d *domain.Deal) DealResponse {
	return DealResponse{
		ID:          d.ID,
		Title:       d.Title,
		Company:     d.Company,
		Value:       d.Value,
		Stage:       d.Stage,
		Probability: d.Probability,
		CreatedAt:   d.CreatedAt,
	}
}

// FromDeals maps a list.
func FromDeals(deals []domain.Deal) []DealResponse {
	out := make([]DealResponse, len(deals))
	for i := range deals {
		out[i] = FromDeal(&deals[i])
	}
	return out
}

// CreateCustomerRequest payload.
type CreateCustomerRequest struct {
	Name         string     `json:"name" validate:"required,max=200"`
	Email        string     `json:"email" validate:"omitempty,email"`
	Phone        string     `json:"phone" validate:"max=50"`
	Company      string     `json:"company" validate:"max=200"`
	TotalSpent   float64    `json:"totalSpent" validate:"gte=0"`
	LastPurchase *time.Time `json:"lastPurchase"`
	Notes        []string   `json:"notes" validate:"max=50,dive,max=1000"`
}

// CustomerResponse view.
type CustomerResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Company      string     `json:"company"`
	TotalSpent   float64    `json:"totalSpent"`
	LastPurchase *time.Time `json:"lastPurchase"`
	Notes        []string   `json:"notes"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// FromCustomers maps a list.
func FromCustomers(customers []domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = FromCustomer(&customers[i])
	}
	return out
}

// FromCustomer maps a domain customer.
func FromCustomer(c *domain.Customer) CustomerResponse {
	notes := c.Notes
	if notes == nil {
		notes = []string{}
	}
	return CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Company:      c.Company,
		TotalSpent:   c.TotalSpent,
		LastPurchase: c.LastPurchase,
		Notes:        notes,
		CreatedAt:    c.CreatedAt,
	}
}

// OverviewResponse holds dashboard headline figures.
type OverviewResponse struct {
	Revenue float64 `json:"revenue"`
	Leads   int64   `json:"leads"`
	Deals   int64   `json:"deals"`
}
