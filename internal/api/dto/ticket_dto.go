package dto

import (
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject     string                `json:"subject" validate:"required,max=200"`
	Customer    string                `json:"customer" validate:"required,max=200"`
	Description string                `json:"description" validate:"max=5000"`
	Priority    domain.TicketPriority `json:"priority" validate:"omitempty,oneof=Low Medium High"`
}

// UpdateTicketRequest payload; absent fields are left unchanged.
type UpdateTicketRequest struct {
	Subject     *string                `json:"subject" validate:"omitempty,min=1,max=200"`
	Description *string                `json:"description" validate:"omitempty,max=5000"`
	Status      *domain.TicketStatus   `json:"status" validate:"omitempty,oneof=Open 'In Progress' Resolved"`
	Priority    *domain.TicketPriority `json:"priority" validate:"omitempty,oneof=Low Medium High"`
}

// CreateMessageRequest payload. Replies are agent replies unless isAdmin is false.
type CreateMessageRequest struct {
	Text    string `json:"text" validate:"required,max=5000"`
	IsAdmin *bool  `json:"isAdmin"`
}

// TicketListQuery captures query filters.
type TicketListQuery struct {
	Statuses   []domain.TicketStatus   `json:"status" validate:"dive,oneof=Open 'In Progress' Resolved"`
	Priorities []domain.TicketPriority `json:"priority" validate:"dive,oneof=Low Medium High"`
	Search     *string                 `json:"search"`
}

// TicketResponse includes the thread.
type TicketResponse struct {
	ID          string                  `json:"id"`
	Subject     string                  `json:"subject"`
	Customer    string                  `json:"customer"`
	Priority    domain.TicketPriority   `json:"priority"`
	Status      domain.TicketStatus     `json:"status"`
	Description string                  `json:"description"`
	CreatedAt   time.Time               `json:"createdAt"`
	Messages    []TicketMessageResponse `json:"messages"`
}

// TicketMessageResponse represents thread message.
type TicketMessageResponse struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsAdmin   bool      `json:"isAdmin"`
}

// FromTicket maps a domain ticket.
func FromTicket(t *domain.Ticket) TicketResponse {
	msgs := make([]TicketMessageResponse, len(t.Messages))
	for i := range t.Messages {
		msgs[i] = FromTicketMessage(&t.Messages[i])
	}
	return TicketResponse{
		ID:          t.ID,
		Subject:     t.Subject,
		Customer:    t.Customer,
		Priority:    t.Priority,
		Status:      t.Status,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		Messages:    msgs,
	}
}

// FromTickets maps a list.
func FromTickets(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, len(tickets))
	for i := range tickets {
		out[i] = FromTicket(&tickets[i])
	}
	return out
}

// FromTicketMessage maps a thread entry.
func FromTicketMessage(m *domain.TicketMessage) TicketMessageResponse {
	return TicketMessageResponse{
		ID:        m.ID,
		Sender:    m.Sender,
		Text:      m.Text,
		Timestamp: m.CreatedAt,
		IsAdmin:   m.IsAdmin,
	}
}
