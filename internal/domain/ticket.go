package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
)

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// Ticket is a customer support request with its message thread.
type Ticket struct {
	ID          string
	Subject     string
	Customer    string
	Priority    TicketPriority
	Status      TicketStatus
	Description string
	CreatedAt   time.Time
	Messages    []TicketMessage
}
