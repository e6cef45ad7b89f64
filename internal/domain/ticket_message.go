package domain

import "time"

// TicketMessage captures one entry in a ticket thread.
type TicketMessage struct {
	ID        string
	TicketID  string
	Sender    string
	Text      string
	IsAdmin   bool
	CreatedAt time.Time
}
