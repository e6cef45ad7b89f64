package events

import (
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPresenceCheckedIn  EventType = "presence_checked_in"
	EventPresenceCheckedOut EventType = "presence_checked_out"
	EventUserRegistered     EventType = "user_registered"
	EventLeadCreated        EventType = "lead_created"
	EventLeadUpdated        EventType = "lead_updated"
	EventDealCreated        EventType = "deal_created"
	EventDealUpdated        EventType = "deal_updated"
	EventTicketCreated      EventType = "ticket_created"
	EventTicketUpdated      EventType = "ticket_updated"
	EventTicketMessageAdded EventType = "ticket_message_added"
	EventCustomerCreated    EventType = "customer_created"
	EventInventoryChanged   EventType = "inventory_changed"
)

// AllEventTypes lists every type a subscriber may want to follow.
var AllEventTypes = []EventType{
	EventPresenceCheckedIn,
	EventPresenceCheckedOut,
	EventUserRegistered,
	EventLeadCreated,
	EventLeadUpdated,
	EventDealCreated,
	EventDealUpdated,
	EventTicketCreated,
	EventTicketUpdated,
	EventTicketMessageAdded,
	EventCustomerCreated,
	EventInventoryChanged,
}

// Actor encapsulates actor metadata for an event.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ActorFrom converts an authenticated identity.
func ActorFrom(identity domain.Identity) Actor {
	return Actor{ID: identity.ID, Name: identity.Name}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PresencePayload payload.
type PresencePayload struct {
	Location string `json:"location"`
}

// LeadPayload payload.
type LeadPayload struct {
	Name    string            `json:"name"`
	Company string            `json:"company"`
	Status  domain.LeadStatus `json:"status"`
}

// DealPayload payload.
type DealPayload struct {
	Title    string           `json:"title"`
	Value    float64          `json:"value"`
	OldStage domain.DealStage `json:"old_stage,omitempty"`
	NewStage domain.DealStage `json:"new_stage"`
}

// TicketPayload payload.
type TicketPayload struct {
	Subject  string                `json:"subject"`
	Status   domain.TicketStatus   `json:"status"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketMessageAddedPayload payload.
type TicketMessageAddedPayload struct {
	MessageID   string `json:"message_id"`
	IsAdmin     bool   `json:"is_admin"`
	BodyPreview string `json:"body_preview"`
}

// NamedPayload carries a display name for simple create events.
type NamedPayload struct {
	Name string `json:"name"`
}
