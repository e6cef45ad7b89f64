package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/repository"
)

// TicketService coordinates support tickets and their threads.
type TicketService struct {
	tickets  repository.TicketRepository
	messages repository.TicketMessageRepository
	publisher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	MessageRepo repository.TicketMessageRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Subject     string
	Customer    string
	Description string
	Priority    domain.TicketPriority
}

// TicketPatch carries partial ticket updates.
type TicketPatch struct {
	Subject     *string
	Description *string
	Status      *domain.TicketStatus
	Priority    *domain.TicketPriority
}

// TicketListFilter narrows ticket listings.
type TicketListFilter struct {
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	SearchTerm *string
}

// MessageInput describes a thread reply. Agent replies carry the caller's
// name; customer-side entries carry the ticket's customer.
type MessageInput struct {
	Text       string
	FromClient bool
}

const previewLength = 80

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:   deps.TicketRepo,
		messages:  deps.MessageRepo,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// List returns tickets newest first, each with its thread oldest first.
func (s *TicketService) List(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx, repository.TicketFilter{
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		SearchTerm: filter.SearchTerm,
	})
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return tickets, nil
	}

	ids := make([]string, len(tickets))
	for i := range tickets {
		ids[i] = tickets[i].ID
	}
	threads, err := s.messages.ListByTickets(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		tickets[i].Messages = threads[tickets[i].ID]
		if tickets[i].Messages == nil {
			tickets[i].Messages = []domain.TicketMessage{}
		}
	}
	return tickets, nil
}

// Get returns one ticket with its thread.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	msgs, err := s.messages.ListByTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket.Messages = msgs
	return ticket, nil
}

// Create opens a ticket.
func (s *TicketService) Create(ctx context.Context, actor domain.Identity, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Subject:     strings.TrimSpace(input.Subject),
		Customer:    strings.TrimSpace(input.Customer),
		Description: strings.TrimSpace(input.Description),
		Priority:    input.Priority,
		Status:      domain.TicketStatusOpen,
		Messages:    []domain.TicketMessage{},
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventTicketCreated, actor, ticket.ID, ticketPayload(ticket))
	return ticket, nil
}

// Update applies patch to the ticket with id.
func (s *TicketService) Update(ctx context.Context, actor domain.Identity, id string, patch TicketPatch) (*domain.Ticket, error) {
	ticket, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Subject != nil {
		ticket.Subject = strings.TrimSpace(*patch.Subject)
	}
	if patch.Description != nil {
		ticket.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		ticket.Status = *patch.Status
	}
	if patch.Priority != nil {
		ticket.Priority = *patch.Priority
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, notFound(err, "ticket")
	}
	s.publish(ctx, events.EventTicketUpdated, actor, ticket.ID, ticketPayload(ticket))
	return ticket, nil
}

// AddMessage appends a reply to the ticket thread.
func (s *TicketService) AddMessage(ctx context.Context, actor domain.Identity, ticketID string, input MessageInput) (*domain.TicketMessage, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFound(err, "ticket")
	}

	msg := &domain.TicketMessage{
		TicketID: ticket.ID,
		Sender:   actor.Name,
		Text:     strings.TrimSpace(input.Text),
		IsAdmin:  !input.FromClient,
	}
	if input.FromClient {
		msg.Sender = ticket.Customer
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	preview := msg.Text
	if r := []rune(preview); len(r) > previewLength {
		preview = string(r[:previewLength])
	}
	s.publish(ctx, events.EventTicketMessageAdded, actor, ticket.ID, events.TicketMessageAddedPayload{
		MessageID:   msg.ID,
		IsAdmin:     msg.IsAdmin,
		BodyPreview: preview,
	})
	return msg, nil
}

func ticketPayload(t *domain.Ticket) events.TicketPayload {
	return events.TicketPayload{Subject: t.Subject, Status: t.Status, Priority: t.Priority}
}
