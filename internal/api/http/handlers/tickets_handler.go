package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/dto"
	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/service"
	"github.com/spec-kit/ops-console/internal/validation"
)

// TicketsHandler manages support ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	query := parseTicketQuery(c)
	if err := validation.Struct(query); err != nil {
		return err
	}

	tickets, err := h.service.List(c.UserContext(), service.TicketListFilter{
		Statuses:   query.Statuses,
		Priorities: query.Priorities,
		SearchTerm: query.Search,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTickets(tickets))
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := resourceID(c, "ticket")
	if err != nil {
		return err
	}
	ticket, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTicket(ticket))
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ticket, err := h.service.Create(c.UserContext(), identity, service.TicketCreateInput{
		Subject:     req.Subject,
		Customer:    req.Customer,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromTicket(ticket))
}

// UpdateTicket PATCH /api/tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := resourceID(c, "ticket")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ticket, err := h.service.Update(c.UserContext(), identity, id, service.TicketPatch{
		Subject:     req.Subject,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTicket(ticket))
}

// AddMessage POST /api/tickets/:id/messages.
func (h *TicketsHandler) AddMessage(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := resourceID(c, "ticket")
	if err != nil {
		return err
	}
	var req dto.CreateMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := h.service.AddMessage(c.UserContext(), identity, id, service.MessageInput{
		Text:       req.Text,
		FromClient: req.IsAdmin != nil && !*req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromTicketMessage(msg))
}

func parseTicketQuery(c *fiber.Ctx) dto.TicketListQuery {
	var query dto.TicketListQuery
	for _, s := range splitQuery(c.Query("status")) {
		query.Statuses = append(query.Statuses, domain.TicketStatus(s))
	}
	for _, p := range splitQuery(c.Query("priority")) {
		query.Priorities = append(query.Priorities, domain.TicketPriority(p))
	}
	if q := strings.TrimSpace(c.Query("search")); q != "" {
		query.Search = &q
	}
	return query
}
