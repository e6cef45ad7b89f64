package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/dto"
	"github.com/spec-kit/ops-console/internal/service"
)

// LeadsHandler exposes the sales pipeline lead endpoints.
type LeadsHandler struct {
	leads   *service.LeadService
	insight *service.InsightService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leads *service.LeadService, insight *service.InsightService) *LeadsHandler {
	return &LeadsHandler{leads: leads, insight: insight}
}

// List handles GET /api/leads.
func (h *LeadsHandler) List(c *fiber.Ctx) error {
	leads, err := h.leads.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromLeads(leads))
}

// Create handles POST /api/leads.
func (h *LeadsHandler) Create(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CreateLeadRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lead, err := h.leads.Create(c.UserContext(), identity, service.LeadInput{
		Name:           req.Name,
		Company:        req.Company,
		Email:          req.Email,
		Status:         req.Status,
		Score:          req.Score,
		LastContact:    req.LastContact,
		EstimatedValue: req.EstimatedValue,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromLead(lead))
}

// Update handles PATCH /api/leads/:id.
func (h *LeadsHandler) Update(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := resourceID(c, "lead")
	if err != nil {
		return err
	}
	var req dto.UpdateLeadRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lead, err := h.leads.Update(c.UserContext(), identity, id, service.LeadPatch{
		Name:           req.Name,
		Company:        req.Company,
		Email:          req.Email,
		Status:         req.Status,
		Score:          req.Score,
		LastContact:    req.LastContact,
		EstimatedValue: req.EstimatedValue,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromLead(lead))
}

// Insight handles POST /api/leads/:id/insight.
func (h *LeadsHandler) Insight(c *fiber.Ctx) error {
	id, err := resourceID(c, "lead")
	if err != nil {
		return err
	}
	text, err := h.insight.LeadInsight(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.InsightResponse{Text: text})
}

// ScoreReasoning handles POST /api/leads/:id/score-reasoning.
func (h *LeadsHandler) ScoreReasoning(c *fiber.Ctx) error {
	id, err := resourceID(c, "lead")
	if err != nil {
		return err
	}
	text, err := h.insight.ScoreReasoning(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.InsightResponse{Text: text})
}
