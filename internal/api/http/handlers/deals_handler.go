package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/dto"
	"github.com/spec-kit/ops-console/internal/service"
)

// DealsHandler exposes deal endpoints.
type DealsHandler struct {
	deals *service.DealService
}

// NewDealsHandler constructs handler.
func NewDealsHandler(deals *service.DealService) *DealsHandler {
	return &DealsHandler{deals: deals}
}

// List handles GET /api/deals.
func (h *DealsHandler) List(c *fiber.Ctx) error {
	deals, err := h.deals.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromDeals(deals))
}

// Create handles POST /api/deals.
func (h *DealsHandler) Create(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CreateDealRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	deal, err := h.deals.Create(c.UserContext(), identity, service.DealInput{
		Title:       req.Title,
		Company:     req.Company,
		Value:       req.Value,
		Stage:       req.Stage,
		Probability: req.Probability,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromDeal(deal))
}

// Update handles PATCH /api/deals/:id.
func (h *DealsHandler) Update(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := resourceID(c, "deal")
	if err != nil {
		return err
	}
	var req dto.UpdateDealRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	deal, err := h.deals.Update(c.UserContext(), identity, id, service.DealPatch{
		Title:       req.Title,
		Company:     req.Company,
		Value:       req.Value,
		Stage:       req.Stage,
		Probability: req.Probability,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromDeal(deal))
}
