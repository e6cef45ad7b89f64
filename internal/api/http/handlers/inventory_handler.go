package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/dto"
	"github.com/spec-kit/ops-console/internal/service"
)

// InventoryHandler exposes the product catalog.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.inventory.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromInventoryItems(items))
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CreateInventoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.inventory.Create(c.UserContext(), identity, service.InventoryInput{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromInventoryItem(item))
}

// Update handles PATCH /api/inventory/:id.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := resourceID(c, "inventory item")
	if err != nil {
		return err
	}
	var req dto.UpdateInventoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.inventory.Update(c.UserContext(), identity, id, service.InventoryPatch{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromInventoryItem(item))
}
