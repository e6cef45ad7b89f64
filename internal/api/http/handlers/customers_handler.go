package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/dto"
	"github.com/spec-kit/ops-console/internal/service"
)

// CustomersHandler exposes the customer directory.
type CustomersHandler struct {
	customers *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customers *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customers}
}

// List handles GET /api/customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	customers, err := h.customers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromCustomers(customers))
}

// Create handles POST /api/customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CreateCustomerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	customer, err := h.customers.Create(c.UserContext(), identity, service.CustomerInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		TotalSpent:   req.TotalSpent,
		LastPurchase: req.LastPurchase,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromCustomer(customer))
}
