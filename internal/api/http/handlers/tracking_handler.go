package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/dto"
	"github.com/spec-kit/ops-console/internal/service"
)

// TrackingHandler exposes presence check-in/check-out endpoints.
type TrackingHandler struct {
	presence *service.PresenceService
}

// NewTrackingHandler constructs handler.
func NewTrackingHandler(presence *service.PresenceService) *TrackingHandler {
	return &TrackingHandler{presence: presence}
}

// List handles GET /api/tracking.
func (h *TrackingHandler) List(c *fiber.Ctx) error {
	logs, err := h.presence.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromEmployeeLogs(logs))
}

// CheckIn handles POST /api/tracking/checkin.
func (h *TrackingHandler) CheckIn(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CheckInRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	log, err := h.presence.CheckIn(c.UserContext(), identity, req.Location)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromEmployeeLog(log))
}

// CheckOut handles POST /api/tracking/checkout.
func (h *TrackingHandler) CheckOut(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	log, err := h.presence.CheckOut(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromEmployeeLog(log))
}

// Current handles GET /api/tracking/current.
func (h *TrackingHandler) Current(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	log, elapsed, err := h.presence.Current(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(dto.CurrentSessionResponse{
		Log:            dto.FromEmployeeLog(log),
		ElapsedSeconds: int64(elapsed.Seconds()),
	})
}
