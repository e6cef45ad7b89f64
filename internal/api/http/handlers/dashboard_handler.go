package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/dto"
	"github.com/spec-kit/ops-console/internal/service"
)

const defaultActivityLimit = 20

// DashboardHandler serves headline figures and the activity feed.
type DashboardHandler struct {
	analytics  *service.AnalyticsService
	activities *service.ActivityService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(analytics *service.AnalyticsService, activities *service.ActivityService) *DashboardHandler {
	return &DashboardHandler{analytics: analytics, activities: activities}
}

// Overview handles GET /api/analytics/overview.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.analytics.Overview(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OverviewResponse{
		Revenue: overview.Revenue,
		Leads:   overview.Leads,
		Deals:   overview.Deals,
	})
}

// Activities handles GET /api/activities?limit=N.
func (h *DashboardHandler) Activities(c *fiber.Ctx) error {
	limit := parseInt(c.Query("limit"), defaultActivityLimit)
	items, err := h.activities.Recent(c.UserContext(), int64(limit))
	if err != nil {
		return err
	}
	return c.JSON(items)
}
