package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/ops-console/internal/api/http/handlers"
	"github.com/spec-kit/ops-console/internal/auth"
	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tracking       *handlers.TrackingHandler
	Leads          *handlers.LeadsHandler
	Deals          *handlers.DealsHandler
	Tickets        *handlers.TicketsHandler
	Customers      *handlers.CustomersHandler
	Inventory      *handlers.InventoryHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
	AuthRateLimit  int
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")

	// One limiter so register and login draw from the same per-IP budget.
	throttle := authRateLimiter(cfg.AuthRateLimit)
	authn := cfg.AuthMiddleware.Handle
	managers := auth.RequireRole(domain.RoleAdmin, domain.RoleManager)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", throttle, cfg.Users.Register)
	authGroup.Post("/login", throttle, cfg.Users.Login)
	authGroup.Put("/profile", authn, cfg.Users.UpdateProfile)

	// Authentication is mounted per resource group so unknown /api paths
	// fall through to 404.
	tracking := api.Group("/tracking", authn)
	tracking.Get("/", cfg.Tracking.List)
	tracking.Get("/current", cfg.Tracking.Current)
	tracking.Post("/checkin", cfg.Tracking.CheckIn)
	tracking.Post("/checkout", cfg.Tracking.CheckOut)

	leads := api.Group("/leads", authn)
	leads.Get("/", cfg.Leads.List)
	leads.Post("/", cfg.Leads.Create)
	leads.Patch("/:id", cfg.Leads.Update)
	leads.Post("/:id/insight", cfg.Leads.Insight)
	leads.Post("/:id/score-reasoning", cfg.Leads.ScoreReasoning)

	deals := api.Group("/deals", authn)
	deals.Get("/", cfg.Deals.List)
	deals.Post("/", cfg.Deals.Create)
	deals.Patch("/:id", cfg.Deals.Update)

	tickets := api.Group("/tickets", authn)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id", cfg.Tickets.UpdateTicket)
	tickets.Post("/:id/messages", cfg.Tickets.AddMessage)

	customers := api.Group("/customers", authn)
	customers.Get("/", cfg.Customers.List)
	customers.Post("/", managers, cfg.Customers.Create)

	inventory := api.Group("/inventory", authn)
	inventory.Get("/", cfg.Inventory.List)
	inventory.Post("/", managers, cfg.Inventory.Create)
	inventory.Patch("/:id", managers, cfg.Inventory.Update)

	api.Get("/analytics/overview", authn, cfg.Dashboard.Overview)
	api.Get("/activities", authn, cfg.Dashboard.Activities)
}
