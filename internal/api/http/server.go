package http

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/observability"
)

// ServerConfig collects everything needed to build the fiber app.
type ServerConfig struct {
	AppName    string
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Middleware MiddlewareConfig
	Routes     RouteConfig
}

// NewServer builds the fiber app with the global middleware chain and routes.
func NewServer(cfg ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	RegisterMiddlewares(app, logger, cfg.Metrics, cfg.Middleware)

	routes := cfg.Routes
	routes.Metrics = cfg.Metrics
	RegisterRoutes(app, routes)
	return app
}
