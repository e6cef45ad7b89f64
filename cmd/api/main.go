package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ops-console/internal/api/http"
	"github.com/spec-kit/ops-console/internal/api/http/handlers"
	"github.com/spec-kit/ops-console/internal/auth"
	"github.com/spec-kit/ops-console/internal/config"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/insight"
	"github.com/spec-kit/ops-console/internal/observability"
	"github.com/spec-kit/ops-console/internal/persistence"
	"github.com/spec-kit/ops-console/internal/repository"
	"github.com/spec-kit/ops-console/internal/service"
	"github.com/spec-kit/ops-console/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics("ops_console")
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.Pool
	userRepo := repository.NewUserRepository(pool)
	logRepo := repository.NewEmployeeLogRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	dealRepo := repository.NewDealRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewTicketMessageRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)
	activityRepo := repository.NewActivityRepository(redis.Client, cfg.Activity.Key, cfg.Activity.MaxItems)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	presenceService := service.NewPresenceService(service.PresenceDependencies{
		LogRepo:    logRepo,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	leadService := service.NewLeadService(service.LeadDependencies{LeadRepo: leadRepo, Dispatcher: dispatcher, Logger: logger})
	dealService := service.NewDealService(service.DealDependencies{DealRepo: dealRepo, Dispatcher: dispatcher, Logger: logger})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		MessageRepo: messageRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	customerService := service.NewCustomerService(service.CustomerDependencies{CustomerRepo: customerRepo, Dispatcher: dispatcher, Logger: logger})
	inventoryService := service.NewInventoryService(service.InventoryDependencies{InventoryRepo: inventoryRepo, Dispatcher: dispatcher, Logger: logger})
	insightService := service.NewInsightService(service.InsightDependencies{
		LeadRepo:  leadRepo,
		Generator: insight.New(cfg.Insight),
		Metrics:   metrics,
		Logger:    logger,
	})
	analyticsService := service.NewAnalyticsService(analyticsRepo)
	activityService := service.NewActivityService(dispatcher, activityRepo, logger)
	worker.StartActivityWorker(activityService)

	app := httptransport.NewServer(httptransport.ServerConfig{
		AppName: cfg.App.Name,
		Logger:  logger,
		Metrics: metrics,
		Middleware: httptransport.MiddlewareConfig{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			Timeout:        cfg.App.RequestTimeout(),
		},
		Routes: httptransport.RouteConfig{
			Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
				"postgres": pg,
				"redis":    redis,
			}),
			Users:          handlers.NewUsersHandler(authService),
			Tracking:       handlers.NewTrackingHandler(presenceService),
			Leads:          handlers.NewLeadsHandler(leadService, insightService),
			Deals:          handlers.NewDealsHandler(dealService),
			Tickets:        handlers.NewTicketsHandler(ticketService),
			Customers:      handlers.NewCustomersHandler(customerService),
			Inventory:      handlers.NewInventoryHandler(inventoryService),
			Dashboard:      handlers.NewDashboardHandler(analyticsService, activityService),
			AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
			AuthRateLimit:  cfg.HTTP.AuthRateLimitPerMin,
		},
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
