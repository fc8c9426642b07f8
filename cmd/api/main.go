package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/rabiijabrour/workers-production-system/internal/api/http"
	"github.com/rabiijabrour/workers-production-system/internal/api/http/handlers"
	"github.com/rabiijabrour/workers-production-system/internal/auth"
	"github.com/rabiijabrour/workers-production-system/internal/config"
	"github.com/rabiijabrour/workers-production-system/internal/events"
	"github.com/rabiijabrour/workers-production-system/internal/observability"
	"github.com/rabiijabrour/workers-production-system/internal/persistence"
	"github.com/rabiijabrour/workers-production-system/internal/repository"
	"github.com/rabiijabrour/workers-production-system/internal/service"
	"github.com/rabiijabrour/workers-production-system/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	workerRepo := repository.NewWorkerRepository(pool)
	productionRepo := repository.NewProductionRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher, logger)
	workerService := service.NewWorkerService(workerRepo, dispatcher)
	productionService := service.NewProductionService(productionRepo, redis, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, logger)
	notificationService.RegisterHandlers()

	if err := authService.EnsureDefaultAdmin(ctx, cfg.Bootstrap); err != nil {
		logger.Fatal("failed to seed default admin", zap.Error(err))
	}

	reminder := worker.NewReminderWorker(cfg.Reminder, notificationService, logger)
	if err := reminder.Start(); err != nil {
		logger.Fatal("failed to start reminder worker", zap.Error(err))
	}
	defer reminder.Stop()

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:            cfg.App.RequestTimeout(),
		ExposeErrorDetails: !cfg.App.IsProduction(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(authService),
		Workers:        handlers.NewWorkersHandler(workerService),
		Productions:    handlers.NewProductionsHandler(productionService),
		AuthMiddleware: authMiddleware,
		StaticDir:      cfg.App.StaticDir,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
