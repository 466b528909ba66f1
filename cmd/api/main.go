package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/simplon-hub/code-hub/internal/activation"
	httptransport "github.com/simplon-hub/code-hub/internal/api/http"
	"github.com/simplon-hub/code-hub/internal/api/http/handlers"
	"github.com/simplon-hub/code-hub/internal/auth"
	"github.com/simplon-hub/code-hub/internal/config"
	"github.com/simplon-hub/code-hub/internal/events"
	"github.com/simplon-hub/code-hub/internal/mail"
	"github.com/simplon-hub/code-hub/internal/observability"
	"github.com/simplon-hub/code-hub/internal/persistence"
	"github.com/simplon-hub/code-hub/internal/repository"
	"github.com/simplon-hub/code-hub/internal/service"
	"github.com/simplon-hub/code-hub/internal/storage"
	"github.com/simplon-hub/code-hub/internal/worker"
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

	store, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	mailer := mail.NewMailer(cfg.Mail, logger)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	downloadRepo := repository.NewDownloadRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)

	codeStore := activation.NewCodeStore(redis.Client, cfg.Activation.CodeTTL())

	activationService := service.NewActivationService(userRepo, codeStore, mailer, dispatcher, cfg.Auth.BcryptCost, logger)
	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	projectService := service.NewProjectService(projectRepo, store, dispatcher, logger)
	downloadService := service.NewDownloadService(projectRepo, downloadRepo, store, dispatcher, metrics, logger)
	activityService := service.NewActivityService(activityRepo, dispatcher, logger)
	adminService := service.NewAdminService(userRepo, dispatcher)
	exportService := service.NewExportService(adminService, downloadService)

	worker.StartActivityRecorder(activityService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 100 * 1024 * 1024, // project archives
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis, metrics, cfg.App.Version),
		Activation:     handlers.NewActivationHandler(activationService),
		Auth:           handlers.NewAuthHandler(authService),
		Projects:       handlers.NewProjectsHandler(projectService, metrics),
		Downloads:      handlers.NewDownloadsHandler(downloadService, store),
		Admin:          handlers.NewAdminHandler(adminService, activityService, exportService),
		AuthMiddleware: authMiddleware,
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
