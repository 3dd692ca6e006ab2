package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/civixa/civixa-backend/internal/config"
	"github.com/civixa/civixa-backend/internal/database"
	"github.com/civixa/civixa-backend/internal/handlers"
	"github.com/civixa/civixa-backend/internal/logging"
	"github.com/civixa/civixa-backend/internal/middleware"
	"github.com/civixa/civixa-backend/internal/repository"
	"github.com/civixa/civixa-backend/internal/routes"
	"github.com/civixa/civixa-backend/internal/seed"
	"github.com/civixa/civixa-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Redis is optional: without it the status cache and report cooldown
	// degrade to pass-through behavior.
	rdb, err := database.ConnectRedis(cfg)
	if err != nil {
		slog.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.SystemLogRetention, cleanupDone)

	// Stores
	statusCache := repository.NewStatusCache(rdb)
	reportStore := repository.NewReportRepository(database.DB)
	serviceStore := repository.NewServiceRepository(database.DB, statusCache)
	auditStore := repository.NewAuditRepository(database.DB)

	// Services
	auditRecorder := services.NewAuditRecorder(auditStore)
	reportService := services.NewReportService(reportStore, serviceStore, auditRecorder)
	sweepService := services.NewSweepService(serviceStore, auditRecorder, cfg.RecoveryAfter)
	authService := services.NewAuthService(database.DB, cfg)
	locationService := services.NewLocationService(database.DB, auditRecorder, statusCache)
	catalogService := services.NewCatalogService(database.DB, auditRecorder, statusCache)
	userService := services.NewUserService(database.DB, auditRecorder)
	exportService := services.NewExportService(database.DB)
	cooldownService := services.NewCooldownService(rdb, cfg.ReportCooldown)

	if err := seed.Run(database.DB, cfg); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	reportHandler := handlers.NewReportHandler(reportService, cooldownService)
	locationHandler := handlers.NewLocationHandler(locationService)
	serviceHandler := handlers.NewServiceHandler(catalogService, reportService)
	moderationHandler := handlers.NewModerationHandler(reportService, auditRecorder)
	adminHandler := handlers.NewAdminHandler(userService, auditRecorder, exportService, sweepService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, database.DB, healthHandler, authHandler, reportHandler, locationHandler, serviceHandler, moderationHandler, adminHandler)

	// Auto-recovery sweep
	sweepDone := make(chan struct{})
	sweepService.Start(cfg.SweepInterval, sweepDone)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(sweepDone)
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
