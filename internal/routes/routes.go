package routes

import (
	"time"

	"github.com/civixa/civixa-backend/internal/config"
	"github.com/civixa/civixa-backend/internal/handlers"
	"github.com/civixa/civixa-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	locationHandler *handlers.LocationHandler,
	serviceHandler *handlers.ServiceHandler,
	moderationHandler *handlers.ModerationHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public status page
	api.Get("/locations", locationHandler.List)
	api.Get("/locations/:locationId/services", serviceHandler.ListByLocation)

	// Public report submission, with a stricter limit on top of the Redis
	// per-submitter cooldown: 10 req/min per IP
	api.Post("/reports", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), reportHandler.Submit)

	// Auth-specific rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Post("/auth/change-password", middleware.JWTProtected(cfg), authHandler.ChangePassword)

	// Moderation panel (moderators pinned to their city, admins pick one)
	moderation := api.Group("/moderation", middleware.JWTProtected(cfg), middleware.ModeratorRequired(db))
	moderation.Get("/reports", moderationHandler.ListReports)
	moderation.Post("/reports/:id/approve", moderationHandler.Approve)
	moderation.Post("/reports/:id/reject", moderationHandler.Reject)
	moderation.Get("/audit-logs", moderationHandler.AuditLogs)

	// Admin panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/locations", locationHandler.Create)
	admin.Put("/locations/:id", locationHandler.Rename)
	admin.Delete("/locations/:id", locationHandler.Delete)

	admin.Post("/services", serviceHandler.Create)
	admin.Delete("/services/:id", serviceHandler.Delete)
	admin.Put("/services/:id/status", serviceHandler.OverrideStatus)
	admin.Get("/services/:id/derived-status", serviceHandler.DerivedStatus)

	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)

	admin.Get("/audit-logs", adminHandler.AuditLogs)
	admin.Get("/audit-logs/export", adminHandler.ExportAuditLogs)

	admin.Post("/sweep", adminHandler.TriggerSweep)
}
