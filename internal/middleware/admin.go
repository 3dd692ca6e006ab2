package middleware

import (
	"github.com/civixa/civixa-backend/internal/config"
	"github.com/civixa/civixa-backend/internal/dto"
	"github.com/civixa/civixa-backend/internal/models"
	"github.com/civixa/civixa-backend/internal/scope"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRequired checks either the operator token header or, for regular
// sessions, the admin claim confirmed against the user row (so a revoked
// admin cannot ride out a stale token).
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		if !scope.IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		userID, err := scope.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil || !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}
