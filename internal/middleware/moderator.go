package middleware

import (
	"github.com/civixa/civixa-backend/internal/dto"
	"github.com/civixa/civixa-backend/internal/models"
	"github.com/civixa/civixa-backend/internal/scope"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ModeratorRequired admits moderators and admins.
func ModeratorRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !scope.IsModerator(c) && !scope.IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Moderator access required",
			})
		}

		userID, err := scope.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil || (!user.IsModerator && !user.IsAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Moderator access required",
			})
		}

		return c.Next()
	}
}
