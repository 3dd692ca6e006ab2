// Package scope extracts the authenticated identity from request context.
// Handlers pass the resulting actor into the engine explicitly; nothing
// below the HTTP layer reads the session.
package scope

import (
	"errors"

	"github.com/civixa/civixa-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func claims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return mapClaims, nil
}

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	mapClaims, err := claims(c)
	if err != nil {
		return uuid.Nil, err
	}
	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// GetActor builds the engine actor from JWT claims in context.
func GetActor(c *fiber.Ctx) (services.Actor, error) {
	mapClaims, err := claims(c)
	if err != nil {
		return services.Actor{}, err
	}
	sub, _ := mapClaims["sub"].(string)
	name, _ := mapClaims["name"].(string)
	if sub == "" {
		return services.Actor{}, errors.New("missing sub claim")
	}
	return services.Actor{ID: sub, Name: name}, nil
}

// GetAssignedLocationID returns the moderator's assigned location, or
// uuid.Nil when none is assigned.
func GetAssignedLocationID(c *fiber.Ctx) (uuid.UUID, error) {
	mapClaims, err := claims(c)
	if err != nil {
		return uuid.Nil, err
	}
	raw, ok := mapClaims["assigned_location_id"].(string)
	if !ok || raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

// IsAdmin reports whether the token carries the admin role.
func IsAdmin(c *fiber.Ctx) bool {
	mapClaims, err := claims(c)
	if err != nil {
		return false
	}
	isAdmin, _ := mapClaims["is_admin"].(bool)
	return isAdmin
}

// IsModerator reports whether the token carries the moderator role.
func IsModerator(c *fiber.Ctx) bool {
	mapClaims, err := claims(c)
	if err != nil {
		return false
	}
	isModerator, _ := mapClaims["is_moderator"].(bool)
	return isModerator
}
