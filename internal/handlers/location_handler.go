package handlers

import (
	"errors"

	"github.com/civixa/civixa-backend/internal/dto"
	"github.com/civixa/civixa-backend/internal/scope"
	"github.com/civixa/civixa-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LocationHandler serves the public city listing and admin city CRUD.
type LocationHandler struct {
	locationService *services.LocationService
}

func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

func (h *LocationHandler) List(c *fiber.Ctx) error {
	locations, err := h.locationService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list cities",
		})
	}
	return c.JSON(locations)
}

func (h *LocationHandler) Create(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "name is required",
		})
	}

	location, err := h.locationService.Create(c.Context(), req.Name, actor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create city",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

func (h *LocationHandler) Rename(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid city ID",
		})
	}

	var req dto.RenameLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "name is required",
		})
	}

	location, err := h.locationService.Rename(c.Context(), id, req.Name, actor)
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "City not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to rename city",
		})
	}
	return c.JSON(location)
}

func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid city ID",
		})
	}

	if err := h.locationService.Delete(c.Context(), id, actor); err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "City not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete city",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "City deleted"})
}
