package handlers

import (
	"errors"

	"github.com/civixa/civixa-backend/internal/dto"
	"github.com/civixa/civixa-backend/internal/models"
	"github.com/civixa/civixa-backend/internal/scope"
	"github.com/civixa/civixa-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ServiceHandler serves the public per-city status listing and admin
// catalog management.
type ServiceHandler struct {
	catalogService *services.CatalogService
	reportService  *services.ReportService
}

func NewServiceHandler(catalogService *services.CatalogService, reportService *services.ReportService) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService, reportService: reportService}
}

// ListByLocation is the public status page read: all services of one city
// with their current status.
func (h *ServiceHandler) ListByLocation(c *fiber.Ctx) error {
	locationID, err := uuid.Parse(c.Params("locationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid city ID",
		})
	}

	svcs, err := h.catalogService.ListByLocation(c.Context(), locationID)
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "City not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list services",
		})
	}
	return c.JSON(svcs)
}

func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "location_id and name are required",
		})
	}

	svc, err := h.catalogService.Add(c.Context(), req.LocationID, req.Name, req.Impact, req.Description, actor)
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "City not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create service",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(svc)
}

func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid service ID",
		})
	}

	if err := h.catalogService.Delete(c.Context(), id, actor); err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Service not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete service",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "Service deleted"})
}

// OverrideStatus sets a service's status directly, bypassing derivation.
func (h *ServiceHandler) OverrideStatus(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid service ID",
		})
	}

	var req dto.OverrideStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "status must be Operational, Warning or Interrupted",
		})
	}

	svc, err := h.catalogService.OverrideStatus(c.Context(), id, models.ServiceStatus(req.Status), actor)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Service not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update service status",
		})
	}
	return c.JSON(svc)
}

// DerivedStatus reports what the derivation rule would produce for the
// service right now, without writing anything.
func (h *ServiceHandler) DerivedStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid service ID",
		})
	}

	st, err := h.reportService.DeriveStatus(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Service not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to derive status",
		})
	}
	return c.JSON(fiber.Map{"service_id": id, "derived_status": st})
}
