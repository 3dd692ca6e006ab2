package handlers

import (
	"errors"
	"fmt"

	"github.com/civixa/civixa-backend/internal/dto"
	"github.com/civixa/civixa-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ReportHandler serves the public report submission endpoint.
type ReportHandler struct {
	reportService *services.ReportService
	cooldown      *services.CooldownService
}

func NewReportHandler(reportService *services.ReportService, cooldown *services.CooldownService) *ReportHandler {
	return &ReportHandler{reportService: reportService, cooldown: cooldown}
}

func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "location_id, service_id, area, description and a valid contact_email are required",
		})
	}

	ok, remaining, err := h.cooldown.Allow(c.Context(), req.ContactEmail)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to submit report",
		})
	}
	if !ok {
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Error:   true,
			Message: fmt.Sprintf("Please wait %d seconds before submitting another report", int(remaining.Seconds())),
		})
	}

	report, err := h.reportService.Submit(c.Context(), req.LocationID, req.ServiceID, req.Area, req.Description, req.ContactEmail)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) || errors.Is(err, services.ErrServiceNotInCity) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Service not found in this city",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to submit report",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}
