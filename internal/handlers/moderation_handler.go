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

// ModerationHandler serves the moderation queue: pending reports for the
// moderator's city, approval and rejection, and the city's audit trail.
type ModerationHandler struct {
	reportService *services.ReportService
	auditRecorder *services.AuditRecorder
}

func NewModerationHandler(reportService *services.ReportService, auditRecorder *services.AuditRecorder) *ModerationHandler {
	return &ModerationHandler{reportService: reportService, auditRecorder: auditRecorder}
}

// moderationLocation resolves which city the caller may moderate. Moderators
// are pinned to their assigned city; admins pick one via the location_id
// query parameter.
func moderationLocation(c *fiber.Ctx) (uuid.UUID, error) {
	assigned, err := scope.GetAssignedLocationID(c)
	if err != nil {
		return uuid.Nil, err
	}
	if assigned != uuid.Nil {
		return assigned, nil
	}

	raw := c.Query("location_id")
	if raw == "" {
		return uuid.Nil, errors.New("location_id is required")
	}
	return uuid.Parse(raw)
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	locationID, err := moderationLocation(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	st := models.ReportStatus(c.Query("status", string(models.ReportPending)))
	if st != models.ReportPending && st != models.ReportApproved && st != models.ReportRejected {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "status must be pending, approved or rejected",
		})
	}

	reports, err := h.reportService.ListByLocation(c.Context(), locationID, st)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list reports",
		})
	}
	return c.JSON(reports)
}

func (h *ModerationHandler) Approve(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	// Moderators may only act on their own city's reports; admins carry no
	// assignment and are unrestricted.
	assigned, err := scope.GetAssignedLocationID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	report, newStatus, err := h.reportService.Approve(c.Context(), id, actor, assigned)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to approve report",
		})
	}

	return c.JSON(fiber.Map{"report": report, "service_status": newStatus})
}

func (h *ModerationHandler) Reject(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	assigned, err := scope.GetAssignedLocationID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	report, err := h.reportService.Reject(c.Context(), id, actor, assigned)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to reject report",
		})
	}

	return c.JSON(report)
}

// AuditLogs returns the newest audit entries for the moderator's city.
func (h *ModerationHandler) AuditLogs(c *fiber.Ctx) error {
	locationID, err := moderationLocation(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	limit := c.QueryInt("limit", 50)
	logs, err := h.auditRecorder.ListByLocation(c.Context(), locationID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list audit logs",
		})
	}
	return c.JSON(logs)
}
