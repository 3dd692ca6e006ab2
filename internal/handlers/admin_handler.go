package handlers

import (
	"errors"
	"time"

	"github.com/civixa/civixa-backend/internal/dto"
	"github.com/civixa/civixa-backend/internal/scope"
	"github.com/civixa/civixa-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler serves account management, the global audit trail and the
// manual sweep trigger.
type AdminHandler struct {
	userService   *services.UserService
	auditRecorder *services.AuditRecorder
	exportService *services.ExportService
	sweepService  *services.SweepService
}

func NewAdminHandler(userService *services.UserService, auditRecorder *services.AuditRecorder, exportService *services.ExportService, sweepService *services.SweepService) *AdminHandler {
	return &AdminHandler{
		userService:   userService,
		auditRecorder: auditRecorder,
		exportService: exportService,
		sweepService:  sweepService,
	}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list users",
		})
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(resp)
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "name, email, role and a temp_password of at least 8 characters are required",
		})
	}

	user, err := h.userService.Create(c.Context(), req.Name, req.Email, req.Role, req.TempPassword, req.AssignedLocationID, actor)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Email already in use",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	if err := h.userService.Delete(c.Context(), id, actor); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete user",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted"})
}

// AuditLogs returns the newest retained entries across all cities.
func (h *AdminHandler) AuditLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	logs, err := h.auditRecorder.List(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list audit logs",
		})
	}
	return c.JSON(logs)
}

func (h *AdminHandler) ExportAuditLogs(c *fiber.Ctx) error {
	data, err := h.exportService.AuditLogCSV(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to export audit logs",
		})
	}

	filename := "audit_logs_" + time.Now().Format("2006-01-02") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// TriggerSweep runs one auto-recovery pass on demand.
func (h *AdminHandler) TriggerSweep(c *fiber.Ctx) error {
	reset, err := h.sweepService.Run(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Sweep failed",
		})
	}
	return c.JSON(fiber.Map{"reset": reset})
}
