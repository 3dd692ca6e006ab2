package dto

import "github.com/google/uuid"

type SubmitReportRequest struct {
	LocationID   uuid.UUID `json:"location_id" validate:"required"`
	ServiceID    uuid.UUID `json:"service_id" validate:"required"`
	Area         string    `json:"area" validate:"required,max=255"`
	Description  string    `json:"description" validate:"required,max=2000"`
	ContactEmail string    `json:"contact_email" validate:"required,email"`
}
