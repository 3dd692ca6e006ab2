package dto

import "github.com/google/uuid"

type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type RenameLocationRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateServiceRequest struct {
	LocationID  uuid.UUID `json:"location_id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=255"`
	Impact      string    `json:"impact" validate:"max=500"`
	Description string    `json:"description" validate:"max=1000"`
}

type OverrideStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Operational Warning Interrupted"`
}

type CreateUserRequest struct {
	Name               string     `json:"name" validate:"required,max=255"`
	Email              string     `json:"email" validate:"required,email"`
	Role               string     `json:"role" validate:"required,oneof=admin moderator"`
	TempPassword       string     `json:"temp_password" validate:"required,min=8"`
	AssignedLocationID *uuid.UUID `json:"assigned_location_id,omitempty"`
}
