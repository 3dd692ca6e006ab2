package dto

import (
	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin moderator"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type UserResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	IsAdmin            bool       `json:"is_admin"`
	IsModerator        bool       `json:"is_moderator"`
	AssignedLocationID *uuid.UUID `json:"assigned_location_id,omitempty"`
	MustChangePassword bool       `json:"must_change_password"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		IsAdmin:            user.IsAdmin,
		IsModerator:        user.IsModerator,
		AssignedLocationID: user.AssignedLocationID,
		MustChangePassword: user.MustChangePassword,
	}
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}
