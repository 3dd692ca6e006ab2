package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a dashboard account. Admins manage locations, services and users;
// moderators triage reports for their assigned location only.
type User struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name               string         `gorm:"not null;size:255" json:"name"`
	Email              string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password           string         `gorm:"not null" json:"-"`
	IsAdmin            bool           `gorm:"not null;default:false" json:"is_admin"`
	IsModerator        bool           `gorm:"not null;default:false" json:"is_moderator"`
	AssignedLocationID *uuid.UUID     `gorm:"type:uuid;index" json:"assigned_location_id,omitempty"`
	MustChangePassword bool           `gorm:"not null;default:false" json:"must_change_password"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
