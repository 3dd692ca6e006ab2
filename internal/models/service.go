package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceStatus is the health label shown on the public status page.
type ServiceStatus string

const (
	StatusOperational ServiceStatus = "Operational"
	StatusWarning     ServiceStatus = "Warning"
	StatusInterrupted ServiceStatus = "Interrupted"
)

// Valid reports whether s is one of the three known status values.
func (s ServiceStatus) Valid() bool {
	switch s {
	case StatusOperational, StatusWarning, StatusInterrupted:
		return true
	}
	return false
}

// Service is a tracked civic utility within a location. LastUpdated is
// refreshed on every status change and drives the auto-recovery sweep.
type Service struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LocationID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"location_id"`
	Name        string        `gorm:"not null;size:255" json:"name"`
	Status      ServiceStatus `gorm:"not null;size:20;default:'Operational'" json:"status"`
	Impact      string        `gorm:"size:500" json:"impact"`
	Description string        `gorm:"size:1000" json:"description,omitempty"`
	LastUpdated time.Time     `gorm:"not null" json:"last_updated"`
	CreatedAt   time.Time     `json:"created_at"`
	Location    Location      `gorm:"foreignKey:LocationID" json:"-"`
}
