package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the moderation state of a submitted report.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportApproved ReportStatus = "approved"
	ReportRejected ReportStatus = "rejected"
)

// Report is a community-submitted claim of a service disruption. Only the
// status field changes after creation; everything else is immutable.
type Report struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LocationID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"location_id"`
	ServiceID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"service_id"`
	Area         string       `gorm:"not null;size:255" json:"area"`
	Description  string       `gorm:"not null;size:2000" json:"description"`
	ContactEmail string       `gorm:"not null;size:255" json:"contact_email"`
	Status       ReportStatus `gorm:"not null;size:20;default:'pending';index" json:"status"`
	CreatedAt    time.Time    `gorm:"not null;index" json:"created_at"`
}
