package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogCap is the maximum number of audit entries retained. The oldest
// entries are evicted after every insert.
const AuditLogCap = 200

// AuditLog is an append-only record of a mutating action. PerformedBy is a
// user id, or "system" for sweep-originated entries.
type AuditLog struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Action          string    `gorm:"not null;size:500" json:"action"`
	PerformedBy     string    `gorm:"not null;size:64" json:"performed_by"`
	PerformedByName string    `gorm:"not null;size:255" json:"performed_by_name"`
	LocationID      uuid.UUID `gorm:"type:uuid;not null;index" json:"location_id"`
	CreatedAt       time.Time `gorm:"not null;index" json:"created_at"`
}
