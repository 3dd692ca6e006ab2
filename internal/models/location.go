package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Location is a city-scoped grouping of services and reports.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Slug      string    `gorm:"not null;size:255;uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationSlug derives the storage slug from a display name.
func LocationSlug(name string) string {
	return "civixa_" + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
