package services

import (
	"context"
	"fmt"
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
)

// Actor identifies who performed a mutation. Engine operations take it
// explicitly instead of pulling a session from ambient context.
type Actor struct {
	ID   string
	Name string
}

// SystemActor is used for sweep-originated mutations.
var SystemActor = Actor{ID: "system", Name: "System"}

// AuditRecorder appends immutable action records, newest first, capped at
// models.AuditLogCap entries.
type AuditRecorder struct {
	store AuditStore
	nowFn func() time.Time
}

func NewAuditRecorder(store AuditStore) *AuditRecorder {
	return &AuditRecorder{store: store, nowFn: time.Now}
}

// Record appends one entry and evicts anything beyond the cap. A store
// failure is returned to the caller; audit entries are never dropped
// silently.
func (a *AuditRecorder) Record(ctx context.Context, action string, actor Actor, locationID uuid.UUID) error {
	entry := &models.AuditLog{
		ID:              uuid.New(),
		Action:          action,
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		LocationID:      locationID,
		CreatedAt:       a.nowFn(),
	}

	if err := a.store.Insert(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	if err := a.store.TrimToNewest(ctx, models.AuditLogCap); err != nil {
		return fmt.Errorf("failed to trim audit log: %w", err)
	}
	return nil
}

// ListByLocation returns the newest entries for one location.
func (a *AuditRecorder) ListByLocation(ctx context.Context, locationID uuid.UUID, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > models.AuditLogCap {
		limit = models.AuditLogCap
	}
	return a.store.ListByLocation(ctx, locationID, limit)
}

// List returns the newest entries across all locations.
func (a *AuditRecorder) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > models.AuditLogCap {
		limit = models.AuditLogCap
	}
	return a.store.ListAll(ctx, limit)
}
