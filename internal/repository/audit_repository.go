package repository

import (
	"context"
	"fmt"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/civixa/civixa-backend/internal/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) services.AuditStore {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// TrimToNewest evicts everything beyond the max newest entries.
func (r *AuditRepository) TrimToNewest(ctx context.Context, max int) error {
	err := r.db.WithContext(ctx).Exec(`
		DELETE FROM audit_logs
		WHERE id NOT IN (
			SELECT id FROM audit_logs ORDER BY created_at DESC LIMIT ?
		)`, max).Error
	if err != nil {
		return fmt.Errorf("failed to trim audit log: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListByLocation(ctx context.Context, locationID uuid.UUID, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	if err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}

func (r *AuditRepository) ListAll(ctx context.Context, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
