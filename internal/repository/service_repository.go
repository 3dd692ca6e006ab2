package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/civixa/civixa-backend/internal/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository struct {
	db    *gorm.DB
	cache services.StatusCache
}

func NewServiceRepository(db *gorm.DB, cache services.StatusCache) services.ServiceStore {
	return &ServiceRepository{db: db, cache: cache}
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (r *ServiceRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.ServiceStatus, at time.Time) error {
	var svc models.Service
	if err := r.db.WithContext(ctx).Select("location_id").First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrServiceNotFound
		}
		return fmt.Errorf("failed to get service: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.Service{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "last_updated": at})
	if result.Error != nil {
		return fmt.Errorf("failed to update service status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return services.ErrServiceNotFound
	}

	r.cache.Invalidate(ctx, svc.LocationID)
	return nil
}

func (r *ServiceRepository) ListNonOperational(ctx context.Context) ([]models.Service, error) {
	var svcs []models.Service
	if err := r.db.WithContext(ctx).
		Where("status <> ?", models.StatusOperational).
		Find(&svcs).Error; err != nil {
		return nil, fmt.Errorf("failed to list non-operational services: %w", err)
	}
	return svcs, nil
}

// ResetIfStale applies the sweep's guarded write: the status goes back to
// Operational only if last_updated has not moved past the cutoff since the
// caller looked.
func (r *ServiceRepository) ResetIfStale(ctx context.Context, id uuid.UUID, cutoff, at time.Time) (bool, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).Select("location_id").First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, services.ErrServiceNotFound
		}
		return false, fmt.Errorf("failed to get service: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.Service{}).
		Where("id = ? AND status <> ? AND last_updated <= ?", id, models.StatusOperational, cutoff).
		Updates(map[string]interface{}{"status": models.StatusOperational, "last_updated": at})
	if result.Error != nil {
		return false, fmt.Errorf("failed to reset service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.cache.Invalidate(ctx, svc.LocationID)
	return true, nil
}
