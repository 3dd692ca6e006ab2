package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusCache caches the public per-location service listing. Implemented
// on Redis by the repository layer; a nil-safe no-op is used when Redis is
// not configured.
type StatusCache interface {
	GetServices(ctx context.Context, locationID uuid.UUID) ([]models.Service, bool)
	SetServices(ctx context.Context, locationID uuid.UUID, services []models.Service)
	Invalidate(ctx context.Context, locationID uuid.UUID)
}

// CatalogService manages the service catalog: admin add/remove, the manual
// status override, and the public status-page listing.
type CatalogService struct {
	db    *gorm.DB
	audit *AuditRecorder
	cache StatusCache
	nowFn func() time.Time
}

func NewCatalogService(db *gorm.DB, audit *AuditRecorder, cache StatusCache) *CatalogService {
	return &CatalogService{db: db, audit: audit, cache: cache, nowFn: time.Now}
}

// ListByLocation is the public status-page read path, served through the
// cache when possible.
func (s *CatalogService) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]models.Service, error) {
	if cached, ok := s.cache.GetServices(ctx, locationID); ok {
		return cached, nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Location{}).Where("id = ?", locationID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check location: %w", err)
	}
	if count == 0 {
		return nil, ErrLocationNotFound
	}

	var svcs []models.Service
	if err := s.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("created_at ASC").
		Find(&svcs).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	s.cache.SetServices(ctx, locationID, svcs)
	return svcs, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	if err := s.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (s *CatalogService) Add(ctx context.Context, locationID uuid.UUID, name, impact, description string, actor Actor) (*models.Service, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Location{}).Where("id = ?", locationID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check location: %w", err)
	}
	if count == 0 {
		return nil, ErrLocationNotFound
	}

	svc := models.Service{
		ID:          uuid.New(),
		LocationID:  locationID,
		Name:        name,
		Status:      models.StatusOperational,
		Impact:      impact,
		Description: description,
		LastUpdated: s.nowFn(),
	}

	if err := s.db.WithContext(ctx).Create(&svc).Error; err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.cache.Invalidate(ctx, locationID)

	action := fmt.Sprintf("Service added: %s (%s)", name, locationID)
	if err := s.audit.Record(ctx, action, actor, locationID); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	svc, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.cache.Invalidate(ctx, svc.LocationID)

	return s.audit.Record(ctx, fmt.Sprintf("Service removed: %s", svc.Name), actor, svc.LocationID)
}

// OverrideStatus is the direct administrative status write. It bypasses the
// derivation rule but stamps lastUpdated the same way, so the sweep treats
// overridden statuses identically.
func (s *CatalogService) OverrideStatus(ctx context.Context, id uuid.UUID, st models.ServiceStatus, actor Actor) (*models.Service, error) {
	if !st.Valid() {
		return nil, fmt.Errorf("invalid status %q", st)
	}

	svc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	if err := s.db.WithContext(ctx).Model(&models.Service{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": st, "last_updated": now}).Error; err != nil {
		return nil, fmt.Errorf("failed to update service status: %w", err)
	}
	svc.Status = st
	svc.LastUpdated = now

	s.cache.Invalidate(ctx, svc.LocationID)

	action := fmt.Sprintf("Service status changed: %s → %s", svc.Name, st)
	if err := s.audit.Record(ctx, action, actor, svc.LocationID); err != nil {
		return nil, err
	}
	return svc, nil
}
