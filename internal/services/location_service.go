package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationService covers admin CRUD on locations. Deleting a location
// cascades to its services and reports.
type LocationService struct {
	db    *gorm.DB
	audit *AuditRecorder
	cache StatusCache
}

func NewLocationService(db *gorm.DB, audit *AuditRecorder, cache StatusCache) *LocationService {
	return &LocationService{db: db, audit: audit, cache: cache}
}

func (s *LocationService) List(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var location models.Location
	if err := s.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return &location, nil
}

func (s *LocationService) Create(ctx context.Context, name string, actor Actor) (*models.Location, error) {
	location := models.Location{
		ID:   uuid.New(),
		Name: name,
		Slug: models.LocationSlug(name),
	}

	if err := s.db.WithContext(ctx).Create(&location).Error; err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	if err := s.audit.Record(ctx, fmt.Sprintf("Location created: %s", name), actor, location.ID); err != nil {
		return nil, err
	}
	return &location, nil
}

func (s *LocationService) Rename(ctx context.Context, id uuid.UUID, name string, actor Actor) (*models.Location, error) {
	location, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	location.Name = name
	location.Slug = models.LocationSlug(name)
	if err := s.db.WithContext(ctx).Model(&models.Location{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": location.Name, "slug": location.Slug}).Error; err != nil {
		return nil, fmt.Errorf("failed to rename location: %w", err)
	}

	if err := s.audit.Record(ctx, fmt.Sprintf("Location renamed to: %s", name), actor, id); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete removes the location together with its services and reports.
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	location, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("location_id = ?", id).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Where("location_id = ?", id).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Location{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	s.cache.Invalidate(ctx, id)

	return s.audit.Record(ctx, fmt.Sprintf("Location deleted: %s", location.Name), actor, id)
}
