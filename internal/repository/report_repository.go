// Package repository provides the GORM and Redis implementations of the
// store interfaces declared by the services package.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/civixa/civixa-backend/internal/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) services.ReportStore {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

func (r *ReportRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update report status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return services.ErrReportNotFound
	}
	return nil
}

func (r *ReportRepository) ListAll(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (r *ReportRepository) ListByLocation(ctx context.Context, locationID uuid.UUID, status models.ReportStatus) ([]models.Report, error) {
	query := r.db.WithContext(ctx).Where("location_id = ?", locationID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []models.Report
	if err := query.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports by location: %w", err)
	}
	return reports, nil
}
