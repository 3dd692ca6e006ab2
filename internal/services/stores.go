package services

import (
	"context"
	"errors"
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrReportNotFound     = errors.New("report not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrLocationNotFound   = errors.New("location not found")
	ErrServiceNotInCity   = errors.New("service does not belong to the given location")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// ReportStore is the persistence boundary for reports. Implemented by the
// GORM repository in production and by in-memory fakes in tests.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error
	ListAll(ctx context.Context) ([]models.Report, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID, status models.ReportStatus) ([]models.Report, error)
}

// ServiceStore is the persistence boundary for services.
type ServiceStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.ServiceStatus, at time.Time) error
	ListNonOperational(ctx context.Context) ([]models.Service, error)

	// ResetIfStale forces a service back to Operational only if its
	// lastUpdated is still at or before cutoff at write time, so a status
	// refreshed in the same window is never reverted. Reports whether the
	// reset was applied.
	ResetIfStale(ctx context.Context, id uuid.UUID, cutoff, at time.Time) (bool, error)
}

// AuditStore is the persistence boundary for the audit trail.
type AuditStore interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
	TrimToNewest(ctx context.Context, max int) error
	ListByLocation(ctx context.Context, locationID uuid.UUID, limit int) ([]models.AuditLog, error)
	ListAll(ctx context.Context, limit int) ([]models.AuditLog, error)
}
