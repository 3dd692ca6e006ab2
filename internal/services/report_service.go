package services

import (
	"context"
	"fmt"
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/civixa/civixa-backend/internal/status"
	"github.com/google/uuid"
)

// ReportService drives the report lifecycle: public submission, moderator
// approval/rejection, and the status recomputation that approval triggers.
type ReportService struct {
	reports  ReportStore
	services ServiceStore
	audit    *AuditRecorder
	nowFn    func() time.Time
}

func NewReportService(reports ReportStore, services ServiceStore, audit *AuditRecorder) *ReportService {
	return &ReportService{
		reports:  reports,
		services: services,
		audit:    audit,
		nowFn:    time.Now,
	}
}

// Submit stores a new pending report. Field-shape validation (email format,
// non-empty strings) is the HTTP boundary's job; the engine only enforces
// referential integrity so no orphan reports are created.
func (s *ReportService) Submit(ctx context.Context, locationID, serviceID uuid.UUID, area, description, contactEmail string) (*models.Report, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.LocationID != locationID {
		return nil, ErrServiceNotInCity
	}

	report := &models.Report{
		ID:           uuid.New(),
		LocationID:   locationID,
		ServiceID:    serviceID,
		Area:         area,
		Description:  description,
		ContactEmail: contactEmail,
		Status:       models.ReportPending,
		CreatedAt:    s.nowFn(),
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

// Approve marks the report approved, re-derives the owning service's status
// from the full report history, stamps the service, and records the
// transition. Partial effects are not rolled back on a late failure.
//
// A non-nil withinLocation restricts the operation to reports of that
// location; moderators pass their assigned city, admins pass uuid.Nil.
//
// Approving an already-approved report re-executes fully; there is no
// double-approval guard.
func (s *ReportService) Approve(ctx context.Context, reportID uuid.UUID, actor Actor, withinLocation uuid.UUID) (*models.Report, models.ServiceStatus, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, "", err
	}
	if withinLocation != uuid.Nil && report.LocationID != withinLocation {
		return nil, "", ErrReportNotFound
	}

	if err := s.reports.SetStatus(ctx, reportID, models.ReportApproved); err != nil {
		return nil, "", fmt.Errorf("failed to approve report: %w", err)
	}
	report.Status = models.ReportApproved

	all, err := s.reports.ListAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load report history: %w", err)
	}

	now := s.nowFn()
	newStatus := status.Derive(report.ServiceID, all, now)

	if err := s.services.SetStatus(ctx, report.ServiceID, newStatus, now); err != nil {
		// The service may have been deleted after the report was filed; the
		// approval itself still stands.
		if err != ErrServiceNotFound {
			return nil, "", fmt.Errorf("failed to update service status: %w", err)
		}
	}

	action := fmt.Sprintf("Report approved: %s → Service status: %s", truncate(report.Description, 50), newStatus)
	if err := s.audit.Record(ctx, action, actor, report.LocationID); err != nil {
		return nil, "", err
	}

	return report, newStatus, nil
}

// Reject marks the report rejected and records the action. Service status is
// never recomputed on rejection. withinLocation scopes the operation the
// same way as Approve.
func (s *ReportService) Reject(ctx context.Context, reportID uuid.UUID, actor Actor, withinLocation uuid.UUID) (*models.Report, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if withinLocation != uuid.Nil && report.LocationID != withinLocation {
		return nil, ErrReportNotFound
	}

	if err := s.reports.SetStatus(ctx, reportID, models.ReportRejected); err != nil {
		return nil, fmt.Errorf("failed to reject report: %w", err)
	}
	report.Status = models.ReportRejected

	action := fmt.Sprintf("Report rejected: %s", truncate(report.Description, 50))
	if err := s.audit.Record(ctx, action, actor, report.LocationID); err != nil {
		return nil, err
	}

	return report, nil
}

// ListByLocation returns reports for a location, optionally filtered by
// status. Used by the moderation queue.
func (s *ReportService) ListByLocation(ctx context.Context, locationID uuid.UUID, st models.ReportStatus) ([]models.Report, error) {
	return s.reports.ListByLocation(ctx, locationID, st)
}

// DeriveStatus is a dry-run of the derivation rule against the current
// report history. It never writes anything.
func (s *ReportService) DeriveStatus(ctx context.Context, serviceID uuid.UUID) (models.ServiceStatus, error) {
	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		return "", err
	}
	all, err := s.reports.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load report history: %w", err)
	}
	return status.Derive(serviceID, all, s.nowFn()), nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
