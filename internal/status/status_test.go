package status_test

import (
	"testing"
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/civixa/civixa-backend/internal/status"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func approvedReport(serviceID uuid.UUID, age time.Duration) models.Report {
	return models.Report{
		ID:        uuid.New(),
		ServiceID: serviceID,
		Status:    models.ReportApproved,
		CreatedAt: testNow.Add(-age),
	}
}

func TestDerive_NoReports(t *testing.T) {
	svcID := uuid.New()
	got := status.Derive(svcID, nil, testNow)
	assert.Equal(t, models.StatusOperational, got)
}

func TestDerive_Thresholds(t *testing.T) {
	svcID := uuid.New()

	tests := []struct {
		name     string
		recent   int
		expected models.ServiceStatus
	}{
		{"zero approved", 0, models.StatusOperational},
		{"one approved", 1, models.StatusWarning},
		{"two approved", 2, models.StatusWarning},
		{"three approved", 3, models.StatusInterrupted},
		{"five approved", 5, models.StatusInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reports []models.Report
			for i := 0; i < tt.recent; i++ {
				reports = append(reports, approvedReport(svcID, time.Duration(i+1)*time.Minute))
			}
			assert.Equal(t, tt.expected, status.Derive(svcID, reports, testNow))
		})
	}
}

func TestDerive_WindowBoundary(t *testing.T) {
	svcID := uuid.New()

	// A report exactly 30 minutes old sits outside the window.
	exactly := approvedReport(svcID, 30*time.Minute)
	assert.Equal(t, models.StatusOperational, status.Derive(svcID, []models.Report{exactly}, testNow))

	// One second inside the window counts.
	inside := approvedReport(svcID, 30*time.Minute-time.Second)
	assert.Equal(t, models.StatusWarning, status.Derive(svcID, []models.Report{inside}, testNow))
}

func TestDerive_IgnoresOtherServicesAndStatuses(t *testing.T) {
	svcID := uuid.New()
	otherID := uuid.New()

	pending := approvedReport(svcID, 5*time.Minute)
	pending.Status = models.ReportPending
	rejected := approvedReport(svcID, 5*time.Minute)
	rejected.Status = models.ReportRejected

	reports := []models.Report{
		pending,
		rejected,
		approvedReport(otherID, 5*time.Minute),
		approvedReport(otherID, 6*time.Minute),
		approvedReport(otherID, 7*time.Minute),
	}

	assert.Equal(t, models.StatusOperational, status.Derive(svcID, reports, testNow))
	assert.Equal(t, models.StatusInterrupted, status.Derive(otherID, reports, testNow))
}

func TestDerive_StaleApprovedReportsStayOperational(t *testing.T) {
	svcID := uuid.New()

	// Approved reports inside the 2-hour window but outside the 30-minute
	// window must not change the outcome.
	reports := []models.Report{
		approvedReport(svcID, 45*time.Minute),
		approvedReport(svcID, 90*time.Minute),
		approvedReport(svcID, 110*time.Minute),
	}
	assert.Equal(t, models.StatusOperational, status.Derive(svcID, reports, testNow))
}

func TestDerive_Pure(t *testing.T) {
	svcID := uuid.New()
	reports := []models.Report{
		approvedReport(svcID, 2*time.Minute),
		approvedReport(svcID, 9*time.Minute),
	}

	first := status.Derive(svcID, reports, testNow)
	second := status.Derive(svcID, reports, testNow)
	assert.Equal(t, first, second)
	assert.Equal(t, models.StatusWarning, first)
}
