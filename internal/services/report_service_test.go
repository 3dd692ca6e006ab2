package services

import (
	"context"
	"testing"
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	reports  *memReportStore
	services *memServiceStore
	audits   *memAuditStore
	clock    *fakeClock
	svc      *ReportService

	locationID uuid.UUID
	serviceID  uuid.UUID
}

var moderator = Actor{ID: "mod-1", Name: "Chennai Mod"}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	f := &engineFixture{
		reports:    newMemReportStore(),
		services:   newMemServiceStore(),
		audits:     newMemAuditStore(),
		clock:      newFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		locationID: uuid.New(),
		serviceID:  uuid.New(),
	}

	recorder := NewAuditRecorder(f.audits)
	recorder.nowFn = f.clock.Now

	f.svc = NewReportService(f.reports, f.services, recorder)
	f.svc.nowFn = f.clock.Now

	f.services.put(models.Service{
		ID:          f.serviceID,
		LocationID:  f.locationID,
		Name:        "Electricity Supply",
		Status:      models.StatusOperational,
		LastUpdated: f.clock.Now(),
	})
	return f
}

func (f *engineFixture) submit(t *testing.T) *models.Report {
	t.Helper()
	r, err := f.svc.Submit(context.Background(), f.locationID, f.serviceID, "Adyar", "Power outage since morning", "resident@example.com")
	require.NoError(t, err)
	return r
}

func TestSubmit_CreatesPendingReport(t *testing.T) {
	f := newEngineFixture(t)

	report := f.submit(t)

	assert.Equal(t, models.ReportPending, report.Status)
	assert.Equal(t, f.clock.Now(), report.CreatedAt)
	assert.NotEqual(t, uuid.Nil, report.ID)

	stored, err := f.reports.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportPending, stored.Status)
}

func TestSubmit_UnknownServiceRefused(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.svc.Submit(context.Background(), f.locationID, uuid.New(), "Adyar", "desc", "a@b.com")
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.svc.Submit(context.Background(), uuid.New(), f.serviceID, "Adyar", "desc", "a@b.com")
	assert.ErrorIs(t, err, ErrServiceNotInCity)
}

func TestApprove_FirstReportYieldsWarning(t *testing.T) {
	f := newEngineFixture(t)
	report := f.submit(t)

	_, newStatus, err := f.svc.Approve(context.Background(), report.ID, moderator, uuid.Nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusWarning, newStatus)
	assert.Equal(t, models.StatusWarning, f.services.get(f.serviceID).Status)
	assert.Equal(t, f.clock.Now(), f.services.get(f.serviceID).LastUpdated)
}

func TestApprove_ThirdReportYieldsInterrupted(t *testing.T) {
	f := newEngineFixture(t)

	for i := 0; i < 3; i++ {
		report := f.submit(t)
		f.clock.Advance(2 * time.Minute)
		_, _, err := f.svc.Approve(context.Background(), report.ID, moderator, uuid.Nil)
		require.NoError(t, err)
	}

	assert.Equal(t, models.StatusInterrupted, f.services.get(f.serviceID).Status)
}

func TestApprove_NotFound(t *testing.T) {
	f := newEngineFixture(t)

	_, _, err := f.svc.Approve(context.Background(), uuid.New(), moderator, uuid.Nil)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestApprove_AppendsExactlyOneAuditEntry(t *testing.T) {
	f := newEngineFixture(t)
	report := f.submit(t)

	before := f.audits.count()
	_, _, err := f.svc.Approve(context.Background(), report.ID, moderator, uuid.Nil)
	require.NoError(t, err)

	assert.Equal(t, before+1, f.audits.count())

	entries, err := f.audits.ListByLocation(context.Background(), f.locationID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0].Action, "Report approved")
	assert.Contains(t, entries[0].Action, string(models.StatusWarning))
	assert.Equal(t, moderator.ID, entries[0].PerformedBy)
}

func TestReject_NeverTouchesServiceStatus(t *testing.T) {
	f := newEngineFixture(t)
	report := f.submit(t)

	stampBefore := f.services.get(f.serviceID).LastUpdated

	rejected, err := f.svc.Reject(context.Background(), report.ID, moderator, uuid.Nil)
	require.NoError(t, err)

	assert.Equal(t, models.ReportRejected, rejected.Status)
	assert.Equal(t, models.StatusOperational, f.services.get(f.serviceID).Status)
	assert.Equal(t, stampBefore, f.services.get(f.serviceID).LastUpdated)

	entries, err := f.audits.ListByLocation(context.Background(), f.locationID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0].Action, "Report rejected")
}

func TestReject_NotFound(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.svc.Reject(context.Background(), uuid.New(), moderator, uuid.Nil)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestApproveThenReject_OnlyApprovedCounts(t *testing.T) {
	f := newEngineFixture(t)

	first := f.submit(t)
	second := f.submit(t)

	_, newStatus, err := f.svc.Approve(context.Background(), first.ID, moderator, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWarning, newStatus)

	_, err = f.svc.Reject(context.Background(), second.ID, moderator, uuid.Nil)
	require.NoError(t, err)

	// Rejection contributed nothing; the count is still 1.
	derived, err := f.svc.DeriveStatus(context.Background(), f.serviceID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWarning, derived)
	assert.Equal(t, models.StatusWarning, f.services.get(f.serviceID).Status)
}

func TestApprove_DeletedServiceStillApprovesReport(t *testing.T) {
	f := newEngineFixture(t)
	report := f.submit(t)

	f.services.mu.Lock()
	delete(f.services.services, f.serviceID)
	f.services.mu.Unlock()

	approved, _, err := f.svc.Approve(context.Background(), report.ID, moderator, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, models.ReportApproved, approved.Status)
}

func TestDeriveStatus_DryRunWritesNothing(t *testing.T) {
	f := newEngineFixture(t)
	report := f.submit(t)

	_, _, err := f.svc.Approve(context.Background(), report.ID, moderator, uuid.Nil)
	require.NoError(t, err)
	stampBefore := f.services.get(f.serviceID).LastUpdated
	auditsBefore := f.audits.count()

	derived, err := f.svc.DeriveStatus(context.Background(), f.serviceID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusWarning, derived)
	assert.Equal(t, stampBefore, f.services.get(f.serviceID).LastUpdated)
	assert.Equal(t, auditsBefore, f.audits.count())
}

func TestApprove_OutsideAssignedLocationRefused(t *testing.T) {
	f := newEngineFixture(t)
	report := f.submit(t)
	otherCity := uuid.New()

	_, _, err := f.svc.Approve(context.Background(), report.ID, moderator, otherCity)
	assert.ErrorIs(t, err, ErrReportNotFound)

	_, err = f.svc.Reject(context.Background(), report.ID, moderator, otherCity)
	assert.ErrorIs(t, err, ErrReportNotFound)

	// Nothing happened: the report is still pending, the service untouched,
	// no audit entries recorded.
	stored, err := f.reports.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportPending, stored.Status)
	assert.Equal(t, models.StatusOperational, f.services.get(f.serviceID).Status)
	assert.Equal(t, 0, f.audits.count())
}

func TestApprove_MatchingAssignedLocationAllowed(t *testing.T) {
	f := newEngineFixture(t)
	report := f.submit(t)

	_, newStatus, err := f.svc.Approve(context.Background(), report.ID, moderator, f.locationID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWarning, newStatus)
}

func TestApprove_SecondApprovalRunsFully(t *testing.T) {
	f := newEngineFixture(t)
	report := f.submit(t)

	_, _, err := f.svc.Approve(context.Background(), report.ID, moderator, uuid.Nil)
	require.NoError(t, err)
	firstStamp := f.services.get(f.serviceID).LastUpdated

	f.clock.Advance(5 * time.Minute)

	// Re-approving an approved report has no guard: the whole pipeline runs
	// again, appending a second audit entry and restamping the service.
	_, newStatus, err := f.svc.Approve(context.Background(), report.ID, moderator, uuid.Nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusWarning, newStatus)
	assert.Equal(t, 2, f.audits.count())
	assert.True(t, f.services.get(f.serviceID).LastUpdated.After(firstStamp))
}
