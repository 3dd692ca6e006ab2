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

func newSweepFixture() (*SweepService, *memServiceStore, *memAuditStore, *fakeClock) {
	services := newMemServiceStore()
	audits := newMemAuditStore()
	clock := newFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	recorder := NewAuditRecorder(audits)
	recorder.nowFn = clock.Now

	sweep := NewSweepService(services, recorder, time.Hour)
	sweep.nowFn = clock.Now
	return sweep, services, audits, clock
}

func staleService(clock *fakeClock, status models.ServiceStatus, age time.Duration) models.Service {
	return models.Service{
		ID:          uuid.New(),
		LocationID:  uuid.New(),
		Name:        "Water Supply",
		Status:      status,
		LastUpdated: clock.Now().Add(-age),
	}
}

func TestSweep_ResetsServicePastTimeout(t *testing.T) {
	sweep, services, audits, clock := newSweepFixture()

	svc := staleService(clock, models.StatusInterrupted, 61*time.Minute)
	services.put(svc)

	n, err := sweep.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Equal(t, models.StatusOperational, services.get(svc.ID).Status)
	assert.Equal(t, clock.Now(), services.get(svc.ID).LastUpdated)

	entries, err := audits.ListByLocation(context.Background(), svc.LocationID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Action, "Service auto-reset")
	assert.Equal(t, "system", entries[0].PerformedBy)
}

func TestSweep_LeavesFreshServiceAlone(t *testing.T) {
	sweep, services, audits, clock := newSweepFixture()

	svc := staleService(clock, models.StatusWarning, 59*time.Minute)
	services.put(svc)

	n, err := sweep.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, n)
	assert.Equal(t, models.StatusWarning, services.get(svc.ID).Status)
	assert.Equal(t, 0, audits.count())
}

func TestSweep_ExactlyOneHourResets(t *testing.T) {
	sweep, services, _, clock := newSweepFixture()

	svc := staleService(clock, models.StatusInterrupted, time.Hour)
	services.put(svc)

	n, err := sweep.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, models.StatusOperational, services.get(svc.ID).Status)
}

func TestSweep_IgnoresOperationalServices(t *testing.T) {
	sweep, services, audits, clock := newSweepFixture()

	svc := staleService(clock, models.StatusOperational, 3*time.Hour)
	services.put(svc)

	n, err := sweep.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, audits.count())
}

func TestSweep_RecheckBeforeWrite(t *testing.T) {
	sweep, services, _, clock := newSweepFixture()

	// Stale at listing time, but refreshed before the guarded write lands.
	svc := staleService(clock, models.StatusInterrupted, 61*time.Minute)
	services.put(svc)
	require.NoError(t, services.SetStatus(context.Background(), svc.ID, models.StatusWarning, clock.Now()))

	n, err := sweep.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, models.StatusWarning, services.get(svc.ID).Status)
}

func TestScenario_EscalateThenAutoRecover(t *testing.T) {
	f := newEngineFixture(t)

	// Three reports approved within ten minutes push the service to
	// Interrupted.
	for i := 0; i < 3; i++ {
		report := f.submit(t)
		f.clock.Advance(3 * time.Minute)
		_, _, err := f.svc.Approve(context.Background(), report.ID, moderator, uuid.Nil)
		require.NoError(t, err)
	}
	require.Equal(t, models.StatusInterrupted, f.services.get(f.serviceID).Status)

	// A fourth approval keeps it at the ceiling.
	report := f.submit(t)
	_, newStatus, err := f.svc.Approve(context.Background(), report.ID, moderator, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterrupted, newStatus)

	// After 61 quiet minutes the sweep resets it.
	recorder := NewAuditRecorder(f.audits)
	recorder.nowFn = f.clock.Now
	sweep := NewSweepService(f.services, recorder, time.Hour)
	sweep.nowFn = f.clock.Now

	f.clock.Advance(61 * time.Minute)
	n, err := sweep.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, models.StatusOperational, f.services.get(f.serviceID).Status)
}
