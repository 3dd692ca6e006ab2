package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRecorder_CapAndOrdering(t *testing.T) {
	store := newMemAuditStore()
	clock := newFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	recorder := NewAuditRecorder(store)
	recorder.nowFn = clock.Now

	locationID := uuid.New()
	actor := Actor{ID: "admin-1", Name: "System Admin"}

	for i := 0; i < 250; i++ {
		clock.Advance(time.Second)
		err := recorder.Record(context.Background(), fmt.Sprintf("Action %d", i), actor, locationID)
		require.NoError(t, err)
	}

	assert.Equal(t, models.AuditLogCap, store.count())

	entries, err := recorder.List(context.Background(), models.AuditLogCap)
	require.NoError(t, err)
	require.Len(t, entries, models.AuditLogCap)

	// Newest first, and the oldest 50 entries were evicted.
	assert.Equal(t, "Action 249", entries[0].Action)
	assert.Equal(t, "Action 50", entries[len(entries)-1].Action)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].CreatedAt.After(entries[i-1].CreatedAt))
	}
}

func TestAuditRecorder_ListByLocation(t *testing.T) {
	store := newMemAuditStore()
	clock := newFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	recorder := NewAuditRecorder(store)
	recorder.nowFn = clock.Now

	chennai := uuid.New()
	madurai := uuid.New()

	clock.Advance(time.Second)
	require.NoError(t, recorder.Record(context.Background(), "Location created: Chennai", SystemActor, chennai))
	clock.Advance(time.Second)
	require.NoError(t, recorder.Record(context.Background(), "Location created: Madurai", SystemActor, madurai))
	clock.Advance(time.Second)
	require.NoError(t, recorder.Record(context.Background(), "Service added: Roads", SystemActor, chennai))

	entries, err := recorder.ListByLocation(context.Background(), chennai, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Service added: Roads", entries[0].Action)
	assert.Equal(t, "Location created: Chennai", entries[1].Action)
}
