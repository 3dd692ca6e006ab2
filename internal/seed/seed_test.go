package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreServices_CatalogShape(t *testing.T) {
	assert.Len(t, coreServices, 25)

	seen := make(map[string]bool, len(coreServices))
	banks, isps := 0, 0
	for _, tpl := range coreServices {
		assert.False(t, seen[tpl.Name], "duplicate service template: %s", tpl.Name)
		seen[tpl.Name] = true
		assert.NotEmpty(t, tpl.Impact)

		if tpl.Impact == "Branch & ATM operations" {
			banks++
		}
		if strings.HasPrefix(tpl.Name, "Internet – ") {
			isps++
		}
	}
	assert.Equal(t, 10, banks)
	assert.Equal(t, 10, isps)
}

func TestBootstrapUsers(t *testing.T) {
	cityID := uuid.New()
	admin, moderator := bootstrapUsers("admin-hash", "mod-hash", cityID)

	assert.Equal(t, "admin@civixa.local", admin.Email)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.MustChangePassword)
	assert.Nil(t, admin.AssignedLocationID)

	assert.Equal(t, "mod@civixa.local", moderator.Email)
	assert.True(t, moderator.IsModerator)
	assert.False(t, moderator.MustChangePassword)
	require.NotNil(t, moderator.AssignedLocationID)
	assert.Equal(t, cityID, *moderator.AssignedLocationID)
}

func TestDemoReports(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cityID := uuid.New()
	serviceIDs := map[string]uuid.UUID{
		"Electricity Supply": uuid.New(),
		"Roads":              uuid.New(),
	}

	reports := demoReports(now, cityID, serviceIDs)
	require.Len(t, reports, 3)

	pending, approved := 0, 0
	for _, r := range reports {
		assert.Equal(t, cityID, r.LocationID)
		assert.True(t, now.Sub(r.CreatedAt) < time.Hour)
		switch r.Status {
		case models.ReportPending:
			pending++
		case models.ReportApproved:
			approved++
		}
	}
	assert.Equal(t, 2, pending)
	assert.Equal(t, 1, approved)

	assert.Equal(t, serviceIDs["Roads"], reports[1].ServiceID)
	assert.Equal(t, serviceIDs["Electricity Supply"], reports[2].ServiceID)
}

func TestDemoAuditLogs(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cityID := uuid.New()
	moderator := &models.User{ID: uuid.New(), Name: "Chennai Mod"}

	logs := demoAuditLogs(now, cityID, moderator)
	require.Len(t, logs, 2)
	for _, entry := range logs {
		assert.Equal(t, cityID, entry.LocationID)
		assert.Equal(t, moderator.ID.String(), entry.PerformedBy)
		assert.Equal(t, "Chennai Mod", entry.PerformedByName)
	}
}
