// Package status holds the service-status derivation rule. It is pure: the
// caller supplies the report collection and the reference time, so the rule
// can be exercised without a database or a real clock.
package status

import (
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
)

const (
	// ShortWindow is the lookback used for the Warning/Interrupted counts.
	ShortWindow = 30 * time.Minute
	// LongWindow is a secondary lookback; see Derive.
	LongWindow = 2 * time.Hour

	// InterruptedThreshold and WarningThreshold are the approved-report
	// counts inside ShortWindow that trigger each status.
	InterruptedThreshold = 3
	WarningThreshold     = 1
)

// Derive computes the status a service should carry at the moment a report
// is approved, based on its approved-report history.
//
// A report counts toward the short window when its age is strictly below 30
// minutes; a report exactly 30 minutes old is excluded.
func Derive(serviceID uuid.UUID, reports []models.Report, now time.Time) models.ServiceStatus {
	count := countApprovedWithin(serviceID, reports, now, ShortWindow)

	if count >= InterruptedThreshold {
		return models.StatusInterrupted
	}
	if count >= WarningThreshold {
		return models.StatusWarning
	}

	// The 2-hour check is vestigial: both branches resolve to Operational.
	if countApprovedWithin(serviceID, reports, now, LongWindow) == 0 {
		return models.StatusOperational
	}
	return models.StatusOperational
}

func countApprovedWithin(serviceID uuid.UUID, reports []models.Report, now time.Time, window time.Duration) int {
	count := 0
	for _, r := range reports {
		if r.ServiceID != serviceID || r.Status != models.ReportApproved {
			continue
		}
		if now.Sub(r.CreatedAt) < window {
			count++
		}
	}
	return count
}
