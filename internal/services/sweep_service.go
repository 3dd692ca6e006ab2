package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SweepService reverts stale non-Operational services back to Operational.
// It is a blunt timer: it never consults the derivation rule, only the age
// of lastUpdated.
type SweepService struct {
	services      ServiceStore
	audit         *AuditRecorder
	recoveryAfter time.Duration
	nowFn         func() time.Time
}

func NewSweepService(services ServiceStore, audit *AuditRecorder, recoveryAfter time.Duration) *SweepService {
	return &SweepService{
		services:      services,
		audit:         audit,
		recoveryAfter: recoveryAfter,
		nowFn:         time.Now,
	}
}

// Run executes one sweep pass and returns the number of services reset.
// The reset is guarded: each write re-checks the freshest lastUpdated
// against the cutoff so a status refreshed meanwhile is left alone.
func (s *SweepService) Run(ctx context.Context) (int, error) {
	now := s.nowFn()
	cutoff := now.Add(-s.recoveryAfter)

	stale, err := s.services.ListNonOperational(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list non-operational services: %w", err)
	}

	reset := 0
	for _, svc := range stale {
		if now.Sub(svc.LastUpdated) < s.recoveryAfter {
			continue
		}

		applied, err := s.services.ResetIfStale(ctx, svc.ID, cutoff, now)
		if err != nil {
			slog.Error("sweep reset failed", "service_id", svc.ID, "error", err)
			continue
		}
		if !applied {
			continue
		}

		action := fmt.Sprintf("Service auto-reset: %s → Operational (1-hour timeout)", svc.Name)
		if err := s.audit.Record(ctx, action, SystemActor, svc.LocationID); err != nil {
			slog.Error("sweep audit record failed", "service_id", svc.ID, "error", err)
		}
		reset++
	}

	return reset, nil
}

// Start runs one pass immediately, then repeats on the given interval until
// done is closed.
func (s *SweepService) Start(interval time.Duration, done chan struct{}) {
	go func() {
		run := func() {
			n, err := s.Run(context.Background())
			if err != nil {
				slog.Error("auto-recovery sweep failed", "error", err)
			} else if n > 0 {
				slog.Info("auto-recovery sweep completed", "reset", n)
			}
		}

		run()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				run()
			case <-done:
				return
			}
		}
	}()
}
