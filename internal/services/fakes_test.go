package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
)

// In-memory store fakes used by the engine tests.

type memReportStore struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*models.Report
}

func newMemReportStore() *memReportStore {
	return &memReportStore{reports: make(map[uuid.UUID]*models.Report)}
}

func (m *memReportStore) Create(_ context.Context, report *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *report
	m.reports[report.ID] = &cp
	return nil
}

func (m *memReportStore) GetByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReportStore) SetStatus(_ context.Context, id uuid.UUID, status models.ReportStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return ErrReportNotFound
	}
	r.Status = status
	return nil
}

func (m *memReportStore) ListAll(_ context.Context) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Report, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memReportStore) ListByLocation(_ context.Context, locationID uuid.UUID, status models.ReportStatus) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Report
	for _, r := range m.reports {
		if r.LocationID != locationID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memServiceStore struct {
	mu       sync.Mutex
	services map[uuid.UUID]*models.Service
}

func newMemServiceStore() *memServiceStore {
	return &memServiceStore{services: make(map[uuid.UUID]*models.Service)}
}

func (m *memServiceStore) put(svc models.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := svc
	m.services[svc.ID] = &cp
}

func (m *memServiceStore) get(id uuid.UUID) models.Service {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.services[id]
}

func (m *memServiceStore) GetByID(_ context.Context, id uuid.UUID) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	svc, ok := m.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

func (m *memServiceStore) SetStatus(_ context.Context, id uuid.UUID, status models.ServiceStatus, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	svc, ok := m.services[id]
	if !ok {
		return ErrServiceNotFound
	}
	svc.Status = status
	svc.LastUpdated = at
	return nil
}

func (m *memServiceStore) ListNonOperational(_ context.Context) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Service
	for _, svc := range m.services {
		if svc.Status != models.StatusOperational {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (m *memServiceStore) ResetIfStale(_ context.Context, id uuid.UUID, cutoff, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	svc, ok := m.services[id]
	if !ok {
		return false, ErrServiceNotFound
	}
	if svc.Status == models.StatusOperational || svc.LastUpdated.After(cutoff) {
		return false, nil
	}
	svc.Status = models.StatusOperational
	svc.LastUpdated = at
	return true, nil
}

type memAuditStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func newMemAuditStore() *memAuditStore {
	return &memAuditStore{}
}

func (m *memAuditStore) Insert(_ context.Context, entry *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memAuditStore) TrimToNewest(_ context.Context, max int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) <= max {
		return nil
	}
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.entries[i].CreatedAt.After(m.entries[j].CreatedAt)
	})
	m.entries = m.entries[:max]
	return nil
}

func (m *memAuditStore) ListByLocation(_ context.Context, locationID uuid.UUID, limit int) ([]models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AuditLog
	for _, e := range m.entries {
		if e.LocationID == locationID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memAuditStore) ListAll(_ context.Context, limit int) ([]models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AuditLog, len(m.entries))
	copy(out, m.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memAuditStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// fakeClock hands out a controllable now to the services under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
