package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/civixa/civixa-backend/internal/models"
	"gorm.io/gorm"
)

// ExportService produces CSV downloads for the admin panel.
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// AuditLogCSV exports the retained audit trail, newest first, with location
// names resolved.
func (s *ExportService) AuditLogCSV(ctx context.Context) ([]byte, error) {
	type auditRow struct {
		Action          string
		PerformedBy     string
		PerformedByName string
		LocationName    string
		CreatedAt       string
	}

	var rows []auditRow
	err := s.db.WithContext(ctx).Table("audit_logs").
		Select(`
			audit_logs.action,
			audit_logs.performed_by,
			audit_logs.performed_by_name,
			COALESCE(locations.name, '') AS location_name,
			to_char(audit_logs.created_at, 'YYYY-MM-DD HH24:MI:SS') AS created_at
		`).
		Joins("LEFT JOIN locations ON locations.id = audit_logs.location_id").
		Order("audit_logs.created_at DESC").
		Limit(models.AuditLogCap).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	headers := []string{"Action", "Performed By", "Performed By Name", "Location", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range rows {
		record := []string{row.Action, row.PerformedBy, row.PerformedByName, row.LocationName, row.CreatedAt}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buffer.Bytes(), nil
}
