package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roundtable/internal/models"
)

// ListIncidents returns incident reports, newest first, optionally
// filtered by status.
func (s *Store) ListIncidents(ctx context.Context, orgID, status string, limit int) ([]models.IncidentReport, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, organization_id, reporter_id, title, description, incident_date,
		       COALESCE(location, ''), severity, status, created_at, updated_at
		FROM incident_reports
		WHERE organization_id = ?`
	args := []any{orgID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incident reports: %w", err)
	}
	defer rows.Close()

	reports := []models.IncidentReport{}
	var reporterIDs []string
	for rows.Next() {
		var r models.IncidentReport
		if err := rows.Scan(&r.ID, &r.OrganizationID, &r.ReporterID, &r.Title, &r.Description,
			&r.IncidentDate, &r.Location, &r.Severity, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan incident report: %w", err)
		}
		reports = append(reports, r)
		reporterIDs = append(reporterIDs, r.ReporterID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	names := s.namesFor(ctx, reporterIDs)
	for i := range reports {
		reports[i].ReporterName = nameOrUnknown(names, reports[i].ReporterID)
	}
	return reports, nil
}

// IncidentParams are the inputs for filing an incident report.
type IncidentParams struct {
	Title        string
	Description  string
	IncidentDate time.Time
	Location     string
	Severity     string
}

// CreateIncident files a new incident report in pending status.
func (s *Store) CreateIncident(ctx context.Context, orgID string, params IncidentParams, reporterID string) (*models.IncidentReport, error) {
	now := time.Now().UTC()
	r := &models.IncidentReport{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		ReporterID:     reporterID,
		Title:          params.Title,
		Description:    params.Description,
		IncidentDate:   params.IncidentDate,
		Location:       params.Location,
		Severity:       params.Severity,
		Status:         models.IncidentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO incident_reports
			(id, organization_id, reporter_id, title, description, incident_date, location, severity, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.OrganizationID, r.ReporterID, r.Title, r.Description, r.IncidentDate,
		r.Location, r.Severity, r.Status, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create incident report: %w", err)
	}
	return r, nil
}

// UpdateIncidentStatus moves an incident report to a new review status.
// The update is scoped by organization id so one organization cannot
// touch another's reports.
func (s *Store) UpdateIncidentStatus(ctx context.Context, orgID, incidentID, status string) (*models.IncidentReport, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE incident_reports SET status = ?, updated_at = ? WHERE id = ? AND organization_id = ?`,
		status, now, incidentID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to update incident status: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}

	var r models.IncidentReport
	err = s.db.QueryRowContext(ctx, `
		SELECT id, organization_id, reporter_id, title, description, incident_date,
		       COALESCE(location, ''), severity, status, created_at, updated_at
		FROM incident_reports WHERE id = ?`, incidentID,
	).Scan(&r.ID, &r.OrganizationID, &r.ReporterID, &r.Title, &r.Description,
		&r.IncidentDate, &r.Location, &r.Severity, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reload incident report: %w", err)
	}
	return &r, nil
}
