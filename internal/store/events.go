package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roundtable/internal/models"
)

// ListEvents returns calendar events, soonest first. With upcomingOnly it
// skips events that have already started.
func (s *Store) ListEvents(ctx context.Context, orgID string, limit int, upcomingOnly bool) ([]models.Event, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, organization_id, title, COALESCE(description, ''), COALESCE(location, ''),
		       start_time, end_time, created_by, created_at
		FROM events
		WHERE organization_id = ?`
	args := []any{orgID}
	if upcomingOnly {
		query += ` AND start_time >= ?`
		args = append(args, time.Now().UTC())
	}
	query += ` ORDER BY start_time LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	var creatorIDs []string
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.Title, &e.Description, &e.Location,
			&e.StartTime, &e.EndTime, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
		creatorIDs = append(creatorIDs, e.CreatedBy)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	names := s.namesFor(ctx, creatorIDs)
	for i := range events {
		events[i].CreatorName = nameOrUnknown(names, events[i].CreatedBy)
	}
	return events, nil
}

// EventParams are the inputs for creating a calendar event.
type EventParams struct {
	Title       string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
}

// CreateEvent adds an event to the organization calendar, attributed to
// the acting user.
func (s *Store) CreateEvent(ctx context.Context, orgID string, params EventParams, createdBy string) (*models.Event, error) {
	e := &models.Event{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Title:          params.Title,
		Description:    params.Description,
		Location:       params.Location,
		StartTime:      params.StartTime,
		EndTime:        params.EndTime,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, organization_id, title, description, location, start_time, end_time, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.OrganizationID, e.Title, e.Description, e.Location,
		e.StartTime, e.EndTime, e.CreatedBy, e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return e, nil
}
