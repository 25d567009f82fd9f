package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roundtable/internal/models"
)

// ListAnnouncements returns the most recent announcements with author
// names joined.
func (s *Store) ListAnnouncements(ctx context.Context, orgID string, limit int) ([]models.Announcement, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, organization_id, title, content, created_by, created_at
		FROM announcements
		WHERE organization_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	announcements := []models.Announcement{}
	var authorIDs []string
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.OrganizationID, &a.Title, &a.Content, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcements = append(announcements, a)
		authorIDs = append(authorIDs, a.CreatedBy)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	names := s.namesFor(ctx, authorIDs)
	for i := range announcements {
		announcements[i].AuthorName = nameOrUnknown(names, announcements[i].CreatedBy)
	}
	return announcements, nil
}

// CreateAnnouncement posts a new announcement attributed to the acting user.
func (s *Store) CreateAnnouncement(ctx context.Context, orgID, title, content, createdBy string) (*models.Announcement, error) {
	a := &models.Announcement{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Title:          title,
		Content:        content,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO announcements (id, organization_id, title, content, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.OrganizationID, a.Title, a.Content, a.CreatedBy, a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return a, nil
}
