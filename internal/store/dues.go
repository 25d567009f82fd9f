package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"roundtable/internal/models"
)

// RecurringPaymentClasses returns every active payment class with a
// recurring billing frequency, across all organizations. Used by the
// dues billing job.
func (s *Store) RecurringPaymentClasses(ctx context.Context) ([]models.PaymentClass, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, organization_id, class_name, display_name, dues_amount, billing_frequency,
		       COALESCE(description, ''), is_active, created_at
		FROM organization_payment_classes
		WHERE is_active = TRUE AND billing_frequency <> 'one_time'`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring payment classes: %w", err)
	}
	defer rows.Close()

	classes := []models.PaymentClass{}
	for rows.Next() {
		var pc models.PaymentClass
		if err := rows.Scan(&pc.ID, &pc.OrganizationID, &pc.ClassName, &pc.DisplayName,
			&pc.DuesAmount, &pc.BillingFrequency, &pc.Description, &pc.IsActive, &pc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment class: %w", err)
		}
		classes = append(classes, pc)
	}
	return classes, rows.Err()
}

// MembersInClass returns the user ids of members assigned to a payment
// class within one organization.
func (s *Store) MembersInClass(ctx context.Context, orgID, className string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM organization_memberships WHERE organization_id = ? AND payment_class = ?`,
		orgID, className)
	if err != nil {
		return nil, fmt.Errorf("failed to list class members: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

// LastDuesCharge returns when a member was last charged dues in the
// organization. The second return is false when no dues charge exists.
func (s *Store) LastDuesCharge(ctx context.Context, orgID, userID string) (time.Time, bool, error) {
	var last time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT created_at FROM payment_transactions
		WHERE organization_id = ? AND user_id = ? AND type = ?
		ORDER BY created_at DESC LIMIT 1`,
		orgID, userID, models.TransactionDues,
	).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to look up last dues charge: %w", err)
	}
	return last, true, nil
}
