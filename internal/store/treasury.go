package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roundtable/internal/models"
)

// MemberBalance computes a member's balance from their full ledger and
// returns the ten most recent transactions alongside it. Charges and dues
// add to the balance; payments reduce it.
func (s *Store) MemberBalance(ctx context.Context, orgID, userID string) (*models.Balance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, organization_id, user_id, amount, type, COALESCE(description, ''), created_by, created_at
		FROM payment_transactions
		WHERE organization_id = ? AND user_id = ?
		ORDER BY created_at DESC`, orgID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	defer rows.Close()

	var balance float64
	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.UserID, &t.Amount, &t.Type,
			&t.Description, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		switch t.Type {
		case models.TransactionCharge, models.TransactionDues:
			balance += t.Amount
		case models.TransactionPayment:
			balance -= t.Amount
		}
		if len(transactions) < 10 {
			transactions = append(transactions, t)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var name, email string
	err = s.db.QueryRowContext(ctx,
		`SELECT full_name, email FROM profiles WHERE id = ?`, userID,
	).Scan(&name, &email)
	if err != nil {
		name, email = "Unknown", "N/A"
	}

	return &models.Balance{
		Name:         name,
		Email:        email,
		Balance:      balance,
		Transactions: transactions,
	}, nil
}

// AddTransaction appends one ledger entry for a member, attributed to the
// acting user.
func (s *Store) AddTransaction(ctx context.Context, orgID, userID string, amount float64, txType, description, createdBy string) (*models.Transaction, error) {
	t := &models.Transaction{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		UserID:         userID,
		Amount:         amount,
		Type:           txType,
		Description:    description,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_transactions (id, organization_id, user_id, amount, type, description, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OrganizationID, t.UserID, t.Amount, t.Type, t.Description, t.CreatedBy, t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add transaction: %w", err)
	}
	return t, nil
}

// ListPaymentClasses returns the organization's active membership tiers.
func (s *Store) ListPaymentClasses(ctx context.Context, orgID string) ([]models.PaymentClass, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, organization_id, class_name, display_name, dues_amount, billing_frequency,
		       COALESCE(description, ''), is_active, created_at
		FROM organization_payment_classes
		WHERE organization_id = ? AND is_active = TRUE
		ORDER BY created_at`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment classes: %w", err)
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

// PaymentClassParams are the inputs for creating a membership tier.
type PaymentClassParams struct {
	ClassName        string
	DisplayName      string
	DuesAmount       float64
	BillingFrequency string
	Description      string
}

// CreatePaymentClass creates a new active membership tier.
func (s *Store) CreatePaymentClass(ctx context.Context, orgID string, params PaymentClassParams) (*models.PaymentClass, error) {
	pc := &models.PaymentClass{
		ID:               uuid.NewString(),
		OrganizationID:   orgID,
		ClassName:        params.ClassName,
		DisplayName:      params.DisplayName,
		DuesAmount:       params.DuesAmount,
		BillingFrequency: params.BillingFrequency,
		Description:      params.Description,
		IsActive:         true,
		CreatedAt:        time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO organization_payment_classes
			(id, organization_id, class_name, display_name, dues_amount, billing_frequency, description, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, TRUE, ?)`,
		pc.ID, pc.OrganizationID, pc.ClassName, pc.DisplayName, pc.DuesAmount,
		pc.BillingFrequency, pc.Description, pc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment class: %w", err)
	}
	return pc, nil
}
