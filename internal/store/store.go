package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"roundtable/internal/database"
	"roundtable/internal/models"
)

// Sentinel errors the tool layer translates into structured tool results.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

const (
	nameCacheTTL     = 5 * time.Minute
	nameCacheCleanup = 10 * time.Minute
)

// Store provides record-oriented access to organization data.
// Every method is scoped by organization id; mutations record the acting
// user id. No method calls another store mutation and no cross-record
// transactions are used: each write is one atomic statement.
type Store struct {
	db *database.DB

	// Display-name lookups back most read operations; cache them briefly.
	names *gocache.Cache
}

// New creates a Store over an initialized database handle.
func New(db *database.DB) *Store {
	return &Store{
		db:    db,
		names: gocache.New(nameCacheTTL, nameCacheCleanup),
	}
}

// ProfileByEmail looks up a user account by email address.
func (s *Store) ProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT id, full_name, email FROM profiles WHERE email = ?`, email,
	).Scan(&p.ID, &p.FullName, &p.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	return &p, nil
}

// MembershipRole returns the caller's role in the organization, or
// ErrNotFound when the caller is not a member.
func (s *Store) MembershipRole(ctx context.Context, orgID, userID string) (string, error) {
	var role string
	err := s.db.QueryRowContext(ctx,
		`SELECT role FROM organization_memberships WHERE organization_id = ? AND user_id = ?`,
		orgID, userID,
	).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up membership role: %w", err)
	}
	return role, nil
}

// ListMembers returns the organization roster with profile names joined.
func (s *Store) ListMembers(ctx context.Context, orgID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.user_id, COALESCE(p.full_name, 'Unknown'), COALESCE(p.email, 'N/A'),
		       m.role, m.payment_class, m.created_at
		FROM organization_memberships m
		LEFT JOIN profiles p ON p.id = m.user_id
		WHERE m.organization_id = ?
		ORDER BY p.full_name`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.Role, &m.PaymentClass, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// AddMember adds an existing account to the organization roster.
// Returns ErrAlreadyExists when the user is already a member.
func (s *Store) AddMember(ctx context.Context, orgID, userID, role, paymentClass string) (*models.Membership, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM organization_memberships WHERE organization_id = ? AND user_id = ?`,
		orgID, userID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if exists > 0 {
		return nil, ErrAlreadyExists
	}

	if role == "" {
		role = models.RoleMember
	}
	if paymentClass == "" {
		paymentClass = "general_member"
	}

	m := &models.Membership{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
		PaymentClass:   paymentClass,
		CreatedAt:      time.Now().UTC(),
	}
	m.UpdatedAt = m.CreatedAt

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO organization_memberships (id, organization_id, user_id, role, payment_class, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.OrganizationID, m.UserID, m.Role, m.PaymentClass, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return m, nil
}

// UpdateMemberRole changes a member's role.
func (s *Store) UpdateMemberRole(ctx context.Context, orgID, userID, role string) (*models.Membership, error) {
	return s.updateMembership(ctx, orgID, userID, "role", role)
}

// UpdateMemberPaymentClass changes a member's payment class.
func (s *Store) UpdateMemberPaymentClass(ctx context.Context, orgID, userID, paymentClass string) (*models.Membership, error) {
	return s.updateMembership(ctx, orgID, userID, "payment_class", paymentClass)
}

func (s *Store) updateMembership(ctx context.Context, orgID, userID, column, value string) (*models.Membership, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE organization_memberships SET `+column+` = ?, updated_at = ? WHERE organization_id = ? AND user_id = ?`,
		value, now, orgID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}

	var m models.Membership
	err = s.db.QueryRowContext(ctx, `
		SELECT id, organization_id, user_id, role, payment_class, created_at, updated_at
		FROM organization_memberships WHERE organization_id = ? AND user_id = ?`,
		orgID, userID,
	).Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.PaymentClass, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reload membership: %w", err)
	}
	return &m, nil
}

// profileName resolves one user id to a display name through the cache.
func (s *Store) profileName(ctx context.Context, userID string) string {
	if cached, ok := s.names.Get(userID); ok {
		return cached.(string)
	}

	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT full_name FROM profiles WHERE id = ?`, userID,
	).Scan(&name)
	if err != nil {
		name = "Unknown"
	}
	s.names.SetDefault(userID, name)
	return name
}

// namesFor resolves a set of user ids to display names in one query,
// filling the cache for later single lookups.
func (s *Store) namesFor(ctx context.Context, userIDs []string) map[string]string {
	names := make(map[string]string, len(userIDs))
	var missing []string
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		if cached, ok := s.names.Get(id); ok {
			names[id] = cached.(string)
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return names
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(missing)), ",")
	args := make([]any, len(missing))
	for i, id := range missing {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name FROM profiles WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return names
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if rows.Scan(&id, &name) == nil {
			names[id] = name
			s.names.SetDefault(id, name)
		}
	}
	return names
}

// nameOrUnknown is the display fallback used by every read payload.
func nameOrUnknown(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return "Unknown"
}
