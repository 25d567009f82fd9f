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

// ListRides returns Chariot ride requests, newest first, optionally
// filtered by status, with rider and driver names joined.
func (s *Store) ListRides(ctx context.Context, orgID, status string, limit int) ([]models.Ride, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, organization_id, user_id, pickup_location, dropoff_location, pickup_time,
		       COALESCE(notes, ''), status, COALESCE(driver_id, ''), claimed_at, created_at, updated_at
		FROM rides
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
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	defer rows.Close()

	rides := []models.Ride{}
	var userIDs []string
	for rows.Next() {
		var r models.Ride
		var pickupTime, claimedAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.OrganizationID, &r.UserID, &r.PickupLocation, &r.DropoffLocation,
			&pickupTime, &r.Notes, &r.Status, &r.DriverID, &claimedAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ride: %w", err)
		}
		if pickupTime.Valid {
			r.PickupTime = &pickupTime.Time
		}
		if claimedAt.Valid {
			r.ClaimedAt = &claimedAt.Time
		}
		rides = append(rides, r)
		userIDs = append(userIDs, r.UserID)
		if r.DriverID != "" {
			userIDs = append(userIDs, r.DriverID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	names := s.namesFor(ctx, userIDs)
	for i := range rides {
		rides[i].RiderName = nameOrUnknown(names, rides[i].UserID)
		if rides[i].DriverID != "" {
			rides[i].DriverName = nameOrUnknown(names, rides[i].DriverID)
		}
	}
	return rides, nil
}

// RideParams are the inputs for requesting a ride.
type RideParams struct {
	PickupLocation  string
	DropoffLocation string
	PickupTime      *time.Time
	Notes           string
}

// CreateRide files a new ride request in pending status for the given rider.
func (s *Store) CreateRide(ctx context.Context, orgID, riderID string, params RideParams) (*models.Ride, error) {
	now := time.Now().UTC()
	r := &models.Ride{
		ID:              uuid.NewString(),
		OrganizationID:  orgID,
		UserID:          riderID,
		PickupLocation:  params.PickupLocation,
		DropoffLocation: params.DropoffLocation,
		PickupTime:      params.PickupTime,
		Notes:           params.Notes,
		Status:          models.RidePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var pickupTime any
	if r.PickupTime != nil {
		pickupTime = *r.PickupTime
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rides (id, organization_id, user_id, pickup_location, dropoff_location, pickup_time, notes, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.OrganizationID, r.UserID, r.PickupLocation, r.DropoffLocation,
		pickupTime, r.Notes, r.Status, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}
	return r, nil
}

// UpdateRideStatus moves a ride to a new status. When a driver claims a
// pending ride the driver id and claim time are recorded. Scoped by
// organization id.
func (s *Store) UpdateRideStatus(ctx context.Context, orgID, rideID, status, driverID string) (*models.Ride, error) {
	now := time.Now().UTC()

	var res sql.Result
	var err error
	if driverID != "" && status == models.RideClaimed {
		res, err = s.db.ExecContext(ctx,
			`UPDATE rides SET status = ?, driver_id = ?, claimed_at = ?, updated_at = ? WHERE id = ? AND organization_id = ?`,
			status, driverID, now, now, rideID, orgID)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE rides SET status = ?, updated_at = ? WHERE id = ? AND organization_id = ?`,
			status, now, rideID, orgID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update ride: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}

	var r models.Ride
	var pickupTime, claimedAt sql.NullTime
	err = s.db.QueryRowContext(ctx, `
		SELECT id, organization_id, user_id, pickup_location, dropoff_location, pickup_time,
		       COALESCE(notes, ''), status, COALESCE(driver_id, ''), claimed_at, created_at, updated_at
		FROM rides WHERE id = ?`, rideID,
	).Scan(&r.ID, &r.OrganizationID, &r.UserID, &r.PickupLocation, &r.DropoffLocation,
		&pickupTime, &r.Notes, &r.Status, &r.DriverID, &claimedAt, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reload ride: %w", err)
	}
	if pickupTime.Valid {
		r.PickupTime = &pickupTime.Time
	}
	if claimedAt.Valid {
		r.ClaimedAt = &claimedAt.Time
	}
	return &r, nil
}

// ListDrivers returns the organization's approved Chariot drivers.
func (s *Store) ListDrivers(ctx context.Context, orgID string) ([]models.Driver, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, organization_id, user_id, added_by, created_at
		FROM chariot_drivers
		WHERE organization_id = ?
		ORDER BY created_at`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	drivers := []models.Driver{}
	var userIDs []string
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.OrganizationID, &d.UserID, &d.AddedBy, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, d)
		userIDs = append(userIDs, d.UserID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	names := s.namesFor(ctx, userIDs)
	for i := range drivers {
		drivers[i].DriverName = nameOrUnknown(names, drivers[i].UserID)
	}
	return drivers, nil
}

// AddDriver approves a member as a Chariot driver. Returns
// ErrAlreadyExists when the user is already approved.
func (s *Store) AddDriver(ctx context.Context, orgID, userID, addedBy string) (*models.Driver, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chariot_drivers WHERE organization_id = ? AND user_id = ?`,
		orgID, userID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check driver: %w", err)
	}
	if exists > 0 {
		return nil, ErrAlreadyExists
	}

	d := &models.Driver{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		UserID:         userID,
		AddedBy:        addedBy,
		CreatedAt:      time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chariot_drivers (id, organization_id, user_id, added_by, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.OrganizationID, d.UserID, d.AddedBy, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add driver: %w", err)
	}
	return d, nil
}
