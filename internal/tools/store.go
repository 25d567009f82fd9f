package tools

import (
	"context"
	"time"

	"roundtable/internal/models"
	"roundtable/internal/store"
)

// Store is the record-oriented data access the tools execute against.
// *store.Store satisfies it; tests substitute a fake.
type Store interface {
	ListMembers(ctx context.Context, orgID string) ([]models.Member, error)
	AddMember(ctx context.Context, orgID, userID, role, paymentClass string) (*models.Membership, error)
	UpdateMemberRole(ctx context.Context, orgID, userID, role string) (*models.Membership, error)
	UpdateMemberPaymentClass(ctx context.Context, orgID, userID, paymentClass string) (*models.Membership, error)
	MembershipRole(ctx context.Context, orgID, userID string) (string, error)
	ProfileByEmail(ctx context.Context, email string) (*models.Profile, error)

	MemberBalance(ctx context.Context, orgID, userID string) (*models.Balance, error)
	AddTransaction(ctx context.Context, orgID, userID string, amount float64, txType, description, createdBy string) (*models.Transaction, error)
	ListPaymentClasses(ctx context.Context, orgID string) ([]models.PaymentClass, error)
	CreatePaymentClass(ctx context.Context, orgID string, params store.PaymentClassParams) (*models.PaymentClass, error)

	ListAnnouncements(ctx context.Context, orgID string, limit int) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, orgID, title, content, createdBy string) (*models.Announcement, error)

	ListEvents(ctx context.Context, orgID string, limit int, upcomingOnly bool) ([]models.Event, error)
	CreateEvent(ctx context.Context, orgID string, params store.EventParams, createdBy string) (*models.Event, error)

	ListIncidents(ctx context.Context, orgID, status string, limit int) ([]models.IncidentReport, error)
	CreateIncident(ctx context.Context, orgID string, params store.IncidentParams, reporterID string) (*models.IncidentReport, error)
	UpdateIncidentStatus(ctx context.Context, orgID, incidentID, status string) (*models.IncidentReport, error)

	ListRides(ctx context.Context, orgID, status string, limit int) ([]models.Ride, error)
	CreateRide(ctx context.Context, orgID, riderID string, params store.RideParams) (*models.Ride, error)
	UpdateRideStatus(ctx context.Context, orgID, rideID, status, driverID string) (*models.Ride, error)
	ListDrivers(ctx context.Context, orgID string) ([]models.Driver, error)
	AddDriver(ctx context.Context, orgID, userID, addedBy string) (*models.Driver, error)
}

// timePtr is shared by ride handlers building optional timestamps.
func timePtr(t time.Time) *time.Time { return &t }
