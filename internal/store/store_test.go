package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"roundtable/internal/database"
	"roundtable/internal/models"
)

const (
	testOrg   = "org-test-1"
	testAdmin = "admin-user-1"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.New("sqlite://" + filepath.Join(t.TempDir(), "store_test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Initialize(); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	return New(db)
}

func insertProfile(t *testing.T, s *Store, name, email string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO profiles (id, full_name, email) VALUES (?, ?, ?)`, id, name, email)
	if err != nil {
		t.Fatalf("Failed to insert profile: %v", err)
	}
	return id
}

func TestProfileByEmail(t *testing.T) {
	s := setupStore(t)
	id := insertProfile(t, s, "Ada Lovelace", "ada@example.com")

	p, err := s.ProfileByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("ProfileByEmail failed: %v", err)
	}
	if p.ID != id || p.FullName != "Ada Lovelace" {
		t.Errorf("Unexpected profile: %+v", p)
	}

	_, err = s.ProfileByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAddMember_DefaultsAndDuplicate(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	userID := insertProfile(t, s, "Grace Hopper", "grace@example.com")

	m, err := s.AddMember(ctx, testOrg, userID, "", "")
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if m.Role != models.RoleMember {
		t.Errorf("Expected default role %q, got %q", models.RoleMember, m.Role)
	}
	if m.PaymentClass != "general_member" {
		t.Errorf("Expected default payment class, got %q", m.PaymentClass)
	}

	_, err = s.AddMember(ctx, testOrg, userID, "", "")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}

	// Same user in a different organization is a separate membership.
	if _, err := s.AddMember(ctx, "org-other", userID, "", ""); err != nil {
		t.Errorf("Membership in another organization should succeed: %v", err)
	}
}

func TestListMembers_ScopedToOrganization(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	inOrg := insertProfile(t, s, "Ada", "ada@example.com")
	outOrg := insertProfile(t, s, "Zed", "zed@example.com")
	if _, err := s.AddMember(ctx, testOrg, inOrg, models.RoleAdmin, "senior"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddMember(ctx, "org-other", outOrg, "", ""); err != nil {
		t.Fatal(err)
	}

	members, err := s.ListMembers(ctx, testOrg)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("Expected 1 member, got %d", len(members))
	}
	if members[0].Name != "Ada" || members[0].Role != models.RoleAdmin || members[0].PaymentClass != "senior" {
		t.Errorf("Unexpected member: %+v", members[0])
	}

	// Read again: listing must not mutate anything.
	again, err := s.ListMembers(ctx, testOrg)
	if err != nil || len(again) != 1 {
		t.Errorf("Second listing changed results: %v, %d members", err, len(again))
	}
}

func TestUpdateMembership(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	userID := insertProfile(t, s, "Ada", "ada@example.com")
	if _, err := s.AddMember(ctx, testOrg, userID, "", ""); err != nil {
		t.Fatal(err)
	}

	m, err := s.UpdateMemberRole(ctx, testOrg, userID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateMemberRole failed: %v", err)
	}
	if m.Role != models.RoleAdmin {
		t.Errorf("Role not updated: %+v", m)
	}

	m, err = s.UpdateMemberPaymentClass(ctx, testOrg, userID, "senior")
	if err != nil {
		t.Fatalf("UpdateMemberPaymentClass failed: %v", err)
	}
	if m.PaymentClass != "senior" {
		t.Errorf("Payment class not updated: %+v", m)
	}

	if _, err := s.UpdateMemberRole(ctx, "org-other", userID, models.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Errorf("Cross-organization update should be ErrNotFound, got %v", err)
	}
	if _, err := s.UpdateMemberRole(ctx, testOrg, "no-such-user", models.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Errorf("Unknown member update should be ErrNotFound, got %v", err)
	}
}

func TestMemberBalance_Math(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	userID := insertProfile(t, s, "Ada", "ada@example.com")

	for _, tx := range []struct {
		amount float64
		txType string
	}{
		{100, models.TransactionCharge},
		{50, models.TransactionDues},
		{30, models.TransactionPayment},
	} {
		if _, err := s.AddTransaction(ctx, testOrg, userID, tx.amount, tx.txType, "test", testAdmin); err != nil {
			t.Fatalf("AddTransaction failed: %v", err)
		}
	}
	// A transaction in another organization must not leak into the balance.
	if _, err := s.AddTransaction(ctx, "org-other", userID, 500, models.TransactionCharge, "other org", testAdmin); err != nil {
		t.Fatal(err)
	}

	b, err := s.MemberBalance(ctx, testOrg, userID)
	if err != nil {
		t.Fatalf("MemberBalance failed: %v", err)
	}
	if b.Balance != 120 {
		t.Errorf("Expected balance 120 (100 + 50 - 30), got %v", b.Balance)
	}
	if len(b.Transactions) != 3 {
		t.Errorf("Expected 3 transactions, got %d", len(b.Transactions))
	}
	if b.Name != "Ada" {
		t.Errorf("Expected profile name joined in, got %q", b.Name)
	}
	for _, tx := range b.Transactions {
		if tx.CreatedBy != testAdmin {
			t.Errorf("Transaction not attributed to acting user: %+v", tx)
		}
	}
}

func TestPaymentClasses(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	pc, err := s.CreatePaymentClass(ctx, testOrg, PaymentClassParams{
		ClassName:        "new_member",
		DisplayName:      "New Member",
		DuesAmount:       75,
		BillingFrequency: models.BillingSemester,
	})
	if err != nil {
		t.Fatalf("CreatePaymentClass failed: %v", err)
	}
	if !pc.IsActive {
		t.Error("New payment class should be active")
	}

	classes, err := s.ListPaymentClasses(ctx, testOrg)
	if err != nil {
		t.Fatalf("ListPaymentClasses failed: %v", err)
	}
	if len(classes) != 1 || classes[0].ClassName != "new_member" {
		t.Errorf("Unexpected classes: %+v", classes)
	}

	other, err := s.ListPaymentClasses(ctx, "org-other")
	if err != nil || len(other) != 0 {
		t.Errorf("Classes leaked across organizations: %v, %d", err, len(other))
	}
}

func TestAnnouncements(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	author := insertProfile(t, s, "Ada", "ada@example.com")

	if _, err := s.CreateAnnouncement(ctx, testOrg, "Meeting", "Thursday 7pm", author); err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}

	anns, err := s.ListAnnouncements(ctx, testOrg, 0)
	if err != nil {
		t.Fatalf("ListAnnouncements failed: %v", err)
	}
	if len(anns) != 1 {
		t.Fatalf("Expected 1 announcement, got %d", len(anns))
	}
	if anns[0].AuthorName != "Ada" {
		t.Errorf("Expected author name resolved, got %q", anns[0].AuthorName)
	}
}

func TestEvents_UpcomingFilter(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	past := EventParams{Title: "Old Social", StartTime: now.Add(-48 * time.Hour), EndTime: now.Add(-46 * time.Hour)}
	future := EventParams{Title: "Spring Formal", StartTime: now.Add(72 * time.Hour), EndTime: now.Add(76 * time.Hour)}
	for _, p := range []EventParams{past, future} {
		if _, err := s.CreateEvent(ctx, testOrg, p, testAdmin); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	upcoming, err := s.ListEvents(ctx, testOrg, 0, true)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].Title != "Spring Formal" {
		t.Errorf("Upcoming filter wrong: %+v", upcoming)
	}

	all, err := s.ListEvents(ctx, testOrg, 0, false)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 events without filter, got %d", len(all))
	}
}

func TestIncidents_StatusLifecycle(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	reporter := insertProfile(t, s, "Grace", "grace@example.com")

	r, err := s.CreateIncident(ctx, testOrg, IncidentParams{
		Title:        "Broken window",
		Description:  "Window broken at the house",
		IncidentDate: time.Now().UTC(),
		Severity:     "medium",
	}, reporter)
	if err != nil {
		t.Fatalf("CreateIncident failed: %v", err)
	}
	if r.Status != models.IncidentPending {
		t.Errorf("New incident should be pending, got %q", r.Status)
	}

	updated, err := s.UpdateIncidentStatus(ctx, testOrg, r.ID, models.IncidentResolved)
	if err != nil {
		t.Fatalf("UpdateIncidentStatus failed: %v", err)
	}
	if updated.Status != models.IncidentResolved {
		t.Errorf("Status not updated: %+v", updated)
	}

	// An id from another organization must not be reachable.
	if _, err := s.UpdateIncidentStatus(ctx, "org-other", r.ID, models.IncidentDismissed); !errors.Is(err, ErrNotFound) {
		t.Errorf("Cross-organization incident update should be ErrNotFound, got %v", err)
	}

	pending, err := s.ListIncidents(ctx, testOrg, models.IncidentPending, 0)
	if err != nil {
		t.Fatalf("ListIncidents failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("Expected no pending incidents after resolve, got %d", len(pending))
	}
}

func TestRides_ClaimFlow(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	rider := insertProfile(t, s, "Rider", "rider@example.com")
	driver := insertProfile(t, s, "Driver", "driver@example.com")

	ride, err := s.CreateRide(ctx, testOrg, rider, RideParams{
		PickupLocation:  "Library",
		DropoffLocation: "Chapter house",
	})
	if err != nil {
		t.Fatalf("CreateRide failed: %v", err)
	}
	if ride.Status != models.RidePending {
		t.Errorf("New ride should be pending, got %q", ride.Status)
	}

	claimed, err := s.UpdateRideStatus(ctx, testOrg, ride.ID, models.RideClaimed, driver)
	if err != nil {
		t.Fatalf("UpdateRideStatus failed: %v", err)
	}
	if claimed.DriverID != driver {
		t.Errorf("Driver not recorded: %+v", claimed)
	}
	if claimed.ClaimedAt == nil {
		t.Error("ClaimedAt not set on claim")
	}

	if _, err := s.UpdateRideStatus(ctx, "org-other", ride.ID, models.RideCompleted, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Cross-organization ride update should be ErrNotFound, got %v", err)
	}
}

func TestDrivers(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	userID := insertProfile(t, s, "Driver", "driver@example.com")

	if _, err := s.AddDriver(ctx, testOrg, userID, testAdmin); err != nil {
		t.Fatalf("AddDriver failed: %v", err)
	}
	if _, err := s.AddDriver(ctx, testOrg, userID, testAdmin); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}

	drivers, err := s.ListDrivers(ctx, testOrg)
	if err != nil {
		t.Fatalf("ListDrivers failed: %v", err)
	}
	if len(drivers) != 1 || drivers[0].DriverName != "Driver" {
		t.Errorf("Unexpected drivers: %+v", drivers)
	}
}

func TestDuesQueries(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	userID := insertProfile(t, s, "Ada", "ada@example.com")

	if _, err := s.AddMember(ctx, testOrg, userID, "", "new_member"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreatePaymentClass(ctx, testOrg, PaymentClassParams{
		ClassName: "new_member", DisplayName: "New Member",
		DuesAmount: 75, BillingFrequency: models.BillingSemester,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreatePaymentClass(ctx, testOrg, PaymentClassParams{
		ClassName: "alumni", DisplayName: "Alumni",
		DuesAmount: 0, BillingFrequency: models.BillingOneTime,
	}); err != nil {
		t.Fatal(err)
	}

	recurring, err := s.RecurringPaymentClasses(ctx)
	if err != nil {
		t.Fatalf("RecurringPaymentClasses failed: %v", err)
	}
	if len(recurring) != 1 || recurring[0].ClassName != "new_member" {
		t.Errorf("One-time classes must be excluded: %+v", recurring)
	}

	members, err := s.MembersInClass(ctx, testOrg, "new_member")
	if err != nil {
		t.Fatalf("MembersInClass failed: %v", err)
	}
	if len(members) != 1 || members[0] != userID {
		t.Errorf("Unexpected class members: %v", members)
	}

	if _, found, err := s.LastDuesCharge(ctx, testOrg, userID); err != nil || found {
		t.Errorf("Expected no dues charge yet, found=%v err=%v", found, err)
	}

	if _, err := s.AddTransaction(ctx, testOrg, userID, 75, models.TransactionDues, "Fall dues", "system"); err != nil {
		t.Fatal(err)
	}
	last, found, err := s.LastDuesCharge(ctx, testOrg, userID)
	if err != nil || !found {
		t.Fatalf("Expected dues charge recorded, found=%v err=%v", found, err)
	}
	if time.Since(last) > time.Minute {
		t.Errorf("Last dues charge timestamp stale: %v", last)
	}
}
