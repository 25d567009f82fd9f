package jobs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"roundtable/internal/database"
	"roundtable/internal/models"
	"roundtable/internal/store"
)

const testOrg = "org-dues-1"

func setupScheduler(t *testing.T) (*DuesScheduler, *store.Store) {
	t.Helper()
	db, err := database.New("sqlite://" + filepath.Join(t.TempDir(), "dues_test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Initialize(); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	st := store.New(db)
	scheduler, err := NewDuesScheduler(st, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}
	return scheduler, st
}

func addClassMember(t *testing.T, st *store.Store, class string) string {
	t.Helper()
	userID := uuid.NewString()
	if _, err := st.AddMember(context.Background(), testOrg, userID, "", class); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}
	return userID
}

func TestRunOnce_ChargesDueMembers(t *testing.T) {
	scheduler, st := setupScheduler(t)
	ctx := context.Background()

	if _, err := st.CreatePaymentClass(ctx, testOrg, store.PaymentClassParams{
		ClassName: "new_member", DisplayName: "New Member",
		DuesAmount: 75, BillingFrequency: models.BillingSemester,
	}); err != nil {
		t.Fatal(err)
	}
	userID := addClassMember(t, st, "new_member")

	if err := scheduler.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}

	b, err := st.MemberBalance(ctx, testOrg, userID)
	if err != nil {
		t.Fatalf("MemberBalance failed: %v", err)
	}
	if b.Balance != 75 {
		t.Errorf("Expected dues charge of 75, got balance %v", b.Balance)
	}
	if len(b.Transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(b.Transactions))
	}
	tx := b.Transactions[0]
	if tx.Type != models.TransactionDues {
		t.Errorf("Expected dues transaction, got %q", tx.Type)
	}
	if tx.CreatedBy != duesCreatedBy {
		t.Errorf("Expected system attribution, got %q", tx.CreatedBy)
	}
}

func TestRunOnce_Idempotent(t *testing.T) {
	scheduler, st := setupScheduler(t)
	ctx := context.Background()

	if _, err := st.CreatePaymentClass(ctx, testOrg, store.PaymentClassParams{
		ClassName: "senior", DisplayName: "Senior",
		DuesAmount: 50, BillingFrequency: models.BillingMonthly,
	}); err != nil {
		t.Fatal(err)
	}
	userID := addClassMember(t, st, "senior")

	for i := 0; i < 3; i++ {
		if err := scheduler.RunOnce(ctx); err != nil {
			t.Fatalf("RunOnce %d failed: %v", i, err)
		}
	}

	b, err := st.MemberBalance(ctx, testOrg, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Transactions) != 1 {
		t.Errorf("Repeated sweeps inside one period must charge once, got %d transactions", len(b.Transactions))
	}
}

func TestRunOnce_SkipsOneTimeAndZeroDues(t *testing.T) {
	scheduler, st := setupScheduler(t)
	ctx := context.Background()

	if _, err := st.CreatePaymentClass(ctx, testOrg, store.PaymentClassParams{
		ClassName: "alumni", DisplayName: "Alumni",
		DuesAmount: 100, BillingFrequency: models.BillingOneTime,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.CreatePaymentClass(ctx, testOrg, store.PaymentClassParams{
		ClassName: "honorary", DisplayName: "Honorary",
		DuesAmount: 0, BillingFrequency: models.BillingMonthly,
	}); err != nil {
		t.Fatal(err)
	}
	userID := addClassMember(t, st, "alumni")
	honorary := addClassMember(t, st, "honorary")

	if err := scheduler.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}

	b, err := st.MemberBalance(ctx, testOrg, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Transactions) != 0 {
		t.Errorf("One-time classes must not be billed by the sweep, got %d transactions", len(b.Transactions))
	}

	hb, err := st.MemberBalance(ctx, testOrg, honorary)
	if err != nil {
		t.Fatal(err)
	}
	if len(hb.Transactions) != 0 {
		t.Errorf("Zero-dues classes must not be billed, got %d transactions", len(hb.Transactions))
	}
}

func TestBillingPeriod(t *testing.T) {
	if _, ok := billingPeriod(models.BillingOneTime); ok {
		t.Error("one_time must not have a billing period")
	}
	monthly, ok := billingPeriod(models.BillingMonthly)
	if !ok || monthly <= 0 {
		t.Errorf("Unexpected monthly period: %v %v", monthly, ok)
	}
	annual, _ := billingPeriod(models.BillingAnnual)
	semester, _ := billingPeriod(models.BillingSemester)
	if !(monthly < semester && semester < annual) {
		t.Errorf("Period ordering wrong: monthly=%v semester=%v annual=%v", monthly, semester, annual)
	}
}
