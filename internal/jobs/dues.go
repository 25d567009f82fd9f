package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"roundtable/internal/models"
	"roundtable/internal/store"
)

// duesCreatedBy attributes scheduler-generated charges in the ledger.
const duesCreatedBy = "system"

// DuesScheduler periodically charges recurring dues to every member of
// an active payment class whose billing period has elapsed since their
// last dues charge.
type DuesScheduler struct {
	store     *store.Store
	scheduler gocron.Scheduler
	interval  time.Duration
}

// NewDuesScheduler creates the dues billing scheduler.
func NewDuesScheduler(st *store.Store, interval time.Duration) (*DuesScheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &DuesScheduler{store: st, scheduler: scheduler, interval: interval}, nil
}

// Start registers the billing job and starts the scheduler.
func (d *DuesScheduler) Start() error {
	_, err := d.scheduler.NewJob(
		gocron.DurationJob(d.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := d.RunOnce(ctx); err != nil {
				slog.Error("dues billing run failed", "error", err)
			}
		}),
		gocron.WithName("dues-billing"),
	)
	if err != nil {
		return fmt.Errorf("failed to register dues billing job: %w", err)
	}

	d.scheduler.Start()
	slog.Info("dues scheduler started", "interval", d.interval.String())
	return nil
}

// Stop shuts the scheduler down, waiting for a running job to finish.
func (d *DuesScheduler) Stop() error {
	return d.scheduler.Shutdown()
}

// RunOnce performs a single billing sweep over all organizations. A
// failure charging one member is logged and does not stop the sweep.
func (d *DuesScheduler) RunOnce(ctx context.Context) error {
	classes, err := d.store.RecurringPaymentClasses(ctx)
	if err != nil {
		return err
	}

	charged := 0
	for _, pc := range classes {
		if pc.DuesAmount <= 0 {
			continue
		}
		period, ok := billingPeriod(pc.BillingFrequency)
		if !ok {
			slog.Warn("skipping payment class with unknown billing frequency",
				"class", pc.ClassName, "frequency", pc.BillingFrequency)
			continue
		}

		userIDs, err := d.store.MembersInClass(ctx, pc.OrganizationID, pc.ClassName)
		if err != nil {
			slog.Error("failed to list members for dues billing",
				"organization_id", pc.OrganizationID, "class", pc.ClassName, "error", err)
			continue
		}

		for _, userID := range userIDs {
			n, err := d.chargeIfDue(ctx, pc, userID, period)
			if err != nil {
				slog.Error("failed to charge dues",
					"organization_id", pc.OrganizationID, "user_id", userID, "error", err)
				continue
			}
			charged += n
		}
	}

	if charged > 0 {
		slog.Info("dues billing run complete", "charges", charged)
	}
	return nil
}

// chargeIfDue charges one member when their billing period has elapsed.
// Returns the number of charges written (0 or 1).
func (d *DuesScheduler) chargeIfDue(ctx context.Context, pc models.PaymentClass, userID string, period time.Duration) (int, error) {
	last, found, err := d.store.LastDuesCharge(ctx, pc.OrganizationID, userID)
	if err != nil {
		return 0, err
	}
	if found && time.Since(last) < period {
		return 0, nil
	}

	description := fmt.Sprintf("%s dues (%s)", pc.DisplayName, pc.BillingFrequency)
	_, err = d.store.AddTransaction(ctx, pc.OrganizationID, userID, pc.DuesAmount,
		models.TransactionDues, description, duesCreatedBy)
	if err != nil {
		return 0, err
	}
	return 1, nil
}

// billingPeriod maps a billing frequency to the minimum time between
// charges. Months and years use fixed approximations; the sweep runs
// far more often than any period, so drift only delays a charge.
func billingPeriod(frequency string) (time.Duration, bool) {
	switch frequency {
	case models.BillingMonthly:
		return 30 * 24 * time.Hour, true
	case models.BillingSemester:
		return 120 * 24 * time.Hour, true
	case models.BillingAnnual:
		return 365 * 24 * time.Hour, true
	default:
		return 0, false
	}
}
