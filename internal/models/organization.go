package models

import "time"

// Membership roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Payment transaction types
const (
	TransactionCharge  = "charge"  // adds to the member's balance
	TransactionPayment = "payment" // reduces the member's balance
	TransactionDues    = "dues"    // recurring charge, counts toward balance
)

// Payment class billing frequencies
const (
	BillingSemester = "semester"
	BillingMonthly  = "monthly"
	BillingAnnual   = "annual"
	BillingOneTime  = "one_time"
)

// Profile is a user account known to the platform.
// Accounts are created by the auth layer; this service only reads them.
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Member is an organization membership joined with the member's profile.
type Member struct {
	UserID       string    `json:"-"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PaymentClass string    `json:"payment_class"`
	JoinedAt     time.Time `json:"joined_at"`
}

// Membership is the raw membership row, returned from mutations.
type Membership struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	Role           string    `json:"role"`
	PaymentClass   string    `json:"payment_class"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Transaction is a single payment ledger entry for a member.
type Transaction struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	Amount         float64   `json:"amount"`
	Type           string    `json:"type"`
	Description    string    `json:"description"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// Balance is a member's computed balance with recent ledger history.
type Balance struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Balance      float64       `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

// Announcement is a post visible to all members of an organization.
type Announcement struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"-"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CreatedBy      string    `json:"created_by"`
	AuthorName     string    `json:"author_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PaymentClass is a membership tier with a dues schedule.
type PaymentClass struct {
	ID               string    `json:"id"`
	OrganizationID   string    `json:"-"`
	ClassName        string    `json:"class_name"`
	DisplayName      string    `json:"display_name"`
	DuesAmount       float64   `json:"dues_amount"`
	BillingFrequency string    `json:"billing_frequency"` // semester, monthly, annual, one_time
	Description      string    `json:"description,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// Event is a calendar entry for the organization.
type Event struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"-"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Location       string    `json:"location,omitempty"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	CreatedBy      string    `json:"created_by"`
	CreatorName    string    `json:"created_by_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Incident report statuses
const (
	IncidentPending   = "pending"
	IncidentReviewing = "reviewing"
	IncidentResolved  = "resolved"
	IncidentDismissed = "dismissed"
)

// IncidentReport is a filed incident with severity and review status.
type IncidentReport struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"-"`
	ReporterID     string    `json:"reporter_id"`
	ReporterName   string    `json:"reporter_name,omitempty"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	IncidentDate   time.Time `json:"incident_date"`
	Location       string    `json:"location,omitempty"`
	Severity       string    `json:"severity"` // low, medium, high, critical
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Ride statuses (the Chariot system)
const (
	RidePending    = "pending"
	RideClaimed    = "claimed"
	RideInProgress = "in_progress"
	RideCompleted  = "completed"
	RideCancelled  = "cancelled"
)

// Ride is a Chariot ride request, optionally claimed by a driver.
type Ride struct {
	ID              string     `json:"id"`
	OrganizationID  string     `json:"-"`
	UserID          string     `json:"user_id"`
	RiderName       string     `json:"rider_name,omitempty"`
	PickupLocation  string     `json:"pickup_location"`
	DropoffLocation string     `json:"dropoff_location"`
	PickupTime      *time.Time `json:"pickup_time,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	DriverID        string     `json:"driver_id,omitempty"`
	DriverName      string     `json:"driver_name,omitempty"`
	ClaimedAt       *time.Time `json:"claimed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Driver is an approved Chariot driver for an organization.
type Driver struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"-"`
	UserID         string    `json:"user_id"`
	DriverName     string    `json:"driver_name,omitempty"`
	AddedBy        string    `json:"added_by"`
	CreatedAt      time.Time `json:"created_at"`
}
