package models

import "time"

const (
	APPName    = "Fleet Ops"
	APPVersion = "1.0"
)

// Report lifecycle statuses
const (
	ReportPendingVerification = "pending_verification"
	ReportApproved            = "approved"
	ReportRejected            = "rejected"
	ReportLeave               = "leave"
)

// Adjustment lifecycle statuses
const (
	AdjustmentPending  = "pending"
	AdjustmentApproved = "approved"
	AdjustmentApplied  = "applied"
	AdjustmentRejected = "rejected"
)

// Ledger transaction types. Balance-table types move pending_balance,
// penalty-table types move total_penalties, vehicle rows are income/expense.
const (
	TxnDeposit     = "deposit"
	TxnRefund      = "refund"
	TxnBonus       = "bonus"
	TxnDue         = "due"
	TxnPenalty     = "penalty"
	TxnPenaltyPaid = "penalty_paid"
	TxnIncome      = "income"
	TxnExpense     = "expense"
)

// Driver statuses beyond plain active (driver_status column, nullable)
const (
	DriverStatusLeave       = "leave"
	DriverStatusResigning   = "resigning"
	DriverStatusGoingTo24Hr = "going_to_24hr"
)

// Response is the type for response
type Response struct {
	Error   bool   `json:"error"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JWT holds the signed-in staff claims
type JWT struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Issuer    string    `json:"iss"`
	Audience  string    `json:"aud"`
	ExpiresAt int64     `json:"exp"`
	IssuedAt  int64     `json:"iat"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	Algorithm string
	Expiry    time.Duration
	Refresh   time.Duration
}

type DBConfig struct {
	DSN    string
	DEVDSN string
}

type Config struct {
	Port      int
	Env       string
	SlabsPath string
	JWT       JWTConfig
	DB        DBConfig
}

// Staff is a back-office user (admin, manager or hr)
type Staff struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`   //admin //manager //hr
	Status    string    `json:"status"` //active //inactive
	Email     string    `json:"email"`  //username
	Password  string    `json:"-"`      // don't expose
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Driver model. PendingBalance is the running deposit balance and
// TotalPenalties the denormalized penalty total; both are maintained by
// ledger writes and TotalPenalties is only read back when the ledger sum
// query fails.
type Driver struct {
	ID                int64      `json:"id"`
	FullName          string     `json:"full_name"`
	Mobile            string     `json:"mobile"`
	Shift             string     `json:"shift"` //morning //night //24hr //none
	VehicleNumber     *string    `json:"vehicle_number"`
	DriverStatus      *string    `json:"driver_status"` //null //leave //resigning //going_to_24hr
	Online            bool       `json:"online"`
	PendingBalance    float64    `json:"pending_balance"`
	TotalPenalties    float64    `json:"total_penalties"`
	JoiningDate       time.Time  `json:"joining_date"`
	OfflineFromDate   *time.Time `json:"offline_from_date"`
	OnlineFromDate    *time.Time `json:"online_from_date"`
	ResigningDate     *time.Time `json:"resigning_date"`
	ResignationReason string     `json:"resignation_reason"`
	LeaveReturnDate   *time.Time `json:"leave_return_date"`
	WeeklyOffDay      *int       `json:"weekly_off_day"` // 0=Sunday .. 6=Saturday
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Vehicle model. ActualRent overrides the slab-derived rent when set.
type Vehicle struct {
	ID            int64     `json:"id"`
	VehicleNumber string    `json:"vehicle_number"`
	Model         string    `json:"model"`
	TotalTrips    int64     `json:"total_trips"`
	Online        bool      `json:"online"`
	Deposit       float64   `json:"deposit"`
	ActualRent    *float64  `json:"actual_rent"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FleetReport is one driver shift submission. RentPaidAmount keeps the
// stored sign convention: negative means the company owes the driver.
type FleetReport struct {
	ID                   int64     `json:"id"`
	DriverID             int64     `json:"driver_id"`
	DriverName           string    `json:"driver_name,omitempty"`
	VehicleNumber        string    `json:"vehicle_number"`
	RentDate             time.Time `json:"rent_date"`
	Shift                string    `json:"shift"`
	TotalTrips           int       `json:"total_trips"`
	TotalEarnings        float64   `json:"total_earnings"`
	Toll                 float64   `json:"toll"`
	TotalCashCollect     float64   `json:"total_cashcollect"`
	OtherFee             float64   `json:"other_fee"`
	DepositCuttingAmount float64   `json:"deposit_cutting_amount"`
	RentPaidAmount       float64   `json:"rent_paid_amount"`
	Status               string    `json:"status"`
	IsServiceDay         bool      `json:"is_service_day"`
	RentVerified         bool      `json:"rent_verified"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// DriverTransaction is an append-only ledger row. The same shape backs the
// driver_balance_transactions and driver_penalty_transactions tables.
type DriverTransaction struct {
	ID          int64     `json:"id"`
	ReferenceID string    `json:"reference_id"`
	DriverID    int64     `json:"driver_id"`
	ReportID    *int64    `json:"report_id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// VehicleTransaction is an append-only ledger row for a vehicle.
type VehicleTransaction struct {
	ID            int64     `json:"id"`
	ReferenceID   string    `json:"reference_id"`
	VehicleNumber string    `json:"vehicle_number"`
	ReportID      *int64    `json:"report_id"`
	AdjustmentID  *int64    `json:"adjustment_id"`
	Amount        float64   `json:"amount"`
	Type          string    `json:"type"` //income //expense //due
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// VehiclePerformance is the per-day denormalized aggregate for a vehicle.
type VehiclePerformance struct {
	SheetDate     time.Time `json:"sheet_date"`
	VehicleNumber string    `json:"vehicle_number"`
	TotalTrips    int64     `json:"total_trips"`
	Earnings      float64   `json:"earnings"`
	OtherExpenses float64   `json:"other_expenses"`
}

// CommonAdjustment is an ad hoc amount folded into a vehicle's expenses when
// a matching report is approved. pending -> approved -> applied exactly once.
type CommonAdjustment struct {
	ID              int64     `json:"id"`
	DriverID        int64     `json:"driver_id"`
	VehicleNumber   string    `json:"vehicle_number"`
	Amount          float64   `json:"amount"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	AdjustmentDate  time.Time `json:"adjustment_date"`
	Status          string    `json:"status"`
	AppliedToReport *int64    `json:"applied_to_report"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HiringCycle is an HR vacancy round
type HiringCycle struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Vacancies int        `json:"vacancies"`
	Status    string     `json:"status"` //open //archived
	OpenedAt  time.Time  `json:"opened_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Applicant belongs to a hiring cycle
type Applicant struct {
	ID          int64      `json:"id"`
	CycleID     int64      `json:"cycle_id"`
	Name        string     `json:"name"`
	Mobile      string     `json:"mobile"`
	Status      string     `json:"status"` //pending //approved //rejected
	JoiningDate *time.Time `json:"joining_date"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DriverBalanceSummary is the ledger-derived outstanding position of a
// driver. LedgerDegraded is true when the penalty sums came from the
// denormalized fallback instead of the ledger.
type DriverBalanceSummary struct {
	DriverID           int64   `json:"driver_id"`
	PendingBalance     float64 `json:"pending_balance"`
	PenaltyCredits     float64 `json:"penalty_credits"`
	PenaltyDebits      float64 `json:"penalty_debits"`
	OutstandingBalance float64 `json:"outstanding_balance"`
	LedgerDegraded     bool    `json:"ledger_degraded"`
}

// ReportOverview holds per-status counts and settled sums for a date range
type ReportOverview struct {
	PendingReports  int64   `json:"pending_reports"`
	ApprovedReports int64   `json:"approved_reports"`
	RejectedReports int64   `json:"rejected_reports"`
	LeaveReports    int64   `json:"leave_reports"`
	TotalReports    int64   `json:"total_reports"`
	TotalEarnings   float64 `json:"total_earnings"`
	TotalRentPaid   float64 `json:"total_rent_paid"`
}
