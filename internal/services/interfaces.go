package services

import (
	"time"

	"billow/internal/models"
	"billow/internal/pagination"
	"billow/internal/schedule"
	"billow/internal/weekly"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// BillInput carries the user-editable fields of a bill.
type BillInput struct {
	Name       string
	Amount     *int64
	DueDate    *time.Time
	DueDay     *int
	Priority   models.BillPriority
	IsVariable bool
	Category   string
	Notes      string
}

// BillSchedule is a bill annotated with its derived scheduling state.
type BillSchedule struct {
	Bill    models.Bill           `json:"bill"`
	NextDue *time.Time            `json:"next_due,omitempty"`
	Status  schedule.Status       `json:"status"`
	Period  schedule.PeriodTotals `json:"period"`
}

// BillServicer defines the contract for bill-related business logic.
type BillServicer interface {
	CreateBill(userID string, input BillInput) (*models.Bill, error)
	GetUserBills(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Bill], error)
	GetBillByID(userID, billID string) (*models.Bill, error)
	UpdateBill(userID, billID string, input BillInput) (*models.Bill, error)
	DeleteBill(userID, billID string) error
	SetDeferredFlag(userID, billID string, deferred bool) (*models.Bill, error)

	RecordPayment(userID, billID string, amount int64, paymentDate time.Time, isPaid bool) (*models.BillPayment, error)
	DeletePayment(userID, billID, paymentID string) error

	DeferBill(userID, billID, monthYear string, decideBy, lossDate *time.Time, reason string) (*models.BillDeferment, error)
	ResolveDeferment(userID, billID, defermentID string) error

	GetBillSchedule(userID, billID string, today time.Time) (*BillSchedule, error)
}

// IncomeServicer defines the contract for paychecks, deposits, and gigs.
type IncomeServicer interface {
	CreatePaycheck(userID, name string, amount int64, date time.Time, notes string) (*models.Paycheck, error)
	GetUserPaychecks(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Paycheck], error)
	UpdatePaycheck(userID, paycheckID, name string, amount *int64, date *time.Time, notes *string) (*models.Paycheck, error)
	DeletePaycheck(userID, paycheckID string) error

	CreateDeposit(userID, name string, amount int64, date time.Time, notes string) (*models.Deposit, error)
	GetUserDeposits(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Deposit], error)
	UpdateDeposit(userID, depositID, name string, amount *int64, date *time.Time, notes *string) (*models.Deposit, error)
	DeleteDeposit(userID, depositID string) error

	CreateGig(userID, name string, amount int64, startDate, endDate time.Time, notes string) (*models.Gig, error)
	GetUserGigs(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Gig], error)
	GetGigByID(userID, gigID string) (*models.Gig, error)
	UpdateGig(userID, gigID, name string, amount *int64, startDate, endDate *time.Time, notes *string) (*models.Gig, error)
	DeleteGig(userID, gigID string) error

	LinkIncomeToGig(userID string, kind models.IncomeKind, incomeID, gigID string) error
	UnlinkIncomeFromGig(userID string, kind models.IncomeKind, incomeID string) error
}

// RecurringInput carries the user-editable fields of a recurring income template.
type RecurringInput struct {
	Kind                   models.IncomeKind
	Name                   string
	Amount                 int64
	StartDate              time.Time
	EndDate                *time.Time
	Unit                   models.RecurrenceUnit
	Interval               int
	DayOfWeek              *int
	DayOfMonth             *int
	LastDayOfMonth         bool
	LastBusinessDayOfMonth bool
}

// RecurringServicer defines the contract for recurring income templates.
type RecurringServicer interface {
	CreateRecurring(userID string, input RecurringInput) (*models.RecurringIncome, error)
	GetUserRecurring(userID string, page pagination.PageRequest, kind *models.IncomeKind) (*pagination.PageResponse[models.RecurringIncome], error)
	GetRecurringByID(userID, recurringID string) (*models.RecurringIncome, error)
	UpdateRecurring(userID, recurringID string, input RecurringInput) (*models.RecurringIncome, error)
	DeleteRecurring(userID, recurringID string) error
	Preview(userID, recurringID string, from, to time.Time) ([]time.Time, error)
}

// WeekPlan is the weekly projection for a date window, plus the bills that
// cannot be scheduled into any week.
type WeekPlan struct {
	From        time.Time           `json:"from"`
	To          time.Time           `json:"to"`
	Weeks       []weekly.WeekBucket `json:"weeks"`
	Unscheduled []BillSchedule      `json:"unscheduled"`
}

// PlannerServicer recomputes the weekly financial projection from the
// user's current records. Each call is a one-shot pure recomputation over a
// fresh snapshot; callers re-invoke it after any mutation.
type PlannerServicer interface {
	GetWeekPlan(userID string, from, to, today time.Time) (*WeekPlan, error)
	GetUnscheduledBills(userID string, today time.Time) ([]BillSchedule, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
