package models

import "time"

// BillPriority represents how urgently a bill should be funded
type BillPriority string

const (
	BillPriorityLow    BillPriority = "low"
	BillPriorityMedium BillPriority = "medium"
	BillPriorityHigh   BillPriority = "high"
)

// Bill represents a recurring or one-time obligation. A bill carries either
// a fixed DueDate (one-time) or a DueDay of the month (recurring), never
// both. Amount is nil only for variable bills, whose balance is tracked by
// statements rather than a fixed figure.
type Bill struct {
	Base
	UserID     string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string       `gorm:"not null" json:"name"`
	Amount     *int64       `json:"amount,omitempty"`
	DueDate    *time.Time   `json:"due_date,omitempty"`
	DueDay     *int         `json:"due_day,omitempty"`
	Priority   BillPriority `gorm:"not null;default:medium" json:"priority"`
	IsVariable bool         `gorm:"default:false" json:"is_variable"`
	Deferred   bool         `gorm:"default:false" json:"deferred"`
	Category   string       `json:"category"`
	Notes      string       `json:"notes"`

	// Relationships. Payments are removed along with the bill.
	Payments   []BillPayment   `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	Deferments []BillDeferment `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"deferments,omitempty"`
}

// BillPayment records money applied to a bill. IsPaid false marks a payment
// the user pre-scheduled for a future date.
type BillPayment struct {
	Base
	BillID       string    `gorm:"type:uuid;not null;index" json:"bill_id"`
	Amount       int64     `gorm:"not null" json:"amount"`
	PaymentDate  time.Time `gorm:"not null" json:"payment_date"`
	AppliedMonth string    `gorm:"size:7;index" json:"applied_month"` // YYYY-MM billing period
	IsPaid       bool      `gorm:"default:true" json:"is_paid"`
}

// BillDeferment parks a bill for one month pending a user decision.
// A bill has at most one active deferment per month.
type BillDeferment struct {
	Base
	BillID       string     `gorm:"type:uuid;not null;index" json:"bill_id"`
	MonthYear    string     `gorm:"size:7;not null" json:"month_year"` // YYYY-MM
	DecideByDate *time.Time `json:"decide_by_date,omitempty"`
	LossDate     *time.Time `json:"loss_date,omitempty"`
	Reason       string     `json:"reason"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
}
