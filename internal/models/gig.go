package models

import "time"

// Gig represents irregular income spanning a date range rather than a
// single day. Linked paychecks and deposits record what was actually
// received for the engagement.
type Gig struct {
	Base
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Amount    int64     `gorm:"not null" json:"amount"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Notes     string    `json:"notes"`

	// Relationships
	Paychecks []Paycheck `gorm:"foreignKey:GigID" json:"paychecks,omitempty"`
	Deposits  []Deposit  `gorm:"foreignKey:GigID" json:"deposits,omitempty"`
}
