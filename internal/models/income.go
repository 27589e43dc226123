package models

import "time"

// Paycheck represents income received on a single date. GigID links the
// paycheck to at most one gig it was earned from.
type Paycheck struct {
	Base
	UserID string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"not null" json:"name"`
	Amount int64     `gorm:"not null" json:"amount"`
	Date   time.Time `gorm:"not null" json:"date"`
	Notes  string    `json:"notes"`
	GigID  *string   `gorm:"type:uuid;index" json:"gig_id,omitempty"`
}

// Deposit represents a non-paycheck credit on a single date.
type Deposit struct {
	Base
	UserID string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"not null" json:"name"`
	Amount int64     `gorm:"not null" json:"amount"`
	Date   time.Time `gorm:"not null" json:"date"`
	Notes  string    `json:"notes"`
	GigID  *string   `gorm:"type:uuid;index" json:"gig_id,omitempty"`
}
