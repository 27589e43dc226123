package models

import (
	"time"

	"billow/internal/recurrence"
)

// IncomeKind distinguishes which income collection a recurring template
// materializes into.
type IncomeKind string

const (
	IncomeKindPaycheck IncomeKind = "paycheck"
	IncomeKindDeposit  IncomeKind = "deposit"
)

// RecurrenceUnit represents the cadence of a recurring template
type RecurrenceUnit string

const (
	RecurrenceUnitWeek  RecurrenceUnit = "week"
	RecurrenceUnitMonth RecurrenceUnit = "month"
)

// RecurringIncome is a template for repeating paychecks or deposits. The
// storage shape keeps the nullable anchor columns; Rule converts them into
// the engine's tagged union, applying anchor precedence. Occurrences are
// never persisted, only computed on demand.
type RecurringIncome struct {
	Base
	UserID    string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind      IncomeKind     `gorm:"not null" json:"kind"`
	Name      string         `gorm:"not null" json:"name"`
	Amount    int64          `gorm:"not null" json:"amount"`
	StartDate time.Time      `gorm:"not null" json:"start_date"`
	EndDate   *time.Time     `json:"end_date,omitempty"`
	Unit      RecurrenceUnit `gorm:"not null" json:"unit"`
	Interval  int            `gorm:"not null;default:1" json:"interval"`

	// Weekly anchor (0 = Sunday). Only meaningful when Unit is week.
	DayOfWeek *int `json:"day_of_week,omitempty"`

	// Monthly anchors, in precedence order: last business day, last day,
	// fixed day of month. None set defaults to the first of the month.
	DayOfMonth             *int `json:"day_of_month,omitempty"`
	LastDayOfMonth         bool `gorm:"default:false" json:"last_day_of_month"`
	LastBusinessDayOfMonth bool `gorm:"default:false" json:"last_business_day_of_month"`
}

// Rule converts the stored template into an expansion rule.
func (r *RecurringIncome) Rule() recurrence.Rule {
	rule := recurrence.Rule{
		Amount: r.Amount,
		Start:  r.StartDate,
		End:    r.EndDate,
	}

	interval := r.Interval
	if interval < 1 {
		interval = 1
	}

	switch r.Unit {
	case RecurrenceUnitWeek:
		weekly := recurrence.Weekly{Interval: interval}
		if r.DayOfWeek != nil {
			wd := time.Weekday(*r.DayOfWeek % 7)
			weekly.Weekday = &wd
		}
		rule.Kind = weekly
	case RecurrenceUnitMonth:
		monthly := recurrence.Monthly{Interval: interval}
		switch {
		case r.LastBusinessDayOfMonth:
			monthly.Anchor = recurrence.LastBusinessDay{}
		case r.LastDayOfMonth:
			monthly.Anchor = recurrence.LastDay{}
		case r.DayOfMonth != nil:
			monthly.Anchor = recurrence.DayOfMonth(*r.DayOfMonth)
		default:
			monthly.Anchor = recurrence.DayOfMonth(1)
		}
		rule.Kind = monthly
	}

	return rule
}
