package schedule

import (
	"time"

	"billow/internal/dates"
	"billow/internal/models"
)

// Status is the derived state of a bill for the current billing period.
type Status string

const (
	StatusPaid          Status = "paid"
	StatusPartiallyPaid Status = "partially_paid"
	StatusOverdue       Status = "overdue"
	StatusDeferred      Status = "deferred"
	StatusUpcoming      Status = "upcoming"
	StatusUndated       Status = "undated"
)

// PeriodTotals carries the pre-aggregated amounts for a bill's current
// billing period. The storage layer computes these; the classifier only
// consumes them.
type PeriodTotals struct {
	Total int64 `json:"total"`
	Paid  int64 `json:"paid"`
}

// Remaining returns the unpaid portion of the period, floored at zero so an
// overpayment never shows as a negative balance due.
func (p PeriodTotals) Remaining() int64 {
	if r := p.Total - p.Paid; r > 0 {
		return r
	}
	return 0
}

// Classify derives the bill's status from its due date, payments, active
// deferments, and the current period's totals.
//
// Precedence: a deferment (flag or active record for the current month)
// wins over everything; an undated bill is never overdue; full payment
// beats overdue; overdue beats partial payment.
func Classify(bill *models.Bill, payments []models.BillPayment, deferments []models.BillDeferment, totals PeriodTotals, today time.Time) Status {
	if bill.Deferred || hasActiveDeferment(deferments, today) {
		return StatusDeferred
	}

	due := NextDueDate(bill, payments, today)
	if due == nil {
		return StatusUndated
	}

	if totals.Total > 0 && totals.Paid >= totals.Total {
		return StatusPaid
	}

	if due.Before(dates.Midnight(today)) {
		return StatusOverdue
	}

	if totals.Paid > 0 {
		return StatusPartiallyPaid
	}

	return StatusUpcoming
}

// hasActiveDeferment reports whether any deferment is active for today's
// month.
func hasActiveDeferment(deferments []models.BillDeferment, today time.Time) bool {
	month := MonthKey(today)
	for i := range deferments {
		d := &deferments[i]
		if d.IsActive && d.MonthYear == month {
			return true
		}
	}
	return false
}

// MonthKey formats a date as the YYYY-MM billing period key used by
// payments and deferments.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
