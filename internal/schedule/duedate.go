// Package schedule resolves bill due dates and classifies bill status from
// payment and deferment history. All functions are pure: they never touch
// storage and never mutate their inputs, so repeated calls over the same
// snapshot always agree.
package schedule

import (
	"time"

	"billow/internal/dates"
	"billow/internal/models"
)

// NextDueDate returns the bill's current next due date, or nil for an
// undated bill.
//
// Resolution order:
//  1. A scheduled payment (payment_date strictly after today) is the next
//     due date; the user has already committed to that date.
//  2. A recurring bill rolls forward from its most recent paid payment:
//     due_day in the payment's month, advanced one month when the candidate
//     is on or before the payment date.
//  3. Otherwise due_day in the current month, advanced past today, or the
//     fixed due_date for one-time bills.
func NextDueDate(bill *models.Bill, payments []models.BillPayment, today time.Time) *time.Time {
	today = dates.Midnight(today)

	if scheduled := earliestScheduled(payments, today); scheduled != nil {
		return scheduled
	}

	if bill.DueDay != nil {
		if lastPaid := mostRecentPaid(payments); lastPaid != nil {
			due := dueDayInMonth(*bill.DueDay, lastPaid.PaymentDate.Year(), lastPaid.PaymentDate.Month())
			if !due.After(dates.Midnight(lastPaid.PaymentDate)) {
				due = dueDayInMonth(*bill.DueDay, due.Year(), due.Month()+1)
			}
			return &due
		}

		due := dueDayInMonth(*bill.DueDay, today.Year(), today.Month())
		if due.Before(today) {
			due = dueDayInMonth(*bill.DueDay, today.Year(), today.Month()+1)
		}
		return &due
	}

	if bill.DueDate != nil {
		due := dates.Midnight(*bill.DueDate)
		return &due
	}

	return nil
}

// IsOverdue reports whether the bill's next due date has passed. Comparison
// is date-only; a bill due today is not overdue.
func IsOverdue(bill *models.Bill, payments []models.BillPayment, today time.Time) bool {
	due := NextDueDate(bill, payments, today)
	return due != nil && due.Before(dates.Midnight(today))
}

// earliestScheduled returns the date of the soonest payment scheduled
// strictly after today, or nil when none exists.
func earliestScheduled(payments []models.BillPayment, today time.Time) *time.Time {
	var earliest *time.Time
	for i := range payments {
		p := &payments[i]
		d := dates.Midnight(p.PaymentDate)
		if !d.After(today) {
			continue
		}
		if earliest == nil || d.Before(*earliest) {
			earliest = &d
		}
	}
	return earliest
}

// mostRecentPaid returns the paid payment with the latest payment date.
func mostRecentPaid(payments []models.BillPayment) *models.BillPayment {
	var latest *models.BillPayment
	for i := range payments {
		p := &payments[i]
		if !p.IsPaid {
			continue
		}
		if latest == nil || p.PaymentDate.After(latest.PaymentDate) {
			latest = p
		}
	}
	return latest
}

// dueDayInMonth places a nominal due day within the given month, clamping
// to the month's last day when the day does not exist. Month overflow
// (month 13) carries into the next year via time.Date normalization.
func dueDayInMonth(day int, year int, month time.Month) time.Time {
	norm := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = norm.Year(), norm.Month()
	if last := dates.DaysInMonth(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
