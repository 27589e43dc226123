// Package recurrence expands recurring income templates into concrete
// occurrence dates. Rules are modeled as a tagged union of cadence kinds so
// each variant's expansion is handled exhaustively and monthly anchor
// precedence cannot be mis-ordered by nullable-field branching.
package recurrence

import (
	"time"

	"billow/internal/dates"
)

// Kind is the cadence variant of a rule: Weekly or Monthly.
type Kind interface {
	isKind()
}

// Weekly repeats every Interval weeks. When Weekday is set, occurrences
// snap forward to that weekday; otherwise they stay on the start date's
// weekday.
type Weekly struct {
	Weekday  *time.Weekday
	Interval int
}

func (Weekly) isKind() {}

// Monthly repeats every Interval months, re-resolving Anchor against each
// month so months of different lengths clamp independently.
type Monthly struct {
	Anchor   Anchor
	Interval int
}

func (Monthly) isKind() {}

// Anchor picks the day within a month an occurrence falls on.
type Anchor interface {
	// resolve returns the occurrence date within the given month.
	resolve(year int, month time.Month) time.Time
}

// DayOfMonth anchors on a nominal day number, clamped to the month's last
// day when the nominal day does not exist (day 31 in February becomes the
// last day of February).
type DayOfMonth int

func (d DayOfMonth) resolve(year int, month time.Month) time.Time {
	day := int(d)
	if day < 1 {
		day = 1
	}
	if last := dates.DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// LastDay anchors on the calendar end of the month.
type LastDay struct{}

func (LastDay) resolve(year int, month time.Month) time.Time {
	return dates.EndOfMonth(year, month)
}

// LastBusinessDay anchors on the last weekday of the month: the calendar
// end of month, stepped backward over Saturday and Sunday.
type LastBusinessDay struct{}

func (LastBusinessDay) resolve(year int, month time.Month) time.Time {
	d := dates.EndOfMonth(year, month)
	for dates.IsWeekend(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// Rule is an immutable recurring-event template. Occurrences are computed
// on demand by Expand and never persisted.
type Rule struct {
	Amount int64
	Start  time.Time
	End    *time.Time // nil means open-ended
	Kind   Kind
}

// interval returns the rule's step count, defaulting to one. A malformed
// interval degrades to the smallest valid cadence rather than failing.
func (r Rule) interval() int {
	switch k := r.Kind.(type) {
	case Weekly:
		if k.Interval >= 1 {
			return k.Interval
		}
	case Monthly:
		if k.Interval >= 1 {
			return k.Interval
		}
	}
	return 1
}
