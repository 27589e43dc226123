package recurrence

import (
	"time"

	"billow/internal/dates"
)

// Expand materializes the rule's occurrence dates within
// [rangeStart, rangeEnd], ordered ascending. It is a pure function of its
// inputs: the same rule and range always produce the same sequence, and no
// date is ever emitted twice. A rule starting after rangeEnd, or a missing
// cadence, yields an empty slice.
func Expand(rule Rule, rangeStart, rangeEnd time.Time) []time.Time {
	rangeStart = dates.Midnight(rangeStart)
	rangeEnd = dates.Midnight(rangeEnd)
	if rangeEnd.Before(rangeStart) {
		return nil
	}

	start := dates.Midnight(rule.Start)
	if start.After(rangeEnd) {
		return nil
	}

	// Effective generation start: never before the rule itself begins.
	genStart := start
	if rangeStart.After(genStart) {
		genStart = rangeStart
	}

	limit := rangeEnd
	if rule.End != nil {
		end := dates.Midnight(*rule.End)
		if end.Before(limit) {
			limit = end
		}
	}
	if limit.Before(genStart) {
		return nil
	}

	switch k := rule.Kind.(type) {
	case Weekly:
		return expandWeekly(k, rule.interval(), genStart, limit)
	case Monthly:
		return expandMonthly(k, rule.interval(), genStart, limit)
	}
	return nil
}

// expandWeekly snaps the first occurrence to the rule's weekday on or after
// the generation start, then steps in interval-week increments. The snap
// never skips the interval stepping: the stride applies from the snapped
// date onward.
func expandWeekly(k Weekly, interval int, genStart, limit time.Time) []time.Time {
	current := genStart
	if k.Weekday != nil {
		offset := (int(*k.Weekday) - int(current.Weekday()) + 7) % 7
		current = current.AddDate(0, 0, offset)
	}

	var out []time.Time
	for !current.After(limit) {
		out = append(out, current)
		current = current.AddDate(0, 0, 7*interval)
	}
	return out
}

// expandMonthly re-resolves the anchor for every visited month. The anchor
// rule, not a fixed day offset, is reapplied each iteration so a nominal
// day 31 clamps independently in short months.
func expandMonthly(k Monthly, interval int, genStart, limit time.Time) []time.Time {
	anchor := k.Anchor
	if anchor == nil {
		// No active anchor field: default to the first of the month.
		anchor = DayOfMonth(1)
	}

	year, month := genStart.Year(), genStart.Month()

	var out []time.Time
	for {
		// The first of the visited month already past the limit means no
		// further anchors can qualify.
		if time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).After(limit) {
			return out
		}

		d := anchor.resolve(year, month)
		if d.After(limit) {
			return out
		}
		if !d.Before(genStart) {
			out = append(out, d)
		}

		month += time.Month(interval)
		for month > 12 {
			month -= 12
			year++
		}
	}
}
