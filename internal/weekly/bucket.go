// Package weekly groups dated monetary events into fixed Sunday–Saturday
// week buckets and projects running balances across them. Both operations
// are pure: each call recomputes everything from its snapshot inputs.
package weekly

import (
	"sort"
	"time"

	"billow/internal/dates"
	"billow/internal/schedule"
)

// BillItem is a bill annotated for weekly planning. Amount is the amount
// still owed for the period; variable bills without a fixed amount
// contribute zero to week totals.
type BillItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   int64           `json:"amount"`
	DueDate  time.Time       `json:"due_date"`
	Priority string          `json:"priority"`
	Status   schedule.Status `json:"status"`
}

// IncomeItem is a paycheck or deposit landing on a single date. Virtual
// marks instances materialized from a recurring template rather than
// stored records.
type IncomeItem struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Kind    string    `json:"kind"`
	Amount  int64     `json:"amount"`
	Date    time.Time `json:"date"`
	Virtual bool      `json:"virtual"`
}

// GigItem is income spanning a date range.
type GigItem struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Amount int64     `json:"amount"`
	Start  time.Time `json:"start_date"`
	End    time.Time `json:"end_date"`
}

// WeekBucket aggregates one Sunday–Saturday week. Carryover, TotalAvailable,
// Remainder, and Progress are filled by Project.
type WeekBucket struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`

	Bills   []BillItem   `json:"bills"`
	Incomes []IncomeItem `json:"incomes"`
	Gigs    []GigItem    `json:"gigs"`

	TotalBills     int64   `json:"total_bills"`
	TotalIncome    int64   `json:"total_income"`
	Carryover      int64   `json:"carryover"`
	TotalAvailable int64   `json:"total_available"`
	Remainder      int64   `json:"remainder"`
	Progress       float64 `json:"progress"`
}

// Bucketize partitions the events into week buckets between windowStart and
// windowEnd, oldest first. Point events land in exactly one bucket; a gig
// appears in every week its range overlaps, counted at full amount each
// time. Only weeks containing at least one event materialize, except the
// week containing today, which always does. Callers are expected to have
// already routed undated and deferred bills elsewhere.
func Bucketize(bills []BillItem, incomes []IncomeItem, gigs []GigItem, windowStart, windowEnd, today time.Time) []WeekBucket {
	windowStart = dates.Midnight(windowStart)
	windowEnd = dates.Midnight(windowEnd)
	if windowEnd.Before(windowStart) {
		return nil
	}

	buckets := make(map[time.Time]*WeekBucket)

	bucketFor := func(weekStart time.Time) *WeekBucket {
		if b, ok := buckets[weekStart]; ok {
			return b
		}
		b := &WeekBucket{Start: weekStart, End: weekStart.AddDate(0, 0, 6)}
		buckets[weekStart] = b
		return b
	}

	inWindow := func(d time.Time) bool {
		return !d.Before(windowStart) && !d.After(windowEnd)
	}

	// The current week always materializes, even when empty.
	if todayWeek := dates.WeekStart(today); inWindow(dates.Midnight(today)) {
		bucketFor(todayWeek)
	}

	for _, bill := range bills {
		d := dates.Midnight(bill.DueDate)
		if !inWindow(d) {
			continue
		}
		b := bucketFor(dates.WeekStart(d))
		bill.DueDate = d
		b.Bills = append(b.Bills, bill)
		b.TotalBills += bill.Amount
	}

	for _, inc := range incomes {
		d := dates.Midnight(inc.Date)
		if !inWindow(d) {
			continue
		}
		b := bucketFor(dates.WeekStart(d))
		inc.Date = d
		b.Incomes = append(b.Incomes, inc)
		b.TotalIncome += inc.Amount
	}

	for _, gig := range gigs {
		start := dates.Midnight(gig.Start)
		end := dates.Midnight(gig.End)
		if end.Before(start) {
			start, end = end, start
		}
		if end.Before(windowStart) || start.After(windowEnd) {
			continue
		}
		gig.Start, gig.End = start, end

		// Every overlapped week gets the gig at full amount; amounts are
		// deliberately not pro-rated across weeks.
		first := dates.WeekStart(maxDate(start, windowStart))
		last := dates.WeekStart(minDate(end, windowEnd))
		for ws := first; !ws.After(last); ws = ws.AddDate(0, 0, 7) {
			b := bucketFor(ws)
			b.Gigs = append(b.Gigs, gig)
			b.TotalIncome += gig.Amount
		}
	}

	out := make([]WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		sortBucket(b)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// sortBucket orders a bucket's events ascending by date for display.
func sortBucket(b *WeekBucket) {
	sort.SliceStable(b.Bills, func(i, j int) bool { return b.Bills[i].DueDate.Before(b.Bills[j].DueDate) })
	sort.SliceStable(b.Incomes, func(i, j int) bool { return b.Incomes[i].Date.Before(b.Incomes[j].Date) })
	sort.SliceStable(b.Gigs, func(i, j int) bool { return b.Gigs[i].Start.Before(b.Gigs[j].Start) })
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
