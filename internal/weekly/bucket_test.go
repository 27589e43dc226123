package weekly

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// January 2024: the 7th, 14th, 21st, and 28th are Sundays.

func TestBucketize(t *testing.T) {
	window := func() (time.Time, time.Time) {
		return date(2024, time.January, 7), date(2024, time.February, 3)
	}

	t.Run("point_events_land_in_one_bucket", func(t *testing.T) {
		start, end := window()
		bills := []BillItem{{ID: "b1", Amount: 5000, DueDate: date(2024, time.January, 10)}}
		incomes := []IncomeItem{{ID: "p1", Amount: 20000, Date: date(2024, time.January, 12)}}

		buckets := Bucketize(bills, incomes, nil, start, end, date(2024, time.January, 10))
		if len(buckets) != 1 {
			t.Fatalf("expected 1 bucket, got %d", len(buckets))
		}
		b := buckets[0]
		if !b.Start.Equal(date(2024, time.January, 7)) || !b.End.Equal(date(2024, time.January, 13)) {
			t.Errorf("unexpected bucket bounds %s..%s", b.Start, b.End)
		}
		if b.TotalBills != 5000 || b.TotalIncome != 20000 {
			t.Errorf("unexpected totals bills=%d income=%d", b.TotalBills, b.TotalIncome)
		}
	})

	t.Run("week_bounds_are_sunday_to_saturday", func(t *testing.T) {
		start, end := window()
		incomes := []IncomeItem{{ID: "p1", Amount: 100, Date: date(2024, time.January, 20)}} // Saturday

		buckets := Bucketize(nil, incomes, nil, start, end, date(2024, time.January, 20))
		if len(buckets) != 1 {
			t.Fatalf("expected 1 bucket, got %d", len(buckets))
		}
		if buckets[0].Start.Weekday() != time.Sunday {
			t.Errorf("bucket should start on Sunday, got %s", buckets[0].Start.Weekday())
		}
		if !buckets[0].End.Equal(buckets[0].Start.AddDate(0, 0, 6)) {
			t.Error("bucket end should be start plus six days")
		}
	})

	t.Run("gig_spanning_boundary_counted_in_both_weeks", func(t *testing.T) {
		start, end := window()
		gigs := []GigItem{{
			ID:     "g1",
			Amount: 30000,
			Start:  date(2024, time.January, 11), // Thursday, week of the 7th
			End:    date(2024, time.January, 16), // Tuesday, week of the 14th
		}}

		buckets := Bucketize(nil, nil, gigs, start, end, date(2024, time.January, 11))
		if len(buckets) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(buckets))
		}
		var sum int64
		for _, b := range buckets {
			if len(b.Gigs) != 1 {
				t.Fatalf("expected gig in every overlapped bucket")
			}
			if b.TotalIncome != 30000 {
				t.Errorf("gig amount must not be pro-rated, got %d", b.TotalIncome)
			}
			sum += b.TotalIncome
		}
		if sum <= 30000 {
			t.Errorf("per-bucket totals should exceed the gig amount when split, got %d", sum)
		}
	})

	t.Run("ten_day_gig_covers_three_weeks", func(t *testing.T) {
		start, end := window()
		gigs := []GigItem{{
			ID:     "g1",
			Amount: 1000,
			Start:  date(2024, time.January, 13), // Saturday
			End:    date(2024, time.January, 22), // Monday, two Sundays later
		}}

		buckets := Bucketize(nil, nil, gigs, start, end, date(2024, time.January, 13))
		if len(buckets) != 3 {
			t.Fatalf("expected 3 buckets, got %d", len(buckets))
		}
	})

	t.Run("current_week_materializes_even_empty", func(t *testing.T) {
		start, end := window()
		buckets := Bucketize(nil, nil, nil, start, end, date(2024, time.January, 17))
		if len(buckets) != 1 {
			t.Fatalf("expected only the current week, got %d buckets", len(buckets))
		}
		if !buckets[0].Start.Equal(date(2024, time.January, 14)) {
			t.Errorf("expected week of Jan 14, got %s", buckets[0].Start)
		}
		if buckets[0].TotalBills != 0 || buckets[0].TotalIncome != 0 {
			t.Error("empty current week should have zero totals")
		}
	})

	t.Run("empty_weeks_between_events_are_skipped", func(t *testing.T) {
		start, end := window()
		incomes := []IncomeItem{
			{ID: "p1", Amount: 100, Date: date(2024, time.January, 8)},
			{ID: "p2", Amount: 100, Date: date(2024, time.January, 29)},
		}
		buckets := Bucketize(nil, incomes, nil, start, end, date(2024, time.January, 8))
		if len(buckets) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(buckets))
		}
	})

	t.Run("events_outside_window_excluded", func(t *testing.T) {
		start, end := window()
		bills := []BillItem{{ID: "b1", Amount: 100, DueDate: date(2024, time.March, 1)}}
		buckets := Bucketize(bills, nil, nil, start, end, date(2024, time.March, 1))
		if len(buckets) != 0 {
			t.Fatalf("expected no buckets, got %d", len(buckets))
		}
	})

	t.Run("buckets_ordered_oldest_first", func(t *testing.T) {
		start, end := window()
		incomes := []IncomeItem{
			{ID: "p2", Amount: 100, Date: date(2024, time.February, 1)},
			{ID: "p1", Amount: 100, Date: date(2024, time.January, 8)},
		}
		buckets := Bucketize(nil, incomes, nil, start, end, date(2024, time.January, 8))
		for i := 1; i < len(buckets); i++ {
			if !buckets[i-1].Start.Before(buckets[i].Start) {
				t.Fatal("buckets should be ordered oldest first")
			}
		}
	})

	t.Run("events_sorted_within_bucket", func(t *testing.T) {
		start, end := window()
		bills := []BillItem{
			{ID: "b2", Amount: 100, DueDate: date(2024, time.January, 12)},
			{ID: "b1", Amount: 100, DueDate: date(2024, time.January, 9)},
		}
		buckets := Bucketize(bills, nil, nil, start, end, date(2024, time.January, 9))
		if len(buckets) != 1 || len(buckets[0].Bills) != 2 {
			t.Fatalf("expected one bucket with two bills")
		}
		if buckets[0].Bills[0].ID != "b1" {
			t.Error("bills within a bucket should be sorted ascending by due date")
		}
	})

	t.Run("inverted_gig_range_normalized", func(t *testing.T) {
		start, end := window()
		gigs := []GigItem{{ID: "g1", Amount: 100, Start: date(2024, time.January, 16), End: date(2024, time.January, 11)}}
		buckets := Bucketize(nil, nil, gigs, start, end, date(2024, time.January, 11))
		if len(buckets) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(buckets))
		}
	})
}
