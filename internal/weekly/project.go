package weekly

// Project walks the buckets oldest-first, carrying unspent balance into
// each following week. It is an explicit left fold: the accumulator is the
// running balance, and a week's shortfall clamps to zero rather than
// propagating as negative debt. The input slice is returned annotated in
// place.
func Project(buckets []WeekBucket) []WeekBucket {
	var running int64
	for i := range buckets {
		b := &buckets[i]
		b.Carryover = running
		b.TotalAvailable = b.TotalIncome + b.Carryover
		b.Remainder = b.TotalAvailable - b.TotalBills
		b.Progress = ProgressPercent(b.TotalAvailable, b.TotalBills)

		running = b.Remainder
		if running < 0 {
			running = 0
		}
	}
	return buckets
}

// ProgressPercent returns how much of the week's bills the available funds
// cover, capped at 100. A week without bills reports 0, never NaN. Display
// only: it has no effect on carryover.
func ProgressPercent(available, bills int64) float64 {
	if bills <= 0 {
		return 0
	}
	pct := float64(available) / float64(bills) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
