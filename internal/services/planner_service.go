package services

import (
	"time"

	"gorm.io/gorm"

	"billow/internal/dates"
	apperrors "billow/internal/errors"
	"billow/internal/models"
	"billow/internal/recurrence"
	"billow/internal/schedule"
	"billow/internal/weekly"
)

// plannerService assembles the weekly financial projection. It loads a
// snapshot of the user's records and hands everything to the pure engine
// packages; it holds no state between calls, so overlapping invocations
// are independent and the caller simply adopts the most recent result.
type plannerService struct {
	db    *gorm.DB
	bills *billService
}

// NewPlannerService creates a new PlannerServicer.
func NewPlannerService(db *gorm.DB) PlannerServicer {
	return &plannerService{db: db, bills: &billService{db: db}}
}

// GetWeekPlan computes the week-bucketed projection for [from, to].
func (s *plannerService) GetWeekPlan(userID string, from, to, today time.Time) (*WeekPlan, error) {
	from = dates.Midnight(from)
	to = dates.Midnight(to)
	if to.Before(from) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must not be before from")
	}

	snapshot, err := s.loadSnapshot(userID, from, to)
	if err != nil {
		return nil, err
	}

	billItems, unscheduled, err := s.splitBills(snapshot.bills, today)
	if err != nil {
		return nil, err
	}

	incomes := incomeItems(snapshot.paychecks, snapshot.deposits)
	incomes = append(incomes, expandRecurring(snapshot.recurring, from, to)...)
	gigs := gigItems(snapshot.gigs)

	buckets := weekly.Bucketize(billItems, incomes, gigs, from, to, today)
	buckets = weekly.Project(buckets)

	return &WeekPlan{
		From:        from,
		To:          to,
		Weeks:       buckets,
		Unscheduled: unscheduled,
	}, nil
}

// GetUnscheduledBills returns the undated and deferred bills that weekly
// buckets exclude.
func (s *plannerService) GetUnscheduledBills(userID string, today time.Time) ([]BillSchedule, error) {
	var bills []models.Bill
	if err := s.db.Preload("Payments").Preload("Deferments").
		Where("user_id = ?", userID).Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	unscheduled := []BillSchedule{}
	for i := range bills {
		annotated, err := s.bills.buildSchedule(&bills[i], today)
		if err != nil {
			return nil, err
		}
		if annotated.Status == schedule.StatusDeferred || annotated.Status == schedule.StatusUndated {
			unscheduled = append(unscheduled, *annotated)
		}
	}
	return unscheduled, nil
}

// snapshot is the read-only record set one projection runs over.
type snapshot struct {
	bills     []models.Bill
	paychecks []models.Paycheck
	deposits  []models.Deposit
	gigs      []models.Gig
	recurring []models.RecurringIncome
}

// loadSnapshot fetches the user's records scoped to the window. Bills and
// recurring templates are loaded unscoped; their relevance to the window
// is decided by due-date resolution and expansion, not by a stored date.
func (s *plannerService) loadSnapshot(userID string, from, to time.Time) (*snapshot, error) {
	snap := &snapshot{}

	if err := s.db.Preload("Payments").Preload("Deferments").
		Where("user_id = ?", userID).Find(&snap.bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Find(&snap.paychecks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Find(&snap.deposits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, to, from).
		Find(&snap.gigs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&snap.recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return snap, nil
}

// splitBills annotates every bill and routes it either into the weekly
// buckets or the unscheduled collection. Deferred and undated bills never
// enter a week; everything else is scheduled on its resolved next due date
// at the period's remaining amount.
func (s *plannerService) splitBills(bills []models.Bill, today time.Time) ([]weekly.BillItem, []BillSchedule, error) {
	var items []weekly.BillItem
	unscheduled := []BillSchedule{}

	for i := range bills {
		annotated, err := s.bills.buildSchedule(&bills[i], today)
		if err != nil {
			return nil, nil, err
		}

		if annotated.Status == schedule.StatusDeferred || annotated.Status == schedule.StatusUndated || annotated.NextDue == nil {
			unscheduled = append(unscheduled, *annotated)
			continue
		}

		items = append(items, weekly.BillItem{
			ID:       bills[i].ID,
			Name:     bills[i].Name,
			Amount:   annotated.Period.Remaining(),
			DueDate:  *annotated.NextDue,
			Priority: string(bills[i].Priority),
			Status:   annotated.Status,
		})
	}
	return items, unscheduled, nil
}

// incomeItems converts stored paychecks and deposits into bucket events.
func incomeItems(paychecks []models.Paycheck, deposits []models.Deposit) []weekly.IncomeItem {
	items := make([]weekly.IncomeItem, 0, len(paychecks)+len(deposits))
	for i := range paychecks {
		p := &paychecks[i]
		items = append(items, weekly.IncomeItem{
			ID:     p.ID,
			Name:   p.Name,
			Kind:   string(models.IncomeKindPaycheck),
			Amount: p.Amount,
			Date:   p.Date,
		})
	}
	for i := range deposits {
		d := &deposits[i]
		items = append(items, weekly.IncomeItem{
			ID:     d.ID,
			Name:   d.Name,
			Kind:   string(models.IncomeKindDeposit),
			Amount: d.Amount,
			Date:   d.Date,
		})
	}
	return items
}

// expandRecurring materializes each template's virtual occurrences inside
// the window. Instances carry the template's ID and are flagged virtual;
// they exist only within this projection.
func expandRecurring(templates []models.RecurringIncome, from, to time.Time) []weekly.IncomeItem {
	var items []weekly.IncomeItem
	for i := range templates {
		tpl := &templates[i]
		for _, occurrence := range recurrence.Expand(tpl.Rule(), from, to) {
			items = append(items, weekly.IncomeItem{
				ID:      tpl.ID,
				Name:    tpl.Name,
				Kind:    string(tpl.Kind),
				Amount:  tpl.Amount,
				Date:    occurrence,
				Virtual: true,
			})
		}
	}
	return items
}

// gigItems converts stored gigs into bucket range events.
func gigItems(gigs []models.Gig) []weekly.GigItem {
	items := make([]weekly.GigItem, 0, len(gigs))
	for i := range gigs {
		g := &gigs[i]
		items = append(items, weekly.GigItem{
			ID:     g.ID,
			Name:   g.Name,
			Amount: g.Amount,
			Start:  g.StartDate,
			End:    g.EndDate,
		})
	}
	return items
}
