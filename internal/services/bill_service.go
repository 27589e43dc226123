package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"billow/internal/dates"
	apperrors "billow/internal/errors"
	"billow/internal/models"
	"billow/internal/pagination"
	"billow/internal/schedule"
)

// billService handles bill-related business logic.
type billService struct {
	db *gorm.DB
}

// NewBillService creates a new BillServicer.
func NewBillService(db *gorm.DB) BillServicer {
	return &billService{db: db}
}

// validateBillInput enforces the bill shape invariants: due date and due
// day are mutually exclusive, and only variable bills may omit an amount.
func validateBillInput(input BillInput) error {
	if input.DueDate != nil && input.DueDay != nil {
		return apperrors.ErrAmbiguousDueSchedule
	}
	if input.DueDay != nil && (*input.DueDay < 1 || *input.DueDay > 31) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "due_day must be between 1 and 31")
	}
	if input.Amount == nil && !input.IsVariable {
		return apperrors.ErrMissingBillAmount
	}
	return nil
}

// CreateBill creates a new bill for the user.
func (s *billService) CreateBill(userID string, input BillInput) (*models.Bill, error) {
	if err := validateBillInput(input); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = models.BillPriorityMedium
	}

	bill := &models.Bill{
		UserID:     userID,
		Name:       input.Name,
		Amount:     input.Amount,
		DueDate:    normalizeDatePtr(input.DueDate),
		DueDay:     input.DueDay,
		Priority:   priority,
		IsVariable: input.IsVariable,
		Category:   input.Category,
		Notes:      input.Notes,
	}

	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// GetUserBills returns a paginated list of the user's bills with payments
// and deferments preloaded.
func (s *billService) GetUserBills(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Bill], error) {
	page.Defaults()

	base := s.db.Model(&models.Bill{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bills []models.Bill
	if err := base.Preload("Payments").Preload("Deferments").
		Order("name asc").
		Scopes(pagination.Paginate(page)).Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(bills, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBillByID returns a bill by ID if it belongs to the user.
func (s *billService) GetBillByID(userID, billID string) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.Preload("Payments").Preload("Deferments").
		Where("id = ? AND user_id = ?", billID, userID).First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bill, nil
}

// UpdateBill updates an existing bill's fields.
func (s *billService) UpdateBill(userID, billID string, input BillInput) (*models.Bill, error) {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return nil, err
	}

	if err := validateBillInput(input); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"amount":      input.Amount,
		"due_date":    normalizeDatePtr(input.DueDate),
		"due_day":     input.DueDay,
		"is_variable": input.IsVariable,
		"category":    input.Category,
		"notes":       input.Notes,
	}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Priority != "" {
		updates["priority"] = input.Priority
	}

	if err := s.db.Model(bill).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// DeleteBill soft-deletes a bill and removes its payments and deferments
// with it.
func (s *billService) DeleteBill(userID, billID string) error {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillPayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillDeferment{}).Error; err != nil {
			return err
		}
		return tx.Delete(bill).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SetDeferredFlag toggles the bill-level deferred flag, which excludes the
// bill from weekly buckets regardless of deferment records.
func (s *billService) SetDeferredFlag(userID, billID string, deferred bool) (*models.Bill, error) {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(bill).Update("deferred", deferred).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// RecordPayment adds a payment against the bill. Payments dated in the
// future may be recorded as scheduled (isPaid false); the scheduled date
// then becomes the bill's next due date.
func (s *billService) RecordPayment(userID, billID string, amount int64, paymentDate time.Time, isPaid bool) (*models.BillPayment, error) {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be positive")
	}

	day := dates.Midnight(paymentDate)
	payment := &models.BillPayment{
		BillID:       bill.ID,
		Amount:       amount,
		PaymentDate:  day,
		AppliedMonth: schedule.MonthKey(day),
		IsPaid:       isPaid,
	}

	if err := s.db.Create(payment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return payment, nil
}

// DeletePayment removes a payment record from the bill.
func (s *billService) DeletePayment(userID, billID, paymentID string) error {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return err
	}

	result := s.db.Where("id = ? AND bill_id = ?", paymentID, bill.ID).Delete(&models.BillPayment{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrPaymentNotFound
	}
	return nil
}

// DeferBill creates a deferment for the given month. A bill has at most
// one active deferment per month.
func (s *billService) DeferBill(userID, billID, monthYear string, decideBy, lossDate *time.Time, reason string) (*models.BillDeferment, error) {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.BillDeferment{}).
		Where("bill_id = ? AND month_year = ? AND is_active = ?", bill.ID, monthYear, true).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDefermentExists
	}

	deferment := &models.BillDeferment{
		BillID:       bill.ID,
		MonthYear:    monthYear,
		DecideByDate: normalizeDatePtr(decideBy),
		LossDate:     normalizeDatePtr(lossDate),
		Reason:       reason,
		IsActive:     true,
	}

	if err := s.db.Create(deferment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return deferment, nil
}

// ResolveDeferment deactivates a deferment, returning the bill to its
// normal weekly scheduling.
func (s *billService) ResolveDeferment(userID, billID, defermentID string) error {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return err
	}

	result := s.db.Model(&models.BillDeferment{}).
		Where("id = ? AND bill_id = ?", defermentID, bill.ID).
		Update("is_active", false)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrDefermentNotFound
	}
	return nil
}

// GetBillSchedule annotates a bill with its next due date, status, and the
// current period's totals. The period aggregation happens here, against
// storage; the schedule package only consumes the result.
func (s *billService) GetBillSchedule(userID, billID string, today time.Time) (*BillSchedule, error) {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return nil, err
	}
	return s.buildSchedule(bill, today)
}

// buildSchedule derives the scheduling annotation for an already-loaded
// bill. Payments and deferments must be preloaded.
func (s *billService) buildSchedule(bill *models.Bill, today time.Time) (*BillSchedule, error) {
	totals := currentPeriodTotals(bill, today)
	status := schedule.Classify(bill, bill.Payments, bill.Deferments, totals, today)
	nextDue := schedule.NextDueDate(bill, bill.Payments, today)

	return &BillSchedule{
		Bill:    *bill,
		NextDue: nextDue,
		Status:  status,
		Period:  totals,
	}, nil
}

// currentPeriodTotals aggregates the bill's amount and payments applied to
// today's billing month. Variable bills without a fixed amount contribute a
// zero total; their balance lives in statements, not here.
func currentPeriodTotals(bill *models.Bill, today time.Time) schedule.PeriodTotals {
	totals := schedule.PeriodTotals{}
	if bill.Amount != nil {
		totals.Total = *bill.Amount
	}

	month := schedule.MonthKey(today)
	for i := range bill.Payments {
		p := &bill.Payments[i]
		if p.IsPaid && p.AppliedMonth == month {
			totals.Paid += p.Amount
		}
	}
	return totals
}

// normalizeDatePtr truncates a nullable date to midnight UTC.
func normalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dates.Midnight(*t)
	return &d
}
