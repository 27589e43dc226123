package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"billow/internal/dates"
	apperrors "billow/internal/errors"
	"billow/internal/models"
	"billow/internal/pagination"
)

// incomeService handles paychecks, deposits, and gigs.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreatePaycheck records a paycheck on a single date.
func (s *incomeService) CreatePaycheck(userID, name string, amount int64, date time.Time, notes string) (*models.Paycheck, error) {
	paycheck := &models.Paycheck{
		UserID: userID,
		Name:   name,
		Amount: amount,
		Date:   dates.Midnight(date),
		Notes:  notes,
	}
	if err := s.db.Create(paycheck).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return paycheck, nil
}

// GetUserPaychecks returns a paginated list of the user's paychecks.
func (s *incomeService) GetUserPaychecks(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Paycheck], error) {
	page.Defaults()

	base := s.db.Model(&models.Paycheck{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var paychecks []models.Paycheck
	if err := base.Order("date desc").Scopes(pagination.Paginate(page)).Find(&paychecks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(paychecks, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdatePaycheck updates an existing paycheck's fields.
func (s *incomeService) UpdatePaycheck(userID, paycheckID, name string, amount *int64, date *time.Time, notes *string) (*models.Paycheck, error) {
	var paycheck models.Paycheck
	if err := s.db.Where("id = ? AND user_id = ?", paycheckID, userID).First(&paycheck).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaycheckNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if amount != nil {
		updates["amount"] = *amount
	}
	if date != nil {
		updates["date"] = dates.Midnight(*date)
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(&paycheck).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &paycheck, nil
}

// DeletePaycheck soft-deletes a paycheck.
func (s *incomeService) DeletePaycheck(userID, paycheckID string) error {
	result := s.db.Where("id = ? AND user_id = ?", paycheckID, userID).Delete(&models.Paycheck{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrPaycheckNotFound
	}
	return nil
}

// CreateDeposit records a deposit on a single date.
func (s *incomeService) CreateDeposit(userID, name string, amount int64, date time.Time, notes string) (*models.Deposit, error) {
	deposit := &models.Deposit{
		UserID: userID,
		Name:   name,
		Amount: amount,
		Date:   dates.Midnight(date),
		Notes:  notes,
	}
	if err := s.db.Create(deposit).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return deposit, nil
}

// GetUserDeposits returns a paginated list of the user's deposits.
func (s *incomeService) GetUserDeposits(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Deposit], error) {
	page.Defaults()

	base := s.db.Model(&models.Deposit{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var deposits []models.Deposit
	if err := base.Order("date desc").Scopes(pagination.Paginate(page)).Find(&deposits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(deposits, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateDeposit updates an existing deposit's fields.
func (s *incomeService) UpdateDeposit(userID, depositID, name string, amount *int64, date *time.Time, notes *string) (*models.Deposit, error) {
	var deposit models.Deposit
	if err := s.db.Where("id = ? AND user_id = ?", depositID, userID).First(&deposit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepositNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if amount != nil {
		updates["amount"] = *amount
	}
	if date != nil {
		updates["date"] = dates.Midnight(*date)
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(&deposit).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &deposit, nil
}

// DeleteDeposit soft-deletes a deposit.
func (s *incomeService) DeleteDeposit(userID, depositID string) error {
	result := s.db.Where("id = ? AND user_id = ?", depositID, userID).Delete(&models.Deposit{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrDepositNotFound
	}
	return nil
}

// CreateGig records a gig spanning a date range.
func (s *incomeService) CreateGig(userID, name string, amount int64, startDate, endDate time.Time, notes string) (*models.Gig, error) {
	start := dates.Midnight(startDate)
	end := dates.Midnight(endDate)
	if end.Before(start) {
		return nil, apperrors.ErrInvalidDateRange
	}

	gig := &models.Gig{
		UserID:    userID,
		Name:      name,
		Amount:    amount,
		StartDate: start,
		EndDate:   end,
		Notes:     notes,
	}
	if err := s.db.Create(gig).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return gig, nil
}

// GetUserGigs returns a paginated list of the user's gigs.
func (s *incomeService) GetUserGigs(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Gig], error) {
	page.Defaults()

	base := s.db.Model(&models.Gig{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var gigs []models.Gig
	if err := base.Preload("Paychecks").Preload("Deposits").
		Order("start_date desc").
		Scopes(pagination.Paginate(page)).Find(&gigs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(gigs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGigByID returns a gig by ID if it belongs to the user.
func (s *incomeService) GetGigByID(userID, gigID string) (*models.Gig, error) {
	var gig models.Gig
	if err := s.db.Preload("Paychecks").Preload("Deposits").
		Where("id = ? AND user_id = ?", gigID, userID).First(&gig).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGigNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &gig, nil
}

// UpdateGig updates an existing gig's fields.
func (s *incomeService) UpdateGig(userID, gigID, name string, amount *int64, startDate, endDate *time.Time, notes *string) (*models.Gig, error) {
	gig, err := s.GetGigByID(userID, gigID)
	if err != nil {
		return nil, err
	}

	start := gig.StartDate
	end := gig.EndDate
	if startDate != nil {
		start = dates.Midnight(*startDate)
	}
	if endDate != nil {
		end = dates.Midnight(*endDate)
	}
	if end.Before(start) {
		return nil, apperrors.ErrInvalidDateRange
	}

	updates := map[string]interface{}{
		"start_date": start,
		"end_date":   end,
	}
	if name != "" {
		updates["name"] = name
	}
	if amount != nil {
		updates["amount"] = *amount
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	if err := s.db.Model(gig).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return gig, nil
}

// DeleteGig soft-deletes a gig and detaches any linked incomes.
func (s *incomeService) DeleteGig(userID, gigID string) error {
	gig, err := s.GetGigByID(userID, gigID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Paycheck{}).Where("gig_id = ?", gig.ID).
			Update("gig_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Deposit{}).Where("gig_id = ?", gig.ID).
			Update("gig_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(gig).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// LinkIncomeToGig attaches a paycheck or deposit to a gig. An income links
// to at most one gig.
func (s *incomeService) LinkIncomeToGig(userID string, kind models.IncomeKind, incomeID, gigID string) error {
	gig, err := s.GetGigByID(userID, gigID)
	if err != nil {
		return err
	}

	switch kind {
	case models.IncomeKindPaycheck:
		var paycheck models.Paycheck
		if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).First(&paycheck).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPaycheckNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if paycheck.GigID != nil {
			return apperrors.ErrAlreadyLinked
		}
		if err := s.db.Model(&paycheck).Update("gig_id", gig.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case models.IncomeKindDeposit:
		var deposit models.Deposit
		if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).First(&deposit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrDepositNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if deposit.GigID != nil {
			return apperrors.ErrAlreadyLinked
		}
		if err := s.db.Model(&deposit).Update("gig_id", gig.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported income kind")
	}
	return nil
}

// UnlinkIncomeFromGig detaches a paycheck or deposit from its gig.
func (s *incomeService) UnlinkIncomeFromGig(userID string, kind models.IncomeKind, incomeID string) error {
	switch kind {
	case models.IncomeKindPaycheck:
		result := s.db.Model(&models.Paycheck{}).
			Where("id = ? AND user_id = ?", incomeID, userID).
			Update("gig_id", nil)
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrPaycheckNotFound
		}
	case models.IncomeKindDeposit:
		result := s.db.Model(&models.Deposit{}).
			Where("id = ? AND user_id = ?", incomeID, userID).
			Update("gig_id", nil)
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrDepositNotFound
		}
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported income kind")
	}
	return nil
}
