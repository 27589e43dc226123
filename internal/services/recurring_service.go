package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"billow/internal/dates"
	apperrors "billow/internal/errors"
	"billow/internal/models"
	"billow/internal/pagination"
	"billow/internal/recurrence"
)

// recurringService handles recurring income templates.
type recurringService struct {
	db *gorm.DB
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB) RecurringServicer {
	return &recurringService{db: db}
}

// validateRecurringInput enforces template invariants: a positive interval
// and at most one active monthly anchor.
func validateRecurringInput(input RecurringInput) error {
	if input.Interval < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "interval must be at least 1")
	}

	anchors := 0
	if input.DayOfMonth != nil {
		anchors++
	}
	if input.LastDayOfMonth {
		anchors++
	}
	if input.LastBusinessDayOfMonth {
		anchors++
	}
	if anchors > 1 {
		return apperrors.ErrConflictingAnchors
	}

	if input.DayOfMonth != nil && (*input.DayOfMonth < 1 || *input.DayOfMonth > 31) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "day_of_month must be between 1 and 31")
	}
	if input.DayOfWeek != nil && (*input.DayOfWeek < 0 || *input.DayOfWeek > 6) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "day_of_week must be between 0 and 6")
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return apperrors.ErrInvalidDateRange
	}
	return nil
}

// CreateRecurring creates a new recurring income template.
func (s *recurringService) CreateRecurring(userID string, input RecurringInput) (*models.RecurringIncome, error) {
	if err := validateRecurringInput(input); err != nil {
		return nil, err
	}

	recurring := &models.RecurringIncome{
		UserID:                 userID,
		Kind:                   input.Kind,
		Name:                   input.Name,
		Amount:                 input.Amount,
		StartDate:              dates.Midnight(input.StartDate),
		EndDate:                normalizeDatePtr(input.EndDate),
		Unit:                   input.Unit,
		Interval:               input.Interval,
		DayOfWeek:              input.DayOfWeek,
		DayOfMonth:             input.DayOfMonth,
		LastDayOfMonth:         input.LastDayOfMonth,
		LastBusinessDayOfMonth: input.LastBusinessDayOfMonth,
	}

	if err := s.db.Create(recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recurring, nil
}

// GetUserRecurring returns a paginated list of templates, optionally
// filtered by kind.
func (s *recurringService) GetUserRecurring(userID string, page pagination.PageRequest, kind *models.IncomeKind) (*pagination.PageResponse[models.RecurringIncome], error) {
	page.Defaults()

	base := s.db.Model(&models.RecurringIncome{}).Where("user_id = ?", userID)
	if kind != nil {
		base = base.Where("kind = ?", *kind)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var templates []models.RecurringIncome
	if err := base.Order("name asc").Scopes(pagination.Paginate(page)).Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(templates, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetRecurringByID returns a template by ID if it belongs to the user.
func (s *recurringService) GetRecurringByID(userID, recurringID string) (*models.RecurringIncome, error) {
	var recurring models.RecurringIncome
	if err := s.db.Where("id = ? AND user_id = ?", recurringID, userID).First(&recurring).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &recurring, nil
}

// UpdateRecurring replaces a template's definition. Future virtual
// instances follow the new definition immediately; nothing is persisted
// per occurrence.
func (s *recurringService) UpdateRecurring(userID, recurringID string, input RecurringInput) (*models.RecurringIncome, error) {
	recurring, err := s.GetRecurringByID(userID, recurringID)
	if err != nil {
		return nil, err
	}

	if err := validateRecurringInput(input); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"amount":                     input.Amount,
		"start_date":                 dates.Midnight(input.StartDate),
		"end_date":                   normalizeDatePtr(input.EndDate),
		"unit":                       input.Unit,
		"interval":                   input.Interval,
		"day_of_week":                input.DayOfWeek,
		"day_of_month":               input.DayOfMonth,
		"last_day_of_month":          input.LastDayOfMonth,
		"last_business_day_of_month": input.LastBusinessDayOfMonth,
	}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Kind != "" {
		updates["kind"] = input.Kind
	}

	if err := s.db.Model(recurring).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recurring, nil
}

// DeleteRecurring soft-deletes a template. Because occurrences are always
// computed on demand, deletion removes all future virtual instances with it.
func (s *recurringService) DeleteRecurring(userID, recurringID string) error {
	recurring, err := s.GetRecurringByID(userID, recurringID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(recurring).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Preview expands the template's occurrence dates over [from, to].
func (s *recurringService) Preview(userID, recurringID string, from, to time.Time) ([]time.Time, error) {
	recurring, err := s.GetRecurringByID(userID, recurringID)
	if err != nil {
		return nil, err
	}
	return recurrence.Expand(recurring.Rule(), from, to), nil
}
