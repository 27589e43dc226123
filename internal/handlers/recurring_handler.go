package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "billow/internal/errors"
	"billow/internal/models"
	"billow/internal/pagination"
	"billow/internal/services"
)

// RecurringHandler handles recurring income template requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
	auditService     services.AuditServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer, auditService services.AuditServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService, auditService: auditService}
}

// RecurringRequest represents the request payload for creating or updating a
// recurring income template. Monthly templates take at most one anchor:
// day_of_month, last_day_of_month, or last_business_day_of_month.
type RecurringRequest struct {
	Kind                   models.IncomeKind     `json:"kind" binding:"required,income_kind"`
	Name                   string                `json:"name" binding:"required,min=1,max=100"`
	Amount                 int64                 `json:"amount" binding:"required,gt=0"`
	StartDate              time.Time             `json:"start_date" binding:"required"`
	EndDate                *time.Time            `json:"end_date"`
	Unit                   models.RecurrenceUnit `json:"unit" binding:"required,recurrence_unit"`
	Interval               int                   `json:"interval" binding:"required,min=1"`
	DayOfWeek              *int                  `json:"day_of_week" binding:"omitempty,weekday"`
	DayOfMonth             *int                  `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	LastDayOfMonth         bool                  `json:"last_day_of_month"`
	LastBusinessDayOfMonth bool                  `json:"last_business_day_of_month"`
}

// PreviewResponse represents the expanded occurrence dates of a template.
type PreviewResponse struct {
	Dates []time.Time `json:"dates"`
}

func recurringInputFromRequest(req RecurringRequest) services.RecurringInput {
	return services.RecurringInput{
		Kind:                   req.Kind,
		Name:                   req.Name,
		Amount:                 req.Amount,
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		Unit:                   req.Unit,
		Interval:               req.Interval,
		DayOfWeek:              req.DayOfWeek,
		DayOfMonth:             req.DayOfMonth,
		LastDayOfMonth:         req.LastDayOfMonth,
		LastBusinessDayOfMonth: req.LastBusinessDayOfMonth,
	}
}

// parseDateRange reads required from/to query parameters as YYYY-MM-DD dates.
func parseDateRange(c *gin.Context) (from, to time.Time, err error) {
	const layout = "2006-01-02"

	from, err = time.Parse(layout, c.Query("from"))
	if err != nil {
		return from, to, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must be a YYYY-MM-DD date")
	}
	to, err = time.Parse(layout, c.Query("to"))
	if err != nil {
		return from, to, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must be a YYYY-MM-DD date")
	}
	return from, to, nil
}

// CreateRecurring handles the creation of a new recurring income template.
// @Summary     Create a recurring income
// @Description Create a recurring paycheck or deposit template
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecurringRequest true "Template details"
// @Success     201 {object} models.RecurringIncome "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input or conflicting anchors"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring [post]
func (h *RecurringHandler) CreateRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recurring, err := h.recurringService.CreateRecurring(userID, recurringInputFromRequest(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_RECURRING", "recurring_income", recurring.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "kind": req.Kind, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"recurring": recurring})
}

// GetRecurring handles listing templates for the authenticated user.
// @Summary     Get recurring incomes
// @Description Get a paginated list of recurring income templates
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       kind      query string false "Filter by kind (paycheck/deposit)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.RecurringIncome] "Paginated templates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring [get]
func (h *RecurringHandler) GetRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var kind *models.IncomeKind
	if v := c.Query("kind"); v != "" {
		k := models.IncomeKind(v)
		if k != models.IncomeKindPaycheck && k != models.IncomeKindDeposit {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be 'paycheck' or 'deposit'"))
			return
		}
		kind = &k
	}

	result, err := h.recurringService.GetUserRecurring(userID, page, kind)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateRecurring handles updating an existing template.
// @Summary     Update a recurring income
// @Description Replace a template's definition; future occurrences follow the new definition
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Template ID"
// @Param       request body RecurringRequest true "Updated template details"
// @Success     200 {object} models.RecurringIncome "Template updated"
// @Failure     400 {object} ErrorResponse "Invalid input or conflicting anchors"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/{id} [put]
func (h *RecurringHandler) UpdateRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recurring, err := h.recurringService.UpdateRecurring(userID, recurringID, recurringInputFromRequest(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring": recurring})
}

// DeleteRecurring handles deleting a template.
// @Summary     Delete a recurring income
// @Description Delete a template and all of its future virtual occurrences
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Template ID"
// @Success     200 {object} map[string]string "Template deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/{id} [delete]
func (h *RecurringHandler) DeleteRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteRecurring(userID, recurringID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_RECURRING", "recurring_income", recurringID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Recurring income deleted successfully"})
}

// PreviewRecurring handles expanding a template's occurrences over a window.
// @Summary     Preview occurrences
// @Description Expand a template's occurrence dates over a date window
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path  string true "Template ID"
// @Param       from query string true "Window start (YYYY-MM-DD)"
// @Param       to   query string true "Window end (YYYY-MM-DD)"
// @Success     200 {object} PreviewResponse "Occurrence dates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/{id}/preview [get]
func (h *RecurringHandler) PreviewRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	occurrences, err := h.recurringService.Preview(userID, recurringID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if occurrences == nil {
		occurrences = []time.Time{}
	}
	c.JSON(http.StatusOK, gin.H{"dates": occurrences})
}
