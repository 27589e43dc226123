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

// IncomeHandler handles paycheck, deposit, and gig requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// CreateIncomeRequest represents the request payload for creating a paycheck
// or deposit.
type CreateIncomeRequest struct {
	Name   string    `json:"name" binding:"required,min=1,max=100"`
	Amount int64     `json:"amount" binding:"required,gt=0"`
	Date   time.Time `json:"date" binding:"required"`
	Notes  string    `json:"notes" binding:"max=500"`
}

// UpdateIncomeRequest represents the request payload for updating a paycheck
// or deposit.
type UpdateIncomeRequest struct {
	Name   string     `json:"name" binding:"omitempty,min=1,max=100"`
	Amount *int64     `json:"amount" binding:"omitempty,gt=0"`
	Date   *time.Time `json:"date"`
	Notes  *string    `json:"notes" binding:"omitempty,max=500"`
}

// CreateGigRequest represents the request payload for creating a gig.
type CreateGigRequest struct {
	Name      string    `json:"name" binding:"required,min=1,max=100"`
	Amount    int64     `json:"amount" binding:"required,gt=0"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	Notes     string    `json:"notes" binding:"max=500"`
}

// UpdateGigRequest represents the request payload for updating a gig.
type UpdateGigRequest struct {
	Name      string     `json:"name" binding:"omitempty,min=1,max=100"`
	Amount    *int64     `json:"amount" binding:"omitempty,gt=0"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Notes     *string    `json:"notes" binding:"omitempty,max=500"`
}

// LinkGigRequest represents the request payload for linking an income to a gig.
type LinkGigRequest struct {
	Kind     models.IncomeKind `json:"kind" binding:"required,income_kind"`
	IncomeID string            `json:"income_id" binding:"required,uuid"`
	GigID    string            `json:"gig_id" binding:"required,uuid"`
}

// UnlinkGigRequest represents the request payload for unlinking an income.
type UnlinkGigRequest struct {
	Kind     models.IncomeKind `json:"kind" binding:"required,income_kind"`
	IncomeID string            `json:"income_id" binding:"required,uuid"`
}

// CreatePaycheck handles recording a new paycheck.
// @Summary     Create a paycheck
// @Description Record a paycheck received on a single date
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeRequest true "Paycheck details"
// @Success     201 {object} models.Paycheck "Paycheck created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /paychecks [post]
func (h *IncomeHandler) CreatePaycheck(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	paycheck, err := h.incomeService.CreatePaycheck(userID, req.Name, req.Amount, req.Date, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PAYCHECK", "paycheck", paycheck.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"paycheck": paycheck})
}

// GetPaychecks handles listing paychecks for the authenticated user.
// @Summary     Get paychecks
// @Description Get a paginated list of paychecks, newest first
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Paycheck] "Paginated paychecks"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /paychecks [get]
func (h *IncomeHandler) GetPaychecks(c *gin.Context) {
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

	result, err := h.incomeService.GetUserPaychecks(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdatePaycheck handles updating an existing paycheck.
// @Summary     Update a paycheck
// @Description Update an existing paycheck's details
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Paycheck ID"
// @Param       request body UpdateIncomeRequest true "Updated paycheck details"
// @Success     200 {object} models.Paycheck "Paycheck updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Paycheck not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /paychecks/{id} [put]
func (h *IncomeHandler) UpdatePaycheck(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paycheckID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	paycheck, err := h.incomeService.UpdatePaycheck(userID, paycheckID, req.Name, req.Amount, req.Date, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paycheck": paycheck})
}

// DeletePaycheck handles deleting a paycheck.
// @Summary     Delete a paycheck
// @Description Delete a paycheck record
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Paycheck ID"
// @Success     200 {object} map[string]string "Paycheck deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Paycheck not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /paychecks/{id} [delete]
func (h *IncomeHandler) DeletePaycheck(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paycheckID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeletePaycheck(userID, paycheckID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PAYCHECK", "paycheck", paycheckID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Paycheck deleted successfully"})
}

// CreateDeposit handles recording a new deposit.
// @Summary     Create a deposit
// @Description Record a deposit received on a single date
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeRequest true "Deposit details"
// @Success     201 {object} models.Deposit "Deposit created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deposits [post]
func (h *IncomeHandler) CreateDeposit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deposit, err := h.incomeService.CreateDeposit(userID, req.Name, req.Amount, req.Date, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_DEPOSIT", "deposit", deposit.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"deposit": deposit})
}

// GetDeposits handles listing deposits for the authenticated user.
// @Summary     Get deposits
// @Description Get a paginated list of deposits, newest first
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Deposit] "Paginated deposits"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deposits [get]
func (h *IncomeHandler) GetDeposits(c *gin.Context) {
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

	result, err := h.incomeService.GetUserDeposits(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateDeposit handles updating an existing deposit.
// @Summary     Update a deposit
// @Description Update an existing deposit's details
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Deposit ID"
// @Param       request body UpdateIncomeRequest true "Updated deposit details"
// @Success     200 {object} models.Deposit "Deposit updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Deposit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deposits/{id} [put]
func (h *IncomeHandler) UpdateDeposit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	depositID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deposit, err := h.incomeService.UpdateDeposit(userID, depositID, req.Name, req.Amount, req.Date, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deposit": deposit})
}

// DeleteDeposit handles deleting a deposit.
// @Summary     Delete a deposit
// @Description Delete a deposit record
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Deposit ID"
// @Success     200 {object} map[string]string "Deposit deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Deposit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deposits/{id} [delete]
func (h *IncomeHandler) DeleteDeposit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	depositID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteDeposit(userID, depositID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_DEPOSIT", "deposit", depositID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Deposit deleted successfully"})
}

// CreateGig handles recording a new gig.
// @Summary     Create a gig
// @Description Record a gig spanning a date range
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGigRequest true "Gig details"
// @Success     201 {object} models.Gig "Gig created"
// @Failure     400 {object} ErrorResponse "Invalid input or inverted date range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gigs [post]
func (h *IncomeHandler) CreateGig(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	gig, err := h.incomeService.CreateGig(userID, req.Name, req.Amount, req.StartDate, req.EndDate, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GIG", "gig", gig.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"gig": gig})
}

// GetGigs handles listing gigs for the authenticated user.
// @Summary     Get gigs
// @Description Get a paginated list of gigs with their linked incomes
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Gig] "Paginated gigs"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gigs [get]
func (h *IncomeHandler) GetGigs(c *gin.Context) {
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

	result, err := h.incomeService.GetUserGigs(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGig handles retrieving a specific gig.
// @Summary     Get gig by ID
// @Description Get a gig with its linked paychecks and deposits
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Gig ID"
// @Success     200 {object} models.Gig "Gig"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Gig not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gigs/{id} [get]
func (h *IncomeHandler) GetGig(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	gigID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	gig, err := h.incomeService.GetGigByID(userID, gigID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gig": gig})
}

// UpdateGig handles updating an existing gig.
// @Summary     Update a gig
// @Description Update an existing gig's details
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Gig ID"
// @Param       request body UpdateGigRequest true "Updated gig details"
// @Success     200 {object} models.Gig "Gig updated"
// @Failure     400 {object} ErrorResponse "Invalid input or inverted date range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Gig not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gigs/{id} [put]
func (h *IncomeHandler) UpdateGig(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	gigID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	gig, err := h.incomeService.UpdateGig(userID, gigID, req.Name, req.Amount, req.StartDate, req.EndDate, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gig": gig})
}

// DeleteGig handles deleting a gig.
// @Summary     Delete a gig
// @Description Delete a gig, detaching any linked paychecks and deposits
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Gig ID"
// @Success     200 {object} map[string]string "Gig deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Gig not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gigs/{id} [delete]
func (h *IncomeHandler) DeleteGig(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	gigID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteGig(userID, gigID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GIG", "gig", gigID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Gig deleted successfully"})
}

// LinkIncome handles attaching a paycheck or deposit to a gig.
// @Summary     Link income to a gig
// @Description Attach a paycheck or deposit to a gig for tracking purposes
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body LinkGigRequest true "Link details"
// @Success     200 {object} map[string]string "Income linked"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Gig or income not found"
// @Failure     409 {object} ErrorResponse "Income already linked"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gigs/link [post]
func (h *IncomeHandler) LinkIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LinkGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.incomeService.LinkIncomeToGig(userID, req.Kind, req.IncomeID, req.GigID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "LINK_INCOME", string(req.Kind), req.IncomeID, c.ClientIP(),
		map[string]interface{}{"gig_id": req.GigID})

	c.JSON(http.StatusOK, gin.H{"message": "Income linked successfully"})
}

// UnlinkIncome handles detaching a paycheck or deposit from its gig.
// @Summary     Unlink income from a gig
// @Description Detach a paycheck or deposit from the gig it is linked to
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UnlinkGigRequest true "Unlink details"
// @Success     200 {object} map[string]string "Income unlinked"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gigs/unlink [post]
func (h *IncomeHandler) UnlinkIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UnlinkGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.incomeService.UnlinkIncomeFromGig(userID, req.Kind, req.IncomeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UNLINK_INCOME", string(req.Kind), req.IncomeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Income unlinked successfully"})
}
