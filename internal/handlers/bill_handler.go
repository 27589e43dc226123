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

// BillHandler handles bill-related requests.
type BillHandler struct {
	billService  services.BillServicer
	auditService services.AuditServicer
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService services.BillServicer, auditService services.AuditServicer) *BillHandler {
	return &BillHandler{billService: billService, auditService: auditService}
}

// BillRequest represents the request payload for creating or updating a bill.
// A bill takes either a one-time due_date or a recurring due_day, never both.
type BillRequest struct {
	Name       string              `json:"name" binding:"required,min=1,max=100"`
	Amount     *int64              `json:"amount" binding:"omitempty,gt=0"`
	DueDate    *time.Time          `json:"due_date"`
	DueDay     *int                `json:"due_day" binding:"omitempty,min=1,max=31"`
	Priority   models.BillPriority `json:"priority" binding:"omitempty,bill_priority"`
	IsVariable bool                `json:"is_variable"`
	Category   string              `json:"category" binding:"max=100"`
	Notes      string              `json:"notes" binding:"max=500"`
}

// PaymentRequest represents the request payload for recording a payment.
type PaymentRequest struct {
	Amount      int64     `json:"amount" binding:"required,gt=0"`
	PaymentDate time.Time `json:"payment_date" binding:"required"`
	IsPaid      *bool     `json:"is_paid"`
}

// DefermentRequest represents the request payload for deferring a bill.
type DefermentRequest struct {
	MonthYear    string     `json:"month_year" binding:"required,month_year"`
	DecideByDate *time.Time `json:"decide_by_date"`
	LossDate     *time.Time `json:"loss_date"`
	Reason       string     `json:"reason" binding:"max=500"`
}

// DeferredFlagRequest represents the request payload for toggling the
// bill-level deferred flag.
type DeferredFlagRequest struct {
	Deferred *bool `json:"deferred" binding:"required"`
}

func billInputFromRequest(req BillRequest) services.BillInput {
	return services.BillInput{
		Name:       req.Name,
		Amount:     req.Amount,
		DueDate:    req.DueDate,
		DueDay:     req.DueDay,
		Priority:   req.Priority,
		IsVariable: req.IsVariable,
		Category:   req.Category,
		Notes:      req.Notes,
	}
}

// CreateBill handles the creation of a new bill.
// @Summary     Create a bill
// @Description Create a new bill with either a one-time due date or a recurring due day
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BillRequest true "Bill details"
// @Success     201 {object} models.Bill "Bill created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill, err := h.billService.CreateBill(userID, billInputFromRequest(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BILL", "bill", bill.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}

// GetBills handles listing bills for the authenticated user.
// @Summary     Get bills
// @Description Get a paginated list of bills for the authenticated user
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Bill] "Paginated bills"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills [get]
func (h *BillHandler) GetBills(c *gin.Context) {
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

	result, err := h.billService.GetUserBills(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBill handles retrieving a specific bill with its scheduling state.
// @Summary     Get bill by ID
// @Description Get a bill annotated with next due date, status, and period totals
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     200 {object} services.BillSchedule "Annotated bill"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [get]
func (h *BillHandler) GetBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	annotated, err := h.billService.GetBillSchedule(userID, billID, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, annotated)
}

// UpdateBill handles updating an existing bill.
// @Summary     Update a bill
// @Description Update an existing bill's details
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string      true "Bill ID"
// @Param       request body BillRequest true "Updated bill details"
// @Success     200 {object} models.Bill "Bill updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [put]
func (h *BillHandler) UpdateBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill, err := h.billService.UpdateBill(userID, billID, billInputFromRequest(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BILL", "bill", bill.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// DeleteBill handles deleting a bill.
// @Summary     Delete a bill
// @Description Delete a bill along with its payments and deferments
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     200 {object} map[string]string "Bill deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.DeleteBill(userID, billID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BILL", "bill", billID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}

// SetDeferredFlag handles toggling the bill-level deferred flag.
// @Summary     Set deferred flag
// @Description Toggle the flag that excludes a bill from weekly planning
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Bill ID"
// @Param       request body DeferredFlagRequest true "Deferred flag"
// @Success     200 {object} models.Bill "Bill updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/deferred [put]
func (h *BillHandler) SetDeferredFlag(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DeferredFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill, err := h.billService.SetDeferredFlag(userID, billID, *req.Deferred)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// RecordPayment handles recording a payment against a bill.
// @Summary     Record a payment
// @Description Record a paid or scheduled payment against a bill
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Bill ID"
// @Param       request body PaymentRequest true "Payment details"
// @Success     201 {object} models.BillPayment "Payment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/payments [post]
func (h *BillHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// Payments default to paid; scheduled future payments pass is_paid false.
	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	payment, err := h.billService.RecordPayment(userID, billID, req.Amount, req.PaymentDate, isPaid)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_PAYMENT", "bill_payment", payment.ID, c.ClientIP(),
		map[string]interface{}{"bill_id": billID, "amount": req.Amount, "is_paid": isPaid})

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// DeletePayment handles removing a payment record.
// @Summary     Delete a payment
// @Description Remove a payment record from a bill
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id         path string true "Bill ID"
// @Param       payment_id path string true "Payment ID"
// @Success     200 {object} map[string]string "Payment deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/payments/{payment_id} [delete]
func (h *BillHandler) DeletePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	paymentID, err := parsePathID(c, "payment_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.DeletePayment(userID, billID, paymentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PAYMENT", "bill_payment", paymentID, c.ClientIP(),
		map[string]interface{}{"bill_id": billID})

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}

// DeferBill handles creating a deferment for a month.
// @Summary     Defer a bill
// @Description Defer a bill for a given month, excluding it from that month's planning
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Bill ID"
// @Param       request body DefermentRequest true "Deferment details"
// @Success     201 {object} models.BillDeferment "Deferment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     409 {object} ErrorResponse "Active deferment already exists for the month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/deferments [post]
func (h *BillHandler) DeferBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DefermentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deferment, err := h.billService.DeferBill(userID, billID, req.MonthYear, req.DecideByDate, req.LossDate, req.Reason)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DEFER_BILL", "bill_deferment", deferment.ID, c.ClientIP(),
		map[string]interface{}{"bill_id": billID, "month_year": req.MonthYear})

	c.JSON(http.StatusCreated, gin.H{"deferment": deferment})
}

// ResolveDeferment handles deactivating a deferment.
// @Summary     Resolve a deferment
// @Description Deactivate a deferment, returning the bill to normal scheduling
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id           path string true "Bill ID"
// @Param       deferment_id path string true "Deferment ID"
// @Success     200 {object} map[string]string "Deferment resolved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Deferment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/deferments/{deferment_id} [delete]
func (h *BillHandler) ResolveDeferment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	defermentID, err := parsePathID(c, "deferment_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.ResolveDeferment(userID, billID, defermentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RESOLVE_DEFERMENT", "bill_deferment", defermentID, c.ClientIP(),
		map[string]interface{}{"bill_id": billID})

	c.JSON(http.StatusOK, gin.H{"message": "Deferment resolved successfully"})
}
