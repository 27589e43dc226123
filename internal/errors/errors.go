// Package errors provides custom error types for the Billow API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Bill errors.
var (
	ErrBillNotFound         = &AppError{Code: "BILL_NOT_FOUND", Message: "Bill not found", StatusCode: http.StatusNotFound}
	ErrPaymentNotFound      = &AppError{Code: "PAYMENT_NOT_FOUND", Message: "Payment not found", StatusCode: http.StatusNotFound}
	ErrDefermentNotFound    = &AppError{Code: "DEFERMENT_NOT_FOUND", Message: "Deferment not found", StatusCode: http.StatusNotFound}
	ErrDefermentExists      = &AppError{Code: "DEFERMENT_EXISTS", Message: "Bill already has an active deferment for this month", StatusCode: http.StatusConflict}
	ErrAmbiguousDueSchedule = &AppError{Code: "AMBIGUOUS_DUE_SCHEDULE", Message: "A bill takes either a one-time due date or a recurring due day, not both", StatusCode: http.StatusBadRequest}
	ErrMissingBillAmount    = &AppError{Code: "MISSING_BILL_AMOUNT", Message: "Amount is required unless the bill is variable", StatusCode: http.StatusBadRequest}
)

// Income errors.
var (
	ErrPaycheckNotFound = &AppError{Code: "PAYCHECK_NOT_FOUND", Message: "Paycheck not found", StatusCode: http.StatusNotFound}
	ErrDepositNotFound  = &AppError{Code: "DEPOSIT_NOT_FOUND", Message: "Deposit not found", StatusCode: http.StatusNotFound}
	ErrGigNotFound      = &AppError{Code: "GIG_NOT_FOUND", Message: "Gig not found", StatusCode: http.StatusNotFound}
	ErrAlreadyLinked    = &AppError{Code: "ALREADY_LINKED", Message: "Income is already linked to a gig", StatusCode: http.StatusConflict}
	ErrInvalidDateRange = &AppError{Code: "INVALID_DATE_RANGE", Message: "End date must not be before start date", StatusCode: http.StatusBadRequest}
)

// Recurring template errors.
var (
	ErrRecurringNotFound  = &AppError{Code: "RECURRING_NOT_FOUND", Message: "Recurring income not found", StatusCode: http.StatusNotFound}
	ErrConflictingAnchors = &AppError{Code: "CONFLICTING_ANCHORS", Message: "A monthly rule takes at most one of day_of_month, last_day_of_month, or last_business_day_of_month", StatusCode: http.StatusBadRequest}
)
