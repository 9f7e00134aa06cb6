// Package errors provides custom error types for the ledger API.
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

// Is reports whether target is an AppError carrying the same code, so that
// errors.Is works against the sentinels even after Wrap or WithMessage.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

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
	ErrInvalidAPIKey      = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Too many failed login attempts, try again later", StatusCode: http.StatusTooManyRequests}
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

// Application errors.
var (
	ErrApplicationNotFound = &AppError{Code: "APPLICATION_NOT_FOUND", Message: "Application not found", StatusCode: http.StatusNotFound}
)

// Ledger errors.
var (
	ErrLedgerEntryNotFound       = &AppError{Code: "LEDGER_ENTRY_NOT_FOUND", Message: "Ledger entry not found", StatusCode: http.StatusNotFound}
	ErrInvalidEntryType          = &AppError{Code: "INVALID_ENTRY_TYPE", Message: "Entry type must be income or expense", StatusCode: http.StatusBadRequest}
	ErrInvalidCategory           = &AppError{Code: "INVALID_CATEGORY", Message: "Category does not match the entry type", StatusCode: http.StatusBadRequest}
	ErrLedgerEntryNotEditable    = &AppError{Code: "LEDGER_ENTRY_NOT_EDITABLE", Message: "This ledger entry can no longer be edited", StatusCode: http.StatusConflict}
	ErrInvalidStatusTransition   = &AppError{Code: "INVALID_STATUS_TRANSITION", Message: "Only pending entries can change status", StatusCode: http.StatusConflict}
	ErrDuplicateVerificationCode = &AppError{Code: "DUPLICATE_VERIFICATION_CODE", Message: "Verification code already in use", StatusCode: http.StatusConflict}
	ErrVerificationCodeExhausted = &AppError{Code: "VERIFICATION_CODE_EXHAUSTED", Message: "Could not allocate a unique verification code", StatusCode: http.StatusInternalServerError}
)

// Payment webhook errors.
var (
	ErrInvalidWebhookPayload     = &AppError{Code: "INVALID_WEBHOOK_PAYLOAD", Message: "Webhook payload is missing required fields", StatusCode: http.StatusBadRequest}
	ErrVerificationCodeNotFound  = &AppError{Code: "VERIFICATION_CODE_NOT_FOUND", Message: "No verification code found in transfer content", StatusCode: http.StatusBadRequest}
	ErrPendingPaymentNotFound    = &AppError{Code: "PENDING_PAYMENT_NOT_FOUND", Message: "No pending payment matches this verification code", StatusCode: http.StatusNotFound}
	ErrAmountMismatch            = &AppError{Code: "AMOUNT_MISMATCH", Message: "Transferred amount does not match the payment request", StatusCode: http.StatusBadRequest}
	ErrDuplicateExternalTransfer = &AppError{Code: "DUPLICATE_EXTERNAL_TRANSACTION", Message: "This bank transaction was already applied to another entry", StatusCode: http.StatusConflict}
)
