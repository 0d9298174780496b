package appErrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine-readable error kind.
type ErrorCode string

// AppError is the application error carried from services up to handlers.
// The wrapped Err is for logs only and is never rendered to clients.
type AppError struct {
	Code     ErrorCode
	Message  string
	Details  interface{}
	Err      error
	HTTPCode int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy carrying details, so predefined errors
// are never mutated.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// Is wraps errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors.
var (
	// Tokens and sessions
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid credentials", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Access denied. No token provided.", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusForbidden)
	ErrTokenLoggedOut     = New(CodeTokenLoggedOut, "Token has been logged out", http.StatusForbidden)

	// OTP slot
	ErrNoPendingOtp = New(CodeNoPendingOtp, "No OTP requested for this account", http.StatusBadRequest)
	ErrOtpExpired   = New(CodeOtpExpired, "OTP has expired", http.StatusBadRequest)
	ErrOtpMismatch  = New(CodeOtpMismatch, "Invalid OTP", http.StatusBadRequest)

	// Two-factor slot (separate messages, same taxonomy)
	ErrNoTwoFactorCode   = New(CodeNoPendingOtp, "No verification code found. Please request a new code.", http.StatusBadRequest)
	ErrTwoFactorExpired  = New(CodeOtpExpired, "Verification code has expired. Please request a new code.", http.StatusBadRequest)
	ErrTwoFactorMismatch = New(CodeOtpMismatch, "Invalid verification code.", http.StatusBadRequest)

	// Accounts
	ErrVendorNotFound      = New(CodeAccountNotFound, "Vendor account not found.", http.StatusNotFound)
	ErrUserNotFound        = New(CodeAccountNotFound, "User not found", http.StatusNotFound)
	ErrAccountSuspended    = New(CodeAccountSuspended, "Your account is suspended. Please contact support.", http.StatusForbidden)
	ErrAmbiguousIdentifier = New(CodeAmbiguousIdentifier, "Identifier matches more than one account", http.StatusInternalServerError)
	ErrWeakPassword        = New(CodeWeakPassword, "Your Password must be at least 8 characters long.", http.StatusBadRequest)
	ErrPasswordConfirm     = New(CodePasswordConfirmation, "New password and confirm password do not match.", http.StatusBadRequest)
	ErrWrongPassword       = New(CodeInvalidCredentials, "Current password is incorrect.", http.StatusUnauthorized)
)

// BadRequest builds an InvalidRequest error with a caller-supplied message.
func BadRequest(message string) *AppError {
	return New(CodeInvalidRequest, message, http.StatusBadRequest)
}

// Conflict builds a duplicate-resource error, answered as 409.
func Conflict(message string) *AppError {
	return New(CodeEmailAlreadyExists, message, http.StatusConflict)
}

// NotFound builds a not-found error with a caller-supplied message.
func NotFound(message string) *AppError {
	return New(CodeAccountNotFound, message, http.StatusNotFound)
}

// InternalError wraps an unexpected fault. The underlying error is kept
// for logging; the client always sees the generic message.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

// ValidationError builds an InvalidRequest error carrying field details.
func ValidationError(details interface{}) *AppError {
	return New(CodeInvalidRequest, "Validation failed", http.StatusBadRequest).WithDetails(details)
}
