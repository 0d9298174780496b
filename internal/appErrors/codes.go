package appErrors

// Error codes grouped by domain.
const (
	// Request shape
	CodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenLoggedOut     ErrorCode = "TOKEN_LOGGED_OUT"

	// OTP verification
	CodeNoPendingOtp ErrorCode = "NO_PENDING_OTP"
	CodeOtpExpired   ErrorCode = "OTP_EXPIRED"
	CodeOtpMismatch  ErrorCode = "OTP_MISMATCH"

	// Accounts
	CodeAccountNotFound      ErrorCode = "ACCOUNT_NOT_FOUND"
	CodeEmailAlreadyExists   ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeAccountSuspended     ErrorCode = "ACCOUNT_SUSPENDED"
	CodeAmbiguousIdentifier  ErrorCode = "AMBIGUOUS_IDENTIFIER"
	CodeWeakPassword         ErrorCode = "WEAK_PASSWORD"
	CodePasswordConfirmation ErrorCode = "PASSWORD_CONFIRMATION_MISMATCH"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
