package errors

import (
	"net/http"

	"identity/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	kind      *BaseError
	origin    *BaseError
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// newKindError creates an error that also matches its taxonomy kind under errors.Is.
func newKindError(kind *BaseError, httpCode int, errorCode, message string) *BaseError {
	err := NewBaseError(httpCode, errorCode, message, "")
	err.kind = kind

	return err
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is reports whether target is this error, the predefined error it was derived
// from, or the taxonomy kind it belongs to.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e == t || (e.origin != nil && e.origin == t) || (e.kind != nil && e.kind == t)
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	origin := e
	if e.origin != nil {
		origin = e.origin
	}

	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
		kind:      e.kind,
		origin:    origin,
	}
}

// Error taxonomy. Every failure surfaced by the service belongs to one of these kinds.
var (
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrBadRequest = NewBaseError(
		http.StatusBadRequest,
		"BAD_REQUEST",
		"Malformed request",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = newKindError(
		ErrNotFound,
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
	)

	// ErrUserAlreadyExists is a conflict, rendered as 400 on the registration endpoint.
	ErrUserAlreadyExists = newKindError(
		ErrConflict,
		http.StatusBadRequest,
		"USER_ALREADY_EXISTS",
		"Email or username already exists",
	)

	ErrIDMismatch = newKindError(
		ErrBadRequest,
		http.StatusBadRequest,
		"ID_MISMATCH",
		"Path id does not match body id",
	)

	// Authentication-related errors
	ErrInvalidCredentials = newKindError(
		ErrUnauthorized,
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
	)

	ErrNotResourceOwner = newKindError(
		ErrUnauthorized,
		http.StatusUnauthorized,
		"NOT_RESOURCE_OWNER",
		"Actor may only access its own account",
	)

	ErrInvalidToken = newKindError(
		ErrUnauthorized,
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
	)

	ErrWrongPassword = newKindError(
		ErrBadRequest,
		http.StatusBadRequest,
		"WRONG_PASSWORD",
		"Current password is incorrect",
	)

	ErrPasswordHashFailed = newKindError(
		ErrInternalError,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
	)

	ErrPasswordStrength = newKindError(
		ErrBadRequest,
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"Password does not meet strength requirements",
	)

	ErrTokenIssueFailed = newKindError(
		ErrInternalError,
		http.StatusInternalServerError,
		"TOKEN_ISSUE_FAILED",
		"Failed to issue token",
	)

	// Validation-related errors
	ErrValidationFailed = newKindError(
		ErrBadRequest,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
	)

	ErrInvalidFilter = newKindError(
		ErrBadRequest,
		http.StatusBadRequest,
		"INVALID_FILTER",
		"Unsupported query filter",
	)

	// Transaction-related errors
	ErrTransactionFailed = newKindError(
		ErrInternalError,
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
