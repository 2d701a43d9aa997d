// Package errors provides unified error handling for dsinit.
//
// Every failure that reaches the process boundary is an *AppError carrying a
// stable Code. The code decides the exit status (see ExitCode) and the
// category/severity used when the error is shown to the user (see handlers.go).
//
// USAGE PATTERNS:
// - Create errors: New(code, msg) or one of the helpers such as UsageError()
// - Wrap errors: Wrap(err, code, msg) or StorageError(op, path, err) for filesystem failures
// - Check types: GetCode() and AsAppError() see through fmt.Errorf("%w") chains
package errors

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"sort"
	"strings"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Invocation errors
	ErrCodeUsage ErrorCode = "USAGE"

	// Input errors
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeInputClosed  ErrorCode = "INPUT_CLOSED"
	ErrCodeCancelled    ErrorCode = "CANCELLED"

	// Configuration errors
	ErrCodeConfig ErrorCode = "CONFIG_FAILURE"

	// Storage errors
	ErrCodeStorageFailure   ErrorCode = "STORAGE_FAILURE"
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrCodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"

	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryUsage   ErrorCategory = "usage"
	CategoryInput   ErrorCategory = "input"
	CategoryConfig  ErrorCategory = "config"
	CategoryStorage ErrorCategory = "storage"
	CategorySystem  ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code     ErrorCode
	Message  string
	Details  string
	Severity ErrorSeverity
	Category ErrorCategory
	Cause    error
	Context  map[string]string
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	if e.Details != "" {
		fmt.Fprintf(&b, " (%s)", e.Details)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds a key/value pair shown in verbose diagnostics
func (e *AppError) WithContext(key, value string) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// ContextKeys returns the context keys in sorted order.
func (e *AppError) ContextKeys() []string {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// New creates a new application error
func New(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:     code,
		Message:  message,
		Severity: severity,
		Category: category,
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeUsage:
		return CategoryUsage, SeverityWarning
	case ErrCodeInvalidInput, ErrCodeInputClosed:
		return CategoryInput, SeverityError
	case ErrCodeCancelled:
		return CategoryInput, SeverityInfo
	case ErrCodeConfig:
		return CategoryConfig, SeverityError
	case ErrCodeStorageFailure, ErrCodePermissionDenied, ErrCodeAlreadyExists:
		return CategoryStorage, SeverityError
	case ErrCodeInternalError:
		return CategorySystem, SeverityCritical
	default:
		return CategorySystem, SeverityError
	}
}

// AsAppError returns (*AppError, true) if err is or wraps an AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "internal error occurred")
}

// GetCode extracts the error code from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// ExitCode returns the process exit status for err.
// 0 for nil, 2 for usage errors, 130 for cancellation, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCode(err) {
	case ErrCodeUsage:
		return 2
	case ErrCodeCancelled:
		return 130
	default:
		return 1
	}
}

func UsageError(message string) *AppError {
	return New(ErrCodeUsage, message)
}

func ConfigError(message string, err error) *AppError {
	return Wrap(err, ErrCodeConfig, message)
}

func InputClosedError(prompt string) *AppError {
	return New(ErrCodeInputClosed, "input closed before an answer was read").
		WithContext("prompt", strings.TrimSpace(prompt))
}

func CancelledError() *AppError {
	return New(ErrCodeCancelled, "cancelled by user")
}

// StorageError wraps a filesystem failure, refining the code for permission
// and collision errors.
func StorageError(operation, path string, err error) *AppError {
	code := ErrCodeStorageFailure
	switch {
	case errors.Is(err, iofs.ErrPermission):
		code = ErrCodePermissionDenied
	case errors.Is(err, iofs.ErrExist):
		code = ErrCodeAlreadyExists
	}
	return Wrap(err, code, fmt.Sprintf("%s %s", operation, path)).WithContext("path", path)
}
