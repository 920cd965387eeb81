// Package errors provides domain-specific error types for the widget runtime.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for widget errors.
const (
	ErrCodeMissingCredential = "MISSING_CREDENTIAL"
	ErrCodeTransport         = "TRANSPORT_ERROR"
	ErrCodeServer            = "SERVER_ERROR"
	ErrCodeDecode            = "DECODE_ERROR"
	ErrCodeStorage           = "STORAGE_ERROR"
)

// WidgetError represents a failure inside the widget runtime. Failures that
// are reachable from user interaction never escape as errors; they are
// converted to assistant messages or no-ops at the controller boundary.
type WidgetError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Status is the HTTP status for server errors, zero otherwise.
	Status int   `json:"-"`
	Err    error `json:"-"`
}

// Error implements the error interface.
func (e *WidgetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *WidgetError) Unwrap() error {
	return e.Err
}

// NewMissingCredentialError creates the local, non-retryable credential error.
func NewMissingCredentialError() *WidgetError {
	return &WidgetError{
		Code:    ErrCodeMissingCredential,
		Message: "no API key configured",
	}
}

// NewTransportError creates an error for network-level failures.
func NewTransportError(err error) *WidgetError {
	return &WidgetError{
		Code:    ErrCodeTransport,
		Message: "request failed",
		Err:     err,
	}
}

// NewServerError creates an error for a non-success HTTP response. The reason
// is the machine-readable detail extracted from the body, or a generic
// "HTTP <status>" string when the body could not be parsed.
func NewServerError(status int, reason string) *WidgetError {
	return &WidgetError{
		Code:    ErrCodeServer,
		Message: reason,
		Status:  status,
	}
}

// NewDecodeError creates an error for a malformed success body. The reply
// surfaces the status line since the body offers nothing quotable.
func NewDecodeError(status int, err error) *WidgetError {
	return &WidgetError{
		Code:    ErrCodeDecode,
		Message: fmt.Sprintf("HTTP %d", status),
		Status:  status,
		Err:     err,
	}
}

// NewStorageError creates an error for persistent storage failures.
func NewStorageError(err error) *WidgetError {
	return &WidgetError{
		Code:    ErrCodeStorage,
		Message: "storage unavailable",
		Err:     err,
	}
}

// GetWidgetError extracts the widget error from an error chain.
func GetWidgetError(err error) (*WidgetError, bool) {
	var widgetErr *WidgetError
	if errors.As(err, &widgetErr) {
		return widgetErr, true
	}
	return nil, false
}

// IsMissingCredential checks if the error is the missing-credential error.
func IsMissingCredential(err error) bool {
	widgetErr, ok := GetWidgetError(err)
	return ok && widgetErr.Code == ErrCodeMissingCredential
}
