package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// Callback wraps a failure returned by a caller-supplied function of op.
// Errors that already are *AppError values pass through unchanged so a
// fault is wrapped once, by the innermost operator that saw it.
func Callback(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if IsAppError(cause) {
		return cause
	}
	return &AppError{
		Code: ErrCodeCallback, Message: fmt.Sprintf("%s callback failed", op),
		Details: map[string]any{"operator": op}, Cause: cause,
	}
}

// LeafType reports a flattened leaf whose type is not the requested one.
func LeafType(got any, want string) *AppError {
	return &AppError{
		Code: ErrCodeLeafType, Message: fmt.Sprintf("flatten leaf %T is not %s", got, want),
		Details: map[string]any{"got": fmt.Sprintf("%T", got), "want": want},
	}
}

// Cancelled reports that op stopped because its context ended.
func Cancelled(op string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeCancelled, Message: fmt.Sprintf("%s cancelled", op),
		Details: map[string]any{"operator": op}, Cause: cause,
	}
}

// IO reports a read failure of an underlying source.
func IO(op string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeIO, Message: fmt.Sprintf("%s: read failed", op),
		Details: map[string]any{"operator": op}, Cause: cause,
	}
}

// InvalidArgument reports an out-of-range argument.
func InvalidArgument(name, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid %s: %s", name, reason),
		Details: map[string]any{"argument": name},
	}
}

// InvalidConfig reports configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// --- Helpers ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an AppError carrying code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// Is is errors.Is from the standard library.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As is errors.As from the standard library.
func As(err error, target any) bool { return stderrors.As(err, target) }
