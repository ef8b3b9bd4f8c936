package tokeninspect

import (
	"errors"
	"fmt"
)

// ErrorCode represents an inspection error code
type ErrorCode string

const (
	ErrMissingToken         ErrorCode = "MISSING_TOKEN"
	ErrMalformed            ErrorCode = "MALFORMED"
	ErrMissingExpiry        ErrorCode = "MISSING_EXPIRY"
	ErrStoreUnavailable     ErrorCode = "STORE_UNAVAILABLE"
	ErrConfigError          ErrorCode = "CONFIG_ERROR"
	ErrInvalidSignature     ErrorCode = "INVALID_SIGNATURE"
	ErrUnsupportedAlgorithm ErrorCode = "UNSUPPORTED_ALGORITHM"
	ErrNoneAlgorithm        ErrorCode = "NONE_ALGORITHM"
)

// InspectionError describes why a token could not be inspected or verified.
// Internal carries the underlying decode, parse or store error.
type InspectionError struct {
	Code     ErrorCode
	Message  string
	Internal error
}

func (e *InspectionError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *InspectionError) Unwrap() error {
	return e.Internal
}

// NewInspectionError creates a new inspection error
func NewInspectionError(code ErrorCode, message string, internal error) *InspectionError {
	return &InspectionError{
		Code:     code,
		Message:  message,
		Internal: internal,
	}
}

// CodeOf returns the error code carried by err, or "" when err is nil or
// not an *InspectionError.
func CodeOf(err error) ErrorCode {
	var inspErr *InspectionError
	if errors.As(err, &inspErr) {
		return inspErr.Code
	}
	return ""
}

// IsMalformed reports whether err marks a token that could not be decoded.
func IsMalformed(err error) bool {
	switch CodeOf(err) {
	case ErrMalformed, ErrMissingExpiry:
		return true
	}
	return false
}
