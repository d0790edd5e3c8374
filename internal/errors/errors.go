package errors

import (
	"errors"
	"fmt"
	"time"
)

// Base error types
var (
	ErrMissingToken    = errors.New("missing API token")
	ErrMissingCompany  = errors.New("missing company identifier")
	ErrTimeout         = errors.New("timeout")
	ErrRetryExhausted  = errors.New("retries exhausted")
	ErrAmbiguousProbe  = errors.New("ambiguous probe response")
	ErrPrerequisite    = errors.New("prerequisite failed")
	ErrNotGranted      = errors.New("permission not granted")
	ErrConnectionFail  = errors.New("connection failed")
	ErrInvalidResponse = errors.New("invalid response")
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeTransport    ErrorType = "transport"
	ErrorTypeAmbiguous    ErrorType = "ambiguous"
	ErrorTypePrerequisite ErrorType = "prerequisite"
	ErrorTypePartial      ErrorType = "partial"
	ErrorTypeConfig       ErrorType = "config"
)

// AuditError is a structured error for probe and enumeration operations.
type AuditError struct {
	Type       ErrorType
	Op         string // Operation that failed (e.g., "probe", "fetch_pages")
	Target     string // Endpoint path or node scope where it occurred
	Err        error  // Underlying error
	StatusCode int    // HTTP status code if a response was received
	Page       int    // Page number for pagination failures, 0 otherwise
	Timestamp  time.Time
}

func (e *AuditError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s failed on %s (page %d): %v", e.Op, e.Target, e.Page, e.Err)
	}
	if e.Target != "" {
		return fmt.Sprintf("%s failed on %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *AuditError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support for the base error types.
func (e *AuditError) Is(target error) bool {
	if target == nil {
		return false
	}
	switch target {
	case ErrTimeout:
		return e.Type == ErrorTypeTransport && errors.Is(e.Err, ErrTimeout)
	case ErrAmbiguousProbe:
		return e.Type == ErrorTypeAmbiguous
	case ErrPrerequisite:
		return e.Type == ErrorTypePrerequisite
	}
	return errors.Is(e.Err, target)
}

// NewTransportError wraps a network-level failure (connection error,
// timeout, retries exhausted). Ordinary 4xx/5xx outcomes are not
// transport errors; they reach callers as data.
func NewTransportError(op, target string, err error) *AuditError {
	return &AuditError{
		Type:      ErrorTypeTransport,
		Op:        op,
		Target:    target,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// NewAmbiguousError marks a probe response that matched no expected shape.
func NewAmbiguousError(op, target string, statusCode int) *AuditError {
	return &AuditError{
		Type:       ErrorTypeAmbiguous,
		Op:         op,
		Target:     target,
		Err:        ErrAmbiguousProbe,
		StatusCode: statusCode,
		Timestamp:  time.Now(),
	}
}

// WithPage attaches the failing page number to the error.
func (e *AuditError) WithPage(page int) *AuditError {
	e.Page = page
	return e
}

// WithStatusCode attaches the HTTP status code to the error.
func (e *AuditError) WithStatusCode(code int) *AuditError {
	e.StatusCode = code
	return e
}

// IsTransportError reports whether err is (or wraps) a network-level
// failure as opposed to a meaningful API status.
func IsTransportError(err error) bool {
	var ae *AuditError
	if errors.As(err, &ae) {
		return ae.Type == ErrorTypeTransport
	}
	return errors.Is(err, ErrConnectionFail) || errors.Is(err, ErrRetryExhausted)
}
