package model

import "fmt"

// Op names a remote operation of the invoice API
type Op string

const (
	OpLookup Op = "lookup"
	OpPDF    Op = "pdf"
)

// RequestError represents a failed call to the invoice API: either a
// transport error (Cause set) or a non-success HTTP status.
type RequestError struct {
	Op         Op
	Number     string
	StatusCode int
	Cause      error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s request for invoice %q failed: %v", e.Op, e.Number, e.Cause)
	}
	return fmt.Sprintf("%s request for invoice %q failed: status %d", e.Op, e.Number, e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// NewRequestError creates a new request error
func NewRequestError(op Op, number string, statusCode int, cause error) *RequestError {
	return &RequestError{
		Op:         op,
		Number:     number,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}
