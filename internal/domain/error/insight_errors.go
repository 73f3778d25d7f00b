package error

import "errors"

// Insight domain errors. Only malformed input parameters are errors here:
// empty row sets and zero denominators resolve to zero-valued results instead.
var (
	// ErrInvalidHorizon is returned when a projection horizon is out of bounds.
	ErrInvalidHorizon = errors.New("horizon_days must be between 30 and 365")

	// ErrInvalidGranularity is returned when a workload granularity is not week or month.
	ErrInvalidGranularity = errors.New("granularity must be: week or month")

	// ErrInvalidScope is returned when an owner scope is not personal or business.
	ErrInvalidScope = errors.New("scope must be: personal or business")

	// ErrInvalidPeriod is returned when a period's end precedes its start.
	ErrInvalidPeriod = errors.New("to must be after from")
)

// InsightErrorCode defines error codes for insight errors.
// Format: INS-XXYYYY where XX is category and YYYY is specific error.
type InsightErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidHorizon            InsightErrorCode = "INS-010001"
	ErrCodeInvalidInsightGranularity InsightErrorCode = "INS-010002"
	ErrCodeInvalidScope              InsightErrorCode = "INS-010003"
	ErrCodeInvalidPeriod             InsightErrorCode = "INS-010004"

	// Internal errors (99XXXX)
	ErrCodeInsightInternalError InsightErrorCode = "INS-990001"
)

// InsightError represents an insight error with code and message.
type InsightError struct {
	Code    InsightErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InsightError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InsightError) Unwrap() error {
	return e.Err
}

// NewInsightError creates a new InsightError with the given code and message.
func NewInsightError(code InsightErrorCode, message string, err error) *InsightError {
	return &InsightError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
