package error

import "errors"

// Scope resolution domain errors. Scope resolution runs before any insight
// query and its errors propagate to the caller unmodified.
var (
	// ErrBusinessNotFound is returned when the requested business does not exist.
	ErrBusinessNotFound = errors.New("business not found")

	// ErrProjectNotFound is returned when the requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrScopeOwnership is returned when the requested scope belongs to another user.
	ErrScopeOwnership = errors.New("scope is owned by another user")
)

// ScopeErrorCode defines error codes for scope resolution errors.
// Format: SCP-XXYYYY where XX is category and YYYY is specific error.
type ScopeErrorCode string

const (
	// Not-found errors (01XXXX)
	ErrCodeBusinessNotFound ScopeErrorCode = "SCP-010001"
	ErrCodeProjectNotFound  ScopeErrorCode = "SCP-010002"

	// Ownership errors (02XXXX)
	ErrCodeScopeOwnership ScopeErrorCode = "SCP-020001"
)

// ScopeError represents a scope resolution error with code and message.
type ScopeError struct {
	Code    ScopeErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ScopeError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ScopeError) Unwrap() error {
	return e.Err
}

// NewScopeError creates a new ScopeError with the given code and message.
func NewScopeError(code ScopeErrorCode, message string, err error) *ScopeError {
	return &ScopeError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
