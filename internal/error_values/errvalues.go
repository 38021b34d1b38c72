package errorvalues

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Returned both for missing records and for records of another owner.
	ErrRecordNotFound = errors.New("record not found")
	ErrValidation     = errors.New("validation error")
	ErrStorage        = errors.New("storage error")
	ErrConfiguration  = errors.New("configuration error")
	ErrInvalidToken   = errors.New("invalid token")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every violated rule, not only the first one.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Empty() bool { return len(e.Errors) == 0 }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// StorageError hides the persistence failure behind an opaque message.
// The cause stays reachable through errors.Is/As, so context errors
// from the collaborator still match.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage error: " + e.Op + " failed"
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// Cause returns the underlying error for logging.
func (e *StorageError) Cause() error { return e.Err }

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }
