// Package apperrors defines the error taxonomy shared by services and
// handlers: sentinel errors for the coarse outcomes, ValidationError for
// collected field failures, and UploadError for blob store failures.
package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("permission denied")
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account disabled")
)

// NonFieldKey collects messages scoped to the whole object rather than a
// single field.
const NonFieldKey = "non_field_errors"

// ValidationError carries one message per violated field. Services collect
// all violations before failing rather than stopping at the first.
type ValidationError struct {
	Fields map[string]string
}

func NewValidation() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// AddField records a message for a field. A later message for the same field
// replaces the earlier one.
func (e *ValidationError) AddField(field, message string) {
	e.Fields[field] = message
}

// AddObject records a message scoped to the whole object.
func (e *ValidationError) AddObject(message string) {
	e.Fields[NonFieldKey] = message
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error itself when any violation was recorded,
// otherwise nil.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// UploadError signals a blob store failure. A failed upload aborts the whole
// mutating operation; no partial silent success.
type UploadError struct {
	FileName string
	Err      error
}

func (e *UploadError) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("upload of %q failed: %v", e.FileName, e.Err)
	}
	return fmt.Sprintf("upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
