// Package apperr defines the errors every layer of the console reports.
//
// Handlers branch on them with errors.As / errors.Is; nothing matches on
// error strings.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotProvisioned marks a table the backend does not have yet. It is always
// wrapped in an *OperationError.
var ErrNotProvisioned = errors.New("table not provisioned")

// ConfigurationError is returned when no backend access credential is
// configured. The request is never sent.
type ConfigurationError struct {
	Op string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: no backend access credential configured", e.Op)
}

// AuthenticationError is returned when the backend rejects the credential.
type AuthenticationError struct {
	Op     string
	Status int
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: backend rejected the access credential (status %d)", e.Op, e.Status)
}

// NotFoundError is returned by strict single-row reads.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found (%s)", e.Resource, e.Key)
}

// ValidationError lists every problem found in a caller supplied document or
// record.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// OperationError is a backend fault tagged with the attempted operation.
type OperationError struct {
	Op      string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NotProvisioned wraps ErrNotProvisioned for the given operation and table.
func NotProvisioned(op, table string) error {
	return &OperationError{
		Op:      op,
		Message: fmt.Sprintf("table %q does not exist", table),
		Err:     ErrNotProvisioned,
	}
}

// IsNotProvisioned reports whether err comes from a missing table.
func IsNotProvisioned(err error) bool {
	return errors.Is(err, ErrNotProvisioned)
}

// IsConfiguration reports whether err is a missing credential.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// DegradesToEmpty reports whether a list read that failed with err should
// answer with an empty result instead: no credential, or no table yet.
func DegradesToEmpty(err error) bool {
	return IsConfiguration(err) || IsNotProvisioned(err)
}
