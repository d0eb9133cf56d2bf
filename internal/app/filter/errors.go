package filter

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Configuration errors. These are programmer mistakes in a specification or
// registry, never a problem with the filtered input.
var (
	ErrUnknownAlias = errors.New("unknown filter alias")
	ErrInvalidSpec  = errors.New("invalid filter specification")
)

// FieldError is a validation failure for a single field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationError aggregates every field that failed during one filter run.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the names of the failed fields in evaluation order.
func (e *ValidationError) Fields() []string {
	names := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		names[i] = fe.Field
	}
	return names
}

// Failf builds the error a filter function returns for a rejected value.
func Failf(format string, args ...any) error {
	return errors.Newf(format, args...)
}

func invalidSpec(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidSpec)
}
