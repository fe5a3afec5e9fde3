package form

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrSubmitting is returned when Submit is called while a submission
	// is still outstanding.
	ErrSubmitting = errors.New("form: submission in progress")

	// ErrNotEditing is returned when the controller holds no draft.
	ErrNotEditing = errors.New("form: no draft to submit")

	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("form: validation failed")
)

// ValidationError carries field-level messages for a rejected draft.
// Keys are the draft's json field names.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := e.Keys()
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// Keys returns the failing field names in sorted order.
func (e *ValidationError) Keys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Field returns the message for a single field.
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}
