package validation

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalid matches every FieldErrors value.
var ErrInvalid = errors.New("validation failed")

// FieldErrors holds one inline message per form field.
type FieldErrors map[string]string

// Add records message for field unless the field already has one.
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = message
}

// Err returns nil when no field failed.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+f[key])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (f FieldErrors) Is(target error) bool {
	return target == ErrInvalid
}

// Fields extracts the field map from err, if it carries one.
func Fields(err error) (FieldErrors, bool) {
	var fields FieldErrors
	if errors.As(err, &fields) {
		return fields, true
	}
	return nil, false
}
