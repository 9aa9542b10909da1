package game

import (
	"sort"
	"strings"
)

// FieldErrors collects rejected payload fields; valid fields are still applied.
type FieldErrors struct {
	Errors map[string]string
}

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Errors[k])
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

func NewFieldErrors() FieldErrors {
	return FieldErrors{Errors: map[string]string{}}
}

func NewFieldError(key, message string) FieldErrors {
	return FieldErrors{Errors: map[string]string{key: message}}
}

// Add records the first message seen for key.
func (e FieldErrors) Add(key, message string) {
	if _, exists := e.Errors[key]; !exists {
		e.Errors[key] = message
	}
}

func (e FieldErrors) Valid() bool {
	return len(e.Errors) == 0
}

// OrNil returns nil when nothing was rejected.
func (e FieldErrors) OrNil() error {
	if e.Valid() {
		return nil
	}
	return e
}
