package services

import (
	"fmt"
	"sort"
	"strings"

	"lumina/app/models"
)

// ValidationError reports which input fields were rejected.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func validationError(err error) error {
	fields := models.FieldErrors(err)
	if fields == nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return &ValidationError{Fields: fields}
}
