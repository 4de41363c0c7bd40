package config

import (
	"fmt"
	"strings"
)

// FieldError describes a single invalid or missing configuration field.
type FieldError struct {
	Field   string
	Message string
}

func (fe FieldError) String() string {
	return fmt.Sprintf("%s %s", fe.Field, fe.Message)
}

// ValidationError aggregates every field problem found while building a
// SeoConfig. It is fatal: surfaced before any analysis begins.
type ValidationError struct {
	Fields []FieldError
}

func (ve *ValidationError) Error() string {
	if len(ve.Fields) == 1 {
		return fmt.Sprintf("invalid seo config: %s", ve.Fields[0])
	}
	parts := make([]string, 0, len(ve.Fields))
	for _, fe := range ve.Fields {
		parts = append(parts, fe.String())
	}
	return fmt.Sprintf("invalid seo config (%d problems): %s", len(ve.Fields), strings.Join(parts, "; "))
}

// errorCollector accumulates field errors during validation.
type errorCollector struct {
	fields []FieldError
}

func newErrorCollector() *errorCollector {
	return &errorCollector{}
}

func (ec *errorCollector) add(field, format string, args ...interface{}) {
	ec.fields = append(ec.fields, FieldError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

func (ec *errorCollector) hasErrors() bool {
	return len(ec.fields) > 0
}

func (ec *errorCollector) toError() error {
	return &ValidationError{Fields: ec.fields}
}
