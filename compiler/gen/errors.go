package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/schema"
)

// FieldError wraps a projection error with the field it was raised for.
type FieldError struct {
	Type  string // Entity name
	Field string // Field name
	Cause error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString("gen: field ")
	b.WriteString(e.Type)
	b.WriteString(".")
	b.WriteString(e.Field)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Cause
}

// ConfigError represents an invalid generator option.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("gen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("gen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target is the config error sentinel.
func (e *ConfigError) Is(target error) bool {
	return target == indexschema.ErrConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

func invariantErrorf(format string, args ...any) error {
	return indexschema.Errorf(indexschema.CodeProjectionInvariant, format, args...)
}

func notStoredError(d *schema.DerivedFromField) error {
	return indexschema.Errorf(indexschema.CodeDerivedFieldNotStored, "derived field %s has no storage type", d)
}

func unresolvedError(sc schema.Scalar) error {
	return invariantErrorf("type %s does not resolve to an entity or enum", sc.Name)
}
