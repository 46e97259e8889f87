package indexschema

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable identifier attached to every error reported while
// loading, validating or projecting a schema.
type Code string

// Error codes. The numeric part never changes once released.
const (
	CodeReadFile              Code = "EE200"
	CodeParse                 Code = "EE201"
	CodeMultipleDerivedFrom   Code = "EE202"
	CodeDerivedFromNoField    Code = "EE203"
	CodeDerivedFromNotString  Code = "EE204"
	CodeDerivedFromShape      Code = "EE205"
	CodeDuplicateType         Code = "EE206"
	CodeDuplicateField        Code = "EE207"
	CodeNullableInList        Code = "EE208"
	CodeNullableNestedList    Code = "EE209"
	CodeReservedWord          Code = "EE210"
	CodeReservedEnumName      Code = "EE211"
	CodeDuplicateEnumValue    Code = "EE212"
	CodeEnumEntityCollision   Code = "EE213"
	CodeInvalidIdentifier     Code = "EE214"
	CodeEntityArray           Code = "EE215"
	CodeUndefinedType         Code = "EE216"
	CodeDerivedFromEnum       Code = "EE217"
	CodeDerivedFieldMissing   Code = "EE218"
	CodeIllegalRelationalKey  Code = "EE219"
	CodeNestedNonNull         Code = "EE220"
	CodeUnsupportedABIType    Code = "EE221"
	CodeProjectionInvariant   Code = "EE222"
	CodeDerivedFieldNotStored Code = "EE223"
	CodeInvalidConfig         Code = "EE224"
)

// Class groups codes by the stage that reports them.
type Class string

// Error classes.
const (
	ClassIO         Class = "io"
	ClassParse      Class = "parse"
	ClassBuild      Class = "build"
	ClassValidation Class = "validation"
	ClassProjection Class = "projection"
	ClassConfig     Class = "config"
)

// Sentinel errors, one per class. Error values match them with errors.Is.
var (
	ErrIO         = errors.New("indexschema: io error")
	ErrParse      = errors.New("indexschema: parse error")
	ErrBuild      = errors.New("indexschema: build error")
	ErrValidation = errors.New("indexschema: validation error")
	ErrProjection = errors.New("indexschema: projection error")
	ErrConfig     = errors.New("indexschema: config error")
)

// Class returns the class of the code.
func (c Code) Class() Class {
	switch c {
	case CodeReadFile:
		return ClassIO
	case CodeParse:
		return ClassParse
	case CodeMultipleDerivedFrom, CodeDerivedFromNoField, CodeDerivedFromNotString,
		CodeDerivedFromShape, CodeDuplicateType, CodeDuplicateField,
		CodeDuplicateEnumValue, CodeInvalidIdentifier, CodeUnsupportedABIType:
		return ClassBuild
	case CodeProjectionInvariant, CodeDerivedFieldNotStored:
		return ClassProjection
	case CodeInvalidConfig:
		return ClassConfig
	default:
		return ClassValidation
	}
}

// Error is the structured error of the schema compiler. It carries a stable
// code, a human-readable message and the identifiers that caused it.
type Error struct {
	Code    Code
	Message string
	// Names lists the offending identifiers, if any.
	Names []string
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Names) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Names, ", "))
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target is the sentinel error of the code class.
func (e *Error) Is(target error) bool {
	switch e.Code.Class() {
	case ClassIO:
		return target == ErrIO
	case ClassParse:
		return target == ErrParse
	case ClassBuild:
		return target == ErrBuild
	case ClassProjection:
		return target == ErrProjection
	case ClassConfig:
		return target == ErrConfig
	default:
		return target == ErrValidation
	}
}

// NewError returns a new Error with the given code and message.
func NewError(code Code, message string, names ...string) *Error {
	return &Error{Code: code, Message: message, Names: names}
}

// Errorf returns a new Error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError returns a new Error with the given code wrapping cause.
func WrapError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// AggregateError represents multiple errors found by one validation pass.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "indexschema: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("indexschema: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the aggregated errors for errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil. A single error is returned as is.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}

// Codes returns every code found in the error tree of err, in the order
// they are encountered.
func Codes(err error) []Code {
	var codes []Code
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if e, ok := err.(*Error); ok {
			codes = append(codes, e.Code)
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, err := range u.Unwrap() {
				walk(err)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return codes
}

// HasCode reports whether the error tree of err contains the given code.
func HasCode(err error, code Code) bool {
	for _, c := range Codes(err) {
		if c == code {
			return true
		}
	}
	return false
}

// CodeOf returns the first code found in the error tree of err, or an empty
// code if err carries none.
func CodeOf(err error) Code {
	if codes := Codes(err); len(codes) > 0 {
		return codes[0]
	}
	return ""
}

// IsValidationError returns true if the error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsBuildError returns true if the error is a build error.
func IsBuildError(err error) bool {
	return errors.Is(err, ErrBuild)
}

// IsProjectionError returns true if the error is a projection error.
func IsProjectionError(err error) bool {
	return errors.Is(err, ErrProjection)
}
