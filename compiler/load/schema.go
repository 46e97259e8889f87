// Package load reads schema documents and builds the unvalidated
// schema model from their definitions.
package load

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/schema"
)

const (
	derivedFromDirective = "derivedFrom"
	derivedFromArg       = "field"
)

// ParseFile reads and parses the schema document at path.
func ParseFile(path string) (*ast.SchemaDocument, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, indexschema.WrapError(indexschema.CodeReadFile, "failed reading schema file at "+path, err)
	}
	return ParseSource(filepath.Base(path), string(buf))
}

// ParseSource parses a schema document. The name is used in error positions.
func ParseSource(name, input string) (*ast.SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: input})
	if err != nil {
		return nil, indexschema.WrapError(indexschema.CodeParse, "failed parsing schema document "+name, err)
	}
	return doc, nil
}

// Load reads, parses and builds the schema at path. The returned schema is
// not validated.
func Load(path string) (*schema.Schema, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// Build converts the object and enum definitions of a parsed document into
// an unvalidated schema, in declaration order. Named types are kept as plain
// references and resolved by schema validation.
func Build(doc *ast.SchemaDocument) (*schema.Schema, error) {
	var (
		entities         []*schema.Entity
		enums            []*schema.Enum
		entErrs, enmErrs []error
	)
	for _, def := range doc.Definitions {
		switch def.Kind {
		case ast.Object:
			e, err := NewEntity(def)
			if err != nil {
				entErrs = append(entErrs, err)
				continue
			}
			entities = append(entities, e)
		case ast.Enum:
			e, err := NewEnum(def)
			if err != nil {
				enmErrs = append(enmErrs, err)
				continue
			}
			enums = append(enums, e)
		}
	}
	if err := indexschema.NewAggregateError(entErrs...); err != nil {
		return nil, fmt.Errorf("failed constructing entities from document: %w", err)
	}
	if err := indexschema.NewAggregateError(enmErrs...); err != nil {
		return nil, fmt.Errorf("failed constructing enums from document: %w", err)
	}
	s, err := schema.New(entities, enums)
	if err != nil {
		return nil, fmt.Errorf("failed constructing schema from document: %w", err)
	}
	return s, nil
}

// NewEntity creates an entity from an object definition.
func NewEntity(def *ast.Definition) (*schema.Entity, error) {
	fields := make([]*schema.Field, 0, len(def.Fields))
	for _, fd := range def.Fields {
		f, err := NewField(fd)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", def.Name, err)
		}
		fields = append(fields, f)
	}
	return schema.NewEntity(def.Name, fields...)
}

// NewEnum creates an enum from an enum definition.
func NewEnum(def *ast.Definition) (*schema.Enum, error) {
	values := make([]string, 0, len(def.EnumValues))
	for _, v := range def.EnumValues {
		values = append(values, v.Name)
	}
	return schema.NewEnum(def.Name, values...)
}

// NewField creates a field from a field definition.
func NewField(fd *ast.FieldDefinition) (*schema.Field, error) {
	derivedFrom, err := derivedFromField(fd)
	if err != nil {
		return nil, err
	}
	ft, err := schema.NewFieldType(FieldType(fd.Type), derivedFrom)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", fd.Name, err)
	}
	return schema.NewField(fd.Name, ft), nil
}

// FieldType lowers a type expression into the field type algebra.
func FieldType(t *ast.Type) schema.UserDefinedFieldType {
	var ft schema.UserDefinedFieldType
	if t.Elem != nil {
		ft = schema.ListOf(FieldType(t.Elem))
	} else {
		ft = schema.Named(t.NamedType)
	}
	if t.NonNull {
		return schema.NonNullOf(ft)
	}
	return ft
}

// derivedFromField returns the field argument of the @derivedFrom directive,
// or an empty string if the field has none.
func derivedFromField(fd *ast.FieldDefinition) (string, error) {
	ds := fd.Directives.ForNames(derivedFromDirective)
	switch len(ds) {
	case 0:
		return "", nil
	case 1:
	default:
		return "", indexschema.NewError(indexschema.CodeMultipleDerivedFrom, "cannot use @derivedFrom more than once on a field", fd.Name)
	}
	arg := ds[0].Arguments.ForName(derivedFromArg)
	if arg == nil || arg.Value == nil {
		return "", indexschema.NewError(indexschema.CodeDerivedFromNoField, `@derivedFrom requires a "field" argument`, fd.Name)
	}
	if arg.Value.Kind != ast.StringValue && arg.Value.Kind != ast.BlockValue {
		return "", indexschema.Errorf(indexschema.CodeDerivedFromNotString, `@derivedFrom "field" argument of %s must be a string, got %s`, fd.Name, arg.Value.Raw)
	}
	return arg.Value.Raw, nil
}
