package schema

import (
	"slices"

	"github.com/syssam/indexschema"
)

type (
	// Schema holds the entities and enums of one schema document. Entity
	// and enum names share a single namespace. A schema is read-only once
	// validated: changes to the slices of a validated schema are not
	// checked again by Validate. Use Clone to derive a modifiable copy.
	Schema struct {
		// Entities in declaration order.
		Entities []*Entity
		// Enums in declaration order.
		Enums     []*Enum
		entities  map[string]*Entity
		enums     map[string]*Enum
		validated bool
	}

	// Entity is a named record type materialized as a storage row.
	Entity struct {
		Name string
		// Fields in declaration order.
		Fields []*Field
		fields map[string]*Field
	}

	// Field is a named, typed member of an entity.
	Field struct {
		Name string
		Type FieldType
	}

	// Enum is a named closed set of distinct string values.
	Enum struct {
		Name   string
		Values []string
	}
)

// New returns an unvalidated schema of the given entities and enums.
// It fails if two entities or two enums share a name.
func New(entities []*Entity, enums []*Enum) (*Schema, error) {
	s := &Schema{
		Entities: entities,
		Enums:    enums,
		entities: make(map[string]*Entity, len(entities)),
		enums:    make(map[string]*Enum, len(enums)),
	}
	var dupEntities, dupEnums []string
	for _, e := range entities {
		if _, ok := s.entities[e.Name]; ok {
			dupEntities = appendUnique(dupEntities, e.Name)
			continue
		}
		s.entities[e.Name] = e
	}
	for _, e := range enums {
		if _, ok := s.enums[e.Name]; ok {
			dupEnums = appendUnique(dupEnums, e.Name)
			continue
		}
		s.enums[e.Name] = e
	}
	if err := indexschema.NewAggregateError(
		duplicatesError("found entities with duplicate names", dupEntities),
		duplicatesError("found enums with duplicate names", dupEnums),
	); err != nil {
		return nil, err
	}
	return s, nil
}

// Empty returns a schema without types.
func Empty() *Schema {
	s, _ := New(nil, nil)
	return s
}

// Entity returns the entity with the given name.
func (s *Schema) Entity(name string) (*Entity, bool) {
	e, ok := s.entities[name]
	return e, ok
}

// Enum returns the enum with the given name.
func (s *Schema) Enum(name string) (*Enum, bool) {
	e, ok := s.enums[name]
	return e, ok
}

// Validated reports if the schema passed validation.
func (s *Schema) Validated() bool {
	return s.validated
}

// Clone returns an unvalidated deep copy of the schema. Field types are
// immutable and shared with the copy.
func (s *Schema) Clone() *Schema {
	c := &Schema{
		Entities: make([]*Entity, 0, len(s.Entities)),
		Enums:    make([]*Enum, 0, len(s.Enums)),
		entities: make(map[string]*Entity, len(s.Entities)),
		enums:    make(map[string]*Enum, len(s.Enums)),
	}
	for _, e := range s.Entities {
		ce := &Entity{
			Name:   e.Name,
			Fields: make([]*Field, 0, len(e.Fields)),
			fields: make(map[string]*Field, len(e.Fields)),
		}
		for _, f := range e.Fields {
			cf := &Field{Name: f.Name, Type: f.Type}
			ce.Fields = append(ce.Fields, cf)
			if _, ok := ce.fields[f.Name]; !ok {
				ce.fields[f.Name] = cf
			}
		}
		c.Entities = append(c.Entities, ce)
		if _, ok := c.entities[e.Name]; !ok {
			c.entities[e.Name] = ce
		}
	}
	for _, e := range s.Enums {
		ce := &Enum{Name: e.Name, Values: slices.Clone(e.Values)}
		c.Enums = append(c.Enums, ce)
		if _, ok := c.enums[e.Name]; !ok {
			c.enums[e.Name] = ce
		}
	}
	return c
}

// TypeDefKind tells what a name resolves to.
type TypeDefKind uint8

// Name resolution results.
const (
	TypeDefNone TypeDefKind = iota
	TypeDefEntity
	TypeDefEnum
	TypeDefAmbiguous
)

// TypeDef is the result of resolving a name in the schema namespace.
type TypeDef struct {
	Kind   TypeDefKind
	Entity *Entity
	Enum   *Enum
}

// Lookup resolves a name to the entity or enum it denotes.
func (s *Schema) Lookup(name string) TypeDef {
	entity, isEntity := s.entities[name]
	enum, isEnum := s.enums[name]
	switch {
	case isEntity && isEnum:
		return TypeDef{Kind: TypeDefAmbiguous, Entity: entity, Enum: enum}
	case isEntity:
		return TypeDef{Kind: TypeDefEntity, Entity: entity}
	case isEnum:
		return TypeDef{Kind: TypeDefEnum, Enum: enum}
	default:
		return TypeDef{Kind: TypeDefNone}
	}
}

// IsEntity reports if the scalar references an entity of the schema.
func (s *Schema) IsEntity(sc Scalar) bool {
	return sc.IsCustom() && s.Lookup(sc.Name).Kind == TypeDefEntity
}

// IsEnum reports if the scalar references an enum of the schema.
func (s *Schema) IsEnum(sc Scalar) bool {
	return sc.IsCustom() && s.Lookup(sc.Name).Kind == TypeDefEnum
}

// NewEntity returns an entity with the given fields. Names of the entity and
// its fields must be valid storage identifiers and field names unique.
func NewEntity(name string, fields ...*Field) (*Entity, error) {
	e := &Entity{
		Name:   name,
		Fields: fields,
		fields: make(map[string]*Field, len(fields)),
	}
	var dups []string
	invalid := invalidIdentifiers(name)
	for _, f := range fields {
		invalid = append(invalid, invalidIdentifiers(f.Name)...)
		if _, ok := e.fields[f.Name]; ok {
			dups = appendUnique(dups, f.Name)
			continue
		}
		e.fields[f.Name] = f
	}
	if len(dups) > 0 {
		return nil, &indexschema.Error{
			Code:    indexschema.CodeDuplicateField,
			Message: "found fields with duplicate names on entity " + name,
			Names:   dups,
		}
	}
	if len(invalid) > 0 {
		return nil, invalidIdentifierError("entity and field names", invalid)
	}
	return e, nil
}

// Field returns the field with the given name.
func (e *Entity) Field(name string) (*Field, bool) {
	f, ok := e.fields[name]
	return f, ok
}

// NewField returns a field of the given name and type.
func NewField(name string, t FieldType) *Field {
	return &Field{Name: name, Type: t}
}

// NewEnum returns an enum with the given values. Names and values must be
// valid storage identifiers and values unique.
func NewEnum(name string, values ...string) (*Enum, error) {
	seen := make(map[string]struct{}, len(values))
	var dups []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			dups = appendUnique(dups, v)
			continue
		}
		seen[v] = struct{}{}
	}
	if len(dups) > 0 {
		return nil, &indexschema.Error{
			Code:    indexschema.CodeDuplicateEnumValue,
			Message: "schema enum " + name + " has duplicate values",
			Names:   dups,
		}
	}
	if invalid := invalidIdentifiers(append([]string{name}, values...)...); len(invalid) > 0 {
		return nil, invalidIdentifierError("enum names and values", invalid)
	}
	return &Enum{Name: name, Values: values}, nil
}

// Default returns the designated default variant, the first declared value.
// It returns false for enums without values.
func (e *Enum) Default() (string, bool) {
	if len(e.Values) == 0 {
		return "", false
	}
	return e.Values[0], true
}

func appendUnique(s []string, v string) []string {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}
