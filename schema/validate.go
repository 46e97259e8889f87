package schema

import (
	"fmt"

	"github.com/syssam/indexschema"
)

// pass is one whole-schema check. It returns every offender it finds.
type pass func(*Schema) error

// passes run in order. The first failing pass stops validation.
var passes = []pass{
	checkReservedEnumNames,
	checkReservedWords,
	checkNamespaceCollisions,
	checkReferences,
	checkFieldShapes,
}

// Validate checks the schema and returns it marked as validated. It stops at
// the first failing check and reports all offenders found by that check.
// Validating an already validated schema returns it unchanged without
// running the checks again.
func (s *Schema) Validate() (*Schema, error) {
	if s.validated {
		return s, nil
	}
	for _, p := range passes {
		if err := p(s); err != nil {
			return nil, err
		}
	}
	s.validated = true
	return s, nil
}

func checkReservedEnumNames(s *Schema) error {
	var names []string
	for _, e := range s.Enums {
		if IsReservedEnumName(e.Name) {
			names = appendUnique(names, e.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return indexschema.NewError(
		indexschema.CodeReservedEnumName,
		"schema contains the following enums that are used internally, rename them",
		names...,
	)
}

func checkReservedWords(s *Schema) error {
	var words []string
	check := func(name string) {
		if IsReservedWord(name) {
			words = appendUnique(words, name)
		}
	}
	for _, e := range s.Enums {
		check(e.Name)
		for _, v := range e.Values {
			check(v)
		}
	}
	for _, e := range s.Entities {
		check(e.Name)
		for _, f := range e.Fields {
			check(f.Name)
		}
	}
	if len(words) == 0 {
		return nil
	}
	return indexschema.NewError(
		indexschema.CodeReservedWord,
		"schema contains the following reserved keywords",
		words...,
	)
}

func checkNamespaceCollisions(s *Schema) error {
	var names []string
	for _, e := range s.Enums {
		if _, ok := s.entities[e.Name]; ok {
			names = appendUnique(names, e.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return indexschema.NewError(
		indexschema.CodeEnumEntityCollision,
		"schema contains names used by both an enum and an entity",
		names...,
	)
}

func checkReferences(s *Schema) error {
	var (
		undefined, toEnum []string
		errs             []error
	)
	for _, e := range s.Entities {
		for _, f := range e.Fields {
			switch t := f.Type.(type) {
			case *RegularField:
				sc := t.Type.Underlying()
				if sc.IsCustom() && s.Lookup(sc.Name).Kind == TypeDefNone {
					undefined = appendUnique(undefined, sc.Name)
				}
			case *DerivedFromField:
				td := s.Lookup(t.Entity)
				switch td.Kind {
				case TypeDefNone:
					undefined = appendUnique(undefined, t.Entity)
				case TypeDefEnum:
					toEnum = appendUnique(toEnum, fieldRef(e, f))
				default:
					if err := checkRelationalKey(e, f, t, td.Entity); err != nil {
						errs = append(errs, err)
					}
				}
			}
		}
	}
	if len(undefined) > 0 {
		errs = append([]error{indexschema.NewError(
			indexschema.CodeUndefinedType,
			"failed to find the following types referenced in the schema",
			undefined...,
		)}, errs...)
	}
	if len(toEnum) > 0 {
		errs = append(errs, indexschema.NewError(
			indexschema.CodeDerivedFromEnum,
			"@derivedFrom may only reference entities, the following fields reference an enum",
			toEnum...,
		))
	}
	return indexschema.NewAggregateError(errs...)
}

// checkRelationalKey checks that the field named by a derived field on the
// target entity can serve as its relational key: an ID or String, or a
// reference back to the declaring entity.
func checkRelationalKey(e *Entity, f *Field, d *DerivedFromField, target *Entity) error {
	key, ok := target.Field(d.Field)
	if !ok {
		return indexschema.NewError(
			indexschema.CodeDerivedFieldMissing,
			fmt.Sprintf("derived field %s references field %q that does not exist on entity %s", fieldRef(e, f), d.Field, target.Name),
			fieldRef(e, f),
		)
	}
	if rt, ok := key.Type.(*RegularField); ok {
		switch sc := rt.Type.Underlying(); sc.Kind {
		case ScalarID, ScalarString:
			return nil
		case ScalarCustom:
			if sc.Name == e.Name {
				return nil
			}
		}
	}
	return indexschema.NewError(
		indexschema.CodeIllegalRelationalKey,
		fmt.Sprintf("derived field %s references %s of type %s, expected ID, String or a reference to %s", fieldRef(e, f), fieldRef(target, key), key.Type, e.Name),
		fieldRef(e, f),
	)
}

// shapeErrors collects field references per illegal shape.
type shapeErrors struct {
	nullableInList, nullableNested, entityArray, nestedNonNull []string
}

func checkFieldShapes(s *Schema) error {
	var se shapeErrors
	for _, e := range s.Entities {
		for _, f := range e.Fields {
			rt, ok := f.Type.(*RegularField)
			if !ok {
				continue
			}
			se.check(s, fieldRef(e, f), rt.Type)
		}
	}
	var errs []error
	add := func(code indexschema.Code, msg string, names []string) {
		if len(names) > 0 {
			errs = append(errs, indexschema.NewError(code, msg, names...))
		}
	}
	add(indexschema.CodeNullableInList, "nullable scalars inside lists are unsupported, use [T!] instead of [T]", se.nullableInList)
	add(indexschema.CodeNullableNestedList, "nullable lists inside lists are unsupported, use [[T!]!] instead of [[T!]]", se.nullableNested)
	add(indexschema.CodeEntityArray, "arrays of entities are unsupported, use a derived field instead", se.entityArray)
	add(indexschema.CodeNestedNonNull, "nested non-null types are illegal", se.nestedNonNull)
	return indexschema.NewAggregateError(errs...)
}

func (se *shapeErrors) check(s *Schema, ref string, t UserDefinedFieldType) {
	switch t := t.(type) {
	case *NonNull:
		if _, ok := t.Elem.(*NonNull); ok {
			se.nestedNonNull = appendUnique(se.nestedNonNull, ref)
			return
		}
		se.check(s, ref, t.Elem)
	case *List:
		switch elem := t.Elem.(type) {
		case *Single:
			se.nullableInList = appendUnique(se.nullableInList, ref)
		case *List:
			se.nullableNested = appendUnique(se.nullableNested, ref)
		case *NonNull:
			if single, ok := elem.Elem.(*Single); ok && s.IsEntity(single.Scalar) {
				se.entityArray = appendUnique(se.entityArray, ref)
				return
			}
			se.check(s, ref, elem)
		}
	}
}
