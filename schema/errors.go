package schema

import (
	"fmt"

	"github.com/syssam/indexschema"
)

func duplicatesError(msg string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	return indexschema.NewError(indexschema.CodeDuplicateType, msg, names...)
}

func invalidIdentifierError(what string, names []string) error {
	return indexschema.NewError(
		indexschema.CodeInvalidIdentifier,
		fmt.Sprintf("%s must start with a letter or underscore, contain only letters, digits and underscores, and be at most %d characters long", what, MaxIdentifierLen),
		names...,
	)
}

func derivedShapeError(t UserDefinedFieldType, field string) error {
	return indexschema.Errorf(
		indexschema.CodeDerivedFromShape,
		"field type %s of a derived field must be a non-null list of non-null entities, e.g. [<MY_ENTITY>!]! @derivedFrom(field: %q)",
		t, field,
	)
}

// fieldRef names a field as Entity.field in error listings.
func fieldRef(e *Entity, f *Field) string {
	return e.Name + "." + f.Name
}
