package load

import (
	"fmt"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/schema"
)

// ParseField parses the display string of a field type, such as
// `[Int]!` or `[Post!]! @derivedFrom(field: "author")`.
func ParseField(expr string) (schema.FieldType, error) {
	doc, err := ParseSource("field", fmt.Sprintf("type T {\n  f: %s\n}", expr))
	if err != nil {
		return nil, err
	}
	if len(doc.Definitions) != 1 || len(doc.Definitions[0].Fields) != 1 {
		return nil, indexschema.Errorf(indexschema.CodeParse, "expected a single field type, got %q", expr)
	}
	f, err := NewField(doc.Definitions[0].Fields[0])
	if err != nil {
		return nil, err
	}
	return f.Type, nil
}

// ParseFieldType parses the display string of a regular field type.
// It is the inverse of UserDefinedFieldType.String for types built with
// Named, ListOf and NonNullOf. A *NonNull literal wrapping another
// *NonNull displays as "T!!", which is not valid SDL and is rejected.
func ParseFieldType(expr string) (schema.UserDefinedFieldType, error) {
	ft, err := ParseField(expr)
	if err != nil {
		return nil, err
	}
	rt, ok := ft.(*schema.RegularField)
	if !ok {
		return nil, indexschema.Errorf(indexschema.CodeParse, "expected a regular field type, got %q", expr)
	}
	return rt.Type, nil
}
