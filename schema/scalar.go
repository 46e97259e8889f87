package schema

//go:generate go tool stringer -type=ScalarKind -trimprefix=Scalar -output=scalarkind_string.go

// ScalarKind is the kind of an atomic field value.
type ScalarKind uint8

const (
	_ ScalarKind = iota // zero value is invalid

	ScalarID
	ScalarString
	ScalarInt
	ScalarFloat
	ScalarBoolean
	ScalarBigInt
	ScalarBytes
	// ScalarCustom references an entity or an enum by name.
	ScalarCustom
)

// builtinScalars maps the scalar names of the schema language to their kind.
var builtinScalars = map[string]ScalarKind{
	"ID":      ScalarID,
	"String":  ScalarString,
	"Int":     ScalarInt,
	"Float":   ScalarFloat,
	"Boolean": ScalarBoolean,
	"BigInt":  ScalarBigInt,
	"Bytes":   ScalarBytes,
}

// IsBuiltin reports if the kind is one of the built-in scalars.
func (k ScalarKind) IsBuiltin() bool {
	return k >= ScalarID && k < ScalarCustom
}

// IsNumeric reports if the kind holds numbers.
func (k ScalarKind) IsNumeric() bool {
	switch k {
	case ScalarInt, ScalarFloat, ScalarBigInt:
		return true
	default:
		return false
	}
}

// Scalar is a built-in scalar or a named reference to an entity or enum.
type Scalar struct {
	Kind ScalarKind `json:"kind"`
	// Name holds the referenced type name of custom scalars.
	Name string `json:"name,omitempty"`
}

// NewScalar returns the scalar denoted by name. Names that are not built-in
// scalars are kept verbatim as custom references.
func NewScalar(name string) Scalar {
	if k, ok := builtinScalars[name]; ok {
		return Scalar{Kind: k}
	}
	return Scalar{Kind: ScalarCustom, Name: name}
}

// Builtin returns the built-in scalar of the given kind.
func Builtin(k ScalarKind) Scalar {
	return Scalar{Kind: k}
}

// Custom returns a scalar referencing the named entity or enum.
func Custom(name string) Scalar {
	return Scalar{Kind: ScalarCustom, Name: name}
}

// IsCustom reports if the scalar references a named type.
func (s Scalar) IsCustom() bool {
	return s.Kind == ScalarCustom
}

// String returns the scalar as written in the schema.
func (s Scalar) String() string {
	if s.Kind == ScalarCustom {
		return s.Name
	}
	return s.Kind.String()
}
