package schema

import "fmt"

// UserDefinedFieldType is the recursive type algebra of regular fields.
// It is implemented only by *Single, *List and *NonNull.
type UserDefinedFieldType interface {
	fmt.Stringer
	// Underlying returns the scalar at the bottom of the type.
	Underlying() Scalar
	// IsOptional reports if the outermost level accepts null.
	IsOptional() bool
	// IsArray reports if the type is a list, with or without a non-null wrapper.
	IsArray() bool
	userDefined()
}

type (
	// Single is a bare, nullable scalar.
	Single struct {
		Scalar Scalar
	}

	// List is a nullable list of Elem.
	List struct {
		Elem UserDefinedFieldType
	}

	// NonNull strips the nullability of Elem.
	NonNull struct {
		Elem UserDefinedFieldType
	}
)

// Named returns a nullable single field type of the named scalar.
func Named(name string) *Single {
	return &Single{Scalar: NewScalar(name)}
}

// ListOf returns a nullable list of elem.
func ListOf(elem UserDefinedFieldType) *List {
	return &List{Elem: elem}
}

// NonNullOf returns elem with its nullability stripped. A non-null elem
// is returned as is.
func NonNullOf(elem UserDefinedFieldType) *NonNull {
	if nn, ok := elem.(*NonNull); ok {
		return nn
	}
	return &NonNull{Elem: elem}
}

func (*Single) userDefined()  {}
func (*List) userDefined()    {}
func (*NonNull) userDefined() {}

// Underlying returns the scalar.
func (t *Single) Underlying() Scalar { return t.Scalar }

// Underlying returns the scalar of the list element.
func (t *List) Underlying() Scalar { return t.Elem.Underlying() }

// Underlying returns the scalar of the wrapped type.
func (t *NonNull) Underlying() Scalar { return t.Elem.Underlying() }

// IsOptional always returns true.
func (*Single) IsOptional() bool { return true }

// IsOptional always returns true.
func (*List) IsOptional() bool { return true }

// IsOptional always returns false.
func (*NonNull) IsOptional() bool { return false }

// IsArray always returns false.
func (*Single) IsArray() bool { return false }

// IsArray always returns true.
func (*List) IsArray() bool { return true }

// IsArray reports if the wrapped type is a list.
func (t *NonNull) IsArray() bool { return t.Elem.IsArray() }

func (t *Single) String() string  { return t.Scalar.String() }
func (t *List) String() string    { return "[" + t.Elem.String() + "]" }
func (t *NonNull) String() string { return t.Elem.String() + "!" }

// EqualTypes reports if a and b are structurally equal.
func EqualTypes(a, b UserDefinedFieldType) bool {
	switch a := a.(type) {
	case *Single:
		b, ok := b.(*Single)
		return ok && a.Scalar == b.Scalar
	case *List:
		b, ok := b.(*List)
		return ok && EqualTypes(a.Elem, b.Elem)
	case *NonNull:
		b, ok := b.(*NonNull)
		return ok && EqualTypes(a.Elem, b.Elem)
	default:
		return a == nil && b == nil
	}
}

// derivedEntity returns the entity name of a type shaped [Entity!]!, the only
// legal surface form of a derived field.
func derivedEntity(t UserDefinedFieldType) (string, bool) {
	outer, ok := t.(*NonNull)
	if !ok {
		return "", false
	}
	list, ok := outer.Elem.(*List)
	if !ok {
		return "", false
	}
	inner, ok := list.Elem.(*NonNull)
	if !ok {
		return "", false
	}
	single, ok := inner.Elem.(*Single)
	if !ok || !single.Scalar.IsCustom() {
		return "", false
	}
	return single.Scalar.Name, true
}

// FieldType is the type of an entity field. It is implemented only by
// *RegularField and *DerivedFromField.
type FieldType interface {
	fmt.Stringer
	// UserDefined returns the user defined type the field is declared with.
	UserDefined() UserDefinedFieldType
	// IsDerived reports if the field is a virtual back-reference.
	IsDerived() bool
	fieldType()
}

type (
	// RegularField is a stored field.
	RegularField struct {
		Type UserDefinedFieldType
	}

	// DerivedFromField is a virtual, read-only back-reference to the
	// entities whose Field points at the declaring entity. It is never
	// stored.
	DerivedFromField struct {
		// Entity is the name of the related entity.
		Entity string
		// Field is the name of the relational key field on Entity.
		Field string
	}
)

// Regular returns a regular field type.
func Regular(t UserDefinedFieldType) *RegularField {
	return &RegularField{Type: t}
}

// DerivedFrom returns a derived field type of the given entity and field.
func DerivedFrom(entity, field string) *DerivedFromField {
	return &DerivedFromField{Entity: entity, Field: field}
}

// NewFieldType returns the field type for t, derived from the given field
// when derivedFrom is not empty. Derived fields must be shaped [Entity!]!.
func NewFieldType(t UserDefinedFieldType, derivedFrom string) (FieldType, error) {
	if derivedFrom == "" {
		return Regular(t), nil
	}
	entity, ok := derivedEntity(t)
	if !ok {
		return nil, derivedShapeError(t, derivedFrom)
	}
	return DerivedFrom(entity, derivedFrom), nil
}

func (*RegularField) fieldType()     {}
func (*DerivedFromField) fieldType() {}

// UserDefined returns the declared type.
func (f *RegularField) UserDefined() UserDefinedFieldType { return f.Type }

// UserDefined returns [Entity!]!.
func (f *DerivedFromField) UserDefined() UserDefinedFieldType {
	return NonNullOf(ListOf(NonNullOf(&Single{Scalar: Custom(f.Entity)})))
}

// IsDerived always returns false.
func (*RegularField) IsDerived() bool { return false }

// IsDerived always returns true.
func (*DerivedFromField) IsDerived() bool { return true }

func (f *RegularField) String() string { return f.Type.String() }

func (f *DerivedFromField) String() string {
	return fmt.Sprintf("%s @derivedFrom(field: %q)", f.UserDefined(), f.Field)
}
