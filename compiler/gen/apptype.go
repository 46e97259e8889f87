package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/syssam/indexschema/schema"
)

// AppType is the application data-binding type of a field. It is
// implemented by Primitive, *EnumVariant, *Array, *Optional and *Tuple.
type AppType interface {
	// String renders the type in the binding language syntax.
	String() string
	appType()
}

// Primitive is an atomic application type.
type Primitive uint8

// Primitive application types.
const (
	_ Primitive = iota
	AppID
	AppInt
	AppFloat
	AppBigInt
	AppString
	AppBool
	AppAddress
)

type (
	// EnumVariant is a value of the named schema enum.
	EnumVariant struct {
		Enum string
	}

	// Array is a sequence of Elem.
	Array struct {
		Elem AppType
	}

	// Optional is an Elem that may be absent.
	Optional struct {
		Elem AppType
	}

	// Tuple is a fixed-size composite of Elems.
	Tuple struct {
		Elems []AppType
	}
)

func (Primitive) appType()    {}
func (*EnumVariant) appType() {}
func (*Array) appType()       {}
func (*Optional) appType()    {}
func (*Tuple) appType()       {}

func (p Primitive) String() string {
	switch p {
	case AppID:
		return "id"
	case AppInt:
		return "int"
	case AppFloat:
		return "float"
	case AppBigInt:
		return "Ethers.BigInt.t"
	case AppString:
		return "string"
	case AppBool:
		return "bool"
	case AppAddress:
		return "Ethers.ethAddress"
	default:
		return "unknown"
	}
}

func (e *EnumVariant) String() string { return "Enums." + lowerFirst(e.Enum) }
func (a *Array) String() string       { return "array<" + a.Elem.String() + ">" }
func (o *Optional) String() string    { return "option<" + o.Elem.String() + ">" }

func (t *Tuple) String() string {
	elems := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.String()
	}
	return "(" + strings.Join(elems, ", ") + ")"
}

// AppTypeOf returns the application type of a field. Nullability is derived
// bottom-up: every level not wrapped in a non-null type becomes optional.
// Derived fields project to the ids of the related entities.
func AppTypeOf(ft schema.FieldType, s *schema.Schema) (AppType, error) {
	switch ft := ft.(type) {
	case *schema.RegularField:
		return appType(ft.Type, s)
	case *schema.DerivedFromField:
		return &Array{Elem: AppID}, nil
	default:
		return nil, invariantErrorf("unexpected field type %T", ft)
	}
}

func appType(t schema.UserDefinedFieldType, s *schema.Schema) (AppType, error) {
	switch t := t.(type) {
	case *schema.Single:
		sc, err := scalarAppType(t.Scalar, s)
		if err != nil {
			return nil, err
		}
		return &Optional{Elem: sc}, nil
	case *schema.List:
		elem, err := appType(t.Elem, s)
		if err != nil {
			return nil, err
		}
		return &Optional{Elem: &Array{Elem: elem}}, nil
	case *schema.NonNull:
		elem, err := appType(t.Elem, s)
		if err != nil {
			return nil, err
		}
		if o, ok := elem.(*Optional); ok {
			return o.Elem, nil
		}
		return elem, nil
	default:
		return nil, invariantErrorf("unexpected type %T", t)
	}
}

func scalarAppType(sc schema.Scalar, s *schema.Schema) (AppType, error) {
	switch sc.Kind {
	case schema.ScalarID:
		return AppID, nil
	case schema.ScalarString, schema.ScalarBytes:
		return AppString, nil
	case schema.ScalarInt:
		return AppInt, nil
	case schema.ScalarFloat:
		return AppFloat, nil
	case schema.ScalarBigInt:
		return AppBigInt, nil
	case schema.ScalarBoolean:
		return AppBool, nil
	case schema.ScalarCustom:
		switch td := s.Lookup(sc.Name); td.Kind {
		case schema.TypeDefEntity:
			return AppID, nil
		case schema.TypeDefEnum:
			return &EnumVariant{Enum: td.Enum.Name}, nil
		default:
			return nil, unresolvedError(sc)
		}
	default:
		return nil, invariantErrorf("unknown scalar kind %s", sc.Kind)
	}
}

// lowerFirst lowercases the first letter of s.
func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
