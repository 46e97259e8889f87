package gen

import (
	"ariga.io/atlas/sql/postgres"

	"github.com/syssam/indexschema/schema"
)

// notNull is the suffix of non-null storage types.
const notNull = " NOT NULL"

// Column is the storage column type of a stored field.
type Column struct {
	// Type is the column type without the nullability constraint.
	Type string `json:"type"`
	// NotNull reports if the column rejects null.
	NotNull bool `json:"not_null"`
}

// String returns the column type as used in a table definition.
func (c Column) String() string {
	if c.NotNull {
		return c.Type + notNull
	}
	return c.Type
}

// StorageType returns the storage type of a field, such as
// "integer[] NOT NULL". Derived fields are not stored and fail.
func StorageType(ft schema.FieldType, s *schema.Schema) (string, error) {
	c, err := ColumnOf(ft, s)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// ColumnOf returns the storage column of a field.
func ColumnOf(ft schema.FieldType, s *schema.Schema) (Column, error) {
	switch ft := ft.(type) {
	case *schema.RegularField:
		t := ft.Type
		nn, ok := t.(*schema.NonNull)
		if !ok {
			typ, err := storageType(t, s)
			return Column{Type: typ}, err
		}
		if _, ok := nn.Elem.(*schema.NonNull); ok {
			return Column{}, invariantErrorf("nested non-null type %s reached storage projection", t)
		}
		typ, err := storageType(nn.Elem, s)
		return Column{Type: typ, NotNull: true}, err
	case *schema.DerivedFromField:
		return Column{}, notStoredError(ft)
	default:
		return Column{}, invariantErrorf("unexpected field type %T", ft)
	}
}

func storageType(t schema.UserDefinedFieldType, s *schema.Schema) (string, error) {
	switch t := t.(type) {
	case *schema.Single:
		return scalarStorageType(t.Scalar, s)
	case *schema.List:
		elem, ok := t.Elem.(*schema.NonNull)
		if !ok {
			return "", invariantErrorf("list type %s with nullable elements reached storage projection", t)
		}
		if _, ok := elem.Elem.(*schema.NonNull); ok {
			return "", invariantErrorf("nested non-null type %s reached storage projection", t)
		}
		typ, err := storageType(elem.Elem, s)
		if err != nil {
			return "", err
		}
		return typ + "[]", nil
	case *schema.NonNull:
		if _, ok := t.Elem.(*schema.NonNull); ok {
			return "", invariantErrorf("nested non-null type %s reached storage projection", t)
		}
		typ, err := storageType(t.Elem, s)
		if err != nil {
			return "", err
		}
		return typ + notNull, nil
	default:
		return "", invariantErrorf("unexpected type %T", t)
	}
}

func scalarStorageType(sc schema.Scalar, s *schema.Schema) (string, error) {
	switch sc.Kind {
	case schema.ScalarID, schema.ScalarString, schema.ScalarBytes:
		return postgres.TypeText, nil
	case schema.ScalarInt:
		return postgres.TypeInteger, nil
	case schema.ScalarFloat, schema.ScalarBigInt:
		return postgres.TypeNumeric, nil
	case schema.ScalarBoolean:
		return postgres.TypeBoolean, nil
	case schema.ScalarCustom:
		switch td := s.Lookup(sc.Name); td.Kind {
		case schema.TypeDefEntity:
			// Entity references store the id of the referenced row.
			return postgres.TypeText, nil
		case schema.TypeDefEnum:
			return td.Enum.Name, nil
		default:
			return "", unresolvedError(sc)
		}
	default:
		return "", invariantErrorf("unknown scalar kind %s", sc.Kind)
	}
}
