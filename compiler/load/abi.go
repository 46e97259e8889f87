package load

import (
	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/schema"
)

// FieldTypeFromABI returns the field type that stores values of an event
// parameter of the given ABI type. Tuples are not supported.
func FieldTypeFromABI(t abi.Type) (schema.UserDefinedFieldType, error) {
	switch t.T {
	case abi.IntTy, abi.UintTy:
		return schema.NonNullOf(schema.Named("BigInt")), nil
	case abi.BoolTy:
		return schema.NonNullOf(schema.Named("Boolean")), nil
	case abi.AddressTy, abi.BytesTy, abi.FixedBytesTy, abi.HashTy, abi.StringTy:
		return schema.NonNullOf(schema.Named("String")), nil
	case abi.SliceTy, abi.ArrayTy:
		if t.Elem == nil {
			return nil, indexschema.Errorf(indexschema.CodeUnsupportedABIType, "abi type %s has no element type", t)
		}
		elem, err := FieldTypeFromABI(*t.Elem)
		if err != nil {
			return nil, err
		}
		return schema.NonNullOf(schema.ListOf(elem)), nil
	case abi.TupleTy:
		return nil, indexschema.Errorf(indexschema.CodeUnsupportedABIType, "tuple abi type %s is not supported", t)
	default:
		return nil, indexschema.Errorf(indexschema.CodeUnsupportedABIType, "abi type %s is not supported", t)
	}
}
