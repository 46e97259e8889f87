package load_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/compiler/load"
)

func TestFieldTypeFromABI(t *testing.T) {
	tests := []struct {
		abi  string
		want string
	}{
		{"uint256", "BigInt!"},
		{"int8", "BigInt!"},
		{"bool", "Boolean!"},
		{"address", "String!"},
		{"bytes", "String!"},
		{"bytes32", "String!"},
		{"string", "String!"},
		{"uint256[]", "[BigInt!]!"},
		{"address[2]", "[String!]!"},
		{"bool[][3]", "[[Boolean!]!]!"},
	}
	for _, tt := range tests {
		t.Run(tt.abi, func(t *testing.T) {
			typ, err := abi.NewType(tt.abi, "", nil)
			require.NoError(t, err)
			got, err := load.FieldTypeFromABI(typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFieldTypeFromABITuple(t *testing.T) {
	typ, err := abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "amount", Type: "uint256"},
		{Name: "owner", Type: "address"},
	})
	require.NoError(t, err)
	_, err = load.FieldTypeFromABI(typ)
	require.Error(t, err)
	assert.Equal(t, indexschema.CodeUnsupportedABIType, indexschema.CodeOf(err))

	typ, err = abi.NewType("tuple[]", "", []abi.ArgumentMarshaling{{Name: "amount", Type: "uint256"}})
	require.NoError(t, err)
	_, err = load.FieldTypeFromABI(typ)
	require.Error(t, err)
	assert.Equal(t, indexschema.CodeUnsupportedABIType, indexschema.CodeOf(err))
}
