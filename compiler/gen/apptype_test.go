package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/schema"
)

func TestAppTypeOf(t *testing.T) {
	s := loadSchema(t, testSchema)
	tests := []struct {
		expr      string
		want      string
		def       string
		defaultTS string
	}{
		{"Int", "option<int>", "None", "null"},
		{"Int!", "int", "0", "0"},
		{"Float!", "float", "0.0", "0"},
		{"BigInt!", "Ethers.BigInt.t", "Ethers.BigInt.zero", "0n"},
		{"String!", "string", `"foo"`, `"foo"`},
		{"Bytes!", "string", `"foo"`, `"foo"`},
		{"ID!", "id", `"my_id"`, `"my_id"`},
		{"Boolean!", "bool", "false", "false"},
		{"User!", "id", `"my_id"`, `"my_id"`},
		{"User", "option<id>", "None", "null"},
		{"TestEnum!", "Enums.testEnum", "Enums.testEnumDefault", "testEnumDefault"},
		{"[Int!]!", "array<int>", "[]", "[]"},
		{"[Int!]", "option<array<int>>", "None", "null"},
		{"[Int]", "option<array<option<int>>>", "None", "null"},
		{"[Int]!", "array<option<int>>", "[]", "[]"},
		{"[[Int!]!]!", "array<array<int>>", "[]", "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			at, err := AppTypeOf(regular(t, tt.expr), s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, at.String())
			assert.Equal(t, tt.def, DefaultValue(at))
			assert.Equal(t, tt.defaultTS, DefaultValueTS(at))
		})
	}
}

func TestAppTypeOfNullability(t *testing.T) {
	s := loadSchema(t, testSchema)
	at, err := AppTypeOf(schema.Regular(schema.ListOf(schema.Named("Int"))), s)
	require.NoError(t, err)
	opt, ok := at.(*Optional)
	require.True(t, ok)
	arr, ok := opt.Elem.(*Array)
	require.True(t, ok)
	elem, ok := arr.Elem.(*Optional)
	require.True(t, ok)
	assert.Equal(t, AppInt, elem.Elem)

	// Non-null strips exactly one level of optionality.
	at, err = AppTypeOf(schema.Regular(&schema.NonNull{Elem: schema.NonNullOf(schema.Named("Int"))}), s)
	require.NoError(t, err)
	assert.Equal(t, AppInt, at)
}

func TestOptionalAndOption(t *testing.T) {
	var opt Option = WithPackage("models")
	c := &Config{}
	require.NoError(t, opt(c))
	assert.Equal(t, "models", c.Package)
	var at AppType = &Optional{Elem: AppInt}
	assert.Equal(t, "option<int>", at.String())
	assert.Equal(t, "None", DefaultValue(at))
}

func TestAppTypeOfDerived(t *testing.T) {
	s := loadSchema(t, testSchema)
	at, err := AppTypeOf(schema.DerivedFrom("Post", "author"), s)
	require.NoError(t, err)
	assert.Equal(t, "array<id>", at.String())
}

func TestAppTypeOfUnresolved(t *testing.T) {
	_, err := AppTypeOf(schema.Regular(schema.Named("Missing")), schema.Empty())
	require.Error(t, err)
	assert.Equal(t, indexschema.CodeProjectionInvariant, indexschema.CodeOf(err))
}

func TestTupleDefaults(t *testing.T) {
	tup := &Tuple{Elems: []AppType{AppInt, AppBigInt, &Optional{Elem: AppString}, AppAddress}}
	assert.Equal(t, "(int, Ethers.BigInt.t, option<string>, Ethers.ethAddress)", tup.String())
	assert.Equal(t, "(0, Ethers.BigInt.zero, None, Ethers.Addresses.defaultAddress)", DefaultValue(tup))
	assert.Equal(t, "[0, 0n, null, Addresses.defaultAddress]", DefaultValueTS(tup))
}

func TestPlaceholders(t *testing.T) {
	p := Placeholders{String: "bar", ID: "0x1"}
	assert.Equal(t, `"bar"`, p.Default(AppString))
	assert.Equal(t, `"0x1"`, p.DefaultTS(AppID))
	assert.Equal(t, `("bar", "0x1")`, p.Default(&Tuple{Elems: []AppType{AppString, AppID}}))
}
