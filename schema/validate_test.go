package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/schema"
)

func newSchema(t *testing.T, entities []*schema.Entity, enums ...*schema.Enum) *schema.Schema {
	t.Helper()
	s, err := schema.New(entities, enums)
	require.NoError(t, err)
	return s
}

func userPostSchema(t *testing.T) *schema.Schema {
	t.Helper()
	return newSchema(t, []*schema.Entity{
		entity(t, "User",
			field("id", nonNull("ID")),
			field("name", nonNull("String")),
			derived("posts", "Post", "author"),
		),
		entity(t, "Post",
			field("id", nonNull("ID")),
			field("author", nonNull("User")),
		),
	})
}

func TestValidate(t *testing.T) {
	s := userPostSchema(t)
	assert.False(t, s.Validated())
	v, err := s.Validate()
	require.NoError(t, err)
	assert.Same(t, s, v)
	assert.True(t, v.Validated())
}

func TestValidateIdempotent(t *testing.T) {
	s := userPostSchema(t)
	v1, err := s.Validate()
	require.NoError(t, err)
	v2, err := v1.Validate()
	require.NoError(t, err)
	assert.Same(t, v1, v2)
	assert.Equal(t, v1.Entities, v2.Entities)
}

func TestValidateClone(t *testing.T) {
	s, err := userPostSchema(t).Validate()
	require.NoError(t, err)
	s.Enums = append(s.Enums, &schema.Enum{Name: "Empty"})
	_, err = s.Validate()
	require.NoError(t, err, "validated schemas are not checked again")
	s.Enums = s.Enums[:0]

	c := s.Clone()
	assert.False(t, c.Validated())
	require.Len(t, c.Entities, 2)
	assert.NotSame(t, s.Entities[1], c.Entities[1])
	post, ok := c.Entity("Post")
	require.True(t, ok)
	assert.Same(t, c.Entities[1], post)
	author, ok := post.Field("author")
	require.True(t, ok)
	assert.Same(t, post.Fields[1], author)

	post.Fields = append(post.Fields, field("editor", nonNull("Ghost")))
	_, err = c.Validate()
	require.Error(t, err)
	assert.False(t, c.Validated())
	assert.Len(t, s.Entities[1].Fields, 2)
	assert.True(t, s.Validated())

	v, err := s.Clone().Validate()
	require.NoError(t, err)
	assert.Equal(t, s.Entities, v.Entities)
}

func TestValidateReserved(t *testing.T) {
	t.Run("EnumName", func(t *testing.T) {
		s := newSchema(t, nil, enum(t, "EventType", "A"), enum(t, "EntityType", "B"))
		_, err := s.Validate()
		require.Error(t, err)
		assert.Equal(t, []indexschema.Code{indexschema.CodeReservedEnumName}, indexschema.Codes(err))
		assert.Contains(t, err.Error(), "EventType, EntityType")
	})

	t.Run("Words", func(t *testing.T) {
		s := newSchema(t,
			[]*schema.Entity{
				entity(t, "match", field("id", nonNull("ID")), field("with", nonNull("String"))),
			},
			enum(t, "import", "break", "RED"),
		)
		_, err := s.Validate()
		require.Error(t, err)
		var e *indexschema.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, indexschema.CodeReservedWord, e.Code)
		assert.Equal(t, []string{"import", "break", "match", "with"}, e.Names)
		assert.True(t, indexschema.IsValidationError(err))
	})

	t.Run("UnrelatedNamesPass", func(t *testing.T) {
		s := newSchema(t, []*schema.Entity{
			entity(t, "Token", field("id", nonNull("ID")), field("owner", nonNull("String"))),
		})
		_, err := s.Validate()
		require.NoError(t, err)
	})
}

func TestValidateFailFast(t *testing.T) {
	// Reserved enum names, reserved words and an undefined reference; only
	// the first failing check is reported.
	s := newSchema(t,
		[]*schema.Entity{
			entity(t, "Token", field("id", nonNull("ID")), field("with", nonNull("Missing"))),
		},
		enum(t, "ContractType", "A"),
	)
	_, err := s.Validate()
	require.Error(t, err)
	assert.Equal(t, []indexschema.Code{indexschema.CodeReservedEnumName}, indexschema.Codes(err))
	assert.False(t, s.Validated())
}

func TestValidateCollision(t *testing.T) {
	s := newSchema(t,
		[]*schema.Entity{entity(t, "Color", field("id", nonNull("ID")))},
		enum(t, "Color", "RED"),
	)
	_, err := s.Validate()
	require.Error(t, err)
	assert.Equal(t, indexschema.CodeEnumEntityCollision, indexschema.CodeOf(err))
	assert.Contains(t, err.Error(), "Color")
}

func TestValidateReferences(t *testing.T) {
	tests := []struct {
		name     string
		entities func(t *testing.T) []*schema.Entity
		enums    []string
		codes    []indexschema.Code
	}{
		{
			name: "UndefinedScalar",
			entities: func(t *testing.T) []*schema.Entity {
				return []*schema.Entity{entity(t, "A", field("id", nonNull("ID")), field("b", nonNull("B")))}
			},
			codes: []indexschema.Code{indexschema.CodeUndefinedType},
		},
		{
			name: "UndefinedDerivedEntity",
			entities: func(t *testing.T) []*schema.Entity {
				return []*schema.Entity{entity(t, "A", field("id", nonNull("ID")), derived("bs", "B", "a"))}
			},
			codes: []indexschema.Code{indexschema.CodeUndefinedType},
		},
		{
			name: "DerivedFromEnum",
			entities: func(t *testing.T) []*schema.Entity {
				return []*schema.Entity{entity(t, "A", field("id", nonNull("ID")), derived("bs", "Color", "a"))}
			},
			enums: []string{"Color"},
			codes: []indexschema.Code{indexschema.CodeDerivedFromEnum},
		},
		{
			name: "DerivedFieldMissing",
			entities: func(t *testing.T) []*schema.Entity {
				return []*schema.Entity{
					entity(t, "A", field("id", nonNull("ID")), derived("bs", "B", "a")),
					entity(t, "B", field("id", nonNull("ID"))),
				}
			},
			codes: []indexschema.Code{indexschema.CodeDerivedFieldMissing},
		},
		{
			name: "IllegalRelationalKey",
			entities: func(t *testing.T) []*schema.Entity {
				return []*schema.Entity{
					entity(t, "A", field("id", nonNull("ID")), derived("bs", "B", "a")),
					entity(t, "B", field("id", nonNull("ID")), field("a", nonNull("Int"))),
				}
			},
			codes: []indexschema.Code{indexschema.CodeIllegalRelationalKey},
		},
		{
			name: "KeyReferencesAnotherEntity",
			entities: func(t *testing.T) []*schema.Entity {
				return []*schema.Entity{
					entity(t, "A", field("id", nonNull("ID")), derived("bs", "B", "c")),
					entity(t, "B", field("id", nonNull("ID")), field("c", nonNull("C"))),
					entity(t, "C", field("id", nonNull("ID"))),
				}
			},
			codes: []indexschema.Code{indexschema.CodeIllegalRelationalKey},
		},
		{
			name: "CollectsWithinPass",
			entities: func(t *testing.T) []*schema.Entity {
				return []*schema.Entity{
					entity(t, "A", field("id", nonNull("ID")), field("x", nonNull("X")), derived("bs", "B", "a")),
					entity(t, "B", field("id", nonNull("ID"))),
				}
			},
			codes: []indexschema.Code{indexschema.CodeUndefinedType, indexschema.CodeDerivedFieldMissing},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var enums []*schema.Enum
			for _, name := range tt.enums {
				enums = append(enums, enum(t, name, "RED"))
			}
			_, err := newSchema(t, tt.entities(t), enums...).Validate()
			require.Error(t, err)
			assert.Equal(t, tt.codes, indexschema.Codes(err))
		})
	}
}

func TestValidateRelationalKeyTypes(t *testing.T) {
	for _, key := range []schema.UserDefinedFieldType{nonNull("String"), nonNull("ID"), schema.Named("A"), nonNull("A")} {
		t.Run(key.String(), func(t *testing.T) {
			s := newSchema(t, []*schema.Entity{
				entity(t, "A", field("id", nonNull("ID")), derived("bs", "B", "a")),
				entity(t, "B", field("id", nonNull("ID")), field("a", key)),
			})
			_, err := s.Validate()
			require.NoError(t, err)
		})
	}
}

func TestValidateFieldShapes(t *testing.T) {
	intT := schema.Named("Int")
	tests := []struct {
		name string
		typ  schema.UserDefinedFieldType
		code indexschema.Code
	}{
		{"NullableInList", schema.NonNullOf(schema.ListOf(intT)), indexschema.CodeNullableInList},
		{"NullableInNullableList", schema.ListOf(intT), indexschema.CodeNullableInList},
		{"NullableNestedList", schema.NonNullOf(schema.ListOf(schema.ListOf(schema.NonNullOf(intT)))), indexschema.CodeNullableNestedList},
		{"EntityArray", schema.NonNullOf(schema.ListOf(nonNull("B"))), indexschema.CodeEntityArray},
		{"NestedEntityArray", schema.NonNullOf(schema.ListOf(schema.NonNullOf(schema.ListOf(nonNull("B"))))), indexschema.CodeEntityArray},
		{"NestedNonNull", schema.NonNullOf(schema.NonNullOf(intT)), indexschema.CodeNestedNonNull},
		{"DeepNullableInList", schema.NonNullOf(schema.ListOf(schema.NonNullOf(schema.ListOf(intT)))), indexschema.CodeNullableInList},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSchema(t, []*schema.Entity{
				entity(t, "A", field("id", nonNull("ID")), field("f", tt.typ)),
				entity(t, "B", field("id", nonNull("ID"))),
			})
			_, err := s.Validate()
			require.Error(t, err)
			assert.Equal(t, []indexschema.Code{tt.code}, indexschema.Codes(err))
			assert.Contains(t, err.Error(), "A.f")
		})
	}
}

func TestValidateLegalShapes(t *testing.T) {
	intT := schema.Named("Int")
	for _, typ := range []schema.UserDefinedFieldType{
		intT,
		schema.NonNullOf(intT),
		schema.ListOf(schema.NonNullOf(intT)),
		schema.NonNullOf(schema.ListOf(schema.NonNullOf(intT))),
		schema.NonNullOf(schema.ListOf(schema.NonNullOf(schema.ListOf(schema.NonNullOf(intT))))),
		schema.NonNullOf(schema.ListOf(nonNull("Color"))),
		schema.Named("B"),
	} {
		t.Run(typ.String(), func(t *testing.T) {
			s := newSchema(t,
				[]*schema.Entity{
					entity(t, "A", field("id", nonNull("ID")), field("f", typ)),
					entity(t, "B", field("id", nonNull("ID"))),
				},
				enum(t, "Color", "RED"),
			)
			_, err := s.Validate()
			require.NoError(t, err)
		})
	}
}

func TestValidateCollectsShapeOffenders(t *testing.T) {
	s := newSchema(t, []*schema.Entity{
		entity(t, "A",
			field("id", nonNull("ID")),
			field("x", schema.ListOf(schema.Named("Int"))),
			field("y", schema.NonNullOf(schema.ListOf(schema.Named("String")))),
			field("z", schema.NonNullOf(schema.NonNullOf(schema.Named("Int")))),
		),
	})
	_, err := s.Validate()
	require.Error(t, err)
	var agg *indexschema.AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Errors, 2)
	var e *indexschema.Error
	require.ErrorAs(t, agg.Errors[0], &e)
	assert.Equal(t, []string{"A.x", "A.y"}, e.Names)
	assert.Equal(t, []indexschema.Code{indexschema.CodeNullableInList, indexschema.CodeNestedNonNull}, indexschema.Codes(err))
}
