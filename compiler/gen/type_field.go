package gen

import (
	"github.com/go-openapi/inflect"

	"github.com/syssam/indexschema/schema"
)

// Field holds the projections of an entity field used by the templates.
type Field struct {
	def *schema.Field
	app AppType
	// Name is the field name as declared in the schema.
	Name string `json:"name"`
	// Display is the canonical display string of the field type.
	Display string `json:"display"`
	// StorageType is the column type, empty for derived fields.
	StorageType string `json:"storage_type,omitempty"`
	// Column is the column type split from its nullability.
	Column *Column `json:"column,omitempty"`
	// AppType is the rendered application type.
	AppType string `json:"app_type"`
	// Default is the default literal in the binding language.
	Default string `json:"default"`
	// DefaultTS is the default literal in TypeScript.
	DefaultTS string `json:"default_ts"`
	// Optional reports if the outermost level accepts null.
	Optional bool `json:"optional"`
	// Array reports if the field holds a list.
	Array bool `json:"array"`
	// Derived reports if the field is a virtual back-reference.
	Derived bool `json:"derived"`
	// StorageKey is the column name of stored fields.
	StorageKey string `json:"storage_key"`
	// Enum holds the enum name of enum-typed fields.
	Enum string `json:"enum,omitempty"`
	// Edge is the relation realized by the field, if any.
	Edge *Edge `json:"edge,omitempty"`
}

func newField(c *Config, s *schema.Schema, e *schema.Entity, f *schema.Field) (*Field, error) {
	app, err := AppTypeOf(f.Type, s)
	if err != nil {
		return nil, err
	}
	ut := f.Type.UserDefined()
	tf := &Field{
		def:        f,
		app:        app,
		Name:       f.Name,
		Display:    f.Type.String(),
		AppType:    app.String(),
		Default:    c.Placeholders.Default(app),
		DefaultTS:  c.Placeholders.DefaultTS(app),
		Optional:   ut.IsOptional(),
		Array:      ut.IsArray(),
		Derived:    f.Type.IsDerived(),
		StorageKey: StorageKey(f, s),
	}
	if s.IsEnum(ut.Underlying()) {
		tf.Enum = ut.Underlying().Name
	}
	if !tf.Derived {
		col, err := ColumnOf(f.Type, s)
		if err != nil {
			return nil, err
		}
		tf.Column = &col
		tf.StorageType = col.String()
	}
	return tf, nil
}

// App returns the application type of the field.
func (f Field) App() AppType { return f.app }

// Def returns the schema field.
func (f Field) Def() *schema.Field { return f.def }

// StructField returns the Go struct field name.
func (f Field) StructField() string {
	return inflect.Camelize(f.Name)
}

// IsEdge reports if the field references another entity.
func (f Field) IsEdge() bool { return f.Edge != nil }

// IsEnum reports if the field holds enum values.
func (f Field) IsEnum() bool { return f.Enum != "" }
