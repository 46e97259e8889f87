package gen

import (
	"fmt"
	"slices"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/schema"
)

// The following types and their exported methods are consumed by the
// external templating step.
type (
	// Graph holds the projected entities and enums of a validated schema.
	Graph struct {
		*Config `json:"-" msgpack:"-"`
		// Schema is the validated schema the graph was built from.
		Schema *schema.Schema `json:"-" msgpack:"-"`
		// Nodes are the entities in declaration order.
		Nodes []*Type `json:"nodes"`
		// Enums in declaration order.
		Enums []*Enum `json:"enums"`
		nodes map[string]*Type
	}

	// Type represents one entity of the graph, its relations and the
	// information it holds.
	Type struct {
		// Name holds the entity name.
		Name string `json:"name"`
		// Fields holds all the fields of the entity, stored and derived.
		Fields []*Field `json:"fields"`
		fields map[string]*Field
		// Edges are the forward relations of the entity.
		Edges []*Edge `json:"edges,omitempty"`
		// Derived are the derived relations of the entity.
		Derived []*Edge `json:"derived,omitempty"`
	}

	// Enum is a schema enum and its default variant.
	Enum struct {
		Name    string   `json:"name"`
		Values  []string `json:"values"`
		Default string   `json:"default"`
	}
)

// NewGraph validates the schema, if needed, and creates the graph used by the
// code generation step.
func NewGraph(s *schema.Schema, opts ...Option) (*Graph, error) {
	c, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if s, err = s.Validate(); err != nil {
		return nil, err
	}
	g := &Graph{
		Config: c,
		Schema: s,
		Nodes:  make([]*Type, 0, len(s.Entities)),
		Enums:  make([]*Enum, 0, len(s.Enums)),
		nodes:  make(map[string]*Type, len(s.Entities)),
	}
	for _, e := range s.Enums {
		def, _ := e.Default()
		g.Enums = append(g.Enums, &Enum{Name: e.Name, Values: e.Values, Default: def})
	}
	for _, e := range s.Entities {
		t, err := NewType(c, s, e)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, t)
		g.nodes[t.Name] = t
	}
	return g, nil
}

// NewType creates a graph type from a schema entity.
func NewType(c *Config, s *schema.Schema, e *schema.Entity) (*Type, error) {
	t := &Type{
		Name:   e.Name,
		Fields: make([]*Field, 0, len(e.Fields)),
		fields: make(map[string]*Field, len(e.Fields)),
	}
	columns := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		tf, err := newField(c, s, e, f)
		if err != nil {
			return nil, &FieldError{Type: e.Name, Field: f.Name, Cause: err}
		}
		if !tf.Derived {
			if prev, ok := columns[tf.StorageKey]; ok {
				return nil, &FieldError{Type: e.Name, Field: f.Name, Cause: indexschema.Errorf(indexschema.CodeDuplicateField,
					"column %s is already stored by field %s", tf.StorageKey, prev)}
			}
			columns[tf.StorageKey] = tf.Name
		}
		t.Fields = append(t.Fields, tf)
		t.fields[tf.Name] = tf
		if edge := newEdge(e, f, s); edge != nil {
			tf.Edge = edge
			if edge.Derived {
				t.Derived = append(t.Derived, edge)
			} else {
				t.Edges = append(t.Edges, edge)
			}
		}
	}
	return t, nil
}

// Node returns the graph type of the named entity.
func (g *Graph) Node(name string) (*Type, error) {
	if t, ok := g.nodes[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("gen: entity %q not found in graph", name)
}

// Relations returns the relations of all entities.
func (g *Graph) Relations() []*Relations {
	rels := make([]*Relations, 0, len(g.Nodes))
	for _, t := range g.Nodes {
		rels = append(rels, &Relations{Entity: t.Name, Forward: t.Edges, Derived: t.Derived})
	}
	return rels
}

// Table returns the storage table name of the type.
func (t Type) Table() string {
	return t.Name
}

// Field returns the field with the given name.
func (t Type) Field(name string) (*Field, bool) {
	f, ok := t.fields[name]
	return f, ok
}

// StoredFields returns the fields that are stored as columns.
func (t Type) StoredFields() []*Field {
	return t.FieldsBy(func(f *Field) bool { return !f.Derived })
}

// DerivedFields returns the virtual back-reference fields.
func (t Type) DerivedFields() []*Field {
	return t.FieldsBy(func(f *Field) bool { return f.Derived })
}

// FieldsBy returns the fields that match the given predicate.
func (t Type) FieldsBy(fn func(*Field) bool) []*Field {
	var fields []*Field
	for _, f := range t.Fields {
		if fn(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// RelatedEntities returns the distinct entities the type relates to, in
// field order.
func (t Type) RelatedEntities() []string {
	var names []string
	for _, f := range t.Fields {
		if f.Edge != nil && !slices.Contains(names, f.Edge.Target) {
			names = append(names, f.Edge.Target)
		}
	}
	return names
}

// HasDerived reports if the type has derived fields.
func (t Type) HasDerived() bool {
	return len(t.Derived) > 0
}
