package gen

import (
	"github.com/syssam/indexschema/schema"
)

// Edge is a relationship between two entities.
type Edge struct {
	// Name is the field realizing the edge on its owner.
	Name string `json:"name"`
	// Owner is the entity declaring the field.
	Owner string `json:"owner"`
	// Target is the related entity.
	Target string `json:"target"`
	// Key is the relational key column. Forward edges store it in the owner
	// table, derived edges look it up in the target table.
	Key string `json:"key"`
	// Field is the relational key field on Target. Set on derived edges.
	Field string `json:"field,omitempty"`
	// Derived reports if the edge is a virtual back-reference.
	Derived bool `json:"derived"`
	// Optional reports if a forward edge accepts null.
	Optional bool `json:"optional"`
}

// Relations holds the edges of one entity.
type Relations struct {
	Entity string `json:"entity"`
	// Forward edges, one per field referencing an entity.
	Forward []*Edge `json:"forward"`
	// Derived edges, one per derived field.
	Derived []*Edge `json:"derived"`
}

// ResolveRelations returns the relations of every entity of a validated
// schema, in declaration order.
func ResolveRelations(s *schema.Schema) []*Relations {
	rels := make([]*Relations, 0, len(s.Entities))
	for _, e := range s.Entities {
		r := &Relations{Entity: e.Name}
		for _, f := range e.Fields {
			if edge := newEdge(e, f, s); edge != nil {
				if edge.Derived {
					r.Derived = append(r.Derived, edge)
				} else {
					r.Forward = append(r.Forward, edge)
				}
			}
		}
		rels = append(rels, r)
	}
	return rels
}

// newEdge returns the edge realized by the field, or nil if the field does
// not relate entities.
func newEdge(e *schema.Entity, f *schema.Field, s *schema.Schema) *Edge {
	switch ft := f.Type.(type) {
	case *schema.RegularField:
		sc := ft.Type.Underlying()
		if !s.IsEntity(sc) {
			return nil
		}
		return &Edge{
			Name:     f.Name,
			Owner:    e.Name,
			Target:   sc.Name,
			Key:      foreignKey(f.Name),
			Optional: ft.Type.IsOptional(),
		}
	case *schema.DerivedFromField:
		return &Edge{
			Name:    f.Name,
			Owner:   e.Name,
			Target:  ft.Entity,
			Key:     RelationalKey(ft, s),
			Field:   ft.Field,
			Derived: true,
		}
	default:
		return nil
	}
}

// RelationalKey returns the storage column realizing a derived field: the
// target field name suffixed with "_id" if it references an entity, and the
// field name unchanged if it holds an ID or String.
func RelationalKey(d *schema.DerivedFromField, s *schema.Schema) string {
	target, ok := s.Entity(d.Entity)
	if !ok {
		return d.Field
	}
	f, ok := target.Field(d.Field)
	if !ok {
		return d.Field
	}
	return StorageKey(f, s)
}

// StorageKey returns the column name of a field. Fields referencing an
// entity store its id in a "<name>_id" column.
func StorageKey(f *schema.Field, s *schema.Schema) string {
	if rt, ok := f.Type.(*schema.RegularField); ok && s.IsEntity(rt.Type.Underlying()) {
		return foreignKey(f.Name)
	}
	return f.Name
}

func foreignKey(name string) string {
	return name + "_id"
}
