// Package schema builds the PostgreSQL storage schema of a graph, plans it
// with atlas and applies it to a database.
package schema

import (
	"slices"
	"strings"

	"ariga.io/atlas/sql/postgres"
	"github.com/lib/pq"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/compiler/gen"
)

// IDColumn is the primary key column of every entity table.
const IDColumn = "id"

type (
	// Schema is the storage schema of a graph.
	Schema struct {
		Enums  []*EnumType
		Tables []*Table
	}

	// EnumType is a PostgreSQL enum type.
	EnumType struct {
		Name   string
		Values []string
	}

	// Table is an entity table.
	Table struct {
		Name        string
		Columns     []*Column
		columns     map[string]*Column
		PrimaryKey  []*Column
		ForeignKeys []*ForeignKey
		Indexes     []*Index
	}

	// Column is a table column.
	Column struct {
		Name string
		// Type is the element type of array columns.
		Type string
		// Dims is the number of array dimensions.
		Dims int
		// Enum reports if Type is a user enum type.
		Enum     bool
		Nullable bool
		Unique   bool
		Default  *string
	}

	// ForeignKey references the id of another table.
	ForeignKey struct {
		Symbol     string
		Columns    []*Column
		RefTable   *Table
		RefColumns []*Column
	}

	// Index is a table index.
	Index struct {
		Name    string
		Unique  bool
		Columns []*Column
	}
)

// NewTable returns a new table with the given name.
func NewTable(name string) *Table {
	return &Table{Name: name, columns: make(map[string]*Column)}
}

// AddColumn adds a column to the table.
func (t *Table) AddColumn(c *Column) *Table {
	t.Columns = append(t.Columns, c)
	if t.columns == nil {
		t.columns = make(map[string]*Column)
	}
	t.columns[c.Name] = c
	return t
}

// AddPrimary adds a column to the primary key of the table.
func (t *Table) AddPrimary(c *Column) *Table {
	c.Unique = true
	t.AddColumn(c)
	t.PrimaryKey = append(t.PrimaryKey, c)
	return t
}

// AddForeignKey adds a foreign key to the table.
func (t *Table) AddForeignKey(fk *ForeignKey) *Table {
	t.ForeignKeys = append(t.ForeignKeys, fk)
	return t
}

// AddIndex adds an index on the given columns.
func (t *Table) AddIndex(name string, unique bool, columns ...string) *Table {
	idx := &Index{Name: name, Unique: unique}
	for _, name := range columns {
		c, _ := t.Column(name)
		idx.Columns = append(idx.Columns, c)
	}
	t.Indexes = append(t.Indexes, idx)
	return t
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.columns[name]
	return c, ok
}

// FromGraph returns the storage schema of the graph: one enum type per enum
// and one table per entity with a column per stored field. Columns
// referencing entities get a foreign key to the referenced table and an
// index.
//
// The primary key is the text column stored by an `id` field. Entities
// without one, including those whose `id` field is derived or references
// another entity, get an implicit text `id` column.
func FromGraph(g *gen.Graph) (*Schema, error) {
	s := &Schema{
		Enums:  make([]*EnumType, 0, len(g.Enums)),
		Tables: make([]*Table, 0, len(g.Nodes)),
	}
	for _, e := range g.Enums {
		s.Enums = append(s.Enums, &EnumType{Name: e.Name, Values: e.Values})
	}
	tables := make(map[string]*Table, len(g.Nodes))
	for _, n := range g.Nodes {
		t := NewTable(n.Table())
		stored := n.StoredFields()
		if !slices.ContainsFunc(stored, func(f *gen.Field) bool { return f.StorageKey == IDColumn }) {
			t.AddPrimary(&Column{Name: IDColumn, Type: postgres.TypeText})
		}
		for _, f := range stored {
			c := NewColumn(f)
			if c.Name != IDColumn {
				t.AddColumn(c)
				continue
			}
			if c.Type != postgres.TypeText || c.Dims > 0 || c.Enum {
				return nil, indexschema.Errorf(indexschema.CodeProjectionInvariant,
					"entity %s: %s column of type %s cannot be the primary key", n.Name, IDColumn, c.SQLType())
			}
			c.Nullable = false
			t.AddPrimary(c)
		}
		tables[n.Name] = t
		s.Tables = append(s.Tables, t)
	}
	for _, n := range g.Nodes {
		t := tables[n.Name]
		for _, e := range n.Edges {
			ref, ok := tables[e.Target]
			if !ok {
				return nil, indexschema.Errorf(indexschema.CodeProjectionInvariant, "edge %s.%s references unknown entity %s", n.Name, e.Name, e.Target)
			}
			c, _ := t.Column(e.Key)
			t.AddForeignKey(&ForeignKey{
				Symbol:     t.Name + "_" + e.Key + "_fkey",
				Columns:    []*Column{c},
				RefTable:   ref,
				RefColumns: ref.PrimaryKey,
			})
			t.AddIndex(t.Name+"_"+e.Key+"_idx", false, e.Key)
		}
	}
	return s, nil
}

// NewColumn returns the column of a stored graph field.
func NewColumn(f *gen.Field) *Column {
	c := &Column{
		Name:     f.StorageKey,
		Type:     f.Column.Type,
		Nullable: !f.Column.NotNull,
		Enum:     f.IsEnum(),
	}
	for strings.HasSuffix(c.Type, "[]") {
		c.Type = strings.TrimSuffix(c.Type, "[]")
		c.Dims++
	}
	return c
}

// SQLType returns the column type as written in a table definition.
func (c *Column) SQLType() string {
	typ := c.Type
	if c.Enum {
		typ = pq.QuoteIdentifier(typ)
	}
	return typ + strings.Repeat("[]", c.Dims)
}

// Table returns the table with the given name.
func (s *Schema) Table(name string) (*Table, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}
