package schema

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/postgres"
	atlas "ariga.io/atlas/sql/schema"
)

const (
	// DefaultSchema is the name of the atlas schema holding the tables.
	// Statements are planned unqualified and run in the search path of
	// the connection.
	DefaultSchema = "public"
	// PlanName names the migration plans.
	PlanName = "indexschema"
)

// Atlas returns the atlas schema of s. Enum types are schema objects and
// tables list the enum types of their columns as dependencies.
func (s *Schema) Atlas() (*atlas.Schema, error) {
	ns := atlas.New(DefaultSchema)
	enums := make(map[string]*atlas.EnumType, len(s.Enums))
	for _, e := range s.Enums {
		et := &atlas.EnumType{T: e.Name, Values: e.Values, Schema: ns}
		enums[e.Name] = et
		ns.AddObjects(et)
	}
	tables := make(map[string]*atlas.Table, len(s.Tables))
	for _, t := range s.Tables {
		at, err := t.atlas(enums)
		if err != nil {
			return nil, err
		}
		tables[t.Name] = at
		ns.AddTables(at)
	}
	for _, t := range s.Tables {
		at := tables[t.Name]
		for _, fk := range t.ForeignKeys {
			if fk.RefTable == nil {
				return nil, fmt.Errorf("schema: foreign key %q has no referenced table", fk.Symbol)
			}
			ref, ok := tables[fk.RefTable.Name]
			if !ok {
				return nil, fmt.Errorf("schema: foreign key %q references unknown table %q", fk.Symbol, fk.RefTable.Name)
			}
			columns, err := atlasColumns(at, fk.Columns)
			if err != nil {
				return nil, fmt.Errorf("schema: foreign key %q: %w", fk.Symbol, err)
			}
			refColumns, err := atlasColumns(ref, fk.RefColumns)
			if err != nil {
				return nil, fmt.Errorf("schema: foreign key %q: %w", fk.Symbol, err)
			}
			at.AddForeignKeys(atlas.NewForeignKey(fk.Symbol).
				AddColumns(columns...).
				SetRefTable(ref).
				AddRefColumns(refColumns...))
		}
	}
	return ns, nil
}

func (t *Table) atlas(enums map[string]*atlas.EnumType) (*atlas.Table, error) {
	at := atlas.NewTable(t.Name)
	for _, c := range t.Columns {
		typ, err := c.atlasType(enums)
		if err != nil {
			return nil, fmt.Errorf("schema: column %s.%s: %w", t.Name, c.Name, err)
		}
		ac := atlas.NewColumn(c.Name).SetType(typ).SetNull(c.Nullable)
		ac.Type.Raw = c.SQLType()
		if c.Default != nil {
			ac.SetDefault(&atlas.RawExpr{X: *c.Default})
		}
		at.AddColumns(ac)
		if e, ok := enums[c.Type]; ok && c.Enum && !slices.Contains(at.Deps, atlas.Object(e)) {
			at.AddDeps(e)
		}
	}
	if len(t.PrimaryKey) > 0 {
		columns, err := atlasColumns(at, t.PrimaryKey)
		if err != nil {
			return nil, fmt.Errorf("schema: primary key of %q: %w", t.Name, err)
		}
		at.SetPrimaryKey(atlas.NewPrimaryKey(columns...))
	}
	for _, idx := range t.Indexes {
		columns, err := atlasColumns(at, idx.Columns)
		if err != nil {
			return nil, fmt.Errorf("schema: index %q: %w", idx.Name, err)
		}
		at.AddIndexes(atlas.NewIndex(idx.Name).SetUnique(idx.Unique).AddColumns(columns...))
	}
	return at, nil
}

// atlasType returns the atlas type of the column. Scalar types are parsed
// by the postgres driver, enum types are shared with the schema objects.
func (c *Column) atlasType(enums map[string]*atlas.EnumType) (atlas.Type, error) {
	var elem atlas.Type
	if c.Enum {
		e, ok := enums[c.Type]
		if !ok {
			return nil, fmt.Errorf("enum type %q is not defined", c.Type)
		}
		elem = e
	} else {
		t, err := postgres.ParseType(c.Type)
		if err != nil {
			return nil, err
		}
		elem = t
	}
	if c.Dims == 0 {
		return elem, nil
	}
	return &postgres.ArrayType{Type: elem, T: c.Type + strings.Repeat("[]", c.Dims)}, nil
}

func atlasColumns(t *atlas.Table, columns []*Column) ([]*atlas.Column, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns of %q", t.Name)
	}
	cs := make([]*atlas.Column, 0, len(columns))
	for _, c := range columns {
		if c == nil {
			return nil, fmt.Errorf("missing column of %q", t.Name)
		}
		ac, ok := t.Column(c.Name)
		if !ok {
			return nil, fmt.Errorf("column %q does not exist in %q", c.Name, t.Name)
		}
		cs = append(cs, ac)
	}
	return cs, nil
}

// Changes returns the changes creating the schema from scratch: enum types
// first, then tables. Tables are created if they do not exist.
func (s *Schema) Changes() ([]atlas.Change, error) {
	ns, err := s.Atlas()
	if err != nil {
		return nil, err
	}
	changes := make([]atlas.Change, 0, len(ns.Objects)+len(ns.Tables))
	for _, o := range ns.Objects {
		changes = append(changes, &atlas.AddObject{O: o})
	}
	for _, t := range ns.Tables {
		changes = append(changes, &atlas.AddTable{T: t, Extra: []atlas.Clause{&atlas.IfNotExists{}}})
	}
	return changes, nil
}

// Plan returns the atlas migration plan creating the schema. Foreign keys
// of tables referencing each other are added once both tables exist.
func (s *Schema) Plan(ctx context.Context) (*migrate.Plan, error) {
	changes, err := s.Changes()
	if err != nil {
		return nil, err
	}
	return plan(ctx, changes)
}

// Statements returns the statements of the plan creating the schema.
func (s *Schema) Statements(ctx context.Context) ([]string, error) {
	p, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return statements(p), nil
}

// DDL returns the statements creating the schema as one script.
func (s *Schema) DDL(ctx context.Context) (string, error) {
	stmts, err := s.Statements(ctx)
	if err != nil {
		return "", err
	}
	return script(stmts), nil
}

// Diff returns the statements migrating the current schema to the desired
// one, as computed by the atlas differ.
func Diff(ctx context.Context, current, desired *Schema) ([]string, error) {
	from, err := current.Atlas()
	if err != nil {
		return nil, err
	}
	to, err := desired.Atlas()
	if err != nil {
		return nil, err
	}
	changes, err := postgres.DefaultDiff.SchemaDiff(from, to)
	if err != nil {
		return nil, fmt.Errorf("schema: diff: %w", err)
	}
	if len(changes) == 0 {
		return nil, nil
	}
	p, err := plan(ctx, changes)
	if err != nil {
		return nil, err
	}
	return statements(p), nil
}

// WriteMigration writes the plan creating the schema as a versioned
// migration file into dir and updates the checksum file of dir.
func (s *Schema) WriteMigration(ctx context.Context, dir migrate.Dir, version string) error {
	if version == "" {
		return fmt.Errorf("schema: empty migration version")
	}
	p, err := s.Plan(ctx)
	if err != nil {
		return err
	}
	p.Version = version
	files, err := migrate.DefaultFormatter.Format(p)
	if err != nil {
		return fmt.Errorf("schema: format migration: %w", err)
	}
	for _, f := range files {
		if err := dir.WriteFile(f.Name(), f.Bytes()); err != nil {
			return fmt.Errorf("schema: write migration %s: %w", f.Name(), err)
		}
	}
	sum, err := dir.Checksum()
	if err != nil {
		return fmt.Errorf("schema: migration checksum: %w", err)
	}
	return migrate.WriteSumFile(dir, sum)
}

func plan(ctx context.Context, changes []atlas.Change) (*migrate.Plan, error) {
	p, err := postgres.DefaultPlan.PlanChanges(ctx, PlanName, changes, func(o *migrate.PlanOptions) {
		o.SchemaQualifier = new(string)
	})
	if err != nil {
		return nil, fmt.Errorf("schema: plan changes: %w", err)
	}
	return p, nil
}

func statements(p *migrate.Plan) []string {
	stmts := make([]string, 0, len(p.Changes))
	for _, c := range p.Changes {
		stmts = append(stmts, c.Cmd)
	}
	return stmts
}

func script(stmts []string) string {
	if len(stmts) == 0 {
		return ""
	}
	return strings.Join(stmts, ";\n") + ";\n"
}
