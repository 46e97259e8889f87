package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/indexschema/compiler"
	"github.com/syssam/indexschema/compiler/gen"
	sqlschema "github.com/syssam/indexschema/dialect/sql/schema"
)

func (c *cli) ddlCmd() *cobra.Command {
	var (
		from           string
		allowDrop      bool
		allowNotNull   bool
		ignoreBreaking bool
	)
	cmd := &cobra.Command{
		Use:   "ddl schema.graphql",
		Short: "Print the SQL storage schema of a schema",
		Long: `Print the PostgreSQL statements creating the storage schema.

With --from, the storage schema of a previous schema version is compared
with the new one. Breaking changes are reported, followed by the
statements migrating the previous storage schema to the new one.

Examples:
  indexschema ddl schema.graphql
  indexschema ddl schema.graphql --from previous.graphql --allow-drop`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := compiler.LoadGraph(args[0], c.cfg.GenOptions()...)
			if err != nil {
				return err
			}
			desired, err := storage(g)
			if err != nil {
				return err
			}
			ctx, out := cmd.Context(), cmd.OutOrStdout()
			if from == "" {
				ddl, err := desired.DDL(ctx)
				if err != nil {
					return err
				}
				fmt.Fprint(out, ddl)
				return nil
			}
			pg, err := compiler.LoadGraph(from, c.cfg.GenOptions()...)
			if err != nil {
				return fmt.Errorf("previous schema: %w", err)
			}
			prev, err := storage(pg)
			if err != nil {
				return fmt.Errorf("previous schema: %w", err)
			}
			var opts []sqlschema.ValidateOption
			if allowDrop {
				opts = append(opts, sqlschema.AllowDropTable(), sqlschema.AllowDropColumn(), sqlschema.AllowDropIndex())
			}
			if allowNotNull {
				opts = append(opts, sqlschema.AllowNullToNotNull())
			}
			r := sqlschema.ValidateDiff(prev.Tables, desired.Tables, opts...)
			fmt.Fprintln(out, r)
			if r.HasErrors() && !ignoreBreaking {
				return errors.New("storage schema changes are not compatible")
			}
			stmts, err := sqlschema.Diff(ctx, prev, desired)
			if err != nil {
				return err
			}
			for _, stmt := range stmts {
				fmt.Fprintf(out, "%s;\n", stmt)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "previous schema version to compare with")
	cmd.Flags().BoolVar(&allowDrop, "allow-drop", false, "report dropped tables, columns and indexes as warnings")
	cmd.Flags().BoolVar(&allowNotNull, "allow-not-null", false, "report NULL to NOT NULL changes as warnings")
	cmd.Flags().BoolVar(&ignoreBreaking, "ignore-breaking", false, "exit successfully on breaking changes")
	return cmd
}

// storage returns the validated storage schema of g.
func storage(g *gen.Graph) (*sqlschema.Schema, error) {
	s, err := sqlschema.FromGraph(g)
	if err != nil {
		return nil, err
	}
	if r := sqlschema.ValidateSchema(s); r.HasErrors() {
		return nil, fmt.Errorf("invalid storage schema:\n%s", r)
	}
	return s, nil
}
