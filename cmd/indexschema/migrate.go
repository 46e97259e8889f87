package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/syssam/indexschema/compiler"
	sqlschema "github.com/syssam/indexschema/dialect/sql/schema"
)

func (c *cli) migrateCmd() *cobra.Command {
	var (
		dsn     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "migrate schema.graphql",
		Short: "Create the storage schema in a PostgreSQL database",
		Long: `Create the enum types, tables, foreign keys and indexes of a schema
in one transaction. Nothing is changed if a statement fails.

Examples:
  indexschema migrate schema.graphql --dsn postgres://localhost/indexer?sslmode=disable
  INDEXSCHEMA_DATABASE_DSN=postgres://... indexschema migrate schema.graphql`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				dsn = c.cfg.Database.DSN
			}
			if dsn == "" {
				return errors.New("no database: pass --dsn or set database.dsn in the config file")
			}
			g, err := compiler.LoadGraph(args[0], c.cfg.GenOptions()...)
			if err != nil {
				return err
			}
			s, err := storage(g)
			if err != nil {
				return err
			}
			db, err := sql.Open("postgres", dsn)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			n, err := sqlschema.Migrate(ctx, db, s)
			if err != nil {
				return err
			}
			c.logger.Info().Int("tables", len(s.Tables)).Int("enums", len(s.Enums)).Msg("storage schema created")
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %d statements applied\n", checkMark, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string (default from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "migration timeout")
	return cmd
}
