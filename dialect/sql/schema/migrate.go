package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/syssam/indexschema"
)

// TxBeginner starts transactions. It is implemented by *sql.DB and *sql.Conn.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Migrate validates the schema, plans it with atlas and applies the plan in
// one transaction. The transaction is rolled back if any statement fails.
// It returns the number of applied statements.
func Migrate(ctx context.Context, db TxBeginner, s *Schema) (n int, err error) {
	if r := ValidateSchema(s); r.HasErrors() {
		return 0, indexschema.Errorf(indexschema.CodeProjectionInvariant, "invalid storage schema:\n%s", r)
	}
	p, err := s.Plan(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("schema: begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = fmt.Errorf("%w: rolling back: %v", err, rerr)
			}
		}
	}()
	for _, c := range p.Changes {
		if _, err := tx.ExecContext(ctx, c.Cmd, c.Args...); err != nil {
			return 0, fmt.Errorf("schema: exec %q: %w", c.Cmd, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("schema: commit transaction: %w", err)
	}
	return len(p.Changes), nil
}
