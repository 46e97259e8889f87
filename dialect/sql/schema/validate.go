package schema

import (
	"fmt"
	"strings"
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Table   string
	Column  string
	Message string
	// Breaking indicates if this is a breaking change.
	Breaking bool
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of schema validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// HasBreakingChanges returns true if there are any breaking changes.
func (r *ValidationResult) HasBreakingChanges() bool {
	for _, e := range r.Errors {
		if e.Breaking {
			return true
		}
	}
	for _, w := range r.Warnings {
		if w.Breaking {
			return true
		}
	}
	return false
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			if e.Breaking {
				sb.WriteString(" [BREAKING]")
			}
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			if w.Breaking {
				sb.WriteString(" [BREAKING]")
			}
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

// ValidateOption configures schema validation.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	allowDropColumn    bool
	allowDropTable     bool
	allowDropIndex     bool
	allowNullToNotNull bool
}

// AllowDropColumn allows dropping columns without error.
func AllowDropColumn() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropColumn = true
	}
}

// AllowDropTable allows dropping tables without error.
func AllowDropTable() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropTable = true
	}
}

// AllowDropIndex allows dropping indexes without error.
func AllowDropIndex() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropIndex = true
	}
}

// AllowNullToNotNull allows changing nullable columns to not null.
func AllowNullToNotNull() ValidateOption {
	return func(c *validateConfig) {
		c.allowNullToNotNull = true
	}
}

// ValidateDiff validates the difference between current and desired tables.
// It returns validation errors for breaking changes and warnings for potentially
// dangerous operations.
//
// Example:
//
//	result := schema.ValidateDiff(current.Tables, desired.Tables)
//	if result.HasBreakingChanges() {
//	    log.Fatal("Breaking changes detected:", result)
//	}
//	if result.HasWarnings() {
//	    log.Println("Warnings:", result)
//	}
func ValidateDiff(current, desired []*Table, opts ...ValidateOption) *ValidationResult {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	result := &ValidationResult{}
	desiredMap := make(map[string]*Table, len(desired))
	for _, t := range desired {
		desiredMap[t.Name] = t
	}

	// Check for dropped tables
	for _, t := range current {
		if _, ok := desiredMap[t.Name]; !ok {
			result.add(cfg.allowDropTable, &ValidationError{
				Table:    t.Name,
				Message:  "table will be dropped",
				Breaking: true,
			})
		}
	}

	// Check for changes in existing tables
	for _, d := range desired {
		for _, c := range current {
			if c.Name == d.Name {
				validateTableDiff(c, d, cfg, result)
			}
		}
	}

	return result
}

// add records err as a warning if allowed, and as an error otherwise.
func (r *ValidationResult) add(allowed bool, err *ValidationError) {
	if allowed {
		r.Warnings = append(r.Warnings, err)
	} else {
		r.Errors = append(r.Errors, err)
	}
}

func validateTableDiff(current, desired *Table, cfg *validateConfig, result *ValidationResult) {
	// Check for dropped columns
	for _, c := range current.Columns {
		if _, ok := desired.Column(c.Name); !ok {
			result.add(cfg.allowDropColumn, &ValidationError{
				Table:    current.Name,
				Column:   c.Name,
				Message:  "column will be dropped",
				Breaking: true,
			})
		}
	}

	// Check for column changes
	for _, desiredCol := range desired.Columns {
		currentCol, exists := current.Column(desiredCol.Name)
		if !exists {
			// New column
			if !desiredCol.Nullable && desiredCol.Default == nil {
				result.Warnings = append(result.Warnings, &ValidationError{
					Table:   current.Name,
					Column:  desiredCol.Name,
					Message: "new NOT NULL column without default value may fail if table has data",
				})
			}
			continue
		}

		// Type change
		if currentCol.Type != desiredCol.Type || currentCol.Dims != desiredCol.Dims {
			result.Errors = append(result.Errors, &ValidationError{
				Table:    current.Name,
				Column:   desiredCol.Name,
				Message:  fmt.Sprintf("column type changing from %s to %s", currentCol.SQLType(), desiredCol.SQLType()),
				Breaking: true,
			})
		}

		// Nullable to NOT NULL
		if currentCol.Nullable && !desiredCol.Nullable {
			result.add(cfg.allowNullToNotNull, &ValidationError{
				Table:    current.Name,
				Column:   desiredCol.Name,
				Message:  "column changing from NULL to NOT NULL may fail if column has NULL values",
				Breaking: true,
			})
		}

		// Unique constraint added
		if !currentCol.Unique && desiredCol.Unique {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:   current.Name,
				Column:  desiredCol.Name,
				Message: "adding UNIQUE constraint may fail if duplicate values exist",
			})
		}
	}

	// Check for dropped indexes
	for _, idx := range current.Indexes {
		found := false
		for _, d := range desired.Indexes {
			if d.Name == idx.Name {
				found = true
				break
			}
		}
		if !found {
			result.add(cfg.allowDropIndex, &ValidationError{
				Table:   current.Name,
				Message: fmt.Sprintf("index %q will be dropped", idx.Name),
			})
		}
	}
}

// ValidateTable validates a single table definition.
func ValidateTable(t *Table) *ValidationResult {
	result := &ValidationResult{}

	// Check for primary key
	if len(t.PrimaryKey) == 0 {
		result.Warnings = append(result.Warnings, &ValidationError{
			Table:   t.Name,
			Message: "table has no primary key",
		})
	}

	// Check for duplicate column names
	colNames := make(map[string]bool)
	for _, c := range t.Columns {
		if colNames[c.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: "duplicate column name",
			})
		}
		colNames[c.Name] = true
	}

	// Check for duplicate index names
	idxNames := make(map[string]bool)
	for _, idx := range t.Indexes {
		if idxNames[idx.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Message: fmt.Sprintf("duplicate index name: %s", idx.Name),
			})
		}
		idxNames[idx.Name] = true

		// Check that index columns exist
		for _, col := range idx.Columns {
			if col == nil || !colNames[col.Name] {
				result.Errors = append(result.Errors, &ValidationError{
					Table:   t.Name,
					Message: fmt.Sprintf("index %q references a non-existent column", idx.Name),
				})
			}
		}
	}

	// Check foreign keys
	for _, fk := range t.ForeignKeys {
		for _, col := range fk.Columns {
			if col == nil || !colNames[col.Name] {
				result.Errors = append(result.Errors, &ValidationError{
					Table:   t.Name,
					Message: fmt.Sprintf("foreign key %q references a non-existent column", fk.Symbol),
				})
			}
		}
	}

	return result
}

// ValidateSchema validates all tables and enum types of a schema.
func ValidateSchema(s *Schema) *ValidationResult {
	result := &ValidationResult{}

	enumNames := make(map[string]bool)
	for _, e := range s.Enums {
		if enumNames[e.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   e.Name,
				Message: "duplicate enum type name",
			})
		}
		enumNames[e.Name] = true
		if len(e.Values) == 0 {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   e.Name,
				Message: "enum type has no values",
			})
		}
	}

	tableNames := make(map[string]bool)
	for _, t := range s.Tables {
		// Check for duplicate table names
		if tableNames[t.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Message: "duplicate table name",
			})
		}
		tableNames[t.Name] = true

		// Validate individual table
		tableResult := ValidateTable(t)
		result.Errors = append(result.Errors, tableResult.Errors...)
		result.Warnings = append(result.Warnings, tableResult.Warnings...)

		for _, c := range t.Columns {
			if c.Enum && !enumNames[c.Type] {
				result.Errors = append(result.Errors, &ValidationError{
					Table:   t.Name,
					Column:  c.Name,
					Message: fmt.Sprintf("column references non-existent enum type %q", c.Type),
				})
			}
		}
	}

	// Validate foreign key references
	for _, t := range s.Tables {
		for _, fk := range t.ForeignKeys {
			if fk.RefTable == nil || !tableNames[fk.RefTable.Name] {
				result.Errors = append(result.Errors, &ValidationError{
					Table:   t.Name,
					Message: fmt.Sprintf("foreign key %q references a non-existent table", fk.Symbol),
				})
				continue
			}
			ref, _ := s.Table(fk.RefTable.Name)
			if len(fk.RefColumns) != len(fk.Columns) {
				result.Errors = append(result.Errors, &ValidationError{
					Table:   t.Name,
					Message: fmt.Sprintf("foreign key %q has %d columns but references %d", fk.Symbol, len(fk.Columns), len(fk.RefColumns)),
				})
			}
			for _, col := range fk.RefColumns {
				if col == nil {
					result.Errors = append(result.Errors, &ValidationError{
						Table:   t.Name,
						Message: fmt.Sprintf("foreign key %q references a non-existent column of %q", fk.Symbol, ref.Name),
					})
					continue
				}
				if _, ok := ref.Column(col.Name); !ok {
					result.Errors = append(result.Errors, &ValidationError{
						Table:   t.Name,
						Message: fmt.Sprintf("foreign key %q references a non-existent column %q of %q", fk.Symbol, col.Name, ref.Name),
					})
				}
			}
		}
	}

	return result
}
