// Package indexschema holds the error surface shared by the schema compiler
// packages: stable error codes, the structured Error type and helpers to
// inspect error trees.
//
// The compiler itself lives in the sub-packages:
//
//   - schema: the schema model and its validation passes.
//   - compiler/load: parsing of GraphQL SDL into the schema model.
//   - compiler/gen: type projections, relationships and the graph model.
//   - dialect/sql/schema: the PostgreSQL storage schema.
//   - compiler: entry points compiling schema files.
package indexschema
