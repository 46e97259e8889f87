// Package gen projects a validated schema into the type systems consumed by
// code generation.
//
// Every field type is projected into:
//
//   - a storage type, the PostgreSQL column type of stored fields
//     (StorageType, ColumnOf);
//   - an application type, the data-binding type of the indexer runtime
//     (AppTypeOf), and its default literals (DefaultValue, DefaultValueTS);
//   - a Go binding type rendered with jennifer (GoType, Graph.GoFile).
//
// ResolveRelations computes the forward and derived edges between entities.
// NewGraph bundles all projections into the Graph template model, which can
// be encoded as JSON or msgpack for an external templating step:
//
//	s, err := load.Load("schema.graphql")
//	if err != nil {
//		return err
//	}
//	g, err := gen.NewGraph(s, gen.WithPackage("bindings"))
//	if err != nil {
//		return err
//	}
//	return g.Encode(os.Stdout, gen.FormatJSON)
package gen
