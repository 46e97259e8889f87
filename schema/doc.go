// Package schema holds the logical model of an indexer schema: entities,
// their typed fields, enums and the recursive field-type algebra, together
// with the validation pipeline that turns a freshly built model into a
// validated, read-only one.
//
// # Field types
//
// A field is either a regular field holding a [UserDefinedFieldType] or a
// virtual [DerivedFromField] back-reference. User defined types compose
// three nodes:
//
//	Int        -> &Single{Scalar: Int}
//	Int!       -> &NonNull{Elem: &Single{...}}
//	[Int!]!    -> &NonNull{Elem: &List{Elem: &NonNull{Elem: &Single{...}}}}
//
// Custom scalars reference an entity or an enum by name only. Names are not
// resolved until [Schema.Validate] runs, which allows forward references.
//
// # Validation
//
// Validate runs ordered passes and stops at the first failing one:
//
//  1. internal enum names
//  2. reserved words
//  3. enum and entity name collisions
//  4. references and @derivedFrom targets
//  5. list and non-null shapes
//
// Every offender found by the failing pass is reported.
package schema
