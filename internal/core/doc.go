// Package core provides the reporting engine for the food sharing datasets.
//
// This package holds all domain logic independent of any UI or transport
// layer. It can be used by web handlers, CLI tools, or tests without
// modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Tables: Immutable, ordered sequences of rows with named columns. Every
//     cell is a [Value] that is null, text, integer or float.
//   - Operators: Relational building blocks ([LeftJoin], [InnerJoin],
//     [GroupBy], [SortBy], [Limit], [Project], [Where]) with explicit null
//     handling.
//   - Loader: Reads the four datasets from a [Source] into a [Dataset],
//     validating each against its registered [TableSpec].
//   - Resolver: Builds the two canonical views, listings with provider name
//     and claims detail ([Resolve]).
//   - Reports: A fixed, ordered catalog of named aggregate reports registered
//     at init time via [RegisterReport].
//   - Filters: Equality constraints over the listings view ([Filter]).
//   - Service: The caller-owned load-once object that ties it together.
//
// # Table Schemas
//
// Dataset schemas are registered at init time using [RegisterTable]:
//
//	core.RegisterTable(core.TableSpec{
//	    Name: core.TableProviders,
//	    Key:  "Provider_ID",
//	    FieldSpecs: []core.FieldSpec{
//	        {Name: "Provider_ID", Type: core.FieldText, Required: true},
//	        {Name: "Name", Type: core.FieldText, Required: true},
//	    },
//	})
//
// Import the tables package to register the standard schemas.
//
// # Null Handling
//
// Empty cells load as null. Group keys that are null are dropped. Sum and
// mean skip null values; a group with no non-null values aggregates to null.
// Null never matches an equality filter or a join key.
//
// # Error Handling
//
// Errors are typed so callers can branch with errors.As:
//
//   - [LoadError]: a source is unreadable or malformed
//   - [MissingColumnError]: an expected column is absent
//   - [DuplicateKeyError]: a key assumed unique appears twice
//
// Technical errors are mapped to user-friendly messages using [MapError].
package core
