// Package lumi provides a backend-agnostic filtering and ordering engine
// driven by flat, query-string shaped request parameters.
//
// A Schema declares the filterable fields: their request names, source
// paths and types. A request maps lookup keys to literals:
//
//	name__icontains=john    case-insensitive substring
//	age__gte=18             comparison (gt, gte, lt, lte)
//	status!=inactive        inequality ("status!" key)
//	age__in=25,35           membership (nin negates)
//	deleted_at__isnull=true null test
//	ordering=age,-name      sort keys, "-" for descending
//
// Parameters are validated, converted to typed predicates and applied to a
// Backend. Problems with a single parameter never fail the request: the
// parameter is skipped and logged at debug level.
//
// # Quick Start
//
//	s, err := lumi.NewSchemaBuilder(lumi.Config{}).
//	    String("name").
//	    Int("age").
//	    Field(lumi.FieldDef{Name: "profile.age", Type: filter.Int}).
//	    Build()
//	if err != nil {
//	    return err
//	}
//
//	params := lumi.ParamsFromValues(r.URL.Query())
//	rows := lumi.NewRequest(s, memory.New(records), params).
//	    Filter().
//	    Order().
//	    Result().
//	    Records()
//
// # Backends
//
// The engine never inspects the backend type. A backend implements
// Filter(filter.Predicate) and Order(filter.OrderSpec) and returns a new
// value of its own type:
//
//   - backend/memory evaluates predicates over records
//   - backend/duck renders a DuckDB SELECT statement
//   - backend/gormq adds GORM clauses to a *gorm.DB chain
//
// All backends agree on null handling: positive comparisons never match a
// missing or null value, negated ones (ne, nin, not-contains) always do, and
// null values sort last in both directions.
//
// # Schemas
//
// Fields are declared explicitly, introspected with the schema package
// (Arrow schemas, Go structs, SQL column types, sample records) or both.
// Explicit fields override introspected ones. AutoSchema infers a schema
// from the first record of a data set.
//
// # Logging
//
// Config.Logger receives skipped parameters at debug level and recovered
// panics from custom types and backends at error level.
package lumi
