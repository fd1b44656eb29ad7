// Package filter provides the typed core of request filtering: semantic
// kinds, literal converters, the lookup grammar and the backend-neutral
// predicate and ordering representation.
//
// This package enables backend developers to:
//   - Parse parameter keys such as "age__gte" or "status!" into lookups
//   - Convert raw string literals into typed values per semantic kind
//   - Build Predicate values that backends evaluate or translate
//   - Encode predicates and order specs to SQL (primarily DuckDB)
//
// # Basic Usage
//
//	l := filter.ParseLookup("age__gte", "18")
//	p, err := filter.BuildPredicate("age", []string{"age"}, filter.Int, l.Operator, l.Raw)
//	if err != nil {
//	    return err // unsupported operator or malformed literal
//	}
//
//	enc := filter.NewDuckDBEncoder(nil)
//	where := enc.EncodeFilters([]filter.Predicate{p}) // age >= 18
//
// # Lookup Grammar
//
// A key is "field", "field__op" or "field!". The operator tokens are
// exact, ne, gt, gte, lt, lte, in, contains, iin (icontains), nin and isnull.
// An unknown suffix after "__" is part of the field name. The key "ordering"
// is reserved for the comma-separated ordering value ("age,-name").
//
// # Kinds
//
// Every field has one of the kinds int, string, decimal, boolean, date,
// datetime or custom. Each kind has a Type in a fixed dispatch table that
// carries the operator set, the converter and the comparer. Custom types
// supply their own Type.
//
// On string fields in, contains, icontains and nin are substring tests.
// On other kinds in and nin test membership in a comma-separated list;
// list items that fail to convert are dropped.
//
// # Column Mapping
//
// Map field names to backend storage names:
//
//	enc := filter.NewDuckDBEncoder(&filter.EncoderOptions{
//	    ColumnMapping: map[string]string{
//	        "user_id": "uid",
//	    },
//	    ColumnExpressions: map[string]string{
//	        "full_name": "CONCAT(first_name, ' ', last_name)",
//	    },
//	})
package filter
