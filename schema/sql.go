package schema

import (
	"slices"
	"strings"

	"github.com/hugr-lab/lumi-filter/filter"
)

// sqlTypeAliases maps full SQL type names and DuckDB aliases to the
// short names understood by filter.NormalizeKind.
var sqlTypeAliases = map[string]string{
	"TIMESTAMP WITH TIME ZONE":    "TIMESTAMPTZ",
	"TIMESTAMP WITHOUT TIME ZONE": "TIMESTAMP",
	"TIMESTAMP_SEC":               "TIMESTAMP",
	"DATETIME":                    "TIMESTAMP",
	"INT1":                        "TINYINT",
	"INT2":                        "SMALLINT",
	"INT4":                        "INTEGER",
	"INT8":                        "BIGINT",
	"INT128":                      "HUGEINT",
	"UINT1":                       "UTINYINT",
	"UINT2":                       "USMALLINT",
	"UINT4":                       "UINTEGER",
	"UINT8":                       "UBIGINT",
	"UINT128":                     "UBIGINT",
	"UHUGEINT":                    "UBIGINT",
	"FLOAT4":                      "FLOAT",
	"FLOAT8":                      "DOUBLE",
	"CHARACTER VARYING":           "VARCHAR",
	"STRING":                      "VARCHAR",
	"BPCHAR":                      "CHAR",
	"LOGICAL":                     "BOOLEAN",
}

// NormalizeSQLType returns the short upper-case form of a DuckDB or SQL
// type name. Parameters such as DECIMAL(10,2) are kept.
func NormalizeSQLType(name string) string {
	n := strings.ToUpper(strings.Join(strings.Fields(name), " "))
	base, params := n, ""
	if i := strings.IndexByte(n, '('); i > 0 {
		base, params = strings.TrimSpace(n[:i]), n[i:]
	}
	if mapped, ok := sqlTypeAliases[base]; ok {
		return mapped + params
	}
	return n
}

// SQLKind maps a DuckDB or SQL column type name to a kind.
// GEOMETRY maps to the custom kind.
func SQLKind(name string) filter.Kind {
	n := NormalizeSQLType(name)
	if n == "GEOMETRY" {
		return filter.KindCustom
	}
	return filter.NormalizeKind(n)
}

// FromSQLTypes maps column name to type name pairs, e.g. the result of
// DESCRIBE or information_schema.columns. Fields are sorted by name.
func FromSQLTypes(columns map[string]string) []Field {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	slices.Sort(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		typeName := columns[name]
		f := Field{Name: name, Kind: SQLKind(typeName), TypeName: NormalizeSQLType(typeName)}
		if f.Kind == filter.KindCustom {
			f.TypeName = strings.ToLower(f.TypeName)
		}
		fields = append(fields, f)
	}
	return fields
}
