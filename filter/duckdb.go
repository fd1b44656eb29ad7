package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DuckDBEncoder encodes predicates and order specs to DuckDB SQL syntax.
// Negated comparisons keep rows where the column is NULL, so SQL results
// match in-memory evaluation of records that lack the field.
type DuckDBEncoder struct {
	opts *EncoderOptions
}

// NewDuckDBEncoder creates a new DuckDB SQL encoder.
// If opts is nil, default options are used.
func NewDuckDBEncoder(opts *EncoderOptions) *DuckDBEncoder {
	if opts == nil {
		opts = &EncoderOptions{}
	}
	return &DuckDBEncoder{opts: opts}
}

// EncodeFilters converts all predicates to a WHERE clause body.
// Returns the condition portion without "WHERE" keyword.
// Unsupported predicates are skipped; the rest are joined with AND.
func (e *DuckDBEncoder) EncodeFilters(preds []Predicate) string {
	var parts []string
	for _, p := range preds {
		encoded := e.Encode(p)
		if encoded != "" {
			parts = append(parts, encoded)
		}
	}

	if len(parts) == 0 {
		return ""
	}

	if len(parts) == 1 {
		return parts[0]
	}

	return "(" + strings.Join(parts, ") AND (") + ")"
}

// Encode converts a single predicate to SQL.
// Returns empty string if the predicate is unsupported.
func (e *DuckDBEncoder) Encode(p Predicate) string {
	col := e.Column(p.Field, p.Path)
	if col == "" || p.Type == nil {
		return ""
	}

	switch p.Op {
	case CompareIsNull:
		isNull, ok := p.Value.(bool)
		if !ok {
			return ""
		}
		if isNull {
			return col + " IS NULL"
		}
		return col + " IS NOT NULL"
	case CompareIn:
		return e.encodeIn(col, p, false)
	case CompareNotIn:
		return e.encodeIn(col, p, true)
	case CompareContains, CompareNotContains:
		return e.encodeContains(col, p)
	}

	right := e.formatValue(p.Type, p.Value)
	if right == "" {
		return ""
	}

	switch p.Op {
	case CompareEq:
		return col + " = " + right
	case CompareNe:
		return "(" + col + " <> " + right + " OR " + col + " IS NULL)"
	case CompareLt:
		return col + " < " + right
	case CompareGt:
		return col + " > " + right
	case CompareLte:
		return col + " <= " + right
	case CompareGte:
		return col + " >= " + right
	default:
		return ""
	}
}

// EncodeOrder converts an order spec to an ORDER BY body.
// NULLs sort last in both directions.
func (e *DuckDBEncoder) EncodeOrder(spec OrderSpec) string {
	var parts []string
	for _, key := range spec {
		col := e.Column(key.Field, key.Path)
		if col == "" {
			continue
		}
		dir := " ASC"
		if key.Desc {
			dir = " DESC"
		}
		parts = append(parts, col+dir+" NULLS LAST")
	}
	return strings.Join(parts, ", ")
}

// Column returns the SQL reference of a field.
func (e *DuckDBEncoder) Column(field string, path []string) string {
	// Check for expression mapping first (takes precedence)
	if e.opts.ColumnExpressions != nil {
		if expr, ok := e.opts.ColumnExpressions[field]; ok {
			return expr
		}
	}

	// Check for name mapping
	if e.opts.ColumnMapping != nil {
		if mapped, ok := e.opts.ColumnMapping[field]; ok {
			return QuoteIdentifier(mapped)
		}
	}

	if len(path) == 0 {
		if field == "" {
			return ""
		}
		return QuoteIdentifier(field)
	}
	return QuotePath(path)
}

// encodeIn encodes IN/NOT IN predicates.
func (e *DuckDBEncoder) encodeIn(col string, p Predicate, notIn bool) string {
	var values []string
	for _, v := range p.Values {
		encoded := e.formatValue(p.Type, v)
		if encoded == "" {
			return ""
		}
		values = append(values, encoded)
	}

	if len(values) == 0 {
		return ""
	}

	list := "(" + strings.Join(values, ", ") + ")"
	if notIn {
		return "(" + col + " NOT IN " + list + " OR " + col + " IS NULL)"
	}
	return col + " IN " + list
}

// encodeContains encodes substring predicates as LIKE/ILIKE.
func (e *DuckDBEncoder) encodeContains(col string, p Predicate) string {
	s, ok := p.Value.(string)
	if !ok {
		return ""
	}

	op := "LIKE"
	if p.Fold {
		op = "ILIKE"
	}
	pattern := quoteLiteral(containsPattern(s)) + ` ESCAPE '\'`

	if p.Op == CompareNotContains {
		return "(" + col + " NOT " + op + " " + pattern + " OR " + col + " IS NULL)"
	}
	return col + " " + op + " " + pattern
}

// FormatValue renders a converted argument of type t as a DuckDB literal.
// Returns empty string if the value cannot be represented.
func (e *DuckDBEncoder) FormatValue(t *Type, v any) string {
	return e.formatValue(t, v)
}

// formatValue formats a value based on the kind of its type.
func (e *DuckDBEncoder) formatValue(t *Type, v any) string {
	if v == nil {
		return "NULL"
	}

	switch t.Kind {
	case KindBoolean:
		return e.formatBoolValue(v)
	case KindInt:
		return e.formatIntValue(v)
	case KindDecimal:
		return e.formatDecimalValue(v)
	case KindString:
		return e.formatStringValue(v)
	case KindDate:
		return e.formatDateValue(v)
	case KindDateTime:
		return e.formatTimestampValue(v)
	case KindCustom:
		if t.Literal == nil {
			return ""
		}
		lit, ok := t.Literal(v)
		if !ok {
			return ""
		}
		return lit
	default:
		return ""
	}
}

// formatBoolValue formats a boolean value.
func (e *DuckDBEncoder) formatBoolValue(data any) string {
	if b, ok := data.(bool); ok {
		if b {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

// formatIntValue formats a signed integer value.
func (e *DuckDBEncoder) formatIntValue(data any) string {
	switch v := data.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

// formatDecimalValue formats a decimal value.
func (e *DuckDBEncoder) formatDecimalValue(data any) string {
	switch v := data.(type) {
	case decimal.Decimal:
		return v.String()
	case string:
		if _, err := decimal.NewFromString(v); err != nil {
			return ""
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// formatStringValue formats a string value with proper escaping.
func (e *DuckDBEncoder) formatStringValue(data any) string {
	switch v := data.(type) {
	case string:
		return quoteLiteral(v)
	default:
		return ""
	}
}

// formatDateValue formats a date value.
func (e *DuckDBEncoder) formatDateValue(data any) string {
	switch v := data.(type) {
	case time.Time:
		return "DATE '" + v.Format("2006-01-02") + "'"
	default:
		return ""
	}
}

// formatTimestampValue formats a timestamp value in UTC.
func (e *DuckDBEncoder) formatTimestampValue(data any) string {
	t, ok := data.(time.Time)
	if !ok {
		return ""
	}
	t = t.UTC()

	// Format with microsecond precision if needed
	formatted := t.Format("2006-01-02 15:04:05")
	if micro := t.Nanosecond() / 1000; micro != 0 {
		formatted = fmt.Sprintf("%s.%06d", formatted, micro)
	}

	return "TIMESTAMP '" + formatted + "'"
}
