package filter

import "strings"

// Encoder converts predicates and order specs to SQL strings.
// Implementations handle dialect-specific syntax (DuckDB, PostgreSQL, etc.).
type Encoder interface {
	// Encode converts a single predicate to SQL.
	// Returns empty string if the predicate is unsupported.
	Encode(p Predicate) string

	// EncodeFilters converts all predicates to a WHERE clause body.
	// Returns the condition portion without "WHERE" keyword.
	// Returns empty string if no predicates can be encoded.
	EncodeFilters(preds []Predicate) string

	// EncodeOrder converts an order spec to an ORDER BY body.
	// Returns empty string if no key can be encoded.
	EncodeOrder(spec OrderSpec) string
}

// EncoderOptions configures encoding behavior.
type EncoderOptions struct {
	// ColumnMapping maps field names to target column names.
	// Fields not in the map use their quoted source path.
	ColumnMapping map[string]string

	// ColumnExpressions maps field names to SQL expressions.
	// Takes precedence over ColumnMapping.
	// Use for computed columns or complex transformations.
	ColumnExpressions map[string]string
}

// quoteLiteral returns s as a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// likeEscaper escapes LIKE wildcards; patterns are emitted with ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a LIKE pattern matching s anywhere in the value.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// QuoteIdentifier returns a quoted identifier if needed.
// DuckDB uses double quotes for identifiers.
func QuoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

// QuotePath quotes every segment of a nested column path.
func QuotePath(path []string) string {
	parts := make([]string, len(path))
	for i, seg := range path {
		parts[i] = QuoteIdentifier(seg)
	}
	return strings.Join(parts, ".")
}

var reservedWords = func() map[string]bool {
	words := strings.Fields(`
		SELECT FROM WHERE AND OR NOT NULL TRUE FALSE INSERT UPDATE DELETE CREATE
		DROP ALTER TABLE INDEX JOIN LEFT RIGHT INNER OUTER ON AS IN IS LIKE ILIKE
		BETWEEN EXISTS CASE WHEN THEN ELSE END ORDER BY GROUP HAVING LIMIT OFFSET
		UNION EXCEPT INTERSECT ALL DISTINCT VALUES SET INTO PRIMARY KEY FOREIGN
		REFERENCES CONSTRAINT DEFAULT CHECK UNIQUE ASC DESC NULLS FIRST LAST CAST
		INTERVAL DATE TIME TIMESTAMP ESCAPE`)
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()

// needsQuoting reports whether name is not a plain [A-Za-z_][A-Za-z0-9_]*
// identifier or is a reserved word.
func needsQuoting(name string) bool {
	if name == "" {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return true
		}
	}
	return reservedWords[strings.ToUpper(name)]
}
