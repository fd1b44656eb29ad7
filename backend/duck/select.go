// Package duck implements the query-builder backend for DuckDB: predicates
// and order specs are translated into an immutable SELECT statement.
package duck

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/hugr-lab/lumi-filter/filter"
)

// Select is an immutable SELECT builder. Every method returns a new value.
type Select struct {
	table   string
	columns []string
	where   []string
	orderBy []string
	limit   int
	offset  int

	enc    *filter.DuckDBEncoder
	logger *slog.Logger
}

// Option configures a Select.
type Option func(*Select)

// WithEncoderOptions sets column mapping and column expressions.
func WithEncoderOptions(opts *filter.EncoderOptions) Option {
	return func(s *Select) {
		s.enc = filter.NewDuckDBEncoder(opts)
	}
}

// WithLogger sets the logger used to report dropped predicates.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Select) {
		s.logger = logger
	}
}

// From starts a query over table. The table reference is inserted verbatim
// and may be a qualified name or a parenthesized subquery.
func From(table string, opts ...Option) Select {
	s := Select{table: table}
	for _, opt := range opts {
		opt(&s)
	}
	if s.enc == nil {
		s.enc = filter.NewDuckDBEncoder(nil)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Columns sets the select list. Names are quoted when needed.
func (s Select) Columns(names ...string) Select {
	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = filter.QuoteIdentifier(n)
	}
	s.columns = cols
	return s
}

// Where adds a raw condition joined with AND.
func (s Select) Where(cond string) Select {
	if cond == "" {
		return s
	}
	s.where = append(slices.Clip(s.where), cond)
	return s
}

// Filter adds the translation of p as a condition.
// Predicates the encoder cannot express are dropped with a warning.
func (s Select) Filter(p filter.Predicate) Select {
	cond := s.enc.Encode(p)
	if cond == "" {
		s.logger.Warn("Predicate dropped: no SQL translation",
			"field", p.Field,
			"predicate", p.String(),
		)
		return s
	}
	return s.Where(cond)
}

// Order puts the keys of spec in front of any existing ordering, so the
// latest ordering is primary and earlier ones break ties.
func (s Select) Order(spec filter.OrderSpec) Select {
	body := s.enc.EncodeOrder(spec)
	if body == "" {
		return s
	}
	s.orderBy = append([]string{body}, s.orderBy...)
	return s
}

// OrderBy appends a raw ORDER BY term.
func (s Select) OrderBy(term string) Select {
	s.orderBy = append(slices.Clip(s.orderBy), term)
	return s
}

// Limit sets LIMIT; zero or negative removes it.
func (s Select) Limit(n int) Select {
	s.limit = n
	return s
}

// Offset sets OFFSET; zero or negative removes it.
func (s Select) Offset(n int) Select {
	s.offset = n
	return s
}

// Conditions returns the WHERE conditions added so far.
func (s Select) Conditions() []string {
	return slices.Clone(s.where)
}

// SQL renders the statement.
func (s Select) SQL() string {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if len(s.columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(s.columns, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(s.table)

	switch len(s.where) {
	case 0:
	case 1:
		sb.WriteString(" WHERE ")
		sb.WriteString(s.where[0])
	default:
		sb.WriteString(" WHERE (")
		sb.WriteString(strings.Join(s.where, ") AND ("))
		sb.WriteString(")")
	}

	if len(s.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(s.orderBy, ", "))
	}
	if s.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(s.limit))
	}
	if s.offset > 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(s.offset))
	}

	return sb.String()
}

// String implements fmt.Stringer.
func (s Select) String() string {
	return s.SQL()
}
