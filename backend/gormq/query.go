// Package gormq implements the query-builder backend for GORM: predicates
// and order specs become clause expressions on a *gorm.DB chain.
package gormq

import (
	"log/slog"
	"slices"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hugr-lab/lumi-filter/filter"
)

// likeEscape is the escape character of generated LIKE patterns.
const likeEscape = `\`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Query wraps a *gorm.DB. Filter and Order return a new Query over the
// chained statement; the caller materializes DB() with Find or Scan.
type Query struct {
	db        *gorm.DB
	order     filter.OrderSpec
	columns   map[string]string
	nullsLast bool
	logger    *slog.Logger
}

// Option configures a Query.
type Option func(*Query)

// WithColumns maps field names to column names.
func WithColumns(columns map[string]string) Option {
	return func(q *Query) {
		q.columns = columns
	}
}

// WithNullsLast renders ORDER BY terms with NULLS LAST.
// Use it with dialects that support the syntax (PostgreSQL, DuckDB, SQLite).
func WithNullsLast() Option {
	return func(q *Query) {
		q.nullsLast = true
	}
}

// WithLogger sets the logger used to report dropped predicates.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Query) {
		q.logger = logger
	}
}

// New wraps db.
func New(db *gorm.DB, opts ...Option) Query {
	q := Query{db: db}
	for _, opt := range opts {
		opt(&q)
	}
	if q.logger == nil {
		q.logger = slog.Default()
	}
	return q
}

// DB returns the chained statement with the accumulated ORDER BY terms.
func (q Query) DB() *gorm.DB {
	if len(q.order) == 0 {
		return q.db
	}
	return q.db.Session(&gorm.Session{}).Clauses(q.orderBy())
}

// Filter adds the clause expression of p.
func (q Query) Filter(p filter.Predicate) Query {
	expr, ok := Expression(p, q.column(p.Field, p.Path))
	if !ok {
		q.logger.Warn("Predicate dropped: no clause translation",
			"field", p.Field,
			"predicate", p.String(),
		)
		return q
	}
	q.db = q.db.Where(expr)
	return q
}

// Order puts the keys of spec in front of any earlier ordering, so the
// latest ordering is primary and earlier ones break ties.
func (q Query) Order(spec filter.OrderSpec) Query {
	if len(spec) == 0 {
		return q
	}
	q.order = append(slices.Clone(spec), q.order...)
	return q
}

func (q Query) orderBy() clause.OrderBy {
	if q.nullsLast {
		terms := make([]string, len(q.order))
		vars := make([]any, len(q.order))
		for i, key := range q.order {
			dir := "ASC"
			if key.Desc {
				dir = "DESC"
			}
			terms[i] = "? " + dir + " NULLS LAST"
			vars[i] = q.column(key.Field, key.Path)
		}
		return clause.OrderBy{
			Expression: clause.Expr{SQL: strings.Join(terms, ", "), Vars: vars, WithoutParentheses: true},
		}
	}

	columns := make([]clause.OrderByColumn, len(q.order))
	for i, key := range q.order {
		columns[i] = clause.OrderByColumn{Column: q.column(key.Field, key.Path), Desc: key.Desc}
	}
	return clause.OrderBy{Columns: columns}
}

func (q Query) column(field string, path []string) clause.Column {
	if name, ok := q.columns[field]; ok {
		return clause.Column{Name: name}
	}
	if len(path) == 0 {
		return clause.Column{Name: field}
	}
	return clause.Column{Name: strings.Join(path, ".")}
}

// Expression translates p into a GORM clause expression on col.
// Negated comparisons include NULL rows to match in-memory evaluation.
func Expression(p filter.Predicate, col clause.Column) (clause.Expression, bool) {
	isNull := clause.Eq{Column: col, Value: nil}

	if p.Type != nil && p.Type.Kind == filter.KindCustom && p.Op != filter.CompareIsNull {
		return customExpr(p, col, isNull)
	}

	switch p.Op {
	case filter.CompareEq:
		return clause.Eq{Column: col, Value: p.Value}, p.Value != nil
	case filter.CompareNe:
		return clause.Or(clause.Neq{Column: col, Value: p.Value}, isNull), p.Value != nil
	case filter.CompareGt:
		return clause.Gt{Column: col, Value: p.Value}, true
	case filter.CompareGte:
		return clause.Gte{Column: col, Value: p.Value}, true
	case filter.CompareLt:
		return clause.Lt{Column: col, Value: p.Value}, true
	case filter.CompareLte:
		return clause.Lte{Column: col, Value: p.Value}, true
	case filter.CompareIn:
		if len(p.Values) == 0 {
			return nil, false
		}
		return clause.IN{Column: col, Values: p.Values}, true
	case filter.CompareNotIn:
		if len(p.Values) == 0 {
			return nil, false
		}
		return clause.Or(clause.Not(clause.IN{Column: col, Values: p.Values}), isNull), true
	case filter.CompareContains, filter.CompareNotContains:
		s, ok := p.Value.(string)
		if !ok {
			return nil, false
		}
		like := likeExpr(col, s, p.Fold, p.Op == filter.CompareNotContains)
		if p.Op == filter.CompareNotContains {
			return clause.Or(like, isNull), true
		}
		return like, true
	case filter.CompareIsNull:
		want, ok := p.Value.(bool)
		if !ok {
			return nil, false
		}
		if want {
			return isNull, true
		}
		return clause.Neq{Column: col, Value: nil}, true
	}
	return nil, false
}

func likeExpr(col clause.Column, s string, fold, negate bool) clause.Expression {
	pattern := "%" + likeEscaper.Replace(s) + "%"
	target := "?"
	if fold {
		pattern = strings.ToLower(pattern)
		target = "LOWER(?)"
	}
	op := " LIKE "
	if negate {
		op = " NOT LIKE "
	}
	return clause.Expr{
		SQL:  target + op + "? ESCAPE ?",
		Vars: []any{col, pattern, likeEscape},
	}
}

// customExpr renders custom-typed values through Type.Literal since the
// driver cannot bind them.
func customExpr(p filter.Predicate, col clause.Column, isNull clause.Expression) (clause.Expression, bool) {
	if p.Type.Literal == nil {
		return nil, false
	}

	var lits []string
	switch p.Op {
	case filter.CompareEq, filter.CompareNe:
		lit, ok := p.Type.Literal(p.Value)
		if !ok {
			return nil, false
		}
		lits = []string{lit}
	case filter.CompareIn, filter.CompareNotIn:
		for _, v := range p.Values {
			lit, ok := p.Type.Literal(v)
			if !ok {
				return nil, false
			}
			lits = append(lits, lit)
		}
		if len(lits) == 0 {
			return nil, false
		}
	default:
		return nil, false
	}
	for _, lit := range lits {
		if strings.Contains(lit, "?") {
			return nil, false
		}
	}

	var expr clause.Expression
	switch p.Op {
	case filter.CompareEq:
		expr = clause.Expr{SQL: "? = " + lits[0], Vars: []any{col}}
	case filter.CompareNe:
		expr = clause.Or(clause.Expr{SQL: "? <> " + lits[0], Vars: []any{col}}, isNull)
	case filter.CompareIn:
		expr = clause.Expr{SQL: "? IN (" + strings.Join(lits, ", ") + ")", Vars: []any{col}}
	case filter.CompareNotIn:
		expr = clause.Or(clause.Expr{SQL: "? NOT IN (" + strings.Join(lits, ", ") + ")", Vars: []any{col}}, isNull)
	}
	return expr, true
}
