package duck

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"slices"
	"strings"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/hugr-lab/lumi-filter/backend/memory"
	"github.com/hugr-lab/lumi-filter/filter"
	"github.com/hugr-lab/lumi-filter/record"
)

func pred(t *testing.T, field string, typ *filter.Type, op filter.Operator, raw string) filter.Predicate {
	t.Helper()
	p, err := filter.BuildPredicate(field, filter.SplitPath(field), typ, op, raw)
	if err != nil {
		t.Fatalf("BuildPredicate(%s, %s, %q) failed: %v", field, op, raw, err)
	}
	return p
}

func TestSelectSQL(t *testing.T) {
	q := From("people").
		Columns("name", "order").
		Filter(pred(t, "age", filter.Int, filter.OpGte, "18")).
		Filter(pred(t, "age", filter.Int, filter.OpLt, "30")).
		Order(filter.OrderSpec{{Field: "name", Path: []string{"name"}, Type: filter.String, Desc: true}}).
		Limit(10).
		Offset(5)

	expected := `SELECT name, "order" FROM people WHERE (age >= 18) AND (age < 30) ORDER BY name DESC NULLS LAST LIMIT 10 OFFSET 5`
	if got := q.SQL(); got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}
}

func TestSelectImmutable(t *testing.T) {
	base := From("people").Where("age > 1")
	a := base.Where("name = 'a'")
	b := base.Where("name = 'b'")

	if got := base.SQL(); got != "SELECT * FROM people WHERE age > 1" {
		t.Errorf("base modified: %s", got)
	}
	if !strings.HasSuffix(a.SQL(), "(name = 'a')") || !strings.HasSuffix(b.SQL(), "(name = 'b')") {
		t.Errorf("branches share state: %s | %s", a.SQL(), b.SQL())
	}
}

func TestSelectOrderPrecedence(t *testing.T) {
	q := From("people").
		Order(filter.OrderSpec{{Field: "name", Path: []string{"name"}, Type: filter.String}}).
		Order(filter.OrderSpec{{Field: "age", Path: []string{"age"}, Type: filter.Int}})

	expected := "SELECT * FROM people ORDER BY age ASC NULLS LAST, name ASC NULLS LAST"
	if got := q.SQL(); got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}
}

func TestSelectDropsUntranslatable(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	opaque := &filter.Type{Kind: filter.KindCustom, Name: "opaque", Ops: filter.CustomOps, Convert: filter.ConvertString}
	q := From("t", WithLogger(logger)).Filter(pred(t, "shape", opaque, filter.OpExact, "x"))

	if got := q.SQL(); got != "SELECT * FROM t" {
		t.Errorf("expected no WHERE clause, got '%s'", got)
	}
	if !strings.Contains(buf.String(), "Predicate dropped") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestSelectColumnMapping(t *testing.T) {
	q := From("users", WithEncoderOptions(&filter.EncoderOptions{
		ColumnMapping: map[string]string{"user": "username"},
	})).Filter(pred(t, "user", filter.String, filter.OpIContains, "ann"))

	expected := `SELECT * FROM users WHERE username ILIKE '%ann%' ESCAPE '\'`
	if got := q.SQL(); got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}
}

func openDuckDB(t *testing.T) *sql.DB {
	t.Helper()

	// Open in-memory DuckDB database
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("DuckDB not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE people (
			name VARCHAR,
			age INTEGER,
			status VARCHAR,
			joined DATE,
			score DOUBLE,
			active BOOLEAN,
			profile STRUCT(age INTEGER)
		)`,
		`INSERT INTO people VALUES
			('John Doe', 25, 'active', DATE '2023-03-01', 7.5, true, {'age': 25}),
			('Jane Smith', 30, 'inactive', DATE '2022-11-15', 9.0, false, {'age': NULL}),
			('Bob Stone', 35, NULL, DATE '2021-06-30', NULL, true, NULL),
			('Alice Doe', 30, 'active', NULL, 8.25, NULL, {'age': 41}),
			('Carl 100%', 41, 'on_leave', DATE '2020-01-01', 1.0, false, {'age': 19})`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to prepare table: %v", err)
		}
	}
	return db
}

func recordNames(records []record.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		name, _ := r["name"].(string)
		out = append(out, name)
	}
	return out
}

func TestParityWithMemory(t *testing.T) {
	db := openDuckDB(t)
	ctx := context.Background()

	all, err := From("people").Query(ctx, db)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	mirror := memory.New(all)

	tests := []struct {
		name  string
		field string
		typ   *filter.Type
		op    filter.Operator
		raw   string
	}{
		{"icontains", "name", filter.String, filter.OpIContains, "JOHN"},
		{"contains", "name", filter.String, filter.OpIn, "Doe"},
		{"contains wildcard", "name", filter.String, filter.OpContains, "100%"},
		{"not contains", "name", filter.String, filter.OpNotIn, "Doe"},
		{"underscore literal", "status", filter.String, filter.OpContains, "n_l"},
		{"ne with nulls", "status", filter.String, filter.OpNe, "inactive"},
		{"exact string", "status", filter.String, filter.OpExact, "active"},
		{"gte", "age", filter.Int, filter.OpGte, "30"},
		{"lt", "age", filter.Int, filter.OpLt, "30"},
		{"int in", "age", filter.Int, filter.OpIn, "25,35,bad"},
		{"int nin", "age", filter.Int, filter.OpNotIn, "25,35"},
		{"date", "joined", filter.Date, filter.OpLt, "2023-01-01"},
		{"date ne", "joined", filter.Date, filter.OpNe, "2021-06-30"},
		{"decimal on double", "score", filter.Decimal, filter.OpGt, "8"},
		{"boolean", "active", filter.Boolean, filter.OpExact, "true"},
		{"boolean ne", "active", filter.Boolean, filter.OpNe, "1"},
		{"nested gte", "profile.age", filter.Int, filter.OpGte, "21"},
		{"nested ne", "profile.age", filter.Int, filter.OpNe, "25"},
		{"isnull", "score", filter.Decimal, filter.OpIsNull, "true"},
		{"is not null", "profile.age", filter.Int, filter.OpIsNull, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pred(t, tt.field, tt.typ, tt.op, tt.raw)

			rows, err := From("people").Filter(p).Query(ctx, db)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			got := recordNames(rows)
			want := recordNames(mirror.Filter(p).Records())

			slices.Sort(got)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Errorf("sql %v, memory %v", got, want)
			}
		})
	}
}

func TestOrderParityWithMemory(t *testing.T) {
	db := openDuckDB(t)
	ctx := context.Background()

	all, err := From("people").Query(ctx, db)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	mirror := memory.New(all)

	specs := []filter.OrderSpec{
		{
			{Field: "age", Path: []string{"age"}, Type: filter.Int},
			{Field: "name", Path: []string{"name"}, Type: filter.String, Desc: true},
		},
		{
			{Field: "score", Path: []string{"score"}, Type: filter.Decimal, Desc: true},
		},
		{
			{Field: "joined", Path: []string{"joined"}, Type: filter.Date},
		},
		{
			{Field: "profile.age", Path: []string{"profile", "age"}, Type: filter.Int, Desc: true},
			{Field: "name", Path: []string{"name"}, Type: filter.String},
		},
	}

	for _, spec := range specs {
		rows, err := From("people").Order(spec).Query(ctx, db)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		got := recordNames(rows)
		want := recordNames(mirror.Order(spec).Records())
		if !slices.Equal(got, want) {
			t.Errorf("spec %v: sql %v, memory %v", spec, got, want)
		}
	}
}
