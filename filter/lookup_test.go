package filter

import (
	"reflect"
	"testing"
)

func TestParseLookup(t *testing.T) {
	tests := []struct {
		key      string
		field    string
		operator Operator
	}{
		{"name", "name", OpExact},
		{"name__exact", "name", OpExact},
		{"status!", "status", OpNe},
		{"status__ne", "status", OpNe},
		{"age__gte", "age", OpGte},
		{"age__lt", "age", OpLt},
		{"name__in", "name", OpIn},
		{"name__contains", "name", OpContains},
		{"name__iin", "name", OpIContains},
		{"name__icontains", "name", OpIContains},
		{"name__nin", "name", OpNotIn},
		{"deleted_at__isnull", "deleted_at", OpIsNull},
		{"profile.age__gte", "profile.age", OpGte},
		{"first__name", "first__name", OpExact},
		{"first__name__in", "first__name", OpIn},
		{"__gt", "__gt", OpExact},
		{"!", "!", OpExact},
		{"name__GT", "name__GT", OpExact},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			l := ParseLookup(tt.key, "v")
			if l.Field != tt.field {
				t.Errorf("expected field '%s', got '%s'", tt.field, l.Field)
			}
			if l.Operator != tt.operator {
				t.Errorf("expected operator '%s', got '%s'", tt.operator, l.Operator)
			}
			if l.Raw != "v" || l.Key != tt.key {
				t.Errorf("unexpected lookup %+v", l)
			}
		})
	}
}

func TestParseOrdering(t *testing.T) {
	tests := []struct {
		value    string
		expected []OrderToken
	}{
		{"age", []OrderToken{{Field: "age"}}},
		{"age,-name", []OrderToken{{Field: "age"}, {Field: "name", Desc: true}}},
		{" -age , name ,", []OrderToken{{Field: "age", Desc: true}, {Field: "name"}}},
		{"-,,", nil},
		{"", nil},
		{"profile.age", []OrderToken{{Field: "profile.age"}}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := ParseOrdering(tt.value)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestOpSet(t *testing.T) {
	s := NewOpSet(OpExact, OpGt)
	if !s.Has(OpExact) || !s.Has(OpGt) {
		t.Fatalf("expected members in %s", s)
	}
	if s.Has(OpLt) {
		t.Errorf("unexpected lt in %s", s)
	}
	if s.Has(Operator("bogus")) {
		t.Error("unknown operator must not be a member")
	}

	s = s.With(OpLt).Without(OpGt)
	if got := s.String(); got != "{exact,lt}" {
		t.Errorf("expected '{exact,lt}', got '%s'", got)
	}
}

func TestBuiltinOperatorSets(t *testing.T) {
	tests := []struct {
		typ      *Type
		op       Operator
		expected bool
	}{
		{Int, OpGte, true},
		{Int, OpIn, true},
		{Int, OpContains, false},
		{String, OpIContains, true},
		{String, OpContains, true},
		{String, OpNotIn, true},
		{Boolean, OpExact, true},
		{Boolean, OpNe, true},
		{Boolean, OpGt, false},
		{Boolean, OpIn, false},
		{Date, OpLte, true},
		{DateTime, OpIsNull, true},
		{Decimal, OpIContains, false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String()+"_"+string(tt.op), func(t *testing.T) {
			if got := tt.typ.Ops.Has(tt.op); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
