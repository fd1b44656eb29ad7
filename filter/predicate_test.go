package filter

import (
	"errors"
	"testing"
)

func TestBuildPredicate(t *testing.T) {
	tests := []struct {
		name   string
		typ    *Type
		op     Operator
		raw    string
		want   CompareOp
		fold   bool
		values int
	}{
		{"int exact", Int, OpExact, "5", CompareEq, false, 0},
		{"int ne", Int, OpNe, "5", CompareNe, false, 0},
		{"int gte", Int, OpGte, "18", CompareGte, false, 0},
		{"int in", Int, OpIn, "1,2,3", CompareIn, false, 3},
		{"int nin", Int, OpNotIn, "1,x", CompareNotIn, false, 1},
		{"string in", String, OpIn, "oh", CompareContains, false, 0},
		{"string contains", String, OpContains, "oh", CompareContains, false, 0},
		{"string iin", String, OpIContains, "OH", CompareContains, true, 0},
		{"string nin", String, OpNotIn, "oh", CompareNotContains, false, 0},
		{"boolean exact", Boolean, OpExact, "true", CompareEq, false, 0},
		{"isnull", Date, OpIsNull, "true", CompareIsNull, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildPredicate("f", []string{"f"}, tt.typ, tt.op, tt.raw)
			if err != nil {
				t.Fatalf("BuildPredicate failed: %v", err)
			}
			if p.Op != tt.want {
				t.Errorf("expected op %s, got %s", tt.want, p.Op)
			}
			if p.Fold != tt.fold {
				t.Errorf("expected fold %v, got %v", tt.fold, p.Fold)
			}
			if len(p.Values) != tt.values {
				t.Errorf("expected %d values, got %d", tt.values, len(p.Values))
			}
		})
	}
}

func TestBuildPredicateErrors(t *testing.T) {
	noOrder := &Type{Kind: KindCustom, Name: "tag", Ops: CustomOps.With(OpGt), Convert: ConvertString}

	tests := []struct {
		name string
		typ  *Type
		op   Operator
		raw  string
		want error
	}{
		{"boolean gt", Boolean, OpGt, "true", ErrUnsupportedOperator},
		{"int contains", Int, OpContains, "1", ErrUnsupportedOperator},
		{"int invalid", Int, OpExact, "abc", ErrInvalidValue},
		{"int empty", Int, OpGte, "", ErrInvalidValue},
		{"int in all invalid", Int, OpIn, "a,b", ErrInvalidValue},
		{"isnull invalid", Int, OpIsNull, "maybe", ErrInvalidValue},
		{"custom not ordered", noOrder, OpGt, "x", ErrNotComparable},
		{"nil type", nil, OpExact, "x", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPredicate("f", []string{"f"}, tt.typ, tt.op, tt.raw)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCompareOpNegated(t *testing.T) {
	for _, op := range []CompareOp{CompareNe, CompareNotIn, CompareNotContains} {
		if !op.Negated() {
			t.Errorf("expected %s to be negated", op)
		}
	}
	for _, op := range []CompareOp{CompareEq, CompareGt, CompareIn, CompareContains, CompareIsNull} {
		if op.Negated() {
			t.Errorf("expected %s not to be negated", op)
		}
	}
}

func TestTypeEquals(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
		v    any
		arg  any
		eq   bool
		ok   bool
	}{
		{"int vs float", Int, 25.0, int64(25), true, true},
		{"int vs uint8", Int, uint8(3), int64(3), true, true},
		{"int vs string", Int, "25", int64(25), true, true},
		{"int mismatch", Int, 26, int64(25), false, true},
		{"int uncoercible", Int, "abc", int64(25), false, false},
		{"boolean from int", Boolean, 1, true, true, true},
		{"string exact", String, "Jane", "Jane", true, true},
		{"string case", String, "jane", "Jane", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq, ok := tt.typ.Equals(tt.v, tt.arg)
			if eq != tt.eq || ok != tt.ok {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.eq, tt.ok, eq, ok)
			}
		})
	}
}
