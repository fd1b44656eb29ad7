package filter

import (
	"errors"
	"fmt"
	"strings"
)

// CompareOp is the backend-neutral comparison carried by a Predicate.
type CompareOp string

const (
	CompareEq          CompareOp = "EQ"
	CompareNe          CompareOp = "NE"
	CompareGt          CompareOp = "GT"
	CompareGte         CompareOp = "GTE"
	CompareLt          CompareOp = "LT"
	CompareLte         CompareOp = "LTE"
	CompareIn          CompareOp = "IN"
	CompareNotIn       CompareOp = "NOT_IN"
	CompareContains    CompareOp = "CONTAINS"
	CompareNotContains CompareOp = "NOT_CONTAINS"
	CompareIsNull      CompareOp = "IS_NULL"
)

// Negated reports whether the comparison matches records that lack a value.
func (c CompareOp) Negated() bool {
	switch c {
	case CompareNe, CompareNotIn, CompareNotContains:
		return true
	}
	return false
}

// Errors returned by BuildPredicate. The filter engine treats all of them as
// a reason to skip the parameter.
var (
	ErrUnsupportedOperator = errors.New("unsupported operator")
	ErrInvalidValue        = errors.New("invalid value")
	ErrNotComparable       = errors.New("type is not comparable")
)

// Predicate is "field compared with op against a converted value".
// Backends evaluate it directly or translate it to native conditions.
type Predicate struct {
	// Field is the request name of the field.
	Field string
	// Path is the source path inside a record or the column path in a query.
	Path []string
	// Type is the semantic type of the field.
	Type *Type
	// Op is the comparison.
	Op CompareOp
	// Fold requests case-insensitive comparison (string contains only).
	Fold bool
	// Value is the argument of scalar comparisons. For CompareIsNull it holds
	// a bool: true selects missing values, false selects present ones.
	Value any
	// Values is the argument list of CompareIn and CompareNotIn.
	Values []any
}

// BuildPredicate converts raw with t and builds the predicate for op.
func BuildPredicate(field string, path []string, t *Type, op Operator, raw string) (Predicate, error) {
	if t == nil {
		return Predicate{}, fmt.Errorf("%w: field %s has no type", ErrInvalidValue, field)
	}
	if !t.Ops.Has(op) {
		return Predicate{}, fmt.Errorf("%w: %s on %s", ErrUnsupportedOperator, op, t)
	}

	p := Predicate{Field: field, Path: path, Type: t}

	switch op {
	case OpIsNull:
		v, ok := ConvertBoolean(raw)
		if !ok {
			return Predicate{}, fmt.Errorf("%w: %q for %s", ErrInvalidValue, raw, op)
		}
		p.Op, p.Value = CompareIsNull, v
		return p, nil

	case OpIn, OpNotIn, OpContains, OpIContains:
		if t.Kind == KindString {
			p.Op = CompareContains
			if op == OpNotIn {
				p.Op = CompareNotContains
			}
			p.Fold = op == OpIContains
			p.Value = raw
			return p, nil
		}
		if op == OpContains || op == OpIContains {
			return Predicate{}, fmt.Errorf("%w: %s on %s", ErrUnsupportedOperator, op, t)
		}
		values, ok := ConvertList(t, raw)
		if !ok {
			return Predicate{}, fmt.Errorf("%w: %q for %s", ErrInvalidValue, raw, t)
		}
		p.Op = CompareIn
		if op == OpNotIn {
			p.Op = CompareNotIn
		}
		p.Values = values
		return p, nil
	}

	if op.IsOrdering() && !t.Ordered() {
		return Predicate{}, fmt.Errorf("%w: %s", ErrNotComparable, t)
	}

	v, ok := Convert(t, raw)
	if !ok {
		return Predicate{}, fmt.Errorf("%w: %q for %s", ErrInvalidValue, raw, t)
	}
	p.Value = v

	switch op {
	case OpExact:
		p.Op = CompareEq
	case OpNe:
		p.Op = CompareNe
	case OpGt:
		p.Op = CompareGt
	case OpGte:
		p.Op = CompareGte
	case OpLt:
		p.Op = CompareLt
	case OpLte:
		p.Op = CompareLte
	default:
		return Predicate{}, fmt.Errorf("%w: %s", ErrUnsupportedOperator, op)
	}
	return p, nil
}

// String renders the predicate for logs.
func (p Predicate) String() string {
	var arg any = p.Value
	if p.Op == CompareIn || p.Op == CompareNotIn {
		arg = p.Values
	}
	op := string(p.Op)
	if p.Fold {
		op = "I" + op
	}
	return fmt.Sprintf("%s %s %v", strings.Join(p.Path, "."), op, arg)
}
