package filter

import "strings"

// Operator is a lookup token taken from the suffix of a request parameter key.
type Operator string

const (
	OpExact     Operator = "exact"
	OpNe        Operator = "ne"
	OpGt        Operator = "gt"
	OpGte       Operator = "gte"
	OpLt        Operator = "lt"
	OpLte       Operator = "lte"
	OpIn        Operator = "in"
	OpContains  Operator = "contains"
	OpIContains Operator = "icontains"
	OpNotIn     Operator = "nin"
	OpIsNull    Operator = "isnull"
)

// allOperators fixes the bit position of every operator inside an OpSet.
var allOperators = []Operator{
	OpExact, OpNe, OpGt, OpGte, OpLt, OpLte,
	OpIn, OpContains, OpIContains, OpNotIn, OpIsNull,
}

// operatorAliases maps accepted spellings to canonical operators.
var operatorAliases = map[string]Operator{
	"exact":     OpExact,
	"ne":        OpNe,
	"!":         OpNe,
	"gt":        OpGt,
	"gte":       OpGte,
	"lt":        OpLt,
	"lte":       OpLte,
	"in":        OpIn,
	"contains":  OpContains,
	"iin":       OpIContains,
	"icontains": OpIContains,
	"nin":       OpNotIn,
	"isnull":    OpIsNull,
}

// ParseOperator resolves a lookup token to its canonical operator.
// Tokens are matched case-sensitively, "iin" and "icontains" are the same operator.
func ParseOperator(token string) (Operator, bool) {
	op, ok := operatorAliases[token]
	return op, ok
}

// IsOrdering reports whether op needs a total order on the field type.
func (op Operator) IsOrdering() bool {
	switch op {
	case OpGt, OpGte, OpLt, OpLte:
		return true
	}
	return false
}

func (op Operator) bit() OpSet {
	for i, o := range allOperators {
		if o == op {
			return 1 << uint(i)
		}
	}
	return 0
}

// OpSet is an immutable set of operators supported by a field.
type OpSet uint16

// NewOpSet returns a set containing ops.
func NewOpSet(ops ...Operator) OpSet {
	var s OpSet
	for _, op := range ops {
		s |= op.bit()
	}
	return s
}

// Has reports whether op is a member of the set.
func (s OpSet) Has(op Operator) bool {
	b := op.bit()
	return b != 0 && s&b != 0
}

// With returns a copy of the set extended with ops.
func (s OpSet) With(ops ...Operator) OpSet {
	return s | NewOpSet(ops...)
}

// Without returns a copy of the set with ops removed.
func (s OpSet) Without(ops ...Operator) OpSet {
	return s &^ NewOpSet(ops...)
}

// Operators lists the members in canonical order.
func (s OpSet) Operators() []Operator {
	var ops []Operator
	for _, op := range allOperators {
		if s.Has(op) {
			ops = append(ops, op)
		}
	}
	return ops
}

func (s OpSet) String() string {
	ops := s.Operators()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return "{" + strings.Join(names, ",") + "}"
}
