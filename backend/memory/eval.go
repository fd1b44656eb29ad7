package memory

import (
	"strings"

	"github.com/hugr-lab/lumi-filter/filter"
	"github.com/hugr-lab/lumi-filter/record"
)

// Match evaluates p against rec.
//
// A value that is missing or nil never matches a positive comparison and
// always matches a negated one (ne, nin and not-contains), mirroring SQL
// "x <> v OR x IS NULL". A present value that cannot be coerced to the
// field type is never equal to the argument.
func Match(p filter.Predicate, rec record.Record) bool {
	v, found := record.Resolve(rec, p.Path)
	present := found && v != nil

	if p.Op == filter.CompareIsNull {
		want, _ := p.Value.(bool)
		return want != present
	}
	if !present {
		return p.Op.Negated()
	}

	switch p.Op {
	case filter.CompareEq:
		eq, ok := p.Type.Equals(v, p.Value)
		return ok && eq
	case filter.CompareNe:
		eq, ok := p.Type.Equals(v, p.Value)
		return !ok || !eq
	case filter.CompareGt, filter.CompareGte, filter.CompareLt, filter.CompareLte:
		return compare(p, v)
	case filter.CompareIn:
		return member(p, v)
	case filter.CompareNotIn:
		return !member(p, v)
	case filter.CompareContains:
		return contains(p, v)
	case filter.CompareNotContains:
		return !contains(p, v)
	}
	return false
}

func compare(p filter.Predicate, v any) bool {
	if !p.Type.Ordered() {
		return false
	}
	c, ok := p.Type.Compare(v, p.Value)
	if !ok {
		return false
	}
	switch p.Op {
	case filter.CompareGt:
		return c > 0
	case filter.CompareGte:
		return c >= 0
	case filter.CompareLt:
		return c < 0
	case filter.CompareLte:
		return c <= 0
	}
	return false
}

func member(p filter.Predicate, v any) bool {
	for _, arg := range p.Values {
		if eq, ok := p.Type.Equals(v, arg); ok && eq {
			return true
		}
	}
	return false
}

func contains(p filter.Predicate, v any) bool {
	s, ok := filter.ToString(v)
	if !ok {
		return false
	}
	needle, _ := p.Value.(string)
	if p.Fold {
		return strings.Contains(strings.ToLower(s), strings.ToLower(needle))
	}
	return strings.Contains(s, needle)
}
