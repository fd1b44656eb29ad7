package lumi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hugr-lab/lumi-filter/filter"
)

// ErrUnsupportedExpression is returned by CompatibleParams for keys with an
// unknown operator.
var ErrUnsupportedExpression = errors.New("unsupported lookup expression")

// compatOperators maps SQL-like operators to lookup suffixes.
var compatOperators = map[string]string{
	"==":    "",
	"!=":    filter.NotEqualSuffix,
	">=":    string(filter.OpGte),
	"<=":    string(filter.OpLte),
	">":     string(filter.OpGt),
	"<":     string(filter.OpLt),
	"LIKE":  string(filter.OpIn),
	"ILIKE": "iin",
}

// CompatibleParams rewrites keys of the form field(op), e.g. "age(>=)" or
// "name(LIKE)", to lookup syntax. Quotes around LIKE values are removed.
// Keys without parentheses are kept. Keys with an unknown operator are
// dropped and reported in the returned error; the other keys are still
// converted.
func CompatibleParams(in map[string]string) (Params, error) {
	out := make(Params, len(in))
	var errs []error

	for key, value := range in {
		field, rest, ok := strings.Cut(key, "(")
		if !ok {
			out[key] = value
			continue
		}

		expr := strings.TrimRight(rest, ")")
		suffix, ok := compatOperators[expr]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q in %q", ErrUnsupportedExpression, expr, key))
			continue
		}

		switch suffix {
		case "":
			key = field
		case filter.NotEqualSuffix:
			key = field + suffix
		default:
			key = field + filter.LookupSeparator + suffix
		}

		if expr == "LIKE" || expr == "ILIKE" {
			value = unquote(value)
		}
		out[key] = value
	}

	return out, errors.Join(errs...)
}

func unquote(s string) string {
	if len(s) > 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
