package filter

import "strings"

const (
	// OrderingKey is the reserved request parameter carrying the ordering.
	OrderingKey = "ordering"
	// LookupSeparator separates a field name from its operator token.
	LookupSeparator = "__"
	// NotEqualSuffix is the short form of the ne operator.
	NotEqualSuffix = "!"
	// PathSeparator separates segments of nested field names.
	PathSeparator = "."
)

// Lookup is a request parameter split into field name and operator.
type Lookup struct {
	Key      string
	Field    string
	Operator Operator
	Raw      string
}

// ParseLookup decomposes a parameter key.
// A trailing "!" selects ne. Otherwise the segment after the rightmost "__"
// is the operator when it is a known token; in every other case the whole
// key is the field name and the operator is exact.
func ParseLookup(key, raw string) Lookup {
	l := Lookup{Key: key, Field: key, Operator: OpExact, Raw: raw}

	if len(key) > len(NotEqualSuffix) && strings.HasSuffix(key, NotEqualSuffix) {
		l.Field = strings.TrimSuffix(key, NotEqualSuffix)
		l.Operator = OpNe
		return l
	}

	i := strings.LastIndex(key, LookupSeparator)
	if i <= 0 {
		return l
	}
	if op, ok := ParseOperator(key[i+len(LookupSeparator):]); ok {
		l.Field = key[:i]
		l.Operator = op
	}
	return l
}

// OrderToken is one entry of an ordering parameter.
type OrderToken struct {
	Field string
	Desc  bool
}

// ParseOrdering splits an ordering value such as "age,-name".
// Empty tokens are skipped; a leading "-" marks descending order.
func ParseOrdering(s string) []OrderToken {
	var tokens []OrderToken
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		if desc {
			part = strings.TrimSpace(part[1:])
		}
		if part == "" {
			continue
		}
		tokens = append(tokens, OrderToken{Field: part, Desc: desc})
	}
	return tokens
}

// SplitPath splits a dotted field name into path segments.
func SplitPath(name string) []string {
	return strings.Split(name, PathSeparator)
}

// OrderKey is one resolved sort key.
type OrderKey struct {
	Field string
	Path  []string
	Type  *Type
	Desc  bool
}

// OrderSpec is an ordered sequence of sort keys; the first key is primary.
type OrderSpec []OrderKey
