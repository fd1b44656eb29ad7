package filter

import "strings"

// Kind identifies the semantic type of a filterable field.
type Kind string

const (
	KindInt      Kind = "int"
	KindString   Kind = "string"
	KindDecimal  Kind = "decimal"
	KindBoolean  Kind = "boolean"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindCustom   Kind = "custom"
)

// kindAliases maps common type spellings to kinds.
// Both lower-case names and SQL type names are accepted.
var kindAliases = map[string]Kind{
	"int":       KindInt,
	"integer":   KindInt,
	"int8":      KindInt,
	"int16":     KindInt,
	"int32":     KindInt,
	"int64":     KindInt,
	"tinyint":   KindInt,
	"smallint":  KindInt,
	"bigint":    KindInt,
	"hugeint":   KindInt,
	"uint8":     KindInt,
	"uint16":    KindInt,
	"uint32":    KindInt,
	"uint64":    KindInt,
	"utinyint":  KindInt,
	"usmallint": KindInt,
	"uinteger":  KindInt,
	"ubigint":   KindInt,
	"long":      KindInt,

	"string":  KindString,
	"str":     KindString,
	"text":    KindString,
	"varchar": KindString,
	"char":    KindString,
	"uuid":    KindString,
	"enum":    KindString,

	"decimal": KindDecimal,
	"numeric": KindDecimal,
	"float":   KindDecimal,
	"float32": KindDecimal,
	"float64": KindDecimal,
	"double":  KindDecimal,
	"real":    KindDecimal,

	"boolean": KindBoolean,
	"bool":    KindBoolean,

	"date": KindDate,

	"datetime":                 KindDateTime,
	"timestamp":                KindDateTime,
	"timestamptz":              KindDateTime,
	"timestamp_tz":             KindDateTime,
	"timestamp_s":              KindDateTime,
	"timestamp_ms":             KindDateTime,
	"timestamp_ns":             KindDateTime,
	"timestamp with time zone": KindDateTime,

	"custom": KindCustom,
}

// NormalizeKind maps a type name to a kind.
// Parameterized SQL names such as DECIMAL(10,2) and VARCHAR(32) are accepted.
// Unknown names fall back to KindString.
func NormalizeKind(name string) Kind {
	n := strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(n, '('); i > 0 {
		n = strings.TrimSpace(n[:i])
	}
	if k, ok := kindAliases[n]; ok {
		return k
	}
	return KindString
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindInt, KindString, KindDecimal, KindBoolean, KindDate, KindDateTime, KindCustom:
		return true
	}
	return false
}

// Type is an entry of the kind dispatch table: the operator set, converter
// and comparers of a semantic type. Built-in types are shared and must not be
// modified; custom types are constructed by callers with Kind set to KindCustom.
type Type struct {
	Kind Kind
	// Name is used in logs and as the schema type name. Defaults to the kind.
	Name string
	// Ops lists the operators a field of this type honors.
	Ops OpSet
	// Convert parses a raw request literal into a typed argument.
	Convert func(raw string) (any, bool)
	// Compare orders a record value against a converted argument.
	// Nil means the type has no total order and ordering operators are skipped.
	Compare func(v, arg any) (int, bool)
	// Equal tests a record value against a converted argument.
	// Optional when Compare is set.
	Equal func(v, arg any) bool
	// Literal renders a converted argument as a SQL literal.
	// Only consulted for custom types; built-in kinds are formatted by the encoder.
	Literal func(arg any) (string, bool)
}

// String returns the type name.
func (t *Type) String() string {
	if t.Name != "" {
		return t.Name
	}
	return string(t.Kind)
}

// Ordered reports whether values of the type can be compared with gt/gte/lt/lte
// and sorted.
func (t *Type) Ordered() bool {
	return t != nil && t.Compare != nil
}

// Equals tests a record value against an argument.
// The second result is false when the value cannot be coerced to the type.
func (t *Type) Equals(v, arg any) (bool, bool) {
	if t.Equal != nil {
		return t.Equal(v, arg), true
	}
	if t.Compare != nil {
		c, ok := t.Compare(v, arg)
		return ok && c == 0, ok
	}
	return false, false
}

var (
	scalarOps  = NewOpSet(OpExact, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNotIn, OpIsNull)
	stringOps  = scalarOps.With(OpContains, OpIContains)
	booleanOps = NewOpSet(OpExact, OpNe, OpIsNull)
	// CustomOps is the default operator set of custom types.
	CustomOps = NewOpSet(OpExact, OpNe, OpIn, OpNotIn, OpIsNull)
)

// Built-in types, one per kind.
var (
	Int = &Type{
		Kind: KindInt, Name: "int", Ops: scalarOps,
		Convert: ConvertInt, Compare: compareNumber,
	}
	String = &Type{
		Kind: KindString, Name: "string", Ops: stringOps,
		Convert: ConvertString, Compare: compareString,
	}
	Decimal = &Type{
		Kind: KindDecimal, Name: "decimal", Ops: scalarOps,
		Convert: ConvertDecimal, Compare: compareNumber,
	}
	Boolean = &Type{
		Kind: KindBoolean, Name: "boolean", Ops: booleanOps,
		Convert: ConvertBoolean, Compare: compareBoolean,
	}
	Date = &Type{
		Kind: KindDate, Name: "date", Ops: scalarOps,
		Convert: ConvertDate, Compare: compareDate,
	}
	DateTime = &Type{
		Kind: KindDateTime, Name: "datetime", Ops: scalarOps,
		Convert: ConvertDateTime, Compare: compareDateTime,
	}
)

var builtinTypes = map[Kind]*Type{
	KindInt:      Int,
	KindString:   String,
	KindDecimal:  Decimal,
	KindBoolean:  Boolean,
	KindDate:     Date,
	KindDateTime: DateTime,
}

// TypeOf returns the built-in type of a kind.
// KindCustom and unknown kinds resolve to String.
func TypeOf(k Kind) *Type {
	if t, ok := builtinTypes[k]; ok {
		return t
	}
	return String
}
