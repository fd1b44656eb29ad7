package lumi

import (
	"strings"

	"github.com/hugr-lab/lumi-filter/filter"
)

// Field describes a filterable field. Fields are immutable once the schema
// is built.
type Field struct {
	// Name is the request name, e.g. "age" in "age__gte".
	Name string
	// Source is the path of the value inside a record or the column path
	// of a query builder.
	Source []string
	Type   *filter.Type
	// Ops is the set of operators honored for this field.
	Ops filter.OpSet
}

// Allows reports whether op may be used with the field.
func (f Field) Allows(op filter.Operator) bool {
	return f.Ops.Has(op)
}

// Ordered reports whether the field can be used in ordering.
func (f Field) Ordered() bool {
	return f.Type.Ordered()
}

// SourceName returns the dotted source path.
func (f Field) SourceName() string {
	return strings.Join(f.Source, filter.PathSeparator)
}

// FieldDef declares a field for SchemaBuilder.
type FieldDef struct {
	// Name is the request name.
	// REQUIRED: MUST be non-empty, MUST NOT contain "__", end in "!" or be
	// the reserved name "ordering".
	Name string

	// Source is the dotted source path.
	// OPTIONAL: Defaults to Name.
	Source string

	// Type is the field type, a built-in such as filter.Int or a custom type.
	// REQUIRED: MUST NOT be nil; custom types MUST have a converter.
	Type *filter.Type

	// Ops restricts the operators of the type.
	// OPTIONAL: Defaults to every operator of the type.
	Ops []filter.Operator
}
