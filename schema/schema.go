// Package schema derives filterable field lists from external type
// information: Arrow schemas, Go struct types, sample records and SQL
// column type names.
//
// Every adapter returns fields in a deterministic order. Nested structures
// are flattened to dotted names ("profile.age"); the dotted name doubles as
// the source path. Type information that cannot be mapped falls back to
// the string kind.
package schema

import (
	"github.com/hugr-lab/lumi-filter/filter"
)

// Field is an introspected field.
type Field struct {
	// Name is the dotted field name.
	Name string
	Kind filter.Kind
	// TypeName is the source type name, e.g. "int32", "DECIMAL(10,2)" or
	// "geometry" for custom kinds.
	TypeName string
}

// Path returns the source path of the field.
func (f Field) Path() []string {
	return filter.SplitPath(f.Name)
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + filter.PathSeparator + name
}
