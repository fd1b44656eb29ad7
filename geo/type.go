// Package geo provides a geometry field type for the filter engine and the
// Arrow extension type of WKB geometry columns.
package geo

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/hugr-lab/lumi-filter/filter"
)

// TypeName is the schema type name of geometry fields.
const TypeName = "geometry"

// Geometry returns the filter type of geometry fields. Literals are WKT or
// "lon lat" pairs; record values may be orb geometries, WKB or WKT.
// Geometries have no order: gt/gte/lt/lte are not supported.
func Geometry() *filter.Type {
	return &filter.Type{
		Kind:    filter.KindCustom,
		Name:    TypeName,
		Ops:     filter.CustomOps,
		Convert: convertGeometry,
		Equal:   equal,
		Literal: Literal,
	}
}

// Point is Geometry restricted to point literals.
func Point() *filter.Type {
	t := Geometry()
	t.Name = "point"
	t.Convert = func(raw string) (any, bool) {
		g, ok := convertGeometry(raw)
		if !ok {
			return nil, false
		}
		p, ok := g.(orb.Point)
		return p, ok
	}
	return t
}

func convertGeometry(raw string) (any, bool) {
	g, err := Parse(raw)
	if err != nil {
		return nil, false
	}
	if Validate(g) != nil {
		return nil, false
	}
	return g, true
}

func equal(v, arg any) bool {
	want, ok := arg.(orb.Geometry)
	if !ok {
		return false
	}
	got, ok := FromValue(v)
	if !ok {
		return false
	}
	return orb.Equal(got, want)
}

// Literal renders a geometry as a DuckDB spatial constructor call.
func Literal(arg any) (string, bool) {
	g, ok := arg.(orb.Geometry)
	if !ok || g == nil {
		return "", false
	}
	text := strings.ReplaceAll(wkt.MarshalString(g), "'", "''")
	return "ST_GeomFromText('" + text + "')", true
}
