package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ErrInvalidGeometry is returned for values that are not geometries.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Encode converts a geometry to WKB bytes.
func Encode(geom orb.Geometry) ([]byte, error) {
	if geom == nil {
		return nil, fmt.Errorf("%w: cannot encode nil geometry", ErrInvalidGeometry)
	}
	return wkb.Marshal(geom)
}

// Decode converts WKB bytes to a geometry.
func Decode(b []byte) (orb.Geometry, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: cannot decode empty WKB data", ErrInvalidGeometry)
	}
	return wkb.Unmarshal(b)
}

// Parse reads a WKT literal such as "POINT (30 10)". A bare "lon lat" or
// "lon,lat" pair is read as a point.
func Parse(s string) (orb.Geometry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty literal", ErrInvalidGeometry)
	}
	if p, ok := parsePair(s); ok {
		return p, nil
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	return g, nil
}

func parsePair(s string) (orb.Point, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(parts) != 2 {
		return orb.Point{}, false
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return orb.Point{}, false
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return orb.Point{}, false
	}
	return orb.Point{x, y}, true
}

// FromValue reads a record value as a geometry. Accepted forms are
// orb geometries, WKB bytes and WKT strings.
func FromValue(v any) (orb.Geometry, bool) {
	switch g := v.(type) {
	case nil:
		return nil, false
	case orb.Geometry:
		return g, true
	case []byte:
		geom, err := Decode(g)
		return geom, err == nil
	case string:
		geom, err := Parse(g)
		return geom, err == nil
	}
	return nil, false
}

// Validate checks that a geometry is well formed.
func Validate(geom orb.Geometry) error {
	if geom == nil {
		return fmt.Errorf("%w: geometry is nil", ErrInvalidGeometry)
	}

	switch g := geom.(type) {
	case orb.Point:
		return nil
	case orb.MultiPoint:
		if len(g) == 0 {
			return fmt.Errorf("%w: multipoint is empty", ErrInvalidGeometry)
		}
		return nil
	case orb.LineString:
		if len(g) < 2 {
			return fmt.Errorf("%w: linestring must have at least 2 points, has %d", ErrInvalidGeometry, len(g))
		}
		return nil
	case orb.MultiLineString:
		if len(g) == 0 {
			return fmt.Errorf("%w: multilinestring is empty", ErrInvalidGeometry)
		}
		for i, ls := range g {
			if len(ls) < 2 {
				return fmt.Errorf("%w: multilinestring[%d] must have at least 2 points, has %d", ErrInvalidGeometry, i, len(ls))
			}
		}
		return nil
	case orb.Polygon:
		if len(g) == 0 {
			return fmt.Errorf("%w: polygon has no rings", ErrInvalidGeometry)
		}
		for i, ring := range g {
			if len(ring) < 4 {
				return fmt.Errorf("%w: polygon ring[%d] must have at least 4 points, has %d", ErrInvalidGeometry, i, len(ring))
			}
			if !ring[0].Equal(ring[len(ring)-1]) {
				return fmt.Errorf("%w: polygon ring[%d] is not closed", ErrInvalidGeometry, i)
			}
		}
		return nil
	case orb.MultiPolygon:
		if len(g) == 0 {
			return fmt.Errorf("%w: multipolygon is empty", ErrInvalidGeometry)
		}
		for i, poly := range g {
			if err := Validate(poly); err != nil {
				return fmt.Errorf("multipolygon[%d]: %w", i, err)
			}
		}
		return nil
	case orb.Collection:
		if len(g) == 0 {
			return fmt.Errorf("%w: geometry collection is empty", ErrInvalidGeometry)
		}
		for i, sub := range g {
			if err := Validate(sub); err != nil {
				return fmt.Errorf("collection[%d]: %w", i, err)
			}
		}
		return nil
	case orb.Bound:
		return fmt.Errorf("%w: bounds cannot be stored as WKB", ErrInvalidGeometry)
	}
	return fmt.Errorf("%w: unknown geometry type %T", ErrInvalidGeometry, geom)
}

// GeometryTypeName returns the WKB type name of a geometry.
func GeometryTypeName(geom orb.Geometry) string {
	switch geom.(type) {
	case orb.Point:
		return "Point"
	case orb.MultiPoint:
		return "MultiPoint"
	case orb.LineString:
		return "LineString"
	case orb.MultiLineString:
		return "MultiLineString"
	case orb.Polygon:
		return "Polygon"
	case orb.MultiPolygon:
		return "MultiPolygon"
	case orb.Collection:
		return "GeometryCollection"
	case orb.Bound:
		return "Bound"
	}
	return "Unknown"
}
