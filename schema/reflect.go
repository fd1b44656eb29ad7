package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"

	"github.com/hugr-lab/lumi-filter/filter"
	"github.com/hugr-lab/lumi-filter/geo"
)

// KindTag is the struct tag that overrides the kind of a field, e.g.
// `lumi:"date"`. `lumi:"-"` excludes the field.
const KindTag = "lumi"

var (
	timeType     = reflect.TypeOf(time.Time{})
	decimalType  = reflect.TypeOf(decimal.Decimal{})
	numberType   = reflect.TypeOf(json.Number(""))
	geometryType = reflect.TypeOf((*orb.Geometry)(nil)).Elem()
)

// FromStruct maps the exported fields of a struct type. v may be a struct
// value, a pointer to one or a reflect.Type. Names follow json tags;
// embedded structs are inlined and nested structs are flattened.
func FromStruct(v any) ([]Field, error) {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: expected struct type, got %v", t)
	}
	return structFields(nil, t, "", map[reflect.Type]bool{}), nil
}

func structFields(fields []Field, t reflect.Type, prefix string, visiting map[reflect.Type]bool) []Field {
	if visiting[t] {
		return fields
	}
	visiting[t] = true
	defer delete(visiting, t)

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() && !sf.Anonymous {
			continue
		}

		name, skip := jsonName(sf)
		kindTag := sf.Tag.Get(KindTag)
		if skip || kindTag == "-" {
			continue
		}

		ft := sf.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		if kindTag != "" {
			fields = append(fields, taggedField(join(prefix, name), kindTag, ft))
			continue
		}

		if isStruct(ft) {
			if sf.Anonymous && sf.Tag.Get("json") == "" {
				fields = structFields(fields, ft, prefix, visiting)
			} else {
				fields = structFields(fields, ft, join(prefix, name), visiting)
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}

		fields = append(fields, leafField(join(prefix, name), ft))
	}
	return fields
}

func leafField(name string, ft reflect.Type) Field {
	if ft.Implements(geometryType) {
		return Field{Name: name, Kind: filter.KindCustom, TypeName: geo.TypeName}
	}
	return Field{Name: name, Kind: goKind(ft), TypeName: ft.String()}
}

func taggedField(name, tag string, ft reflect.Type) Field {
	if strings.EqualFold(tag, geo.TypeName) {
		return Field{Name: name, Kind: filter.KindCustom, TypeName: geo.TypeName}
	}
	return Field{Name: name, Kind: filter.NormalizeKind(tag), TypeName: ft.String()}
}

func jsonName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	return name, false
}

// isStruct reports whether t is a struct that is flattened rather than
// treated as a leaf value.
func isStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	switch t {
	case timeType, decimalType:
		return false
	}
	return !t.Implements(geometryType)
}

func goKind(t reflect.Type) filter.Kind {
	switch {
	case t == timeType:
		return filter.KindDateTime
	case t == decimalType, t == numberType:
		return filter.KindDecimal
	case t.Implements(geometryType):
		return filter.KindCustom
	}

	switch t.Kind() {
	case reflect.Bool:
		return filter.KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return filter.KindInt
	case reflect.Float32, reflect.Float64:
		return filter.KindDecimal
	}
	return filter.KindString
}
