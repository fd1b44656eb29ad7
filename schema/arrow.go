package schema

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/lumi-filter/filter"
	"github.com/hugr-lab/lumi-filter/geo"
)

// FromArrow maps the fields of an Arrow schema. Struct fields are
// flattened; geoarrow.wkb columns become custom "geometry" fields.
func FromArrow(s *arrow.Schema) []Field {
	if s == nil {
		return nil
	}
	var fields []Field
	for _, f := range s.Fields() {
		fields = appendArrowField(fields, "", f)
	}
	return fields
}

func appendArrowField(fields []Field, prefix string, f arrow.Field) []Field {
	name := join(prefix, f.Name)

	if geo.IsGeometry(f) {
		return append(fields, Field{Name: name, Kind: filter.KindCustom, TypeName: geo.TypeName})
	}

	dt := f.Type
	if ext, ok := dt.(arrow.ExtensionType); ok {
		dt = ext.StorageType()
	}

	if st, ok := dt.(*arrow.StructType); ok {
		for _, child := range st.Fields() {
			fields = appendArrowField(fields, name, child)
		}
		return fields
	}

	return append(fields, Field{Name: name, Kind: arrowKind(dt), TypeName: dt.String()})
}

func arrowKind(dt arrow.DataType) filter.Kind {
	switch dt.ID() {
	case arrow.BOOL:
		return filter.KindBoolean
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return filter.KindInt
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64,
		arrow.DECIMAL128, arrow.DECIMAL256:
		return filter.KindDecimal
	case arrow.DATE32, arrow.DATE64:
		return filter.KindDate
	case arrow.TIMESTAMP:
		return filter.KindDateTime
	case arrow.DICTIONARY:
		return arrowKind(dt.(*arrow.DictionaryType).ValueType)
	}
	return filter.KindString
}
