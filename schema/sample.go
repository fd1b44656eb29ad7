package schema

import (
	"encoding/json"
	"math/big"
	"slices"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"

	"github.com/hugr-lab/lumi-filter/filter"
	"github.com/hugr-lab/lumi-filter/geo"
	"github.com/hugr-lab/lumi-filter/record"
)

// FromSample infers fields from the values of a sample record. Nested
// records are flattened. Keys are visited in sorted order.
func FromSample(sample record.Record) []Field {
	var fields []Field

	type frame struct {
		m      map[string]any
		prefix string
	}
	stack := []frame{{m: sample}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		keys := make([]string, 0, len(cur.m))
		for k := range cur.m {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, k := range keys {
			name := join(cur.prefix, k)
			if m, ok := asMap(cur.m[k]); ok {
				stack = append(stack, frame{m: m, prefix: name})
				continue
			}
			fields = append(fields, valueField(name, cur.m[k]))
		}
	}

	slices.SortFunc(fields, func(a, b Field) int {
		return strings.Compare(a.Name, b.Name)
	})
	return fields
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case record.Record:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}

func valueField(name string, v any) Field {
	f := Field{Name: name, Kind: filter.KindString, TypeName: "unknown"}
	switch v.(type) {
	case nil:
	case bool:
		f.Kind, f.TypeName = filter.KindBoolean, "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, *big.Int:
		f.Kind, f.TypeName = filter.KindInt, "int"
	case float32, float64, decimal.Decimal, json.Number:
		f.Kind, f.TypeName = filter.KindDecimal, "decimal"
	case time.Time:
		f.Kind, f.TypeName = filter.KindDateTime, "datetime"
	case string:
		f.TypeName = "string"
	case orb.Geometry:
		f.Kind, f.TypeName = filter.KindCustom, geo.TypeName
	}
	return f
}
