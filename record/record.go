// Package record provides the record model of the in-memory backend:
// nested path resolution and constructors from Go values, Arrow record
// batches and MessagePack payloads.
package record

// Record is a single in-memory row. Nested objects are mappings.
type Record map[string]any

// Getter is implemented by mapping-like values that are not Go maps.
type Getter interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) (any, bool)
}

// Get implements Getter.
func (r Record) Get(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// Resolve walks path through nested mappings starting at v.
// Resolution stops with found=false when a segment is absent or the current
// value is not a mapping. Sequences are not traversed. A nil leaf is found.
func Resolve(v any, path []string) (value any, found bool) {
	if len(path) == 0 {
		return nil, false
	}

	cur := v
	for _, seg := range path {
		var ok bool
		switch m := cur.(type) {
		case Record:
			cur, ok = m[seg]
		case map[string]any:
			cur, ok = m[seg]
		case map[string]string:
			cur, ok = m[seg]
		case Getter:
			cur, ok = m.Get(seg)
		default:
			return nil, false
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// FromMaps wraps plain maps as records without copying them.
func FromMaps(maps []map[string]any) []Record {
	records := make([]Record, len(maps))
	for i, m := range maps {
		records[i] = Record(m)
	}
	return records
}

// Flatten returns the leaf paths of r in dotted form, descending into nested
// mappings. Leaves that are nil are included.
func Flatten(r Record) map[string]any {
	out := make(map[string]any)
	flatten(out, "", r)
	return out
}

func flatten(out map[string]any, prefix string, m map[string]any) {
	for k, v := range m {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		switch nested := v.(type) {
		case Record:
			flatten(out, name, nested)
		case map[string]any:
			flatten(out, name, nested)
		default:
			out[name] = v
		}
	}
}
