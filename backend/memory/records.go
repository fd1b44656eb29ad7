// Package memory implements the in-memory backend: predicates are evaluated
// per record and ordering is a stable multi-key sort.
package memory

import (
	"slices"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/lumi-filter/filter"
	"github.com/hugr-lab/lumi-filter/record"
)

// Records is an immutable view over a sequence of records.
// Filter and Order return new views and never modify the input slice.
type Records struct {
	records []record.Record
}

// New wraps records.
func New(records []record.Record) Records {
	return Records{records: records}
}

// FromMaps wraps plain maps.
func FromMaps(maps []map[string]any) Records {
	return New(record.FromMaps(maps))
}

// FromValues converts Go structs or maps to records.
func FromValues(values any) (Records, error) {
	records, err := record.FromValues(values)
	if err != nil {
		return Records{}, err
	}
	return New(records), nil
}

// FromArrow converts an Arrow record batch to records.
func FromArrow(batch arrow.RecordBatch) Records {
	return New(record.FromArrow(batch))
}

// Filter keeps the records that match p.
func (r Records) Filter(p filter.Predicate) Records {
	out := make([]record.Record, 0, len(r.records))
	for _, rec := range r.records {
		if Match(p, rec) {
			out = append(out, rec)
		}
	}
	return Records{records: out}
}

// Order sorts a copy of the records by spec.
// The sort is stable: records equal under every key keep their input order.
// Missing and nil values sort last regardless of direction.
func (r Records) Order(spec filter.OrderSpec) Records {
	if len(spec) == 0 {
		return r
	}

	out := slices.Clone(r.records)
	slices.SortStableFunc(out, func(a, b record.Record) int {
		for _, key := range spec {
			if c := compareKey(key, a, b); c != 0 {
				return c
			}
		}
		return 0
	})
	return Records{records: out}
}

// Records returns the current records.
func (r Records) Records() []record.Record {
	return r.records
}

// Len returns the number of records.
func (r Records) Len() int {
	return len(r.records)
}

func compareKey(key filter.OrderKey, a, b record.Record) int {
	va, fa := record.Resolve(a, key.Path)
	vb, fb := record.Resolve(b, key.Path)
	presentA := fa && va != nil
	presentB := fb && vb != nil

	switch {
	case !presentA && !presentB:
		return 0
	case !presentA:
		return 1
	case !presentB:
		return -1
	}

	if !key.Type.Ordered() {
		return 0
	}
	c, ok := key.Type.Compare(va, vb)
	if !ok {
		return 0
	}
	if key.Desc {
		return -c
	}
	return c
}
