package lumi

import (
	"errors"
	"slices"

	"github.com/hugr-lab/lumi-filter/filter"
	"github.com/hugr-lab/lumi-filter/internal/recovery"
)

// Backend is a data source the engine can narrow and reorder.
// Implementations return a new value and leave the receiver usable.
// Ordering an ordered value makes the new keys primary; the previous
// ordering breaks ties.
// See backend/memory, backend/duck and backend/gormq.
type Backend[B any] interface {
	Filter(p filter.Predicate) B
	Order(spec filter.OrderSpec) B
}

// Skip reasons reported in debug logs.
const (
	reasonUnknownField   = "unknown field"
	reasonUnsupportedOp  = "unsupported operator"
	reasonInvalidValue   = "invalid value"
	reasonNotComparable  = "not comparable"
	reasonConverterPanic = "converter panic"
	reasonDuplicate      = "duplicate ordering key"
)

// Predicates translates every parameter except "ordering" into a
// predicate. Keys are visited in sorted order. Parameters that name no
// field, use an operator the field does not honor or carry a value that
// does not convert are skipped and logged at debug level.
func (s *Schema) Predicates(params Params) []filter.Predicate {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == filter.OrderingKey {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	preds := make([]filter.Predicate, 0, len(keys))
	for _, key := range keys {
		p, ok := s.predicate(filter.ParseLookup(key, params[key]))
		if ok {
			preds = append(preds, p)
		}
	}
	return preds
}

func (s *Schema) predicate(lk filter.Lookup) (filter.Predicate, bool) {
	f, ok := s.Field(lk.Field)
	if !ok {
		s.skip(lk, reasonUnknownField)
		return filter.Predicate{}, false
	}
	if !f.Allows(lk.Operator) {
		s.skip(lk, reasonUnsupportedOp)
		return filter.Predicate{}, false
	}

	p, err := recovery.RecoverToValue(s.logger, "BuildPredicate", func() (filter.Predicate, error) {
		return filter.BuildPredicate(f.Name, f.Source, f.Type, lk.Operator, lk.Raw)
	})
	if err != nil {
		s.skip(lk, skipReason(err))
		return filter.Predicate{}, false
	}
	return p, true
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, recovery.ErrPanic):
		return reasonConverterPanic
	case errors.Is(err, filter.ErrUnsupportedOperator):
		return reasonUnsupportedOp
	case errors.Is(err, filter.ErrNotComparable):
		return reasonNotComparable
	}
	return reasonInvalidValue
}

func (s *Schema) skip(lk filter.Lookup, reason string) {
	s.logger.Debug("Filter parameter skipped",
		"param", lk.Key,
		"field", lk.Field,
		"operator", string(lk.Operator),
		"reason", reason,
	)
}

// OrderSpec resolves the "ordering" parameter. Unknown fields, fields
// without an order and repeated fields are skipped.
func (s *Schema) OrderSpec(params Params) filter.OrderSpec {
	raw, ok := params[filter.OrderingKey]
	if !ok {
		return nil
	}

	var spec filter.OrderSpec
	seen := make(map[string]bool)
	for _, tok := range filter.ParseOrdering(raw) {
		reason := ""
		f, ok := s.Field(tok.Field)
		switch {
		case !ok:
			reason = reasonUnknownField
		case !f.Ordered():
			reason = reasonNotComparable
		case seen[f.Name]:
			reason = reasonDuplicate
		}
		if reason != "" {
			s.logger.Debug("Ordering key skipped",
				"param", filter.OrderingKey,
				"field", tok.Field,
				"reason", reason,
			)
			continue
		}
		seen[f.Name] = true
		spec = append(spec, filter.OrderKey{Field: f.Name, Path: f.Source, Type: f.Type, Desc: tok.Desc})
	}
	return spec
}

// ApplyFilter narrows data by every predicate of params.
// A backend panic skips the predicate and keeps the data unchanged.
func ApplyFilter[B Backend[B]](s *Schema, data B, params Params) B {
	for _, p := range s.Predicates(params) {
		next, err := recovery.RecoverToValue(s.logger, "Filter", func() (B, error) {
			return data.Filter(p), nil
		})
		if err != nil {
			continue
		}
		data = next
	}
	return data
}

// ApplyOrder reorders data by the "ordering" parameter.
func ApplyOrder[B Backend[B]](s *Schema, data B, params Params) B {
	spec := s.OrderSpec(params)
	if len(spec) == 0 {
		return data
	}
	next, err := recovery.RecoverToValue(s.logger, "Order", func() (B, error) {
		return data.Order(spec), nil
	})
	if err != nil {
		return data
	}
	return next
}
