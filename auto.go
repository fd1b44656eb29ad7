package lumi

import (
	"github.com/hugr-lab/lumi-filter/record"
	"github.com/hugr-lab/lumi-filter/schema"
)

// AutoSchema builds a schema from the first record. Nested records become
// dotted fields such as "profile.age".
func AutoSchema(records []record.Record, cfg Config) (*Schema, error) {
	if len(records) == 0 {
		return nil, ErrEmptySample
	}
	return NewSchemaBuilder(cfg).
		Introspect(schema.FromSample(records[0])).
		Build()
}
