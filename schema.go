package lumi

import (
	"log/slog"
	"slices"
)

// Schema is an immutable set of fields keyed by request name.
// It is safe for concurrent use and shared by all requests.
type Schema struct {
	fields []Field
	byName map[string]int
	logger *slog.Logger
}

func newSchema(fields []Field, logger *slog.Logger) *Schema {
	s := &Schema{
		fields: fields,
		byName: make(map[string]int, len(fields)),
		logger: logger,
	}
	for i, f := range fields {
		s.byName[f.Name] = i
	}
	return s
}

// Field returns the field with the given request name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// Names returns the request names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Logger returns the schema logger.
func (s *Schema) Logger() *slog.Logger {
	return s.logger
}
