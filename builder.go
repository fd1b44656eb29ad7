package lumi

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hugr-lab/lumi-filter/filter"
	"github.com/hugr-lab/lumi-filter/geo"
	"github.com/hugr-lab/lumi-filter/schema"
)

// SchemaBuilder builds schemas using fluent API.
// Not thread-safe - use only during initialization.
type SchemaBuilder struct {
	cfg          Config
	defs         []FieldDef
	introspected []schema.Field
	customTypes  map[string]*filter.Type
	only         map[string]bool
	built        bool
}

// NewSchemaBuilder creates a new fluent schema builder.
// Custom introspected fields of type "geometry" resolve to geo.Geometry()
// unless overridden with CustomType.
//
// Example:
//
//	s, err := lumi.NewSchemaBuilder(lumi.Config{}).
//	    String("name").
//	    Int("age").
//	    Field(lumi.FieldDef{Name: "city", Source: "address.city", Type: filter.String}).
//	    Build()
func NewSchemaBuilder(cfg Config) *SchemaBuilder {
	return &SchemaBuilder{
		cfg: cfg,
		customTypes: map[string]*filter.Type{
			geo.TypeName: geo.Geometry(),
		},
	}
}

// Field adds an explicit field. Explicit fields override introspected
// fields with the same name.
func (b *SchemaBuilder) Field(def FieldDef) *SchemaBuilder {
	b.defs = append(b.defs, def)
	return b
}

// Int adds an integer field whose source is its name.
func (b *SchemaBuilder) Int(name string) *SchemaBuilder {
	return b.Field(FieldDef{Name: name, Type: filter.Int})
}

// String adds a string field whose source is its name.
func (b *SchemaBuilder) String(name string) *SchemaBuilder {
	return b.Field(FieldDef{Name: name, Type: filter.String})
}

// Decimal adds a decimal field whose source is its name.
func (b *SchemaBuilder) Decimal(name string) *SchemaBuilder {
	return b.Field(FieldDef{Name: name, Type: filter.Decimal})
}

// Bool adds a boolean field whose source is its name.
func (b *SchemaBuilder) Bool(name string) *SchemaBuilder {
	return b.Field(FieldDef{Name: name, Type: filter.Boolean})
}

// Date adds a date field whose source is its name.
func (b *SchemaBuilder) Date(name string) *SchemaBuilder {
	return b.Field(FieldDef{Name: name, Type: filter.Date})
}

// DateTime adds a datetime field whose source is its name.
func (b *SchemaBuilder) DateTime(name string) *SchemaBuilder {
	return b.Field(FieldDef{Name: name, Type: filter.DateTime})
}

// Custom adds a field of a custom type whose source is its name.
func (b *SchemaBuilder) Custom(name string, t *filter.Type) *SchemaBuilder {
	return b.Field(FieldDef{Name: name, Type: t})
}

// CustomType sets the type used for introspected custom fields with the
// given type name.
func (b *SchemaBuilder) CustomType(typeName string, t *filter.Type) *SchemaBuilder {
	b.customTypes[typeName] = t
	return b
}

// Introspect adds fields derived by the schema package. Invalid names and
// custom fields without a registered type are skipped.
func (b *SchemaBuilder) Introspect(fields []schema.Field) *SchemaBuilder {
	b.introspected = append(b.introspected, fields...)
	return b
}

// Only restricts introspected fields to the given names.
// Explicit fields are always kept. No names keeps every field.
func (b *SchemaBuilder) Only(names ...string) *SchemaBuilder {
	if len(names) == 0 {
		return b
	}
	if b.only == nil {
		b.only = make(map[string]bool, len(names))
	}
	for _, n := range names {
		b.only[n] = true
	}
	return b
}

// Build validates the declarations and returns the immutable schema.
// Can only be called once.
func (b *SchemaBuilder) Build() (*Schema, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}
	b.built = true

	logger := b.cfg.logger()

	explicit := make([]Field, 0, len(b.defs))
	seen := make(map[string]bool, len(b.defs))
	for _, def := range b.defs {
		f, err := fieldFromDef(def)
		if err != nil {
			return nil, err
		}
		if seen[f.Name] {
			return nil, &FieldError{Field: f.Name, Reason: "declared more than once", Err: ErrDuplicateField}
		}
		seen[f.Name] = true
		explicit = append(explicit, f)
	}

	fields := make([]Field, 0, len(b.introspected)+len(explicit))
	for _, sf := range b.introspected {
		if seen[sf.Name] {
			continue
		}
		if b.only != nil && !b.only[sf.Name] {
			continue
		}
		f, ok := b.introspectedField(sf, logger)
		if !ok {
			continue
		}
		seen[f.Name] = true
		fields = append(fields, f)
	}
	fields = append(fields, explicit...)

	return newSchema(fields, logger), nil
}

func (b *SchemaBuilder) introspectedField(sf schema.Field, logger *slog.Logger) (Field, bool) {
	t := filter.TypeOf(sf.Kind)
	if sf.Kind == filter.KindCustom {
		t = b.customTypes[sf.TypeName]
		if t == nil {
			logger.Debug("Introspected field skipped",
				"field", sf.Name,
				"type", sf.TypeName,
				"reason", "no custom type registered",
			)
			return Field{}, false
		}
	}

	f, err := fieldFromDef(FieldDef{Name: sf.Name, Type: t})
	if err != nil {
		logger.Warn("Introspected field skipped",
			"field", sf.Name,
			"error", err,
		)
		return Field{}, false
	}
	return f, true
}

func fieldFromDef(def FieldDef) (Field, error) {
	if err := validateName(def.Name); err != nil {
		return Field{}, err
	}

	source := def.Source
	if source == "" {
		source = def.Name
	}
	path := filter.SplitPath(source)
	for _, seg := range path {
		if seg == "" {
			return Field{}, &FieldError{Field: def.Name, Reason: fmt.Sprintf("empty segment in source path %q", source), Err: ErrInvalidField}
		}
	}

	t := def.Type
	switch {
	case t == nil:
		return Field{}, &FieldError{Field: def.Name, Reason: "type is nil", Err: ErrInvalidType}
	case !t.Kind.Valid():
		return Field{}, &FieldError{Field: def.Name, Reason: fmt.Sprintf("unknown kind %q", t.Kind), Err: ErrInvalidType}
	case t.Convert == nil:
		return Field{}, &FieldError{Field: def.Name, Reason: "type " + t.String() + " has no converter", Err: ErrInvalidType}
	case t.Kind == filter.KindCustom && t.Equal == nil && t.Compare == nil:
		return Field{}, &FieldError{Field: def.Name, Reason: "custom type " + t.String() + " has no comparer", Err: ErrInvalidType}
	}

	ops := t.Ops
	if len(def.Ops) > 0 {
		ops = filter.NewOpSet(def.Ops...)
		if extra := ops &^ t.Ops; extra != 0 {
			return Field{}, &FieldError{Field: def.Name, Reason: "operators " + extra.String() + " not supported by " + t.String(), Err: ErrInvalidField}
		}
	}

	return Field{Name: def.Name, Source: path, Type: t, Ops: ops}, nil
}

func validateName(name string) error {
	switch {
	case name == "":
		return &FieldError{Field: name, Reason: "name is empty", Err: ErrInvalidField}
	case name == filter.OrderingKey:
		return &FieldError{Field: name, Reason: "name is reserved for ordering", Err: ErrReservedName}
	case strings.Contains(name, filter.LookupSeparator):
		return &FieldError{Field: name, Reason: "name contains " + quote(filter.LookupSeparator), Err: ErrInvalidField}
	case strings.HasSuffix(name, filter.NotEqualSuffix):
		return &FieldError{Field: name, Reason: "name ends with " + quote(filter.NotEqualSuffix), Err: ErrInvalidField}
	}
	return nil
}
