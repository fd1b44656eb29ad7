package lumi

import (
	"errors"
	"log/slog"
	"os"
)

// Config contains configuration shared by schemas built from it.
type Config struct {
	// Logger for skipped parameters and recovered panics.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: Only used if Logger is nil.
	// Skipped request parameters are reported at slog.LevelDebug.
	LogLevel *slog.Level
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	if c.LogLevel == nil {
		return slog.Default()
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: *c.LogLevel,
	})
	return slog.New(handler)
}

// Standard errors returned by schema construction.
var (
	// ErrInvalidField indicates a malformed field declaration.
	ErrInvalidField = errors.New("invalid field")

	// ErrReservedName indicates a field named after a reserved parameter.
	ErrReservedName = errors.New("reserved field name")

	// ErrDuplicateField indicates two explicit fields with the same name.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrInvalidType indicates a missing or incomplete field type.
	ErrInvalidType = errors.New("invalid field type")

	// ErrBuilderUsed indicates Build was called twice on one builder.
	ErrBuilderUsed = errors.New("schema builder already used")

	// ErrEmptySample indicates AutoSchema got no records to infer from.
	ErrEmptySample = errors.New("empty sample")
)

// FieldError reports a field declaration rejected by SchemaBuilder.Build.
// It unwraps to one of the sentinel errors above.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return e.Err.Error() + " " + quote(e.Field) + ": " + e.Reason
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func quote(s string) string {
	return "'" + s + "'"
}
