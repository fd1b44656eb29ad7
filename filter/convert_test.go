package filter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestConvertValid(t *testing.T) {
	tests := []struct {
		name     string
		typ      *Type
		raw      string
		expected any
	}{
		{"int", Int, "42", int64(42)},
		{"int negative", Int, "-7", int64(-7)},
		{"int padded", Int, " 15 ", int64(15)},
		{"string", String, "John", "John"},
		{"string empty", String, "", ""},
		{"boolean true", Boolean, "true", true},
		{"boolean TRUE", Boolean, "TRUE", true},
		{"boolean one", Boolean, "1", true},
		{"boolean false", Boolean, "False", false},
		{"boolean zero", Boolean, "0", false},
		{"date iso", Date, "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"date slash", Date, "2024/01/15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"date compact", Date, "20240115", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"datetime naive", DateTime, "2024-01-15T10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"datetime space", DateTime, "2024-01-15 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"datetime minutes", DateTime, "2024-01-15T10:30", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"datetime date only", DateTime, "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Convert(tt.typ, tt.raw)
			if !ok {
				t.Fatalf("expected %q to convert as %s", tt.raw, tt.typ)
			}
			if want, isTime := tt.expected.(time.Time); isTime {
				if !got.(time.Time).Equal(want) {
					t.Errorf("expected %v, got %v", want, got)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("expected %v (%T), got %v (%T)", tt.expected, tt.expected, got, got)
			}
		})
	}
}

func TestConvertDateTimeWithZone(t *testing.T) {
	got, ok := ConvertDateTime("2024-01-15T10:30:00+02:00")
	if !ok {
		t.Fatal("expected RFC3339 timestamp to convert")
	}
	want := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
	if !got.(time.Time).Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestConvertDecimal(t *testing.T) {
	got, ok := ConvertDecimal("19.990")
	if !ok {
		t.Fatal("expected decimal to convert")
	}
	if !got.(decimal.Decimal).Equal(decimal.RequireFromString("19.99")) {
		t.Errorf("expected 19.99, got %v", got)
	}
}

func TestConvertInvalid(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
		raw  string
	}{
		{"int empty", Int, ""},
		{"int text", Int, "abc"},
		{"int float", Int, "1.5"},
		{"decimal empty", Decimal, ""},
		{"decimal text", Decimal, "ten"},
		{"boolean yes", Boolean, "yes"},
		{"boolean empty", Boolean, ""},
		{"date invalid", Date, "2024-13-45"},
		{"date text", Date, "yesterday"},
		{"datetime text", DateTime, "noon"},
		{"nil type", nil, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v, ok := Convert(tt.typ, tt.raw); ok {
				t.Errorf("expected failure, got %v", v)
			}
		})
	}
}

func TestConvertList(t *testing.T) {
	values, ok := ConvertList(Int, "1, 2,x,3")
	if !ok {
		t.Fatal("expected partial list to convert")
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	for i, want := range []int64{1, 2, 3} {
		if values[i] != want {
			t.Errorf("values[%d]: expected %d, got %v", i, want, values[i])
		}
	}

	if values, ok := ConvertList(Int, "a,b"); ok {
		t.Errorf("expected failure when no item converts, got %v", values)
	}
}

func TestNormalizeKind(t *testing.T) {
	tests := []struct {
		name     string
		expected Kind
	}{
		{"INTEGER", KindInt},
		{"bigint", KindInt},
		{"VARCHAR", KindString},
		{"DECIMAL(18,3)", KindDecimal},
		{"DOUBLE", KindDecimal},
		{"BOOLEAN", KindBoolean},
		{"DATE", KindDate},
		{"TIMESTAMP WITH TIME ZONE", KindDateTime},
		{"BLOB", KindString},
		{"", KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKind(tt.name); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
