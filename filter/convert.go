package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ListSeparator splits multi-value literals of membership operators.
const ListSeparator = ","

// dateLayouts are tried in order; the first layout that parses wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"20060102",
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Convert parses raw with the converter of t.
func Convert(t *Type, raw string) (any, bool) {
	if t == nil || t.Convert == nil {
		return nil, false
	}
	return t.Convert(raw)
}

// ConvertList splits raw on ListSeparator and converts every item with t.
// Items that fail to convert are dropped; the conversion fails only when
// no item converts.
func ConvertList(t *Type, raw string) ([]any, bool) {
	parts := strings.Split(raw, ListSeparator)
	values := make([]any, 0, len(parts))
	for _, part := range parts {
		v, ok := Convert(t, strings.TrimSpace(part))
		if !ok {
			continue
		}
		values = append(values, v)
	}
	return values, len(values) > 0
}

// ConvertInt parses a base-10 integer literal into int64.
func ConvertInt(raw string) (any, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return n, true
}

// ConvertString returns raw unchanged. The empty string is a valid value.
func ConvertString(raw string) (any, bool) {
	return raw, true
}

// ConvertDecimal parses a numeric literal into decimal.Decimal.
func ConvertDecimal(raw string) (any, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, false
	}
	return d, true
}

// ConvertBoolean accepts true/1 and false/0, case-insensitively.
func ConvertBoolean(raw string) (any, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return nil, false
}

// ConvertDate parses a calendar date. The result is midnight UTC.
func ConvertDate(raw string) (any, bool) {
	t, ok := parseTime(strings.TrimSpace(raw), dateLayouts)
	if !ok {
		return nil, false
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

// ConvertDateTime parses a timestamp. Literals without a zone are read as UTC.
func ConvertDateTime(raw string) (any, bool) {
	return parseTime(strings.TrimSpace(raw), dateTimeLayouts)
}

func parseTime(s string, layouts []string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
