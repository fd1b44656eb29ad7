package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ToDecimal coerces numeric record values and arguments to decimal.Decimal.
// Numeric strings are accepted; NaN and infinities are not.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		if x == nil {
			return decimal.Decimal{}, false
		}
		return *x, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int8:
		return decimal.NewFromInt(int64(x)), true
	case int16:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(x)), 0), true
	case uint8:
		return decimal.NewFromInt(int64(x)), true
	case uint16:
		return decimal.NewFromInt(int64(x)), true
	case uint32:
		return decimal.NewFromInt(int64(x)), true
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), true
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(x), true
	case *big.Int:
		if x == nil {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromBigInt(x, 0), true
	case json.Number:
		d, err := decimal.NewFromString(string(x))
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

// ToString renders a record value as text for string comparisons.
func ToString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case fmt.Stringer:
		return x.String(), true
	}
	return fmt.Sprint(v), true
}

// ToBool coerces booleans, boolean literals and 0/1 integers.
func ToBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case *bool:
		if x == nil {
			return false, false
		}
		return *x, true
	case string:
		b, ok := ConvertBoolean(x)
		if !ok {
			return false, false
		}
		return b.(bool), true
	}
	if d, ok := ToDecimal(v); ok {
		switch {
		case d.Equal(decimal.Zero):
			return false, true
		case d.Equal(decimal.NewFromInt(1)):
			return true, true
		}
	}
	return false, false
}

// ToTime coerces time values and timestamp literals.
func ToTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, true
	case string:
		if t, ok := parseTime(strings.TrimSpace(x), dateTimeLayouts); ok {
			return t, true
		}
		return parseTime(strings.TrimSpace(x), dateLayouts)
	}
	return time.Time{}, false
}

func compareNumber(v, arg any) (int, bool) {
	a, ok := ToDecimal(v)
	if !ok {
		return 0, false
	}
	b, ok := ToDecimal(arg)
	if !ok {
		return 0, false
	}
	return a.Cmp(b), true
}

func compareString(v, arg any) (int, bool) {
	a, ok := ToString(v)
	if !ok {
		return 0, false
	}
	b, ok := ToString(arg)
	if !ok {
		return 0, false
	}
	return strings.Compare(a, b), true
}

func compareBoolean(v, arg any) (int, bool) {
	a, ok := ToBool(v)
	if !ok {
		return 0, false
	}
	b, ok := ToBool(arg)
	if !ok {
		return 0, false
	}
	switch {
	case a == b:
		return 0, true
	case !a:
		return -1, true
	}
	return 1, true
}

// compareDate compares calendar dates; time of day is ignored.
// Each value keeps its own location when its date is taken.
func compareDate(v, arg any) (int, bool) {
	a, ok := ToTime(v)
	if !ok {
		return 0, false
	}
	b, ok := ToTime(arg)
	if !ok {
		return 0, false
	}
	return cmpInt(dateKey(a), dateKey(b)), true
}

func compareDateTime(v, arg any) (int, bool) {
	a, ok := ToTime(v)
	if !ok {
		return 0, false
	}
	b, ok := ToTime(arg)
	if !ok {
		return 0, false
	}
	return a.Compare(b), true
}

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
