package lumi

import (
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hugr-lab/lumi-filter/filter"
	"github.com/hugr-lab/lumi-filter/internal/msgpack"
	"github.com/hugr-lab/lumi-filter/internal/serialize"
)

// Params is a flat set of request parameters, e.g. a decoded query string.
type Params map[string]string

// ParamsFromValues takes the first value of every key.
func ParamsFromValues(values url.Values) Params {
	p := make(Params, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			p[k] = vs[0]
		}
	}
	return p
}

// ParamsFromMap normalizes scalar values to their literal form. Lists are
// joined with the membership separator; nil values are dropped.
func ParamsFromMap(m map[string]any) Params {
	p := make(Params, len(m))
	for k, v := range m {
		s, ok := literal(v)
		if ok {
			p[k] = s
		}
	}
	return p
}

// DecodeParams reads a MessagePack map, optionally zstd-compressed.
func DecodeParams(data []byte) (Params, error) {
	raw, err := serialize.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack params: %w", err)
	}
	m, err := msgpack.DecodeMap(raw)
	if err != nil {
		return nil, err
	}
	return ParamsFromMap(m), nil
}

// Encode serializes the parameters as MessagePack.
func (p Params) Encode() ([]byte, error) {
	return msgpack.Encode(map[string]string(p))
}

// Values converts the parameters to url.Values.
func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for k, s := range p {
		v.Set(k, s)
	}
	return v
}

func literal(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.FormatInt(int64(x), 10), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case *big.Int:
		return x.String(), x != nil
	case decimal.Decimal:
		return x.String(), true
	case time.Time:
		return x.Format(time.RFC3339Nano), true
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := literal(item); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, filter.ListSeparator), len(parts) > 0
	case []string:
		return strings.Join(x, filter.ListSeparator), len(x) > 0
	case fmt.Stringer:
		return x.String(), true
	}
	return fmt.Sprint(v), true
}
