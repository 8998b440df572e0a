package script

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"sutext.github.io/netbin/xerr"
)

func invalid(v any, format string, args ...any) error {
	return fmt.Errorf("%w: %v (%T): %s", xerr.InvalidValue, v, v, fmt.Sprintf(format, args...))
}

// toInt converts v to a signed integer that fits in bits.
func toInt(v any, bits int) (int64, error) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case uint64:
		if x > math.MaxInt64 {
			return 0, invalid(v, "out of range for i%d", bits)
		}
		n = int64(x)
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, invalid(v, "not an integer")
		}
		n = int64(x)
	case string:
		p, err := strconv.ParseInt(strings.TrimSpace(x), 0, bits)
		if err != nil {
			return 0, invalid(v, "%v", err)
		}
		return p, nil
	default:
		return 0, invalid(v, "not an integer")
	}
	if bits < 64 && (n < -1<<(bits-1) || n > 1<<(bits-1)-1) {
		return 0, invalid(v, "out of range for i%d", bits)
	}
	return n, nil
}

// toUint converts v to an unsigned integer that fits in bits.
func toUint(v any, bits int) (uint64, error) {
	var n uint64
	switch x := v.(type) {
	case int:
		if x < 0 {
			return 0, invalid(v, "negative")
		}
		n = uint64(x)
	case int64:
		if x < 0 {
			return 0, invalid(v, "negative")
		}
		n = uint64(x)
	case uint64:
		n = x
	case float64:
		if x != math.Trunc(x) || x < 0 || x >= math.MaxUint64 {
			return 0, invalid(v, "not an unsigned integer")
		}
		n = uint64(x)
	case string:
		p, err := strconv.ParseUint(strings.TrimSpace(x), 0, bits)
		if err != nil {
			return 0, invalid(v, "%v", err)
		}
		return p, nil
	default:
		return 0, invalid(v, "not an unsigned integer")
	}
	if bits < 64 && n > 1<<bits-1 {
		return 0, invalid(v, "out of range for u%d", bits)
	}
	return n, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, invalid(v, "%v", err)
		}
		return f, nil
	default:
		return 0, invalid(v, "not a number")
	}
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, invalid(v, "%v", err)
		}
		return b, nil
	default:
		return false, invalid(v, "not a bool")
	}
}

func toString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case nil:
		return "", invalid(v, "missing")
	default:
		return fmt.Sprint(x), nil
	}
}

// ParseHex decodes hex digits, ignoring whitespace and an optional 0x
// prefix.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Join(strings.Fields(s), "")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerr.InvalidHex, err)
	}
	return b, nil
}

func toHex(v any) ([]byte, error) {
	switch x := v.(type) {
	case string:
		return ParseHex(x)
	case nil:
		return nil, nil
	default:
		return nil, invalid(v, "not a hex string")
	}
}
