package equity

import (
	"encoding/json"
	"math"
)

// maxSafeInteger is the largest integer a float64 holds exactly (2^53 - 1).
// Numbers decoded from JSON or protobuf Struct arrive as float64, so this is
// the range in which "is an integer" is meaningful for every transport.
const maxSafeInteger = 1<<53 - 1

// asInteger reports whether v is an integer within [-maxSafeInteger, maxSafeInteger].
func asInteger(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, n >= -maxSafeInteger && n <= maxSafeInteger
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), n >= -maxSafeInteger && n <= maxSafeInteger
	case uint:
		return int(n), n <= maxSafeInteger
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), n <= maxSafeInteger
	case float32:
		return floatInteger(float64(n))
	case float64:
		return floatInteger(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return asInteger(i)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatInteger(f)
	default:
		return 0, false
	}
}

func floatInteger(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if math.Abs(f) > maxSafeInteger {
		return 0, false
	}
	return int(f), true
}

// asStringList accepts []string or a []any of strings.
func asStringList(v any) ([]string, bool) {
	switch l := v.(type) {
	case []string:
		return append([]string(nil), l...), true
	case []any:
		out := make([]string, len(l))
		for i, e := range l {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// listLen returns the length of v when v is a list of any element type.
func listLen(v any) (int, bool) {
	switch l := v.(type) {
	case []string:
		return len(l), true
	case []any:
		return len(l), true
	default:
		return 0, false
	}
}
