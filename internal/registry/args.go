package registry

import (
	"fmt"
	"maps"
	"math"

	"github.com/bdalab/handwriting-features/internal/sample"
)

// Args maps argument names to values. Values follow JSON decoding: numbers
// may arrive as float64 and lists as []any.
type Args map[string]any

// Clone returns a shallow copy; a nil receiver gives an empty map.
func (a Args) Clone() Args {
	out := make(Args, len(a))
	maps.Copy(out, a)
	return out
}

// Has reports whether key is present with a non-nil value.
func (a Args) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// Float returns a numeric argument.
func (a Args) Float(key string) (float64, bool) {
	return toFloat(a[key])
}

// Int returns an integral argument.
func (a Args) Int(key string) (int, bool) {
	return toInt(a[key])
}

// Strings returns a string or string-list argument as a list.
func (a Args) Strings(key string) []string {
	s, _ := toStrings(a[key])
	return s
}

// Axis returns the axis argument, "xy" when absent.
func (a Args) Axis() (sample.Axis, error) {
	if !a.Has("axis") {
		return sample.AxisXY, nil
	}
	return sample.ParseAxis(a["axis"])
}

// InAir returns the in_air argument, false when absent.
func (a Args) InAir() (bool, error) {
	if !a.Has("in_air") {
		return false, nil
	}
	return sample.ParseSurface(a["in_air"])
}

func (a Args) requireFloat(key string) (float64, error) {
	v, ok := a.Float(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrArgumentMissing, key)
	}
	return v, nil
}

func (a Args) floatOr(key string, def float64) float64 {
	if v, ok := a.Float(key); ok {
		return v
	}
	return def
}

func (a Args) intOr(key string, def int) int {
	if v, ok := a.Int(key); ok {
		return v
	}
	return def
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	}
	return 0, false
}

func toStrings(v any) ([]string, bool) {
	switch s := v.(type) {
	case string:
		return []string{s}, true
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}

func (k Kind) accepts(v any) bool {
	switch k {
	case KindString:
		switch v.(type) {
		case string, sample.Axis:
			return true
		}
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindNumber:
		_, ok := toFloat(v)
		return ok
	case KindInt:
		_, ok := toInt(v)
		return ok
	case KindStringList:
		switch v.(type) {
		case []string, []any:
			_, ok := toStrings(v)
			return ok
		}
	}
	return false
}

// StatisticsOf returns the statistics requested in args. A value that is
// neither a string nor a list of strings is an ErrArgumentInvalidType.
func StatisticsOf(args Args) ([]string, error) {
	v := args["statistics"]
	if !requested(v) {
		return nil, nil
	}
	s, ok := toStrings(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T, argument statistics", ErrArgumentInvalidType, v)
	}
	return s, nil
}
