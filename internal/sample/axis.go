package sample

import "fmt"

// Axis selects the spatial component a kinematic quantity is computed on.
type Axis string

// Supported axes. AxisXY is the Euclidean combination of both.
const (
	AxisX  Axis = "x"
	AxisY  Axis = "y"
	AxisXY Axis = "xy"
)

// Axes lists the supported axes.
var Axes = []Axis{AxisX, AxisY, AxisXY}

// ParseAxis validates an axis name.
func ParseAxis(v any) (Axis, error) {
	var s string
	switch a := v.(type) {
	case Axis:
		s = string(a)
	case string:
		s = a
	default:
		return "", fmt.Errorf("%w: %v (%T); must be one of x, y, xy", ErrUnsupportedAxis, v, v)
	}
	for _, a := range Axes {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q; must be one of x, y, xy", ErrUnsupportedAxis, s)
}

// ParseSurface validates an in_air flag.
func ParseSurface(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %v (%T); must be bool", ErrUnsupportedSurface, v, v)
	}
	return b, nil
}

// SurfaceName returns "in-air" or "on-surface".
func SurfaceName(inAir bool) string {
	if inAir {
		return "in-air"
	}
	return "on-surface"
}
