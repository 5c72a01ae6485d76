package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilon is the float64 machine epsilon, added to denominators that may be
// zero.
var Epsilon = math.Nextafter(1, 2) - 1

// NaN returns the not-a-number sentinel.
func NaN() []float64 {
	return []float64{math.NaN()}
}

// IsNaN reports whether values is the NaN sentinel or empty.
func IsNaN(values []float64) bool {
	return len(values) == 0 || (len(values) == 1 && math.IsNaN(values[0]))
}

// Derivative returns the order-th forward difference of values. Orders below
// one are treated as one. Inputs shorter than order+1 samples yield the NaN
// sentinel.
func Derivative(values []float64, order int) []float64 {
	if order < 1 {
		order = 1
	}
	if len(values) < order+1 {
		return NaN()
	}
	out := append([]float64(nil), values...)
	for k := 0; k < order; k++ {
		for i := 0; i < len(out)-1; i++ {
			out[i] = out[i+1] - out[i]
		}
		out = out[:len(out)-1]
	}
	return out
}

// Finite returns a copy of values without NaN and ±Inf entries.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Hypot returns the per-step Euclidean displacement of the polyline (x, y).
// The result has one element less than the inputs; inputs shorter than two
// samples give an empty slice.
func Hypot(x, y []float64) []float64 {
	if len(x) < 2 || len(x) != len(y) {
		return []float64{}
	}
	out := make([]float64, len(x)-1)
	for i := range out {
		out[i] = math.Hypot(x[i+1]-x[i], y[i+1]-y[i])
	}
	return out
}

// Span returns max-min of values, or NaN for empty input.
func Span(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return floats.Max(values) - floats.Min(values)
}
