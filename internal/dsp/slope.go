package dsp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SlopeOptions configures RobustSlope's rolling-median outlier removal.
type SlopeOptions struct {
	WindowSize int     // rolling window length
	MinSamples int     // minimum finite samples for a window median
	Center     bool    // centre the window on the sample instead of trailing it
	Threshold  float64 // outlier if |v| >= Threshold * |rolling median|
}

// DefaultSlopeOptions returns the standard outlier-removal settings.
func DefaultSlopeOptions() SlopeOptions {
	return SlopeOptions{
		WindowSize: 5,
		MinSamples: 3,
		Center:     true,
		Threshold:  3,
	}
}

// RobustSlope fits a first-order least-squares line against the sample
// index and returns its slope. Non-finite values are dropped first; when more
// than WindowSize values remain, local outliers are removed with
// RemoveOutliers. Fewer than two surviving values give NaN.
func RobustSlope(values []float64, opts SlopeOptions) float64 {
	data := Finite(values)
	if len(data) > opts.WindowSize {
		data = RemoveOutliers(data, opts)
	}
	if len(data) < 2 {
		return math.NaN()
	}
	xs := make([]float64, len(data))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, beta := stat.LinearRegression(xs, data, nil, false)
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return math.NaN()
	}
	return beta
}

// RemoveOutliers keeps the finite values whose magnitude stays below
// Threshold times the magnitude of their rolling median. Values whose window
// holds fewer than MinSamples samples have no median and are dropped.
func RemoveOutliers(values []float64, opts SlopeOptions) []float64 {
	medians := RollingMedian(values, opts.WindowSize, opts.MinSamples, opts.Center)
	out := make([]float64, 0, len(values))
	for i, v := range values {
		if math.Abs(v) < opts.Threshold*math.Abs(medians[i]) {
			out = append(out, v)
		}
	}
	return Finite(out)
}

// RollingMedian returns the median of the window around each sample. A
// centred window of size w covers [i-w/2, i-w/2+w); a trailing one covers
// (i-w, i]. Windows are clipped at the signal ends and give NaN when they
// hold fewer than minSamples finite values.
func RollingMedian(values []float64, size, minSamples int, center bool) []float64 {
	out := make([]float64, len(values))
	if size < 1 {
		size = 1
	}
	buf := make([]float64, 0, size)
	for i := range values {
		lo := i - size + 1
		if center {
			lo = i - size/2
		}
		hi := lo + size
		if lo < 0 {
			lo = 0
		}
		if hi > len(values) {
			hi = len(values)
		}
		buf = buf[:0]
		for _, v := range values[lo:hi] {
			if !math.IsNaN(v) {
				buf = append(buf, v)
			}
		}
		if len(buf) == 0 || len(buf) < minSamples {
			out[i] = math.NaN()
			continue
		}
		sort.Float64s(buf)
		m := len(buf) / 2
		if len(buf)%2 == 1 {
			out[i] = buf[m]
		} else {
			out[i] = (buf[m-1] + buf[m]) / 2
		}
	}
	return out
}
