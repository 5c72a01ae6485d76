package features

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/bdalab/handwriting-features/internal/dsp"
	"github.com/bdalab/handwriting-features/internal/sample"
)

// StrokeDuration returns the duration of every stroke.
func StrokeDuration(w *sample.Wrapper, inAir bool) []float64 {
	return perStroke(w, inAir, func(s sample.Stroke) float64 { return s.Duration() })
}

// RatioOfStrokeDurations divides each on-surface stroke duration by the
// duration of the in-air stroke with the same position. Extra strokes on
// the longer side are ignored.
func RatioOfStrokeDurations(w *sample.Wrapper) []float64 {
	on := StrokeDuration(w, false)
	air := StrokeDuration(w, true)
	if len(w.OnSurfaceStrokes()) == 0 || len(w.InAirStrokes()) == 0 {
		return dsp.NaN()
	}
	n := min(len(on), len(air))
	out := make([]float64, n)
	for i := range out {
		out[i] = on[i] / (air[i] + dsp.Epsilon)
	}
	return out
}

// WritingDuration is the summed duration of the surface's strokes.
func WritingDuration(w *sample.Wrapper, inAir bool) float64 {
	if len(w.StrokesFor(inAir)) == 0 {
		return math.NaN()
	}
	return floats.Sum(StrokeDuration(w, inAir))
}

// WritingDurationOverall is the time between the first and last point.
func WritingDurationOverall(w *sample.Wrapper) float64 {
	t := w.Trajectory().Time
	return t[len(t)-1] - t[0]
}

// RatioOfWritingDurations is the on-surface writing duration over the
// in-air one. A sample without in-air strokes counts as zero in-air time.
func RatioOfWritingDurations(w *sample.Wrapper) float64 {
	on := WritingDuration(w, false)
	if math.IsNaN(on) {
		return math.NaN()
	}
	air := WritingDuration(w, true)
	if math.IsNaN(air) {
		air = 0
	}
	return on / (air + dsp.Epsilon)
}

// NumberOfInterruptions counts pen status changes.
func NumberOfInterruptions(w *sample.Wrapper) float64 {
	return float64(len(w.Strokes()) - 1)
}

// NumberOfInterruptionsRelative is NumberOfInterruptions per unit of
// overall writing duration.
func NumberOfInterruptionsRelative(w *sample.Wrapper) float64 {
	return NumberOfInterruptions(w) / (WritingDurationOverall(w) + dsp.Epsilon)
}
