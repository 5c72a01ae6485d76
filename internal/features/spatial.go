package features

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/bdalab/handwriting-features/internal/dsp"
	"github.com/bdalab/handwriting-features/internal/sample"
)

// StrokeLength returns the path length of every stroke.
func StrokeLength(w *sample.Wrapper, inAir bool) []float64 {
	return perStroke(w, inAir, func(s sample.Stroke) float64 {
		return floats.Sum(dsp.Hypot(s.X, s.Y))
	})
}

// StrokeHeight returns the vertical extent of every stroke.
func StrokeHeight(w *sample.Wrapper, inAir bool) []float64 {
	return perStroke(w, inAir, func(s sample.Stroke) float64 { return dsp.Span(s.Y) })
}

// StrokeWidth returns the horizontal extent of every stroke.
func StrokeWidth(w *sample.Wrapper, inAir bool) []float64 {
	return perStroke(w, inAir, func(s sample.Stroke) float64 { return dsp.Span(s.X) })
}

// WritingLength is the path length of the concatenated surface data.
func WritingLength(w *sample.Wrapper, inAir bool) float64 {
	data := w.DataFor(inAir)
	if data.Len() == 0 {
		return math.NaN()
	}
	return floats.Sum(dsp.Hypot(data.X, data.Y))
}

// WritingHeight is the vertical extent of the concatenated surface data.
func WritingHeight(w *sample.Wrapper, inAir bool) float64 {
	return dsp.Span(w.DataFor(inAir).Y)
}

// WritingWidth is the horizontal extent of the concatenated surface data.
func WritingWidth(w *sample.Wrapper, inAir bool) float64 {
	return dsp.Span(w.DataFor(inAir).X)
}

func perStroke(w *sample.Wrapper, inAir bool, fn func(sample.Stroke) float64) []float64 {
	strokes := w.StrokesFor(inAir)
	if len(strokes) == 0 {
		return dsp.NaN()
	}
	out := make([]float64, len(strokes))
	for i, s := range strokes {
		out[i] = fn(s)
	}
	return out
}
