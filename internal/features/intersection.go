package features

import (
	"github.com/bdalab/handwriting-features/internal/dsp"
	"github.com/bdalab/handwriting-features/internal/sample"
)

// Intersections counts crossings of the on-surface trace, both within a
// stroke and between different strokes.
type Intersections struct {
	strokes  int
	intra    []float64
	intraRel []float64
	inter    int
	duration float64
}

// NewIntersections detects the crossings of w's on-surface strokes.
func NewIntersections(w *sample.Wrapper) *Intersections {
	strokes := w.OnSurfaceStrokes()
	in := &Intersections{
		strokes:  len(strokes),
		intra:    make([]float64, len(strokes)),
		intraRel: make([]float64, len(strokes)),
	}
	if len(strokes) == 0 {
		return in
	}
	in.duration = WritingDuration(w, false)

	for i, s := range strokes {
		if n := len(dsp.SelfIntersections(s.X, s.Y)); n > 0 {
			in.intra[i] = float64(n)
			in.intraRel[i] = float64(n) / (s.Duration() + dsp.Epsilon)
		}
	}

	// distinct points where two different strokes meet
	inter := make(map[dsp.Point]struct{})
	for a := range strokes {
		for b := a + 1; b < len(strokes); b++ {
			for _, p := range dsp.Intersections(strokes[a].X, strokes[a].Y, strokes[b].X, strokes[b].Y) {
				inter[p] = struct{}{}
			}
		}
	}
	in.inter = len(inter)
	return in
}

// IntraStroke returns the number of self-intersections of each stroke.
func (in *Intersections) IntraStroke() []float64 {
	if in.strokes == 0 {
		return dsp.NaN()
	}
	return clone(in.intra)
}

// RelativeIntraStroke returns IntraStroke divided by each stroke's duration.
func (in *Intersections) RelativeIntraStroke() []float64 {
	if in.strokes == 0 {
		return dsp.NaN()
	}
	return clone(in.intraRel)
}

// TotalIntraStroke sums IntraStroke over all strokes.
func (in *Intersections) TotalIntraStroke() float64 {
	var total float64
	for _, n := range in.intra {
		total += n
	}
	return total
}

// RelativeTotalIntraStroke is TotalIntraStroke per unit of on-surface
// writing duration.
func (in *Intersections) RelativeTotalIntraStroke() float64 {
	if in.strokes == 0 {
		return 0
	}
	return in.TotalIntraStroke() / (in.duration + dsp.Epsilon)
}

// InterStroke counts crossings between different strokes.
func (in *Intersections) InterStroke() float64 {
	return float64(in.inter)
}

// RelativeInterStroke is InterStroke per unit of on-surface writing
// duration.
func (in *Intersections) RelativeInterStroke() float64 {
	if in.strokes == 0 {
		return 0
	}
	return float64(in.inter) / (in.duration + dsp.Epsilon)
}
