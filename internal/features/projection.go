package features

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/bdalab/handwriting-features/internal/dsp"
	"github.com/bdalab/handwriting-features/internal/sample"
)

// Projection window length in seconds and the variation below which a
// window is treated as flat.
const (
	ProjectionWindow       = 0.100
	ProjectionMinVariation = 1e-4
)

// DefaultGaussianTaps is the Gaussian kernel length used when none is given.
const DefaultGaussianTaps = 50

// Projection locates the vertical peaks and valleys of the on-surface
// trace. Indices refer to the concatenated on-surface data.
type Projection struct {
	data    sample.Channels
	peaks   []int
	valleys []int
}

// NewProjection analyses w's on-surface y channel sampled at fs Hz,
// smoothing it with an n-tap Gaussian filter.
func NewProjection(w *sample.Wrapper, fs float64, n int) (*Projection, error) {
	g, err := dsp.NewGaussianFilter(fs, n)
	if err != nil {
		return nil, err
	}
	p := &Projection{data: w.OnSurfaceData()}
	if p.data.Len() == 0 {
		return p, nil
	}

	size := int(math.Ceil(fs * ProjectionWindow))
	if size < 2 {
		size = 2
	}
	if size%2 != 0 {
		size++
	}
	windows, err := dsp.Segment(p.data.Y, size, size)
	if err != nil {
		return nil, err
	}

	// keep only points of windows that move
	var y []float64
	var index []int
	for k, win := range windows {
		var values []float64
		var idx []int
		for pos := range win {
			i, ok := dsp.WindowIndex(k, pos, size, p.data.Len())
			if !ok {
				break
			}
			values = append(values, win[pos])
			idx = append(idx, i)
		}
		if variation(values) > ProjectionMinVariation {
			y = append(y, values...)
			index = append(index, idx...)
		}
	}
	if len(y) < 3 {
		return p, nil
	}

	smoothed := g.Filter(y)
	first := make(map[float64]int, p.data.Len())
	for i := len(p.data.Time) - 1; i >= 0; i-- {
		first[p.data.Time[i]] = i
	}
	absolute := func(i int) int { return first[p.data.Time[index[i]]] }

	for i := 1; i+1 < len(smoothed); i++ {
		switch {
		case smoothed[i] > smoothed[i-1] && smoothed[i] > smoothed[i+1]:
			p.peaks = append(p.peaks, absolute(climb(y, i, 1)))
		case smoothed[i] < smoothed[i-1] && smoothed[i] < smoothed[i+1]:
			p.valleys = append(p.valleys, absolute(climb(y, i, -1)))
		}
	}
	return p, nil
}

// variation is the coefficient of variation std/|mean|.
func variation(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sd := math.Sqrt(stat.PopVariance(values, nil))
	return sd / math.Abs(stat.Mean(values, nil))
}

// climb moves i to the nearest local maximum of sign*y.
func climb(y []float64, i int, sign float64) int {
	for {
		left := i > 0 && sign*y[i-1] > sign*y[i]
		right := i+1 < len(y) && sign*y[i+1] > sign*y[i]
		switch {
		case left && right:
			if sign*y[i-1] >= sign*y[i+1] {
				i--
			} else {
				i++
			}
		case left:
			i--
		case right:
			i++
		default:
			return i
		}
	}
}

// PeakIndices returns the on-surface indices of the vertical peaks.
func (p *Projection) PeakIndices() []float64 { return p.indices(p.peaks) }

// ValleyIndices returns the on-surface indices of the vertical valleys.
func (p *Projection) ValleyIndices() []float64 { return p.indices(p.valleys) }

// PeakValues returns y at each peak.
func (p *Projection) PeakValues() []float64 { return p.pick(p.peaks, p.data.Y) }

// ValleyValues returns y at each valley.
func (p *Projection) ValleyValues() []float64 { return p.pick(p.valleys, p.data.Y) }

// PeakVelocity returns the speed leaving each peak.
func (p *Projection) PeakVelocity() []float64 { return p.pick(p.peaks, p.velocity()) }

// ValleyVelocity returns the speed leaving each valley.
func (p *Projection) ValleyVelocity() []float64 { return p.pick(p.valleys, p.velocity()) }

// PeakDistance returns the horizontal distance between consecutive peaks.
func (p *Projection) PeakDistance() []float64 { return p.gaps(p.peaks, p.data.X) }

// ValleyDistance returns the horizontal distance between consecutive
// valleys.
func (p *Projection) ValleyDistance() []float64 { return p.gaps(p.valleys, p.data.X) }

// PeakDuration returns the time between consecutive peaks.
func (p *Projection) PeakDuration() []float64 { return p.gaps(p.peaks, p.data.Time) }

// ValleyDuration returns the time between consecutive valleys.
func (p *Projection) ValleyDuration() []float64 { return p.gaps(p.valleys, p.data.Time) }

func (p *Projection) indices(at []int) []float64 {
	if len(at) == 0 {
		return dsp.NaN()
	}
	out := make([]float64, len(at))
	for i, idx := range at {
		out[i] = float64(idx)
	}
	return out
}

// pick reads channel at every index; indices past its end give NaN.
func (p *Projection) pick(at []int, channel []float64) []float64 {
	if len(at) == 0 {
		return dsp.NaN()
	}
	out := make([]float64, len(at))
	for i, idx := range at {
		if idx < len(channel) {
			out[i] = channel[idx]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func (p *Projection) gaps(at []int, channel []float64) []float64 {
	if len(at) < 2 {
		return dsp.NaN()
	}
	return dsp.Derivative(p.pick(at, channel), 1)
}

func (p *Projection) velocity() []float64 {
	disp := dsp.Hypot(p.data.X, p.data.Y)
	dt := dsp.Derivative(p.data.Time, 1)
	if dsp.IsNaN(dt) {
		return nil
	}
	v := make([]float64, len(disp))
	for i := range v {
		v[i] = disp[i] / dt[i]
	}
	return v
}
