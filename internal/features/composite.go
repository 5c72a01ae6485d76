package features

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/bdalab/handwriting-features/internal/dsp"
	"github.com/bdalab/handwriting-features/internal/monitoring"
	"github.com/bdalab/handwriting-features/internal/sample"
)

// Writing stop detection parameters.
const (
	StopVelocity    = 1.0   // speeds at or below this count as stationary
	StopMinDuration = 0.015 // seconds
)

// DefaultCutoff is the low-pass cutoff in Hz used by WritingNumberOfChanges.
const DefaultCutoff = 17.5

// ChangesNames labels the values returned by WritingNumberOfChanges.
var ChangesNames = []string{
	"number_of_changes_in_x_profile",
	"number_of_changes_in_y_profile",
	"number_of_changes_in_azimuth",
	"number_of_changes_in_tilt",
	"number_of_changes_in_pressure",
	"number_of_changes_in_velocity_profile",
	"relative_number_of_changes_in_x_profile",
	"relative_number_of_changes_in_y_profile",
	"relative_number_of_changes_in_azimuth",
	"relative_number_of_changes_in_tilt",
	"relative_number_of_changes_in_pressure",
	"relative_number_of_changes_in_velocity_profile",
}

// WritingTempo is the number of strokes per unit of writing time.
func WritingTempo(w *sample.Wrapper, inAir bool) float64 {
	strokes := w.StrokesFor(inAir)
	if len(strokes) == 0 {
		return math.NaN()
	}
	return float64(len(strokes)) / (floats.Sum(StrokeDuration(w, inAir)) + dsp.Epsilon)
}

// Stop is a stationary period of an on-surface stroke. Start and End are
// sample indices into the trajectory, End exclusive.
type Stop struct {
	Start, End int
	Duration   float64
}

// DetectStops finds the stationary periods of every on-surface stroke.
// Runs shorter than StopMinDuration are ignored and runs separated by less
// than twice that are merged.
func DetectStops(w *sample.Wrapper) []Stop {
	var stops []Stop
	for _, s := range w.OnSurfaceStrokes() {
		if s.Len() < 2 {
			continue
		}
		dt := dsp.Derivative(s.Time, 1)
		meanDt := stat.Mean(dt, nil)
		if !(meanDt > 0) {
			continue
		}
		disp := dsp.Hypot(s.X, s.Y)
		still := make([]bool, len(disp))
		for i := range disp {
			still[i] = disp[i]/dt[i] <= StopVelocity
		}
		minLen := int(math.Ceil(StopMinDuration / meanDt))

		var runs []Stop
		for _, r := range stillRuns(still) {
			if r.End-r.Start < minLen {
				continue
			}
			if n := len(runs); n > 0 && r.Start-runs[n-1].End < 2*minLen {
				runs[n-1].End = r.End
				continue
			}
			runs = append(runs, r)
		}
		for _, r := range runs {
			stops = append(stops, Stop{
				Start:    s.Start + r.Start,
				End:      s.Start + r.End,
				Duration: float64(r.End-r.Start) * meanDt,
			})
		}
	}
	return stops
}

func stillRuns(still []bool) []Stop {
	var runs []Stop
	for i := 0; i < len(still); {
		if !still[i] {
			i++
			continue
		}
		j := i
		for j < len(still) && still[j] {
			j++
		}
		runs = append(runs, Stop{Start: i, End: j})
		i = j
	}
	return runs
}

// WritingStops returns the duration of every writing stop.
func WritingStops(w *sample.Wrapper) []float64 {
	if len(w.OnSurfaceStrokes()) == 0 {
		return dsp.NaN()
	}
	stops := DetectStops(w)
	out := make([]float64, len(stops))
	for i, s := range stops {
		out[i] = s.Duration
	}
	return out
}

// WritingNumberOfChanges counts direction changes of the x, y, azimuth,
// tilt, pressure and velocity profiles of the on-surface strokes, followed
// by the same six counts per unit of overall writing duration. The whole
// sample is low-pass filtered at fc Hz first, then every stroke is smoothed
// with an n-tap Gaussian filter. A sample without on-surface strokes gives
// NaN.
func WritingNumberOfChanges(w *sample.Wrapper, fs, fc float64, n int) ([]float64, error) {
	lp, err := dsp.NewLowPassFilter(fs, fc)
	if err != nil {
		return nil, err
	}
	g, err := dsp.NewGaussianFilter(fs, n)
	if err != nil {
		return nil, err
	}
	if len(w.OnSurfaceStrokes()) == 0 {
		return dsp.NaN(), nil
	}

	traj := w.Trajectory()
	if traj.Len() <= lp.PadLen() {
		monitoring.Logf("writing_number_of_changes: %d points, low-pass filter skipped", traj.Len())
	}
	channels := [][]float64{
		lp.Filter(traj.X),
		lp.Filter(traj.Y),
		lp.Filter(traj.Azimuth),
		lp.Filter(traj.Tilt),
		lp.Filter(traj.Pressure),
	}

	counts := make([]float64, 6)
	for _, s := range w.OnSurfaceStrokes() {
		lo, hi := s.Start, s.Start+s.Len()
		for c, ch := range channels {
			counts[c] += float64(Changes(g.Filter(ch[lo:hi])))
		}
		disp := dsp.Hypot(channels[0][lo:hi], channels[1][lo:hi])
		velocity := make([]float64, len(disp))
		for i := range disp {
			velocity[i] = disp[i] / (s.Time[i+1] - s.Time[i])
		}
		counts[5] += float64(Changes(g.Filter(velocity)))
	}

	duration := WritingDurationOverall(w) + dsp.Epsilon
	out := make([]float64, 0, 12)
	out = append(out, counts...)
	for _, c := range counts {
		out = append(out, c/duration)
	}
	return out, nil
}

// Changes counts the strict local extrema of signal.
func Changes(signal []float64) int {
	n := 0
	for i := 1; i+1 < len(signal); i++ {
		v := signal[i]
		if (v > signal[i-1] && v > signal[i+1]) || (v < signal[i-1] && v < signal[i+1]) {
			n++
		}
	}
	return n
}
