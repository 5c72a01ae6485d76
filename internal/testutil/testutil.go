// Package testutil provides shared test helpers and synthetic pen
// trajectories.
package testutil

import (
	"math"
	"testing"

	"github.com/bdalab/handwriting-features/internal/sample"
)

// Default auxiliary channel values used by Builder.
const (
	DefaultAzimuth  = 45.0
	DefaultTilt     = 60.0
	DefaultPressure = 500.0
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertNaN fails the test unless values is the single-NaN sentinel.
func AssertNaN(t testing.TB, values []float64) {
	t.Helper()
	if len(values) != 1 || !math.IsNaN(values[0]) {
		t.Errorf("got %v, want [NaN]", values)
	}
}

// Builder assembles a trajectory point by point with a fixed time step.
type Builder struct {
	dt   float64
	traj sample.Trajectory
}

// NewBuilder starts an empty trajectory sampled every dt seconds.
func NewBuilder(dt float64) *Builder {
	return &Builder{dt: dt}
}

// Point appends one point with explicit auxiliary channels.
func (b *Builder) Point(onSurface bool, x, y, azimuth, tilt, pressure float64) *Builder {
	t := 0.0
	if n := len(b.traj.Time); n > 0 {
		t = b.traj.Time[n-1] + b.dt
	}
	b.traj.X = append(b.traj.X, x)
	b.traj.Y = append(b.traj.Y, y)
	b.traj.Time = append(b.traj.Time, t)
	b.traj.PenStatus = append(b.traj.PenStatus, onSurface)
	b.traj.Azimuth = append(b.traj.Azimuth, azimuth)
	b.traj.Tilt = append(b.traj.Tilt, tilt)
	if !onSurface {
		pressure = 0
	}
	b.traj.Pressure = append(b.traj.Pressure, pressure)
	return b
}

// Line appends n points starting at (x0, y0) and moving (dx, dy) per step.
func (b *Builder) Line(onSurface bool, n int, x0, y0, dx, dy float64) *Builder {
	for i := 0; i < n; i++ {
		b.Point(onSurface, x0+float64(i)*dx, y0+float64(i)*dy, DefaultAzimuth, DefaultTilt, DefaultPressure)
	}
	return b
}

// Curve appends the polyline (x, y).
func (b *Builder) Curve(onSurface bool, x, y []float64) *Builder {
	for i := range x {
		b.Point(onSurface, x[i], y[i], DefaultAzimuth, DefaultTilt, DefaultPressure)
	}
	return b
}

// Build returns a copy of the assembled trajectory.
func (b *Builder) Build() *sample.Trajectory {
	t := b.traj
	t.X = append([]float64(nil), t.X...)
	t.Y = append([]float64(nil), t.Y...)
	t.Time = append([]float64(nil), t.Time...)
	t.PenStatus = append([]bool(nil), t.PenStatus...)
	t.Azimuth = append([]float64(nil), t.Azimuth...)
	t.Tilt = append([]float64(nil), t.Tilt...)
	t.Pressure = append([]float64(nil), t.Pressure...)
	return &t
}

// TwoStrokes is two horizontal on-surface strokes of five points each,
// 10 ms apart, joined by a three-point in-air movement. Each stroke moves
// one unit per sample along x, i.e. 100 units/s, and is 4 units long.
func TwoStrokes() *sample.Trajectory {
	return NewBuilder(0.01).
		Line(true, 5, 0, 0, 1, 0).
		Line(false, 3, 4, 1, -1, 1).
		Line(true, 5, 0, 5, 1, 0).
		Build()
}

// FigureEightXY samples n points of an open lemniscate that crosses itself
// once near the origin.
func FigureEightXY(n int) (x, y []float64) {
	x = make([]float64, n)
	y = make([]float64, n)
	for i := range x {
		t := -0.3 + (math.Pi+0.6)*float64(i)/float64(n-1)
		x[i] = 10 * math.Sin(t)
		y[i] = 10 * math.Sin(t) * math.Cos(t)
	}
	return x, y
}

// FigureEight is a single on-surface figure-eight stroke.
func FigureEight(n int, dt float64) *sample.Trajectory {
	x, y := FigureEightXY(n)
	return NewBuilder(dt).Curve(true, x, y).Build()
}

// Alternating switches pen status every point, giving n one-point strokes.
func Alternating(n int, dt float64) *sample.Trajectory {
	b := NewBuilder(dt)
	for i := 0; i < n; i++ {
		b.Point(i%2 == 0, float64(i), float64(i), DefaultAzimuth, DefaultTilt, DefaultPressure)
	}
	return b.Build()
}

// Wave is a single on-surface stroke of n points whose y follows a sine of
// the given frequency while x advances steadily.
func Wave(n int, fs, freq, amplitude float64) *sample.Trajectory {
	b := NewBuilder(1 / fs)
	for i := 0; i < n; i++ {
		t := float64(i) / fs
		b.Point(true, 100*t, amplitude*math.Sin(2*math.Pi*freq*t),
			DefaultAzimuth+math.Sin(2*math.Pi*freq*t), DefaultTilt, DefaultPressure+10*math.Cos(2*math.Pi*freq*t))
	}
	return b.Build()
}

// Values converts t to the channel matrix layout with sample.DefaultLabels.
func Values(t *sample.Trajectory) [][]float64 {
	pen := make([]float64, len(t.PenStatus))
	for i, on := range t.PenStatus {
		if on {
			pen[i] = 1
		}
	}
	return [][]float64{
		append([]float64(nil), t.X...),
		append([]float64(nil), t.Y...),
		append([]float64(nil), t.Time...),
		pen,
		append([]float64(nil), t.Azimuth...),
		append([]float64(nil), t.Tilt...),
		append([]float64(nil), t.Pressure...),
	}
}
