package sample

import (
	"math"

	"github.com/bdalab/handwriting-features/internal/dsp"
)

// Wrapper owns a trajectory, its stroke partition, and lazily computed
// derived channels. A Wrapper is not safe for concurrent use; give every
// goroutine its own.
type Wrapper struct {
	traj    *Trajectory
	strokes []Stroke

	onSurface []Stroke
	inAir     []Stroke
	onData    Channels
	airData   Channels

	kinematics map[kinematicKey]*kinematics
	azimuth    map[bool][]float64
	tilt       map[bool][]float64
	pressure   []float64
}

type kinematicKey struct {
	axis  Axis
	inAir bool
}

// kinematics holds per-stroke derivative series together with the times
// each value belongs to.
type kinematics struct {
	velocity, acceleration, jerk [][]float64
}

// NewWrapper validates t and partitions it into strokes.
func NewWrapper(t *Trajectory) (*Wrapper, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	w := &Wrapper{
		traj:       t,
		strokes:    Split(t),
		kinematics: make(map[kinematicKey]*kinematics, len(Axes)*2),
		azimuth:    make(map[bool][]float64, 2),
		tilt:       make(map[bool][]float64, 2),
	}
	for _, s := range w.strokes {
		if s.OnSurface {
			w.onSurface = append(w.onSurface, s)
			w.onData.appendFrom(s.Channels)
		} else {
			w.inAir = append(w.inAir, s)
			w.airData.appendFrom(s.Channels)
		}
	}
	return w, nil
}

// Trajectory returns the wrapped trajectory. Callers must not modify it.
func (w *Wrapper) Trajectory() *Trajectory { return w.traj }

// Strokes returns every stroke in temporal order.
func (w *Wrapper) Strokes() []Stroke { return w.strokes }

// OnSurfaceStrokes returns the strokes drawn with the pen down.
func (w *Wrapper) OnSurfaceStrokes() []Stroke { return w.onSurface }

// InAirStrokes returns the strokes with the pen lifted.
func (w *Wrapper) InAirStrokes() []Stroke { return w.inAir }

// StrokesFor returns in-air or on-surface strokes.
func (w *Wrapper) StrokesFor(inAir bool) []Stroke {
	if inAir {
		return w.inAir
	}
	return w.onSurface
}

// OnSurfaceData is the concatenation of all on-surface strokes.
func (w *Wrapper) OnSurfaceData() Channels { return w.onData }

// InAirData is the concatenation of all in-air strokes.
func (w *Wrapper) InAirData() Channels { return w.airData }

// DataFor returns the in-air or on-surface concatenation.
func (w *Wrapper) DataFor(inAir bool) Channels {
	if inAir {
		return w.airData
	}
	return w.onData
}

// Velocity returns the per-step speed along axis, stroke by stroke,
// concatenated. x and y speeds are signed.
func (w *Wrapper) Velocity(axis Axis, inAir bool) ([]float64, error) {
	k, err := w.kinematicsFor(axis, inAir)
	if err != nil {
		return nil, err
	}
	return concat(k.velocity), nil
}

// Acceleration is the time derivative of each stroke's velocity.
func (w *Wrapper) Acceleration(axis Axis, inAir bool) ([]float64, error) {
	k, err := w.kinematicsFor(axis, inAir)
	if err != nil {
		return nil, err
	}
	return concat(k.acceleration), nil
}

// Jerk is the time derivative of each stroke's acceleration.
func (w *Wrapper) Jerk(axis Axis, inAir bool) ([]float64, error) {
	k, err := w.kinematicsFor(axis, inAir)
	if err != nil {
		return nil, err
	}
	return concat(k.jerk), nil
}

// StrokeVelocity returns the velocity of each stroke separately.
func (w *Wrapper) StrokeVelocity(axis Axis, inAir bool) ([][]float64, error) {
	k, err := w.kinematicsFor(axis, inAir)
	if err != nil {
		return nil, err
	}
	return k.velocity, nil
}

// Azimuth returns the azimuth channel of the requested surface.
func (w *Wrapper) Azimuth(inAir bool) []float64 {
	if v, ok := w.azimuth[inAir]; ok {
		return v
	}
	v := nanIfEmpty(w.DataFor(inAir).Azimuth)
	w.azimuth[inAir] = v
	return v
}

// Tilt returns the tilt channel of the requested surface.
func (w *Wrapper) Tilt(inAir bool) []float64 {
	if v, ok := w.tilt[inAir]; ok {
		return v
	}
	v := nanIfEmpty(w.DataFor(inAir).Tilt)
	w.tilt[inAir] = v
	return v
}

// Pressure returns the on-surface pressure channel.
func (w *Wrapper) Pressure() []float64 {
	if w.pressure == nil {
		w.pressure = nanIfEmpty(w.onData.Pressure)
	}
	return w.pressure
}

func (w *Wrapper) kinematicsFor(axis Axis, inAir bool) (*kinematics, error) {
	a, err := ParseAxis(axis)
	if err != nil {
		return nil, err
	}
	key := kinematicKey{axis: a, inAir: inAir}
	if k, ok := w.kinematics[key]; ok {
		return k, nil
	}
	k := &kinematics{}
	for _, s := range w.StrokesFor(inAir) {
		v, tv := strokeVelocity(s.Channels, a)
		acc, ta := timeDerivative(v, tv)
		jerk, _ := timeDerivative(acc, ta)
		k.velocity = append(k.velocity, v)
		k.acceleration = append(k.acceleration, acc)
		k.jerk = append(k.jerk, jerk)
	}
	w.kinematics[key] = k
	return k, nil
}

// strokeVelocity returns displacement over elapsed time for every step of
// the stroke, stamped with the step's mid time.
func strokeVelocity(c Channels, axis Axis) (v, t []float64) {
	n := c.Len()
	if n < 2 {
		return []float64{}, []float64{}
	}
	var disp []float64
	switch axis {
	case AxisX:
		disp = dsp.Derivative(c.X, 1)
	case AxisY:
		disp = dsp.Derivative(c.Y, 1)
	default:
		disp = dsp.Hypot(c.X, c.Y)
	}
	dt := dsp.Derivative(c.Time, 1)
	v = make([]float64, n-1)
	t = make([]float64, n-1)
	for i := range v {
		v[i] = disp[i] / dt[i]
		t[i] = (c.Time[i] + c.Time[i+1]) / 2
	}
	return v, t
}

// timeDerivative differentiates values stamped at times t.
func timeDerivative(values, t []float64) (d, td []float64) {
	if len(values) < 2 {
		return []float64{}, []float64{}
	}
	d = make([]float64, len(values)-1)
	td = make([]float64, len(values)-1)
	for i := range d {
		d[i] = (values[i+1] - values[i]) / (t[i+1] - t[i])
		td[i] = (t[i] + t[i+1]) / 2
	}
	return d, td
}

func concat(parts [][]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return nanIfEmpty(out)
}

func nanIfEmpty(v []float64) []float64 {
	if len(v) == 0 {
		return []float64{math.NaN()}
	}
	return v
}
