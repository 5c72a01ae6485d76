// Package sample holds the handwriting trajectory, its partition into
// on-surface and in-air strokes, and the memoised derived channels features
// are computed from.
package sample

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidTrajectory is returned for trajectories whose channels
	// disagree in length, are empty, or go back in time.
	ErrInvalidTrajectory = errors.New("invalid trajectory")
	// ErrUnsupportedAxis is returned for axis values other than x, y and xy.
	ErrUnsupportedAxis = errors.New("unsupported axis")
	// ErrUnsupportedSurface is returned for non-boolean in_air values.
	ErrUnsupportedSurface = errors.New("unsupported surface movement")
)

// Channel labels understood by FromValues.
const (
	LabelX         = "x"
	LabelY         = "y"
	LabelTime      = "time"
	LabelPenStatus = "pen_status"
	LabelAzimuth   = "azimuth"
	LabelTilt      = "tilt"
	LabelPressure  = "pressure"
)

// DefaultLabels is the channel order assumed when FromValues gets no labels.
var DefaultLabels = []string{
	LabelX, LabelY, LabelTime, LabelPenStatus, LabelAzimuth, LabelTilt, LabelPressure,
}

// Trajectory is a timestamped pen trace. All channels share one length.
type Trajectory struct {
	X         []float64
	Y         []float64
	Time      []float64
	PenStatus []bool // true while the pen touches the surface
	Azimuth   []float64
	Tilt      []float64
	Pressure  []float64
}

// Len is the number of points.
func (t *Trajectory) Len() int { return len(t.Time) }

// Validate checks that the trajectory is non-empty, every channel has the
// same length, and time never decreases.
func (t *Trajectory) Validate() error {
	n := len(t.Time)
	if n == 0 {
		return fmt.Errorf("%w: no points", ErrInvalidTrajectory)
	}
	lengths := map[string]int{
		LabelX:         len(t.X),
		LabelY:         len(t.Y),
		LabelPenStatus: len(t.PenStatus),
		LabelAzimuth:   len(t.Azimuth),
		LabelTilt:      len(t.Tilt),
		LabelPressure:  len(t.Pressure),
	}
	for _, label := range DefaultLabels {
		if l, ok := lengths[label]; ok && l != n {
			return fmt.Errorf("%w: channel %s has %d points, time has %d", ErrInvalidTrajectory, label, l, n)
		}
	}
	for i := 1; i < n; i++ {
		if t.Time[i] < t.Time[i-1] {
			return fmt.Errorf("%w: time decreases at index %d", ErrInvalidTrajectory, i)
		}
	}
	return nil
}

// FromValues builds a trajectory from a channel matrix values[channel][point].
// labels name the rows; no labels mean DefaultLabels. x, y, time and
// pen_status are required. Missing azimuth, tilt or pressure rows are filled
// with NaN. A pen_status value is on-surface when non-zero.
func FromValues(values [][]float64, labels []string) (*Trajectory, error) {
	if len(labels) == 0 {
		labels = DefaultLabels
		if len(values) < len(labels) {
			labels = labels[:len(values)]
		}
	}
	if len(labels) != len(values) {
		return nil, fmt.Errorf("%w: %d labels for %d channels", ErrInvalidTrajectory, len(labels), len(values))
	}

	rows := make(map[string][]float64, len(labels))
	for i, label := range labels {
		if _, dup := rows[label]; dup {
			return nil, fmt.Errorf("%w: duplicate channel %q", ErrInvalidTrajectory, label)
		}
		rows[label] = values[i]
	}
	for _, required := range []string{LabelX, LabelY, LabelTime, LabelPenStatus} {
		if _, ok := rows[required]; !ok {
			return nil, fmt.Errorf("%w: missing channel %q", ErrInvalidTrajectory, required)
		}
	}

	n := len(rows[LabelTime])
	t := &Trajectory{
		X:         clone(rows[LabelX]),
		Y:         clone(rows[LabelY]),
		Time:      clone(rows[LabelTime]),
		PenStatus: make([]bool, len(rows[LabelPenStatus])),
		Azimuth:   optional(rows, LabelAzimuth, n),
		Tilt:      optional(rows, LabelTilt, n),
		Pressure:  optional(rows, LabelPressure, n),
	}
	for i, v := range rows[LabelPenStatus] {
		t.PenStatus[i] = v != 0
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func optional(rows map[string][]float64, label string, n int) []float64 {
	if row, ok := rows[label]; ok {
		return clone(row)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
