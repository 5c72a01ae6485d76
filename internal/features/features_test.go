package features

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdalab/handwriting-features/internal/dsp"
	"github.com/bdalab/handwriting-features/internal/sample"
	"github.com/bdalab/handwriting-features/internal/testutil"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func wrap(t *testing.T, traj *sample.Trajectory) *sample.Wrapper {
	t.Helper()
	w, err := sample.NewWrapper(traj)
	require.NoError(t, err)
	return w
}

// onSurfaceOnly has no in-air strokes.
func onSurfaceOnly(t *testing.T) *sample.Wrapper {
	return wrap(t, testutil.NewBuilder(0.01).Line(true, 6, 0, 0, 1, 1).Build())
}

func TestKinematicAndDynamic(t *testing.T) {
	w := wrap(t, testutil.TwoStrokes())

	v, err := Velocity(w, sample.AxisX, false)
	require.NoError(t, err)
	assert.Len(t, v, 8)

	_, err = Jerk(w, "bogus", false)
	assert.True(t, errors.Is(err, sample.ErrUnsupportedAxis))

	acc, err := Acceleration(w, sample.AxisY, true)
	require.NoError(t, err)
	assert.Len(t, acc, 1)

	assert.Len(t, Azimuth(w, false), 10)
	assert.Len(t, Tilt(w, true), 3)
	p := Pressure(w)
	assert.Len(t, p, 10)
	p[0] = -1
	assert.Equal(t, testutil.DefaultPressure, Pressure(w)[0])
}

func TestSpatial(t *testing.T) {
	w := wrap(t, testutil.TwoStrokes())

	if diff := cmp.Diff([]float64{4, 4}, StrokeLength(w, false), approx); diff != "" {
		t.Errorf("StrokeLength mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{2 * math.Sqrt2}, StrokeLength(w, true), approx); diff != "" {
		t.Errorf("in-air StrokeLength mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []float64{0, 0}, StrokeHeight(w, false))
	assert.Equal(t, []float64{4, 4}, StrokeWidth(w, false))

	assert.InDelta(t, 8+math.Sqrt(41), WritingLength(w, false), 1e-9)
	assert.Equal(t, 5.0, WritingHeight(w, false))
	assert.Equal(t, 4.0, WritingWidth(w, false))
}

func TestMissingSurfaceGivesNaN(t *testing.T) {
	w := onSurfaceOnly(t)

	for name, got := range map[string][]float64{
		"stroke_length":   StrokeLength(w, true),
		"stroke_height":   StrokeHeight(w, true),
		"stroke_width":    StrokeWidth(w, true),
		"stroke_duration": StrokeDuration(w, true),
		"ratio":           RatioOfStrokeDurations(w),
		"azimuth":         Azimuth(w, true),
	} {
		t.Run(name, func(t *testing.T) {
			testutil.AssertNaN(t, got)
		})
	}
	assert.True(t, math.IsNaN(WritingLength(w, true)))
	assert.True(t, math.IsNaN(WritingDuration(w, true)))
	assert.True(t, math.IsNaN(WritingTempo(w, true)))
}

func TestTemporal(t *testing.T) {
	traj := testutil.TwoStrokes()
	w := wrap(t, traj)

	if diff := cmp.Diff([]float64{0.04, 0.04}, StrokeDuration(w, false), approx); diff != "" {
		t.Errorf("StrokeDuration mismatch (-want +got):\n%s", diff)
	}
	ratio := RatioOfStrokeDurations(w)
	require.Len(t, ratio, 1)
	assert.InDelta(t, 2, ratio[0], 1e-9)

	assert.InDelta(t, 0.08, WritingDuration(w, false), 1e-9)
	assert.Equal(t, traj.Time[len(traj.Time)-1]-traj.Time[0], WritingDurationOverall(w))
	assert.InDelta(t, 0.08/0.02, RatioOfWritingDurations(w), 1e-9)
	assert.Equal(t, 2.0, NumberOfInterruptions(w))
	assert.InDelta(t, 2/0.12, NumberOfInterruptionsRelative(w), 1e-9)
}

func TestRatioOfWritingDurations_NoInAir(t *testing.T) {
	w := onSurfaceOnly(t)
	got := RatioOfWritingDurations(w)
	assert.False(t, math.IsNaN(got))
	assert.False(t, math.IsInf(got, 0))
	assert.LessOrEqual(t, got, WritingDuration(w, false)/dsp.Epsilon)
	assert.Equal(t, 0.0, NumberOfInterruptions(w))
}

func TestIntersections(t *testing.T) {
	t.Run("figure eight crosses itself once", func(t *testing.T) {
		w := wrap(t, testutil.FigureEight(101, 0.01))
		in := NewIntersections(w)
		assert.Equal(t, []float64{1}, in.IntraStroke())
		assert.Equal(t, 1.0, in.TotalIntraStroke())
		assert.Equal(t, 0.0, in.InterStroke())
		assert.InDelta(t, 1/1.0, in.RelativeIntraStroke()[0], 1e-9)
		assert.InDelta(t, 1/1.0, in.RelativeTotalIntraStroke(), 1e-9)
	})

	t.Run("crossing strokes", func(t *testing.T) {
		traj := testutil.NewBuilder(0.01).
			Line(true, 5, 0, 0, 1, 0).
			Line(false, 2, 3.5, -1, -0.5, 0).
			Line(true, 4, 2.5, -1.5, 0, 1).
			Build()
		in := NewIntersections(wrap(t, traj))
		assert.Equal(t, []float64{0, 0}, in.IntraStroke())
		assert.Equal(t, 0.0, in.TotalIntraStroke())
		assert.Equal(t, 1.0, in.InterStroke())
		assert.InDelta(t, 1/0.07, in.RelativeInterStroke(), 1e-6)
	})

	t.Run("closed stroke does not meet another stroke", func(t *testing.T) {
		traj := testutil.NewBuilder(0.01).
			Curve(true, []float64{0, 1, 1, 0, 0}, []float64{0, 0, 1, 1, 0}).
			Build()
		in := NewIntersections(wrap(t, traj))
		assert.Equal(t, []float64{0}, in.IntraStroke())
		assert.Equal(t, 0.0, in.InterStroke())
		assert.Equal(t, 0.0, in.RelativeInterStroke())
	})

	t.Run("pause at a corner stays within the stroke", func(t *testing.T) {
		traj := testutil.NewBuilder(0.01).
			Curve(true, []float64{0, 1, 1, 1}, []float64{0, 0, 0, 1}).
			Build()
		in := NewIntersections(wrap(t, traj))
		assert.Equal(t, []float64{0}, in.IntraStroke())
		assert.Equal(t, 0.0, in.InterStroke())
	})

	t.Run("loop next to a crossing stroke", func(t *testing.T) {
		traj := testutil.NewBuilder(0.01).
			Curve(true, []float64{0, 4, 4, 0, 0}, []float64{0, 0, 1, 1, 0}).
			Line(false, 2, 3, 3, -0.5, 0).
			Line(true, 5, 2, 2, 0, -1).
			Build()
		in := NewIntersections(wrap(t, traj))
		assert.Equal(t, []float64{0, 0}, in.IntraStroke())
		// the vertical stroke crosses the top and bottom edges of the loop
		assert.Equal(t, 2.0, in.InterStroke())
	})

	t.Run("no on-surface strokes", func(t *testing.T) {
		traj := testutil.NewBuilder(0.01).Line(false, 5, 0, 0, 1, 1).Build()
		in := NewIntersections(wrap(t, traj))
		testutil.AssertNaN(t, in.IntraStroke())
		testutil.AssertNaN(t, in.RelativeIntraStroke())
		assert.Equal(t, 0.0, in.TotalIntraStroke())
		assert.Equal(t, 0.0, in.RelativeTotalIntraStroke())
		assert.Equal(t, 0.0, in.InterStroke())
		assert.Equal(t, 0.0, in.RelativeInterStroke())
	})
}

func TestProjection(t *testing.T) {
	// 2.5 Hz sine sampled at 100 Hz: peaks every 40 samples from 10
	w := wrap(t, testutil.Wave(200, 100, 2.5, 10))
	p, err := NewProjection(w, 100, 5)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 50, 90, 130, 170}, p.PeakIndices())
	assert.Equal(t, []float64{30, 70, 110, 150, 190}, p.ValleyIndices())
	for _, v := range p.PeakValues() {
		assert.InDelta(t, 10, v, 1e-9)
	}
	for _, v := range p.ValleyValues() {
		assert.InDelta(t, -10, v, 1e-9)
	}
	for _, d := range p.PeakDuration() {
		assert.InDelta(t, 0.4, d, 1e-9)
	}
	for _, d := range p.ValleyDistance() {
		assert.InDelta(t, 40, d, 1e-9)
	}
	vel := p.PeakVelocity()
	assert.Len(t, vel, 5)
	for _, v := range vel {
		assert.Greater(t, v, 0.0)
	}
}

func TestProjection_Degenerate(t *testing.T) {
	flat := wrap(t, testutil.NewBuilder(0.01).Line(true, 50, 0, 3, 1, 0).Build())
	p, err := NewProjection(flat, 100, DefaultGaussianTaps)
	require.NoError(t, err)
	testutil.AssertNaN(t, p.PeakIndices())
	testutil.AssertNaN(t, p.ValleyValues())
	testutil.AssertNaN(t, p.PeakDistance())

	_, err = NewProjection(flat, 0, DefaultGaussianTaps)
	assert.True(t, errors.Is(err, dsp.ErrInvalidFilter))
}

func TestWritingTempo(t *testing.T) {
	w := wrap(t, testutil.TwoStrokes())
	assert.InDelta(t, 2/0.08, WritingTempo(w, false), 1e-6)
	assert.InDelta(t, 1/0.02, WritingTempo(w, true), 1e-6)
}

func TestWritingStops(t *testing.T) {
	t.Run("single stop", func(t *testing.T) {
		traj := testutil.NewBuilder(0.01).
			Line(true, 10, 0, 0, 1, 0).
			Line(true, 10, 9, 0, 0, 0).
			Line(true, 10, 9, 0, 1, 0).
			Build()
		w := wrap(t, traj)
		stops := DetectStops(w)
		require.Len(t, stops, 1)
		assert.Equal(t, 9, stops[0].Start)
		assert.Equal(t, 20, stops[0].End)
		got := WritingStops(w)
		require.Len(t, got, 1)
		assert.InDelta(t, 0.11, got[0], 1e-9)
	})

	t.Run("close stops are merged", func(t *testing.T) {
		x := []float64{0, 1, 2, 3, 4, 5, 5, 5, 5, 6, 7, 7, 7, 7, 8, 9, 10, 11, 12}
		y := make([]float64, len(x))
		w := wrap(t, testutil.NewBuilder(0.01).Curve(true, x, y).Build())
		got := WritingStops(w)
		require.Len(t, got, 1)
		assert.InDelta(t, 0.08, got[0], 1e-9)
	})

	t.Run("moving pen has no stops", func(t *testing.T) {
		assert.Empty(t, WritingStops(wrap(t, testutil.TwoStrokes())))
	})

	t.Run("no on-surface strokes", func(t *testing.T) {
		traj := testutil.NewBuilder(0.01).Line(false, 5, 0, 0, 0, 0).Build()
		testutil.AssertNaN(t, WritingStops(wrap(t, traj)))
	})
}

func TestWritingNumberOfChanges(t *testing.T) {
	w := wrap(t, testutil.Wave(200, 100, 2.5, 10))

	got, err := WritingNumberOfChanges(w, 100, DefaultCutoff, 15)
	require.NoError(t, err)
	require.Len(t, got, len(ChangesNames))
	// five peaks and five valleys, some possibly lost to the filter edges
	assert.GreaterOrEqual(t, got[1], 8.0)
	assert.LessOrEqual(t, got[1], 10.0)

	duration := WritingDurationOverall(w) + dsp.Epsilon
	for i := 0; i < 6; i++ {
		assert.InDelta(t, got[i]/duration, got[i+6], 1e-9)
	}

	inAir := wrap(t, testutil.NewBuilder(0.01).Line(false, 50, 0, 0, 1, 1).Build())
	got, err = WritingNumberOfChanges(inAir, 100, DefaultCutoff, 15)
	require.NoError(t, err)
	testutil.AssertNaN(t, got)

	_, err = WritingNumberOfChanges(w, 100, 60, 5)
	assert.True(t, errors.Is(err, dsp.ErrInvalidFilter))
	_, err = WritingNumberOfChanges(w, 100, DefaultCutoff, 0)
	assert.True(t, errors.Is(err, dsp.ErrInvalidFilter))
}

func TestChanges(t *testing.T) {
	assert.Equal(t, 3, Changes([]float64{0, 1, 0, 1, 1, 2, 0}))
	assert.Equal(t, 0, Changes([]float64{1, 2}))
	assert.Equal(t, 0, Changes([]float64{1, math.NaN(), 1}))
}
