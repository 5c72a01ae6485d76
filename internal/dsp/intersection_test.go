package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// figureEight traces an open lemniscate that passes the origin twice and so
// crosses itself exactly once.
func figureEight(n int) ([]float64, []float64) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		t := -0.3 + (math.Pi+0.6)*float64(i)/float64(n-1)
		x[i] = math.Sin(t)
		y[i] = math.Sin(t) * math.Cos(t)
	}
	return x, y
}

func TestSelfIntersections(t *testing.T) {
	t.Run("figure eight crosses once", func(t *testing.T) {
		x, y := figureEight(101)
		pts := SelfIntersections(x, y)
		require.Len(t, pts, 1)
		assert.InDelta(t, 0, pts[0].X, 1e-2)
		assert.InDelta(t, 0, pts[0].Y, 1e-2)
	})

	t.Run("simple polyline never crosses", func(t *testing.T) {
		x := []float64{0, 1, 2, 3, 4}
		y := []float64{0, 1, 0, 1, 0}
		assert.Empty(t, SelfIntersections(x, y))
	})

	t.Run("shared vertex is not a strict crossing", func(t *testing.T) {
		// closed square returns to its first vertex
		x := []float64{0, 1, 1, 0, 0}
		y := []float64{0, 0, 1, 1, 0}
		assert.Empty(t, SelfIntersections(x, y))
	})

	t.Run("NaN separates sub-curves", func(t *testing.T) {
		x := []float64{0, 2, math.NaN(), 1, 1}
		y := []float64{0, 0, math.NaN(), -1, 1}
		pts := SelfIntersections(x, y)
		require.Len(t, pts, 1)
		assert.Equal(t, Point{X: 1, Y: 0}, pts[0])
	})
}

func TestIntersections(t *testing.T) {
	x1, y1 := []float64{0, 2}, []float64{0, 2}
	x2, y2 := []float64{0, 2}, []float64{2, 0}
	pts := Intersections(x1, y1, x2, y2)
	require.Len(t, pts, 1)
	assert.Equal(t, Point{X: 1, Y: 1}, pts[0])

	assert.Empty(t, Intersections([]float64{0, 1}, []float64{0, 0}, []float64{0, 1}, []float64{1, 1}))

	// touching at an end point counts between two curves
	pts = Intersections([]float64{0, 1}, []float64{0, 0}, []float64{1, 1}, []float64{0, 1})
	require.Len(t, pts, 1)
	assert.Equal(t, Point{X: 1, Y: 0}, pts[0])
}
