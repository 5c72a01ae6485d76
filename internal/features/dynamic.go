package features

import "github.com/bdalab/handwriting-features/internal/sample"

// Azimuth returns the pen azimuth of the requested surface.
func Azimuth(w *sample.Wrapper, inAir bool) []float64 {
	return clone(w.Azimuth(inAir))
}

// Tilt returns the pen tilt of the requested surface.
func Tilt(w *sample.Wrapper, inAir bool) []float64 {
	return clone(w.Tilt(inAir))
}

// Pressure returns the on-surface pen pressure.
func Pressure(w *sample.Wrapper) []float64 {
	return clone(w.Pressure())
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
