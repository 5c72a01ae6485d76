package features

import "github.com/bdalab/handwriting-features/internal/sample"

// Velocity returns the per-step velocity of the requested surface.
func Velocity(w *sample.Wrapper, axis sample.Axis, inAir bool) ([]float64, error) {
	return w.Velocity(axis, inAir)
}

// Acceleration returns the per-step acceleration of the requested surface.
func Acceleration(w *sample.Wrapper, axis sample.Axis, inAir bool) ([]float64, error) {
	return w.Acceleration(axis, inAir)
}

// Jerk returns the per-step jerk of the requested surface.
func Jerk(w *sample.Wrapper, axis sample.Axis, inAir bool) ([]float64, error) {
	return w.Jerk(axis, inAir)
}
