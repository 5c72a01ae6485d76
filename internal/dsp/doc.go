// Package dsp implements the elementary numeric operators used by the
// handwriting feature computations: discrete derivatives, polyline
// intersection detection, outlier-robust slope estimation, fixed-size
// windowing and zero-phase smoothing filters.
//
// Numeric degeneracy (empty input, too few samples, singular fits) is never
// reported as an error. It resolves to the NaN sentinel, a single-element
// slice holding math.NaN(), which callers propagate like any other value.
package dsp
