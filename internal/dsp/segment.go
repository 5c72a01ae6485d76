package dsp

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow is returned for unusable window sizes or steps.
var ErrInvalidWindow = errors.New("invalid window")

// Segment splits signal into windows of size samples taken every step
// samples. The first window always exists for a non-empty signal; a further
// window exists while the signal still supplies at least one sample not seen
// by the previous window. Positions past the end of the signal are zero.
// size must be even and positive and step positive.
func Segment(signal []float64, size, step int) ([][]float64, error) {
	if size <= 0 || size%2 != 0 {
		return nil, fmt.Errorf("%w: size must be even and positive, got %d", ErrInvalidWindow, size)
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidWindow, step)
	}
	if len(signal) == 0 {
		return nil, nil
	}

	var windows [][]float64
	for start := 0; start == 0 || start+size-step < len(signal); start += step {
		w := make([]float64, size)
		if start < len(signal) {
			copy(w, signal[start:])
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// WindowIndex maps position pos of window k back to an index into the
// segmented signal. ok is false for zero-padding positions.
func WindowIndex(k, pos, step, length int) (index int, ok bool) {
	index = k*step + pos
	return index, index < length
}
