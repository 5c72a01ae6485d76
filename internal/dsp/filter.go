package dsp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidFilter is returned when a filter cannot be designed from the
// requested parameters.
var ErrInvalidFilter = errors.New("invalid filter parameters")

// ButterworthOrder is the order of the low-pass filter.
const ButterworthOrder = 10

// GaussianSigma is the width of the Gaussian kernel relative to its
// half-length.
const GaussianSigma = 0.5

// biquad is one second-order section in transposed direct form II.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

func (s biquad) dcGain() float64 {
	return (s.b0 + s.b1 + s.b2) / (1 + s.a1 + s.a2)
}

// LowPassFilter is a zero-phase Butterworth low-pass filter of order
// ButterworthOrder, applied forward and backward.
type LowPassFilter struct {
	fs, fc   float64
	sections []biquad
}

// NewLowPassFilter designs the filter for sampling frequency fs and cutoff
// fc, both in Hz. fc must lie strictly between 0 and fs/2.
func NewLowPassFilter(fs, fc float64) (*LowPassFilter, error) {
	if !(fs > 0) || math.IsInf(fs, 0) {
		return nil, fmt.Errorf("%w: sampling frequency must be positive, got %v", ErrInvalidFilter, fs)
	}
	if !(fc > 0 && fc < fs/2) {
		return nil, fmt.Errorf("%w: cutoff %v must lie in (0, %v)", ErrInvalidFilter, fc, fs/2)
	}
	return &LowPassFilter{fs: fs, fc: fc, sections: butterworth(ButterworthOrder, fs, fc)}, nil
}

// butterworth designs an even-order digital low-pass Butterworth filter as a
// cascade of unity-DC-gain biquads via the pre-warped bilinear transform.
func butterworth(order int, fs, fc float64) []biquad {
	warped := 2 * fs * math.Tan(math.Pi*fc/fs)
	k := complex(2*fs, 0)
	sections := make([]biquad, 0, order/2)
	for i := 0; i < order/2; i++ {
		theta := math.Pi * float64(2*i+order+1) / float64(2*order)
		pole := complex(warped*math.Cos(theta), warped*math.Sin(theta))
		z := (k + pole) / (k - pole)
		a1 := -2 * real(z)
		a2 := real(z)*real(z) + imag(z)*imag(z)
		g := (1 + a1 + a2) / 4
		sections = append(sections, biquad{b0: g, b1: 2 * g, b2: g, a1: a1, a2: a2})
	}
	return sections
}

// PadLen is the number of samples reflected on each side of the signal
// before filtering. Signals not longer than this are returned unfiltered.
func (f *LowPassFilter) PadLen() int {
	return 3 * (2*len(f.sections) + 1)
}

// Filter returns the zero-phase filtered copy of signal.
func (f *LowPassFilter) Filter(signal []float64) []float64 {
	padlen := f.PadLen()
	if len(signal) <= padlen {
		return append([]float64(nil), signal...)
	}
	ext := oddExtend(signal, padlen)
	y := f.pass(ext)
	reverse(y)
	y = f.pass(y)
	reverse(y)
	return y[padlen : len(y)-padlen]
}

// pass runs the cascade once, starting every section in the steady state
// for a constant input equal to the first sample.
func (f *LowPassFilter) pass(x []float64) []float64 {
	y := append([]float64(nil), x...)
	u := x[0]
	for _, s := range f.sections {
		out := s.dcGain() * u
		z2 := s.b2*u - s.a2*out
		z1 := s.b1*u - s.a1*out + z2
		for i, v := range y {
			o := s.b0*v + z1
			z1 = s.b1*v - s.a1*o + z2
			z2 = s.b2*v - s.a2*o
			y[i] = o
		}
		u = out
	}
	return y
}

// GaussianFilter smooths a signal by forward-backward convolution with a
// normalised n-tap Gaussian kernel.
type GaussianFilter struct {
	fs   float64
	taps []float64
}

// NewGaussianFilter builds an n-tap Gaussian filter. fs is kept for
// symmetry with the low-pass filter; the kernel is defined in samples.
func NewGaussianFilter(fs float64, n int) (*GaussianFilter, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: gaussian filter needs at least one tap, got %d", ErrInvalidFilter, n)
	}
	if !(fs > 0) || math.IsInf(fs, 0) {
		return nil, fmt.Errorf("%w: sampling frequency must be positive, got %v", ErrInvalidFilter, fs)
	}
	taps := make([]float64, n)
	for i := range taps {
		taps[i] = 1
	}
	if n > 1 {
		taps = window.Gaussian{Sigma: GaussianSigma}.Transform(taps)
	}
	floats.Scale(1/floats.Sum(taps), taps)
	return &GaussianFilter{fs: fs, taps: taps}, nil
}

// Taps returns a copy of the kernel.
func (f *GaussianFilter) Taps() []float64 {
	return append([]float64(nil), f.taps...)
}

// PadLen is the number of samples reflected on each side of the signal
// before filtering. Signals not longer than this are returned unfiltered.
func (f *GaussianFilter) PadLen() int {
	return 3 * (len(f.taps) - 1)
}

// Filter returns the zero-phase smoothed copy of signal.
func (f *GaussianFilter) Filter(signal []float64) []float64 {
	padlen := f.PadLen()
	if len(signal) <= padlen || len(f.taps) == 1 {
		return append([]float64(nil), signal...)
	}
	ext := oddExtend(signal, padlen)
	y := f.pass(ext)
	reverse(y)
	y = f.pass(y)
	reverse(y)
	return y[padlen : len(y)-padlen]
}

// pass is a causal FIR convolution whose history is pre-filled with the
// first sample.
func (f *GaussianFilter) pass(x []float64) []float64 {
	y := make([]float64, len(x))
	for i := range x {
		var acc float64
		for k, tap := range f.taps {
			j := i - k
			if j < 0 {
				j = 0
			}
			acc += tap * x[j]
		}
		y[i] = acc
	}
	return y
}

// oddExtend reflects padlen samples about each end point.
func oddExtend(x []float64, padlen int) []float64 {
	n := len(x)
	ext := make([]float64, 0, n+2*padlen)
	for i := padlen; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	for i := 1; i <= padlen; i++ {
		ext = append(ext, 2*x[n-1]-x[n-1-i])
	}
	return ext
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
