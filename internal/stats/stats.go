// Package stats holds the named NaN-aware reducers applied to multi-valued
// feature outputs.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/bdalab/handwriting-features/internal/dsp"
)

var (
	// ErrUnknownStatistic is returned for statistic names with no reducer.
	ErrUnknownStatistic = errors.New("unknown statistic")
	// ErrUnsupportedData is returned when the input is neither a number nor
	// a numeric slice.
	ErrUnsupportedData = errors.New("unsupported data for statistics")
)

// Reducer collapses a slice into one value. Non-finite entries are ignored;
// a slice without finite entries reduces to NaN.
type Reducer func(values []float64) float64

var names = []string{
	"mean",
	"std",
	"cv_parametric",
	"median",
	"iqr",
	"cv_nonparametric",
	"quartile_1",
	"quartile_3",
	"percentile_5",
	"percentile_95",
	"slope_of_linear_regression",
}

var reducers = map[string]Reducer{
	"mean":             Mean,
	"std":              Std,
	"cv_parametric":    func(v []float64) float64 { return CVParametric(v, false) },
	"median":           Median,
	"iqr":              IQR,
	"cv_nonparametric": func(v []float64) float64 { return CVNonParametric(v, false) },
	"quartile_1":       func(v []float64) float64 { return Quantile(v, 0.25) },
	"quartile_3":       func(v []float64) float64 { return Quantile(v, 0.75) },
	"percentile_5":     func(v []float64) float64 { return Quantile(v, 0.05) },
	"percentile_95":    func(v []float64) float64 { return Quantile(v, 0.95) },
	"slope_of_linear_regression": func(v []float64) float64 {
		return dsp.RobustSlope(v, dsp.DefaultSlopeOptions())
	},
}

// Names lists the supported statistics in their canonical order.
func Names() []string {
	return append([]string(nil), names...)
}

// Supported reports whether name has a reducer.
func Supported(name string) bool {
	_, ok := reducers[name]
	return ok
}

// Compute applies the statistic called name to data, which may be a number
// or a slice of numbers.
func Compute(data any, name string) (float64, error) {
	reduce, ok := reducers[name]
	if !ok {
		return math.NaN(), fmt.Errorf("%w: %q", ErrUnknownStatistic, name)
	}
	values, err := toFloats(data)
	if err != nil {
		return math.NaN(), err
	}
	return reduce(values), nil
}

func toFloats(data any) ([]float64, error) {
	switch v := data.(type) {
	case float64:
		return []float64{v}, nil
	case float32:
		return []float64{float64(v)}, nil
	case int:
		return []float64{float64(v)}, nil
	case []float64:
		return v, nil
	case []float32:
		out := make([]float64, len(v))
		for i, f := range v {
			out[i] = float64(f)
		}
		return out, nil
	case []int:
		out := make([]float64, len(v))
		for i, n := range v {
			out[i] = float64(n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedData, data)
	}
}

// Mean is the arithmetic mean of the finite values.
func Mean(values []float64) float64 {
	data := dsp.Finite(values)
	if len(data) == 0 {
		return math.NaN()
	}
	return stat.Mean(data, nil)
}

// Std is the population standard deviation of the finite values.
func Std(values []float64) float64 {
	data := dsp.Finite(values)
	if len(data) == 0 {
		return math.NaN()
	}
	return math.Sqrt(stat.PopVariance(data, nil))
}

// CVParametric is std/mean, optionally scaled to percent.
func CVParametric(values []float64, percent bool) float64 {
	m, s := Mean(values), Std(values)
	if math.IsNaN(m) || math.IsNaN(s) {
		return math.NaN()
	}
	return s / (m + dsp.Epsilon) * scale(percent)
}

// Median of the finite values.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// IQR is the distance between the third and first quartile.
func IQR(values []float64) float64 {
	q1, q3 := Quantile(values, 0.25), Quantile(values, 0.75)
	if math.IsNaN(q1) || math.IsNaN(q3) {
		return math.NaN()
	}
	return q3 - q1
}

// CVNonParametric is IQR/median, optionally scaled to percent.
func CVNonParametric(values []float64, percent bool) float64 {
	med, iqr := Median(values), IQR(values)
	if math.IsNaN(med) || math.IsNaN(iqr) {
		return math.NaN()
	}
	return iqr / (med + dsp.Epsilon) * scale(percent)
}

// Quantile returns the p-quantile of the finite values, interpolating
// linearly between the two closest ranks (h = (n-1)p).
func Quantile(values []float64, p float64) float64 {
	data := dsp.Finite(values)
	if len(data) == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	sort.Float64s(data)
	h := float64(len(data)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(data) {
		return data[len(data)-1]
	}
	return data[i] + (h-lo)*(data[i+1]-data[i])
}

func scale(percent bool) float64 {
	if percent {
		return 100
	}
	return 1
}
