package registry

import (
	"github.com/bdalab/handwriting-features/internal/features"
	"github.com/bdalab/handwriting-features/internal/sample"
	"github.com/bdalab/handwriting-features/internal/stats"
)

var (
	axisArg = Argument{
		Name:    "axis",
		Types:   []Kind{KindString},
		Options: []any{string(sample.AxisX), string(sample.AxisY), string(sample.AxisXY)},
		Default: string(sample.AxisXY),
	}
	inAirArg = Argument{
		Name:    "in_air",
		Types:   []Kind{KindBool},
		Options: []any{true, false},
		Default: false,
	}
	statisticsArg = Argument{
		Name:    "statistics",
		Types:   []Kind{KindString, KindStringList},
		Options: statisticsOptions(),
	}
	fsArg = Argument{Name: "fs", Mandatory: true, Types: []Kind{KindNumber}}
	fcArg = Argument{Name: "fc", Types: []Kind{KindNumber}, Default: features.DefaultCutoff}
	nArg  = Argument{Name: "n", Types: []Kind{KindInt}, Default: features.DefaultGaussianTaps}
)

func statisticsOptions() []any {
	names := stats.Names()
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}

func args(a ...Argument) []Argument { return a }

var descriptors = []Descriptor{
	// kinematic
	{Name: "velocity", MultiValued: true, Arguments: args(axisArg, inAirArg, statisticsArg), compute: kinematic(features.Velocity)},
	{Name: "acceleration", MultiValued: true, Arguments: args(axisArg, inAirArg, statisticsArg), compute: kinematic(features.Acceleration)},
	{Name: "jerk", MultiValued: true, Arguments: args(axisArg, inAirArg, statisticsArg), compute: kinematic(features.Jerk)},

	// dynamic
	{Name: "azimuth", MultiValued: true, Arguments: args(inAirArg, statisticsArg), compute: surface(features.Azimuth)},
	{Name: "tilt", MultiValued: true, Arguments: args(inAirArg, statisticsArg), compute: surface(features.Tilt)},
	{Name: "pressure", MultiValued: true, Arguments: args(statisticsArg), compute: plain(features.Pressure)},

	// spatial
	{Name: "stroke_length", MultiValued: true, Arguments: args(inAirArg, statisticsArg), compute: surface(features.StrokeLength)},
	{Name: "stroke_height", MultiValued: true, Arguments: args(inAirArg, statisticsArg), compute: surface(features.StrokeHeight)},
	{Name: "stroke_width", MultiValued: true, Arguments: args(inAirArg, statisticsArg), compute: surface(features.StrokeWidth)},
	{Name: "writing_length", Arguments: args(inAirArg), compute: surfaceScalar(features.WritingLength)},
	{Name: "writing_height", Arguments: args(inAirArg), compute: surfaceScalar(features.WritingHeight)},
	{Name: "writing_width", Arguments: args(inAirArg), compute: surfaceScalar(features.WritingWidth)},
	{Name: "number_of_intra_stroke_intersections", MultiValued: true, Arguments: args(statisticsArg),
		compute: intersections((*features.Intersections).IntraStroke)},
	{Name: "relative_number_of_intra_stroke_intersections", MultiValued: true, Arguments: args(statisticsArg),
		compute: intersections((*features.Intersections).RelativeIntraStroke)},
	{Name: "total_number_of_intra_stroke_intersections",
		compute: intersectionScalar((*features.Intersections).TotalIntraStroke)},
	{Name: "relative_total_number_of_intra_stroke_intersections",
		compute: intersectionScalar((*features.Intersections).RelativeTotalIntraStroke)},
	{Name: "number_of_inter_stroke_intersections",
		compute: intersectionScalar((*features.Intersections).InterStroke)},
	{Name: "relative_number_of_inter_stroke_intersections",
		compute: intersectionScalar((*features.Intersections).RelativeInterStroke)},
	{Name: "vertical_peaks_indices", MultiValued: true, Arguments: args(fsArg, nArg, statisticsArg),
		compute: projection((*features.Projection).PeakIndices)},
	{Name: "vertical_valleys_indices", MultiValued: true, Arguments: args(fsArg, nArg, statisticsArg),
		compute: projection((*features.Projection).ValleyIndices)},
	{Name: "vertical_peaks_values", MultiValued: true, Arguments: args(fsArg, nArg, statisticsArg),
		compute: projection((*features.Projection).PeakValues)},
	{Name: "vertical_valleys_values", MultiValued: true, Arguments: args(fsArg, nArg, statisticsArg),
		compute: projection((*features.Projection).ValleyValues)},
	{Name: "vertical_peaks_velocity", MultiValued: true, Arguments: args(fsArg, nArg, statisticsArg),
		compute: projection((*features.Projection).PeakVelocity)},
	{Name: "vertical_valleys_velocity", MultiValued: true, Arguments: args(fsArg, nArg, statisticsArg),
		compute: projection((*features.Projection).ValleyVelocity)},
	{Name: "vertical_peaks_distance", MultiValued: true, Arguments: args(fsArg, nArg, statisticsArg),
		compute: projection((*features.Projection).PeakDistance)},
	{Name: "vertical_valleys_distance", MultiValued: true, Arguments: args(fsArg, nArg, statisticsArg),
		compute: projection((*features.Projection).ValleyDistance)},
	{Name: "vertical_peaks_duration", MultiValued: true, Arguments: args(fsArg, nArg, statisticsArg),
		compute: projection((*features.Projection).PeakDuration)},
	{Name: "vertical_valleys_duration", MultiValued: true, Arguments: args(fsArg, nArg, statisticsArg),
		compute: projection((*features.Projection).ValleyDuration)},

	// temporal
	{Name: "stroke_duration", MultiValued: true, Arguments: args(inAirArg, statisticsArg), compute: surface(features.StrokeDuration)},
	{Name: "ratio_of_stroke_durations", MultiValued: true, Arguments: args(statisticsArg), compute: plain(features.RatioOfStrokeDurations)},
	{Name: "writing_duration", Arguments: args(inAirArg), compute: surfaceScalar(features.WritingDuration)},
	{Name: "writing_duration_overall", compute: scalar(features.WritingDurationOverall)},
	{Name: "ratio_of_writing_durations", compute: scalar(features.RatioOfWritingDurations)},
	{Name: "number_of_interruptions", compute: scalar(features.NumberOfInterruptions)},
	{Name: "number_of_interruptions_relative", compute: scalar(features.NumberOfInterruptionsRelative)},

	// composite
	{Name: "writing_tempo", Arguments: args(inAirArg), compute: surfaceScalar(features.WritingTempo)},
	{Name: "writing_stops", MultiValued: true, Arguments: args(statisticsArg), compute: plain(features.WritingStops)},
	{Name: "writing_number_of_changes", Composite: features.ChangesNames, Arguments: args(fsArg, fcArg, nArg),
		compute: func(w *sample.Wrapper, a Args) ([]float64, error) {
			fs, err := a.requireFloat("fs")
			if err != nil {
				return nil, err
			}
			return features.WritingNumberOfChanges(w, fs,
				a.floatOr("fc", features.DefaultCutoff), a.intOr("n", features.DefaultGaussianTaps))
		}},
}

func kinematic(fn func(*sample.Wrapper, sample.Axis, bool) ([]float64, error)) Func {
	return func(w *sample.Wrapper, a Args) ([]float64, error) {
		axis, err := a.Axis()
		if err != nil {
			return nil, err
		}
		inAir, err := a.InAir()
		if err != nil {
			return nil, err
		}
		return fn(w, axis, inAir)
	}
}

func surface(fn func(*sample.Wrapper, bool) []float64) Func {
	return func(w *sample.Wrapper, a Args) ([]float64, error) {
		inAir, err := a.InAir()
		if err != nil {
			return nil, err
		}
		return fn(w, inAir), nil
	}
}

func surfaceScalar(fn func(*sample.Wrapper, bool) float64) Func {
	return func(w *sample.Wrapper, a Args) ([]float64, error) {
		inAir, err := a.InAir()
		if err != nil {
			return nil, err
		}
		return []float64{fn(w, inAir)}, nil
	}
}

func plain(fn func(*sample.Wrapper) []float64) Func {
	return func(w *sample.Wrapper, _ Args) ([]float64, error) {
		return fn(w), nil
	}
}

func scalar(fn func(*sample.Wrapper) float64) Func {
	return func(w *sample.Wrapper, _ Args) ([]float64, error) {
		return []float64{fn(w)}, nil
	}
}

func intersections(fn func(*features.Intersections) []float64) Func {
	return func(w *sample.Wrapper, _ Args) ([]float64, error) {
		return fn(features.NewIntersections(w)), nil
	}
}

func intersectionScalar(fn func(*features.Intersections) float64) Func {
	return func(w *sample.Wrapper, _ Args) ([]float64, error) {
		return []float64{fn(features.NewIntersections(w))}, nil
	}
}

func projection(fn func(*features.Projection) []float64) Func {
	return func(w *sample.Wrapper, a Args) ([]float64, error) {
		fs, err := a.requireFloat("fs")
		if err != nil {
			return nil, err
		}
		p, err := features.NewProjection(w, fs, a.intOr("n", features.DefaultGaussianTaps))
		if err != nil {
			return nil, err
		}
		return fn(p), nil
	}
}
