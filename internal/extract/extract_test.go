package extract

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdalab/handwriting-features/internal/config"
	"github.com/bdalab/handwriting-features/internal/features"
	"github.com/bdalab/handwriting-features/internal/monitoring"
	"github.com/bdalab/handwriting-features/internal/registry"
	"github.com/bdalab/handwriting-features/internal/stats"
	"github.com/bdalab/handwriting-features/internal/testutil"
	"github.com/bdalab/handwriting-features/internal/timeutil"
)

var approx = cmp.Options{cmpopts.EquateApprox(0, 1e-9), cmpopts.EquateNaNs()}

// captureLogs redirects monitoring output for the duration of the test.
func captureLogs(t *testing.T) func() []string {
	t.Helper()
	var mu sync.Mutex
	var lines []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { monitoring.SetLogger(nil) })
	return func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), lines...)
	}
}

func ptr[T any](v T) *T { return &v }

func twoStrokes(t *testing.T) *Features {
	t.Helper()
	f, err := FromTrajectory(testutil.TwoStrokes(), nil)
	require.NoError(t, err)
	return f
}

func TestFeatures_Compute(t *testing.T) {
	f := twoStrokes(t)

	t.Run("end to end stroke length and velocity", func(t *testing.T) {
		length, err := f.Compute("stroke_length", registry.Args{"in_air": false})
		require.NoError(t, err)
		assert.Equal(t, []float64{4, 4}, length)

		v, err := f.Compute("velocity", registry.Args{"axis": "x", "in_air": false})
		require.NoError(t, err)
		want := []float64{100, 100, 100, 100, 100, 100, 100, 100}
		if diff := cmp.Diff(want, v, approx); diff != "" {
			t.Errorf("velocity mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("statistics", func(t *testing.T) {
		got, err := f.Compute("stroke_length", registry.Args{"statistics": []string{"mean", "std"}})
		require.NoError(t, err)
		assert.Equal(t, []float64{4, 0}, got)

		got, err = f.Compute("stroke_duration", registry.Args{"statistics": "median"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.InDelta(t, 0.04, got[0], 1e-9)
	})

	t.Run("statistics of a missing surface are NaN", func(t *testing.T) {
		f, err := FromTrajectory(testutil.NewBuilder(0.01).Line(true, 5, 0, 0, 1, 0).Build(), nil)
		require.NoError(t, err)
		got, err := f.Compute("stroke_length", registry.Args{"in_air": true, "statistics": []string{"mean"}})
		require.NoError(t, err)
		testutil.AssertNaN(t, got)
	})

	t.Run("scalar feature", func(t *testing.T) {
		got, err := f.Compute("writing_duration_overall", nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.InDelta(t, 0.12, got[0], 1e-9)
	})

	t.Run("errors", func(t *testing.T) {
		cases := []struct {
			name string
			args registry.Args
			want error
		}{
			{"writing_duration_overall", registry.Args{"statistics": []string{"mean"}}, registry.ErrStatisticsForSingleValued},
			{"writing_number_of_changes", nil, registry.ErrArgumentMissing},
			{"velocity", registry.Args{"axis": "z"}, registry.ErrArgumentUnsupportedValue},
			{"velocity", registry.Args{"statistics": 5}, registry.ErrArgumentInvalidType},
			{"stroke_length", registry.Args{"statistics": "mode"}, stats.ErrUnknownStatistic},
			{"unknown_feature", nil, registry.ErrFeatureNameUnsupported},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.Compute(tc.name, tc.args)
				assert.True(t, errors.Is(err, tc.want), "got %v", err)
			})
		}
	})
}

func TestPreparePipeline(t *testing.T) {
	got := PreparePipeline([]Step{
		{Name: "velocity", Args: registry.Args{
			"axis":       []any{"x", "y"},
			"in_air":     []bool{true, false},
			"statistics": []string{"mean"},
			"ignored":    nil,
		}},
		{Name: "writing_duration_overall"},
	})

	want := []Step{
		{Name: "velocity", Args: registry.Args{"axis": "x", "in_air": true, "statistics": []string{"mean"}}},
		{Name: "velocity", Args: registry.Args{"axis": "x", "in_air": false, "statistics": []string{"mean"}}},
		{Name: "velocity", Args: registry.Args{"axis": "y", "in_air": true, "statistics": []string{"mean"}}},
		{Name: "velocity", Args: registry.Args{"axis": "y", "in_air": false, "statistics": []string{"mean"}}},
		{Name: "writing_duration_overall", Args: registry.Args{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PreparePipeline mismatch (-want +got):\n%s", diff)
	}
}

func TestLabels(t *testing.T) {
	cases := []struct {
		name    string
		feature string
		args    registry.Args
		n       int
		want    []string
	}{
		{"scalar without arguments", "writing_duration_overall", nil, 1,
			[]string{"writing_duration_overall"}},
		{"default surface", "writing_duration", nil, 1,
			[]string{"writing_duration(on-surface)"}},
		{"multi-valued defaults", "velocity", nil, 2,
			[]string{"velocity(sample-1):axis-xy(on-surface)", "velocity(sample-2):axis-xy(on-surface)"}},
		{"statistics with explicit arguments", "velocity",
			registry.Args{"axis": "x", "in_air": true, "statistics": []string{"mean", "iqr"}}, 2,
			[]string{"mean:velocity:axis-x(in-air)", "iqr:velocity:axis-x(in-air)"}},
		{"single value of multi-valued feature", "pressure", nil, 1,
			[]string{"pressure"}},
		{"composite names", "writing_number_of_changes", registry.Args{"fs": 100.0}, 12,
			features.ChangesNames},
		{"unknown feature", "mystery", nil, 1,
			[]string{"mystery"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Labels(tc.feature, tc.args, tc.n))
		})
	}
}

func TestExtractSubject(t *testing.T) {
	values := testutil.Values(testutil.TwoStrokes())
	pipeline := []Step{
		{Name: "stroke_length"},
		{Name: "writing_number_of_changes"},
		{Name: "velocity", Args: registry.Args{"axis": "q"}},
	}

	t.Run("strict mode stops at the first failure", func(t *testing.T) {
		_, err := ExtractSubject(values, nil, pipeline, nil)
		assert.True(t, errors.Is(err, registry.ErrArgumentMissing))
	})

	t.Run("soft mode substitutes placeholders", func(t *testing.T) {
		logs := captureLogs(t)
		cfg := &config.Config{Logging: &config.LoggingSettings{SoftValidation: ptr(true)}}

		got, err := ExtractSubject(values, nil, pipeline, cfg)
		require.NoError(t, err)
		require.Len(t, got.Features, 3)
		assert.Equal(t, []float64{4, 4}, got.Features[0])
		testutil.AssertNaN(t, got.Features[1])
		assert.Empty(t, got.Features[2])

		assert.Equal(t, []string{"writing_number_of_changes"}, got.Labels[1])
		assert.Empty(t, got.Labels[2])
		assert.Len(t, logs(), 2)
	})

	t.Run("shared configuration is fused", func(t *testing.T) {
		cfg := &config.Config{
			Statistics: []string{"mean"},
			Defaults:   map[string]any{"fs": 100.0},
		}
		got, err := ExtractSubject(values, nil, []Step{
			{Name: "stroke_length"},
			{Name: "writing_number_of_changes"},
			{Name: "writing_duration"},
		}, cfg)
		require.NoError(t, err)
		assert.Equal(t, []float64{4}, got.Features[0])
		assert.Equal(t, []string{"mean:stroke_length(on-surface)"}, got.Labels[0])
		assert.Len(t, got.Features[1], 12)
		assert.Len(t, got.Features[2], 1)
	})

	t.Run("skipped keys are not fused", func(t *testing.T) {
		cfg := &config.Config{Statistics: []string{"mean"}, SkipFeatures: []string{"statistics"}}
		got, err := ExtractSubject(values, nil, []Step{{Name: "stroke_length"}}, cfg)
		require.NoError(t, err)
		assert.Len(t, got.Features[0], 2)
	})
}

func TestExtract(t *testing.T) {
	captureLogs(t)
	subject := testutil.Values(testutil.TwoStrokes())
	oneStroke := testutil.Values(testutil.NewBuilder(0.01).Line(true, 5, 0, 0, 1, 0).Build())

	t.Run("three subjects one scalar feature", func(t *testing.T) {
		res, err := Extract(context.Background(), [][][]float64{subject, subject, oneStroke},
			nil, []Step{{Name: "writing_duration_overall"}}, nil)
		require.NoError(t, err)
		require.Len(t, res.Features, 3)
		for _, row := range res.Features {
			assert.Len(t, row, 1)
		}
		assert.Equal(t, []string{"writing_duration_overall"}, res.Labels)
		assert.InDelta(t, 0.04, res.Features[2][0], 1e-9)
	})

	t.Run("shorter outputs are padded", func(t *testing.T) {
		cfg := &config.Config{Workers: ptr(3)}
		res, err := Extract(context.Background(), [][][]float64{oneStroke, subject},
			nil, []Step{{Name: "stroke_length"}, {Name: "number_of_interruptions"}}, cfg)
		require.NoError(t, err)

		want := [][]float64{{4, math.NaN(), 0}, {4, 4, 2}}
		if diff := cmp.Diff(want, res.Features, approx); diff != "" {
			t.Errorf("features mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, []string{
			"stroke_length(sample-1)(on-surface)",
			"stroke_length(sample-2)(on-surface)",
			"number_of_interruptions",
		}, res.Labels)
	})

	t.Run("list arguments expand", func(t *testing.T) {
		res, err := Extract(context.Background(), [][][]float64{subject}, nil,
			[]Step{{Name: "writing_duration", Args: registry.Args{"in_air": []any{false, true}}}}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"writing_duration(on-surface)", "writing_duration(in-air)"}, res.Labels)
		if diff := cmp.Diff([][]float64{{0.08, 0.02}}, res.Features, approx); diff != "" {
			t.Errorf("features mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil context runs in the background", func(t *testing.T) {
		var noCtx context.Context
		res, err := Extract(noCtx, [][][]float64{subject}, nil, []Step{{Name: "writing_duration_overall"}}, nil)
		require.NoError(t, err)
		assert.Len(t, res.Features, 1)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := Extract(context.Background(), nil, nil, []Step{{Name: "pressure"}}, nil)
		assert.True(t, errors.Is(err, ErrNoSubjects))

		_, err = Extract(context.Background(), [][][]float64{subject}, nil, nil, nil)
		assert.True(t, errors.Is(err, ErrEmptyPipeline))

		_, err = Extract(context.Background(), [][][]float64{subject, {{1}}}, nil,
			[]Step{{Name: "pressure"}}, nil)
		assert.Error(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = Extract(ctx, [][][]float64{subject}, nil, []Step{{Name: "pressure"}}, nil)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestExtract_LogsRun(t *testing.T) {
	logs := captureLogs(t)
	saved := clock
	clock = timeutil.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 250*time.Millisecond)
	t.Cleanup(func() { clock = saved })

	subject := testutil.Values(testutil.TwoStrokes())
	_, err := Extract(context.Background(), [][][]float64{subject}, nil,
		[]Step{{Name: "writing_duration_overall"}}, nil)
	require.NoError(t, err)

	lines := logs()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[run "), lines[0])
	assert.Contains(t, lines[0], "extracting 1 steps for 1 subjects with 1 workers")
	assert.Contains(t, lines[1], "extraction finished in 250ms")
	assert.Equal(t, lines[0][:len("[run ")+36], lines[1][:len("[run ")+36])
}

func TestConsolidate(t *testing.T) {
	results := []*SubjectResult{
		{Features: [][]float64{{1}, {}}, Labels: [][]string{{"a"}, {}}},
		{Features: [][]float64{{2}, {3, 4}}, Labels: [][]string{{"a"}, {"b1", "b2"}}},
	}
	got := Consolidate(results, 2)
	want := &Result{
		Features: [][]float64{{1, math.NaN(), math.NaN()}, {2, 3, 4}},
		Labels:   []string{"a", "b1", "b2"},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Consolidate mismatch (-want +got):\n%s", diff)
	}
}
