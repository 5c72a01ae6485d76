package extract

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bdalab/handwriting-features/internal/config"
	"github.com/bdalab/handwriting-features/internal/monitoring"
	"github.com/bdalab/handwriting-features/internal/registry"
	"github.com/bdalab/handwriting-features/internal/timeutil"
)

// clock times batch runs; tests replace it.
var clock timeutil.Clock = timeutil.RealClock{}

// Result is a labelled feature matrix: one row per subject, one column per
// label.
type Result struct {
	Features [][]float64 `json:"features"`
	Labels   []string    `json:"labels"`
}

// SubjectResult holds the per-step values and labels of one subject.
type SubjectResult struct {
	Features [][]float64
	Labels   [][]string
}

// stepResult is the outcome of one pipeline step before the failure policy
// is applied.
type stepResult struct {
	values []float64
	err    error
}

// ExtractSubject runs an already prepared pipeline over one subject.
// Without soft validation the first failing step aborts extraction; with it
// the failure is logged and replaced by an empty slice (multi-valued
// features) or NaN.
func ExtractSubject(values [][]float64, labels []string, pipeline []Step, cfg *config.Config) (*SubjectResult, error) {
	return extractSubject(values, labels, pipeline, cfg, monitoring.Logf)
}

func extractSubject(values [][]float64, labels []string, pipeline []Step, cfg *config.Config,
	logf func(string, ...interface{})) (*SubjectResult, error) {
	f, err := FromValues(values, labels, cfg)
	if err != nil {
		return nil, err
	}
	return runSubject(f, pipeline, logf)
}

// RunSubject runs an already prepared pipeline with the configuration f was
// built with.
func RunSubject(f *Features, pipeline []Step) (*SubjectResult, error) {
	return runSubject(f, pipeline, monitoring.Logf)
}

func runSubject(f *Features, pipeline []Step, logf func(string, ...interface{})) (*SubjectResult, error) {
	common := f.config.Common()
	skip := f.config.GetSkipFeatures()
	soft := f.config.GetSoftValidation()

	out := &SubjectResult{
		Features: make([][]float64, 0, len(pipeline)),
		Labels:   make([][]string, 0, len(pipeline)),
	}
	for _, step := range pipeline {
		args, r := f.run(step, common, skip)
		if r.err != nil {
			if !soft {
				return nil, fmt.Errorf("step %s: %w", step.Name, r.err)
			}
			logf("feature %s failed, using placeholder: %v", step.Name, r.err)
			r.values = placeholder(step.Name)
		}
		l := Labels(step.Name, args, len(r.values))
		if len(l) > len(r.values) {
			l = l[:len(r.values)]
		}
		out.Features = append(out.Features, r.values)
		out.Labels = append(out.Labels, l)
	}
	return out, nil
}

// run fuses the shared configuration into the step and computes it. The
// fused arguments are returned for labelling.
func (f *Features) run(step Step, common map[string]any, skip []string) (registry.Args, stepResult) {
	args, err := registry.Fuse(step.Name, step.Args, common, skip)
	if err != nil {
		return step.Args, stepResult{err: err}
	}
	values, err := f.Compute(step.Name, args)
	return args, stepResult{values: values, err: err}
}

func placeholder(name string) []float64 {
	if d, err := registry.Lookup(name); err == nil && d.MultiValued {
		return []float64{}
	}
	return []float64{math.NaN()}
}

// Extract runs pipeline over every subject (values indexed subject, channel,
// point) and consolidates the results. Subjects run concurrently up to the
// configured number of workers. A nil ctx is treated as
// context.Background().
func Extract(ctx context.Context, subjects [][][]float64, labels []string, pipeline []Step, cfg *config.Config) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(subjects) == 0 {
		return nil, ErrNoSubjects
	}
	prepared := PreparePipeline(pipeline)
	if len(prepared) == 0 {
		return nil, ErrEmptyPipeline
	}

	start := clock.Now()
	runID := uuid.NewString()
	logf := monitoring.RunLogger(runID)
	workers := cfg.GetWorkers()
	logf("extracting %d steps for %d subjects with %d workers", len(prepared), len(subjects), workers)

	results := make([]*SubjectResult, len(subjects))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, values := range subjects {
		i, values := i, values
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := extractSubject(values, labels, prepared, cfg, logf)
			if err != nil {
				return fmt.Errorf("subject %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logf("extraction failed: %v", err)
		return nil, err
	}
	logf("extraction finished in %s", clock.Since(start))
	return Consolidate(results, len(prepared)), nil
}

// Consolidate pads every step to its longest output across subjects with
// NaN and concatenates the steps of each subject into one row. Labels come
// from the subject with the most labels per step.
func Consolidate(results []*SubjectResult, steps int) *Result {
	widths := make([]int, steps)
	labels := make([][]string, steps)
	for _, r := range results {
		for s := 0; s < steps; s++ {
			widths[s] = max(widths[s], len(r.Features[s]))
			if len(r.Labels[s]) > len(labels[s]) {
				labels[s] = r.Labels[s]
			}
		}
	}

	out := &Result{Features: make([][]float64, len(results))}
	for _, l := range labels {
		out.Labels = append(out.Labels, l...)
	}
	for i, r := range results {
		var row []float64
		for s := 0; s < steps; s++ {
			row = append(row, r.Features[s]...)
			for k := len(r.Features[s]); k < widths[s]; k++ {
				row = append(row, math.NaN())
			}
		}
		out.Features[i] = row
	}
	return out
}
