// Package extract runs feature pipelines over one or many subjects and
// assembles the labelled feature matrix.
package extract

import (
	"errors"
	"fmt"

	"github.com/bdalab/handwriting-features/internal/config"
	"github.com/bdalab/handwriting-features/internal/registry"
	"github.com/bdalab/handwriting-features/internal/sample"
	"github.com/bdalab/handwriting-features/internal/stats"
)

var (
	// ErrEmptyPipeline is returned when there is nothing to extract.
	ErrEmptyPipeline = errors.New("empty feature pipeline")
	// ErrNoSubjects is returned for a batch without subjects.
	ErrNoSubjects = errors.New("no subjects to extract")
)

// Features computes named features of one subject.
type Features struct {
	wrapper *sample.Wrapper
	config  *config.Config
}

// NewFeatures binds a wrapper and an optional shared configuration.
func NewFeatures(w *sample.Wrapper, cfg *config.Config) *Features {
	if cfg == nil {
		cfg = config.EmptyConfig()
	}
	return &Features{wrapper: w, config: cfg}
}

// FromTrajectory wraps t.
func FromTrajectory(t *sample.Trajectory, cfg *config.Config) (*Features, error) {
	w, err := sample.NewWrapper(t)
	if err != nil {
		return nil, err
	}
	return NewFeatures(w, cfg), nil
}

// FromValues builds the trajectory from a channel matrix, see
// sample.FromValues.
func FromValues(values [][]float64, labels []string, cfg *config.Config) (*Features, error) {
	t, err := sample.FromValues(values, labels)
	if err != nil {
		return nil, err
	}
	return FromTrajectory(t, cfg)
}

// Wrapper returns the underlying sample wrapper.
func (f *Features) Wrapper() *sample.Wrapper { return f.wrapper }

// Config returns the shared configuration.
func (f *Features) Config() *config.Config { return f.config }

// Compute validates args, computes the feature and, when args requests
// statistics, reduces the result to one value per statistic.
func (f *Features) Compute(name string, args registry.Args) ([]float64, error) {
	d, err := registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	validated, err := registry.Validate(name, args, "statistics")
	if err != nil {
		return nil, err
	}
	statistics, err := registry.StatisticsOf(args)
	if err != nil {
		return nil, err
	}

	values, err := d.Compute(f.wrapper, validated)
	if err != nil {
		return nil, fmt.Errorf("computing %s: %w", name, err)
	}
	if len(statistics) == 0 {
		return values, nil
	}

	reduced := make([]float64, len(statistics))
	for i, s := range statistics {
		if reduced[i], err = stats.Compute(values, s); err != nil {
			return nil, fmt.Errorf("computing %s: %w", name, err)
		}
	}
	return reduced, nil
}
