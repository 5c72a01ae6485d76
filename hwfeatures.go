// Package hwfeatures computes kinematic, dynamic, spatial, temporal and
// composite features of online handwriting samples.
//
// A FeatureExtractor wraps one subject and computes features by name:
//
//	fe, err := hwfeatures.New(values, nil, nil)
//	v, err := fe.Compute("velocity", hwfeatures.Args{"axis": "x", "statistics": []string{"mean"}})
//
// ExtractBatch runs a pipeline of steps over many subjects and returns a
// labelled feature matrix.
package hwfeatures

import (
	"context"

	"github.com/bdalab/handwriting-features/internal/config"
	"github.com/bdalab/handwriting-features/internal/extract"
	"github.com/bdalab/handwriting-features/internal/registry"
	"github.com/bdalab/handwriting-features/internal/sample"
	"github.com/bdalab/handwriting-features/internal/stats"
	"github.com/bdalab/handwriting-features/internal/version"
)

type (
	// Args are the keyword arguments of a feature call.
	Args = registry.Args
	// Step is one pipeline entry.
	Step = extract.Step
	// Result is a labelled feature matrix.
	Result = extract.Result
	// Config is the shared extractor configuration.
	Config = config.Config
	// Trajectory holds the raw channels of one sample.
	Trajectory = sample.Trajectory
)

// LoadConfig reads a JSON or YAML configuration file.
func LoadConfig(path string) (*Config, error) { return config.Load(path) }

// DefaultLabels is the channel order assumed when no labels are given.
var DefaultLabels = sample.DefaultLabels

// FeatureExtractor computes features of one subject.
type FeatureExtractor struct {
	features *extract.Features
}

// New builds an extractor from a channel matrix values[channel][point].
// labels name the channels; nil means DefaultLabels. cfg may be nil.
func New(values [][]float64, labels []string, cfg *Config) (*FeatureExtractor, error) {
	f, err := extract.FromValues(values, labels, cfg)
	if err != nil {
		return nil, err
	}
	return &FeatureExtractor{features: f}, nil
}

// FromTrajectory builds an extractor from an already parsed sample.
func FromTrajectory(t *Trajectory, cfg *Config) (*FeatureExtractor, error) {
	f, err := extract.FromTrajectory(t, cfg)
	if err != nil {
		return nil, err
	}
	return &FeatureExtractor{features: f}, nil
}

// Compute evaluates the named feature. Shared configuration is not fused;
// use Extract for that.
func (fe *FeatureExtractor) Compute(name string, args Args) ([]float64, error) {
	return fe.features.Compute(name, args)
}

// Extract runs pipeline over this subject and returns a single-row result.
func (fe *FeatureExtractor) Extract(pipeline []Step) (*Result, error) {
	prepared := extract.PreparePipeline(pipeline)
	if len(prepared) == 0 {
		return nil, extract.ErrEmptyPipeline
	}
	r, err := extract.RunSubject(fe.features, prepared)
	if err != nil {
		return nil, err
	}
	return extract.Consolidate([]*extract.SubjectResult{r}, len(prepared)), nil
}

// ExtractBatch runs pipeline over subjects[subject][channel][point].
func ExtractBatch(ctx context.Context, subjects [][][]float64, labels []string, pipeline []Step, cfg *Config) (*Result, error) {
	return extract.Extract(ctx, subjects, labels, pipeline, cfg)
}

// Features lists the supported feature names.
func Features() []string { return registry.Names() }

// Statistics lists the supported statistic names.
func Statistics() []string { return stats.Names() }

// Version reports the library version.
func Version() string { return version.String() }
