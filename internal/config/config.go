package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bdalab/handwriting-features/internal/fsutil"
)

// DefaultWorkers is the number of subjects extracted concurrently when the
// configuration does not say otherwise.
const DefaultWorkers = 1

// maxFileSize bounds configuration files read by Load.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// LoggingSettings controls how extraction failures are reported.
type LoggingSettings struct {
	// SoftValidation logs a failing pipeline step and substitutes a
	// placeholder instead of aborting the batch.
	SoftValidation *bool `json:"soft_validation,omitempty" yaml:"soft_validation,omitempty"`
}

// Config is the shared extractor configuration. Fields left nil fall back to
// the defaults returned by the Get* methods, so partial files are safe.
type Config struct {
	// Statistics is fused into every multi-valued feature step that does not
	// request statistics itself.
	Statistics []string `json:"statistics,omitempty" yaml:"statistics,omitempty"`

	// SkipFeatures names arguments that must never be filled from the shared
	// configuration.
	SkipFeatures []string `json:"skip_features,omitempty" yaml:"skip_features,omitempty"`

	// Defaults holds shared feature arguments such as the sampling frequency
	// ("fs") that are fused like Statistics.
	Defaults map[string]any `json:"defaults,omitempty" yaml:"defaults,omitempty"`

	Logging *LoggingSettings `json:"logging_settings,omitempty" yaml:"logging_settings,omitempty"`

	// Workers caps the number of subjects processed concurrently.
	Workers *int `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// Helper functions to create pointers
func ptrBool(v bool) *bool { return &v }
func ptrInt(v int) *int    { return &v }

// EmptyConfig returns a Config with all fields unset.
func EmptyConfig() *Config {
	return &Config{}
}

// DefaultConfig returns a Config with every optional field populated with its
// default value.
func DefaultConfig() *Config {
	return &Config{
		Logging: &LoggingSettings{SoftValidation: ptrBool(false)},
		Workers: ptrInt(DefaultWorkers),
	}
}

// Load reads a Config from a JSON or YAML file. The format is chosen by the
// file extension (.json, .yaml or .yml). The parsed configuration is
// validated before it is returned.
func Load(path string) (*Config, error) {
	return LoadFS(fsutil.OSFileSystem{}, path)
}

// LoadFS is Load reading from fsys.
func LoadFS(fsys fsutil.FileSystem, path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyConfig()
	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid. Statistic names
// are not checked here; the feature registry rejects unknown names when the
// statistics are fused into a pipeline step.
func (c *Config) Validate() error {
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *c.Workers)
	}
	for i, name := range c.Statistics {
		if name == "" {
			return fmt.Errorf("statistics[%d] is empty", i)
		}
	}
	for i, name := range c.SkipFeatures {
		if name == "" {
			return fmt.Errorf("skip_features[%d] is empty", i)
		}
	}
	for key := range c.Defaults {
		if key == "" {
			return fmt.Errorf("defaults contains an empty argument name")
		}
	}
	return nil
}

// GetSoftValidation returns the logging_settings.soft_validation value or the default.
func (c *Config) GetSoftValidation() bool {
	if c == nil || c.Logging == nil || c.Logging.SoftValidation == nil {
		return false
	}
	return *c.Logging.SoftValidation
}

// GetWorkers returns the workers value or the default.
func (c *Config) GetWorkers() int {
	if c == nil || c.Workers == nil {
		return DefaultWorkers
	}
	return *c.Workers
}

// GetSkipFeatures returns the argument names excluded from fusion.
func (c *Config) GetSkipFeatures() []string {
	if c == nil {
		return nil
	}
	return c.SkipFeatures
}

// Common returns the fusable view of the configuration: shared argument
// name to value. Statistics is exposed under the "statistics" key when set.
// The returned map is a fresh copy.
func (c *Config) Common() map[string]any {
	common := make(map[string]any)
	if c == nil {
		return common
	}
	for key, value := range c.Defaults {
		common[key] = value
	}
	if len(c.Statistics) > 0 {
		common["statistics"] = append([]string(nil), c.Statistics...)
	}
	return common
}
