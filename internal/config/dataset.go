package config

import "fmt"

// DatasetConfig holds the settings for a single named dataset pair.
// This allows running `datascan analyze <name>` without repeating paths
// and thresholds on the command line.
type DatasetConfig struct {
	// Data is the path of the numeric input file.
	Data string `yaml:"data,omitempty"`

	// Categories is the path of the categorical input file.
	Categories string `yaml:"categories,omitempty"`

	// Threshold overrides the performance threshold for this pair.
	// A pointer distinguishes "not set" from an explicit zero threshold.
	Threshold *float64 `yaml:"threshold,omitempty"`

	// Output overrides the report file path for this pair.
	Output string `yaml:"output,omitempty"`
}

// ThresholdOrDefault returns the pair's threshold, falling back to the
// built-in default when none is configured.
func (dc DatasetConfig) ThresholdOrDefault() float64 {
	if dc.Threshold != nil {
		return *dc.Threshold
	}
	return DefaultThreshold
}

// File represents the structure of the .datascan.yaml configuration file.
type File struct {
	// Threshold is the top-level performance threshold applied when
	// neither the named pair nor the defaults block sets one.
	Threshold *float64 `yaml:"threshold,omitempty"`

	// Output is the top-level report file path applied when neither the
	// named pair nor the defaults block sets one.
	Output string `yaml:"output,omitempty"`

	// Datasets maps dataset names to their pair configurations.
	Datasets map[string]DatasetConfig `yaml:"datasets,omitempty"`

	// Defaults contains default pair configuration applied to all named
	// pairs unless overridden in the pair-specific configuration.
	Defaults DatasetConfig `yaml:"defaults,omitempty"`
}

// GetDatasetConfig returns the resolved configuration for a named dataset
// pair. Settings are merged with the named entry taking precedence over the
// defaults block, which in turn takes precedence over the top-level
// threshold and output. Returns ErrUnknownDataset when the name is not
// defined.
func (cf *File) GetDatasetConfig(name string) (DatasetConfig, error) {
	named, ok := cf.Datasets[name]
	if !ok {
		return DatasetConfig{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}

	// Start with the defaults block
	result := cf.Defaults

	// Override with the named entry where present
	if named.Data != "" {
		result.Data = named.Data
	}
	if named.Categories != "" {
		result.Categories = named.Categories
	}
	if named.Threshold != nil {
		result.Threshold = named.Threshold
	}
	if named.Output != "" {
		result.Output = named.Output
	}

	// Fall back to top-level settings where still unset
	if result.Threshold == nil {
		result.Threshold = cf.Threshold
	}
	if result.Output == "" {
		result.Output = cf.Output
	}

	return result, nil
}
