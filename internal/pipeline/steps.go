package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/datascan/internal/analysis"
	"github.com/nao1215/datascan/internal/dataset"
	"github.com/nao1215/datascan/internal/model"
)

// LoadNumericStep loads the numeric input file into the report.
// This is always the first step: every later numeric computation reads the
// sequence it produces.
//
// Design decision: Steps read their input paths from the report rather
// than carrying them as fields. The report is the single unit of work, so
// one pipeline instance can serve many reports in batch mode without
// per-run reconfiguration.
type LoadNumericStep struct {
	// fingerprint controls whether the input file digest is recorded.
	fingerprint bool

	// logger for structured logging.
	logger *slog.Logger
}

// LoadNumericOption configures a LoadNumericStep.
type LoadNumericOption func(*LoadNumericStep)

// WithNumericLogger sets a custom logger for the load step.
func WithNumericLogger(logger *slog.Logger) LoadNumericOption {
	return func(s *LoadNumericStep) {
		s.logger = logger
	}
}

// WithNumericFingerprint controls whether the step records the SHA3-256
// digest of the input file. Enabled by default; the digest ties stored
// history rows to exact input bytes.
func WithNumericFingerprint(enabled bool) LoadNumericOption {
	return func(s *LoadNumericStep) {
		s.fingerprint = enabled
	}
}

// NewLoadNumericStep creates a step that loads the numeric dataset.
func NewLoadNumericStep(opts ...LoadNumericOption) *LoadNumericStep {
	s := &LoadNumericStep{
		fingerprint: true,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadNumericStep) Name() string {
	return "load_numeric"
}

// Do loads the numeric dataset from the report's data file.
func (s *LoadNumericStep) Do(_ context.Context, report *model.AnalysisReport) error {
	values, err := dataset.LoadNumeric(report.DataFile)
	if err != nil {
		return err
	}
	report.Values = values

	s.logger.Info("loaded numeric dataset",
		"file", report.DataFile,
		"count", len(values),
	)

	if s.fingerprint {
		sum, err := dataset.Fingerprint(report.DataFile)
		if err != nil {
			// The analysis itself does not depend on the digest.
			s.logger.Warn("failed to fingerprint input", "file", report.DataFile, "error", err)
		} else {
			report.DataFingerprint = sum
		}
	}

	return nil
}

// AggregateStep computes descriptive and distribution statistics over the
// loaded numeric dataset.
type AggregateStep struct {
	// extended controls whether distribution statistics are computed in
	// addition to the five basic aggregates.
	extended bool

	// logger for structured logging.
	logger *slog.Logger
}

// AggregateOption configures an AggregateStep.
type AggregateOption func(*AggregateStep)

// WithAggregateLogger sets a custom logger for the aggregate step.
func WithAggregateLogger(logger *slog.Logger) AggregateOption {
	return func(s *AggregateStep) {
		s.logger = logger
	}
}

// WithExtendedStatistics controls whether distribution statistics (median,
// spread, confidence interval) are computed. Enabled by default; they feed
// the JSON, Markdown, and Excel exports.
func WithExtendedStatistics(enabled bool) AggregateOption {
	return func(s *AggregateStep) {
		s.extended = enabled
	}
}

// NewAggregateStep creates a step that computes dataset statistics.
func NewAggregateStep(opts ...AggregateOption) *AggregateStep {
	s := &AggregateStep{
		extended: true,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return "aggregate"
}

// Do computes statistics over the loaded values.
func (s *AggregateStep) Do(_ context.Context, report *model.AnalysisReport) error {
	stats, err := analysis.Aggregate(report.Values)
	if err != nil {
		return err
	}
	report.Statistics = stats

	if s.extended {
		ext, err := analysis.ExtendedAggregate(report.Values)
		if err != nil {
			return err
		}
		report.Extended = ext
	}

	s.logger.Debug("computed statistics",
		"count", stats.Count,
		"average", stats.Average,
	)
	return nil
}

// ClassifyStep compares the dataset average against the threshold and
// records the verdict.
type ClassifyStep struct{}

// NewClassifyStep creates a step that classifies the dataset average.
func NewClassifyStep() *ClassifyStep {
	return &ClassifyStep{}
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do classifies the report's average against its threshold.
func (s *ClassifyStep) Do(_ context.Context, report *model.AnalysisReport) error {
	if report.Statistics == nil {
		return errors.New("classify requires computed statistics")
	}

	report.SetVerdict(analysis.Classify(report.Statistics.Average, report.Threshold))
	return nil
}

// LoadCategoriesStep loads the categorical input file into the report.
type LoadCategoriesStep struct {
	// fingerprint controls whether the input file digest is recorded.
	fingerprint bool

	// logger for structured logging.
	logger *slog.Logger
}

// LoadCategoriesOption configures a LoadCategoriesStep.
type LoadCategoriesOption func(*LoadCategoriesStep)

// WithCategoriesLogger sets a custom logger for the load step.
func WithCategoriesLogger(logger *slog.Logger) LoadCategoriesOption {
	return func(s *LoadCategoriesStep) {
		s.logger = logger
	}
}

// WithCategoriesFingerprint controls whether the step records the SHA3-256
// digest of the input file.
func WithCategoriesFingerprint(enabled bool) LoadCategoriesOption {
	return func(s *LoadCategoriesStep) {
		s.fingerprint = enabled
	}
}

// NewLoadCategoriesStep creates a step that loads the categorical dataset.
func NewLoadCategoriesStep(opts ...LoadCategoriesOption) *LoadCategoriesStep {
	s := &LoadCategoriesStep{
		fingerprint: true,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadCategoriesStep) Name() string {
	return "load_categories"
}

// Do loads the categorical dataset from the report's categories file.
func (s *LoadCategoriesStep) Do(_ context.Context, report *model.AnalysisReport) error {
	categories, err := dataset.LoadCategories(report.CategoriesFile)
	if err != nil {
		return err
	}
	report.RawCategories = categories

	s.logger.Info("loaded categories",
		"file", report.CategoriesFile,
		"count", len(categories),
	)

	if s.fingerprint {
		sum, err := dataset.Fingerprint(report.CategoriesFile)
		if err != nil {
			s.logger.Warn("failed to fingerprint input", "file", report.CategoriesFile, "error", err)
		} else {
			report.CategoriesFingerprint = sum
		}
	}

	return nil
}

// DedupeStep derives the category census from the raw categorical
// sequence: the sorted distinct list, its size, and per-category
// frequencies.
type DedupeStep struct{}

// NewDedupeStep creates a step that dedupes the categorical dataset.
func NewDedupeStep() *DedupeStep {
	return &DedupeStep{}
}

// Name returns the step name.
func (s *DedupeStep) Name() string {
	return "dedupe"
}

// Do derives the category census.
func (s *DedupeStep) Do(_ context.Context, report *model.AnalysisReport) error {
	report.Categories = analysis.Unique(report.RawCategories)
	report.CategoryCount = len(report.Categories)
	report.CategoryFrequencies = analysis.Frequencies(report.RawCategories)
	return nil
}

// DefaultSteps returns the canonical analysis sequence: load the numeric
// dataset, aggregate it, classify the average, load the categorical
// dataset, and dedupe it. A nil logger falls back to slog.Default().
func DefaultSteps(logger *slog.Logger) []Step {
	if logger == nil {
		logger = slog.Default()
	}

	return []Step{
		NewLoadNumericStep(WithNumericLogger(logger)),
		NewAggregateStep(WithAggregateLogger(logger)),
		NewClassifyStep(),
		NewLoadCategoriesStep(WithCategoriesLogger(logger)),
		NewDedupeStep(),
	}
}
