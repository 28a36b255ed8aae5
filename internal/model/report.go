package model

import (
	"time"
)

// AnalysisReport is the main analysis result structure.
// It accumulates everything computed during one run over a dataset pair:
// the loaded sequences, descriptive statistics, the performance verdict,
// and the category census.
//
// Design decision: We use a single large struct rather than many small ones
// to simplify serialization and database storage. Pipeline steps communicate
// only by filling in their slice of this struct; no step depends on another
// except through the data already recorded here.
type AnalysisReport struct {
	// === Run Identity ===

	// RunID is the unique identifier assigned when the run is recorded in
	// the history database. Empty for runs that were not recorded.
	RunID string `json:"run_id,omitempty"`

	// DataFile is the path of the numeric input file.
	DataFile string `json:"data_file"`

	// CategoriesFile is the path of the categorical input file.
	CategoriesFile string `json:"categories_file"`

	// Threshold is the configured performance threshold the average is
	// classified against.
	Threshold float64 `json:"threshold"`

	// AnalyzedAt is the timestamp when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// === Input Fingerprints ===

	// DataFingerprint is the SHA3-256 digest of the numeric input file,
	// recorded so stored runs can be tied to exact input bytes.
	DataFingerprint string `json:"data_fingerprint,omitempty"`

	// CategoriesFingerprint is the SHA3-256 digest of the categorical
	// input file.
	CategoriesFingerprint string `json:"categories_fingerprint,omitempty"`

	// === Working State ===
	// Populated by the load steps and consumed by later steps. Excluded
	// from JSON: the raw sequences can be large and the derived results
	// capture everything reports need.

	// Values is the ordered numeric dataset exactly as loaded.
	Values []float64 `json:"-"`

	// RawCategories is the ordered categorical dataset before
	// deduplication, duplicates preserved.
	RawCategories []string `json:"-"`

	// === Results ===

	// Statistics holds the descriptive statistics of the numeric dataset.
	// Nil until the aggregate step has run.
	Statistics *Statistics `json:"statistics,omitempty"`

	// Extended holds distribution statistics for export formats.
	Extended *ExtendedStatistics `json:"extended,omitempty"`

	// Verdict is the performance classification.
	Verdict Verdict `json:"verdict"`

	// VerdictText is the human-readable verdict label for serialization.
	VerdictText string `json:"verdict_text,omitempty"`

	// Categories is the distinct category list in lexicographic order.
	Categories []string `json:"categories,omitempty"`

	// CategoryCount is the number of distinct categories.
	CategoryCount int `json:"category_count"`

	// CategoryFrequencies maps each distinct category to its multiplicity
	// in the input sequence.
	CategoryFrequencies map[string]int `json:"category_frequencies,omitempty"`

	// === Run State ===

	// PerformedSteps lists the pipeline step names that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error contains the error that aborted the run, if any.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewAnalysisReport creates a new report for the given dataset pair.
func NewAnalysisReport(dataFile, categoriesFile string, threshold float64) *AnalysisReport {
	return &AnalysisReport{
		DataFile:       dataFile,
		CategoriesFile: categoriesFile,
		Threshold:      threshold,
		AnalyzedAt:     time.Now(),
	}
}

// SetVerdict stores the verdict and keeps the serializable label in sync.
func (r *AnalysisReport) SetVerdict(v Verdict) {
	r.Verdict = v
	r.VerdictText = v.String()
}

// SetError records a run failure and keeps the serializable message in sync.
func (r *AnalysisReport) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// Succeeded reports whether the run completed both dataset halves without
// error. A report is only ever emitted for a succeeded run.
func (r *AnalysisReport) Succeeded() bool {
	return r.Error == nil && r.Statistics != nil && r.Categories != nil
}

// Summary derives the compact run summary embedded in JSON exports.
func (r *AnalysisReport) Summary() *AnalysisSummary {
	s := &AnalysisSummary{
		DataFile:       r.DataFile,
		CategoriesFile: r.CategoriesFile,
		AnalyzedAt:     r.AnalyzedAt,
		Threshold:      r.Threshold,
		Verdict:        r.Verdict.String(),
		CategoryCount:  r.CategoryCount,
	}
	if r.Statistics != nil {
		s.Count = r.Statistics.Count
		s.Average = r.Statistics.Average
	}
	return s
}
