package model

import "time"

// AnalysisSummary is a compact view of an AnalysisReport carrying only the
// headline numbers. JSON exports embed it next to the full report so
// consumers can read the outcome without walking the full structure.
type AnalysisSummary struct {
	// DataFile is the path of the numeric input file.
	DataFile string `json:"data_file"`

	// CategoriesFile is the path of the categorical input file.
	CategoriesFile string `json:"categories_file"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Count is the number of data points analyzed.
	Count int `json:"count"`

	// Average is the dataset mean.
	Average float64 `json:"average"`

	// Threshold is the performance threshold the average was classified
	// against.
	Threshold float64 `json:"threshold"`

	// Verdict is the human-readable classification label.
	Verdict string `json:"verdict"`

	// CategoryCount is the number of distinct categories.
	CategoryCount int `json:"category_count"`
}
