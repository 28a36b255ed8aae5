package model

import "sort"

// RunComparison captures how a later analysis run differs from an earlier
// one: the movement of each descriptive statistic, whether the verdict
// changed, and which categories appeared or disappeared.
//
// Deltas are computed as other minus base, so a positive AverageDelta means
// the later run scored higher.
type RunComparison struct {
	// BaseRunID identifies the run used as the point of reference.
	BaseRunID string `json:"base_run_id"`

	// OtherRunID identifies the run compared against the base.
	OtherRunID string `json:"other_run_id"`

	// BaseDataFile and OtherDataFile are the numeric input paths of the
	// two runs. They usually match; when they differ the comparison is
	// across datasets rather than across time.
	BaseDataFile  string `json:"base_data_file"`
	OtherDataFile string `json:"other_data_file"`

	// CountDelta is the change in the number of data points.
	CountDelta int `json:"count_delta"`

	// TotalDelta is the change in the dataset sum.
	TotalDelta float64 `json:"total_delta"`

	// AverageDelta is the change in the dataset average.
	AverageDelta float64 `json:"average_delta"`

	// MinimumDelta is the change in the smallest value.
	MinimumDelta float64 `json:"minimum_delta"`

	// MaximumDelta is the change in the largest value.
	MaximumDelta float64 `json:"maximum_delta"`

	// BaseVerdict and OtherVerdict are the verdict labels of the two runs.
	BaseVerdict  string `json:"base_verdict"`
	OtherVerdict string `json:"other_verdict"`

	// VerdictChanged reports whether the classification flipped between
	// the two runs.
	VerdictChanged bool `json:"verdict_changed"`

	// AddedCategories lists categories present in the other run but not
	// the base, in lexicographic order.
	AddedCategories []string `json:"added_categories,omitempty"`

	// RemovedCategories lists categories present in the base run but not
	// the other, in lexicographic order.
	RemovedCategories []string `json:"removed_categories,omitempty"`
}

// CompareRuns derives the comparison view of two analysis runs. Statistics
// deltas are left at zero when either run carries no statistics.
func CompareRuns(base, other *AnalysisReport) *RunComparison {
	c := &RunComparison{
		BaseRunID:      base.RunID,
		OtherRunID:     other.RunID,
		BaseDataFile:   base.DataFile,
		OtherDataFile:  other.DataFile,
		BaseVerdict:    base.Verdict.String(),
		OtherVerdict:   other.Verdict.String(),
		VerdictChanged: base.Verdict != other.Verdict,
	}

	if base.Statistics != nil && other.Statistics != nil {
		c.CountDelta = other.Statistics.Count - base.Statistics.Count
		c.TotalDelta = other.Statistics.Total - base.Statistics.Total
		c.AverageDelta = other.Statistics.Average - base.Statistics.Average
		c.MinimumDelta = other.Statistics.Minimum - base.Statistics.Minimum
		c.MaximumDelta = other.Statistics.Maximum - base.Statistics.Maximum
	}

	c.AddedCategories = categoryDiff(other.Categories, base.Categories)
	c.RemovedCategories = categoryDiff(base.Categories, other.Categories)
	return c
}

// categoryDiff returns the members of a that are absent from b, sorted.
func categoryDiff(a, b []string) []string {
	if len(a) == 0 {
		return nil
	}

	present := make(map[string]struct{}, len(b))
	for _, c := range b {
		present[c] = struct{}{}
	}

	var diff []string
	for _, c := range a {
		if _, ok := present[c]; !ok {
			diff = append(diff, c)
		}
	}

	sort.Strings(diff)
	return diff
}
