package model

// Verdict represents the performance classification of a numeric dataset.
// It is derived by comparing the dataset average against the configured
// threshold.
//
// Design decision: We use an int enum with a String method rather than raw
// strings so the comparison logic works on values, while reports and the
// database store the stable human-readable labels.
type Verdict int

const (
	// VerdictNeedsImprovement indicates the average is at or below the
	// threshold. Equality counts as needing improvement; only a strictly
	// greater average earns the high performance verdict.
	VerdictNeedsImprovement Verdict = iota

	// VerdictHighPerformance indicates the average is strictly above the
	// threshold.
	VerdictHighPerformance
)

// String returns the human-readable verdict label used in reports.
func (v Verdict) String() string {
	switch v {
	case VerdictNeedsImprovement:
		return "Needs Improvement"
	case VerdictHighPerformance:
		return "High Performance"
	default:
		return "Unknown"
	}
}

// ComparisonWord returns the preposition used in the report's threshold
// comparison sentence: "above" for a high performance verdict, "below"
// otherwise. An average exactly equal to the threshold reads "below",
// matching the verdict it produces.
func (v Verdict) ComparisonWord() string {
	if v == VerdictHighPerformance {
		return "above"
	}
	return "below"
}
