package analysis

import "github.com/nao1215/datascan/internal/model"

// Classify compares a dataset average against the performance threshold
// and returns the resulting verdict. Only a strictly greater average earns
// the high performance verdict; equality needs improvement.
func Classify(average, threshold float64) model.Verdict {
	if average > threshold {
		return model.VerdictHighPerformance
	}
	return model.VerdictNeedsImprovement
}
