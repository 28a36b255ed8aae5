package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nao1215/datascan/internal/model"
)

// meanConfidence is the confidence level of the interval reported in
// extended statistics.
const meanConfidence = 0.95

// Aggregate computes the descriptive statistics of a numeric dataset.
// The five values are computed together from the same sequence; a dataset
// with no values yields ErrEmptyDataset and no partial result.
func Aggregate(values []float64) (*model.Statistics, error) {
	if len(values) == 0 {
		return nil, ErrEmptyDataset
	}

	// Errors are impossible past the empty guard: every failure mode of
	// these stats functions is the empty-input case.
	total, _ := stats.Sum(values)
	mean, _ := stats.Mean(values)
	minimum, _ := stats.Min(values)
	maximum, _ := stats.Max(values)

	return &model.Statistics{
		Count:   len(values),
		Total:   total,
		Average: mean,
		Minimum: minimum,
		Maximum: maximum,
	}, nil
}

// ExtendedAggregate computes the distribution statistics that appear in
// export formats: median, quartiles, sample spread, and the 95% confidence
// interval for the mean.
//
// A single-value dataset has no spread to estimate: standard deviation and
// variance are reported as zero and the confidence interval collapses to
// the mean itself.
func ExtendedAggregate(values []float64) (*model.ExtendedStatistics, error) {
	if len(values) == 0 {
		return nil, ErrEmptyDataset
	}

	median, _ := stats.Median(values)

	// Percentile cannot interpolate a lower quartile for datasets of two
	// or three values; clamp to the extremes there.
	q1, err := stats.Percentile(values, 25)
	if err != nil {
		q1, _ = stats.Min(values)
	}
	q3, err := stats.Percentile(values, 75)
	if err != nil {
		q3, _ = stats.Max(values)
	}

	ext := &model.ExtendedStatistics{
		Median: median,
		Q1:     q1,
		Q3:     q3,
	}

	if len(values) >= 2 {
		ext.StdDev, _ = stats.StandardDeviationSample(values)
		ext.Variance, _ = stats.SampleVariance(values)
	}

	ext.CILower, ext.CIUpper = confidenceInterval(values, meanConfidence)
	return ext, nil
}

// confidenceInterval returns the bounds of the confidence interval for the
// mean using the Student's t distribution with n-1 degrees of freedom. With
// fewer than two values the interval degenerates to the mean.
func confidenceInterval(values []float64, confidence float64) (lower, upper float64) {
	n := len(values)
	mean, _ := stats.Mean(values)
	if n < 2 {
		return mean, mean
	}

	sd, _ := stats.StandardDeviationSample(values)
	alpha := 1 - confidence
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	tCritical := tDist.Quantile(1 - alpha/2)
	margin := tCritical * sd / math.Sqrt(float64(n))
	return mean - margin, mean + margin
}
