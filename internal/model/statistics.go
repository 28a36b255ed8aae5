package model

// Statistics holds the descriptive statistics computed from a numeric
// dataset. All five values are computed together from the same sequence;
// no partial computation is ever exposed.
type Statistics struct {
	// Count is the number of data points in the dataset.
	Count int `json:"count"`

	// Total is the order-sequential floating-point sum of all values.
	Total float64 `json:"total"`

	// Average is Total divided by Count, using real division.
	Average float64 `json:"average"`

	// Minimum is the smallest value in the dataset.
	Minimum float64 `json:"minimum"`

	// Maximum is the largest value in the dataset.
	Maximum float64 `json:"maximum"`
}

// ExtendedStatistics holds distribution statistics beyond the basic
// aggregates. They appear in JSON, Markdown, and Excel exports only; the
// canonical text report layout never includes them.
type ExtendedStatistics struct {
	// Median is the 50th percentile of the dataset.
	Median float64 `json:"median"`

	// StdDev is the sample standard deviation.
	StdDev float64 `json:"std_dev"`

	// Variance is the sample variance.
	Variance float64 `json:"variance"`

	// Q1 is the 25th percentile.
	Q1 float64 `json:"q1"`

	// Q3 is the 75th percentile.
	Q3 float64 `json:"q3"`

	// CILower is the lower bound of the 95% confidence interval for the
	// mean, computed with the Student's t distribution.
	CILower float64 `json:"ci_lower"`

	// CIUpper is the upper bound of the 95% confidence interval for the
	// mean.
	CIUpper float64 `json:"ci_upper"`
}
