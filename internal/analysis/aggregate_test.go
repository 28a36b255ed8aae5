package analysis

import (
	"errors"
	"math"
	"testing"
)

// approxEqual reports whether two floats are within eps of each other.
func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// TestAggregate tests descriptive statistics computation.
func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("computes all five statistics", func(t *testing.T) {
		t.Parallel()

		values := []float64{85, 92, 78, 90, 95, 73, 88, 76, 91, 84, 79, 93, 87, 82, 93}

		got, err := Aggregate(values)
		if err != nil {
			t.Fatalf("Aggregate() error = %v", err)
		}

		if got.Count != 15 {
			t.Errorf("Count = %d, expected 15", got.Count)
		}
		if got.Total != 1286.0 {
			t.Errorf("Total = %v, expected 1286.0", got.Total)
		}
		if got.Average != 1286.0/15.0 {
			t.Errorf("Average = %v, expected %v", got.Average, 1286.0/15.0)
		}
		if got.Minimum != 73.0 {
			t.Errorf("Minimum = %v, expected 73.0", got.Minimum)
		}
		if got.Maximum != 95.0 {
			t.Errorf("Maximum = %v, expected 95.0", got.Maximum)
		}
	})

	t.Run("single value dataset", func(t *testing.T) {
		t.Parallel()

		got, err := Aggregate([]float64{42.5})
		if err != nil {
			t.Fatalf("Aggregate() error = %v", err)
		}

		if got.Count != 1 {
			t.Errorf("Count = %d, expected 1", got.Count)
		}
		if got.Total != 42.5 || got.Average != 42.5 || got.Minimum != 42.5 || got.Maximum != 42.5 {
			t.Errorf("all statistics should equal 42.5, got %+v", got)
		}
	})

	t.Run("negative values", func(t *testing.T) {
		t.Parallel()

		got, err := Aggregate([]float64{-5, 0, 5})
		if err != nil {
			t.Fatalf("Aggregate() error = %v", err)
		}

		if got.Total != 0 {
			t.Errorf("Total = %v, expected 0", got.Total)
		}
		if got.Average != 0 {
			t.Errorf("Average = %v, expected 0", got.Average)
		}
		if got.Minimum != -5 {
			t.Errorf("Minimum = %v, expected -5", got.Minimum)
		}
		if got.Maximum != 5 {
			t.Errorf("Maximum = %v, expected 5", got.Maximum)
		}
	})

	t.Run("empty dataset returns ErrEmptyDataset", func(t *testing.T) {
		t.Parallel()

		_, err := Aggregate(nil)
		if !errors.Is(err, ErrEmptyDataset) {
			t.Errorf("expected ErrEmptyDataset, got %v", err)
		}

		_, err = Aggregate([]float64{})
		if !errors.Is(err, ErrEmptyDataset) {
			t.Errorf("expected ErrEmptyDataset, got %v", err)
		}
	})
}

// TestExtendedAggregate tests distribution statistics computation.
func TestExtendedAggregate(t *testing.T) {
	t.Parallel()

	t.Run("computes distribution statistics", func(t *testing.T) {
		t.Parallel()

		values := []float64{85, 92, 78, 90, 95, 73, 88, 76, 91, 84, 79, 93, 87, 82, 93}

		got, err := ExtendedAggregate(values)
		if err != nil {
			t.Fatalf("ExtendedAggregate() error = %v", err)
		}

		if got.Median != 87.0 {
			t.Errorf("Median = %v, expected 87.0", got.Median)
		}
		if got.Q1 != 78.5 {
			t.Errorf("Q1 = %v, expected 78.5", got.Q1)
		}
		if got.Q3 != 91.5 {
			t.Errorf("Q3 = %v, expected 91.5", got.Q3)
		}
		if !approxEqual(got.Variance, 47.352381, 1e-5) {
			t.Errorf("Variance = %v, expected ~47.352381", got.Variance)
		}
		if !approxEqual(got.StdDev, math.Sqrt(got.Variance), 1e-9) {
			t.Errorf("StdDev = %v, expected sqrt of variance %v", got.StdDev, got.Variance)
		}

		mean := 1286.0 / 15.0
		if got.CILower >= mean || got.CIUpper <= mean {
			t.Errorf("confidence interval (%v, %v) should bracket the mean %v",
				got.CILower, got.CIUpper, mean)
		}
		if !approxEqual(mean-got.CILower, got.CIUpper-mean, 1e-9) {
			t.Errorf("confidence interval (%v, %v) should be symmetric around the mean",
				got.CILower, got.CIUpper)
		}
	})

	t.Run("confidence interval matches t distribution", func(t *testing.T) {
		t.Parallel()

		// For 1..5: mean 3, sample sd sqrt(2.5), t(0.975, df=4) = 2.776445,
		// margin = 2.776445 * sqrt(2.5)/sqrt(5) = 1.963243.
		got, err := ExtendedAggregate([]float64{1, 2, 3, 4, 5})
		if err != nil {
			t.Fatalf("ExtendedAggregate() error = %v", err)
		}

		if !approxEqual(got.CILower, 1.036757, 1e-5) {
			t.Errorf("CILower = %v, expected ~1.036757", got.CILower)
		}
		if !approxEqual(got.CIUpper, 4.963243, 1e-5) {
			t.Errorf("CIUpper = %v, expected ~4.963243", got.CIUpper)
		}
	})

	t.Run("single value degenerates cleanly", func(t *testing.T) {
		t.Parallel()

		got, err := ExtendedAggregate([]float64{42})
		if err != nil {
			t.Fatalf("ExtendedAggregate() error = %v", err)
		}

		if got.Median != 42 || got.Q1 != 42 || got.Q3 != 42 {
			t.Errorf("median and quartiles should all be 42, got %+v", got)
		}
		if got.StdDev != 0 || got.Variance != 0 {
			t.Errorf("spread should be zero for a single value, got %+v", got)
		}
		if got.CILower != 42 || got.CIUpper != 42 {
			t.Errorf("confidence interval should collapse to the mean, got (%v, %v)",
				got.CILower, got.CIUpper)
		}
	})

	t.Run("two values clamp lower quartile", func(t *testing.T) {
		t.Parallel()

		got, err := ExtendedAggregate([]float64{1, 2})
		if err != nil {
			t.Fatalf("ExtendedAggregate() error = %v", err)
		}

		if got.Median != 1.5 {
			t.Errorf("Median = %v, expected 1.5", got.Median)
		}
		if got.Q1 != 1 {
			t.Errorf("Q1 = %v, expected clamp to minimum 1", got.Q1)
		}
		if !approxEqual(got.StdDev, math.Sqrt(0.5), 1e-9) {
			t.Errorf("StdDev = %v, expected sqrt(0.5)", got.StdDev)
		}

		// NaN must never escape into a report.
		for name, v := range map[string]float64{
			"Median": got.Median, "Q1": got.Q1, "Q3": got.Q3,
			"StdDev": got.StdDev, "Variance": got.Variance,
			"CILower": got.CILower, "CIUpper": got.CIUpper,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s = %v, expected a finite value", name, v)
			}
		}
	})

	t.Run("empty dataset returns ErrEmptyDataset", func(t *testing.T) {
		t.Parallel()

		_, err := ExtendedAggregate(nil)
		if !errors.Is(err, ErrEmptyDataset) {
			t.Errorf("expected ErrEmptyDataset, got %v", err)
		}
	})
}
