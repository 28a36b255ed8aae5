package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nao1215/datascan/internal/analysis"
	"github.com/nao1215/datascan/internal/dataset"
	"github.com/nao1215/datascan/internal/model"
)

// writeInput writes content to a file under dir and returns its path.
func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write input file: %v", err)
	}
	return path
}

// TestDefaultStepsFullRun runs the canonical step sequence over real input files.
func TestDefaultStepsFullRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	marks := writeInput(t, dir, "student_marks.csv",
		"85\n92\n78\n90\n95\n73\n88\n76\n91\n84\n79\n93\n87\n82\n93\n")
	courses := writeInput(t, dir, "courses.csv",
		"Math\nScience\nEnglish\nMath\nHistory\nScience\nArt\nMath\nEnglish\nScience\n")

	p := New()
	p.AddSteps(DefaultSteps(nil)...)

	report := model.NewAnalysisReport(marks, courses, 85)
	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !report.Succeeded() {
		t.Fatal("expected a succeeded report")
	}

	stats := report.Statistics
	if stats.Count != 15 || stats.Total != 1286.0 || stats.Minimum != 73.0 || stats.Maximum != 95.0 {
		t.Errorf("statistics = %+v", stats)
	}
	if stats.Average != 1286.0/15.0 {
		t.Errorf("Average = %v, expected %v", stats.Average, 1286.0/15.0)
	}

	if report.Extended == nil {
		t.Fatal("expected extended statistics")
	}
	if report.Extended.Median != 87.0 {
		t.Errorf("Median = %v, expected 87.0", report.Extended.Median)
	}

	if report.Verdict != model.VerdictHighPerformance {
		t.Errorf("Verdict = %v, expected high performance", report.Verdict)
	}
	if report.VerdictText != "High Performance" {
		t.Errorf("VerdictText = %q", report.VerdictText)
	}

	wantCategories := []string{"Art", "English", "History", "Math", "Science"}
	if !reflect.DeepEqual(report.Categories, wantCategories) {
		t.Errorf("Categories = %v, expected %v", report.Categories, wantCategories)
	}
	if report.CategoryCount != 5 {
		t.Errorf("CategoryCount = %d, expected 5", report.CategoryCount)
	}
	if report.CategoryFrequencies["Math"] != 3 || report.CategoryFrequencies["History"] != 1 {
		t.Errorf("CategoryFrequencies = %v", report.CategoryFrequencies)
	}

	if len(report.DataFingerprint) != 64 || len(report.CategoriesFingerprint) != 64 {
		t.Errorf("expected 64-char fingerprints, got %d and %d",
			len(report.DataFingerprint), len(report.CategoriesFingerprint))
	}

	wantSteps := []string{"load_numeric", "aggregate", "classify", "load_categories", "dedupe"}
	if !reflect.DeepEqual(report.PerformedSteps, wantSteps) {
		t.Errorf("PerformedSteps = %v, expected %v", report.PerformedSteps, wantSteps)
	}
}

// TestLoadNumericStep tests the numeric load step's failure modes and options.
func TestLoadNumericStep(t *testing.T) {
	t.Parallel()

	t.Run("missing file aborts the pipeline", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(DefaultSteps(nil)...)

		dir := t.TempDir()
		report := model.NewAnalysisReport(
			filepath.Join(dir, "missing.csv"),
			filepath.Join(dir, "courses.csv"),
			85,
		)
		err := p.Execute(context.Background(), report)

		if !errors.Is(err, dataset.ErrFileNotFound) {
			t.Errorf("expected ErrFileNotFound, got %v", err)
		}
		if report.Statistics != nil {
			t.Error("expected no statistics after failed load")
		}
		if len(report.PerformedSteps) != 0 {
			t.Errorf("expected no performed steps, got %v", report.PerformedSteps)
		}
	})

	t.Run("invalid data aborts the pipeline", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		marks := writeInput(t, dir, "marks.csv", "85\nabc\n90\n")
		courses := writeInput(t, dir, "courses.csv", "Math\n")

		p := New()
		p.AddSteps(DefaultSteps(nil)...)

		report := model.NewAnalysisReport(marks, courses, 85)
		err := p.Execute(context.Background(), report)

		if !errors.Is(err, dataset.ErrInvalidData) {
			t.Errorf("expected ErrInvalidData, got %v", err)
		}
		if report.Error == nil {
			t.Error("expected error recorded in report")
		}
	})

	t.Run("fingerprint can be disabled", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		marks := writeInput(t, dir, "marks.csv", "85\n90\n")

		step := NewLoadNumericStep(WithNumericFingerprint(false))
		report := model.NewAnalysisReport(marks, "", 85)

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if report.DataFingerprint != "" {
			t.Errorf("expected no fingerprint, got %q", report.DataFingerprint)
		}
		if len(report.Values) != 2 {
			t.Errorf("expected 2 values, got %d", len(report.Values))
		}
	})
}

// TestAggregateStep tests the aggregate step.
func TestAggregateStep(t *testing.T) {
	t.Parallel()

	t.Run("empty values return ErrEmptyDataset", func(t *testing.T) {
		t.Parallel()

		step := NewAggregateStep()
		report := newTestReport()

		err := step.Do(context.Background(), report)
		if !errors.Is(err, analysis.ErrEmptyDataset) {
			t.Errorf("expected ErrEmptyDataset, got %v", err)
		}
	})

	t.Run("extended statistics can be disabled", func(t *testing.T) {
		t.Parallel()

		step := NewAggregateStep(WithExtendedStatistics(false))
		report := newTestReport()
		report.Values = []float64{80, 90}

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if report.Statistics == nil {
			t.Fatal("expected statistics")
		}
		if report.Extended != nil {
			t.Error("expected no extended statistics")
		}
	})
}

// TestClassifyStep tests the classify step.
func TestClassifyStep(t *testing.T) {
	t.Parallel()

	t.Run("requires computed statistics", func(t *testing.T) {
		t.Parallel()

		step := NewClassifyStep()
		report := newTestReport()

		if err := step.Do(context.Background(), report); err == nil {
			t.Error("expected error without statistics")
		}
	})

	t.Run("average equal to threshold needs improvement", func(t *testing.T) {
		t.Parallel()

		report := newTestReport()
		report.Values = []float64{80, 90}
		report.Threshold = 85

		aggregate := NewAggregateStep()
		classify := NewClassifyStep()
		if err := aggregate.Do(context.Background(), report); err != nil {
			t.Fatalf("aggregate error = %v", err)
		}
		if err := classify.Do(context.Background(), report); err != nil {
			t.Fatalf("classify error = %v", err)
		}

		if report.Verdict != model.VerdictNeedsImprovement {
			t.Errorf("Verdict = %v, expected needs improvement at equality", report.Verdict)
		}
	})
}

// TestDedupeStep tests the dedupe step.
func TestDedupeStep(t *testing.T) {
	t.Parallel()

	t.Run("derives the unique category census", func(t *testing.T) {
		t.Parallel()

		step := NewDedupeStep()
		report := newTestReport()
		report.RawCategories = []string{"b", "a", "b", "c", "a"}

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("Do() error = %v", err)
		}

		if !reflect.DeepEqual(report.Categories, []string{"a", "b", "c"}) {
			t.Errorf("Categories = %v", report.Categories)
		}
		if report.CategoryCount != 3 {
			t.Errorf("CategoryCount = %d", report.CategoryCount)
		}
		if report.CategoryFrequencies["a"] != 2 {
			t.Errorf("CategoryFrequencies = %v", report.CategoryFrequencies)
		}
	})

	t.Run("empty raw categories yield empty census", func(t *testing.T) {
		t.Parallel()

		step := NewDedupeStep()
		report := newTestReport()

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("Do() error = %v", err)
		}

		if report.Categories == nil || len(report.Categories) != 0 {
			t.Errorf("Categories = %v, expected empty non-nil", report.Categories)
		}
		if report.CategoryCount != 0 {
			t.Errorf("CategoryCount = %d", report.CategoryCount)
		}
	})
}
