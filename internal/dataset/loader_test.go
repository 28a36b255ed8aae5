package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeInput writes content to a file under a fresh temp dir and returns
// its path.
func writeInput(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write input file: %v", err)
	}
	return path
}

// TestLoadNumeric tests loading valid numeric datasets.
func TestLoadNumeric(t *testing.T) {
	t.Parallel()

	t.Run("loads values preserving input order", func(t *testing.T) {
		t.Parallel()

		path := writeInput(t, "marks.csv",
			"85\n92\n78\n90\n95\n73\n88\n76\n91\n84\n79\n93\n87\n82\n93\n")

		values, err := LoadNumeric(path)
		if err != nil {
			t.Fatalf("LoadNumeric() error = %v", err)
		}

		expected := []float64{85, 92, 78, 90, 95, 73, 88, 76, 91, 84, 79, 93, 87, 82, 93}
		if len(values) != len(expected) {
			t.Fatalf("got %d values, expected %d", len(values), len(expected))
		}
		for i, v := range expected {
			if values[i] != v {
				t.Errorf("values[%d] = %v, expected %v", i, values[i], v)
			}
		}
	})

	t.Run("skips blank lines and trims whitespace", func(t *testing.T) {
		t.Parallel()

		path := writeInput(t, "marks.csv", "\n  85 \n\n\t92\t\n   \n78\n")

		values, err := LoadNumeric(path)
		if err != nil {
			t.Fatalf("LoadNumeric() error = %v", err)
		}
		if len(values) != 3 {
			t.Fatalf("got %d values, expected 3", len(values))
		}
		if values[0] != 85 || values[1] != 92 || values[2] != 78 {
			t.Errorf("got %v, expected [85 92 78]", values)
		}
	})

	t.Run("handles CRLF line endings", func(t *testing.T) {
		t.Parallel()

		path := writeInput(t, "marks.csv", "85\r\n92\r\n78\r\n")

		values, err := LoadNumeric(path)
		if err != nil {
			t.Fatalf("LoadNumeric() error = %v", err)
		}
		if len(values) != 3 {
			t.Fatalf("got %d values, expected 3", len(values))
		}
	})

	t.Run("parses signed and decimal forms", func(t *testing.T) {
		t.Parallel()

		path := writeInput(t, "marks.csv", "-12.5\n+3\n0.25\n1e2\n")

		values, err := LoadNumeric(path)
		if err != nil {
			t.Fatalf("LoadNumeric() error = %v", err)
		}

		expected := []float64{-12.5, 3, 0.25, 100}
		for i, v := range expected {
			if values[i] != v {
				t.Errorf("values[%d] = %v, expected %v", i, values[i], v)
			}
		}
	})
}

// TestLoadNumericErrors tests the load failure taxonomy.
func TestLoadNumericErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.csv")

		values, err := LoadNumeric(path)
		if !errors.Is(err, ErrFileNotFound) {
			t.Fatalf("error = %v, expected ErrFileNotFound", err)
		}
		if values != nil {
			t.Errorf("expected nil values on failure, got %v", values)
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q should contain the offending path", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		path := writeInput(t, "marks.csv", "")

		if _, err := LoadNumeric(path); !errors.Is(err, ErrEmptyFile) {
			t.Fatalf("error = %v, expected ErrEmptyFile", err)
		}
	})

	t.Run("file with only blank lines", func(t *testing.T) {
		t.Parallel()

		path := writeInput(t, "marks.csv", "\n \n\t\n\r\n")

		if _, err := LoadNumeric(path); !errors.Is(err, ErrEmptyFile) {
			t.Fatalf("error = %v, expected ErrEmptyFile", err)
		}
	})

	t.Run("non-numeric line aborts the whole load", func(t *testing.T) {
		t.Parallel()

		path := writeInput(t, "marks.csv", "85\n92\nabc\n90\n")

		values, err := LoadNumeric(path)
		if !errors.Is(err, ErrInvalidData) {
			t.Fatalf("error = %v, expected ErrInvalidData", err)
		}
		if values != nil {
			t.Errorf("expected no partial result, got %v", values)
		}
		if !strings.Contains(err.Error(), `"abc"`) {
			t.Errorf("error %q should contain the offending line content", err)
		}
		if !strings.Contains(err.Error(), "line 3") {
			t.Errorf("error %q should contain the 1-based line number", err)
		}
	})

	t.Run("line numbers count blank lines", func(t *testing.T) {
		t.Parallel()

		path := writeInput(t, "marks.csv", "85\n\n\nbad\n")

		_, err := LoadNumeric(path)
		if !errors.Is(err, ErrInvalidData) {
			t.Fatalf("error = %v, expected ErrInvalidData", err)
		}
		if !strings.Contains(err.Error(), "line 4") {
			t.Errorf("error %q should reference line 4 of the original file", err)
		}
	})

	t.Run("rejects non-finite values", func(t *testing.T) {
		t.Parallel()

		testCases := []string{"NaN", "Inf", "-Inf", "+Inf"}
		for _, token := range testCases {
			t.Run(token, func(t *testing.T) {
				t.Parallel()

				path := writeInput(t, "marks.csv", "85\n"+token+"\n")

				if _, err := LoadNumeric(path); !errors.Is(err, ErrInvalidData) {
					t.Errorf("error = %v, expected ErrInvalidData for %q", err, token)
				}
			})
		}
	})
}

// TestLoadCategories tests loading categorical datasets.
func TestLoadCategories(t *testing.T) {
	t.Parallel()

	t.Run("preserves duplicates and input order", func(t *testing.T) {
		t.Parallel()

		path := writeInput(t, "courses.csv",
			"Mathematics\nPhysics\nChemistry\nBiology\nMathematics\nPhysics\n")

		categories, err := LoadCategories(path)
		if err != nil {
			t.Fatalf("LoadCategories() error = %v", err)
		}

		expected := []string{"Mathematics", "Physics", "Chemistry", "Biology", "Mathematics", "Physics"}
		if len(categories) != len(expected) {
			t.Fatalf("got %d categories, expected %d", len(categories), len(expected))
		}
		for i, c := range expected {
			if categories[i] != c {
				t.Errorf("categories[%d] = %q, expected %q", i, categories[i], c)
			}
		}
	})

	t.Run("trims whitespace and skips blank lines", func(t *testing.T) {
		t.Parallel()

		path := writeInput(t, "courses.csv", "  Mathematics \n\n\tPhysics\n   \n")

		categories, err := LoadCategories(path)
		if err != nil {
			t.Fatalf("LoadCategories() error = %v", err)
		}
		if len(categories) != 2 {
			t.Fatalf("got %d categories, expected 2", len(categories))
		}
		if categories[0] != "Mathematics" || categories[1] != "Physics" {
			t.Errorf("got %v, expected [Mathematics Physics]", categories)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.csv")

		if _, err := LoadCategories(path); !errors.Is(err, ErrFileNotFound) {
			t.Fatalf("error = %v, expected ErrFileNotFound", err)
		}
	})

	t.Run("file with only blank lines", func(t *testing.T) {
		t.Parallel()

		path := writeInput(t, "courses.csv", "\n\n  \n")

		if _, err := LoadCategories(path); !errors.Is(err, ErrEmptyFile) {
			t.Fatalf("error = %v, expected ErrEmptyFile", err)
		}
	})
}
