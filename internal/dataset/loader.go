package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// line is a usable input line together with its 1-based position in the
// original file.
type line struct {
	text   string
	number int
}

// LoadNumeric reads the numeric dataset at path: one real number per line,
// optional sign, integer or decimal form. Blank lines are ignored. The
// returned slice preserves input order.
//
// The first line that does not parse as a finite number aborts the load
// with ErrInvalidData; no partial result is returned.
func LoadNumeric(path string) ([]float64, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, len(lines))
	for _, ln := range lines {
		value, err := strconv.ParseFloat(ln.text, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w: %q is not a number (%s line %d)",
				ErrInvalidData, ln.text, path, ln.number)
		}
		values = append(values, value)
	}

	return values, nil
}

// LoadCategories reads the categorical dataset at path: one token per line,
// surrounding whitespace trimmed, blank lines ignored. Duplicates are
// preserved in the returned sequence; deduplication happens later in the
// analysis stage.
func LoadCategories(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(lines))
	for _, ln := range lines {
		categories = append(categories, ln.text)
	}

	return categories, nil
}

// readLines reads path fully and returns its trimmed non-blank lines.
// The file handle is released before readLines returns on every path,
// success or failure.
func readLines(path string) ([]line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		// Unreadable files (permissions, directories) are reported under
		// the same kind as missing ones: the path cannot be loaded.
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}

	var lines []line
	for i, raw := range strings.Split(string(data), "\n") {
		// TrimSpace also strips the \r of CRLF line endings.
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lines = append(lines, line{text: text, number: i + 1})
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	return lines, nil
}
