package dataset

import "errors"

// Dataset loading errors.
// These errors classify the ways a load can fail so callers can react to
// each kind distinctly.
//
// Design decision: We define sentinel errors and wrap them with fmt.Errorf
// at the detection site rather than introducing custom error structs. Callers
// branch with errors.Is while the wrapped message keeps the offending path
// and line context for the user.
var (
	// ErrFileNotFound is returned when the input path does not exist or
	// cannot be read.
	ErrFileNotFound = errors.New("file not found")

	// ErrEmptyFile is returned when the input file exists but contains no
	// usable (non-blank) lines.
	ErrEmptyFile = errors.New("file is empty")

	// ErrInvalidData is returned when a line of the numeric input cannot
	// be parsed as a finite number. The wrapped message carries the
	// offending line content and its 1-based position.
	ErrInvalidData = errors.New("invalid data")
)
