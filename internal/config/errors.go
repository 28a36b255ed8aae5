package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and the dataset lookup
// helpers and provide specific information about what is wrong with the
// configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances at each call site. This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoDataFile is returned when no numeric input file is specified.
	// This error occurs when neither --data nor a configured dataset name
	// provides a path.
	ErrNoDataFile = errors.New("no data file specified: provide --data or a configured dataset name")

	// ErrNoCategoriesFile is returned when no categorical input file is
	// specified.
	ErrNoCategoriesFile = errors.New("no categories file specified: provide --categories or a configured dataset name")

	// ErrInvalidConcurrency is returned when the batch concurrency is not
	// positive. A concurrency of zero would mean no runs at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidFormat is returned when an output format name is not one of
	// the supported values.
	ErrInvalidFormat = errors.New("invalid format: must be one of text, json, markdown")

	// ErrUnknownDataset is returned when analyze is invoked with a dataset
	// name the configuration file does not define.
	ErrUnknownDataset = errors.New("unknown dataset name")
)
