package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values match the documented defaults of the dataset analyzer
// where applicable.
const (
	// DefaultThreshold is the performance threshold the dataset average is
	// classified against when none is configured. Only an average strictly
	// above it earns the "High Performance" verdict.
	DefaultThreshold = 85.0

	// DefaultOutputFile is the file the canonical text report is written to
	// in addition to the console. Both sinks always receive the same bytes.
	DefaultOutputFile = "analysis_report.txt"

	// DefaultConcurrency of 2 concurrent runs keeps batch analysis gentle.
	// Individual runs are short and I/O-light, so a small limit loses
	// little throughput while keeping log output readable.
	DefaultConcurrency = 2

	// DefaultHistoryLimit is the number of runs shown by history listings
	// when no limit is given.
	DefaultHistoryLimit = 20

	// AppName is the application name used for XDG directory paths.
	AppName = "datascan"
)

// Config holds all configuration options for datascan.
// This struct is designed to be populated from defaults, the configuration
// file, environment variables, and CLI flags, in that order of increasing
// precedence, and passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., AnalysisConfig, ExportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// DataFile is the path of the numeric input file (one value per line).
	DataFile string

	// CategoriesFile is the path of the categorical input file
	// (one value per line).
	CategoriesFile string

	// Threshold is the performance threshold the dataset average is
	// classified against.
	Threshold float64

	// OutputFile is the path the canonical text report is written to.
	// The report always goes to both the console and this file.
	OutputFile string

	// ExportJSON, when non-empty, additionally writes a JSON rendering of
	// the report to this path.
	ExportJSON string

	// ExportMarkdown, when non-empty, additionally writes a GitHub Flavored
	// Markdown rendering of the report to this path.
	ExportMarkdown string

	// ExportExcel, when non-empty, additionally writes an Excel workbook
	// rendering of the report to this path.
	ExportExcel string

	// Concurrency is the maximum number of concurrent runs in batch mode.
	// Single-pair analysis ignores it; each run stays strictly sequential
	// internally either way.
	Concurrency int

	// NoHistory disables recording completed runs in the history database.
	NoHistory bool

	// DBDir is the directory holding the SQLite history database.
	// When empty, the XDG data directory is used.
	DBDir string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .datascan.yaml in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Datasets holds named dataset pairs loaded from the config file.
	// This is populated by LoadConfigFile and consulted when analyze is
	// invoked with dataset names instead of file flags.
	Datasets *File
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (threshold, output file,
// concurrency). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Threshold:   DefaultThreshold,
		OutputFile:  DefaultOutputFile,
		Concurrency: DefaultConcurrency,
	}
}

// ApplyFile overlays top-level configuration file values onto the config
// and records the file's named dataset pairs. CLI flags and environment
// variables are applied afterwards by the CLI layer, so file values sit at
// the bottom of the override order, just above the built-in defaults.
func (c *Config) ApplyFile(file *File) {
	if file == nil {
		return
	}

	c.Datasets = file
	if file.Threshold != nil {
		c.Threshold = *file.Threshold
	}
	if file.Output != "" {
		c.OutputFile = file.Output
	}
}

// XDGDataDir returns the XDG data directory for datascan. The history
// database lives here unless overridden.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/datascan
// On macOS: ~/Library/Application Support/datascan
// On Windows: %LOCALAPPDATA%\datascan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any analysis begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// Both halves of the dataset pair are required
	if c.DataFile == "" {
		return ErrNoDataFile
	}
	if c.CategoriesFile == "" {
		return ErrNoCategoriesFile
	}

	// Concurrency must be positive; zero would mean no runs at all
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	return nil
}
