package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/datascan/internal/config"
	"github.com/nao1215/datascan/internal/database"
	"github.com/nao1215/datascan/internal/log"
	"github.com/nao1215/datascan/internal/model"
	"github.com/nao1215/datascan/internal/pipeline"
	"github.com/nao1215/datascan/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [dataset-name...]",
		Short: "Analyze a numeric and a categorical dataset pair",
		Long: `Analyze reads a numeric dataset and a categorical dataset (one value per
line each), computes descriptive statistics, classifies the average against
a performance threshold, and reports the distinct categories.

The canonical text report is printed to the console and written to the
report file; both always receive identical content. Completed runs are
recorded in the history database unless --no-history is given.

With no arguments the dataset pair comes from --data and --categories.
With one or more dataset names the pairs come from the configuration file;
two or more names are analyzed concurrently in batch mode.

Examples:
  # Analyze a dataset pair
  datascan analyze --data student_marks.csv --categories courses.csv

  # Use a custom threshold and report file
  datascan analyze -d marks.csv -c courses.csv -t 90 -o report.txt

  # Analyze a named pair from .datascan.yaml
  datascan analyze exam-results

  # Analyze several configured pairs concurrently
  datascan analyze exam-results lab-results --concurrency 4

  # Also export the report as JSON and Markdown
  datascan analyze -d marks.csv -c courses.csv --export-json report.json --export-markdown report.md

Configuration file (.datascan.yaml) example:
  threshold: 85
  datasets:
    exam-results:
      data: student_marks.csv
      categories: courses.csv
      threshold: 90`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Input flags
	cmd.Flags().StringP("data", "d", "",
		"Numeric input file (one value per line)")
	cmd.Flags().StringP("categories", "c", "",
		"Categorical input file (one value per line)")

	// Analysis flags
	cmd.Flags().Float64P("threshold", "t", config.DefaultThreshold,
		"Performance threshold the dataset average is classified against")

	// Report flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputFile,
		"Report file path (the console always receives the same report)")
	cmd.Flags().String("export-json", "",
		"Also write the report as JSON to this path")
	cmd.Flags().String("export-markdown", "",
		"Also write the report as Markdown to this path")
	cmd.Flags().String("export-excel", "",
		"Also write the report as an Excel workbook to this path")

	// Batch flags
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Maximum number of concurrent runs in batch mode")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record the run in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	// Configuration file
	cmd.Flags().String("config", "",
		"Configuration file path (default: .datascan.yaml in current or home directory)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	// Build config from defaults, config file, environment, and flags
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Resolve the dataset pairs to analyze
	targets, err := resolveTargets(cmd, cfg, args)
	if err != nil {
		return err
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, targets, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the configuration file, environment
// variables, and cobra command flags, in that order of increasing
// precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the configuration file, the lowest layer above the defaults.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently continue when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Environment variables override file values
	if err := cfg.ApplyEnvironment(); err != nil {
		return nil, err
	}

	// Flags override everything else. The Changed guards keep unset flags
	// from clobbering file and environment values with flag defaults.
	cfg.DataFile, err = cmd.Flags().GetString("data")
	if err != nil {
		return nil, err
	}

	cfg.CategoriesFile, err = cmd.Flags().GetString("categories")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("threshold") {
		cfg.Threshold, err = cmd.Flags().GetFloat64("threshold")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("output") {
		cfg.OutputFile, err = cmd.Flags().GetString("output")
		if err != nil {
			return nil, err
		}
	}

	cfg.ExportJSON, err = cmd.Flags().GetString("export-json")
	if err != nil {
		return nil, err
	}

	cfg.ExportMarkdown, err = cmd.Flags().GetString("export-markdown")
	if err != nil {
		return nil, err
	}

	cfg.ExportExcel, err = cmd.Flags().GetString("export-excel")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("no-history") {
		cfg.NoHistory, err = cmd.Flags().GetBool("no-history")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("db-dir") {
		cfg.DBDir, err = cmd.Flags().GetString("db-dir")
		if err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// analysisTarget pairs one dataset pair with its report file path.
type analysisTarget struct {
	pair   pipeline.Pair
	output string
}

// resolveTargets derives the dataset pairs to analyze from the positional
// dataset names. With no names the pair comes entirely from flags,
// environment, and configuration; with names each pair comes from the
// configuration file, with explicitly set flags overriding per pair.
func resolveTargets(cmd *cobra.Command, cfg *config.Config, names []string) ([]analysisTarget, error) {
	if len(names) == 0 {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("configuration error: %w", err)
		}
		return []analysisTarget{{
			pair: pipeline.Pair{
				DataFile:       cfg.DataFile,
				CategoriesFile: cfg.CategoriesFile,
				Threshold:      cfg.Threshold,
			},
			output: cfg.OutputFile,
		}}, nil
	}

	if cfg.Datasets == nil {
		return nil, errors.New("dataset names require a configuration file with a datasets section (run 'datascan init' to create one)")
	}

	targets := make([]analysisTarget, 0, len(names))
	for _, name := range names {
		dc, err := cfg.Datasets.GetDatasetConfig(name)
		if err != nil {
			return nil, err
		}

		target := analysisTarget{
			pair: pipeline.Pair{
				DataFile:       dc.Data,
				CategoriesFile: dc.Categories,
				Threshold:      cfg.Threshold,
			},
			output: cfg.OutputFile,
		}

		// Pair-specific file settings are more specific than the global
		// configuration; explicitly set flags still win over both.
		if dc.Threshold != nil {
			target.pair.Threshold = *dc.Threshold
		}
		if cmd.Flags().Changed("threshold") {
			target.pair.Threshold = cfg.Threshold
		}
		if dc.Output != "" {
			target.output = dc.Output
		}
		if cmd.Flags().Changed("output") {
			target.output = cfg.OutputFile
		}
		if cfg.DataFile != "" {
			target.pair.DataFile = cfg.DataFile
		}
		if cfg.CategoriesFile != "" {
			target.pair.CategoriesFile = cfg.CategoriesFile
		}

		if target.pair.DataFile == "" || target.pair.CategoriesFile == "" {
			return nil, fmt.Errorf("dataset %q does not define both data and categories files", name)
		}

		targets = append(targets, target)
	}

	return targets, nil
}

// runAnalyze executes the analysis runs.
func runAnalyze(ctx context.Context, cfg *config.Config, targets []analysisTarget, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"targets", len(targets),
		"concurrency", cfg.Concurrency,
		"history", !cfg.NoHistory,
	)

	// Open the history database unless recording is disabled. A recording
	// failure never fails an analysis run, so open errors only warn.
	var db *database.HistoryDB
	if !cfg.NoHistory {
		dbDir := cfg.DBDir
		if dbDir == "" {
			dbDir = config.XDGDataDir()
		}

		var err error
		db, err = database.Open(dbDir, database.DefaultOptions())
		if err != nil {
			logger.Warn("history recording disabled: failed to open database",
				"dir", dbDir,
				"error", err,
			)
			db = nil
		} else {
			defer db.Close()
			logger.Info("history database opened", "dir", dbDir)
		}
	}

	// Use the batch processor for concurrent analysis if multiple pairs
	if len(targets) > 1 && cfg.Concurrency > 1 {
		return runBatchAnalysis(ctx, cfg, targets, db, logger)
	}

	// Single pair or sequential analysis
	return runSequentialAnalysis(ctx, cfg, targets, db, logger)
}

// newAnalysisPipeline assembles the canonical analysis pipeline.
func newAnalysisPipeline(logger *slog.Logger) *pipeline.Pipeline {
	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(pipeline.DefaultSteps(logger)...)
	return p
}

// runSequentialAnalysis analyzes dataset pairs one at a time.
func runSequentialAnalysis(ctx context.Context, cfg *config.Config, targets []analysisTarget, db *database.HistoryDB, logger *slog.Logger) error {
	var failures int
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		runReport := model.NewAnalysisReport(target.pair.DataFile, target.pair.CategoriesFile, target.pair.Threshold)

		p := newAnalysisPipeline(logger)
		if err := p.Execute(ctx, runReport); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if len(targets) == 1 {
				return fmt.Errorf("analysis of %s failed: %w", target.pair.DataFile, err)
			}
			logger.Error("analysis failed", "data_file", target.pair.DataFile, "error", err)
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %v\n", target.pair.DataFile, err)
			failures++
			continue
		}

		// Emit only after every step succeeded
		if err := emitReport(cfg, target, runReport); err != nil {
			return fmt.Errorf("failed to write report for %s: %w", target.pair.DataFile, err)
		}

		// Record the run; failures here only warn
		if err := saveRunReport(ctx, db, runReport, logger); err != nil {
			logger.Warn("failed to record run", "data_file", target.pair.DataFile, "error", err)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d analyses failed", failures, len(targets))
	}
	return nil
}

// runBatchAnalysis analyzes multiple dataset pairs concurrently using
// BatchProcessor.
func runBatchAnalysis(ctx context.Context, cfg *config.Config, targets []analysisTarget, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch analysis of %d dataset pairs (concurrency: %d)...\n\n",
		len(targets), cfg.Concurrency)

	startTime := time.Now()

	// Export flags name a single path, which concurrent runs would overwrite
	if cfg.ExportJSON != "" || cfg.ExportMarkdown != "" || cfg.ExportExcel != "" {
		logger.Warn("export flags are ignored in batch mode; each pair writes only its text report")
		fmt.Fprintf(os.Stderr, "Warning: Export flags are ignored in batch mode. Analyze pairs individually to export additional formats.\n\n")
		cfg.ExportJSON, cfg.ExportMarkdown, cfg.ExportExcel = "", "", ""
	}

	pairs := make([]pipeline.Pair, len(targets))
	for i, target := range targets {
		pairs[i] = target.pair
	}

	// Create batch processor with pipeline factory
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return newAnalysisPipeline(logger)
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output. The mutex keeps each
	// emitted report contiguous on the console.
	var mu sync.Mutex
	var failures int
	err := bp.ProcessBatchWithCallback(ctx, pairs, func(runReport *model.AnalysisReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		target := targets[index]

		if runReport.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "[%d/%d] Analysis error for %s: %v\n",
				index+1, len(targets), target.pair.DataFile, runReport.Error)
			return
		}

		fmt.Printf("[%d/%d] Analysis completed: %s\n", index+1, len(targets), target.pair.DataFile)

		if err := emitReport(cfg, target, runReport); err != nil {
			failures++
			logger.Error("report failed", "data_file", target.pair.DataFile, "error", err)
			return
		}

		if err := saveRunReport(ctx, db, runReport, logger); err != nil {
			logger.Warn("failed to record run", "data_file", target.pair.DataFile, "error", err)
		}
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch analysis completed in %s\n", elapsed.Round(time.Millisecond))

	if failures > 0 {
		return fmt.Errorf("%d of %d analyses failed", failures, len(targets))
	}
	return nil
}

// emitReport renders the canonical text report once and emits it to both
// the console and the report file, then writes any requested exports.
func emitReport(cfg *config.Config, target analysisTarget, runReport *model.AnalysisReport) error {
	outputPath := target.output
	if outputPath == "" {
		outputPath = cfg.OutputFile
	}

	// Create directories if they don't exist
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Overwrite the report file on every run
	f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	// Single render, dual emission: console and file receive identical bytes
	w := report.NewTextWriter(io.MultiWriter(os.Stdout, f))
	if _, err := w.Write(runReport); err != nil {
		return err
	}

	if cfg.ExportJSON != "" {
		if err := writeExport(cfg.ExportJSON, runReport, func(out io.Writer) report.Writer {
			return report.NewFullJSONWriter(out, getVersion(), report.WithPrettyPrint())
		}); err != nil {
			return fmt.Errorf("failed to write JSON export: %w", err)
		}
	}

	if cfg.ExportMarkdown != "" {
		if err := writeExport(cfg.ExportMarkdown, runReport, func(out io.Writer) report.Writer {
			return report.NewMarkdownWriter(out)
		}); err != nil {
			return fmt.Errorf("failed to write Markdown export: %w", err)
		}
	}

	if cfg.ExportExcel != "" {
		if err := writeExport(cfg.ExportExcel, runReport, func(out io.Writer) report.Writer {
			return report.NewExcelWriter(out)
		}); err != nil {
			return fmt.Errorf("failed to write Excel export: %w", err)
		}
	}

	return nil
}

// writeExport writes one export rendering of the report to its own file.
func writeExport(path string, runReport *model.AnalysisReport, newWriter func(io.Writer) report.Writer) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	_, err = newWriter(f).Write(runReport)
	return err
}

// saveRunReport records the completed run in the history database.
// If db is nil, this function is a no-op.
func saveRunReport(ctx context.Context, db *database.HistoryDB, runReport *model.AnalysisReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	runID, err := db.SaveRun(ctx, runReport)
	if err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}

	logger.Info("run recorded", "run_id", runID, "data_file", runReport.DataFile)
	return nil
}
