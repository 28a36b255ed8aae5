package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/datascan/internal/config"
	"github.com/nao1215/datascan/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		Long: `History lists the analysis runs recorded in the history database,
most recent first. Each entry shows the run ID, the analysis date, the
performance verdict, and the numeric input file.

Examples:
  # List the most recent runs
  datascan history

  # List only runs of one numeric input file
  datascan history --data student_marks.csv

  # List the last five runs as JSON
  datascan history --limit 5 --format json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("data", "d", "",
		"Only list runs of this numeric input file")
	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().StringP("format", "f", "text",
		"Output format (text, json)")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dataFile, err := cmd.Flags().GetString("data")
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("%w: %q (history supports text and json)", config.ErrInvalidFormat, format)
	}

	dbDir, err := resolveDBDir(cmd)
	if err != nil {
		return err
	}

	runs, err := fetchHistory(context.Background(), dbDir, dataFile, limit)
	if err != nil {
		return err
	}

	if format == "json" {
		return outputHistoryJSON(runs)
	}
	outputHistoryTable(runs, dataFile)
	return nil
}

// resolveDBDir determines the history database directory from the flag,
// the environment, or the XDG data directory, in that order.
func resolveDBDir(cmd *cobra.Command) (string, error) {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return "", err
	}
	if dbDir != "" {
		return dbDir, nil
	}
	if v := os.Getenv(config.EnvDBDir); v != "" {
		return v, nil
	}
	return config.XDGDataDir(), nil
}

// fetchHistory loads run metadata from the history database. A missing
// database means nothing has been recorded yet, not a failure.
func fetchHistory(ctx context.Context, dbDir, dataFile string, limit int) ([]database.RunMetadata, error) {
	db, err := database.Open(dbDir, database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	if dataFile != "" {
		runs, err := db.GetRunHistory(ctx, dataFile, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to load run history: %w", err)
		}
		return runs, nil
	}

	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load run history: %w", err)
	}
	return runs, nil
}

// outputHistoryTable prints run metadata as a fixed-width table.
func outputHistoryTable(runs []database.RunMetadata, dataFile string) {
	if len(runs) == 0 {
		if dataFile != "" {
			fmt.Printf("No recorded runs found for %s.\n", dataFile)
		} else {
			fmt.Println("No recorded runs found.")
		}
		fmt.Println("Run 'datascan analyze' to record one.")
		return
	}

	fmt.Printf("%-36s  %-19s  %-17s  %s\n", "RUN ID", "DATE", "VERDICT", "DATA FILE")
	fmt.Println(strings.Repeat("-", 90))
	for _, run := range runs {
		fmt.Printf("%-36s  %-19s  %-17s  %s\n",
			run.RunID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Verdict,
			run.DataFile,
		)
	}

	fmt.Println()
	fmt.Println("Use 'datascan compare <old-run-id> <new-run-id>' to compare two runs.")
}

// outputHistoryJSON prints run metadata as indented JSON. An empty history
// is emitted as an empty array so the output always parses.
func outputHistoryJSON(runs []database.RunMetadata) error {
	if runs == nil {
		runs = []database.RunMetadata{}
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(runs)
}
