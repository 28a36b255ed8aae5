package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/datascan/internal/config"
	"github.com/nao1215/datascan/internal/database"
	"github.com/nao1215/datascan/internal/model"
	"github.com/nao1215/datascan/internal/report"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <old-run-id> <new-run-id>",
		Short: "Compare two recorded analysis runs",
		Long: `Compare shows how one recorded analysis run differs from another:
the movement of each statistic, whether the performance verdict changed,
and which categories appeared or disappeared.

Deltas are computed as new minus old, so a positive average delta means
the newer run scored higher. Run IDs are listed by 'datascan history'.

Examples:
  # Compare two runs as text
  datascan compare 2f1f9e2a-8a3f-4a92-b8a1-0c6f6f1f9e2a 7b3c4d5e-1234-4f6a-9b8c-d7e8f9a0b1c2

  # Emit the comparison as Markdown
  datascan compare <old-run-id> <new-run-id> --format markdown`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().StringP("format", "f", "text",
		"Output format (text, json, markdown)")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "text" && format != "json" && format != "markdown" {
		return fmt.Errorf("%w: %q", config.ErrInvalidFormat, format)
	}

	dbDir, err := resolveDBDir(cmd)
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			return errors.New("no runs recorded yet (run 'datascan analyze' first)")
		}
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	oldRun, err := loadRun(ctx, db, args[0])
	if err != nil {
		return err
	}

	newRun, err := loadRun(ctx, db, args[1])
	if err != nil {
		return err
	}

	cmp := model.CompareRuns(oldRun, newRun)

	var w report.Writer
	switch format {
	case "json":
		w = report.NewJSONWriter(os.Stdout, report.WithPrettyPrint())
	case "markdown":
		w = report.NewMarkdownWriter(os.Stdout)
	default:
		w = report.NewTextWriter(os.Stdout)
	}

	_, err = w.WriteComparison(cmp)
	return err
}

// loadRun fetches one stored run by ID.
func loadRun(ctx context.Context, db *database.HistoryDB, id string) (*model.AnalysisReport, error) {
	run, err := db.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %q: %w", id, err)
	}
	if run == nil {
		return nil, fmt.Errorf("run %q not found (use 'datascan history' to list recorded runs)", id)
	}
	return run, nil
}
