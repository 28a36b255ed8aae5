package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/datascan/internal/model"
)

// ErrDatabaseNotFound is returned by Open when the database file does not
// exist and CreateIfNotExists is disabled. Callers that list history treat
// it as "nothing recorded yet" rather than a failure.
var ErrDatabaseNotFound = errors.New("database not found")

// HistoryDB provides SQLite-based storage for completed analysis runs.
// It manages connection pooling and provides methods for recording and
// querying run history.
//
// Design decision: We use a single database file for all dataset pairs
// rather than one file per dataset. This keeps cross-dataset queries
// (listing, comparing runs) trivial and simplifies backup/restore.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "datascan.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		// Check if database file exists
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s (use CreateIfNotExists option to create)", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Analysis runs store complete run results as JSON plus queryable columns
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id TEXT PRIMARY KEY,
		data_file TEXT NOT NULL,
		categories_file TEXT NOT NULL,
		data_fingerprint TEXT,
		categories_fingerprint TEXT,
		threshold REAL NOT NULL,
		verdict TEXT NOT NULL,
		report_json TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_data_file ON analysis_runs(data_file);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON analysis_runs(created_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// timestampLayout is the stored created_at format. The fixed-width
// fractional seconds keep SQLite's lexicographic ORDER BY chronological;
// RFC3339Nano would trim trailing zeros and break sub-second ordering.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// SaveRun records a completed analysis run.
// A UUID run ID is assigned if the report doesn't carry one yet; the ID is
// returned and also written back to the report so the stored JSON carries it.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.AnalysisReport) (string, error) {
	if report.RunID == "" {
		report.RunID = uuid.NewString()
	}

	// Serialize after the ID assignment so the stored JSON includes it
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO analysis_runs (id, data_file, categories_file, data_fingerprint, categories_fingerprint, threshold, verdict, report_json, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = hdb.db.ExecContext(ctx, query,
		report.RunID,
		report.DataFile,
		report.CategoriesFile,
		report.DataFingerprint,
		report.CategoriesFingerprint,
		report.Threshold,
		report.Verdict.String(),
		string(reportJSON),
		report.AnalyzedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save analysis run: %w", err)
	}

	return report.RunID, nil
}

// GetRun retrieves a stored run by its ID.
// Returns nil without error when no run has that ID.
func (hdb *HistoryDB) GetRun(ctx context.Context, id string) (*model.AnalysisReport, error) {
	query := `
	SELECT report_json FROM analysis_runs
	WHERE id = ?
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// GetLatestRun retrieves the most recent run for a data file.
// Returns nil without error when the file has no recorded runs.
func (hdb *HistoryDB) GetLatestRun(ctx context.Context, dataFile string) (*model.AnalysisReport, error) {
	query := `
	SELECT report_json FROM analysis_runs
	WHERE data_file = ?
	ORDER BY created_at DESC
	LIMIT 1
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, dataFile).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// RunMetadata contains summary information about a stored run.
// This is used for displaying run history without loading full reports.
type RunMetadata struct {
	// RunID is the unique identifier of the run.
	RunID string `json:"run_id"`

	// DataFile is the numeric input path the run analyzed.
	DataFile string `json:"data_file"`

	// CategoriesFile is the categorical input path the run analyzed.
	CategoriesFile string `json:"categories_file"`

	// Threshold is the performance threshold the run was classified against.
	Threshold float64 `json:"threshold"`

	// Verdict is the performance classification label.
	Verdict string `json:"verdict"`

	// CreatedAt is when the analysis was performed.
	CreatedAt time.Time `json:"created_at"`
}

// ListRuns retrieves metadata for stored runs, most recent first.
// A non-positive limit returns all runs.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, data_file, categories_file, threshold, verdict, created_at
	FROM analysis_runs
	ORDER BY created_at DESC
	LIMIT ?
	`

	return hdb.queryMetadata(ctx, query, normalizeLimit(limit))
}

// GetRunHistory retrieves metadata for the stored runs of one data file,
// most recent first. A non-positive limit returns all runs.
func (hdb *HistoryDB) GetRunHistory(ctx context.Context, dataFile string, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, data_file, categories_file, threshold, verdict, created_at
	FROM analysis_runs
	WHERE data_file = ?
	ORDER BY created_at DESC
	LIMIT ?
	`

	return hdb.queryMetadata(ctx, query, dataFile, normalizeLimit(limit))
}

// queryMetadata runs a metadata query and scans the result rows.
func (hdb *HistoryDB) queryMetadata(ctx context.Context, query string, args ...interface{}) ([]RunMetadata, error) {
	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var createdAt string

		err := rows.Scan(
			&meta.RunID,
			&meta.DataFile,
			&meta.CategoriesFile,
			&meta.Threshold,
			&meta.Verdict,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run metadata: %w", err)
		}

		meta.CreatedAt = parseTimestamp(createdAt)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// normalizeLimit converts a non-positive limit to SQLite's "no limit" value.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: the format we write should come first.
var timestampFormats = []string{
	timestampLayout,           // What SaveRun writes
	time.RFC3339Nano,          // Databases written before the fixed-width layout
	time.RFC3339,              // RFC3339 without fractional seconds
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
