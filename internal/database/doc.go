// Package database provides SQLite-based storage for datascan run history.
//
// This package implements the HistoryDB, which stores one row per completed
// analysis run: the full report as JSON plus queryable columns (data file,
// verdict, input fingerprints, timestamp) for history listings and run
// comparison without deserializing every report.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
