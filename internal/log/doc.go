// Package log provides logging functionality with automatic truncation of
// overlong attribute values, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Capped string attribute values so one malformed dataset line cannot
//     swamp the log output
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Usage
//
//	// Create a logger (verbose=true enables Debug level)
//	logger := log.NewLogger(os.Stderr, true)
//
//	// Use as a standard slog.Logger
//	logger.Warn("skipping invalid line",
//	    "line", rawLine, // Truncated if longer than 256 bytes
//	    "path", dataFile,
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
