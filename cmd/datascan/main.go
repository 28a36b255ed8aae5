// Package main provides the entry point for the datascan CLI.
//
// datascan analyzes flat datasets: a numeric file and a categorical file,
// each holding one value per line. It computes descriptive statistics,
// classifies the dataset average against a performance threshold, and
// reports the distinct categories.
//
// Usage:
//
//	datascan analyze --data marks.csv --categories courses.csv
//	datascan history
//	datascan compare <old-run-id> <new-run-id>
//
// See --help for all available options.
package main

// main is the entry point for datascan.
func main() {
	Execute()
}
