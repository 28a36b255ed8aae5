// Package model defines the core data structures used throughout datascan.
//
// This package contains the following main types:
//   - AnalysisReport: The main analysis result structure
//   - Statistics: Descriptive statistics of the numeric dataset
//   - ExtendedStatistics: Distribution statistics for export formats
//   - Verdict: The threshold-based performance classification
//   - AnalysisSummary: A compact, human-oriented view of a report
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (dataset, analysis, report, pipeline,
// database) need to use these types, so centralizing them prevents import
// cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
