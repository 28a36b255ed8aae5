// Package report renders analysis results for output.
//
// This package contains writers for different output formats:
//   - TextWriter: the canonical text report for terminal and file
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for documentation and sharing
//   - ExcelWriter: spreadsheet output for downstream number crunching
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) to follow the single responsibility
// principle. This allows adding new output formats without modifying
// the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output. The text format
// is rendered once per call and emitted verbatim, so every destination
// receives identical bytes.
package report
