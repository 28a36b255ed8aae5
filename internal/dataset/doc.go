// Package dataset loads line-delimited input files into typed sequences.
//
// Two loaders cover the two dataset kinds:
//   - LoadNumeric: parses each non-blank line as a finite float64
//   - LoadCategories: accepts each trimmed non-blank line as a category token
//
// Both loaders are all-or-nothing: the first invalid line aborts the whole
// load and no partial result is returned. Blank lines are skipped without
// being counted as entries. Reported line numbers refer to the original
// file, blanks included, so an error can be located in an editor.
//
// Design decision: Files are read fully into memory rather than streamed.
// Inputs are small, local, line-delimited files; whole-file reads keep the
// handle lifetime trivially scoped (opened, read, released before parsing
// begins) and make the all-or-nothing contract easy to honor.
package dataset
