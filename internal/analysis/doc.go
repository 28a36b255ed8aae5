// Package analysis computes derived results from loaded datasets.
//
// Three concerns live here, one file each:
//   - aggregate: descriptive statistics over the numeric sequence
//   - classify: the threshold comparison that yields a verdict
//   - unique: the category census over the categorical sequence
//
// All functions are pure: they read their inputs, return their results,
// and touch nothing else. The pipeline package owns sequencing and decides
// where results are stored.
//
// Design decision: Statistics are computed with montanaflynn/stats rather
// than hand-rolled loops. The library's Sum iterates the input in order,
// which preserves the order-sequential floating-point summation the report
// format depends on, and the remaining aggregates come from the same
// well-tested source. The 95% confidence interval uses the Student's t
// quantile from gonum's distuv, the standard choice when the population
// standard deviation is unknown.
package analysis
