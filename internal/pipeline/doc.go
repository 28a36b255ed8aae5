// Package pipeline provides a framework for executing analysis steps in
// sequence.
//
// The pipeline pattern is used to process a dataset pair through multiple
// stages: loading the numeric data, aggregating it, classifying the average,
// loading the categorical data, and deduplicating it. Each stage is
// implemented as a Step that receives the current report and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context between steps
// 4. The same step sequence serves single runs and batch runs unchanged
//
// The pipeline supports both individual runs and batch processing with
// concurrency control using errgroup.
package pipeline
