// Package orchestration runs operations as tasks. It parses batch files,
// executes tasks concurrently under a parallelism limit, traces and measures
// each task, and hands results to a presenter.
package orchestration
