// Package metrics records per-operation counters and latencies in a private
// Prometheus registry and snapshots runtime memory for run summaries.
//
// The registry is never served over HTTP. A run writes it once, in the text
// exposition format, to the file named by --metrics-file so that a node
// exporter textfile collector can pick it up.
package metrics
