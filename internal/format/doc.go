// Package format holds pure string formatting helpers shared by the CLI:
// durations, ETAs, byte counts, long digit strings and batch progress.
package format
