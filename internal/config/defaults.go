package config

import "runtime"

// Setting resolution chain (highest priority first):
//   1. CLI flags (--capacity, --parallel, ...)
//   2. Environment variables (BIGCALC_CAPACITY, ...)
//   3. TOML config file (--config or BIGCALC_CONFIG)
//   4. Hardware estimation (this file) and static defaults

// EstimateParallelism returns the default number of batch tasks run at once.
// Each task is short and CPU-bound, so the estimate tracks the core count and
// leaves one core free on larger machines.
func EstimateParallelism() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return numCPU
	case numCPU <= 8:
		return numCPU - 1
	default:
		return 8 // Beyond this, batch files are I/O bound on result output
	}
}
