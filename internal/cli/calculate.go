package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigrsa/internal/config"
	"github.com/agbru/bigrsa/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Capacity: %s%d%s limbs (%d bits), timeout %s%s%s.\n",
		ui.ColorMagenta(), cfg.Capacity, ui.ColorReset(), cfg.Capacity*32,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Radix: input %s%d%s, output %s%d%s.\n",
		ui.ColorCyan(), cfg.InputRadix, ui.ColorReset(), ui.ColorCyan(), cfg.OutputRadix, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays whether a single operation or a batch runs.
//
// Parameters:
//   - numTasks: The number of tasks that will be executed.
//   - parallelism: The maximum number of tasks running at once.
//   - out: The writer for standard output.
func PrintExecutionMode(numTasks, parallelism int, out io.Writer) {
	var modeDesc string
	if numTasks > 1 {
		modeDesc = fmt.Sprintf("Batch of %s%d%s tasks, up to %d at a time",
			ui.ColorGreen(), numTasks, ui.ColorReset(), min(parallelism, numTasks))
	} else {
		modeDesc = "Single operation"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
