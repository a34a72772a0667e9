// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatValue], [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultsToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/bigrsa/internal/bigint"
	"github.com/agbru/bigrsa/internal/format"
	"github.com/agbru/bigrsa/internal/orchestration"
	"github.com/agbru/bigrsa/internal/ui"
)

// MsgpackExt selects the binary result format in WriteResultsToFile.
const MsgpackExt = ".msgpack"

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save results (empty for no file output).
	OutputFile string
	// OutputRadix is the radix values are rendered in.
	OutputRadix int
	// Quiet mode prints bare values only.
	Quiet bool
	// Verbose prints values in full instead of truncating them.
	Verbose bool
}

// radixPrefix returns the conventional prefix for a radix, if any.
func radixPrefix(radix int) string {
	switch radix {
	case 16:
		return "0x"
	case 8:
		return "0o"
	case 2:
		return "0b"
	}
	return ""
}

// FormatValue renders v in radix. Unless verbose, values longer than
// TruncationLimit digits keep only DisplayEdges digits at each end.
func FormatValue(v *bigint.Int, radix int, verbose bool) (string, error) {
	s, err := v.Text(radix)
	if err != nil {
		return "", err
	}
	if !verbose {
		s = format.TruncateDigits(s, TruncationLimit, DisplayEdges)
	}
	return s, nil
}

// FormatQuietResult formats a result for quiet mode: the full value on one
// line, suitable for scripting.
func FormatQuietResult(res orchestration.TaskResult, radix int) string {
	if res.Err != nil {
		return "error: " + res.Err.Error()
	}
	s, err := res.Value.Text(radix)
	if err != nil {
		return "error: " + err.Error()
	}
	return s
}

// DisplayQuietResult outputs a result in quiet mode.
func DisplayQuietResult(out io.Writer, res orchestration.TaskResult, radix int) {
	fmt.Fprintln(out, FormatQuietResult(res, radix))
}

// DisplayResult displays one successful result with its size and timing.
func DisplayResult(res orchestration.TaskResult, cfg OutputConfig, out io.Writer) {
	if cfg.Quiet {
		DisplayQuietResult(out, res, cfg.OutputRadix)
		return
	}
	value, err := FormatValue(res.Value, cfg.OutputRadix, cfg.Verbose)
	if err != nil {
		fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	fmt.Fprintf(out, "\n%s--- Result ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Operation:  %s%s%s\n", ui.ColorMagenta(), res.Task, ui.ColorReset())
	fmt.Fprintf(out, "Time:       %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())
	fmt.Fprintf(out, "Bit length: %s%d%s (%d limbs in use of %d)\n",
		ui.ColorCyan(), res.Value.BitLen(), ui.ColorReset(), res.Value.Len(), res.Value.Capacity())
	fmt.Fprintf(out, "Value:      %s%s%s%s\n", ui.ColorGreen(), radixPrefix(cfg.OutputRadix), value, ui.ColorReset())
	if !cfg.Verbose && strings.Contains(value, "...") {
		fmt.Fprintf(out, "            (truncated, use %s-v%s for the full value)\n", ui.ColorYellow(), ui.ColorReset())
	}
}

// resultRecord is the msgpack form of a task result.
type resultRecord struct {
	Line     int         `msgpack:"line"`
	Task     string      `msgpack:"task"`
	Value    *bigint.Int `msgpack:"value,omitempty"`
	Error    string      `msgpack:"error,omitempty"`
	Duration int64       `msgpack:"duration_ns"`
}

// WriteResultsToFile writes every result to cfg.OutputFile, creating parent
// directories as needed. Paths ending in MsgpackExt get a msgpack array of
// records; anything else gets a commented text file with one value per task.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultsToFile(results []orchestration.TaskResult, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(cfg.OutputFile), MsgpackExt) {
		err = writeMsgpack(file, results)
	} else {
		err = writeText(file, results, cfg.OutputRadix)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.OutputFile, err)
	}
	return file.Close()
}

func writeMsgpack(w io.Writer, results []orchestration.TaskResult) error {
	records := make([]resultRecord, len(results))
	for i, res := range results {
		records[i] = resultRecord{
			Line:     res.Task.Line,
			Task:     res.Task.String(),
			Value:    res.Value,
			Duration: res.Duration.Nanoseconds(),
		}
		if res.Err != nil {
			records[i].Error = res.Err.Error()
		}
	}
	return msgpack.NewEncoder(w).Encode(records)
}

func writeText(w io.Writer, results []orchestration.TaskResult, radix int) error {
	fmt.Fprintf(w, "# bigcalc results\n")
	fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "# Radix: %d\n", radix)
	fmt.Fprintf(w, "# Tasks: %d\n\n", len(results))
	for _, res := range results {
		fmt.Fprintf(w, "%s =\n", res.Task)
		if _, err := fmt.Fprintln(w, FormatQuietResult(res, radix)); err != nil {
			return err
		}
	}
	return nil
}
