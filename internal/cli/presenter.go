package cli

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/agbru/bigrsa/internal/bigint"
	apperrors "github.com/agbru/bigrsa/internal/errors"
	"github.com/agbru/bigrsa/internal/format"
	"github.com/agbru/bigrsa/internal/orchestration"
	"github.com/agbru/bigrsa/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for a running batch.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numTasks int, out io.Writer) {
	DisplayProgress(wg, progressChan, numTasks, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler with colorized terminal output.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentResults displays one row per task: line, task, duration and value
// or failure. Quiet mode prints bare values, one per line.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentResults(results []orchestration.TaskResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		for _, res := range results {
			DisplayQuietResult(out, res, opts.OutputRadix)
		}
		return
	}

	fmt.Fprintf(out, "\n--- Batch Results ---\n")

	maxTaskLen := len("Task")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxTaskLen = max(maxTaskLen, utf8.RuneCountInString(res.Task.String()))
		maxDurationLen = max(maxDurationLen, utf8.RuneCountInString(format.FormatExecutionDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sLine%s  %sTask%s%s   %sDuration%s%s   %sResult%s\n",
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxTaskLen-4),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s✗ %v%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else if value, err := FormatValue(res.Value, opts.OutputRadix, opts.Verbose); err != nil {
			status = fmt.Sprintf("%s✗ %v%s", ui.ColorRed(), err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s%s%s", ui.ColorGreen(), value, ui.ColorReset())
		}
		task := res.Task.String()
		duration := format.FormatExecutionDuration(res.Duration)
		fmt.Fprintf(out, "%4d  %s%s%s%s   %s%s%s%s   %s\n",
			res.Task.Line,
			ui.ColorBlue(), task, ui.ColorReset(), padRight("", maxTaskLen-utf8.RuneCountInString(task)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-utf8.RuneCountInString(duration)),
			status)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays a single result.
func (CLIResultPresenter) PresentResult(result orchestration.TaskResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, OutputConfig{OutputRadix: opts.OutputRadix, Quiet: opts.Quiet, Verbose: opts.Verbose}, out)
}

// HandleError prints err with a hint matching its kind and returns the exit
// code for it.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	code := apperrors.ExitCode(err)
	switch {
	case code == apperrors.ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	case code == apperrors.ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled.%s\n", ui.ColorYellow(), ui.ColorReset())
	case errors.Is(err, bigint.ErrOverflow), errors.Is(err, bigint.ErrUnderflow):
		fmt.Fprintf(out, "%sStatus: Failure. %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		fmt.Fprintf(out, "Hint: raise %s--capacity%s to hold larger values.\n", ui.ColorYellow(), ui.ColorReset())
	default:
		fmt.Fprintf(out, "%sStatus: Failure. %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return code
}
