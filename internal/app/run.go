package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/bigrsa/internal/cli"
	apperrors "github.com/agbru/bigrsa/internal/errors"
	"github.com/agbru/bigrsa/internal/format"
	"github.com/agbru/bigrsa/internal/logging"
	"github.com/agbru/bigrsa/internal/metrics"
	"github.com/agbru/bigrsa/internal/orchestration"
	"github.com/agbru/bigrsa/internal/sysmon"
	"github.com/agbru/bigrsa/internal/ui"
)

// runSingle evaluates the operation named on the command line.
func (a *Application) runSingle(ctx context.Context, out io.Writer) int {
	task := orchestration.NewTask(a.Config.Op, a.Config.Args...)
	return a.runTasks(ctx, []orchestration.Task{task}, out)
}

// runBatch evaluates every task of the batch file.
func (a *Application) runBatch(ctx context.Context, out io.Writer) int {
	tasks, err := orchestration.LoadTasks(a.Config.BatchFile, a.In)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, a.ErrWriter)
	}
	a.logger.Debug("batch loaded", logging.String("file", a.Config.BatchFile), logging.Int("tasks", len(tasks)))
	return a.runTasks(ctx, tasks, out)
}

// runTasks executes tasks under the configured timeout, presents the results
// and saves them when an output file is configured.
func (a *Application) runTasks(ctx context.Context, tasks []orchestration.Task, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	batch := len(tasks) > 1
	if !a.Config.Quiet && (batch || a.Config.Verbose) {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(len(tasks), a.Config.Parallelism, out)
	}

	var reporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	if batch && !a.Config.Quiet {
		reporter = cli.CLIProgressReporter{}
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	results := orchestration.ExecuteTasks(ctx, tasks, a.Factory, orchestration.Options{
		Capacity:    a.Config.Capacity,
		InputRadix:  a.Config.InputRadix,
		Parallelism: a.Config.Parallelism,
		Logger:      a.logger,
		Observer:    a.observer(),
	}, reporter, out)
	orchestration.MarkTimeouts(results, a.Config.Timeout)

	presenter := cli.CLIResultPresenter{}
	code := orchestration.AnalyzeResults(results, orchestration.PresentationOptions{
		OutputRadix: a.Config.OutputRadix,
		Verbose:     a.Config.Verbose,
		Quiet:       a.Config.Quiet,
	}, presenter, presenter, out)

	if a.Config.Verbose && !a.Config.Quiet {
		delta := collector.Snapshot().Since(before)
		fmt.Fprintf(out, "\nMemory: %s allocated in %d objects, %d GC cycles, heap %s.\n",
			format.FormatBytes(delta.TotalAlloc), delta.Mallocs, delta.NumGC, format.FormatBytes(delta.HeapAlloc))
		fmt.Fprintf(out, "Host:   %s.\n", sysmon.Sample())
	}

	if err := a.saveResults(results, out); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", err)
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

func (a *Application) saveResults(results []orchestration.TaskResult, out io.Writer) error {
	if a.Config.OutputFile == "" {
		return nil
	}
	err := cli.WriteResultsToFile(results, cli.OutputConfig{
		OutputFile:  a.Config.OutputFile,
		OutputRadix: a.Config.OutputRadix,
	})
	if err != nil {
		return err
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
	}
	return nil
}
