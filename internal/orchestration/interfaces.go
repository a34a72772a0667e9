package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bigrsa/internal/bigint"
)

// TaskResult encapsulates the outcome of a single task.
// It is the shared domain type between orchestration and presentation layers.
type TaskResult struct {
	// Task is the task that was run.
	Task Task
	// Value is the operation result. It is nil if an error occurred.
	Value *bigint.Int
	// Duration is the time spent evaluating the task.
	Duration time.Duration
	// Err contains any error that occurred while running the task.
	Err error
}

// ProgressUpdate is sent once for every finished task.
type ProgressUpdate struct {
	// TaskIndex is the position of the task in the input.
	TaskIndex int
	// Failed is true when the task returned an error.
	Failed bool
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	OutputRadix int
	Verbose     bool
	Quiet       bool
}

// ProgressReporter displays task progress.
// This interface decouples the orchestration layer from the presentation
// layer; implementations draw spinners or progress bars while the
// orchestration layer focuses on coordinating tasks.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer) {
	f(wg, progressChan, numTasks, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. It is used in quiet mode and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ResultPresenter presents task results.
type ResultPresenter interface {
	// PresentResults displays a table of every result, in input order.
	PresentResults(results []TaskResult, opts PresentationOptions, out io.Writer)
	// PresentResult displays a single result.
	PresentResult(result TaskResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler reports an error and returns the matching exit code.
type ErrorHandler interface {
	HandleError(err error, out io.Writer) int
}

// Observer receives one observation per finished task.
type Observer interface {
	ObserveOperation(op string, d time.Duration, err error)
}
