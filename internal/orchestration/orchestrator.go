package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigrsa/internal/bigint"
	apperrors "github.com/agbru/bigrsa/internal/errors"
	"github.com/agbru/bigrsa/internal/logging"
	"github.com/agbru/bigrsa/internal/operation"
)

const tracerName = "github.com/agbru/bigrsa/internal/orchestration"

// Options configures task execution.
type Options struct {
	// Capacity is the limb capacity operands are parsed at.
	Capacity int
	// InputRadix is the radix operands are written in.
	InputRadix int
	// Parallelism bounds the number of tasks running at once.
	Parallelism int
	// Logger receives per-task debug entries. Nil discards them.
	Logger logging.Logger
	// Observer receives per-task metrics. Nil disables them.
	Observer Observer
	// Tracer opens one span per task. Nil uses the global provider.
	Tracer trace.Tracer
}

func (o Options) withDefaults() Options {
	if o.Capacity == 0 {
		o.Capacity = bigint.DefaultCapacity
	}
	if o.InputRadix == 0 {
		o.InputRadix = 10
	}
	if o.Parallelism < 1 {
		o.Parallelism = 1
	}
	if o.Logger == nil {
		o.Logger = logging.NewNopLogger()
	}
	if o.Tracer == nil {
		o.Tracer = otel.Tracer(tracerName)
	}
	return o
}

// ExecuteTasks runs tasks concurrently, at most opts.Parallelism at a time.
//
// A failing task does not stop the others. Once ctx is done, tasks that have
// not started yet fail with the context error. Results keep the input order,
// and exactly one progress update is sent per task.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - tasks: The tasks to run.
//   - factory: Resolves operation names.
//   - opts: Execution options.
//   - reporter: Displays progress (use NullProgressReporter for quiet mode).
//   - out: The io.Writer progress is drawn on.
//
// Returns:
//   - []TaskResult: One result per task, in input order.
func ExecuteTasks(ctx context.Context, tasks []Task, factory operation.Factory, opts Options, reporter ProgressReporter, out io.Writer) []TaskResult {
	opts = opts.withDefaults()
	results := make([]TaskResult, len(tasks))
	progressChan := make(chan ProgressUpdate, len(tasks))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(tasks), out)

	var g errgroup.Group
	g.SetLimit(opts.Parallelism)
	for i, task := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = TaskResult{Task: task, Err: err}
			} else {
				results[i] = RunTask(ctx, task, factory, opts)
			}
			progressChan <- ProgressUpdate{TaskIndex: i, Failed: results[i].Err != nil}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	opts.Logger.Debug("batch finished", logging.Int("tasks", len(tasks)))
	return results
}

// RunTask evaluates a single task inside its own span.
//
// Unknown operations, wrong operand counts and malformed operands are reported
// as apperrors.ValidationError. Engine failures are wrapped in an
// apperrors.CalculationError so that callers can map them to exit codes while
// errors.Is still matches the bigint error kinds. A task whose context is
// already done is not evaluated and carries the context error.
func RunTask(ctx context.Context, task Task, factory operation.Factory, opts Options) TaskResult {
	opts = opts.withDefaults()
	if err := ctx.Err(); err != nil {
		opts.Logger.Debug("task skipped", logging.String("task", task.String()), logging.Err(err))
		return TaskResult{Task: task, Err: err}
	}
	_, span := opts.Tracer.Start(ctx, "bigcalc."+task.Op, trace.WithAttributes(
		attribute.String("bigcalc.op", task.Op),
		attribute.Int("bigcalc.line", task.Line),
		attribute.Int("bigcalc.capacity", opts.Capacity),
		attribute.Int("bigcalc.operands", len(task.Args)),
	))
	defer span.End()

	start := time.Now()
	value, err := evaluate(task, factory, opts)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		opts.Logger.Debug("task failed",
			logging.String("task", task.String()), logging.Int("line", task.Line), logging.Err(err))
	} else {
		span.SetAttributes(attribute.Int("bigcalc.result_bits", value.BitLen()))
		opts.Logger.Debug("task done",
			logging.String("op", task.Op), logging.Duration("duration", duration), logging.Int("bits", value.BitLen()))
	}
	if opts.Observer != nil {
		opts.Observer.ObserveOperation(task.Op, duration, err)
	}
	return TaskResult{Task: task, Value: value, Duration: duration, Err: err}
}

func evaluate(task Task, factory operation.Factory, opts Options) (*bigint.Int, error) {
	op, err := factory.Get(task.Op)
	if err != nil {
		return nil, apperrors.ValidationError{Field: "operation", Message: fmt.Sprintf("unknown operation %q", task.Op), Cause: err}
	}
	if err := operation.CheckArity(op, len(task.Args)); err != nil {
		return nil, err
	}
	args, err := operation.ParseArgs(task.Args, opts.InputRadix, opts.Capacity)
	if err != nil {
		return nil, err
	}
	value, err := op.Apply(args)
	if err != nil {
		var validationErr apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}
		return nil, apperrors.CalculationError{Operation: task.Op, Cause: err}
	}
	return value, nil
}

// MarkTimeouts replaces the deadline errors of results with an
// apperrors.TimeoutError naming the task's operation and the limit that was
// hit. Cancellations are left as they are.
func MarkTimeouts(results []TaskResult, limit time.Duration) {
	for i, res := range results {
		if !apperrors.IsContextError(res.Err) || errors.Is(res.Err, context.Canceled) {
			continue
		}
		results[i].Err = apperrors.TimeoutError{Operation: res.Task.Op, Limit: limit}
	}
}

// AnalyzeResults presents results and returns the process exit code.
//
// A single result is presented on its own; several results are presented as
// a table. The exit code is that of the first failed task in input order, or
// apperrors.ExitSuccess when every task succeeded.
func AnalyzeResults(results []TaskResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	if len(results) == 1 {
		if results[0].Err != nil {
			return handler.HandleError(results[0].Err, out)
		}
		presenter.PresentResult(results[0], opts, out)
		return apperrors.ExitSuccess
	}

	presenter.PresentResults(results, opts, out)

	failed := 0
	var firstErr error
	for _, res := range results {
		if res.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = res.Err
			}
		}
	}
	if failed == 0 {
		if !opts.Quiet {
			fmt.Fprintf(out, "\nAll %d tasks succeeded.\n", len(results))
		}
		return apperrors.ExitSuccess
	}
	if !opts.Quiet {
		fmt.Fprintf(out, "\n%d of %d tasks failed.\n", failed, len(results))
	}
	return handler.HandleError(firstErr, out)
}
