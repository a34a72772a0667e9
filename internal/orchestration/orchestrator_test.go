package orchestration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/agbru/bigrsa/internal/bigint"
	apperrors "github.com/agbru/bigrsa/internal/errors"
	"github.com/agbru/bigrsa/internal/operation"
)

// mockPresenter records what it was asked to present.
type mockPresenter struct {
	table  []TaskResult
	single *TaskResult
}

func (m *mockPresenter) PresentResults(results []TaskResult, _ PresentationOptions, _ io.Writer) {
	m.table = results
}

func (m *mockPresenter) PresentResult(result TaskResult, _ PresentationOptions, _ io.Writer) {
	m.single = &result
}

func (m *mockPresenter) HandleError(err error, _ io.Writer) int {
	return apperrors.ExitCode(err)
}

// countingObserver counts observations per outcome.
type countingObserver struct {
	ok, failed atomic.Int32
}

func (c *countingObserver) ObserveOperation(_ string, _ time.Duration, err error) {
	if err != nil {
		c.failed.Add(1)
		return
	}
	c.ok.Add(1)
}

// recordingTracer remembers the names of the spans it starts.
type recordingTracer struct {
	noop.Tracer
	mu    sync.Mutex
	spans []string
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.mu.Lock()
	r.spans = append(r.spans, name)
	r.mu.Unlock()
	return r.Tracer.Start(ctx, name, opts...)
}

func testOptions() Options {
	return Options{Capacity: 8, InputRadix: 10, Parallelism: 4}
}

func TestExecuteTasks(t *testing.T) {
	t.Parallel()
	tasks := []Task{
		NewTask("modpow", "65", "17", "3233"),
		NewTask("modinv", "17", "3120"),
		NewTask("quo", "1", "0"),
		NewTask("pow", "2", "3"),
		NewTask("add", "1"),
		NewTask("add", "1", "x"),
		NewTask("gcd", "543", "12"),
	}
	obs := &countingObserver{}
	tracer := &recordingTracer{}
	opts := testOptions()
	opts.Observer = obs
	opts.Tracer = tracer

	var updates atomic.Int32
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, n int, _ io.Writer) {
		defer wg.Done()
		if n != len(tasks) {
			t.Errorf("reporter told %d tasks, want %d", n, len(tasks))
		}
		for range ch {
			updates.Add(1)
		}
	})

	results := ExecuteTasks(context.Background(), tasks, operation.GlobalFactory(), opts, reporter, io.Discard)

	if len(results) != len(tasks) {
		t.Fatalf("got %d results", len(results))
	}
	for i, res := range results {
		if res.Task.String() != tasks[i].String() {
			t.Errorf("result %d is for %q, want %q", i, res.Task, tasks[i])
		}
	}
	if got := results[0].Value.String(); got != "2790" {
		t.Errorf("modpow = %s, want 2790", got)
	}
	if got := results[1].Value.String(); got != "2753" {
		t.Errorf("modinv = %s, want 2753", got)
	}
	if got := results[6].Value.String(); got != "3" {
		t.Errorf("gcd = %s, want 3", got)
	}

	var calcErr apperrors.CalculationError
	if !errors.As(results[2].Err, &calcErr) || !errors.Is(results[2].Err, bigint.ErrDivideByZero) {
		t.Errorf("quo by zero error = %v", results[2].Err)
	}
	for _, i := range []int{3, 4, 5} {
		var ve apperrors.ValidationError
		if !errors.As(results[i].Err, &ve) {
			t.Errorf("task %q error = %v, want ValidationError", tasks[i], results[i].Err)
		}
	}

	if updates.Load() != int32(len(tasks)) {
		t.Errorf("got %d progress updates, want %d", updates.Load(), len(tasks))
	}
	if obs.ok.Load() != 3 || obs.failed.Load() != 4 {
		t.Errorf("observer saw %d ok / %d failed, want 3 / 4", obs.ok.Load(), obs.failed.Load())
	}
	if len(tracer.spans) != len(tasks) {
		t.Errorf("got %d spans, want %d", len(tracer.spans), len(tasks))
	}
}

func TestExecuteTasks_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := make([]Task, 20)
	for i := range tasks {
		tasks[i] = NewTask("inc", fmt.Sprint(i))
	}
	results := ExecuteTasks(ctx, tasks, operation.GlobalFactory(), testOptions(), NullProgressReporter{}, io.Discard)
	for i, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Fatalf("task %d error = %v, want context.Canceled", i, res.Err)
		}
	}
	if code := apperrors.ExitCode(results[0].Err); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d", code)
	}
}

func TestExecuteTasks_ManyTasksSmallLimit(t *testing.T) {
	t.Parallel()
	tasks := make([]Task, 500)
	for i := range tasks {
		tasks[i] = NewTask("mul", fmt.Sprint(i), fmt.Sprint(i))
	}
	opts := testOptions()
	opts.Parallelism = 2

	done := make(chan []TaskResult)
	go func() {
		done <- ExecuteTasks(context.Background(), tasks, operation.GlobalFactory(), opts, NullProgressReporter{}, io.Discard)
	}()

	select {
	case results := <-done:
		for i, res := range results {
			if res.Err != nil || res.Value.String() != fmt.Sprint(i*i) {
				t.Fatalf("task %d = %v, %v", i, res.Value, res.Err)
			}
		}
	case <-time.After(10 * time.Second):
		t.Fatal("ExecuteTasks did not finish")
	}
}

func TestRunTask_InputRadix(t *testing.T) {
	t.Parallel()
	opts := testOptions()
	opts.InputRadix = 16
	res := RunTask(context.Background(), NewTask("add", "ff", "1"), operation.GlobalFactory(), opts)
	if res.Err != nil || res.Value.String() != "256" {
		t.Errorf("add ff 1 = %v, %v", res.Value, res.Err)
	}
}

func TestRunTask_ExpiredContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	obs := &countingObserver{}
	opts := testOptions()
	opts.Observer = obs
	res := RunTask(ctx, NewTask("add", "1", "2"), operation.GlobalFactory(), opts)
	if !errors.Is(res.Err, context.DeadlineExceeded) || res.Value != nil {
		t.Fatalf("RunTask on an expired context = %v, %v", res.Value, res.Err)
	}
	if obs.ok.Load()+obs.failed.Load() != 0 {
		t.Error("a skipped task must not be observed")
	}
}

func TestMarkTimeouts(t *testing.T) {
	t.Parallel()
	one, _ := bigint.NewInt(1)
	results := []TaskResult{
		{Task: NewTask("inc", "0"), Value: one},
		{Task: NewTask("modpow", "3", "4", "7"), Err: context.DeadlineExceeded},
		{Task: NewTask("mul", "2", "2"), Err: context.Canceled},
		{Task: NewTask("quo", "1", "0"), Err: apperrors.CalculationError{Operation: "quo", Cause: bigint.ErrDivideByZero}},
	}
	MarkTimeouts(results, 30*time.Second)

	if results[0].Err != nil {
		t.Errorf("successful result gained error %v", results[0].Err)
	}
	var timeoutErr apperrors.TimeoutError
	if !errors.As(results[1].Err, &timeoutErr) || timeoutErr.Operation != "modpow" || timeoutErr.Limit != 30*time.Second {
		t.Errorf("deadline result error = %#v", results[1].Err)
	}
	if got := results[1].Err.Error(); got != `operation "modpow" timed out after 30s` {
		t.Errorf("timeout message = %q", got)
	}
	if code := apperrors.ExitCode(results[1].Err); code != apperrors.ExitErrorTimeout {
		t.Errorf("timeout exit code = %d", code)
	}
	if !errors.Is(results[2].Err, context.Canceled) {
		t.Errorf("cancellation rewritten to %v", results[2].Err)
	}
	if !errors.Is(results[3].Err, bigint.ErrDivideByZero) {
		t.Errorf("engine error rewritten to %v", results[3].Err)
	}
}

func TestAnalyzeResults(t *testing.T) {
	t.Parallel()
	one, _ := bigint.NewInt(1)
	ok := TaskResult{Task: NewTask("inc", "0"), Value: one}
	failed := TaskResult{Task: NewTask("quo", "1", "0"), Err: apperrors.CalculationError{Operation: "quo", Cause: bigint.ErrDivideByZero}}
	invalid := TaskResult{Task: NewTask("pow"), Err: apperrors.ValidationError{Field: "operation"}}

	t.Run("single success", func(t *testing.T) {
		t.Parallel()
		p := &mockPresenter{}
		if code := AnalyzeResults([]TaskResult{ok}, PresentationOptions{}, p, p, io.Discard); code != apperrors.ExitSuccess {
			t.Errorf("exit code = %d", code)
		}
		if p.single == nil || p.table != nil {
			t.Error("a single result should be presented on its own")
		}
	})

	t.Run("single failure", func(t *testing.T) {
		t.Parallel()
		p := &mockPresenter{}
		if code := AnalyzeResults([]TaskResult{failed}, PresentationOptions{}, p, p, io.Discard); code != apperrors.ExitErrorArithmetic {
			t.Errorf("exit code = %d", code)
		}
		if p.single != nil {
			t.Error("a failed result should not be presented")
		}
	})

	t.Run("batch", func(t *testing.T) {
		t.Parallel()
		p := &mockPresenter{}
		var out bytes.Buffer
		code := AnalyzeResults([]TaskResult{ok, invalid, failed}, PresentationOptions{}, p, p, &out)
		if code != apperrors.ExitErrorConfig {
			t.Errorf("exit code = %d, want the first failure's", code)
		}
		if len(p.table) != 3 {
			t.Errorf("table has %d rows", len(p.table))
		}
		if !bytes.Contains(out.Bytes(), []byte("2 of 3 tasks failed")) {
			t.Errorf("summary = %q", out.String())
		}
	})

	t.Run("batch success quiet", func(t *testing.T) {
		t.Parallel()
		p := &mockPresenter{}
		var out bytes.Buffer
		code := AnalyzeResults([]TaskResult{ok, ok}, PresentationOptions{Quiet: true}, p, p, &out)
		if code != apperrors.ExitSuccess || out.Len() != 0 {
			t.Errorf("exit code = %d, output %q", code, out.String())
		}
	})
}
