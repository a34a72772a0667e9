// Package app wires configuration, operations, orchestration and the CLI
// into the bigcalc application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/bigrsa/internal/cli"
	"github.com/agbru/bigrsa/internal/config"
	apperrors "github.com/agbru/bigrsa/internal/errors"
	"github.com/agbru/bigrsa/internal/logging"
	"github.com/agbru/bigrsa/internal/metrics"
	"github.com/agbru/bigrsa/internal/operation"
	"github.com/agbru/bigrsa/internal/orchestration"
	"github.com/agbru/bigrsa/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   operation.Factory
	ErrWriter io.Writer
	// In feeds the interactive session and "--batch -". Defaults to os.Stdin.
	In io.Reader

	logger  logging.Logger
	metrics *metrics.Recorder
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom operation factory.
func WithFactory(f operation.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader the interactive session reads from.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = operation.GlobalFactory()
	}

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.Theme, a.Config.NoColor, out)
	logger, err := logging.New(a.Config.LogFormat, a.ErrWriter, "bigcalc", a.Config.Verbose)
	if err != nil {
		logger = logging.NewConsoleLogger(a.ErrWriter, "bigcalc", a.Config.Verbose)
	}
	a.logger = logger
	if a.Config.MetricsFile != "" {
		a.metrics = metrics.NewRecorder()
	}
	a.logger.Debug("configuration loaded",
		logging.Int("capacity", a.Config.Capacity),
		logging.Int("radix", a.Config.InputRadix),
		logging.Int("parallel", a.Config.Parallelism),
		logging.Duration("timeout", a.Config.Timeout))

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var code int
	switch {
	case a.Config.Interactive:
		code = a.runREPL(ctx, out)
	case a.Config.BatchFile != "":
		code = a.runBatch(ctx, out)
	default:
		code = a.runSingle(ctx, out)
	}

	a.flushMetrics()
	return code
}

// flushMetrics writes the metrics text file when one was requested.
func (a *Application) flushMetrics() {
	if a.metrics == nil {
		return
	}
	a.metrics.ObserveMemory(metrics.NewMemoryCollector().Snapshot())
	if err := a.metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.logger.Error("cannot write metrics file", err, logging.String("path", a.Config.MetricsFile))
		return
	}
	a.logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
}

// runREPL starts the interactive session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		Capacity:    a.Config.Capacity,
		InputRadix:  a.Config.InputRadix,
		OutputRadix: a.Config.OutputRadix,
		Timeout:     a.Config.Timeout,
		Verbose:     a.Config.Verbose,
		Observer:    a.observer(),
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// observer returns the metrics recorder as an Observer, or nil. A nil
// *metrics.Recorder must not leak into the interface.
func (a *Application) observer() orchestration.Observer {
	if a.metrics == nil {
		return nil
	}
	return a.metrics
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeFor maps an error returned by New to an exit code, printing it
// unless it is a help request.
func ExitCodeFor(err error, errWriter io.Writer) int {
	if IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(errWriter, "Error: %v\n", err)
	return apperrors.ExitCode(err)
}
