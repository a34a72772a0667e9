// Package config parses the command line, environment and optional TOML file
// into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/agbru/bigrsa/internal/bigint"
	apperrors "github.com/agbru/bigrsa/internal/errors"
	"github.com/agbru/bigrsa/internal/logging"
	"github.com/agbru/bigrsa/internal/ui"
)

// EnvPrefix is the prefix of every environment variable read by the tool.
const EnvPrefix = "BIGCALC_"

// Default values for the configuration fields.
const (
	DefaultRadix     = 10
	DefaultTimeout   = 1 * time.Minute
	DefaultTheme     = "dark"
	DefaultLogFormat = logging.FormatConsole
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Op is the operation to run in single-shot mode (e.g. "modpow").
	Op string
	// Args are the operands of Op, written in InputRadix.
	Args []string
	// Capacity is the limb capacity of every value built by the run.
	Capacity int
	// InputRadix is the radix operands are parsed in.
	InputRadix int
	// OutputRadix is the radix results are printed in.
	OutputRadix int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Parallelism is the number of batch tasks run concurrently.
	Parallelism int
	// BatchFile holds one "op arg..." task per line; "-" reads stdin.
	BatchFile string
	// OutputFile receives the results; a ".msgpack" suffix selects the
	// binary encoding.
	OutputFile string
	// MetricsFile receives Prometheus text-format metrics after the run.
	MetricsFile string
	// ConfigFile is an optional TOML file with defaults for the flags above.
	ConfigFile string
	// Theme names the color theme; NoColor and non-terminal output win over it.
	Theme string
	// LogFormat selects the diagnostic log output written to stderr.
	LogFormat string

	Verbose     bool
	Quiet       bool
	NoColor     bool
	Interactive bool
	ShowVersion bool
}

// ParseConfig parses command-line arguments and applies, for every flag not
// given explicitly, the environment variable and then the config file value.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments without the program name.
//   - errorWriter: Destination of usage and parse errors.
//   - availableOps: Operation names accepted as the first positional argument.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableOps []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.IntVar(&config.Capacity, "capacity", bigint.DefaultCapacity, "Limb capacity (32-bit limbs) of every value.")
	fs.IntVar(&config.InputRadix, "radix", DefaultRadix, "Radix of operands (2-36).")
	fs.IntVar(&config.OutputRadix, "output-radix", DefaultRadix, "Radix of printed results (2-36).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum run time (e.g. 30s, 2m).")
	fs.IntVar(&config.Parallelism, "parallel", EstimateParallelism(), "Batch tasks run concurrently.")
	fs.IntVar(&config.Parallelism, "j", EstimateParallelism(), "Shorthand for --parallel.")
	fs.StringVar(&config.BatchFile, "batch", "", "Run the tasks listed in a file (\"-\" for stdin).")
	fs.StringVar(&config.OutputFile, "output", "", "Write results to a file (.msgpack for binary).")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to a file after the run.")
	fs.StringVar(&config.ConfigFile, "config", "", "TOML file with default settings.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Log task details.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print bare results only.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogFormat, "log-format", DefaultLogFormat, "Log output format ("+strings.Join(logging.Formats(), ", ")+").")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Color theme ("+strings.Join(ui.ThemeNames(), ", ")+").")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start an interactive session.")
	fs.BoolVar(&config.Interactive, "i", false, "Shorthand for --interactive.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit.")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] <op> [operands...]\n", programName)
		fmt.Fprintf(errorWriter, "       %s [flags] --batch <file>\n", programName)
		fmt.Fprintf(errorWriter, "       %s [flags] --interactive\n\n", programName)
		fmt.Fprintf(errorWriter, "Operations: %s\n\nFlags:\n", strings.Join(availableOps, ", "))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = os.Getenv(EnvPrefix + "CONFIG")
	}
	if config.ConfigFile != "" {
		fc, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		fc.apply(&config, fs)
	}
	applyEnvOverrides(&config, fs)

	if rest := fs.Args(); len(rest) > 0 {
		config.Op = strings.ToLower(rest[0])
		config.Args = rest[1:]
	}

	if err := config.Validate(availableOps); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic validity of the configuration.
//
// Parameters:
//   - availableOps: Operation names accepted for Op.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableOps []string) error {
	if c.ShowVersion {
		return nil
	}
	if c.Capacity < bigint.MinCapacity || c.Capacity > bigint.MaxCapacity {
		return apperrors.NewConfigError("capacity %d outside [%d, %d]", c.Capacity, bigint.MinCapacity, bigint.MaxCapacity)
	}
	for name, radix := range map[string]int{"radix": c.InputRadix, "output-radix": c.OutputRadix} {
		if radix < bigint.MinRadix || radix > bigint.MaxRadix {
			return apperrors.NewConfigError("--%s %d outside [%d, %d]", name, radix, bigint.MinRadix, bigint.MaxRadix)
		}
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if _, ok := ui.LookupTheme(c.Theme); !ok {
		return apperrors.NewConfigError("unknown theme %q; available: %s", c.Theme, strings.Join(ui.ThemeNames(), ", "))
	}
	if !slices.Contains(logging.Formats(), strings.ToLower(c.LogFormat)) {
		return apperrors.NewConfigError("unknown log format %q; available: %s", c.LogFormat, strings.Join(logging.Formats(), ", "))
	}
	if c.Parallelism < 1 {
		return apperrors.NewConfigError("parallelism must be at least 1, got %d", c.Parallelism)
	}

	modes := 0
	for _, set := range []bool{c.Op != "", c.BatchFile != "", c.Interactive} {
		if set {
			modes++
		}
	}
	switch {
	case modes == 0:
		return apperrors.NewConfigError("no operation given; pass an operation, --batch or --interactive")
	case modes > 1:
		return apperrors.NewConfigError("an operation, --batch and --interactive are mutually exclusive")
	}
	if c.Op != "" && !slices.Contains(availableOps, c.Op) {
		return apperrors.NewConfigError("unknown operation %q; available: %s", c.Op, strings.Join(availableOps, ", "))
	}
	return nil
}
