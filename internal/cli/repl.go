// Package cli provides the command-line presentation layer: result display,
// batch progress, result files and the interactive session.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigrsa/internal/bigint"
	"github.com/agbru/bigrsa/internal/format"
	"github.com/agbru/bigrsa/internal/operation"
	"github.com/agbru/bigrsa/internal/orchestration"
	"github.com/agbru/bigrsa/internal/ui"
)

// lastResult names the variable holding the most recent result.
const lastResult = "_"

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Capacity is the limb capacity operands are parsed at.
	Capacity int
	// InputRadix is the radix operands are typed in.
	InputRadix int
	// OutputRadix is the radix results are printed in.
	OutputRadix int
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// Verbose prints values in full and shows timings.
	Verbose bool
	// Observer receives one observation per evaluation. May be nil.
	Observer orchestration.Observer
}

// REPL is an interactive calculator session with named variables.
type REPL struct {
	config  REPLConfig
	factory operation.Factory
	vars    map[string]*bigint.Int
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a new REPL instance reading stdin and writing stdout.
func NewREPL(factory operation.Factory, config REPLConfig) *REPL {
	if config.Capacity == 0 {
		config.Capacity = bigint.DefaultCapacity
	}
	if config.InputRadix == 0 {
		config.InputRadix = 10
	}
	if config.OutputRadix == 0 {
		config.OutputRadix = 10
	}
	if config.Timeout == 0 {
		config.Timeout = time.Minute
	}
	return &REPL{
		config:  config,
		factory: factory,
		vars:    make(map[string]*bigint.Int),
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until "exit", end of input or cancellation of ctx.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"bigcalc> "+ui.ColorReset())
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out, "\nInterrupted. Goodbye!")
			return
		case input, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil && ctx.Err() == nil {
					fmt.Fprintf(r.out, "\n%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
				}
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			input = strings.TrimSpace(input)
			if input == "" || strings.HasPrefix(input, "#") {
				continue
			}
			if !r.processCommand(ctx, input) {
				return
			}
		}
	}
}

func (r *REPL) printBanner() {
	body := fmt.Sprintf("Capacity %d limbs (%d bits), radix %d in / %d out",
		r.config.Capacity, r.config.Capacity*32, r.config.InputRadix, r.config.OutputRadix)
	fmt.Fprintf(r.out, "\n%s\n\n", ui.Panel("bigcalc - interactive mode", body))
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <args...>%s         - Evaluate an operation (see %sops%s)\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slet <name> = <op> ...%s  - Evaluate and store the result\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s$<name>%s                - Use a stored value as an operand ($_ is the last result)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %svars%s                   - List stored values\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sops%s                    - List operations\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sradix <in> [out]%s       - Change input and output radix\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scapacity <limbs>%s       - Change the operand capacity\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %stheme <name>%s           - Switch the color theme (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(ui.ThemeNames(), ", "))
	fmt.Fprintf(r.out, "  %sstatus%s                 - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                   - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s            - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "let":
		r.cmdLet(ctx, args)
	case "vars":
		r.cmdVars()
	case "ops", "list":
		r.cmdOps()
	case "radix":
		r.cmdRadix(args)
	case "capacity":
		r.cmdCapacity(args)
	case "theme":
		r.cmdTheme(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if v, ok := r.evaluate(ctx, cmd, args); ok {
			r.printValue(v)
		}
	}
	return true
}

// evaluate runs one operation and stores its result in $_.
func (r *REPL) evaluate(ctx context.Context, op string, rawArgs []string) (*bigint.Int, bool) {
	if _, err := r.factory.Get(op); err != nil {
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), op, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		return nil, false
	}
	args, err := r.substitute(rawArgs)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()
	results := []orchestration.TaskResult{orchestration.RunTask(ctx, orchestration.NewTask(op, args...), r.factory, orchestration.Options{
		Capacity:   r.config.Capacity,
		InputRadix: r.config.InputRadix,
		Observer:   r.config.Observer,
	})}
	orchestration.MarkTimeouts(results, r.config.Timeout)
	res := results[0]
	if res.Err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
		return nil, false
	}
	if r.config.Verbose {
		fmt.Fprintf(r.out, "  (%s, %d bits)\n", format.FormatExecutionDuration(res.Duration), res.Value.BitLen())
	}
	r.vars[lastResult] = res.Value
	return res.Value, true
}

// substitute replaces $name operands by the stored value written in the
// input radix.
func (r *REPL) substitute(raw []string) ([]string, error) {
	out := make([]string, len(raw))
	for i, arg := range raw {
		name, isVar := strings.CutPrefix(arg, "$")
		if !isVar {
			out[i] = arg
			continue
		}
		v, ok := r.vars[name]
		if !ok {
			return nil, fmt.Errorf("undefined variable $%s", name)
		}
		text, err := v.Text(r.config.InputRadix)
		if err != nil {
			return nil, err
		}
		out[i] = text
	}
	return out, nil
}

func (r *REPL) printValue(v *bigint.Int) {
	s, err := FormatValue(v, r.config.OutputRadix, r.config.Verbose)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%s%s%s%s\n", ui.ColorGreen(), radixPrefix(r.config.OutputRadix), s, ui.ColorReset())
}

// cmdLet handles "let name = op args...".
func (r *REPL) cmdLet(ctx context.Context, args []string) {
	if len(args) < 3 || args[1] != "=" {
		fmt.Fprintf(r.out, "%sUsage: let <name> = <op> <args...>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	name := args[0]
	if !identifier.MatchString(name) || name == lastResult {
		fmt.Fprintf(r.out, "%sInvalid variable name: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		return
	}
	v, ok := r.evaluate(ctx, strings.ToLower(args[2]), args[3:])
	if !ok {
		return
	}
	r.vars[name] = v
	fmt.Fprintf(r.out, "%s = ", name)
	r.printValue(v)
}

func (r *REPL) cmdVars() {
	if len(r.vars) == 0 {
		fmt.Fprintln(r.out, "No variables defined.")
		return
	}
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s, _ := FormatValue(r.vars[name], r.config.OutputRadix, r.config.Verbose)
		fmt.Fprintf(r.out, "  %s$%-10s%s %s\n", ui.ColorYellow(), name, ui.ColorReset(), s)
	}
}

func (r *REPL) cmdOps() {
	fmt.Fprintf(r.out, "\n%sAvailable operations:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		op, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(r.out, "  %s%s%s\n", ui.ColorYellow(), op.Usage(), ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func parseRadix(s string) (int, error) {
	radix, err := strconv.Atoi(s)
	if err != nil || radix < bigint.MinRadix || radix > bigint.MaxRadix {
		return 0, fmt.Errorf("radix must be between %d and %d, got %q", bigint.MinRadix, bigint.MaxRadix, s)
	}
	return radix, nil
}

func (r *REPL) cmdRadix(args []string) {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintf(r.out, "%sUsage: radix <in> [out]%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	in, err := parseRadix(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	out := in
	if len(args) == 2 {
		if out, err = parseRadix(args[1]); err != nil {
			fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
	}
	r.config.InputRadix, r.config.OutputRadix = in, out
	fmt.Fprintf(r.out, "Radix changed to: %s%d%s in, %s%d%s out\n",
		ui.ColorGreen(), in, ui.ColorReset(), ui.ColorGreen(), out, ui.ColorReset())
}

func (r *REPL) cmdCapacity(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: capacity <limbs>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	c, err := strconv.Atoi(args[0])
	if err != nil || c < bigint.MinCapacity || c > bigint.MaxCapacity {
		fmt.Fprintf(r.out, "%scapacity must be between %d and %d limbs%s\n",
			ui.ColorRed(), bigint.MinCapacity, bigint.MaxCapacity, ui.ColorReset())
		return
	}
	r.config.Capacity = c
	fmt.Fprintf(r.out, "Capacity changed to: %s%d%s limbs (%d bits)\n", ui.ColorGreen(), c, ui.ColorReset(), c*32)
}

func (r *REPL) cmdTheme(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: theme <%s>%s\n", ui.ColorRed(), strings.Join(ui.ThemeNames(), "|"), ui.ColorReset())
		return
	}
	if err := ui.SetTheme(args[0]); err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Theme changed to: %s%s%s\n", ui.ColorGreen(), ui.GetCurrentTheme().Name, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Capacity:     %s%d%s limbs\n", ui.ColorCyan(), r.config.Capacity, ui.ColorReset())
	fmt.Fprintf(r.out, "  Input radix:  %s%d%s\n", ui.ColorCyan(), r.config.InputRadix, ui.ColorReset())
	fmt.Fprintf(r.out, "  Output radix: %s%d%s\n", ui.ColorCyan(), r.config.OutputRadix, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:      %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Theme:        %s%s%s\n", ui.ColorCyan(), ui.GetCurrentTheme().Name, ui.ColorReset())
	fmt.Fprintf(r.out, "  Variables:    %s%d%s\n", ui.ColorCyan(), len(r.vars), ui.ColorReset())
	fmt.Fprintln(r.out)
}
