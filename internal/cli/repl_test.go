package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigrsa/internal/operation"
	"github.com/agbru/bigrsa/internal/ui"
)

func runREPL(t *testing.T, cfg REPLConfig, input string) string {
	t.Helper()
	r := NewREPL(operation.GlobalFactory(), cfg)
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	r.Start(context.Background())
	return out.String()
}

func TestREPL_Session(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(ui.DarkTheme) })

	input := strings.Join([]string{
		"let p = inc 60",
		"let q = add 50 3",
		"let n = mul $p $q",
		"let phi = mul 60 52",
		"let d = modinv 17 $phi",
		"modpow 65 17 $n",
		"let m = modpow $_ $d $n",
		"vars",
		"quo 1 0",
		"frobnicate 1",
		"mul $missing 2",
		"let 9x = inc 1",
		"exit",
		"inc 1",
	}, "\n")
	out := runREPL(t, REPLConfig{Capacity: 8}, input)

	for _, want := range []string{
		"bigcalc - interactive mode",
		"n = 3233",
		"d = 2753",
		"> 2790\n",
		"m = 65",
		"$phi",
		"division by zero",
		"Unknown command: frobnicate",
		"undefined variable $missing",
		"Invalid variable name: 9x",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("session output does not contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "> 2\n") {
		t.Error("commands after exit should not run")
	}
}

func TestREPL_RadixAndCapacity(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(ui.DarkTheme) })

	input := strings.Join([]string{
		"radix 16",
		"add ff 1",
		"radix 10 2",
		"shl 1 5",
		"radix 40",
		"capacity 2",
		"shl 1 64",
		"capacity 1",
		"status",
	}, "\n")
	out := runREPL(t, REPLConfig{}, input)

	for _, want := range []string{
		"0x100",
		"0b100000",
		"radix must be between 2 and 36",
		"Capacity changed to: 2 limbs (64 bits)",
		"overflow",
		"capacity must be between",
		"Capacity:     2 limbs",
		"Output radix: 2",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("session output does not contain %q:\n%s", want, out)
		}
	}
}

func TestREPL_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	r := NewREPL(operation.GlobalFactory(), REPLConfig{})
	var out bytes.Buffer
	pr, pw := io.Pipe()
	defer pw.Close()
	r.SetInput(pr)
	r.SetOutput(&out)

	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("REPL did not stop after cancellation")
	}
}

func TestREPL_EvaluateHonorsDeadline(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(ui.DarkTheme) })

	r := NewREPL(operation.GlobalFactory(), REPLConfig{Capacity: 8, InputRadix: 10, OutputRadix: 10, Timeout: 5 * time.Second})
	var out bytes.Buffer
	r.SetOutput(&out)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	if v, ok := r.evaluate(ctx, "add", []string{"1", "2"}); ok {
		t.Fatalf("evaluate on an expired context returned %v", v)
	}
	if !strings.Contains(out.String(), `operation "add" timed out after 5s`) {
		t.Errorf("output = %q", out.String())
	}
	if _, stored := r.vars[lastResult]; stored {
		t.Error("a timed-out evaluation must not set $_")
	}
}

func TestREPL_ThemeCommand(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(ui.DarkTheme) })

	out := runREPL(t, REPLConfig{Capacity: 8}, "theme orange\ntheme\ntheme none\nstatus\nexit\n")
	for _, want := range []string{
		`unknown theme "orange"; available: dark, light, none`,
		"Usage: theme <dark|light|none>",
		"Theme changed to: none",
		"Theme:        none",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
