package ui

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
)

// Theme maps the roles used in result output to ANSI escape codes.
type Theme struct {
	Name string

	Primary   string // operation names, values
	Secondary string // labels
	Success   string
	Warning   string
	Error     string
	Info      string // timings, bit lengths
	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;45m",
		Secondary: "\033[38;5;247m",
		Success:   "\033[38;5;78m",
		Warning:   "\033[38;5;221m",
		Error:     "\033[38;5;203m",
		Info:      "\033[38;5;177m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme trades brightness for contrast on light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;25m",
		Secondary: "\033[38;5;241m",
		Success:   "\033[38;5;22m",
		Warning:   "\033[38;5;94m",
		Error:     "\033[38;5;160m",
		Info:      "\033[38;5;90m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme emits no escape codes at all.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames lists the selectable themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupTheme returns the theme registered under name, ignoring case.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(name)]
	return t, ok
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme registered under name.
func SetTheme(name string) error {
	t, ok := LookupTheme(name)
	if !ok {
		return fmt.Errorf("unknown theme %q; available: %s", name, strings.Join(ThemeNames(), ", "))
	}
	SetCurrentTheme(t)
	return nil
}

// InitTheme selects the theme for a run. Colors are disabled when noColor is
// true, when NO_COLOR is set (https://no-color.org/), or when out is not a
// terminal; otherwise the named theme is used, falling back to dark for an
// unknown or empty name. A nil out skips the terminal check.
func InitTheme(name string, noColor bool, out any) {
	t, ok := LookupTheme(name)
	if !ok {
		t = DarkTheme
	}
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		t = NoColorTheme
	}
	if out != nil && !IsTerminal(out) {
		t = NoColorTheme
	}
	SetCurrentTheme(t)
}
