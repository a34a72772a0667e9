package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// panelBorders maps theme names to 256-color border codes.
var panelBorders = map[string]string{
	DarkTheme.Name:  "45",
	LightTheme.Name: "25",
}

// Panel renders body inside a rounded box with a bold title line. The border
// follows the active theme; NoColorTheme draws it in the default color.
func Panel(title, body string) string {
	theme := GetCurrentTheme()

	var border lipgloss.TerminalColor = lipgloss.NoColor{}
	if code, ok := panelBorders[theme.Name]; ok {
		border = lipgloss.Color(code)
	}

	content := body
	if title != "" {
		content = lipgloss.NewStyle().Bold(theme.Name != NoColorTheme.Name).Render(title) + "\n" + body
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(content)
}
