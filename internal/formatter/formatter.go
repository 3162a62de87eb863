// Package formatter renders spreadsheet rows for the terminal: an aligned,
// optionally coloured table, or delimited text.
package formatter

import (
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Table styles, as ANSI 256 colour codes. Keys are the modifier and key
// columns; values are the menu path.
var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Background(lipgloss.Color("236"))
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// termGetSize is swapped in tests.
var termGetSize = term.GetSize

// TerminalWidth returns the width of stdout, or 120 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := termGetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}

// StdoutIsTerminal reports whether stdout is attached to a terminal.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// displayWidth is the number of terminal cells s occupies. Full-width
// (CJK) characters count as two.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if displayWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width, "…")
}

// padRight left-aligns s within width, padding with spaces.
func padRight(s string, width int) string {
	w := displayWidth(s)
	if w >= width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// sanitizeCell keeps table rows on one line.
func sanitizeCell(s string) string {
	if !strings.ContainsAny(s, "\t\r\n") {
		return s
	}
	return strings.NewReplacer("\t", " ", "\r", "", "\n", "\\n").Replace(s)
}
