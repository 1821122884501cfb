// Package output provides styled terminal rendering helpers for pkginfo.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and package names.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for written markers and passing checks.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for missing markers and failures.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for dry-run notices.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for paths and rules.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	StyleHeader  lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style
)

func init() {
	applyStyles(false)
}

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	applyStyles(disabled)
}

// isNoColor returns whether the package-level styles are unstyled.
func isNoColor() bool {
	return noColor
}

// terminalCheck is swapped out by tests.
var terminalCheck = IsTerminal

// ConfigureColor sets the package-level styles, used for stdout, and turns
// color off when it is not wanted or when w is not a terminal.
func ConfigureColor(w io.Writer, wanted bool) {
	SetNoColor(!wanted || !terminalCheck(w))
}

// Styles is a style set bound to one output stream, for text that does not
// go to stdout.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style

	plain bool
}

// StylesFor returns styles rendering for w. They carry color only when
// wanted and w is a terminal, independently of the package-level styles.
func StylesFor(w io.Writer, wanted bool) Styles {
	plain := !wanted || !terminalCheck(w)
	r := lipgloss.NewRenderer(w)
	if plain {
		p := r.NewStyle()
		return Styles{Success: p, Error: p, Warning: p, Muted: p, Bold: p, plain: true}
	}
	return Styles{
		Success: r.NewStyle().Foreground(ColorSuccess),
		Error:   r.NewStyle().Foreground(ColorError),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Muted:   r.NewStyle().Foreground(ColorMuted),
		Bold:    r.NewStyle().Bold(true),
	}
}

// Plain reports whether s renders without color.
func (s Styles) Plain() bool {
	return s.plain
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func applyStyles(plain bool) {
	if plain {
		p := lipgloss.NewStyle()
		StyleHeader = p
		StyleSuccess = p
		StyleError = p
		StyleWarning = p
		StyleMuted = p
		StyleBold = p
		return
	}
	StyleHeader = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	StyleSuccess = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	StyleError = lipgloss.NewStyle().
		Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().
		Foreground(ColorWarning)
	StyleMuted = lipgloss.NewStyle().
		Foreground(ColorMuted)
	StyleBold = lipgloss.NewStyle().
		Bold(true)
}
