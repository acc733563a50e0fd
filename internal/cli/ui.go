package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary: titles, cursor, spinner
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // failed blocks
	colorBlue   = lipgloss.Color("75")  // directories, commands
	colorWhite  = lipgloss.Color("255") // file names, values
	colorGray   = lipgloss.Color("245") // labels, table headers
	colorDim    = lipgloss.Color("240") // guides, help, details
)

var (
	// StyleTitle renders outline and section titles.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight renders addresses and other values worth spotting.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders setting values and written paths.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleOK       = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn     = lipgloss.NewStyle().Foreground(colorYellow)
	styleNote     = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(16)
	styleFresh    = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinning = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	separator   = " · "
)

// =============================================================================
// Printer
// =============================================================================

// printer writes styled status lines. A nil writer discards them.
type printer struct {
	w io.Writer
}

// ui returns a printer for the CLI's status stream.
func (c *CLI) ui() printer {
	return printer{w: c.status}
}

func (p printer) line(s string) {
	if p.w == nil {
		return
	}
	fmt.Fprintln(p.w, s)
}

func (p printer) success(format string, args ...any) {
	p.line(styleOK.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	p.line(styleWarn.Render(iconWarning) + " " + styleWarn.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.line(styleNote.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented secondary line.
func (p printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file reports a written output path.
func (p printer) file(path string) {
	p.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// stats prints node and directory counts and whether the result was cached.
func (p printer) stats(nodeCount, dirCount int, cached bool) {
	status := styleFresh.Render("fresh")
	if cached {
		status = styleOK.Render("cached")
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)),
		StyleDim.Render(fmt.Sprintf("%d directories", dirCount)),
		status,
	}
	p.line("  " + strings.Join(parts, StyleDim.Render(separator)))
}

// nextStep suggests a command to run next.
func (p printer) nextStep(description, cmd string) {
	p.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
