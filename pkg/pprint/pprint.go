// Package pprint provides styled terminal output for the tarsnap-prune CLI:
// status lines, key-value pairs, tables, and a spinner for the slow
// archive-listing round trip.
package pprint

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ─────────────────────────────────────────────────────────────────────────────
// Colour palette
// ─────────────────────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.Color("#8CB4DE") // Glacier blue
	ColorAccent  = lipgloss.Color("#56E0A0") // Mint
	ColorSuccess = lipgloss.Color("#48BB78") // Green
	ColorWarning = lipgloss.Color("#F6AD55") // Amber
	ColorError   = lipgloss.Color("#FC8181") // Red
	ColorMuted   = lipgloss.Color("#4A5568") // Grey
	ColorText    = lipgloss.Color("#E2E8F0") // Off-white
)

// ─────────────────────────────────────────────────────────────────────────────
// Styles
// ─────────────────────────────────────────────────────────────────────────────

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleAccent  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Width(14)
)

// ─────────────────────────────────────────────────────────────────────────────
// Simple output helpers
// ─────────────────────────────────────────────────────────────────────────────

// Success prints a green ✓ success line.
func Success(format string, args ...any) {
	fmt.Println(StyleSuccess.Render("✓ ") + StyleText.Render(fmt.Sprintf(format, args...)))
}

// Warn prints an amber ⚠ warning line.
func Warn(format string, args ...any) {
	fmt.Println(StyleWarning.Render("⚠ ") + StyleText.Render(fmt.Sprintf(format, args...)))
}

// Error prints a red ✗ error line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, StyleError.Render("✗ ")+StyleText.Render(fmt.Sprintf(format, args...)))
}

// Info prints a dimmed info line.
func Info(format string, args ...any) {
	fmt.Println(StyleMuted.Render("  " + fmt.Sprintf(format, args...)))
}

// Header prints a section header.
func Header(title string) {
	bar := strings.Repeat("─", 60)
	fmt.Println()
	fmt.Println(StylePrimary.Render(bar))
	fmt.Println(StylePrimary.Render(" ◉ " + strings.ToUpper(title)))
	fmt.Println(StylePrimary.Render(bar))
}

// KV prints a labelled key-value pair.
func KV(key, value string) {
	fmt.Println(StyleLabel.Render(key) + StyleText.Render(value))
}

// ─────────────────────────────────────────────────────────────────────────────
// Table
// ─────────────────────────────────────────────────────────────────────────────

// Table renders a simple terminal table with coloured headers.
type Table struct {
	headers []string
	rows    [][]string
	out     io.Writer
}

// NewTable creates a new Table writing to stdout.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, out: os.Stdout}
}

// AddRow appends a data row to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render prints the table.
func (t *Table) Render() {
	// Calculate column widths
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Header
	fmt.Fprintln(t.out)
	header := ""
	for i, h := range t.headers {
		header += fmt.Sprintf("%-*s", widths[i]+2, h)
	}
	fmt.Fprintln(t.out, StylePrimary.Render(header))

	sep := ""
	for _, w := range widths {
		sep += strings.Repeat("─", w+2)
	}
	fmt.Fprintln(t.out, StyleMuted.Render(sep))

	// Rows
	for _, row := range t.rows {
		line := ""
		for i, cell := range row {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			line += fmt.Sprintf("%-*s", w+2, cell)
		}
		fmt.Fprintln(t.out, StyleText.Render(line))
	}
	fmt.Fprintln(t.out)
}

// ─────────────────────────────────────────────────────────────────────────────
// Spinner
// ─────────────────────────────────────────────────────────────────────────────

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a non-blocking terminal spinner. Frames go to stderr, never
// stdout, and only when stderr is a terminal, so piped output stays clean.
type Spinner struct {
	label  string
	out    io.Writer
	done   chan struct{}
	mu     sync.Mutex
	active bool
}

// NewSpinner creates a Spinner with the given label.
func NewSpinner(label string) *Spinner {
	return &Spinner{label: label, out: os.Stderr, done: make(chan struct{})}
}

// Start begins the spinner animation in a goroutine. No-op when the output
// is not a terminal.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !isTerminal(s.out) {
		return
	}
	s.active = true

	go func() {
		i := 0
		for {
			select {
			case <-s.done:
				return
			case <-time.After(80 * time.Millisecond):
				s.mu.Lock()
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(s.out, "\r%s %s ", StylePrimary.Render(frame), StyleText.Render(s.label))
				i++
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the spinner and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	close(s.done)
	s.active = false
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.label)+3))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
