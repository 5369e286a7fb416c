package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// Output handles styled terminal output.
type Output struct {
	Out io.Writer
	Err io.Writer

	noColor bool
	debug   bool
}

// NewOutput creates an Output writing to stdout and stderr.
func NewOutput() *Output {
	return &Output{Out: os.Stdout, Err: os.Stderr}
}

// NewBufferedOutput creates an uncolored Output over the given writers.
func NewBufferedOutput(out, err io.Writer) *Output {
	return &Output{Out: out, Err: err, noColor: true}
}

// SetNoColor disables colored output.
func (o *Output) SetNoColor(v bool) {
	o.noColor = v
}

// SetDebug enables Debug lines.
func (o *Output) SetDebug(v bool) {
	o.debug = v
}

// DebugEnabled reports whether Debug lines are printed.
func (o *Output) DebugEnabled() bool {
	return o.debug
}

func (o *Output) mark(style lipgloss.Style, plain, symbol string) string {
	if o.noColor {
		return plain
	}
	return style.Render(symbol)
}

// Success prints a success message with a green checkmark.
func (o *Output) Success(format string, args ...any) {
	fmt.Fprintf(o.Out, "%s %s\n", o.mark(successStyle, "OK", "✓"), fmt.Sprintf(format, args...))
}

// Error prints an error message with a red X.
func (o *Output) Error(format string, args ...any) {
	fmt.Fprintf(o.Err, "%s %s\n", o.mark(errorStyle, "FAIL", "✗"), fmt.Sprintf(format, args...))
}

// Warning prints a warning message with a yellow exclamation.
func (o *Output) Warning(format string, args ...any) {
	fmt.Fprintf(o.Err, "%s %s\n", o.mark(warningStyle, "WARN", "!"), fmt.Sprintf(format, args...))
}

// Info prints an informational message.
func (o *Output) Info(format string, args ...any) {
	fmt.Fprintf(o.Out, format+"\n", args...)
}

// Println prints a line to stdout.
func (o *Output) Println(format string, args ...any) {
	fmt.Fprintf(o.Out, format+"\n", args...)
}

// Debug prints a debug message to stderr when debug output is enabled.
func (o *Output) Debug(format string, args ...any) {
	if !o.debug {
		return
	}
	fmt.Fprintf(o.Err, "%s %s\n", o.mark(debugStyle, "DEBUG", "[debug]"), fmt.Sprintf(format, args...))
}

// Table prints a simple aligned table.
func (o *Output) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var header strings.Builder
	for i, h := range headers {
		fmt.Fprintf(&header, "%-*s  ", widths[i], h)
	}
	line := strings.TrimRight(header.String(), " ")
	if !o.noColor {
		line = headerStyle.Render(line)
	}
	fmt.Fprintln(o.Out, line)

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	fmt.Fprintln(o.Out, strings.Join(seps, "  "))

	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(o.Out, strings.TrimRight(b.String(), " "))
	}
}
