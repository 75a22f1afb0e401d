// Package output provides formatted output utilities for the CLI.
//
// Writer is also the diagnostics sink of the generation pipeline: it
// satisfies generator.Logger, and batch runs share one Writer across
// goroutines, so every write is serialized.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Writer handles CLI output formatting.
type Writer struct {
	mu      sync.Mutex
	out     io.Writer
	err     io.Writer
	color   bool
	quiet   bool
	verbose bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.quiet = quiet
}

// SetVerbose enables or disables debug messages.
func (w *Writer) SetVerbose(verbose bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.verbose = verbose
}

func (w *Writer) isQuiet() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.quiet
}

func (w *Writer) isVerbose() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.verbose
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...any) {
	w.Print(format+"\n", args...)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...any) {
	w.Error(format+"\n", args...)
}

// Raw writes s to stdout unformatted.
func (w *Writer) Raw(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	io.WriteString(w.out, s)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...any) {
	if w.isQuiet() {
		return
	}
	w.Println(format, args...)
}

// Debug prints a diagnostic message to stderr when verbose mode is on.
func (w *Writer) Debug(format string, args ...any) {
	if !w.isVerbose() {
		return
	}
	if w.color {
		w.Errorln(dim+"debug: "+format+reset, args...)
	} else {
		w.Errorln("debug: "+format, args...)
	}
}

// Success prints a success message.
func (w *Writer) Success(format string, args ...any) {
	if w.color {
		w.Println(green+format+reset, args...)
	} else {
		w.Println(format, args...)
	}
}

// Warning prints a warning message.
func (w *Writer) Warning(format string, args ...any) {
	if w.color {
		w.Errorln(yellow+"warning: "+format+reset, args...)
	} else {
		w.Errorln("warning: "+format, args...)
	}
}

// ErrorPrefix prints an error message with hypogen prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%shypogen:%s %s", red, reset, msg)
	} else {
		w.Errorln("hypogen: %s", msg)
	}
}

// RunStart prints the start of a named generation run.
func (w *Writer) RunStart(name string) {
	if w.isQuiet() {
		return
	}
	label := fmt.Sprintf("─── [%s] generate ───", name)
	if w.color {
		w.Println("%s%s%s", bold+cyan, label, reset)
	} else {
		w.Println("%s", label)
	}
}

// RunSuccess prints a finished run and the file it wrote.
func (w *Writer) RunSuccess(name, path string) {
	if w.isQuiet() {
		return
	}
	if w.color {
		w.Println("%s[%s]%s %s %s✓%s", green, name, reset, path, green, reset)
	} else {
		w.Println("[%s] %s done", name, path)
	}
}

// RunFailed prints a failed run.
func (w *Writer) RunFailed(name string, err error) {
	if w.color {
		w.Errorln("%s[%s] failed:%s %v", red, name, reset, err)
	} else {
		w.Errorln("[%s] failed: %v", name, err)
	}
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	if w.isQuiet() {
		return
	}
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
}

// List prints a list of items.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// Table prints a simple table.
func (w *Writer) Table(headers []string, rows [][]string) {
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

	line := func(cells []string) string {
		parts := make([]string, 0, len(widths))
		for i, cell := range cells {
			if i < len(widths) {
				parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	w.Println("%s", line(headers))
	seps := make([]string, len(widths))
	for i, width := range widths {
		seps[i] = strings.Repeat("-", width)
	}
	w.Println("%s", line(seps))
	for _, row := range rows {
		w.Println("%s", line(row))
	}
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	if fi, _ := os.Stdout.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// Semantic color roles for help output.
const (
	colorTitle       = bold + cyan
	colorSection     = bold + yellow
	colorCommand     = bold + cyan
	colorPlaceholder = green
	colorFlag        = yellow
	colorDescription = dim
	colorExample     = cyan
	colorEnvVar      = yellow
)

// HelpTitle formats the main help title line.
func (w *Writer) HelpTitle(title string) {
	if w.color {
		w.Println("%s%s%s", colorTitle, title, reset)
	} else {
		w.Println("%s", title)
	}
}

// HelpSection formats a section header (e.g., "Commands:").
func (w *Writer) HelpSection(title string) {
	w.Println("")
	if w.color {
		w.Println("%s%s%s", colorSection, title, reset)
	} else {
		w.Println("%s", title)
	}
}

// HelpCommand formats a command with its description.
func (w *Writer) HelpCommand(name, description string, width int) {
	w.helpEntry(colorCommand, name, description, width)
}

// HelpFlag formats a flag with its description.
func (w *Writer) HelpFlag(name, description string, width int) {
	w.helpEntry(colorFlag, name, description, width)
}

// HelpEnvVar formats an environment variable.
func (w *Writer) HelpEnvVar(name, description string, width int) {
	w.helpEntry(colorEnvVar, name, description, width)
}

func (w *Writer) helpEntry(color, name, description string, width int) {
	if !w.color {
		w.Println("  %-*s  %s", width, name, description)
		return
	}
	padding := width - len(name)
	if padding < 0 {
		padding = 0
	}
	w.Println("  %s%s%s%s  %s%s%s", color, w.colorPlaceholders(name, color), reset,
		strings.Repeat(" ", padding), colorDescription, description, reset)
}

// HelpExample formats an example command with description.
func (w *Writer) HelpExample(command, description string) {
	if w.color {
		w.Println("  %s%s%s", colorExample, command, reset)
		if description != "" {
			w.Println("      %s%s%s", colorDescription, description, reset)
		}
		return
	}
	w.Println("  %s", command)
	if description != "" {
		w.Println("      %s", description)
	}
}

// HelpUsage formats usage lines.
func (w *Writer) HelpUsage(usage string) {
	if w.color {
		w.Println("  %s", w.colorPlaceholders(usage, ""))
	} else {
		w.Println("  %s", usage)
	}
}

// colorPlaceholders highlights <placeholder> tokens, restoring base afterwards.
func (w *Writer) colorPlaceholders(s, base string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '<')
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start:], '>')
		if end < 0 {
			break
		}
		end += start
		b.WriteString(s[:start])
		b.WriteString(colorPlaceholder + s[start:end+1] + reset + base)
		s = s[end+1:]
	}
	b.WriteString(s)
	return b.String()
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold+cyan, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s", dim, label, reset, value)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryPassed prints a passed items summary.
func (w *Writer) SummaryPassed(label, value string) {
	w.summaryColored(green, label, value)
}

// SummaryFailed prints a failed items summary.
func (w *Writer) SummaryFailed(label, value string) {
	w.summaryColored(red, label, value)
}

func (w *Writer) summaryColored(color, label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, color, value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}
