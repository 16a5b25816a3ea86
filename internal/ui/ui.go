package ui

import (
	"fmt"
	"io"

	"github.com/mattn/go-isatty"
)

// ANSI color/style codes
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	cyan   = "\033[36m"
	green  = "\033[32m"
	yellow = "\033[33m"
	red    = "\033[31m"
)

// Printer writes human-readable diagnostics. Debug output is shown only when
// verbose is set; warnings and errors are always shown.
type Printer struct {
	w       io.Writer
	verbose bool
	color   bool
}

// New returns a Printer writing to w. Colour is used only when w is a terminal.
func New(w io.Writer, verbose bool) *Printer {
	return &Printer{w: w, verbose: verbose, color: isTTY(w)}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// s wraps text with ANSI codes only when writing to a TTY.
func (p *Printer) s(codes, text string) string {
	if !p.color {
		return text
	}
	return codes + text + reset
}

// Debug prints a trace line:  · message
func (p *Printer) Debug(format string, a ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.s(dim+cyan, "·"), p.s(dim, fmt.Sprintf(format, a...)))
}

// Success prints a success line when verbose:  ✔ message
func (p *Printer) Success(format string, a ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.s(green, "✔"), fmt.Sprintf(format, a...))
}

// Warn prints a warning line:  ▲ message
func (p *Printer) Warn(format string, a ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.s(yellow, "▲"), fmt.Sprintf(format, a...))
}

// Error prints an error line:  ✖ message
func (p *Printer) Error(format string, a ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.s(bold+red, "✖"), fmt.Sprintf(format, a...))
}
