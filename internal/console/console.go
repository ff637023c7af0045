// Package console prints user-facing status lines.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes coloured status lines. Colour is only used when the writer
// is a terminal and fatih/color has not been disabled globally (NO_COLOR).
type Printer struct {
	out     io.Writer
	success *color.Color
	info    *color.Color
	warn    *color.Color
	err     *color.Color
}

// NewPrinter creates a Printer for out.
func NewPrinter(out io.Writer) *Printer {
	return newPrinter(out, IsTerminal(out))
}

func newPrinter(out io.Writer, terminal bool) *Printer {
	p := &Printer{
		out:     out,
		success: color.New(color.FgGreen),
		info:    color.New(),
		warn:    color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
	}

	if !terminal {
		for _, c := range []*color.Color{p.success, p.info, p.warn, p.err} {
			c.DisableColor()
		}
	}

	return p
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Success prints a completed step.
func (p *Printer) Success(format string, args ...any) {
	p.line(p.success, format, args...)
}

// Info prints a neutral message.
func (p *Printer) Info(format string, args ...any) {
	p.line(p.info, format, args...)
}

// Warn prints a skipped or substituted step.
func (p *Printer) Warn(format string, args ...any) {
	p.line(p.warn, format, args...)
}

// Error prints a handled failure.
func (p *Printer) Error(format string, args ...any) {
	p.line(p.err, "Error: "+format, args...)
}

func (p *Printer) line(c *color.Color, format string, args ...any) {
	_, _ = c.Fprintln(p.out, fmt.Sprintf(format, args...))
}
