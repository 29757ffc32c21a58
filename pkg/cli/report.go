package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/mattn/go-isatty"
)

const (
	colorRed   = "\033[31m"
	colorBold  = "\033[1m"
	colorReset = "\033[0m"
)

// reporter prints diagnostics, coloured when writing to a terminal.
type reporter struct {
	w     io.Writer
	color bool
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w, color: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *reporter) paint(color, s string) string {
	if !r.color {
		return s
	}
	return color + s + colorReset
}

// diagnostic prints one diagnostic as `FILE:LINE:COL: error: CODE Name: message`.
func (r *reporter) diagnostic(d *diagnostics.DiagnosticError) {
	pos := d.File
	if d.Token.Line > 0 {
		if pos != "" {
			pos += ":"
		}
		pos += fmt.Sprintf("%d:%d", d.Token.Line, d.Token.Column)
	}
	if pos != "" {
		pos = r.paint(colorBold, pos) + ": "
	}
	fmt.Fprintf(r.w, "%s%s: %s %s: %s\n", pos, r.paint(colorRed, "error"), d.Code, d.Code.Name(), d.Message)
}

// all prints every diagnostic and reports whether there were any.
func (r *reporter) all(errs []*diagnostics.DiagnosticError) bool {
	for _, d := range errs {
		r.diagnostic(d)
	}
	return len(errs) > 0
}

// err prints any error, using the diagnostic layout when it carries a code.
func (r *reporter) err(err error) {
	var d *diagnostics.DiagnosticError
	if errors.As(err, &d) {
		r.diagnostic(d)
		return
	}
	fmt.Fprintf(r.w, "%s: %v\n", r.paint(colorRed, "error"), err)
}
