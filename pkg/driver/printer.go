package driver

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"xslang/interpreter-go/pkg/interpreter"
	"xslang/interpreter-go/pkg/runtime"
)

// Printer renders run results for a terminal or a plain stream.
type Printer struct {
	out     io.Writer
	errOut  io.Writer
	errorC  *color.Color
	warnC   *color.Color
	noteC   *color.Color
	resultC *color.Color
}

// NewPrinter writes results to out and diagnostics to errOut. In auto mode
// colour is used only when errOut is a terminal.
func NewPrinter(out, errOut io.Writer, mode ColorMode) *Printer {
	p := &Printer{
		out:     out,
		errOut:  errOut,
		errorC:  color.New(color.FgRed, color.Bold),
		warnC:   color.New(color.FgYellow),
		noteC:   color.New(color.FgCyan),
		resultC: color.New(color.FgGreen),
	}
	enabled := useColor(errOut, mode)
	for _, c := range []*color.Color{p.errorC, p.warnC, p.noteC, p.resultC} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Print writes a program's value, or its diagnostic. Void results print
// nothing.
func (p *Printer) Print(result RunResult) {
	if result.Err != nil {
		p.PrintError(result.Name, result.Err)
		return
	}
	if runtime.IsVoid(result.Value) {
		return
	}
	p.resultC.Fprintln(p.out, runtime.Inspect(result.Value))
}

// PrintError renders err with its location and call notes when it came
// from evaluation, or as a plain message otherwise.
func (p *Printer) PrintError(name string, err error) {
	var rt *interpreter.RuntimeError
	var interrupt *interpreter.InterruptError
	if !errors.As(err, &rt) && !errors.As(err, &interrupt) {
		p.errorC.Fprint(p.errOut, "error: ")
		fmt.Fprintln(p.errOut, err)
		return
	}
	diag := interpreter.BuildRuntimeDiagnostic(err)
	head := p.errorC
	if diag.Severity == interpreter.SeverityWarning {
		head = p.warnC
	}
	if name != "" {
		fmt.Fprintf(p.errOut, "%s: ", name)
	}
	notes := diag.Notes
	diag.Notes = nil
	head.Fprintln(p.errOut, interpreter.DescribeRuntimeDiagnostic(diag))
	for _, note := range notes {
		p.noteC.Fprintf(p.errOut, "note: %s %s\n", note.Location, note.Message)
	}
}
