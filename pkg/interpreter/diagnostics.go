package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"xslang/interpreter-go/pkg/ast"
)

type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

type RuntimeDiagnosticNote struct {
	Message  string
	Location ast.Span
}

// RuntimeDiagnostic is a located, renderable view of an evaluation error.
type RuntimeDiagnostic struct {
	Severity DiagnosticSeverity
	Kind     ErrorKind
	Message  string
	Location ast.Span
	Notes    []RuntimeDiagnosticNote
}

// maxCallNotes bounds the "called from here" notes attached to a diagnostic.
const maxCallNotes = 8

// BuildRuntimeDiagnostic locates err at its node and attaches one note per
// enclosing call site, innermost first.
func BuildRuntimeDiagnostic(err error) RuntimeDiagnostic {
	var interrupt *InterruptError
	if errors.As(err, &interrupt) {
		diag := RuntimeDiagnostic{Severity: SeverityWarning, Message: "interrupted"}
		if interrupt.Cause != nil {
			diag.Message = fmt.Sprintf("interrupted: %v", interrupt.Cause)
		}
		if interrupt.Node != nil {
			diag.Location = interrupt.Node.Span()
		}
		return diag
	}
	var rt *RuntimeError
	if !errors.As(err, &rt) {
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		return RuntimeDiagnostic{Severity: SeverityError, Message: msg}
	}
	diag := RuntimeDiagnostic{Severity: SeverityError, Kind: rt.Kind, Message: rt.Message}
	if rt.Node != nil {
		diag.Location = rt.Node.Span()
	}
	for idx := len(rt.Calls) - 1; idx >= 0 && len(diag.Notes) < maxCallNotes; idx-- {
		loc := rt.Calls[idx].Span()
		if loc.IsZero() || loc == diag.Location {
			continue
		}
		diag.Notes = append(diag.Notes, RuntimeDiagnosticNote{Message: "called from here", Location: loc})
	}
	return diag
}

// DescribeRuntimeDiagnostic renders diag in the "runtime: line:col message"
// form followed by one line per note.
func DescribeRuntimeDiagnostic(diag RuntimeDiagnostic) string {
	prefix := "runtime: "
	if diag.Severity == SeverityWarning {
		prefix = "warning: runtime: "
	}
	message := strings.TrimSpace(diag.Message)
	if diag.Kind != "" {
		message = fmt.Sprintf("%s: %s", diag.Kind, message)
	}
	var b strings.Builder
	if !diag.Location.IsZero() {
		fmt.Fprintf(&b, "%s%s %s", prefix, diag.Location, message)
	} else {
		fmt.Fprintf(&b, "%s%s", prefix, message)
	}
	for _, note := range diag.Notes {
		fmt.Fprintf(&b, "\nnote: %s %s", note.Location, note.Message)
	}
	return b.String()
}
