package interpreter

import "xslang/interpreter-go/pkg/ast"

type StepKind int

const (
	StepVisit StepKind = iota
	StepLeave
	StepBreakpoint
)

func (k StepKind) String() string {
	switch k {
	case StepVisit:
		return "visit"
	case StepLeave:
		return "leave"
	case StepBreakpoint:
		return "breakpoint"
	default:
		return "unknown"
	}
}

// StepEvent is delivered at every suspension point of the dispatcher.
type StepEvent struct {
	Kind   StepKind
	Node   ast.Node
	Depth  int
	Frames int
}

// Observer watches evaluation. Returning an error from a visit or
// breakpoint event stops evaluation with an *InterruptError; errors
// returned for leave events are ignored.
type Observer interface {
	OnStep(StepEvent) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(StepEvent) error

func (f ObserverFunc) OnStep(ev StepEvent) error { return f(ev) }

func (i *Interpreter) notify(kind StepKind, node ast.Node) error {
	if i.observer == nil {
		return nil
	}
	err := i.observer.OnStep(StepEvent{Kind: kind, Node: node, Depth: i.depth, Frames: i.ctx.Environments.Len()})
	if err != nil && kind != StepLeave {
		return &InterruptError{Node: node, Cause: err}
	}
	return nil
}
