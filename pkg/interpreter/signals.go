package interpreter

import (
	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// Control-flow signals travel on the error path and are consumed by the
// nearest block sequence or application loop. They are never recorded as
// diagnostics.

type ReturnValue struct {
	Value runtime.Value
}

func (*ReturnValue) Error() string { return "return" }

// TailCallReturnValue asks the application loop to replace the current
// call frame with a call to Callee.
type TailCallReturnValue struct {
	Callee *runtime.FunctionValue
	Args   []runtime.Value
	Node   ast.Node
}

func (*TailCallReturnValue) Error() string { return "tail call" }

type BreakValue struct{}

func (BreakValue) Error() string { return "break" }

type ContinueValue struct{}

func (ContinueValue) Error() string { return "continue" }

func isSignal(err error) bool {
	switch err.(type) {
	case *ReturnValue, *TailCallReturnValue, BreakValue, ContinueValue:
		return true
	}
	return false
}
