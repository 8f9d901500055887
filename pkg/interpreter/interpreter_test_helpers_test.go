package interpreter

import (
	"context"
	"testing"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

func mustEvaluate(t *testing.T, interp *Interpreter, stmts ...ast.Statement) runtime.Value {
	t.Helper()
	val, err := interp.Evaluate(context.Background(), ast.Prog(stmts...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return val
}

func mustFail(t *testing.T, interp *Interpreter, kind ErrorKind, stmts ...ast.Statement) *RuntimeError {
	t.Helper()
	_, err := interp.Evaluate(context.Background(), ast.Prog(stmts...))
	if err == nil {
		t.Fatalf("expected %s, got no error", kind)
	}
	rt, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T (%v)", err, err)
	}
	if rt.Kind != kind {
		t.Fatalf("expected %s, got %s (%s)", kind, rt.Kind, rt.Message)
	}
	return rt
}

func expectInt(t *testing.T, val runtime.Value, want int64) {
	t.Helper()
	iv, ok := val.(runtime.IntValue)
	if !ok || iv.Val != want {
		t.Fatalf("expected Int %d, got %#v", want, val)
	}
}

func expectString(t *testing.T, val runtime.Value, want string) {
	t.Helper()
	sv, ok := val.(runtime.StringValue)
	if !ok || sv.Val != want {
		t.Fatalf("expected String %q, got %#v", want, val)
	}
}

func expectBool(t *testing.T, val runtime.Value, want bool) {
	t.Helper()
	bv, ok := val.(runtime.BoolValue)
	if !ok || bv.Val != want {
		t.Fatalf("expected Bool %v, got %#v", want, val)
	}
}

// defineCounter installs a zero-argument builtin that returns how many
// times it has been called, starting at one.
func defineCounter(interp *Interpreter, name string) *int {
	count := new(int)
	interp.DefineNative(name, 0, func(*runtime.NativeCallContext, []runtime.Value) (runtime.Value, error) {
		*count++
		return runtime.IntValue{Val: int64(*count)}, nil
	})
	return count
}

func defineDepth(interp *Interpreter) {
	interp.DefineNative("depth", 0, func(ctx *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
		return runtime.IntValue{Val: int64(ctx.Depth())}, nil
	})
}
