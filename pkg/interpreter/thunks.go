package interpreter

import (
	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// actualValue evaluates expr and forces the result.
func (i *Interpreter) actualValue(expr ast.Node) (runtime.Value, error) {
	val, err := i.evaluate(expr)
	if err != nil {
		return nil, err
	}
	return i.force(val)
}

// force evaluates a thunk in its captured frame at most once. Other values
// are returned unchanged.
func (i *Interpreter) force(val runtime.Value) (runtime.Value, error) {
	th, ok := val.(*runtime.Thunk)
	if !ok {
		return val, nil
	}
	if v, done := th.Memoized(); done {
		return v, nil
	}
	i.pushEnv(th.Env)
	result, err := i.evaluate(th.Expression)
	if err != nil {
		return nil, err
	}
	i.popEnv()
	result, err = i.force(result)
	if err != nil {
		return nil, err
	}
	th.Memoize(result)
	return result, nil
}

func (i *Interpreter) forceAll(vals []runtime.Value) ([]runtime.Value, error) {
	out := make([]runtime.Value, len(vals))
	for idx, v := range vals {
		forced, err := i.force(v)
		if err != nil {
			return nil, err
		}
		out[idx] = forced
	}
	return out, nil
}

// Delay captures expr as an unevaluated thunk over the current frame.
func (i *Interpreter) Delay(expr ast.Expression) *runtime.Thunk {
	return runtime.NewThunk(expr, i.currentEnv())
}

// Force evaluates val if it is a thunk.
func (i *Interpreter) Force(val runtime.Value) (runtime.Value, error) {
	return i.force(val)
}
