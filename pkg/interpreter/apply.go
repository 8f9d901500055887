package interpreter

import (
	"errors"
	"fmt"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// apply calls an interpreted or host callable. this becomes the
// ThisContext of the body frame.
func (i *Interpreter) apply(node ast.Node, callee runtime.Value, args []runtime.Value, this runtime.Value) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.applyClosure(node, fn, args, this)
	case *runtime.NativeFunctionValue:
		return i.applyNative(node, fn, args)
	default:
		return nil, i.fail(newCallingNonFunctionValue(node, callee))
	}
}

// applyClosure runs fn as a trampoline: a tail call replaces the call
// frame in place and loops instead of growing the environment stack.
func (i *Interpreter) applyClosure(node ast.Node, fn *runtime.FunctionValue, args []runtime.Value, this runtime.Value) (runtime.Value, error) {
	frame, err := i.buildCallFrame(node, fn, args)
	if err != nil {
		return nil, err
	}
	i.pushEnv(frame)
	i.callDepth++
	defer func() { i.callDepth-- }()
	i.logger.Debug("apply", "function", fn.Name, "args", len(args), "frames", i.ctx.Environments.Len())

	for {
		body := runtime.NewEnvironment("bodyEnvironment", i.currentEnv())
		body.ThisContext = this
		i.pushEnv(body)
		var stmts []ast.Statement
		if fn.Body != nil {
			stmts = fn.Body.Body
		}
		_, err := i.evaluateStatements(stmts, body)
		switch sig := err.(type) {
		case nil, BreakValue, ContinueValue:
			i.popEnv()
			i.popEnv()
			return runtime.Void, nil
		case *ReturnValue:
			i.popEnv()
			i.popEnv()
			return sig.Value, nil
		case *TailCallReturnValue:
			i.popEnv()
			next, err := i.buildCallFrame(sig.Node, sig.Callee, sig.Args)
			if err != nil {
				return nil, err
			}
			i.ctx.Environments.Replace(next)
			fn = sig.Callee
			this = nil
		default:
			return nil, err
		}
	}
}

// buildCallFrame binds args to the parameters of fn in a new frame on top
// of the closure environment.
func (i *Interpreter) buildCallFrame(node ast.Node, fn *runtime.FunctionValue, args []runtime.Value) (*runtime.Environment, error) {
	if len(args) != len(fn.Params) {
		return nil, i.fail(newInvalidNumberOfArguments(node, fn.Name, len(fn.Params), len(args)))
	}
	name := fn.Name
	if name == "" {
		name = "functionEnvironment"
	}
	frame := runtime.NewEnvironment(name, fn.Env)
	frame.CallExpression = node
	for idx, param := range fn.Params {
		arg := args[idx]
		cell := &runtime.LiteralBinding{Mutable: true, ValueType: runtime.TypeOf(arg), Value: arg}
		if !frame.Declare(param.Name, cell) {
			return nil, i.fail(newVariableRedeclaration(param, param.Name))
		}
	}
	return frame, nil
}

func (i *Interpreter) applyNative(node ast.Node, fn *runtime.NativeFunctionValue, args []runtime.Value) (runtime.Value, error) {
	forced, err := i.forceAll(args)
	if err != nil {
		return nil, err
	}
	if fn.Arity >= 0 && len(forced) != fn.Arity {
		return nil, i.fail(newInvalidNumberOfArguments(node, fn.Name, fn.Arity, len(forced)))
	}
	callCtx := &runtime.NativeCallContext{
		Env:  i.currentEnv(),
		Node: node,
		Call: func(callee runtime.Value, callArgs []runtime.Value) (runtime.Value, error) {
			return i.callValue(node, callee, callArgs)
		},
		Depth: i.StackDepth,
	}
	result, err := safeInvoke(fn.Impl, callCtx, forced)
	if err != nil {
		var rt *RuntimeError
		if errors.As(err, &rt) {
			return nil, i.fail(rt)
		}
		var interrupt *InterruptError
		if errors.As(err, &interrupt) {
			return nil, err
		}
		return nil, i.fail(newExceptionError(node, fn.Name, err))
	}
	if result == nil {
		return runtime.Void, nil
	}
	return result, nil
}

// safeInvoke turns a panic in host code into an error.
func safeInvoke(impl runtime.NativeFunc, ctx *runtime.NativeCallContext, args []runtime.Value) (result runtime.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if impl == nil {
		return nil, fmt.Errorf("native function has no implementation")
	}
	return impl(ctx, args)
}
