package interpreter

import (
	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// evaluateStatements hoists the declarations of stmts into env, then runs
// them in order. The result is the value of the last statement. Signals
// stop the sequence and propagate on the error path.
func (i *Interpreter) evaluateStatements(stmts []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	if err := i.hoist(stmts, env); err != nil {
		return nil, err
	}
	var result runtime.Value = runtime.Void
	for _, stmt := range stmts {
		val, err := i.evaluate(stmt)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) evaluateBlockStatement(block *ast.BlockStatement) (runtime.Value, error) {
	env := runtime.NewEnvironment("blockEnvironment", i.currentEnv())
	i.pushEnv(env)
	val, err := i.evaluateStatements(block.Body, env)
	if err != nil {
		if isSignal(err) {
			i.popEnv()
		}
		return nil, err
	}
	i.popEnv()
	return val, nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement) (runtime.Value, error) {
	test, err := i.actualValue(stmt.Test)
	if err != nil {
		return nil, err
	}
	if b, ok := test.(runtime.BoolValue); ok && b.Val {
		return i.evaluate(stmt.Consequent)
	}
	if stmt.Alternate != nil {
		return i.evaluate(stmt.Alternate)
	}
	return runtime.Void, nil
}

// evaluateReturnStatement yields a ReturnValue, or a TailCallReturnValue
// when the argument calls an interpreted function from inside a function
// body.
func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement) (runtime.Value, error) {
	if stmt.Argument == nil {
		return nil, &ReturnValue{Value: runtime.Void}
	}
	if call, ok := stmt.Argument.(*ast.CallExpression); ok && i.callDepth > 0 {
		tail, err := i.prepareTailCall(call)
		if err != nil {
			return nil, err
		}
		if tail != nil {
			return nil, tail
		}
	}
	val, err := i.evaluate(stmt.Argument)
	if err != nil {
		return nil, err
	}
	return nil, &ReturnValue{Value: val}
}

// prepareTailCall evaluates callee and arguments of a call in tail
// position. It returns nil when the callee is not a plain interpreted
// function, leaving the call to be evaluated normally. Arguments are
// evaluated eagerly even in lazy mode so the trampoline never chains
// thunks across iterations.
func (i *Interpreter) prepareTailCall(call *ast.CallExpression) (*TailCallReturnValue, error) {
	id, ok := call.Callee.(*ast.Identifier)
	if !ok {
		return nil, nil
	}
	binding, _, found := i.currentEnv().Lookup(id.Name)
	if !found {
		return nil, nil
	}
	var fn *runtime.FunctionValue
	switch b := binding.(type) {
	case *runtime.FunctionValue:
		fn = b
	case *runtime.LiteralBinding:
		fn, _ = b.Value.(*runtime.FunctionValue)
	}
	if fn == nil {
		return nil, nil
	}
	args, err := i.evaluateArguments(call.Arguments, false)
	if err != nil {
		return nil, err
	}
	return &TailCallReturnValue{Callee: fn, Args: args, Node: call}, nil
}
