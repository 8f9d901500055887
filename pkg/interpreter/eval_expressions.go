package interpreter

import (
	"fmt"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/operators"
	"xslang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateLiteral(lit *ast.Literal) (runtime.Value, error) {
	switch v := lit.Value.(type) {
	case nil:
		return runtime.Void, nil
	case int64:
		return runtime.IntValue{Val: v}, nil
	case int:
		return runtime.IntValue{Val: int64(v)}, nil
	case float64:
		return runtime.DoubleValue{Val: v}, nil
	case string:
		return runtime.StringValue{Val: v}, nil
	case bool:
		return runtime.BoolValue{Val: v}, nil
	default:
		return nil, i.fail(newExceptionError(lit, "", fmt.Errorf("unsupported literal %T", lit.Value)))
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression) (runtime.Value, error) {
	operand, err := i.actualValue(expr.Argument)
	if err != nil {
		return nil, err
	}
	if typeErr := operators.CheckUnary(expr.Operator, operand); typeErr != nil {
		return nil, i.fail(newOperatorTypeError(expr, typeErr))
	}
	val, err := operators.EvaluateUnary(expr.Operator, operand)
	if err != nil {
		return nil, i.fail(newExceptionError(expr, "", err))
	}
	return val, nil
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression) (runtime.Value, error) {
	left, err := i.actualValue(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.actualValue(expr.Right)
	if err != nil {
		return nil, err
	}
	if typeErr := operators.CheckBinary(expr.Operator, left, right); typeErr != nil {
		return nil, i.fail(newOperatorTypeError(expr, typeErr))
	}
	val, err := operators.EvaluateBinary(expr.Operator, left, right)
	if err != nil {
		return nil, i.fail(newExceptionError(expr, "", err))
	}
	return val, nil
}

// evaluateLogicalExpression evaluates both operands before combining them.
func (i *Interpreter) evaluateLogicalExpression(expr *ast.LogicalExpression) (runtime.Value, error) {
	left, err := i.actualValue(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.actualValue(expr.Right)
	if err != nil {
		return nil, err
	}
	if typeErr := operators.CheckLogical(expr.Operator, left, right); typeErr != nil {
		return nil, i.fail(newOperatorTypeError(expr, typeErr))
	}
	val, err := operators.EvaluateLogical(expr.Operator, left, right)
	if err != nil {
		return nil, i.fail(newExceptionError(expr, "", err))
	}
	return val, nil
}

func (i *Interpreter) evaluateCallExpression(call *ast.CallExpression) (runtime.Value, error) {
	if member, ok := call.Callee.(*ast.MemberExpression); ok {
		return i.evaluateMemberCall(call, member)
	}
	callee, err := i.actualValue(call.Callee)
	if err != nil {
		return nil, err
	}
	switch fn := callee.(type) {
	case *runtime.ClassValue:
		args, err := i.evaluateArguments(call.Arguments, false)
		if err != nil {
			return nil, err
		}
		return i.instantiate(call, fn, args)
	case *runtime.FunctionValue:
		args, err := i.evaluateArguments(call.Arguments, i.lazy)
		if err != nil {
			return nil, err
		}
		return i.apply(call, fn, args, nil)
	case *runtime.NativeFunctionValue:
		args, err := i.evaluateArguments(call.Arguments, false)
		if err != nil {
			return nil, err
		}
		return i.apply(call, fn, args, nil)
	default:
		return nil, i.fail(newCallingNonFunctionValue(call, callee))
	}
}

// evaluateArguments evaluates call arguments left to right. With delay set,
// every non-literal argument is captured as a thunk over the caller's frame.
func (i *Interpreter) evaluateArguments(args []ast.Expression, delay bool) ([]runtime.Value, error) {
	values := make([]runtime.Value, 0, len(args))
	for _, arg := range args {
		if delay {
			if _, literal := arg.(*ast.Literal); !literal {
				values = append(values, runtime.NewThunk(arg, i.currentEnv()))
				continue
			}
		}
		val, err := i.actualValue(arg)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}

// callValue applies any callable, including a class, to evaluated
// arguments. Host callables reach interpreted code through it.
func (i *Interpreter) callValue(node ast.Node, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	if cls, ok := callee.(*runtime.ClassValue); ok {
		forced, err := i.forceAll(args)
		if err != nil {
			return nil, err
		}
		return i.instantiate(node, cls, forced)
	}
	return i.apply(node, callee, args, nil)
}
