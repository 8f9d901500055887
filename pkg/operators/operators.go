// Package operators implements the unary, binary and logical operators over
// forced runtime values, together with the operand type checks the
// evaluator runs before applying them.
package operators

import (
	"errors"
	"fmt"
	"math"

	"xslang/interpreter-go/pkg/runtime"
)

// ErrDivisionByZero is returned for integer division or remainder by zero.
var ErrDivisionByZero = errors.New("division by zero")

// EvaluateUnary applies a prefix operator.
func EvaluateUnary(op string, operand runtime.Value) (runtime.Value, error) {
	switch op {
	case "!":
		b, ok := operand.(runtime.BoolValue)
		if !ok {
			return nil, fmt.Errorf("operand of ! must be bool")
		}
		return runtime.BoolValue{Val: !b.Val}, nil
	case "-":
		switch v := operand.(type) {
		case runtime.IntValue:
			return runtime.IntValue{Val: -v.Val}, nil
		case runtime.DoubleValue:
			return runtime.DoubleValue{Val: -v.Val}, nil
		}
		return nil, fmt.Errorf("operand of - must be numeric")
	case "+":
		switch operand.(type) {
		case runtime.IntValue, runtime.DoubleValue:
			return operand, nil
		}
		return nil, fmt.Errorf("operand of + must be numeric")
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", op)
	}
}

// EvaluateBinary applies an infix arithmetic, comparison or equality
// operator.
func EvaluateBinary(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "+", "-", "*", "/", "%":
		return evaluateArithmetic(op, left, right)
	case "<", "<=", ">", ">=":
		return evaluateComparison(op, left, right)
	case "==", "===":
		return runtime.BoolValue{Val: ValuesEqual(left, right)}, nil
	case "!=", "!==":
		return runtime.BoolValue{Val: !ValuesEqual(left, right)}, nil
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", op)
	}
}

// EvaluateLogical applies && or || to two already evaluated operands.
func EvaluateLogical(op string, left, right runtime.Value) (runtime.Value, error) {
	lb, ok := left.(runtime.BoolValue)
	if !ok {
		return nil, fmt.Errorf("left operand of %s must be bool", op)
	}
	rb, ok := right.(runtime.BoolValue)
	if !ok {
		return nil, fmt.Errorf("right operand of %s must be bool", op)
	}
	switch op {
	case "&&":
		return runtime.BoolValue{Val: lb.Val && rb.Val}, nil
	case "||":
		return runtime.BoolValue{Val: lb.Val || rb.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported logical operator %s", op)
	}
}

func evaluateArithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	switch lv := left.(type) {
	case runtime.IntValue:
		rv, ok := right.(runtime.IntValue)
		if !ok {
			return nil, fmt.Errorf("mixed numeric types not supported")
		}
		switch op {
		case "+":
			return runtime.IntValue{Val: lv.Val + rv.Val}, nil
		case "-":
			return runtime.IntValue{Val: lv.Val - rv.Val}, nil
		case "*":
			return runtime.IntValue{Val: lv.Val * rv.Val}, nil
		case "/":
			if rv.Val == 0 {
				return nil, ErrDivisionByZero
			}
			return runtime.IntValue{Val: lv.Val / rv.Val}, nil
		case "%":
			if rv.Val == 0 {
				return nil, ErrDivisionByZero
			}
			return runtime.IntValue{Val: lv.Val % rv.Val}, nil
		}
	case runtime.DoubleValue:
		rv, ok := right.(runtime.DoubleValue)
		if !ok {
			return nil, fmt.Errorf("mixed numeric types not supported")
		}
		switch op {
		case "+":
			return runtime.DoubleValue{Val: lv.Val + rv.Val}, nil
		case "-":
			return runtime.DoubleValue{Val: lv.Val - rv.Val}, nil
		case "*":
			return runtime.DoubleValue{Val: lv.Val * rv.Val}, nil
		case "/":
			return runtime.DoubleValue{Val: lv.Val / rv.Val}, nil
		case "%":
			return runtime.DoubleValue{Val: math.Mod(lv.Val, rv.Val)}, nil
		}
	case runtime.StringValue:
		if op == "+" {
			rStr, ok := right.(runtime.StringValue)
			if !ok {
				return nil, fmt.Errorf("string concatenation requires both operands to be strings")
			}
			return runtime.StringValue{Val: lv.Val + rStr.Val}, nil
		}
		return nil, fmt.Errorf("operator %s not supported for strings", op)
	}
	return nil, fmt.Errorf("unsupported operand types for %s", op)
}

func evaluateComparison(op string, left, right runtime.Value) (runtime.Value, error) {
	var cmp int
	switch lv := left.(type) {
	case runtime.IntValue:
		rv, ok := right.(runtime.IntValue)
		if !ok {
			return nil, fmt.Errorf("mixed numeric types not supported")
		}
		cmp = compareOrdered(lv.Val, rv.Val)
	case runtime.DoubleValue:
		rv, ok := right.(runtime.DoubleValue)
		if !ok {
			return nil, fmt.Errorf("mixed numeric types not supported")
		}
		if math.IsNaN(lv.Val) || math.IsNaN(rv.Val) {
			return runtime.BoolValue{Val: false}, nil
		}
		cmp = compareOrdered(lv.Val, rv.Val)
	case runtime.StringValue:
		rv, ok := right.(runtime.StringValue)
		if !ok {
			return nil, fmt.Errorf("comparison requires both operands to be strings")
		}
		cmp = compareOrdered(lv.Val, rv.Val)
	default:
		return nil, fmt.Errorf("unsupported operand types for %s", op)
	}
	switch op {
	case "<":
		return runtime.BoolValue{Val: cmp < 0}, nil
	case "<=":
		return runtime.BoolValue{Val: cmp <= 0}, nil
	case ">":
		return runtime.BoolValue{Val: cmp > 0}, nil
	default:
		return runtime.BoolValue{Val: cmp >= 0}, nil
	}
}

func compareOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ValuesEqual compares primitives by value and objects and functions by
// identity. Values of different types are never equal.
func ValuesEqual(left, right runtime.Value) bool {
	switch lv := left.(type) {
	case runtime.IntValue:
		rv, ok := right.(runtime.IntValue)
		return ok && lv.Val == rv.Val
	case runtime.DoubleValue:
		rv, ok := right.(runtime.DoubleValue)
		return ok && lv.Val == rv.Val
	case runtime.StringValue:
		rv, ok := right.(runtime.StringValue)
		return ok && lv.Val == rv.Val
	case runtime.BoolValue:
		rv, ok := right.(runtime.BoolValue)
		return ok && lv.Val == rv.Val
	case runtime.VoidValue:
		return runtime.IsVoid(right)
	case *runtime.ClassValue:
		rv, ok := right.(*runtime.ClassValue)
		return ok && lv == rv
	case *runtime.FunctionValue:
		rv, ok := right.(*runtime.FunctionValue)
		return ok && lv == rv
	case *runtime.NativeFunctionValue:
		rv, ok := right.(*runtime.NativeFunctionValue)
		return ok && lv == rv
	default:
		return false
	}
}
