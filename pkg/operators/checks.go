package operators

import (
	"fmt"
	"strings"

	"xslang/interpreter-go/pkg/runtime"
)

// TypeError describes operands an operator cannot accept.
type TypeError struct {
	Operator string
	Expected string
	Actual   []string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("operator %s expects %s, got %s", e.Operator, e.Expected, strings.Join(e.Actual, " and "))
}

func newTypeError(op, expected string, operands ...runtime.Value) *TypeError {
	actual := make([]string, len(operands))
	for i, v := range operands {
		actual[i] = runtime.TypeOf(v)
	}
	return &TypeError{Operator: op, Expected: expected, Actual: actual}
}

// CheckUnary returns a diagnostic when operand does not fit op.
func CheckUnary(op string, operand runtime.Value) *TypeError {
	switch op {
	case "!":
		if _, ok := operand.(runtime.BoolValue); !ok {
			return newTypeError(op, "Bool", operand)
		}
	case "-", "+":
		if !isNumber(operand) {
			return newTypeError(op, "a number", operand)
		}
	}
	return nil
}

// CheckBinary returns a diagnostic when the operands do not fit op.
// Equality accepts any pair.
func CheckBinary(op string, left, right runtime.Value) *TypeError {
	switch op {
	case "+":
		if sameNumberType(left, right) || bothStrings(left, right) {
			return nil
		}
		return newTypeError(op, "two numbers of the same type or two strings", left, right)
	case "-", "*", "/", "%":
		if !sameNumberType(left, right) {
			return newTypeError(op, "two numbers of the same type", left, right)
		}
	case "<", "<=", ">", ">=":
		if !sameNumberType(left, right) && !bothStrings(left, right) {
			return newTypeError(op, "two numbers of the same type or two strings", left, right)
		}
	}
	return nil
}

// CheckLogical requires both operands to be Bool.
func CheckLogical(op string, left, right runtime.Value) *TypeError {
	_, lok := left.(runtime.BoolValue)
	_, rok := right.(runtime.BoolValue)
	if !lok || !rok {
		return newTypeError(op, "two Bool operands", left, right)
	}
	return nil
}

func isNumber(v runtime.Value) bool {
	switch v.(type) {
	case runtime.IntValue, runtime.DoubleValue:
		return true
	}
	return false
}

func sameNumberType(left, right runtime.Value) bool {
	return isNumber(left) && left.Kind() == right.Kind()
}

func bothStrings(left, right runtime.Value) bool {
	_, lok := left.(runtime.StringValue)
	_, rok := right.(runtime.StringValue)
	return lok && rok
}
