package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Inspect renders a value the way the print builtin and the CLI show it.
func Inspect(v Value) string {
	switch val := v.(type) {
	case nil:
		return "<missing>"
	case IntValue:
		return strconv.FormatInt(val.Val, 10)
	case DoubleValue:
		return formatDouble(val.Val)
	case StringValue:
		return val.Val
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case VoidValue:
		return "()"
	case *FunctionValue:
		if val.Name == "" {
			return "<function>"
		}
		return fmt.Sprintf("<function %s>", val.Name)
	case *NativeFunctionValue:
		return fmt.Sprintf("<native function %s>", val.Name)
	case *ClassValue:
		return inspectClass(val)
	case *Thunk:
		if forced, ok := val.Memoized(); ok {
			return Inspect(forced)
		}
		return "<thunk>"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatDouble(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func inspectClass(c *ClassValue) string {
	if !c.Instance {
		return fmt.Sprintf("<class %s>", c.ClassName)
	}
	parts := make([]string, 0, len(c.StoredOrder))
	for _, name := range c.StoredOrder {
		cell, ok := c.StoredProps[name]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, Inspect(cell.Value)))
	}
	return fmt.Sprintf("%s(%s)", c.ClassName, strings.Join(parts, ", "))
}
