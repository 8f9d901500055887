package interpreter

import (
	"fmt"
	"strings"

	"xslang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) definePrelude() {
	i.DefineNative("print", -1, func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		parts := make([]string, len(args))
		for idx, arg := range args {
			parts[idx] = runtime.Inspect(arg)
		}
		if _, err := fmt.Fprintln(i.stdout, strings.Join(parts, " ")); err != nil {
			return nil, err
		}
		return runtime.Void, nil
	})
}

// DefineNative binds a host callable in the global frame, replacing any
// earlier builtin of the same name. Arity -1 accepts any number of
// arguments.
func (i *Interpreter) DefineNative(name string, arity int, impl runtime.NativeFunc) *runtime.NativeFunctionValue {
	fn := &runtime.NativeFunctionValue{Name: name, Arity: arity, Impl: impl}
	i.global.Set(name, fn)
	return fn
}
