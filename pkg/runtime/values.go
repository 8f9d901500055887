package runtime

import (
	"slices"

	"xslang/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindDouble
	KindString
	KindBool
	KindVoid
	KindFunction
	KindNativeFunction
	KindClass
	KindThunk
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindVoid:
		return "void"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindThunk:
		return "thunk"
	default:
		return "unknown"
	}
}

// Value is anything an expression can evaluate to.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Primitives
//-----------------------------------------------------------------------------

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind { return KindInt }

type DoubleValue struct {
	Val float64
}

func (v DoubleValue) Kind() Kind { return KindDouble }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// VoidValue is the empty result of statements, bodies without an explicit
// return, and untaken conditionals.
type VoidValue struct{}

func (VoidValue) Kind() Kind { return KindVoid }

// Void is the shared empty result.
var Void Value = VoidValue{}

// IsVoid reports whether v is the empty result (or absent).
func IsVoid(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(VoidValue)
	return ok
}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue is a closure: a parameter list and body together with the
// environment the function was declared in.
type FunctionValue struct {
	Name        string
	Params      []*ast.Identifier
	Body        *ast.BlockStatement
	Env         *Environment
	Declaration ast.Node
}

func (v *FunctionValue) Kind() Kind { return KindFunction }
func (*FunctionValue) isBinding()   {}

// ParamNames lists parameter names in declaration order.
func (v *FunctionValue) ParamNames() []string {
	names := make([]string, len(v.Params))
	for i, p := range v.Params {
		names[i] = p.Name
	}
	return names
}

// WithEnv returns a copy of the closure that resolves free names in env.
func (v *FunctionValue) WithEnv(env *Environment) *FunctionValue {
	clone := *v
	clone.Env = env
	return &clone
}

// WithParams returns a copy of the closure taking the given parameters.
func (v *FunctionValue) WithParams(params []*ast.Identifier) *FunctionValue {
	clone := *v
	clone.Params = params
	return &clone
}

// NativeCallContext gives host callables access to the calling interpreter.
type NativeCallContext struct {
	Env  *Environment
	Node ast.Node
	// Call applies an interpreted or host callable with already evaluated
	// arguments. Errors it returns must be propagated unchanged.
	Call func(callee Value, args []Value) (Value, error)
	// Depth reports the number of frames on the active environment stack.
	Depth func() int
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

// NativeFunctionValue is a host-provided callable. Arity -1 accepts any
// number of arguments.
type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }
func (*NativeFunctionValue) isBinding()   {}

//-----------------------------------------------------------------------------
// Classes
//-----------------------------------------------------------------------------

// ComputedProperty mediates reads and writes through accessor bodies.
type ComputedProperty struct {
	Name      string
	ValueType string
	Getter    *FunctionValue
	Setter    *FunctionValue
}

func (*ComputedProperty) isBinding() {}

// ClassValue is both a class template and, with Instance set, an object.
// Instances share their template's computed and method maps but own their
// stored property cells.
type ClassValue struct {
	ClassName     string
	StoredProps   map[string]*LiteralBinding
	StoredOrder   []string
	ComputedProps map[string]*ComputedProperty
	Methods       map[string]*FunctionValue
	Instance      bool
}

func (v *ClassValue) Kind() Kind { return KindClass }
func (*ClassValue) isBinding()   {}

// NewClassValue creates an empty class template.
func NewClassValue(name string) *ClassValue {
	return &ClassValue{
		ClassName:     name,
		StoredProps:   make(map[string]*LiteralBinding),
		ComputedProps: make(map[string]*ComputedProperty),
		Methods:       make(map[string]*FunctionValue),
	}
}

// Instantiate copies the template. Stored cells are duplicated so no two
// objects share mutable state.
func (v *ClassValue) Instantiate() *ClassValue {
	inst := &ClassValue{
		ClassName:     v.ClassName,
		StoredProps:   make(map[string]*LiteralBinding, len(v.StoredProps)),
		StoredOrder:   slices.Clone(v.StoredOrder),
		ComputedProps: v.ComputedProps,
		Methods:       v.Methods,
		Instance:      true,
	}
	for name, cell := range v.StoredProps {
		inst.StoredProps[name] = cell.Copy()
	}
	return inst
}

// HasMember reports whether name is a stored, computed or method member.
func (v *ClassValue) HasMember(name string) bool {
	_, ok := v.Member(name)
	return ok
}

// Member resolves name against the stored, computed and method maps in
// that order.
func (v *ClassValue) Member(name string) (Binding, bool) {
	if cell, ok := v.StoredProps[name]; ok {
		return cell, true
	}
	if prop, ok := v.ComputedProps[name]; ok {
		return prop, true
	}
	if method, ok := v.Methods[name]; ok {
		return method, true
	}
	return nil, false
}

//-----------------------------------------------------------------------------
// Thunks
//-----------------------------------------------------------------------------

// Thunk is a suspended expression evaluated at most once in Env.
type Thunk struct {
	Expression ast.Expression
	Env        *Environment
	value      Value
	memoized   bool
}

func NewThunk(expr ast.Expression, env *Environment) *Thunk {
	return &Thunk{Expression: expr, Env: env}
}

func (v *Thunk) Kind() Kind { return KindThunk }

// Memoized returns the cached value once the thunk has been forced.
func (v *Thunk) Memoized() (Value, bool) {
	return v.value, v.memoized
}

// Memoize caches the forced value.
func (v *Thunk) Memoize(val Value) {
	v.value = val
	v.memoized = true
}
