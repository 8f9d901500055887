package runtime

import (
	"sort"

	"xslang/interpreter-go/pkg/ast"
)

// Environment is one lexical frame. Frames link toward the root through
// Tail; the root has no tail.
type Environment struct {
	Name           string
	Tail           *Environment
	CallExpression ast.Node
	ThisContext    Value

	head map[string]Binding
}

// NewEnvironment creates a frame, optionally nested under tail.
func NewEnvironment(name string, tail *Environment) *Environment {
	return &Environment{
		Name: name,
		Tail: tail,
		head: make(map[string]Binding),
	}
}

// Declare introduces name in this frame. It reports false when the name
// is already present.
func (e *Environment) Declare(name string, binding Binding) bool {
	if _, exists := e.head[name]; exists {
		return false
	}
	e.head[name] = binding
	return true
}

// Set overwrites name in this frame.
func (e *Environment) Set(name string, binding Binding) {
	e.head[name] = binding
}

// Local returns the binding for name in this frame only.
func (e *Environment) Local(name string) (Binding, bool) {
	b, ok := e.head[name]
	return b, ok
}

// Has reports whether this frame binds name.
func (e *Environment) Has(name string) bool {
	_, ok := e.head[name]
	return ok
}

// Find walks from e toward the root and returns the first frame matching
// pred, or nil.
func (e *Environment) Find(pred func(*Environment) bool) *Environment {
	for env := e; env != nil; env = env.Tail {
		if pred(env) {
			return env
		}
	}
	return nil
}

// Lookup resolves name through the chain and returns the binding with the
// frame that owns it.
func (e *Environment) Lookup(name string) (Binding, *Environment, bool) {
	owner := e.Find(func(env *Environment) bool { return env.Has(name) })
	if owner == nil {
		return nil, nil, false
	}
	return owner.head[name], owner, true
}

// SelfFrame returns the nearest class-scoped frame.
func (e *Environment) SelfFrame() *Environment {
	return e.Find(func(env *Environment) bool { return env.Has(SelfName) })
}

// This returns the nearest ThisContext on the chain.
func (e *Environment) This() Value {
	owner := e.Find(func(env *Environment) bool { return env.ThisContext != nil })
	if owner == nil {
		return nil
	}
	return owner.ThisContext
}

// Depth counts frames from e to the root.
func (e *Environment) Depth() int {
	n := 0
	for env := e; env != nil; env = env.Tail {
		n++
	}
	return n
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.head))
	for k := range e.head {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
