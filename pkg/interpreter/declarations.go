package interpreter

import (
	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// hoist pre-declares every variable, function and class of a block in
// source order, bound to the unassigned sentinel.
func (i *Interpreter) hoist(stmts []ast.Statement, env *runtime.Environment) error {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.VariableDeclaration:
			for _, decl := range s.Declarations {
				if err := i.declare(decl.ID, env); err != nil {
					return err
				}
			}
		case *ast.FunctionDeclaration:
			if err := i.declare(s.ID, env); err != nil {
				return err
			}
		case *ast.ClassDeclaration:
			if err := i.declare(s.ID, env); err != nil {
				return err
			}
		}
	}
	return nil
}

func (i *Interpreter) declare(id *ast.Identifier, env *runtime.Environment) error {
	if !env.Declare(id.Name, runtime.Unassigned) {
		return i.fail(newVariableRedeclaration(id, id.Name))
	}
	return nil
}

func (i *Interpreter) evaluateVariableDeclaration(decl *ast.VariableDeclaration) (runtime.Value, error) {
	for _, d := range decl.Declarations {
		cell := &runtime.LiteralBinding{Mutable: decl.Kind.Mutable(), ValueType: d.TypeAnnotation}
		if d.Init != nil {
			val, err := i.actualValue(d.Init)
			if err != nil {
				return nil, err
			}
			actual := runtime.TypeOf(val)
			if !runtime.TypeMatches(cell.ValueType, actual) {
				return nil, i.fail(newTypeAssignmentError(d, d.ID.Name, cell.ValueType, actual))
			}
			cell.Value = val
			cell.ValueType = actual
		}
		if err := i.bindDeclaration(d.ID, cell); err != nil {
			return nil, err
		}
	}
	return runtime.Void, nil
}

// bindDeclaration writes the declared cell into the current frame. A
// hoisted sentinel is replaced outright; an existing cell goes through the
// assignment checks.
func (i *Interpreter) bindDeclaration(id *ast.Identifier, cell *runtime.LiteralBinding) error {
	env := i.currentEnv()
	existing, ok := env.Local(id.Name)
	if !ok || runtime.IsUnassigned(existing) {
		env.Set(id.Name, cell)
		return nil
	}
	if !cell.HasValue() {
		return nil
	}
	if err := i.writeBinding(id, env, id.Name, existing, cell.Value); err != nil {
		return err
	}
	if current, ok := existing.(*runtime.LiteralBinding); ok {
		current.Mutable = cell.Mutable
	}
	return nil
}

func (i *Interpreter) evaluateFunctionDeclaration(decl *ast.FunctionDeclaration) (runtime.Value, error) {
	fn := &runtime.FunctionValue{
		Name:        decl.ID.Name,
		Params:      decl.Params,
		Body:        decl.Body,
		Env:         i.currentEnv(),
		Declaration: decl,
	}
	if err := i.bindDescriptor(decl.ID, fn); err != nil {
		return nil, err
	}
	return runtime.Void, nil
}

// bindDescriptor binds an immutable function or class descriptor.
func (i *Interpreter) bindDescriptor(id *ast.Identifier, descriptor runtime.Binding) error {
	env := i.currentEnv()
	existing, ok := env.Local(id.Name)
	if ok && !runtime.IsUnassigned(existing) {
		return i.fail(newConstAssignment(id, id.Name))
	}
	env.Set(id.Name, descriptor)
	return nil
}

// writeBinding applies the assignment protocol to name, currently bound to
// current in owner.
func (i *Interpreter) writeBinding(node ast.Node, owner *runtime.Environment, name string, current runtime.Binding, val runtime.Value) error {
	switch b := current.(type) {
	case *runtime.LiteralBinding:
		return i.writeCell(node, name, b, val)
	case *runtime.ComputedProperty:
		receiver := selfReceiver(owner)
		if receiver == nil {
			return i.fail(newUndefinedVariable(node, runtime.SelfName))
		}
		return i.setComputed(node, receiver, b, val)
	case *runtime.FunctionValue, *runtime.ClassValue, *runtime.NativeFunctionValue, *runtime.SelfBinding:
		return i.fail(newConstAssignment(node, name))
	default:
		if runtime.IsUnassigned(current) {
			owner.Set(name, runtime.NewLiteral(true, val))
			return nil
		}
		return i.fail(newUndefinedVariable(node, name))
	}
}

// writeCell checks type first, then mutability, and updates the cell in
// place so every frame sharing it observes the write. A cell still holding
// an unforced argument thunk takes its type from the forced argument.
func (i *Interpreter) writeCell(node ast.Node, name string, cell *runtime.LiteralBinding, val runtime.Value) error {
	if th, ok := cell.Value.(*runtime.Thunk); ok && cell.ValueType == "" {
		forced, err := i.force(th)
		if err != nil {
			return err
		}
		cell.Value = forced
		cell.ValueType = runtime.TypeOf(forced)
	}
	actual := runtime.TypeOf(val)
	if !runtime.TypeMatches(cell.ValueType, actual) {
		return i.fail(newTypeAssignmentError(node, name, cell.ValueType, actual))
	}
	if !cell.Mutable && cell.HasValue() {
		return i.fail(newConstAssignment(node, name))
	}
	cell.Value = val
	if cell.ValueType == "" {
		cell.ValueType = actual
	}
	return nil
}

func (i *Interpreter) evaluateIdentifier(id *ast.Identifier) (runtime.Value, error) {
	binding, owner, ok := i.currentEnv().Lookup(id.Name)
	if !ok {
		return nil, i.fail(newUndefinedVariable(id, id.Name))
	}
	switch b := binding.(type) {
	case *runtime.LiteralBinding:
		if !b.HasValue() {
			return nil, i.fail(newUndefinedError(id, id.Name))
		}
		return b.Value, nil
	case *runtime.FunctionValue:
		return b, nil
	case *runtime.ClassValue:
		return b, nil
	case *runtime.NativeFunctionValue:
		return b, nil
	case *runtime.SelfBinding:
		return b.Receiver, nil
	case *runtime.ComputedProperty:
		receiver := selfReceiver(owner)
		if receiver == nil {
			return nil, i.fail(newUndefinedVariable(id, runtime.SelfName))
		}
		return i.getComputed(id, receiver, b)
	default:
		return nil, i.fail(newUnassignedVariable(id, id.Name))
	}
}

func (i *Interpreter) evaluateAssignmentExpression(expr *ast.AssignmentExpression) (runtime.Value, error) {
	if expr.Operator != "=" {
		return nil, i.fail(newNotSupported(expr))
	}
	val, err := i.actualValue(expr.Right)
	if err != nil {
		return nil, err
	}
	switch target := expr.Left.(type) {
	case *ast.Identifier:
		binding, owner, ok := i.currentEnv().Lookup(target.Name)
		if !ok {
			return nil, i.fail(newUndefinedVariable(target, target.Name))
		}
		if err := i.writeBinding(expr, owner, target.Name, binding, val); err != nil {
			return nil, err
		}
	case *ast.MemberExpression:
		if err := i.assignMember(expr, target, val); err != nil {
			return nil, err
		}
	default:
		return nil, i.fail(newNotSupported(expr.Left))
	}
	return val, nil
}

// selfReceiver returns the object of the class-scoped frame env, if any.
func selfReceiver(env *runtime.Environment) *runtime.ClassValue {
	if env == nil {
		return nil
	}
	b, ok := env.Local(runtime.SelfName)
	if !ok {
		return nil
	}
	self, ok := b.(*runtime.SelfBinding)
	if !ok {
		return nil
	}
	return self.Receiver
}
