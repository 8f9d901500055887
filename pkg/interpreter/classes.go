package interpreter

import (
	"fmt"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// evaluateClassDeclaration builds the class template and binds it
// immutably under the class name.
func (i *Interpreter) evaluateClassDeclaration(decl *ast.ClassDeclaration) (runtime.Value, error) {
	cls := runtime.NewClassValue(decl.ID.Name)
	seen := make(map[string]bool, len(decl.Body))
	for _, member := range decl.Body {
		key := classMemberKey(member)
		if key == nil {
			continue
		}
		if key.Name == runtime.SelfName || seen[key.Name] {
			return nil, i.fail(newVariableRedeclaration(key, key.Name))
		}
		seen[key.Name] = true

		switch m := member.(type) {
		case *ast.PropertyDefinition:
			cell := &runtime.LiteralBinding{Mutable: m.Kind.Mutable(), ValueType: m.TypeAnnotation}
			if m.Value != nil {
				val, err := i.actualValue(m.Value)
				if err != nil {
					return nil, err
				}
				actual := runtime.TypeOf(val)
				if !runtime.TypeMatches(cell.ValueType, actual) {
					return nil, i.fail(newTypeAssignmentError(m, m.Key.Name, cell.ValueType, actual))
				}
				cell.Value = val
				cell.ValueType = actual
			}
			cls.StoredProps[m.Key.Name] = cell
			cls.StoredOrder = append(cls.StoredOrder, m.Key.Name)
		case *ast.CompPropDeclaration:
			cls.ComputedProps[m.Key.Name] = i.computedProperty(m)
		case *ast.MethodDefinition:
			cls.Methods[m.Key.Name] = &runtime.FunctionValue{
				Name:        m.Key.Name,
				Params:      m.Params,
				Body:        m.Body,
				Env:         i.currentEnv(),
				Declaration: m,
			}
		}
	}
	if err := i.bindDescriptor(decl.ID, cls); err != nil {
		return nil, err
	}
	return runtime.Void, nil
}

func classMemberKey(member ast.ClassMember) *ast.Identifier {
	switch m := member.(type) {
	case *ast.PropertyDefinition:
		return m.Key
	case *ast.CompPropDeclaration:
		return m.Key
	case *ast.MethodDefinition:
		return m.Key
	}
	return nil
}

// computedProperty collects the get and set accessors of a computed
// property. A body without accessors is the getter.
func (i *Interpreter) computedProperty(decl *ast.CompPropDeclaration) *runtime.ComputedProperty {
	prop := &runtime.ComputedProperty{Name: decl.Key.Name, ValueType: decl.TypeAnnotation}
	accessor := func(fn *ast.FunctionDeclaration) *runtime.FunctionValue {
		return &runtime.FunctionValue{
			Name:        fmt.Sprintf("%s.%s", decl.Key.Name, fn.ID.Name),
			Params:      fn.Params,
			Body:        fn.Body,
			Env:         i.currentEnv(),
			Declaration: fn,
		}
	}
	get := decl.Accessor("get")
	set := decl.Accessor("set")
	if get != nil {
		prop.Getter = accessor(get)
	}
	if set != nil {
		prop.Setter = accessor(set)
	}
	if get == nil && set == nil && decl.Body != nil {
		prop.Getter = &runtime.FunctionValue{
			Name:        decl.Key.Name + ".get",
			Body:        decl.Body,
			Env:         i.currentEnv(),
			Declaration: decl,
		}
	}
	return prop
}

// classFrame builds the class-scoped frame for receiver. Stored cells are
// shared with the receiver so writes through self land on the object.
func (i *Interpreter) classFrame(receiver *runtime.ClassValue, tail *runtime.Environment) *runtime.Environment {
	frame := runtime.NewEnvironment("classEnvironment", tail)
	frame.ThisContext = receiver
	frame.Set(runtime.SelfName, &runtime.SelfBinding{Receiver: receiver})
	for _, name := range receiver.StoredOrder {
		frame.Set(name, receiver.StoredProps[name])
	}
	for name, prop := range receiver.ComputedProps {
		frame.Set(name, prop)
	}
	for name, method := range receiver.Methods {
		frame.Set(name, method.WithEnv(frame))
	}
	return frame
}

// invokeMethod runs fn with receiver as self: a class-scoped frame is
// pushed, fn is applied inside it, and stored properties are read back.
func (i *Interpreter) invokeMethod(node ast.Node, receiver *runtime.ClassValue, fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	frame := i.classFrame(receiver, fn.Env)
	i.pushEnv(frame)
	result, err := i.apply(node, fn.WithEnv(frame), args, receiver)
	if err != nil {
		return nil, err
	}
	if err := i.readBack(node, receiver, frame); err != nil {
		return nil, err
	}
	i.popEnv()
	return result, nil
}

func (i *Interpreter) readBack(node ast.Node, receiver *runtime.ClassValue, frame *runtime.Environment) error {
	for _, name := range receiver.StoredOrder {
		b, _ := frame.Local(name)
		cell, ok := b.(*runtime.LiteralBinding)
		if !ok {
			return i.fail(newExceptionError(node, name, fmt.Errorf("stored property of '%s' was rebound", receiver.ClassName)))
		}
		receiver.StoredProps[name] = cell
	}
	return nil
}

// instantiate creates an object from a class template and runs its init
// method, if any, with args.
func (i *Interpreter) instantiate(node ast.Node, tmpl *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	if tmpl.Instance {
		return nil, i.fail(newCallingNonFunctionValue(node, tmpl))
	}
	inst := tmpl.Instantiate()
	init, ok := tmpl.Methods["init"]
	if !ok {
		if len(args) > 0 {
			return nil, i.fail(newInvalidNumberOfArguments(node, tmpl.ClassName, 0, len(args)))
		}
		return inst, nil
	}
	if _, err := i.invokeMethod(node, inst, init, args); err != nil {
		return nil, err
	}
	return inst, nil
}

func (i *Interpreter) getComputed(node ast.Node, receiver *runtime.ClassValue, prop *runtime.ComputedProperty) (runtime.Value, error) {
	if prop.Getter == nil {
		return nil, i.fail(newMissingGetter(node, receiver.ClassName, prop.Name))
	}
	val, err := i.invokeMethod(node, receiver, prop.Getter, nil)
	if err != nil {
		return nil, err
	}
	return i.force(val)
}

// setComputed runs the setter with val. A setter declared without a
// parameter receives it as newValue.
func (i *Interpreter) setComputed(node ast.Node, receiver *runtime.ClassValue, prop *runtime.ComputedProperty, val runtime.Value) error {
	if prop.Setter == nil {
		return i.fail(newMissingSetter(node, receiver.ClassName, prop.Name))
	}
	actual := runtime.TypeOf(val)
	if !runtime.TypeMatches(prop.ValueType, actual) {
		return i.fail(newTypeAssignmentError(node, prop.Name, prop.ValueType, actual))
	}
	setter := prop.Setter
	if len(setter.Params) == 0 {
		setter = setter.WithParams([]*ast.Identifier{ast.NewIdentifier("newValue")})
	}
	_, err := i.invokeMethod(node, receiver, setter, []runtime.Value{val})
	return err
}

// resolveReceiver finds the object a member expression addresses. self
// resolves against the nearest class-scoped frame.
func (i *Interpreter) resolveReceiver(member *ast.MemberExpression, name string) (*runtime.ClassValue, error) {
	switch obj := member.Object.(type) {
	case *ast.ThisExpression:
		return i.selfObject(member)
	case *ast.Identifier:
		if obj.Name == runtime.SelfName {
			return i.selfObject(member)
		}
	}
	val, err := i.actualValue(member.Object)
	if err != nil {
		return nil, err
	}
	cls, ok := val.(*runtime.ClassValue)
	if !ok {
		return nil, i.fail(newMemberTypeError(member, val, name))
	}
	return cls, nil
}

func (i *Interpreter) selfObject(node ast.Node) (*runtime.ClassValue, error) {
	receiver := selfReceiver(i.currentEnv().SelfFrame())
	if receiver == nil {
		return nil, i.fail(newUndefinedVariable(node, runtime.SelfName))
	}
	return receiver, nil
}

func (i *Interpreter) evaluateMemberExpression(member *ast.MemberExpression) (runtime.Value, error) {
	if call, ok := member.Property.(*ast.CallExpression); ok {
		id, ok := call.Callee.(*ast.Identifier)
		if !ok {
			return nil, i.fail(newNotSupported(call.Callee))
		}
		return i.callMember(call, member, id.Name, call.Arguments)
	}
	id, ok := member.Property.(*ast.Identifier)
	if !ok {
		return nil, i.fail(newNotSupported(member.Property))
	}
	receiver, err := i.resolveReceiver(member, id.Name)
	if err != nil {
		return nil, err
	}
	binding, found := receiver.Member(id.Name)
	if !found {
		return nil, i.fail(newUndefinedVariable(member, id.Name))
	}
	switch b := binding.(type) {
	case *runtime.LiteralBinding:
		if !b.HasValue() {
			return nil, i.fail(newUndefinedError(member, id.Name))
		}
		return b.Value, nil
	case *runtime.ComputedProperty:
		return i.getComputed(member, receiver, b)
	case *runtime.FunctionValue:
		return b.WithEnv(i.classFrame(receiver, b.Env)), nil
	default:
		return nil, i.fail(newUndefinedVariable(member, id.Name))
	}
}

// evaluateMemberCall handles obj.f(args) written as a call whose callee is
// a member expression.
func (i *Interpreter) evaluateMemberCall(call *ast.CallExpression, member *ast.MemberExpression) (runtime.Value, error) {
	id, ok := member.Property.(*ast.Identifier)
	if !ok {
		callee, err := i.actualValue(member)
		if err != nil {
			return nil, err
		}
		args, err := i.evaluateArguments(call.Arguments, false)
		if err != nil {
			return nil, err
		}
		return i.callValue(call, callee, args)
	}
	return i.callMember(call, member, id.Name, call.Arguments)
}

func (i *Interpreter) callMember(call *ast.CallExpression, member *ast.MemberExpression, name string, argExprs []ast.Expression) (runtime.Value, error) {
	receiver, err := i.resolveReceiver(member, name)
	if err != nil {
		return nil, err
	}
	binding, found := receiver.Member(name)
	if !found {
		return nil, i.fail(newUndefinedVariable(member, name))
	}
	var callee runtime.Value
	switch b := binding.(type) {
	case *runtime.FunctionValue:
		args, err := i.evaluateArguments(argExprs, i.lazy)
		if err != nil {
			return nil, err
		}
		return i.invokeMethod(call, receiver, b, args)
	case *runtime.LiteralBinding:
		if !b.HasValue() {
			return nil, i.fail(newUndefinedError(member, name))
		}
		callee = b.Value
	case *runtime.ComputedProperty:
		callee, err = i.getComputed(member, receiver, b)
		if err != nil {
			return nil, err
		}
	}
	callee, err = i.force(callee)
	if err != nil {
		return nil, err
	}
	switch callee.(type) {
	case *runtime.FunctionValue, *runtime.NativeFunctionValue, *runtime.ClassValue:
	default:
		return nil, i.fail(newCallingNonFunctionValue(call, callee))
	}
	args, err := i.evaluateArguments(argExprs, false)
	if err != nil {
		return nil, err
	}
	return i.callValue(call, callee, args)
}

// assignMember writes through obj.x or self.x.
func (i *Interpreter) assignMember(expr *ast.AssignmentExpression, member *ast.MemberExpression, val runtime.Value) error {
	id, ok := member.Property.(*ast.Identifier)
	if !ok {
		return i.fail(newNotSupported(member.Property))
	}
	receiver, err := i.resolveReceiver(member, id.Name)
	if err != nil {
		return err
	}
	binding, found := receiver.Member(id.Name)
	if !found {
		return i.fail(newUndefinedVariable(member, id.Name))
	}
	switch b := binding.(type) {
	case *runtime.LiteralBinding:
		return i.writeCell(expr, id.Name, b, val)
	case *runtime.ComputedProperty:
		return i.setComputed(expr, receiver, b, val)
	default:
		return i.fail(newConstAssignment(expr, id.Name))
	}
}
