package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func IDs(names ...string) []*Identifier {
	out := make([]*Identifier, len(names))
	for i, name := range names {
		out[i] = ID(name)
	}
	return out
}

func Int(value int64) *Literal {
	return NewLiteral(value)
}

func Dbl(value float64) *Literal {
	return NewLiteral(value)
}

func Str(value string) *Literal {
	return NewLiteral(value)
}

func Bool(value bool) *Literal {
	return NewLiteral(value)
}

func Null() *Literal {
	return NewLiteral(nil)
}

func Tmpl(text string) *TemplateLiteral {
	return NewTemplateLiteral([]*TemplateElement{NewTemplateElement(text, text)}, nil)
}

func This() *ThisExpression {
	return NewThisExpression()
}

// Operator helpers.

func Un(op string, arg Expression) *UnaryExpression {
	return NewUnaryExpression(op, arg)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Logic(op string, left, right Expression) *LogicalExpression {
	return NewLogicalExpression(op, left, right)
}

func Assign(target, value Expression) *AssignmentExpression {
	return NewAssignmentExpression("=", target, value)
}

// Call and member helpers.

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func CallName(name string, args ...Expression) *CallExpression {
	return NewCallExpression(ID(name), args)
}

func Member(object Expression, name string) *MemberExpression {
	return NewMemberExpression(object, ID(name))
}

func MethodCall(object Expression, name string, args ...Expression) *MemberExpression {
	return NewMemberExpression(object, CallName(name, args...))
}

func Self(name string) *MemberExpression {
	return Member(ID("self"), name)
}

func SelfCall(name string, args ...Expression) *MemberExpression {
	return MethodCall(ID("self"), name, args...)
}

// Statement helpers.

func Prog(stmts ...Statement) *Program {
	return NewProgram(stmts)
}

func Block(stmts ...Statement) *BlockStatement {
	return NewBlockStatement(stmts)
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Ret(expr Expression) *ReturnStatement {
	return NewReturnStatement(expr)
}

func If(test Expression, consequent, alternate Statement) *IfStatement {
	return NewIfStatement(test, consequent, alternate)
}

func Let(name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(DeclarationLet, []*VariableDeclarator{NewVariableDeclarator(ID(name), init, "")})
}

func Var(name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(DeclarationVar, []*VariableDeclarator{NewVariableDeclarator(ID(name), init, "")})
}

// Typed declares `kind name: typeName` with an optional initializer.
func Typed(kind DeclarationKind, name, typeName string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(kind, []*VariableDeclarator{NewVariableDeclarator(ID(name), init, typeName)})
}

func Fn(name string, params []string, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), IDs(params...), Block(body...))
}

func Protocol(name string) *ProtocolDeclaration {
	return NewProtocolDeclaration(ID(name))
}

func Debugger() *DebuggerStatement {
	return NewDebuggerStatement()
}

func Empty() *EmptyStatement {
	return NewEmptyStatement()
}

func Unsup(kind NodeType) *Unsupported {
	return NewUnsupported(kind)
}

// Class helpers.

func Class(name string, members ...ClassMember) *ClassDeclaration {
	return NewClassDeclaration(ID(name), members)
}

func Stored(kind DeclarationKind, name string, value Expression) *PropertyDefinition {
	return NewPropertyDefinition(ID(name), kind, value, "")
}

func StoredTyped(kind DeclarationKind, name, typeName string, value Expression) *PropertyDefinition {
	return NewPropertyDefinition(ID(name), kind, value, typeName)
}

func Computed(name, typeName string, body ...Statement) *CompPropDeclaration {
	return NewCompPropDeclaration(ID(name), typeName, Block(body...))
}

func Getter(body ...Statement) *FunctionDeclaration {
	return Fn("get", nil, body...)
}

// Setter declares `set(param)`; an empty param leaves the implicit newValue.
func Setter(param string, body ...Statement) *FunctionDeclaration {
	if param == "" {
		return Fn("set", nil, body...)
	}
	return Fn("set", []string{param}, body...)
}

func Method(name string, params []string, body ...Statement) *MethodDefinition {
	return NewMethodDefinition(ID(name), IDs(params...), Block(body...))
}
