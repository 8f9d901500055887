package ast

type NodeType string

const (
	NodeProgram              NodeType = "Program"
	NodeBlockStatement       NodeType = "BlockStatement"
	NodeExpressionStatement  NodeType = "ExpressionStatement"
	NodeEmptyStatement       NodeType = "EmptyStatement"
	NodeDebuggerStatement    NodeType = "DebuggerStatement"
	NodeVariableDeclaration  NodeType = "VariableDeclaration"
	NodeVariableDeclarator   NodeType = "VariableDeclarator"
	NodeFunctionDeclaration  NodeType = "FunctionDeclaration"
	NodeClassDeclaration     NodeType = "ClassDeclaration"
	NodePropertyDefinition   NodeType = "PropertyDefinition"
	NodeCompPropDeclaration  NodeType = "CompPropDeclaration"
	NodeMethodDefinition     NodeType = "MethodDefinition"
	NodeProtocolDeclaration  NodeType = "ProtocolDeclaration"
	NodeIfStatement          NodeType = "IfStatement"
	NodeReturnStatement      NodeType = "ReturnStatement"
	NodeIdentifier           NodeType = "Identifier"
	NodeLiteral              NodeType = "Literal"
	NodeTemplateLiteral      NodeType = "TemplateLiteral"
	NodeTemplateElement      NodeType = "TemplateElement"
	NodeThisExpression       NodeType = "ThisExpression"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeLogicalExpression    NodeType = "LogicalExpression"
	NodeCallExpression       NodeType = "CallExpression"
	NodeMemberExpression     NodeType = "MemberExpression"
	NodeAssignmentExpression NodeType = "AssignmentExpression"

	// Kinds outside the supported language subset. They decode so the
	// evaluator can reject them with a located diagnostic.
	NodeArrayExpression         NodeType = "ArrayExpression"
	NodeObjectExpression        NodeType = "ObjectExpression"
	NodeFunctionExpression      NodeType = "FunctionExpression"
	NodeArrowFunctionExpression NodeType = "ArrowFunctionExpression"
	NodeConditionalExpression   NodeType = "ConditionalExpression"
	NodeNewExpression           NodeType = "NewExpression"
	NodeWhileStatement          NodeType = "WhileStatement"
	NodeForStatement            NodeType = "ForStatement"
	NodeBreakStatement          NodeType = "BreakStatement"
	NodeContinueStatement       NodeType = "ContinueStatement"
	NodeImportDeclaration       NodeType = "ImportDeclaration"
)

// UnsupportedKinds lists the node kinds that decode into *Unsupported.
var UnsupportedKinds = []NodeType{
	NodeArrayExpression,
	NodeObjectExpression,
	NodeFunctionExpression,
	NodeArrowFunctionExpression,
	NodeConditionalExpression,
	NodeNewExpression,
	NodeWhileStatement,
	NodeForStatement,
	NodeBreakStatement,
	NodeContinueStatement,
	NodeImportDeclaration,
}

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// ClassMember is any node allowed directly inside a class body.
type ClassMember interface {
	Node
	classMemberNode()
}

type classMemberMarker struct{}

func (classMemberMarker) classMemberNode() {}

// Program and blocks

type Program struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type EmptyStatement struct {
	nodeImpl
	statementMarker
}

func NewEmptyStatement() *EmptyStatement {
	return &EmptyStatement{nodeImpl: newNodeImpl(NodeEmptyStatement)}
}

type DebuggerStatement struct {
	nodeImpl
	statementMarker
}

func NewDebuggerStatement() *DebuggerStatement {
	return &DebuggerStatement{nodeImpl: newNodeImpl(NodeDebuggerStatement)}
}

// Declarations

type DeclarationKind string

const (
	DeclarationLet DeclarationKind = "let"
	DeclarationVar DeclarationKind = "var"
)

// Mutable reports whether bindings introduced with this keyword may be rewritten.
func (k DeclarationKind) Mutable() bool { return k == DeclarationVar }

type VariableDeclarator struct {
	nodeImpl

	ID             *Identifier `json:"id"`
	Init           Expression  `json:"init,omitempty"`
	TypeAnnotation string      `json:"typeAnnotation,omitempty"`
}

func NewVariableDeclarator(id *Identifier, init Expression, typeAnnotation string) *VariableDeclarator {
	return &VariableDeclarator{nodeImpl: newNodeImpl(NodeVariableDeclarator), ID: id, Init: init, TypeAnnotation: typeAnnotation}
}

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Kind         DeclarationKind       `json:"kind"`
	Declarations []*VariableDeclarator `json:"declarations"`
}

func NewVariableDeclaration(kind DeclarationKind, declarations []*VariableDeclarator) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Kind: kind, Declarations: declarations}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	ID     *Identifier     `json:"id"`
	Params []*Identifier   `json:"params"`
	Body   *BlockStatement `json:"body"`
}

func NewFunctionDeclaration(id *Identifier, params []*Identifier, body *BlockStatement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), ID: id, Params: params, Body: body}
}

type ClassDeclaration struct {
	nodeImpl
	statementMarker

	ID   *Identifier   `json:"id"`
	Body []ClassMember `json:"body"`
}

func NewClassDeclaration(id *Identifier, body []ClassMember) *ClassDeclaration {
	return &ClassDeclaration{nodeImpl: newNodeImpl(NodeClassDeclaration), ID: id, Body: body}
}

// PropertyDefinition is a stored property (`var count = 0`).
type PropertyDefinition struct {
	nodeImpl
	statementMarker
	classMemberMarker

	Key            *Identifier     `json:"key"`
	Kind           DeclarationKind `json:"kind"`
	Value          Expression      `json:"value,omitempty"`
	TypeAnnotation string          `json:"typeAnnotation,omitempty"`
}

func NewPropertyDefinition(key *Identifier, kind DeclarationKind, value Expression, typeAnnotation string) *PropertyDefinition {
	return &PropertyDefinition{nodeImpl: newNodeImpl(NodePropertyDefinition), Key: key, Kind: kind, Value: value, TypeAnnotation: typeAnnotation}
}

// CompPropDeclaration is a computed property. Accessors are nested
// function declarations named `get` and `set` inside Body.
type CompPropDeclaration struct {
	nodeImpl
	statementMarker
	classMemberMarker

	Key            *Identifier     `json:"key"`
	TypeAnnotation string          `json:"typeAnnotation,omitempty"`
	Body           *BlockStatement `json:"body"`
}

func NewCompPropDeclaration(key *Identifier, typeAnnotation string, body *BlockStatement) *CompPropDeclaration {
	return &CompPropDeclaration{nodeImpl: newNodeImpl(NodeCompPropDeclaration), Key: key, TypeAnnotation: typeAnnotation, Body: body}
}

// Accessor returns the nested `get` or `set` declaration, if any.
func (c *CompPropDeclaration) Accessor(name string) *FunctionDeclaration {
	if c.Body == nil {
		return nil
	}
	for _, stmt := range c.Body.Body {
		if fn, ok := stmt.(*FunctionDeclaration); ok && fn.ID != nil && fn.ID.Name == name {
			return fn
		}
	}
	return nil
}

type MethodDefinition struct {
	nodeImpl
	classMemberMarker

	Key    *Identifier     `json:"key"`
	Params []*Identifier   `json:"params"`
	Body   *BlockStatement `json:"body"`
}

func NewMethodDefinition(key *Identifier, params []*Identifier, body *BlockStatement) *MethodDefinition {
	return &MethodDefinition{nodeImpl: newNodeImpl(NodeMethodDefinition), Key: key, Params: params, Body: body}
}

type ProtocolDeclaration struct {
	nodeImpl
	statementMarker

	ID *Identifier `json:"id"`
}

func NewProtocolDeclaration(id *Identifier) *ProtocolDeclaration {
	return &ProtocolDeclaration{nodeImpl: newNodeImpl(NodeProtocolDeclaration), ID: id}
}

// Control flow

type IfStatement struct {
	nodeImpl
	statementMarker

	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate,omitempty"`
}

func NewIfStatement(test Expression, consequent, alternate Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Test: test, Consequent: consequent, Alternate: alternate}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

// Expressions

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literal holds one of int64, float64, string, bool or nil.
type Literal struct {
	nodeImpl
	expressionMarker

	Value any    `json:"value"`
	Raw   string `json:"raw,omitempty"`
}

func NewLiteral(value any) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

type TemplateElement struct {
	nodeImpl

	Cooked string `json:"cooked"`
	Raw    string `json:"raw"`
}

func NewTemplateElement(cooked, raw string) *TemplateElement {
	return &TemplateElement{nodeImpl: newNodeImpl(NodeTemplateElement), Cooked: cooked, Raw: raw}
}

type TemplateLiteral struct {
	nodeImpl
	expressionMarker

	Quasis      []*TemplateElement `json:"quasis"`
	Expressions []Expression       `json:"expressions"`
}

func NewTemplateLiteral(quasis []*TemplateElement, expressions []Expression) *TemplateLiteral {
	return &TemplateLiteral{nodeImpl: newNodeImpl(NodeTemplateLiteral), Quasis: quasis, Expressions: expressions}
}

type ThisExpression struct {
	nodeImpl
	expressionMarker
}

func NewThisExpression() *ThisExpression {
	return &ThisExpression{nodeImpl: newNodeImpl(NodeThisExpression)}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Argument Expression `json:"argument"`
}

func NewUnaryExpression(operator string, argument Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Argument: argument}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewLogicalExpression(operator string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: operator, Left: left, Right: right}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, arguments []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: arguments}
}

// MemberExpression addresses `object.property`. Property is an *Identifier
// for field access or a *CallExpression for `object.method(args)`.
type MemberExpression struct {
	nodeImpl
	expressionMarker

	Object   Expression `json:"object"`
	Property Expression `json:"property"`
}

func NewMemberExpression(object, property Expression) *MemberExpression {
	return &MemberExpression{nodeImpl: newNodeImpl(NodeMemberExpression), Object: object, Property: property}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewAssignmentExpression(operator string, left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Left: left, Right: right}
}

// Unsupported stands in for any node kind outside the language subset.
type Unsupported struct {
	nodeImpl
	expressionMarker
	statementMarker
}

func NewUnsupported(kind NodeType) *Unsupported {
	return &Unsupported{nodeImpl: newNodeImpl(kind)}
}

// IsUnsupportedKind reports whether kind decodes into *Unsupported.
func IsUnsupportedKind(kind NodeType) bool {
	for _, k := range UnsupportedKinds {
		if k == kind {
			return true
		}
	}
	return false
}
