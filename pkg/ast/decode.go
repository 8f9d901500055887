package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// DecodeProgram parses an ESTree-style JSON document into a Program.
func DecodeProgram(data []byte) (*Program, error) {
	node, err := Decode(data)
	if err != nil {
		return nil, err
	}
	program, ok := node.(*Program)
	if !ok {
		return nil, fmt.Errorf("expected Program at root, got %s", node.NodeType())
	}
	return program, nil
}

// Decode parses an ESTree-style JSON document into a node tree. Numbers are
// decoded losslessly so `2` and `2.0` stay distinct.
func Decode(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode ast: %w", err)
	}
	return DecodeNode(raw)
}

// DecodeNode converts one generic JSON object into its node.
func DecodeNode(node map[string]any) (Node, error) {
	decoded, err := decodeNode(node)
	if err != nil {
		return nil, err
	}
	if loc, ok := node["loc"].(map[string]any); ok {
		SetSpan(decoded, decodeSpan(loc))
	}
	return decoded, nil
}

func decodeNode(node map[string]any) (Node, error) {
	typ, _ := node["type"].(string)
	kind := NodeType(typ)
	if IsUnsupportedKind(kind) {
		return NewUnsupported(kind), nil
	}
	switch kind {
	case NodeProgram:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return NewProgram(body), nil
	case NodeBlockStatement:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return NewBlockStatement(body), nil
	case NodeExpressionStatement:
		expr, err := decodeExpressionField(node, "expression", true)
		if err != nil {
			return nil, err
		}
		return NewExpressionStatement(expr), nil
	case NodeEmptyStatement:
		return NewEmptyStatement(), nil
	case NodeDebuggerStatement:
		return NewDebuggerStatement(), nil
	case NodeVariableDeclaration:
		kindStr, _ := node["kind"].(string)
		declKind, err := decodeDeclarationKind(kindStr)
		if err != nil {
			return nil, err
		}
		rawDecls, _ := node["declarations"].([]any)
		decls := make([]*VariableDeclarator, 0, len(rawDecls))
		for _, raw := range rawDecls {
			child, err := decodeChild(raw)
			if err != nil {
				return nil, err
			}
			decl, ok := child.(*VariableDeclarator)
			if !ok {
				return nil, fmt.Errorf("variable declaration expects declarators, got %s", child.NodeType())
			}
			decls = append(decls, decl)
		}
		return NewVariableDeclaration(declKind, decls), nil
	case NodeVariableDeclarator:
		id, err := decodeIdentifierField(node, "id")
		if err != nil {
			return nil, err
		}
		init, err := decodeExpressionField(node, "init", false)
		if err != nil {
			return nil, err
		}
		return NewVariableDeclarator(id, init, decodeTypeAnnotation(node["typeAnnotation"])), nil
	case NodeFunctionDeclaration:
		id, err := decodeIdentifierField(node, "id")
		if err != nil {
			return nil, err
		}
		params, body, err := decodeFunctionParts(node)
		if err != nil {
			return nil, err
		}
		return NewFunctionDeclaration(id, params, body), nil
	case NodeClassDeclaration:
		id, err := decodeIdentifierField(node, "id")
		if err != nil {
			return nil, err
		}
		rawMembers, _ := node["body"].([]any)
		if classBody, ok := node["body"].(map[string]any); ok {
			rawMembers, _ = classBody["body"].([]any)
		}
		members := make([]ClassMember, 0, len(rawMembers))
		for _, raw := range rawMembers {
			child, err := decodeChild(raw)
			if err != nil {
				return nil, err
			}
			member, ok := child.(ClassMember)
			if !ok {
				return nil, fmt.Errorf("%s is not allowed in a class body", child.NodeType())
			}
			members = append(members, member)
		}
		return NewClassDeclaration(id, members), nil
	case NodePropertyDefinition:
		key, err := decodeIdentifierField(node, "key")
		if err != nil {
			return nil, err
		}
		kindStr, _ := node["kind"].(string)
		declKind, err := decodeDeclarationKind(kindStr)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpressionField(node, "value", false)
		if err != nil {
			return nil, err
		}
		return NewPropertyDefinition(key, declKind, value, decodeTypeAnnotation(node["typeAnnotation"])), nil
	case NodeCompPropDeclaration:
		key, err := decodeIdentifierField(node, "key")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return NewCompPropDeclaration(key, decodeTypeAnnotation(node["typeAnnotation"]), body), nil
	case NodeMethodDefinition:
		key, err := decodeIdentifierField(node, "key")
		if err != nil {
			return nil, err
		}
		fnNode := node
		if value, ok := node["value"].(map[string]any); ok {
			fnNode = value
		}
		params, body, err := decodeFunctionParts(fnNode)
		if err != nil {
			return nil, err
		}
		return NewMethodDefinition(key, params, body), nil
	case NodeProtocolDeclaration:
		id, err := decodeIdentifierField(node, "id")
		if err != nil {
			return nil, err
		}
		return NewProtocolDeclaration(id), nil
	case NodeIfStatement:
		test, err := decodeExpressionField(node, "test", true)
		if err != nil {
			return nil, err
		}
		consequent, err := decodeStatementField(node, "consequent", true)
		if err != nil {
			return nil, err
		}
		alternate, err := decodeStatementField(node, "alternate", false)
		if err != nil {
			return nil, err
		}
		return NewIfStatement(test, consequent, alternate), nil
	case NodeReturnStatement:
		arg, err := decodeExpressionField(node, "argument", false)
		if err != nil {
			return nil, err
		}
		return NewReturnStatement(arg), nil
	case NodeIdentifier:
		name, _ := node["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("identifier missing name")
		}
		return NewIdentifier(name), nil
	case NodeLiteral:
		raw, _ := node["raw"].(string)
		value, err := decodeLiteralValue(node["value"], raw)
		if err != nil {
			return nil, err
		}
		lit := NewLiteral(value)
		lit.Raw = raw
		return lit, nil
	case NodeTemplateLiteral:
		rawQuasis, _ := node["quasis"].([]any)
		quasis := make([]*TemplateElement, 0, len(rawQuasis))
		for _, raw := range rawQuasis {
			child, err := decodeChild(raw)
			if err != nil {
				return nil, err
			}
			elem, ok := child.(*TemplateElement)
			if !ok {
				return nil, fmt.Errorf("template literal expects elements, got %s", child.NodeType())
			}
			quasis = append(quasis, elem)
		}
		exprs, err := decodeExpressions(node["expressions"])
		if err != nil {
			return nil, err
		}
		return NewTemplateLiteral(quasis, exprs), nil
	case NodeTemplateElement:
		value, _ := node["value"].(map[string]any)
		cooked, _ := value["cooked"].(string)
		raw, _ := value["raw"].(string)
		return NewTemplateElement(cooked, raw), nil
	case NodeThisExpression:
		return NewThisExpression(), nil
	case NodeUnaryExpression:
		op, _ := node["operator"].(string)
		arg, err := decodeExpressionField(node, "argument", true)
		if err != nil {
			return nil, err
		}
		return NewUnaryExpression(op, arg), nil
	case NodeBinaryExpression, NodeLogicalExpression, NodeAssignmentExpression:
		op, _ := node["operator"].(string)
		left, err := decodeExpressionField(node, "left", true)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpressionField(node, "right", true)
		if err != nil {
			return nil, err
		}
		switch kind {
		case NodeBinaryExpression:
			return NewBinaryExpression(op, left, right), nil
		case NodeLogicalExpression:
			return NewLogicalExpression(op, left, right), nil
		default:
			return NewAssignmentExpression(op, left, right), nil
		}
	case NodeCallExpression:
		callee, err := decodeExpressionField(node, "callee", true)
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return NewCallExpression(callee, args), nil
	case NodeMemberExpression:
		object, err := decodeExpressionField(node, "object", true)
		if err != nil {
			return nil, err
		}
		property, err := decodeExpressionField(node, "property", true)
		if err != nil {
			return nil, err
		}
		return NewMemberExpression(object, property), nil
	case "":
		return nil, fmt.Errorf("node missing type discriminator")
	default:
		return nil, fmt.Errorf("unknown node type %q", typ)
	}
}

func decodeChild(raw any) (Node, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid node entry %T", raw)
	}
	return DecodeNode(child)
}

func decodeStatements(raw any) ([]Statement, error) {
	items, _ := raw.([]any)
	out := make([]Statement, 0, len(items))
	for _, item := range items {
		child, err := decodeChild(item)
		if err != nil {
			return nil, err
		}
		stmt, err := asStatement(child)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func decodeExpressions(raw any) ([]Expression, error) {
	items, _ := raw.([]any)
	out := make([]Expression, 0, len(items))
	for _, item := range items {
		child, err := decodeChild(item)
		if err != nil {
			return nil, err
		}
		expr, ok := child.(Expression)
		if !ok {
			return nil, fmt.Errorf("expected expression, got %s", child.NodeType())
		}
		out = append(out, expr)
	}
	return out, nil
}

// asStatement accepts bare expressions where a statement is expected, the
// way some producers emit single-expression blocks.
func asStatement(node Node) (Statement, error) {
	switch n := node.(type) {
	case Statement:
		return n, nil
	case Expression:
		stmt := NewExpressionStatement(n)
		SetSpan(stmt, n.Span())
		return stmt, nil
	default:
		return nil, fmt.Errorf("expected statement, got %s", node.NodeType())
	}
}

func decodeExpressionField(node map[string]any, field string, required bool) (Expression, error) {
	raw, ok := node[field].(map[string]any)
	if !ok {
		if required {
			return nil, fmt.Errorf("%v missing %s", node["type"], field)
		}
		return nil, nil
	}
	child, err := DecodeNode(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := child.(Expression)
	if !ok {
		return nil, fmt.Errorf("%v.%s expects an expression, got %s", node["type"], field, child.NodeType())
	}
	return expr, nil
}

func decodeStatementField(node map[string]any, field string, required bool) (Statement, error) {
	raw, ok := node[field].(map[string]any)
	if !ok {
		if required {
			return nil, fmt.Errorf("%v missing %s", node["type"], field)
		}
		return nil, nil
	}
	child, err := DecodeNode(raw)
	if err != nil {
		return nil, err
	}
	return asStatement(child)
}

func decodeIdentifierField(node map[string]any, field string) (*Identifier, error) {
	expr, err := decodeExpressionField(node, field, true)
	if err != nil {
		return nil, err
	}
	id, ok := expr.(*Identifier)
	if !ok {
		return nil, fmt.Errorf("%v.%s expects an identifier, got %s", node["type"], field, expr.NodeType())
	}
	return id, nil
}

func decodeBlockField(node map[string]any, field string) (*BlockStatement, error) {
	stmt, err := decodeStatementField(node, field, true)
	if err != nil {
		return nil, err
	}
	block, ok := stmt.(*BlockStatement)
	if !ok {
		return nil, fmt.Errorf("%v.%s expects a block, got %s", node["type"], field, stmt.NodeType())
	}
	return block, nil
}

func decodeFunctionParts(node map[string]any) ([]*Identifier, *BlockStatement, error) {
	rawParams, _ := node["params"].([]any)
	params := make([]*Identifier, 0, len(rawParams))
	for _, raw := range rawParams {
		child, err := decodeChild(raw)
		if err != nil {
			return nil, nil, err
		}
		id, ok := child.(*Identifier)
		if !ok {
			return nil, nil, fmt.Errorf("parameters must be identifiers, got %s", child.NodeType())
		}
		params = append(params, id)
	}
	body, err := decodeBlockField(node, "body")
	if err != nil {
		return nil, nil, err
	}
	return params, body, nil
}

func decodeDeclarationKind(kind string) (DeclarationKind, error) {
	switch kind {
	case "let", "const":
		return DeclarationLet, nil
	case "var", "":
		return DeclarationVar, nil
	default:
		return "", fmt.Errorf("unknown declaration kind %q", kind)
	}
}

// decodeTypeAnnotation accepts either a bare type name or an object with a
// name / typeName / identifier child.
func decodeTypeAnnotation(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name
		}
		for _, key := range []string{"typeName", "typeAnnotation", "id"} {
			if child, ok := v[key]; ok {
				return decodeTypeAnnotation(child)
			}
		}
	}
	return ""
}

func decodeLiteralValue(value any, raw string) (any, error) {
	switch v := value.(type) {
	case nil, string, bool:
		return v, nil
	case json.Number:
		return numberFromText(v.String())
	case float64:
		if raw != "" {
			return numberFromText(raw)
		}
		if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1<<53 {
			return int64(v), nil
		}
		return v, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return nil, fmt.Errorf("unsupported literal value %T", value)
	}
}

func numberFromText(text string) (any, error) {
	num := json.Number(text)
	if !strings.ContainsAny(text, ".eE") {
		if i, err := num.Int64(); err == nil {
			return i, nil
		}
	}
	f, err := num.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid numeric literal %q: %w", text, err)
	}
	return f, nil
}

func decodeSpan(loc map[string]any) Span {
	return Span{Start: decodePosition(loc["start"]), End: decodePosition(loc["end"])}
}

func decodePosition(raw any) Position {
	pos, _ := raw.(map[string]any)
	return Position{Line: intField(pos["line"]), Column: intField(pos["column"])}
}

func intField(raw any) int {
	switch v := raw.(type) {
	case json.Number:
		i, _ := v.Int64()
		return int(i)
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
