package interpreter

import (
	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// evaluate is the single entry for every node. Each call is a suspension
// point: the node is pushed on the node stack, the observer and the
// context are consulted, and the node is popped when its handler returns.
func (i *Interpreter) evaluate(node ast.Node) (runtime.Value, error) {
	if node == nil {
		return runtime.Void, nil
	}
	if i.goctx != nil {
		if err := i.goctx.Err(); err != nil {
			return nil, &InterruptError{Node: node, Cause: err}
		}
	}
	i.ctx.Nodes = append(i.ctx.Nodes, node)
	i.depth++
	defer func() {
		i.depth--
		i.ctx.Nodes = i.ctx.Nodes[:len(i.ctx.Nodes)-1]
		_ = i.notify(StepLeave, node)
	}()
	if i.depth > i.maxDepth {
		return nil, i.fail(newMaximumRecursionDepth(node, i.maxDepth))
	}
	if i.trace {
		i.logger.Debug("visit", "node", string(node.NodeType()), "depth", i.depth, "span", node.Span().String())
	}
	if err := i.notify(StepVisit, node); err != nil {
		return nil, err
	}
	return i.dispatch(node)
}

func (i *Interpreter) dispatch(node ast.Node) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Program:
		return i.evaluateProgram(n)
	case *ast.BlockStatement:
		return i.evaluateBlockStatement(n)
	case *ast.ExpressionStatement:
		return i.evaluate(n.Expression)
	case *ast.EmptyStatement, *ast.ProtocolDeclaration:
		return runtime.Void, nil
	case *ast.DebuggerStatement:
		if err := i.notify(StepBreakpoint, n); err != nil {
			return nil, err
		}
		return runtime.Void, nil
	case *ast.VariableDeclaration:
		return i.evaluateVariableDeclaration(n)
	case *ast.FunctionDeclaration:
		return i.evaluateFunctionDeclaration(n)
	case *ast.ClassDeclaration:
		return i.evaluateClassDeclaration(n)
	case *ast.PropertyDefinition:
		if n.Value == nil {
			return runtime.Void, nil
		}
		return i.actualValue(n.Value)
	case *ast.CompPropDeclaration:
		if n.Body == nil {
			return runtime.Void, nil
		}
		return i.evaluate(n.Body)
	case *ast.MethodDefinition:
		return &runtime.FunctionValue{Name: n.Key.Name, Params: n.Params, Body: n.Body, Env: i.currentEnv(), Declaration: n}, nil
	case *ast.IfStatement:
		return i.evaluateIfStatement(n)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n)
	case *ast.Identifier:
		return i.evaluateIdentifier(n)
	case *ast.Literal:
		return i.evaluateLiteral(n)
	case *ast.TemplateLiteral:
		if len(n.Quasis) == 0 {
			return runtime.StringValue{Val: ""}, nil
		}
		return runtime.StringValue{Val: n.Quasis[0].Cooked}, nil
	case *ast.ThisExpression:
		if this := i.currentEnv().This(); this != nil {
			return this, nil
		}
		return runtime.Void, nil
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n)
	case *ast.LogicalExpression:
		return i.evaluateLogicalExpression(n)
	case *ast.CallExpression:
		return i.evaluateCallExpression(n)
	case *ast.MemberExpression:
		return i.evaluateMemberExpression(n)
	case *ast.AssignmentExpression:
		return i.evaluateAssignmentExpression(n)
	default:
		return nil, i.fail(newNotSupported(node))
	}
}
