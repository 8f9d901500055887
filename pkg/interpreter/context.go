package interpreter

import (
	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// EvalContext is the state threaded through one interpreter: the stack of
// current frames, the stack of nodes being evaluated and the ordered list
// of diagnostics raised so far.
type EvalContext struct {
	Environments *runtime.EnvStack
	Nodes        []ast.Node
	Errors       []error
	// OuterFrames is the number of frames that survive a runtime error:
	// the global frame plus one frame per evaluated program.
	OuterFrames int
}

func newEvalContext(global *runtime.Environment) *EvalContext {
	return &EvalContext{
		Environments: runtime.NewEnvStack(global),
		OuterFrames:  1,
	}
}

func (c *EvalContext) currentNode() ast.Node {
	if len(c.Nodes) == 0 {
		return nil
	}
	return c.Nodes[len(c.Nodes)-1]
}

// callSites returns the executing call expressions, outermost first.
func (c *EvalContext) callSites() []ast.Node {
	var calls []ast.Node
	for _, node := range c.Nodes {
		if _, ok := node.(*ast.CallExpression); ok {
			calls = append(calls, node)
		}
	}
	return calls
}

func (c *EvalContext) recorded(err *RuntimeError) bool {
	for _, existing := range c.Errors {
		if existing == error(err) {
			return true
		}
	}
	return false
}

// fail records err and cuts the environment stack back to the outer
// frames. Callers return the result without popping their own frames.
func (i *Interpreter) fail(err *RuntimeError) error {
	if i.ctx.recorded(err) {
		return err
	}
	if err.Node == nil {
		err.Node = i.ctx.currentNode()
	}
	err.Calls = i.ctx.callSites()
	i.ctx.Errors = append(i.ctx.Errors, err)
	i.ctx.Environments.Truncate(i.ctx.OuterFrames)
	i.logger.Debug("runtime error", "kind", string(err.Kind), "message", err.Message)
	return err
}

func (i *Interpreter) currentEnv() *runtime.Environment {
	return i.ctx.Environments.Current()
}

func (i *Interpreter) pushEnv(env *runtime.Environment) {
	i.ctx.Environments.Push(env)
}

func (i *Interpreter) popEnv() {
	i.ctx.Environments.Pop()
}
