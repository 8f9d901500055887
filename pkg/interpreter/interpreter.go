package interpreter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// ErrNilProgram is returned by Evaluate when given no program.
var ErrNilProgram = errors.New("interpreter: nil program")

// DefaultMaxDepth bounds nested node evaluation when Options.MaxDepth is zero.
const DefaultMaxDepth = 10000

// Options configures an Interpreter.
type Options struct {
	// Lazy delays non-literal arguments of interpreted calls as thunks.
	Lazy bool
	// MaxDepth bounds nested node evaluation. Zero selects DefaultMaxDepth.
	MaxDepth int
	// Trace logs every visited node at debug level.
	Trace    bool
	Logger   *slog.Logger
	Observer Observer
	// Stdout receives output of the print builtin.
	Stdout io.Writer
}

// Interpreter evaluates programs against one persistent global frame.
type Interpreter struct {
	global *runtime.Environment
	ctx    *EvalContext

	lazy      bool
	maxDepth  int
	trace     bool
	depth     int
	callDepth int

	observer Observer
	logger   *slog.Logger
	stdout   io.Writer
	goctx    context.Context
}

// New returns an interpreter with default options.
func New() *Interpreter {
	return NewWithOptions(Options{})
}

// NewWithOptions returns an interpreter with the prelude builtins defined.
func NewWithOptions(opts Options) *Interpreter {
	global := runtime.NewEnvironment("globalEnvironment", nil)
	i := &Interpreter{
		global:   global,
		ctx:      newEvalContext(global),
		lazy:     opts.Lazy,
		maxDepth: opts.MaxDepth,
		trace:    opts.Trace,
		observer: opts.Observer,
		logger:   opts.Logger,
		stdout:   opts.Stdout,
	}
	if i.maxDepth <= 0 {
		i.maxDepth = DefaultMaxDepth
	}
	if i.logger == nil {
		i.logger = slog.New(slog.DiscardHandler)
	}
	if i.stdout == nil {
		i.stdout = os.Stdout
	}
	i.definePrelude()
	return i
}

// GlobalEnvironment exposes the root frame holding the builtins.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Context exposes the evaluation state for drivers and tests.
func (i *Interpreter) Context() *EvalContext {
	return i.ctx
}

// Errors returns the diagnostics recorded so far, oldest first.
func (i *Interpreter) Errors() []error {
	out := make([]error, len(i.ctx.Errors))
	copy(out, i.ctx.Errors)
	return out
}

// StackDepth reports the number of current frames.
func (i *Interpreter) StackDepth() int {
	return i.ctx.Environments.Len()
}

// NodeStack returns the nodes being evaluated, outermost first.
func (i *Interpreter) NodeStack() []ast.Node {
	out := make([]ast.Node, len(i.ctx.Nodes))
	copy(out, i.ctx.Nodes)
	return out
}

// SetObserver replaces the step observer. Nil disables stepping.
func (i *Interpreter) SetObserver(obs Observer) {
	i.observer = obs
}

// SetLazy toggles lazy argument passing for subsequent evaluations.
func (i *Interpreter) SetLazy(lazy bool) {
	i.lazy = lazy
}

// Evaluate runs program in a fresh program frame stacked on the frames of
// earlier programs and returns its forced result. The first unrecovered
// diagnostic is returned as a *RuntimeError; cancellation of ctx or an
// observer error is returned as an *InterruptError.
func (i *Interpreter) Evaluate(ctx context.Context, program *ast.Program) (runtime.Value, error) {
	if program == nil {
		return nil, ErrNilProgram
	}
	if ctx == nil {
		ctx = context.Background()
	}
	i.goctx = ctx
	i.depth = 0
	i.callDepth = 0
	i.ctx.Nodes = i.ctx.Nodes[:0]
	defer func() { i.goctx = nil }()

	val, err := i.evaluate(program)
	if err != nil {
		i.ctx.Environments.Truncate(i.ctx.OuterFrames)
		i.ctx.Nodes = i.ctx.Nodes[:0]
		return nil, err
	}
	return val, nil
}

func (i *Interpreter) evaluateProgram(program *ast.Program) (runtime.Value, error) {
	env := runtime.NewEnvironment("programEnvironment", i.currentEnv())
	i.pushEnv(env)
	i.ctx.OuterFrames = i.ctx.Environments.Len()
	i.logger.Debug("program", "statements", len(program.Body), "outerFrames", i.ctx.OuterFrames)

	result, err := i.evaluateStatements(program.Body, env)
	if err != nil {
		ret, ok := err.(*ReturnValue)
		if !ok {
			if isSignal(err) {
				return runtime.Void, nil
			}
			return nil, err
		}
		result = ret.Value
	}
	return i.force(result)
}
