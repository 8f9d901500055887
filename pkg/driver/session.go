package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/interpreter"
	"xslang/interpreter-go/pkg/runtime"
)

// ErrStepBudgetExceeded stops a program that visits more nodes than
// Config.MaxSteps allows.
var ErrStepBudgetExceeded = errors.New("step budget exceeded")

// StepBudget is an observer that interrupts evaluation after a fixed
// number of visited nodes.
type StepBudget struct {
	Limit int
	steps int
}

func NewStepBudget(limit int) *StepBudget {
	return &StepBudget{Limit: limit}
}

func (b *StepBudget) OnStep(ev interpreter.StepEvent) error {
	if ev.Kind != interpreter.StepVisit {
		return nil
	}
	b.steps++
	if b.Limit > 0 && b.steps > b.Limit {
		return fmt.Errorf("%w (%d)", ErrStepBudgetExceeded, b.Limit)
	}
	return nil
}

// Steps reports how many nodes were visited since the last Reset.
func (b *StepBudget) Steps() int { return b.steps }

func (b *StepBudget) Reset() { b.steps = 0 }

// RunResult describes one evaluated program.
type RunResult struct {
	Name  string
	Value runtime.Value
	Err   error
	Steps int
}

// Failed reports whether the program ended with a diagnostic or interrupt.
func (r RunResult) Failed() bool { return r.Err != nil }

type SessionOptions struct {
	Stdout io.Writer
	Logger *slog.Logger
}

// Session evaluates a sequence of programs against one interpreter, so
// later programs see the definitions of earlier ones. A failing program
// does not stop the session.
type Session struct {
	ID     uuid.UUID
	config *Config
	interp *interpreter.Interpreter
	budget *StepBudget
	logger *slog.Logger
}

func NewSession(cfg *Config, opts SessionOptions) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("session", id.String())
	budget := NewStepBudget(cfg.MaxSteps)
	interp := interpreter.NewWithOptions(interpreter.Options{
		Lazy:     cfg.Lazy,
		MaxDepth: cfg.MaxDepth,
		Trace:    cfg.SlogLevel() <= slog.LevelDebug,
		Logger:   logger,
		Observer: budget,
		Stdout:   opts.Stdout,
	})
	return &Session{ID: id, config: cfg, interp: interp, budget: budget, logger: logger}
}

// Interpreter exposes the underlying interpreter, e.g. to define builtins.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// Run evaluates one program. The result carries either the forced value or
// the error that ended it.
func (s *Session) Run(ctx context.Context, name string, program *ast.Program) RunResult {
	s.budget.Reset()
	s.logger.Info("run", "program", name, "statements", len(program.Body))
	val, err := s.interp.Evaluate(ctx, program)
	result := RunResult{Name: name, Value: val, Err: err, Steps: s.budget.Steps()}
	if err != nil {
		s.logger.Warn("program failed", "program", name, "error", err, "frames", s.interp.StackDepth())
	}
	return result
}

// RunFile loads and evaluates one program file.
func (s *Session) RunFile(ctx context.Context, path string) RunResult {
	program, err := LoadProgram(path)
	if err != nil {
		return RunResult{Name: path, Err: err}
	}
	return s.Run(ctx, path, program)
}
