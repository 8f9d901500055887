package interpreter

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

func TestEvaluateLiteralProgram(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp, ast.Expr(ast.Str("hello")))
	expectString(t, val, "hello")
}

func TestEvaluateEmptyProgramIsVoid(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp)
	if !runtime.IsVoid(val) {
		t.Fatalf("expected void, got %#v", val)
	}
}

func TestEvaluateNullLiteralIsVoid(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp, ast.Expr(ast.Null()))
	if !runtime.IsVoid(val) {
		t.Fatalf("expected void, got %#v", val)
	}
}

func TestEvaluateRejectsNilProgram(t *testing.T) {
	interp := New()
	if _, err := interp.Evaluate(context.Background(), nil); !errors.Is(err, ErrNilProgram) {
		t.Fatalf("expected ErrNilProgram, got %v", err)
	}
	val := mustEvaluate(t, interp, ast.Expr(ast.Int(1)))
	expectInt(t, val, 1)
}

func TestEvaluateArithmeticOnBindings(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Let("a", ast.Int(7)),
		ast.Var("b", ast.Int(2)),
		ast.Expr(ast.Bin("-", ast.Bin("*", ast.ID("a"), ast.ID("b")), ast.Bin("/", ast.ID("a"), ast.ID("b")))),
	)
	expectInt(t, val, 11)
}

func TestEvaluateTemplateLiteralUsesFirstQuasi(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp, ast.Expr(ast.Tmpl("plain text")))
	expectString(t, val, "plain text")
}

func TestIfStatementTakesConsequentOnlyForTrue(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Var("x", ast.Int(0)),
		ast.If(ast.Bin("<", ast.Int(1), ast.Int(2)),
			ast.Block(ast.Expr(ast.Assign(ast.ID("x"), ast.Int(1)))),
			ast.Block(ast.Expr(ast.Assign(ast.ID("x"), ast.Int(2)))),
		),
		ast.If(ast.Bool(false), ast.Block(ast.Expr(ast.Assign(ast.ID("x"), ast.Int(3)))), nil),
		ast.Expr(ast.ID("x")),
	)
	expectInt(t, val, 1)
}

func TestBlockScopesDeclarations(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Let("x", ast.Str("outer")),
		ast.Block(ast.Let("x", ast.Str("inner"))),
		ast.Expr(ast.ID("x")),
	)
	expectString(t, val, "outer")

	mustFail(t, interp, UndefinedVariable,
		ast.Block(ast.Let("hidden", ast.Int(1))),
		ast.Expr(ast.ID("hidden")),
	)
}

func TestHoistedNameIsUnassignedBeforeDeclaration(t *testing.T) {
	interp := New()
	rt := mustFail(t, interp, UnassignedVariable,
		ast.Expr(ast.ID("later")),
		ast.Let("later", ast.Int(1)),
	)
	if rt.Name != "later" {
		t.Fatalf("expected diagnostic for later, got %q", rt.Name)
	}
}

func TestAssignmentBeforeDeclarationBindsHoistedName(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Expr(ast.Assign(ast.ID("n"), ast.Int(5))),
		ast.Expr(ast.ID("n")),
		ast.Var("n", ast.Bin("+", ast.ID("n"), ast.Int(1))),
		ast.Expr(ast.ID("n")),
	)
	expectInt(t, val, 6)
}

func TestRedeclarationInSameBlockFails(t *testing.T) {
	interp := New()
	mustFail(t, interp, VariableRedeclaration,
		ast.Let("x", ast.Int(1)),
		ast.Var("x", ast.Int(2)),
	)
}

func TestLetRejectsReassignment(t *testing.T) {
	interp := New()
	rt := mustFail(t, interp, ConstAssignment,
		ast.Let("x", ast.Int(1)),
		ast.Expr(ast.Assign(ast.ID("x"), ast.Int(2))),
	)
	if rt.Name != "x" {
		t.Fatalf("expected diagnostic for x, got %q", rt.Name)
	}
}

func TestTypeIsCheckedBeforeMutability(t *testing.T) {
	interp := New()
	rt := mustFail(t, interp, TypeAssignmentError,
		ast.Let("x", ast.Int(1)),
		ast.Expr(ast.Assign(ast.ID("x"), ast.Str("one"))),
	)
	if rt.Expected != runtime.TypeInt || rt.Actual != runtime.TypeString {
		t.Fatalf("unexpected types %q / %q", rt.Expected, rt.Actual)
	}
}

func TestVarKeepsItsFirstType(t *testing.T) {
	interp := New()
	mustFail(t, interp, TypeAssignmentError,
		ast.Var("x", ast.Int(1)),
		ast.Expr(ast.Assign(ast.ID("x"), ast.Dbl(1.5))),
	)
}

func TestParameterKeepsItsArgumentType(t *testing.T) {
	program := []ast.Statement{
		ast.Fn("f", []string{"n"},
			ast.Expr(ast.Assign(ast.ID("n"), ast.Str("s"))),
			ast.Ret(ast.ID("n")),
		),
		ast.Expr(ast.CallName("f", ast.Bin("+", ast.Int(1), ast.Int(1)))),
	}
	for _, lazy := range []bool{false, true} {
		interp := NewWithOptions(Options{Lazy: lazy})
		rt := mustFail(t, interp, TypeAssignmentError, program...)
		if rt.Expected != runtime.TypeInt || rt.Actual != runtime.TypeString {
			t.Fatalf("lazy=%v: unexpected types %q / %q", lazy, rt.Expected, rt.Actual)
		}
	}
}

func TestLazyParameterAcceptsSameTypedWrite(t *testing.T) {
	interp := NewWithOptions(Options{Lazy: true})
	count := defineCounter(interp, "tick")
	val := mustEvaluate(t, interp,
		ast.Fn("bump", []string{"n"},
			ast.Expr(ast.Assign(ast.ID("n"), ast.Bin("+", ast.ID("n"), ast.Int(10)))),
			ast.Ret(ast.ID("n")),
		),
		ast.Expr(ast.CallName("bump", ast.CallName("tick"))),
	)
	expectInt(t, val, 11)
	if *count != 1 {
		t.Fatalf("expected a single evaluation, got %d", *count)
	}
}

func TestTypedDeclarationWithoutValue(t *testing.T) {
	interp := New()
	mustFail(t, interp, UndefinedError,
		ast.Typed(ast.DeclarationVar, "x", "Int", nil),
		ast.Expr(ast.ID("x")),
	)

	interp = New()
	mustFail(t, interp, TypeAssignmentError,
		ast.Typed(ast.DeclarationVar, "x", "Int", nil),
		ast.Expr(ast.Assign(ast.ID("x"), ast.Str("no"))),
	)

	interp = New()
	val := mustEvaluate(t, interp,
		ast.Typed(ast.DeclarationLet, "x", "Int", nil),
		ast.Expr(ast.Assign(ast.ID("x"), ast.Int(4))),
		ast.Expr(ast.ID("x")),
	)
	expectInt(t, val, 4)
}

func TestTypedDeclarationRejectsMismatchedInitializer(t *testing.T) {
	interp := New()
	mustFail(t, interp, TypeAssignmentError,
		ast.Typed(ast.DeclarationLet, "x", "String", ast.Int(1)),
	)
}

func TestUndefinedVariable(t *testing.T) {
	interp := New()
	rt := mustFail(t, interp, UndefinedVariable, ast.Expr(ast.ID("nowhere")))
	if rt.Message != "Cannot find 'nowhere' in scope" {
		t.Fatalf("unexpected message %q", rt.Message)
	}
}

func TestFunctionCallAndClosure(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Let("base", ast.Int(10)),
		ast.Fn("add", []string{"a", "b"}, ast.Ret(ast.Bin("+", ast.Bin("+", ast.ID("a"), ast.ID("b")), ast.ID("base")))),
		ast.Expr(ast.CallName("add", ast.Int(1), ast.Int(2))),
	)
	expectInt(t, val, 13)
}

func TestFunctionWithoutReturnYieldsVoid(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Fn("noop", nil, ast.Expr(ast.Int(1))),
		ast.Expr(ast.CallName("noop")),
	)
	if !runtime.IsVoid(val) {
		t.Fatalf("expected void, got %#v", val)
	}
}

func TestParametersAreFreshPerCall(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Fn("bump", []string{"n"},
			ast.Expr(ast.Assign(ast.ID("n"), ast.Bin("+", ast.ID("n"), ast.Int(1)))),
			ast.Ret(ast.ID("n")),
		),
		ast.Let("x", ast.Int(1)),
		ast.Expr(ast.CallName("bump", ast.ID("x"))),
		ast.Expr(ast.ID("x")),
	)
	expectInt(t, val, 1)
}

func TestRecursiveFunction(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Fn("fact", []string{"n"},
			ast.If(ast.Bin("<=", ast.ID("n"), ast.Int(1)), ast.Block(ast.Ret(ast.Int(1))), nil),
			ast.Ret(ast.Bin("*", ast.ID("n"), ast.CallName("fact", ast.Bin("-", ast.ID("n"), ast.Int(1))))),
		),
		ast.Expr(ast.CallName("fact", ast.Int(10))),
	)
	expectInt(t, val, 3628800)
}

func TestFunctionsCannotBeReassigned(t *testing.T) {
	interp := New()
	mustFail(t, interp, ConstAssignment,
		ast.Fn("f", nil),
		ast.Expr(ast.Assign(ast.ID("f"), ast.Int(1))),
	)
}

func TestTailCallsDoNotGrowTheStack(t *testing.T) {
	loop := ast.Fn("loop", []string{"n"},
		ast.If(ast.Bin("==", ast.ID("n"), ast.Int(0)), ast.Block(ast.Ret(ast.CallName("depth"))), nil),
		ast.Ret(ast.CallName("loop", ast.Bin("-", ast.ID("n"), ast.Int(1)))),
	)

	shallow := New()
	defineDepth(shallow)
	base := mustEvaluate(t, shallow, loop, ast.Expr(ast.CallName("loop", ast.Int(0))))

	deep := New()
	defineDepth(deep)
	val := mustEvaluate(t, deep, loop, ast.Expr(ast.CallName("loop", ast.Int(10000))))

	expectInt(t, val, base.(runtime.IntValue).Val)
}

func TestLazyTailCallsAccumulateWithoutThunkChains(t *testing.T) {
	interp := NewWithOptions(Options{Lazy: true})
	val := mustEvaluate(t, interp,
		ast.Fn("sum", []string{"n", "acc"},
			ast.If(ast.Bin("==", ast.ID("n"), ast.Int(0)), ast.Block(ast.Ret(ast.ID("acc"))), nil),
			ast.Ret(ast.CallName("sum",
				ast.Bin("-", ast.ID("n"), ast.Int(1)),
				ast.Bin("+", ast.ID("acc"), ast.ID("n")),
			)),
		),
		ast.Expr(ast.CallName("sum", ast.Int(10000), ast.Int(0))),
	)
	expectInt(t, val, 50005000)
}

func TestMutualTailCalls(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Fn("isEven", []string{"n"},
			ast.If(ast.Bin("==", ast.ID("n"), ast.Int(0)), ast.Block(ast.Ret(ast.Bool(true))), nil),
			ast.Ret(ast.CallName("isOdd", ast.Bin("-", ast.ID("n"), ast.Int(1)))),
		),
		ast.Fn("isOdd", []string{"n"},
			ast.If(ast.Bin("==", ast.ID("n"), ast.Int(0)), ast.Block(ast.Ret(ast.Bool(false))), nil),
			ast.Ret(ast.CallName("isEven", ast.Bin("-", ast.ID("n"), ast.Int(1)))),
		),
		ast.Expr(ast.CallName("isEven", ast.Int(20001))),
	)
	expectBool(t, val, false)
}

func TestUnboundedRecursionHitsDepthLimit(t *testing.T) {
	interp := NewWithOptions(Options{MaxDepth: 200})
	mustFail(t, interp, MaximumRecursionDepth,
		ast.Fn("down", []string{"n"}, ast.Ret(ast.Bin("+", ast.Int(1), ast.CallName("down", ast.ID("n"))))),
		ast.Expr(ast.CallName("down", ast.Int(1))),
	)
	if got := interp.StackDepth(); got != interp.Context().OuterFrames {
		t.Fatalf("expected stack truncated to %d frames, got %d", interp.Context().OuterFrames, got)
	}
}

func TestProgramsShareDefinitions(t *testing.T) {
	interp := New()
	mustEvaluate(t, interp, ast.Var("count", ast.Int(1)))
	val := mustEvaluate(t, interp,
		ast.Expr(ast.Assign(ast.ID("count"), ast.Bin("+", ast.ID("count"), ast.Int(1)))),
		ast.Expr(ast.ID("count")),
	)
	expectInt(t, val, 2)
	if got := interp.StackDepth(); got != 3 {
		t.Fatalf("expected global plus two program frames, got %d", got)
	}
	if got := interp.Context().OuterFrames; got != 3 {
		t.Fatalf("expected three outer frames, got %d", got)
	}
}

func TestTopLevelReturnEndsProgram(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Ret(ast.Int(3)),
		ast.Expr(ast.Int(4)),
	)
	expectInt(t, val, 3)
}

func TestPrintWritesInspectedValues(t *testing.T) {
	var out bytes.Buffer
	interp := NewWithOptions(Options{Stdout: &out})
	mustEvaluate(t, interp, ast.Expr(ast.CallName("print", ast.Str("x ="), ast.Int(1), ast.Dbl(2), ast.Bool(true))))
	if got := out.String(); got != "x = 1 2.0 true\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestUnsupportedConstructs(t *testing.T) {
	for _, kind := range ast.UnsupportedKinds {
		interp := New()
		rt := mustFail(t, interp, NotSupported, ast.Unsup(kind))
		if rt.Node == nil || rt.Node.NodeType() != kind {
			t.Fatalf("expected node of kind %s, got %#v", kind, rt.Node)
		}
	}
}

func TestCompoundAssignmentIsNotSupported(t *testing.T) {
	interp := New()
	mustFail(t, interp, NotSupported,
		ast.Var("x", ast.Int(1)),
		ast.Expr(ast.NewAssignmentExpression("+=", ast.ID("x"), ast.Int(1))),
	)
}

func TestEmptyProtocolAndDebuggerStatementsAreNoOps(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Expr(ast.Int(1)),
		ast.Empty(),
		ast.Protocol("Shape"),
		ast.Debugger(),
	)
	if !runtime.IsVoid(val) {
		t.Fatalf("expected void, got %#v", val)
	}
}
