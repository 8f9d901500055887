package interpreter

import (
	"testing"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

func counterClass() *ast.ClassDeclaration {
	return ast.Class("Counter",
		ast.Stored(ast.DeclarationVar, "count", ast.Int(0)),
		ast.Method("inc", nil,
			ast.Expr(ast.Assign(ast.Self("count"), ast.Bin("+", ast.Self("count"), ast.Int(1)))),
		),
	)
}

func rectClass() *ast.ClassDeclaration {
	return ast.Class("Rect",
		ast.Stored(ast.DeclarationVar, "w", ast.Int(2)),
		ast.Stored(ast.DeclarationVar, "h", ast.Int(3)),
		ast.Computed("area", "Int", ast.Getter(ast.Ret(ast.Bin("*", ast.ID("w"), ast.ID("h"))))),
		ast.Computed("side", "Int",
			ast.Getter(ast.Ret(ast.Self("w"))),
			ast.Setter("",
				ast.Expr(ast.Assign(ast.Self("w"), ast.ID("newValue"))),
				ast.Expr(ast.Assign(ast.Self("h"), ast.ID("newValue"))),
			),
		),
		ast.Method("describe", nil, ast.Ret(ast.ID("area"))),
	)
}

func TestMethodsMutateOnlyTheirInstance(t *testing.T) {
	interp := New()
	mustEvaluate(t, interp,
		counterClass(),
		ast.Let("c", ast.CallName("Counter")),
		ast.Let("d", ast.CallName("Counter")),
		ast.Expr(ast.MethodCall(ast.ID("c"), "inc")),
		ast.Expr(ast.MethodCall(ast.ID("c"), "inc")),
		ast.Expr(ast.MethodCall(ast.ID("c"), "inc")),
	)
	val := mustEvaluate(t, interp, ast.Expr(ast.Member(ast.ID("c"), "count")))
	expectInt(t, val, 3)
	val = mustEvaluate(t, interp, ast.Expr(ast.Member(ast.ID("d"), "count")))
	expectInt(t, val, 0)

	tmpl, _, ok := interp.GlobalEnvironment().Lookup("Counter")
	if ok {
		t.Fatalf("class should live in the program frame, found %#v in globals", tmpl)
	}
}

func TestClassTemplateIsNotAnInstanceType(t *testing.T) {
	interp := New()
	rt := mustFail(t, interp, TypeAssignmentError,
		counterClass(),
		ast.Typed(ast.DeclarationVar, "c", "Counter", ast.ID("Counter")),
	)
	if rt.Actual != "Counter.Type" {
		t.Fatalf("expected template type Counter.Type, got %q", rt.Actual)
	}

	interp = New()
	val := mustEvaluate(t, interp,
		counterClass(),
		ast.Typed(ast.DeclarationLet, "kind", "Counter.Type", ast.ID("Counter")),
		ast.Typed(ast.DeclarationVar, "c", "Counter", ast.CallName("kind")),
		ast.Expr(ast.Member(ast.ID("c"), "count")),
	)
	expectInt(t, val, 0)
}

func TestMethodCallThroughCallExpressionCallee(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		counterClass(),
		ast.Let("c", ast.CallName("Counter")),
		ast.Expr(ast.Call(ast.Member(ast.ID("c"), "inc"))),
		ast.Expr(ast.Member(ast.ID("c"), "count")),
	)
	expectInt(t, val, 1)
}

func TestTemplateIsNotMutatedByInstances(t *testing.T) {
	interp := New()
	mustEvaluate(t, interp,
		counterClass(),
		ast.Let("c", ast.CallName("Counter")),
		ast.Expr(ast.MethodCall(ast.ID("c"), "inc")),
	)
	binding, _, ok := interp.Context().Environments.Current().Lookup("Counter")
	if !ok {
		t.Fatalf("Counter not bound")
	}
	tmpl := binding.(*runtime.ClassValue)
	expectInt(t, tmpl.StoredProps["count"].Value, 0)
	if tmpl.Instance {
		t.Fatalf("template marked as instance")
	}
}

func TestInitializerWritesThroughSelf(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Class("Point",
			ast.StoredTyped(ast.DeclarationLet, "x", "Int", nil),
			ast.StoredTyped(ast.DeclarationLet, "y", "Int", nil),
			ast.Method("init", []string{"x", "y"},
				ast.Expr(ast.Assign(ast.Self("x"), ast.ID("x"))),
				ast.Expr(ast.Assign(ast.Self("y"), ast.ID("y"))),
			),
			ast.Method("sum", nil, ast.Ret(ast.Bin("+", ast.ID("x"), ast.ID("y")))),
		),
		ast.Let("p", ast.CallName("Point", ast.Int(3), ast.Int(4))),
		ast.Expr(ast.MethodCall(ast.ID("p"), "sum")),
	)
	expectInt(t, val, 7)

	mustFail(t, interp, ConstAssignment, ast.Expr(ast.Assign(ast.Member(ast.ID("p"), "x"), ast.Int(9))))
}

func TestInitializerArityIsChecked(t *testing.T) {
	interp := New()
	mustFail(t, interp, InvalidNumberOfArguments,
		ast.Class("Point",
			ast.Stored(ast.DeclarationVar, "x", ast.Int(0)),
			ast.Method("init", []string{"x"}, ast.Expr(ast.Assign(ast.Self("x"), ast.ID("x")))),
		),
		ast.Expr(ast.CallName("Point")),
	)
}

func TestClassWithoutInitRejectsArguments(t *testing.T) {
	interp := New()
	mustFail(t, interp, InvalidNumberOfArguments,
		counterClass(),
		ast.Expr(ast.CallName("Counter", ast.Int(1))),
	)
}

func TestCallingAnInstanceFails(t *testing.T) {
	interp := New()
	mustFail(t, interp, CallingNonFunctionValue,
		counterClass(),
		ast.Let("c", ast.CallName("Counter")),
		ast.Expr(ast.CallName("c")),
	)
}

func TestComputedGetterAndSetter(t *testing.T) {
	interp := New()
	mustEvaluate(t, interp,
		rectClass(),
		ast.Let("r", ast.CallName("Rect")),
	)
	expectInt(t, mustEvaluate(t, interp, ast.Expr(ast.Member(ast.ID("r"), "area"))), 6)
	expectInt(t, mustEvaluate(t, interp, ast.Expr(ast.MethodCall(ast.ID("r"), "describe"))), 6)

	mustEvaluate(t, interp, ast.Expr(ast.Assign(ast.Member(ast.ID("r"), "side"), ast.Int(5))))
	expectInt(t, mustEvaluate(t, interp, ast.Expr(ast.Member(ast.ID("r"), "h"))), 5)
	expectInt(t, mustEvaluate(t, interp, ast.Expr(ast.Member(ast.ID("r"), "area"))), 25)
}

func TestComputedPropertyWithoutSetter(t *testing.T) {
	interp := New()
	rt := mustFail(t, interp, RunMissingSetterError,
		rectClass(),
		ast.Let("r", ast.CallName("Rect")),
		ast.Expr(ast.Assign(ast.Member(ast.ID("r"), "area"), ast.Int(1))),
	)
	if rt.Name != "area" {
		t.Fatalf("expected diagnostic for area, got %q", rt.Name)
	}
}

func TestComputedPropertyWithoutGetter(t *testing.T) {
	interp := New()
	mustFail(t, interp, RunMissingGetterError,
		ast.Class("Sink",
			ast.Stored(ast.DeclarationVar, "last", ast.Int(0)),
			ast.Computed("input", "Int", ast.Setter("v", ast.Expr(ast.Assign(ast.Self("last"), ast.ID("v"))))),
		),
		ast.Let("s", ast.CallName("Sink")),
		ast.Expr(ast.Assign(ast.Member(ast.ID("s"), "input"), ast.Int(4))),
		ast.Expr(ast.Member(ast.ID("s"), "input")),
	)
}

func TestComputedSetterChecksDeclaredType(t *testing.T) {
	interp := New()
	mustFail(t, interp, TypeAssignmentError,
		rectClass(),
		ast.Let("r", ast.CallName("Rect")),
		ast.Expr(ast.Assign(ast.Member(ast.ID("r"), "side"), ast.Str("wide"))),
	)
}

func TestComputedBodyWithoutAccessorsIsGetter(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Class("Circle",
			ast.Stored(ast.DeclarationVar, "r", ast.Int(2)),
			ast.Computed("diameter", "Int", ast.Ret(ast.Bin("*", ast.Self("r"), ast.Int(2)))),
		),
		ast.Let("c", ast.CallName("Circle")),
		ast.Expr(ast.Member(ast.ID("c"), "diameter")),
	)
	expectInt(t, val, 4)
}

func TestSelfAndThisInsideMethods(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		ast.Class("Box",
			ast.Stored(ast.DeclarationVar, "v", ast.Int(1)),
			ast.Method("me", nil, ast.Ret(ast.ID("self"))),
			ast.Method("viaThis", nil, ast.Ret(ast.Member(ast.This(), "v"))),
			ast.Method("twice", nil, ast.Ret(ast.Bin("*", ast.SelfCall("viaThis"), ast.Int(2)))),
		),
		ast.Let("b", ast.CallName("Box")),
		ast.Expr(ast.Bin("==", ast.MethodCall(ast.ID("b"), "me"), ast.ID("b"))),
	)
	expectBool(t, val, true)
	expectInt(t, mustEvaluate(t, interp, ast.Expr(ast.MethodCall(ast.ID("b"), "twice"))), 2)
}

func TestSelfOutsideClassIsUndefined(t *testing.T) {
	interp := New()
	mustFail(t, interp, UndefinedVariable, ast.Expr(ast.Self("x")))
}

func TestMissingMemberIsUndefined(t *testing.T) {
	interp := New()
	rt := mustFail(t, interp, UndefinedVariable,
		counterClass(),
		ast.Let("c", ast.CallName("Counter")),
		ast.Expr(ast.Member(ast.ID("c"), "nope")),
	)
	if rt.Name != "nope" {
		t.Fatalf("expected diagnostic for nope, got %q", rt.Name)
	}
}

func TestMemberOnPrimitiveIsTypeError(t *testing.T) {
	interp := New()
	mustFail(t, interp, TypeError,
		ast.Let("n", ast.Int(1)),
		ast.Expr(ast.Member(ast.ID("n"), "count")),
	)
}

func TestDuplicateMemberNamesAreRejected(t *testing.T) {
	interp := New()
	mustFail(t, interp, VariableRedeclaration,
		ast.Class("Twice",
			ast.Stored(ast.DeclarationVar, "x", ast.Int(0)),
			ast.Method("x", nil),
		),
	)

	interp = New()
	mustFail(t, interp, VariableRedeclaration,
		ast.Class("Shadow", ast.Stored(ast.DeclarationVar, "self", ast.Int(0))),
	)
}

func TestStoredPropertyTypeIsEnforced(t *testing.T) {
	interp := New()
	mustFail(t, interp, TypeAssignmentError,
		counterClass(),
		ast.Let("c", ast.CallName("Counter")),
		ast.Expr(ast.Assign(ast.Member(ast.ID("c"), "count"), ast.Str("many"))),
	)
}

func TestClassesCannotBeReassigned(t *testing.T) {
	interp := New()
	mustFail(t, interp, ConstAssignment,
		counterClass(),
		ast.Expr(ast.Assign(ast.ID("Counter"), ast.Int(1))),
	)
}

func TestMethodValueKeepsReceiver(t *testing.T) {
	interp := New()
	val := mustEvaluate(t, interp,
		counterClass(),
		ast.Let("c", ast.CallName("Counter")),
		ast.Let("inc", ast.Member(ast.ID("c"), "inc")),
		ast.Expr(ast.CallName("inc")),
		ast.Expr(ast.CallName("inc")),
		ast.Expr(ast.Member(ast.ID("c"), "count")),
	)
	expectInt(t, val, 2)
}
