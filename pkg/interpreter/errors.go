package interpreter

import (
	"errors"
	"fmt"
	"strconv"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/operators"
	"xslang/interpreter-go/pkg/runtime"
)

// ErrorKind names a runtime diagnostic category.
type ErrorKind string

const (
	VariableRedeclaration    ErrorKind = "VariableRedeclaration"
	UndefinedVariable        ErrorKind = "UndefinedVariable"
	UnassignedVariable       ErrorKind = "UnassignedVariable"
	UndefinedError           ErrorKind = "UndefinedError"
	TypeAssignmentError      ErrorKind = "TypeAssignmentError"
	ConstAssignment          ErrorKind = "ConstAssignment"
	InvalidNumberOfArguments ErrorKind = "InvalidNumberOfArguments"
	CallingNonFunctionValue  ErrorKind = "CallingNonFunctionValue"
	RunMissingGetterError    ErrorKind = "RunMissingGetterError"
	RunMissingSetterError    ErrorKind = "RunMissingSetterError"
	ExceptionError           ErrorKind = "ExceptionError"
	TypeError                ErrorKind = "TypeError"
	NotSupported             ErrorKind = "NotSupported"
	MaximumRecursionDepth    ErrorKind = "MaximumRecursionDepth"
)

// RuntimeError is a diagnostic raised while evaluating a node.
type RuntimeError struct {
	Kind     ErrorKind
	Node     ast.Node
	Name     string
	Message  string
	Expected string
	Actual   string
	Cause    error
	// Calls holds the call expressions that were executing, outermost first.
	Calls []ast.Node
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

// KindOf returns the diagnostic kind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var rt *RuntimeError
	if errors.As(err, &rt) {
		return rt.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a runtime diagnostic of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func newVariableRedeclaration(node ast.Node, name string) *RuntimeError {
	return &RuntimeError{Kind: VariableRedeclaration, Node: node, Name: name,
		Message: fmt.Sprintf("Invalid redeclaration of '%s'", name)}
}

func newUndefinedVariable(node ast.Node, name string) *RuntimeError {
	return &RuntimeError{Kind: UndefinedVariable, Node: node, Name: name,
		Message: fmt.Sprintf("Cannot find '%s' in scope", name)}
}

func newUnassignedVariable(node ast.Node, name string) *RuntimeError {
	return &RuntimeError{Kind: UnassignedVariable, Node: node, Name: name,
		Message: fmt.Sprintf("Variable '%s' used before being initialized", name)}
}

func newUndefinedError(node ast.Node, name string) *RuntimeError {
	return &RuntimeError{Kind: UndefinedError, Node: node, Name: name,
		Message: fmt.Sprintf("'%s' is declared but has no value", name)}
}

func newTypeAssignmentError(node ast.Node, name, expected, actual string) *RuntimeError {
	return &RuntimeError{Kind: TypeAssignmentError, Node: node, Name: name, Expected: expected, Actual: actual,
		Message: fmt.Sprintf("Cannot assign value of type '%s' to '%s' of type '%s'", actual, name, expected)}
}

func newConstAssignment(node ast.Node, name string) *RuntimeError {
	return &RuntimeError{Kind: ConstAssignment, Node: node, Name: name,
		Message: fmt.Sprintf("Cannot assign to value: '%s' is a 'let' constant", name)}
}

func newInvalidNumberOfArguments(node ast.Node, name string, expected, actual int) *RuntimeError {
	if name == "" {
		name = "<anonymous>"
	}
	return &RuntimeError{Kind: InvalidNumberOfArguments, Node: node, Name: name,
		Expected: strconv.Itoa(expected), Actual: strconv.Itoa(actual),
		Message: fmt.Sprintf("Function '%s' expects %d arguments, got %d", name, expected, actual)}
}

func newCallingNonFunctionValue(node ast.Node, value runtime.Value) *RuntimeError {
	typ := runtime.TypeOf(value)
	return &RuntimeError{Kind: CallingNonFunctionValue, Node: node, Actual: typ,
		Message: fmt.Sprintf("Cannot call value of non-function type '%s'", typ)}
}

func newMissingGetter(node ast.Node, className, name string) *RuntimeError {
	return &RuntimeError{Kind: RunMissingGetterError, Node: node, Name: name,
		Message: fmt.Sprintf("Computed property '%s' of '%s' has no getter", name, className)}
}

func newMissingSetter(node ast.Node, className, name string) *RuntimeError {
	return &RuntimeError{Kind: RunMissingSetterError, Node: node, Name: name,
		Message: fmt.Sprintf("Cannot assign to property: '%s' of '%s' is a get-only property", name, className)}
}

func newExceptionError(node ast.Node, name string, cause error) *RuntimeError {
	msg := cause.Error()
	if name != "" {
		msg = fmt.Sprintf("%s: %s", name, msg)
	}
	return &RuntimeError{Kind: ExceptionError, Node: node, Name: name, Cause: cause, Message: msg}
}

func newOperatorTypeError(node ast.Node, typeErr *operators.TypeError) *RuntimeError {
	return &RuntimeError{Kind: TypeError, Node: node, Name: typeErr.Operator, Expected: typeErr.Expected,
		Cause: typeErr, Message: typeErr.Error()}
}

func newMemberTypeError(node ast.Node, value runtime.Value, name string) *RuntimeError {
	typ := runtime.TypeOf(value)
	return &RuntimeError{Kind: TypeError, Node: node, Name: name, Actual: typ,
		Message: fmt.Sprintf("Value of type '%s' has no member '%s'", typ, name)}
}

func newNotSupported(node ast.Node) *RuntimeError {
	return &RuntimeError{Kind: NotSupported, Node: node,
		Message: fmt.Sprintf("%s is not supported", node.NodeType())}
}

func newMaximumRecursionDepth(node ast.Node, limit int) *RuntimeError {
	return &RuntimeError{Kind: MaximumRecursionDepth, Node: node, Expected: strconv.Itoa(limit),
		Message: fmt.Sprintf("maximum recursion depth exceeded (%d)", limit)}
}

// InterruptError reports that evaluation was stopped from outside, by a
// cancelled context or an observer. It is not recorded as a diagnostic.
type InterruptError struct {
	Node  ast.Node
	Cause error
}

func (e *InterruptError) Error() string {
	return fmt.Sprintf("evaluation interrupted: %v", e.Cause)
}

func (e *InterruptError) Unwrap() error {
	return e.Cause
}
