// Package interpreter evaluates x-slang programs by walking the ESTree-style
// AST from package ast. It owns the environment stack, the declaration and
// assignment rules for let/var bindings, class instantiation and member
// dispatch through a class-scoped `self` frame, and the application loop
// that turns calls in tail position into frame replacements.
//
// Runtime diagnostics are *RuntimeError values. Every diagnostic is recorded
// on the evaluation context and the environment stack is cut back to the
// program frames before it propagates, so a session can keep evaluating
// later programs after a failure.
package interpreter
