package ast

import "fmt"

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// ZeroSpan returns an empty span value.
func ZeroSpan() Span {
	return Span{}
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s == Span{}
}

func (s Span) String() string {
	if s.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
}

// At sets a single-position span on node and returns it, for tests and
// hand-built trees.
func At[T Node](node T, line, column int) T {
	SetSpan(node, Span{Start: Position{Line: line, Column: column}, End: Position{Line: line, Column: column}})
	return node
}
