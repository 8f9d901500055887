package runtime

// Binding is what a frame maps a name to. The set of implementations is
// closed: Unassigned, *LiteralBinding, *FunctionValue, *NativeFunctionValue,
// *ClassValue, *ComputedProperty and *SelfBinding.
type Binding interface {
	isBinding()
}

type unassigned struct{}

func (unassigned) isBinding() {}

// Unassigned marks a hoisted name whose declaration has not run yet.
var Unassigned Binding = unassigned{}

// IsUnassigned reports whether b is the hoisting sentinel.
func IsUnassigned(b Binding) bool {
	_, ok := b.(unassigned)
	return ok
}

// LiteralBinding is a typed value cell. A nil Value means the name was
// declared with a type but no initializer. An empty ValueType adopts the
// type of the first value written.
type LiteralBinding struct {
	Mutable   bool
	ValueType string
	Value     Value
}

func (*LiteralBinding) isBinding() {}

// NewLiteral builds a cell typed after its value.
func NewLiteral(mutable bool, value Value) *LiteralBinding {
	return &LiteralBinding{Mutable: mutable, ValueType: TypeOf(value), Value: value}
}

// HasValue reports whether the cell holds a value.
func (b *LiteralBinding) HasValue() bool {
	return b.Value != nil
}

func (b *LiteralBinding) Copy() *LiteralBinding {
	clone := *b
	return &clone
}

// SelfBinding marks a class-scoped frame. Reading `self` yields Receiver.
type SelfBinding struct {
	Receiver *ClassValue
}

func (*SelfBinding) isBinding() {}

// SelfName is the identifier that introduces a class-scoped frame.
const SelfName = "self"
