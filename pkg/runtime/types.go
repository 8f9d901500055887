package runtime

// Nominal type names recorded on literal bindings.
const (
	TypeInt      = "Int"
	TypeDouble   = "Double"
	TypeString   = "String"
	TypeBool     = "Bool"
	TypeVoid     = "Void"
	TypeFunction = "Function"
	TypeObject   = "Object"
)

// metatypeSuffix marks the type of a class template, as in Counter.Type.
const metatypeSuffix = ".Type"

// TypeOf returns the nominal type of a forced value. Instances report their
// class name and templates its metatype. Thunks have no type until forced.
func TypeOf(v Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case IntValue:
		return TypeInt
	case DoubleValue:
		return TypeDouble
	case StringValue:
		return TypeString
	case BoolValue:
		return TypeBool
	case VoidValue:
		return TypeVoid
	case *FunctionValue, *NativeFunctionValue:
		return TypeFunction
	case *ClassValue:
		name := val.ClassName
		if name == "" {
			name = TypeObject
		}
		if !val.Instance {
			return name + metatypeSuffix
		}
		return name
	default:
		return ""
	}
}

// TypeMatches reports whether a value of type actual may be written to a
// binding recorded as declared. An empty declared type accepts anything.
func TypeMatches(declared, actual string) bool {
	return declared == "" || declared == actual
}
