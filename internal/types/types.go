// Package types maps dead-lang builtin types to their C spellings.
package types

// BuiltinType identifies a language-level primitive type.
type BuiltinType int

const (
	U8 BuiltinType = iota
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	F32
	F64
	Char
	None
)

// builtinNames provides the source-level spelling of each builtin type.
var builtinNames = map[BuiltinType]string{
	U8:   "u8",
	I8:   "i8",
	U16:  "u16",
	I16:  "i16",
	U32:  "u32",
	I32:  "i32",
	U64:  "u64",
	I64:  "i64",
	F32:  "f32",
	F64:  "f64",
	Char: "char",
}

// String returns the source-level spelling of the builtin type.
func (bt BuiltinType) String() string {
	if name, ok := builtinNames[bt]; ok {
		return name
	}
	return "unknown_builtin_type"
}

// CType returns the C spelling of the builtin type.
func (bt BuiltinType) CType() string {
	switch bt {
	case U8:
		return "unsigned char"
	case I8:
		return "char"
	case U16:
		return "unsigned short"
	case I16:
		return "short"
	case U32:
		return "unsigned int"
	case I32:
		return "int"
	case U64:
		return "unsigned long"
	case I64:
		return "long"
	case F32:
		return "float"
	case F64:
		return "double"
	case Char:
		return "char"
	default:
		return "unknown_builtin_type"
	}
}

// FromString resolves a source-level type name to a builtin type.
// Anything outside the table resolves to None.
func FromString(name string) BuiltinType {
	switch name {
	case "u8":
		return U8
	case "i8":
		return I8
	case "u16":
		return U16
	case "i16":
		return I16
	case "u32":
		return U32
	case "i32":
		return I32
	case "u64":
		return U64
	case "f32":
		return F32
	case "f64":
		return F64
	case "char":
		return Char
	default:
		return None
	}
}

// CTypeFor maps a source-level type name straight to its C spelling.
// Names outside the builtin table pass through unchanged, so custom
// (struct) type names keep their own spelling.
func CTypeFor(name string) string {
	bt := FromString(name)
	if bt == None {
		return name
	}
	return bt.CType()
}
