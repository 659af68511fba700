package dav

// Type is Dav's closed set of type tags, represented as a comparable enum
// rather than strings. String() returns the same textual tags diagnostics
// and generated C reasoning are built around ("int", "char*", ...).
type Type uint8

const (
	TypeUndefined Type = iota
	TypeInt
	TypeChar
	TypeCharPtr
	TypeIntPtr
	TypeCharPtrPtr
	TypeVoid
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeChar:
		return "char"
	case TypeCharPtr:
		return "char*"
	case TypeIntPtr:
		return "int*"
	case TypeCharPtrPtr:
		return "char**"
	case TypeVoid:
		return "void"
	default:
		return "undefined"
	}
}

// typeFromName resolves a TYPE token's lexeme to a Type. ok is false for
// text that isn't one of Dav's type words.
func typeFromName(name string) (Type, bool) {
	switch name {
	case "int":
		return TypeInt, true
	case "char":
		return TypeChar, true
	case "int*":
		return TypeIntPtr, true
	case "char*":
		return TypeCharPtr, true
	case "void":
		return TypeVoid, true
	default:
		return TypeUndefined, false
	}
}

// IsPointer reports whether t is one of the pointer types.
func (t Type) IsPointer() bool {
	switch t {
	case TypeCharPtr, TypeIntPtr, TypeCharPtrPtr:
		return true
	default:
		return false
	}
}

// PromotePointer implements the fn_decl/let_stmt "[MUL]" promotion table:
// int -> int*, char -> char*, char* -> char**. ok is false for any other
// type (promoting int*, char**, void or undefined is a compile error).
func (t Type) PromotePointer() (Type, bool) {
	switch t {
	case TypeInt:
		return TypeIntPtr, true
	case TypeChar:
		return TypeCharPtr, true
	case TypeCharPtr:
		return TypeCharPtrPtr, true
	default:
		return TypeUndefined, false
	}
}

// Pointee implements the indexing/dereference table: int* -> int,
// char* -> char, char** -> char*. ok is false for non-pointer types.
func (t Type) Pointee() (Type, bool) {
	switch t {
	case TypeIntPtr:
		return TypeInt, true
	case TypeCharPtr:
		return TypeChar, true
	case TypeCharPtrPtr:
		return TypeCharPtr, true
	default:
		return TypeUndefined, false
	}
}
