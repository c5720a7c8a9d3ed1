package types

import (
	"fmt"
	"pinsc/common"
	"strings"
)

// Type represents a PINS data type.
type Type interface {
	// Returns whether this type is equal to the other type. This should only
	// be called through Equals.
	equals(other Type) bool

	// Returns the size of a value of this type in bytes.  Types which have no
	// storage (void, functions) have size zero.
	SizeInBytes() int

	// Returns the size this type occupies when passed as an argument.  Arrays
	// are passed by reference and so only occupy a word.
	SizeInBytesAsParam() int

	// Returns the representative string for this type.
	Repr() string
}

// Equals returns whether two types are equal.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return false
	}

	return a.equals(b)
}

// -----------------------------------------------------------------------------

// AtomType represents one of the atomic types of PINS.  This must be one of
// the enumerated atom type values below.
type AtomType int

// Enumeration of the different atom types.
const (
	AtomVoid = AtomType(iota)
	AtomInt
	AtomLog
	AtomStr
)

func (at AtomType) equals(other Type) bool {
	if oat, ok := other.(AtomType); ok {
		return at == oat
	}

	return false
}

func (at AtomType) SizeInBytes() int {
	if at == AtomVoid {
		return 0
	}

	// strings are stored as a reference to their data chunk
	return common.WordSize
}

func (at AtomType) SizeInBytesAsParam() int {
	return at.SizeInBytes()
}

func (at AtomType) Repr() string {
	switch at {
	case AtomInt:
		return "integer"
	case AtomLog:
		return "logical"
	case AtomStr:
		return "string"
	default:
		return "void"
	}
}

// -----------------------------------------------------------------------------

// ArrayType represents a fixed-length array type.
type ArrayType struct {
	// The declared number of elements.
	Size int

	// The type of the elements.
	Elem Type
}

func (at *ArrayType) equals(other Type) bool {
	if oat, ok := other.(*ArrayType); ok {
		return at.Size == oat.Size && Equals(at.Elem, oat.Elem)
	}

	return false
}

func (at *ArrayType) SizeInBytes() int {
	return at.Size * at.Elem.SizeInBytes()
}

func (at *ArrayType) SizeInBytesAsParam() int {
	return common.WordSize
}

func (at *ArrayType) Repr() string {
	return fmt.Sprintf("arr[%d] %s", at.Size, at.Elem.Repr())
}

// -----------------------------------------------------------------------------

// FunType represents the type of a function.
type FunType struct {
	// The parameter types of the function.
	Params []Type

	// The result type of the function.
	Result Type
}

func (ft *FunType) equals(other Type) bool {
	if oft, ok := other.(*FunType); ok {
		if len(ft.Params) != len(oft.Params) {
			return false
		}

		for i, param := range ft.Params {
			if !Equals(param, oft.Params[i]) {
				return false
			}
		}

		return Equals(ft.Result, oft.Result)
	}

	return false
}

func (ft *FunType) SizeInBytes() int {
	return 0
}

func (ft *FunType) SizeInBytesAsParam() int {
	return 0
}

func (ft *FunType) Repr() string {
	sb := strings.Builder{}

	sb.WriteRune('(')
	for i, param := range ft.Params {
		if i != 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(param.Repr())
	}
	sb.WriteString(") -> ")
	sb.WriteString(ft.Result.Repr())

	return sb.String()
}

// -----------------------------------------------------------------------------

// IsInt returns whether typ is the integer type.
func IsInt(typ Type) bool {
	return Equals(typ, AtomInt)
}

// IsLog returns whether typ is the logical type.
func IsLog(typ Type) bool {
	return Equals(typ, AtomLog)
}

// IsStr returns whether typ is the string type.
func IsStr(typ Type) bool {
	return Equals(typ, AtomStr)
}

// IsVoid returns whether typ is the void type.
func IsVoid(typ Type) bool {
	return Equals(typ, AtomVoid)
}

// IsAtom returns whether typ is a non-void atom type.
func IsAtom(typ Type) bool {
	at, ok := typ.(AtomType)
	return ok && at != AtomVoid
}

// IsArray returns whether typ is an array type.
func IsArray(typ Type) bool {
	_, ok := typ.(*ArrayType)
	return ok
}

// FromIntrinsicKind converts an intrinsic parameter or result kind into its
// corresponding type.
func FromIntrinsicKind(kind int) Type {
	switch kind {
	case common.IntrinsicInt:
		return AtomInt
	case common.IntrinsicLog:
		return AtomLog
	default:
		return AtomStr
	}
}
