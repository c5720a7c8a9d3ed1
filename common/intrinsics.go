package common

// Enumeration of the parameter and result kinds of intrinsic functions.
const (
	IntrinsicInt = iota
	IntrinsicLog
	IntrinsicStr
)

// Intrinsic describes one function of the standard library.  Intrinsics are
// not defined in source: they are recognized by name everywhere in the
// compiler and given special semantics by the interpreter.
type Intrinsic struct {
	// The name the intrinsic is called by.
	Name string

	// The kinds of the declared parameters in order.  The implicit frame
	// pointer argument added during lowering is not included.
	Params []int

	// The kind of the value returned by the intrinsic.
	Result int
}

// Arity returns the number of declared parameters of the intrinsic.
func (in *Intrinsic) Arity() int {
	return len(in.Params)
}

// Intrinsics is the table of all standard library functions.
var Intrinsics = map[string]*Intrinsic{
	"print_int": {Name: "print_int", Params: []int{IntrinsicInt}, Result: IntrinsicInt},
	"print_str": {Name: "print_str", Params: []int{IntrinsicStr}, Result: IntrinsicStr},
	"print_log": {Name: "print_log", Params: []int{IntrinsicLog}, Result: IntrinsicLog},
	"rand_int":  {Name: "rand_int", Params: []int{IntrinsicInt, IntrinsicInt}, Result: IntrinsicInt},
	"seed":      {Name: "seed", Params: []int{IntrinsicInt}, Result: IntrinsicInt},
}

// LookupIntrinsic returns the intrinsic with the given name if it exists.
func LookupIntrinsic(name string) (*Intrinsic, bool) {
	in, ok := Intrinsics[name]
	return in, ok
}
