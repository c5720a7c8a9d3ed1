package ir

import (
	"pinsc/frame"
	"strconv"
	"strings"
)

// Expr represents an expression of the tree IR.
type Expr interface {
	// Repr returns the textual representation of the expression.
	Repr() string

	irExpr()
}

// Const is an integer constant.  Logical values are represented as 0 and 1.
type Const struct {
	Value int
}

// Name is the address of a label.
type Name struct {
	Label frame.Label
}

// Temp is a reference to a temporary.
type Temp struct {
	Temp frame.Temp
}

// Mem is the word stored at an address.  As the destination of a Move, it is
// the location written to.
type Mem struct {
	Addr Expr
}

// Binop is a binary operation on two integers.
type Binop struct {
	Op          Operator
	Left, Right Expr
}

// Call is a function call.  The first argument is the static link of the
// callee or, for intrinsics, the frame pointer of the caller.
type Call struct {
	Label frame.Label
	Args  []Expr
}

// Eseq executes a statement for its effects and then evaluates an expression.
type Eseq struct {
	Stmt Stmt
	Expr Expr
}

func (*Const) irExpr() {}
func (*Name) irExpr()  {}
func (*Temp) irExpr()  {}
func (*Mem) irExpr()   {}
func (*Binop) irExpr() {}
func (*Call) irExpr()  {}
func (*Eseq) irExpr()  {}

// -----------------------------------------------------------------------------

// Operator is a binary IR operator.
type Operator int

// Enumeration of binary IR operators.  Comparisons yield 0 or 1.  AND and OR
// are logical: they treat any non-zero operand as true.
const (
	ADD Operator = iota
	SUB
	MUL
	DIV
	MOD
	AND
	OR
	EQ
	NEQ
	LT
	GT
	LEQ
	GEQ
)

var operatorStrings = [...]string{"ADD", "SUB", "MUL", "DIV", "MOD", "AND", "OR", "EQ", "NEQ", "LT", "GT", "LEQ", "GEQ"}

func (op Operator) String() string {
	return operatorStrings[op]
}

// -----------------------------------------------------------------------------

func (c *Const) Repr() string {
	return strconv.Itoa(c.Value)
}

func (n *Name) Repr() string {
	return "NAME " + n.Label.Name()
}

func (t *Temp) Repr() string {
	return t.Temp.String()
}

func (m *Mem) Repr() string {
	return "MEM(" + m.Addr.Repr() + ")"
}

func (b *Binop) Repr() string {
	return b.Op.String() + "(" + b.Left.Repr() + ", " + b.Right.Repr() + ")"
}

func (c *Call) Repr() string {
	sb := strings.Builder{}

	sb.WriteString("CALL ")
	sb.WriteString(c.Label.Name())
	sb.WriteRune('(')
	for i, arg := range c.Args {
		if i != 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(arg.Repr())
	}
	sb.WriteRune(')')

	return sb.String()
}

func (e *Eseq) Repr() string {
	return "ESEQ(" + e.Stmt.Repr() + "; " + e.Expr.Repr() + ")"
}
