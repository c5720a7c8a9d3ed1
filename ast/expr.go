package ast

// Enumeration of literal kinds.
const (
	LitInteger = iota
	LitLogical
	LitString
)

// Literal represents a literal value.
type Literal struct {
	ASTBase

	// Kind must be one of the enumerated literal kinds.
	Kind int

	// The value of the literal.  Integers are stored as their decimal text,
	// logicals as `true` or `false`, and strings without quotes and with
	// escapes already processed.
	Value string
}

// Name represents a use of a variable or parameter.
type Name struct {
	ASTBase

	Name string
}

// Call represents a function call.
type Call struct {
	ASTBase

	Name string
	Args []NodeID
}

// -----------------------------------------------------------------------------

// BinaryOp is a binary operator.
type BinaryOp int

// Enumeration of binary operators.
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLeq
	OpGeq
)

var binaryOpStrings = [...]string{"+", "-", "*", "/", "%", "&", "|", "==", "!=", "<", ">", "<=", ">="}

func (op BinaryOp) String() string {
	return binaryOpStrings[op]
}

// IsArithmetic returns whether the operator is an integer arithmetic operator.
func (op BinaryOp) IsArithmetic() bool {
	return op <= OpMod
}

// IsLogical returns whether the operator is a logical connective.
func (op BinaryOp) IsLogical() bool {
	return op == OpAnd || op == OpOr
}

// IsComparison returns whether the operator is a comparison.
func (op BinaryOp) IsComparison() bool {
	return op >= OpEq
}

// Binary represents a binary operator application.
type Binary struct {
	ASTBase

	Op          BinaryOp
	Left, Right NodeID
}

// UnaryOp is a prefix unary operator.
type UnaryOp int

// Enumeration of unary operators.
const (
	OpPlus UnaryOp = iota
	OpNeg
	OpNot
)

var unaryOpStrings = [...]string{"+", "-", "!"}

func (op UnaryOp) String() string {
	return unaryOpStrings[op]
}

// Unary represents a unary operator application.
type Unary struct {
	ASTBase

	Op      UnaryOp
	Operand NodeID
}

// Index represents an array element access: `array[index]`.
type Index struct {
	ASTBase

	Array, Index NodeID
}

// -----------------------------------------------------------------------------

// Assign represents an assignment: `{target = value}`.
type Assign struct {
	ASTBase

	Target, Value NodeID
}

// Block represents a parenthesized sequence of expressions.  Its value is the
// value of its last expression.
type Block struct {
	ASTBase

	Exprs []NodeID
}

// IfThenElse represents a conditional.  Else is NoNode if there is no else
// branch.
type IfThenElse struct {
	ASTBase

	Cond, Then, Else NodeID
}

// While represents a while loop.
type While struct {
	ASTBase

	Cond, Body NodeID
}

// For represents a counting loop: `{for counter = low, high, step : body}`.
// The counter is a Name node.
type For struct {
	ASTBase

	Counter, Low, High, Step, Body NodeID
}

// Where represents an expression evaluated within a local scope of
// definitions.
type Where struct {
	ASTBase

	Expr NodeID
	Defs []NodeID
}
