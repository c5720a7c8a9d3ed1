package ir

import (
	"pinsc/frame"
	"strings"
)

// Stmt represents a statement of the tree IR.
type Stmt interface {
	// Repr returns the textual representation of the statement.
	Repr() string

	irStmt()
}

// Move stores a value into a temporary or into memory.  Dst must be a Temp or
// a Mem.
type Move struct {
	Dst, Src Expr
}

// Exp evaluates an expression for its effects.
type Exp struct {
	Expr Expr
}

// Jump transfers control to a label.
type Jump struct {
	Label frame.Label
}

// CJump transfers control to True if Cond is non-zero and to False
// otherwise.
type CJump struct {
	Cond        Expr
	True, False frame.Label
}

// Label marks a position that can be jumped to.
type Label struct {
	Label frame.Label
}

// Seq executes statements in order.
type Seq struct {
	Stmts []Stmt
}

func (*Move) irStmt()  {}
func (*Exp) irStmt()   {}
func (*Jump) irStmt()  {}
func (*CJump) irStmt() {}
func (*Label) irStmt() {}
func (*Seq) irStmt()   {}

// -----------------------------------------------------------------------------

func (m *Move) Repr() string {
	return "MOVE(" + m.Dst.Repr() + ", " + m.Src.Repr() + ")"
}

func (e *Exp) Repr() string {
	return "EXP(" + e.Expr.Repr() + ")"
}

func (j *Jump) Repr() string {
	return "JUMP " + j.Label.Name()
}

func (cj *CJump) Repr() string {
	return "CJUMP(" + cj.Cond.Repr() + ", " + cj.True.Name() + ", " + cj.False.Name() + ")"
}

func (l *Label) Repr() string {
	return "LABEL " + l.Label.Name()
}

func (s *Seq) Repr() string {
	reprs := make([]string, len(s.Stmts))
	for i, stmt := range s.Stmts {
		reprs[i] = stmt.Repr()
	}

	return "SEQ(" + strings.Join(reprs, "; ") + ")"
}
