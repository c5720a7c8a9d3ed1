package linear

import (
	"pinsc/frame"
	"pinsc/ir"
	"pinsc/report"
)

// Linearizer rewrites the bodies of code chunks into flat sequences of
// statements in which no expression has side effects hidden inside it.  Every
// call is either a statement of its own or the source of a move to a
// temporary, and every conditional jump is immediately followed by its false
// label.
type Linearizer struct {
	alloc *frame.Allocator
}

// Linearize linearizes the body of every code chunk.  Data and global chunks
// are passed through unchanged.  The allocator must be the one used to
// generate the chunks.
func Linearize(chunks []ir.Chunk, alloc *frame.Allocator) (linear []ir.Chunk, err error) {
	defer report.Catch(&err)

	l := &Linearizer{alloc: alloc}

	linear = make([]ir.Chunk, len(chunks))
	for i, chunk := range chunks {
		if cc, ok := chunk.(*ir.CodeChunk); ok {
			linear[i] = &ir.CodeChunk{Frame: cc.Frame, Body: l.linearizeBody(cc)}
		} else {
			linear[i] = chunk
		}
	}

	return linear, nil
}

// linearizeBody produces the flat body of one code chunk.
func (l *Linearizer) linearizeBody(cc *ir.CodeChunk) ir.Stmt {
	stmts := flatten(l.canonStmt(cc.Body), nil)
	stmts = l.fixCJumps(stmts)

	l.checkLabels(cc.Label(), stmts)

	return &ir.Seq{Stmts: stmts}
}

// error raises a linearization error.  IR has no source positions.
func (l *Linearizer) error(msg string, args ...interface{}) {
	panic(report.Raise(report.LinearizationError, nil, msg, args...))
}

// -----------------------------------------------------------------------------

// flatten appends the statements of a tree of sequences to stmts in order.
func flatten(stmt ir.Stmt, stmts []ir.Stmt) []ir.Stmt {
	switch v := stmt.(type) {
	case nil:
	case *ir.Seq:
		for _, inner := range v.Stmts {
			stmts = flatten(inner, stmts)
		}
	default:
		stmts = append(stmts, stmt)
	}

	return stmts
}

// seq joins statements into a flat sequence, dropping empty statements.  It
// returns nil if there is nothing left.
func seq(stmts ...ir.Stmt) ir.Stmt {
	var nonEmpty []ir.Stmt
	for _, stmt := range stmts {
		nonEmpty = flatten(stmt, nonEmpty)
	}

	switch len(nonEmpty) {
	case 0:
		return nil
	case 1:
		return nonEmpty[0]
	default:
		return &ir.Seq{Stmts: nonEmpty}
	}
}
