package lower

import "pinsc/ir"

// code is the result of lowering one expression of the source tree.  Exactly
// one of the fields is set: expressions which produce no value lower to a
// statement.
type code struct {
	expr ir.Expr
	stmt ir.Stmt
}

func exprCode(expr ir.Expr) code {
	return code{expr: expr}
}

func stmtCode(stmt ir.Stmt) code {
	return code{stmt: stmt}
}

// asExpr returns the code as an expression.  A statement yields 0.
func (c code) asExpr() ir.Expr {
	if c.expr != nil {
		return c.expr
	}

	return &ir.Eseq{Stmt: c.stmt, Expr: &ir.Const{Value: 0}}
}

// asStmt returns the code as a statement, discarding any value.
func (c code) asStmt() ir.Stmt {
	if c.stmt != nil {
		return c.stmt
	}

	return &ir.Exp{Expr: c.expr}
}

// seq builds a sequence, omitting the wrapper for a single statement.
func seq(stmts ...ir.Stmt) ir.Stmt {
	if len(stmts) == 1 {
		return stmts[0]
	}

	return &ir.Seq{Stmts: stmts}
}
