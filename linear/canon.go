package linear

import (
	"pinsc/ir"
	"pinsc/report"
)

// canonStmt removes every Eseq from a statement by hoisting the statements
// they contain in front of it.  A nil statement is an empty statement.
func (l *Linearizer) canonStmt(stmt ir.Stmt) ir.Stmt {
	switch v := stmt.(type) {
	case *ir.Seq:
		stmts := make([]ir.Stmt, len(v.Stmts))
		for i, inner := range v.Stmts {
			stmts[i] = l.canonStmt(inner)
		}

		return seq(stmts...)
	case *ir.Jump, *ir.Label:
		return stmt
	case *ir.CJump:
		pre, exprs := l.reorder([]ir.Expr{v.Cond})
		return seq(pre, &ir.CJump{Cond: exprs[0], True: v.True, False: v.False})
	case *ir.Move:
		return l.canonMove(v)
	case *ir.Exp:
		// a call evaluated for its effects stays a statement of its own
		if call, ok := v.Expr.(*ir.Call); ok {
			pre, args := l.reorder(call.Args)
			return seq(pre, &ir.Exp{Expr: &ir.Call{Label: call.Label, Args: args}})
		}

		// what remains of any other expression has no effects
		pre, _ := l.canonExpr(v.Expr)
		return pre
	default:
		report.ReportICE("unknown IR statement: %s", stmt.Repr())
		return nil
	}
}

// canonMove canonicalizes a move according to the kind of its destination.
func (l *Linearizer) canonMove(move *ir.Move) ir.Stmt {
	switch dst := move.Dst.(type) {
	case *ir.Temp:
		if call, ok := move.Src.(*ir.Call); ok {
			pre, args := l.reorder(call.Args)
			return seq(pre, &ir.Move{Dst: dst, Src: &ir.Call{Label: call.Label, Args: args}})
		}

		pre, exprs := l.reorder([]ir.Expr{move.Src})
		return seq(pre, &ir.Move{Dst: dst, Src: exprs[0]})
	case *ir.Mem:
		pre, exprs := l.reorder([]ir.Expr{dst.Addr, move.Src})
		return seq(pre, &ir.Move{Dst: &ir.Mem{Addr: exprs[0]}, Src: exprs[1]})
	case *ir.Eseq:
		return l.canonStmt(&ir.Seq{Stmts: []ir.Stmt{
			dst.Stmt,
			&ir.Move{Dst: dst.Expr, Src: move.Src},
		}})
	default:
		l.error("cannot move into %s", move.Dst.Repr())
		return nil
	}
}

// canonExpr splits an expression into the statements which must run before
// it and an expression with no side effects other than loads.  The result is
// never a call: calls are moved into a fresh temporary.
func (l *Linearizer) canonExpr(expr ir.Expr) (ir.Stmt, ir.Expr) {
	switch v := expr.(type) {
	case *ir.Const, *ir.Name, *ir.Temp:
		return nil, expr
	case *ir.Mem:
		pre, exprs := l.reorder([]ir.Expr{v.Addr})
		return pre, &ir.Mem{Addr: exprs[0]}
	case *ir.Binop:
		pre, exprs := l.reorder([]ir.Expr{v.Left, v.Right})
		return pre, &ir.Binop{Op: v.Op, Left: exprs[0], Right: exprs[1]}
	case *ir.Call:
		t := &ir.Temp{Temp: l.alloc.NewTemp()}
		pre, args := l.reorder(v.Args)
		return seq(pre, &ir.Move{Dst: t, Src: &ir.Call{Label: v.Label, Args: args}}), t
	case *ir.Eseq:
		stmt := l.canonStmt(v.Stmt)
		pre, result := l.canonExpr(v.Expr)
		return seq(stmt, pre), result
	default:
		report.ReportICE("unknown IR expression: %s", expr.Repr())
		return nil, nil
	}
}

// reorder canonicalizes a list of expressions which are evaluated left to
// right.  No call is left nested in the resulting expressions.  The statements hoisted out of a later expression may
// change the value of an earlier one, in which case the earlier value is
// saved in a temporary first.
func (l *Linearizer) reorder(exprs []ir.Expr) (ir.Stmt, []ir.Expr) {
	if len(exprs) == 0 {
		return nil, nil
	}

	pre, result := l.canonExpr(exprs[0])
	restPre, rest := l.reorder(exprs[1:])

	if commutes(restPre, result) {
		return seq(pre, restPre), append([]ir.Expr{result}, rest...)
	}

	t := &ir.Temp{Temp: l.alloc.NewTemp()}
	return seq(pre, &ir.Move{Dst: t, Src: result}, restPre), append([]ir.Expr{t}, rest...)
}

// commutes returns whether the statement may be executed before the
// expression is evaluated without changing its value.  Only constants and
// addresses are assumed never to change.
func commutes(stmt ir.Stmt, expr ir.Expr) bool {
	if stmt == nil {
		return true
	}

	switch expr.(type) {
	case *ir.Const, *ir.Name:
		return true
	default:
		return false
	}
}
