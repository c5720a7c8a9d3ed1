package lower

import (
	"pinsc/ast"
	"pinsc/ir"
	"pinsc/types"
)

// lowerBlock lowers a block.  Every expression but the last is evaluated for
// its effects.
func (g *Generator) lowerBlock(block *ast.Block) code {
	if len(block.Exprs) == 0 {
		return exprCode(&ir.Const{Value: 0})
	}

	var stmts []ir.Stmt
	for _, id := range block.Exprs[:len(block.Exprs)-1] {
		stmts = append(stmts, g.lowerExpr(id).asStmt())
	}

	last := g.lowerExpr(block.Exprs[len(block.Exprs)-1])
	if len(stmts) == 0 {
		return last
	}

	if last.expr != nil {
		return exprCode(&ir.Eseq{Stmt: seq(stmts...), Expr: last.expr})
	}

	return stmtCode(seq(append(stmts, last.stmt)...))
}

// lowerIfThenElse lowers a conditional.  A conditional with a value stores
// the value of the taken branch in a temporary.
func (g *Generator) lowerIfThenElse(id ast.NodeID, ite *ast.IfThenElse) code {
	cond := g.lowerExpr(ite.Cond).asExpr()
	thenLabel, endLabel := g.alloc.NewLabel(), g.alloc.NewLabel()

	if ite.Else == ast.NoNode {
		return stmtCode(seq(
			&ir.CJump{Cond: cond, True: thenLabel, False: endLabel},
			&ir.Label{Label: thenLabel},
			g.lowerExpr(ite.Then).asStmt(),
			&ir.Label{Label: endLabel},
		))
	}

	elseLabel := g.alloc.NewLabel()

	if types.IsVoid(g.typeOf(id)) {
		return stmtCode(seq(
			&ir.CJump{Cond: cond, True: thenLabel, False: elseLabel},
			&ir.Label{Label: thenLabel},
			g.lowerExpr(ite.Then).asStmt(),
			&ir.Jump{Label: endLabel},
			&ir.Label{Label: elseLabel},
			g.lowerExpr(ite.Else).asStmt(),
			&ir.Label{Label: endLabel},
		))
	}

	result := g.alloc.NewTemp()
	return exprCode(&ir.Eseq{
		Stmt: seq(
			&ir.CJump{Cond: cond, True: thenLabel, False: elseLabel},
			&ir.Label{Label: thenLabel},
			&ir.Move{Dst: &ir.Temp{Temp: result}, Src: g.lowerExpr(ite.Then).asExpr()},
			&ir.Jump{Label: endLabel},
			&ir.Label{Label: elseLabel},
			&ir.Move{Dst: &ir.Temp{Temp: result}, Src: g.lowerExpr(ite.Else).asExpr()},
			&ir.Label{Label: endLabel},
		),
		Expr: &ir.Temp{Temp: result},
	})
}

// lowerWhile lowers a while loop.
func (g *Generator) lowerWhile(w *ast.While) ir.Stmt {
	testLabel, bodyLabel, endLabel := g.alloc.NewLabel(), g.alloc.NewLabel(), g.alloc.NewLabel()

	return seq(
		&ir.Label{Label: testLabel},
		&ir.CJump{Cond: g.lowerExpr(w.Cond).asExpr(), True: bodyLabel, False: endLabel},
		&ir.Label{Label: bodyLabel},
		g.lowerExpr(w.Body).asStmt(),
		&ir.Jump{Label: testLabel},
		&ir.Label{Label: endLabel},
	)
}

// lowerFor lowers a counting loop.  The upper bound and the step are
// evaluated again on every iteration.
func (g *Generator) lowerFor(f *ast.For) ir.Stmt {
	testLabel, bodyLabel, endLabel := g.alloc.NewLabel(), g.alloc.NewLabel(), g.alloc.NewLabel()

	// the counter cell is lowered for each use so no IR node is shared
	counter := func() ir.Expr {
		return g.lowerExpr(f.Counter).asExpr()
	}

	return seq(
		&ir.Move{Dst: counter(), Src: g.lowerExpr(f.Low).asExpr()},
		&ir.Label{Label: testLabel},
		&ir.CJump{
			Cond:  &ir.Binop{Op: ir.LT, Left: counter(), Right: g.lowerExpr(f.High).asExpr()},
			True:  bodyLabel,
			False: endLabel,
		},
		&ir.Label{Label: bodyLabel},
		g.lowerExpr(f.Body).asStmt(),
		&ir.Move{
			Dst: counter(),
			Src: &ir.Binop{Op: ir.ADD, Left: counter(), Right: g.lowerExpr(f.Step).asExpr()},
		},
		&ir.Jump{Label: testLabel},
		&ir.Label{Label: endLabel},
	)
}
