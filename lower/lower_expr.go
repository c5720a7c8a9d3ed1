package lower

import (
	"pinsc/ast"
	"pinsc/frame"
	"pinsc/ir"
	"pinsc/report"
	"pinsc/types"
	"strconv"
)

// lowerExpr lowers an expression.
func (g *Generator) lowerExpr(id ast.NodeID) code {
	switch v := g.tree.Node(id).(type) {
	case *ast.Literal:
		return exprCode(g.lowerLiteral(id, v))
	case *ast.Name:
		return exprCode(g.lowerName(id))
	case *ast.Call:
		return exprCode(g.lowerCall(id, v))
	case *ast.Binary:
		return exprCode(&ir.Binop{
			Op:    binaryOps[v.Op],
			Left:  g.lowerExpr(v.Left).asExpr(),
			Right: g.lowerExpr(v.Right).asExpr(),
		})
	case *ast.Unary:
		return exprCode(g.lowerUnary(v))
	case *ast.Index:
		return exprCode(g.lowerIndex(id, v))
	case *ast.Assign:
		return stmtCode(g.lowerAssign(v))
	case *ast.Block:
		return g.lowerBlock(v)
	case *ast.IfThenElse:
		return g.lowerIfThenElse(id, v)
	case *ast.While:
		return stmtCode(g.lowerWhile(v))
	case *ast.For:
		return stmtCode(g.lowerFor(v))
	case *ast.Where:
		g.lowerDefs(v.Defs)
		return g.lowerExpr(v.Expr)
	case nil:
		g.error(id, "missing expression")
	default:
		report.ReportICE("node %d is not an expression", id)
	}

	return code{}
}

var binaryOps = map[ast.BinaryOp]ir.Operator{
	ast.OpAdd: ir.ADD,
	ast.OpSub: ir.SUB,
	ast.OpMul: ir.MUL,
	ast.OpDiv: ir.DIV,
	ast.OpMod: ir.MOD,
	ast.OpAnd: ir.AND,
	ast.OpOr:  ir.OR,
	ast.OpEq:  ir.EQ,
	ast.OpNeq: ir.NEQ,
	ast.OpLt:  ir.LT,
	ast.OpGt:  ir.GT,
	ast.OpLeq: ir.LEQ,
	ast.OpGeq: ir.GEQ,
}

// lowerLiteral lowers a constant.  Strings are referred to by the address of
// their data chunk.
func (g *Generator) lowerLiteral(id ast.NodeID, lit *ast.Literal) ir.Expr {
	switch lit.Kind {
	case ast.LitInteger:
		n, err := strconv.Atoi(lit.Value)
		if err != nil {
			g.error(id, "invalid integer constant `%s`", lit.Value)
		}

		return &ir.Const{Value: n}
	case ast.LitLogical:
		if lit.Value == "true" {
			return &ir.Const{Value: 1}
		}

		return &ir.Const{Value: 0}
	default:
		return &ir.Name{Label: g.internString(lit.Value)}
	}
}

// lowerName lowers a use of a variable or parameter to the memory cell that
// holds it.  Array parameters hold the address of the array, so the cell is
// dereferenced once more to reach the array itself.
func (g *Generator) lowerName(id ast.NodeID) ir.Expr {
	def := g.defOf(id)

	switch v := g.accessOf(def).(type) {
	case *frame.GlobalAccess:
		return &ir.Mem{Addr: &ir.Name{Label: v.Label}}
	case *frame.LocalAccess:
		return g.frameCell(id, v.StaticLevel, v.Offset)
	case *frame.ParamAccess:
		cell := g.frameCell(id, v.StaticLevel, v.Offset)
		if types.IsArray(g.typeOf(def)) {
			return &ir.Mem{Addr: cell}
		}

		return cell
	default:
		report.ReportICE("unknown access for definition %d", def)
		return nil
	}
}

// frameCell returns the cell at the given offset in the frame of the function
// at the given static level, which must enclose the current function.
func (g *Generator) frameCell(id ast.NodeID, level, offset int) ir.Expr {
	if g.staticLevel < level {
		g.error(id, "variable is accessed outside of the function that defines it")
	}

	return &ir.Mem{Addr: &ir.Binop{
		Op:    ir.ADD,
		Left:  staticLink(g.staticLevel - level),
		Right: &ir.Const{Value: offset},
	}}
}

// lowerCall lowers a function call.  The first argument of a user function is
// its static link: the frame pointer of the function it is nested in.
// Intrinsics receive the frame pointer of the caller instead.
func (g *Generator) lowerCall(id ast.NodeID, call *ast.Call) ir.Expr {
	args := make([]ir.Expr, 0, len(call.Args)+1)

	var label frame.Label
	if _, ok := g.intrinsics[call.Name]; ok {
		label = frame.NamedLabel(call.Name)
		args = append(args, &ir.Name{Label: frame.FP})
	} else {
		callee := g.frameOf(g.defOf(id))

		levels := g.staticLevel - callee.StaticLevel() + 1
		if levels < 0 {
			g.error(id, "`%s` is not visible from the calling function", call.Name)
		}

		label = callee.Label()
		args = append(args, staticLink(levels))
	}

	for _, arg := range call.Args {
		argExpr := g.lowerExpr(arg).asExpr()

		if types.IsArray(g.typeOf(arg)) {
			args = append(args, g.addressOf(arg, argExpr))
		} else {
			args = append(args, argExpr)
		}
	}

	return &ir.Call{Label: label, Args: args}
}

// addressOf returns the address of an array valued expression.
func (g *Generator) addressOf(id ast.NodeID, expr ir.Expr) ir.Expr {
	mem, ok := expr.(*ir.Mem)
	if !ok {
		g.error(id, "array does not refer to memory")
	}

	return mem.Addr
}

// lowerUnary lowers a unary operator application.  Negations are expressed as
// subtractions.
func (g *Generator) lowerUnary(u *ast.Unary) ir.Expr {
	operand := g.lowerExpr(u.Operand).asExpr()

	switch u.Op {
	case ast.OpNeg:
		return &ir.Binop{Op: ir.SUB, Left: &ir.Const{Value: 0}, Right: operand}
	case ast.OpNot:
		return &ir.Binop{Op: ir.SUB, Left: &ir.Const{Value: 1}, Right: operand}
	default:
		return operand
	}
}

// lowerIndex lowers an array element access to the cell of the element.
func (g *Generator) lowerIndex(id ast.NodeID, index *ast.Index) ir.Expr {
	if !types.IsArray(g.typeOf(index.Array)) {
		g.error(id, "only arrays can be indexed")
	}

	base := g.addressOf(index.Array, g.lowerExpr(index.Array).asExpr())
	elemSize := g.typeOf(id).SizeInBytes()

	return &ir.Mem{Addr: &ir.Binop{
		Op:   ir.ADD,
		Left: base,
		Right: &ir.Binop{
			Op:    ir.MUL,
			Left:  g.lowerExpr(index.Index).asExpr(),
			Right: &ir.Const{Value: elemSize},
		},
	}}
}

// lowerAssign lowers an assignment to a move.
func (g *Generator) lowerAssign(assign *ast.Assign) ir.Stmt {
	dst := g.lowerExpr(assign.Target).asExpr()

	switch dst.(type) {
	case *ir.Mem, *ir.Temp:
	default:
		g.error(assign.Target, "assignment target is not a memory location")
	}

	return &ir.Move{Dst: dst, Src: g.lowerExpr(assign.Value).asExpr()}
}
