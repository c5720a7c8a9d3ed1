package walk

import (
	"pinsc/ast"
	"pinsc/common"
	"pinsc/report"
	"pinsc/types"
)

// walkExpr walks an expression and records its type.
func (w *Walker) walkExpr(id ast.NodeID) types.Type {
	var typ types.Type

	switch v := w.tree.Node(id).(type) {
	case *ast.Literal:
		switch v.Kind {
		case ast.LitInteger:
			typ = types.AtomInt
		case ast.LitLogical:
			typ = types.AtomLog
		default:
			typ = types.AtomStr
		}
	case *ast.Name:
		typ = w.walkName(id, v)
	case *ast.Call:
		typ = w.walkCall(id, v)
	case *ast.Binary:
		typ = w.walkBinary(v)
	case *ast.Unary:
		typ = w.walkUnary(v)
	case *ast.Index:
		typ = w.walkIndex(v)
	case *ast.Assign:
		typ = w.walkAssign(v)
	case *ast.Block:
		for _, expr := range v.Exprs {
			typ = w.walkExpr(expr)
		}
	case *ast.IfThenElse:
		typ = w.walkIfThenElse(v)
	case *ast.While:
		w.walkExpr(v.Cond)
		w.expect(v.Cond, types.AtomLog)
		w.walkExpr(v.Body)

		typ = types.AtomVoid
	case *ast.For:
		w.walkFor(v)
		typ = types.AtomVoid
	case *ast.Where:
		w.pushScope()
		w.walkDefs(v.Defs)
		typ = w.walkExpr(v.Expr)
		w.popScope()
	default:
		report.ReportICE("node %d is not an expression", id)
	}

	w.attrs.SetType(id, typ)
	return typ
}

// walkName walks a use of a variable or parameter.
func (w *Walker) walkName(id ast.NodeID, name *ast.Name) types.Type {
	defID := w.lookup(name.Name, name.Span())

	switch w.tree.Node(defID).(type) {
	case *ast.VarDef, *ast.Param:
		w.attrs.BindDef(id, defID)
		return w.typeOf(defID)
	case *ast.FunDef:
		w.error(report.NameError, name.Span(), "function `%s` cannot be used as a value", name.Name)
	case *ast.TypeDef:
		w.error(report.NameError, name.Span(), "type `%s` cannot be used as a value", name.Name)
	}

	return nil
}

// walkCall walks a function call.  Calls to intrinsics are checked against
// their fixed signature and are not bound to any definition.
func (w *Walker) walkCall(id ast.NodeID, call *ast.Call) types.Type {
	var ft *types.FunType

	if in, ok := common.LookupIntrinsic(call.Name); ok {
		ft = &types.FunType{Result: types.FromIntrinsicKind(in.Result)}
		for _, kind := range in.Params {
			ft.Params = append(ft.Params, types.FromIntrinsicKind(kind))
		}
	} else {
		defID := w.lookup(call.Name, call.Span())
		if _, ok := w.tree.Node(defID).(*ast.FunDef); !ok {
			w.error(report.NameError, call.Span(), "`%s` is not a function", call.Name)
		}

		w.attrs.BindDef(id, defID)
		ft = w.typeOf(defID).(*types.FunType)
	}

	if len(call.Args) != len(ft.Params) {
		w.error(
			report.TypeError,
			call.Span(),
			"`%s` expects %d arguments but received %d",
			call.Name,
			len(ft.Params),
			len(call.Args),
		)
	}

	for i, arg := range call.Args {
		w.walkExpr(arg)
		w.expect(arg, ft.Params[i])
	}

	return ft.Result
}

// walkBinary walks a binary operator application.
func (w *Walker) walkBinary(bin *ast.Binary) types.Type {
	lhsType := w.walkExpr(bin.Left)
	w.walkExpr(bin.Right)

	switch {
	case bin.Op.IsArithmetic():
		w.expect(bin.Left, types.AtomInt)
		w.expect(bin.Right, types.AtomInt)
		return types.AtomInt
	case bin.Op.IsLogical():
		w.expect(bin.Left, types.AtomLog)
		w.expect(bin.Right, types.AtomLog)
		return types.AtomLog
	default:
		if !types.IsInt(lhsType) && !types.IsLog(lhsType) {
			w.error(report.TypeError, w.tree.Span(bin.Left), "operator `%s` cannot compare values of type `%s`", bin.Op, lhsType.Repr())
		}

		w.expect(bin.Right, lhsType)
		return types.AtomLog
	}
}

// walkUnary walks a unary operator application.
func (w *Walker) walkUnary(un *ast.Unary) types.Type {
	w.walkExpr(un.Operand)

	if un.Op == ast.OpNot {
		w.expect(un.Operand, types.AtomLog)
		return types.AtomLog
	}

	w.expect(un.Operand, types.AtomInt)
	return types.AtomInt
}

// walkIndex walks an array element access.
func (w *Walker) walkIndex(index *ast.Index) types.Type {
	arrType := w.walkExpr(index.Array)

	at, ok := arrType.(*types.ArrayType)
	if !ok {
		w.error(report.TypeError, w.tree.Span(index.Array), "cannot index a value of type `%s`", arrType.Repr())
	}

	w.walkExpr(index.Index)
	w.expect(index.Index, types.AtomInt)

	return at.Elem
}

// walkAssign walks an assignment.  Assignments are effects: they have no
// value.
func (w *Walker) walkAssign(assign *ast.Assign) types.Type {
	targetType := w.walkExpr(assign.Target)

	switch w.tree.Node(assign.Target).(type) {
	case *ast.Name, *ast.Index:
	default:
		w.error(report.TypeError, w.tree.Span(assign.Target), "cannot assign to this expression")
	}

	if !types.IsAtom(targetType) {
		w.error(report.TypeError, w.tree.Span(assign.Target), "cannot assign to a value of type `%s`", targetType.Repr())
	}

	w.walkExpr(assign.Value)
	w.expect(assign.Value, targetType)

	return types.AtomVoid
}

// walkIfThenElse walks a conditional.  A conditional with an else branch has
// a value if both branches have the same non-void type.
func (w *Walker) walkIfThenElse(ite *ast.IfThenElse) types.Type {
	w.walkExpr(ite.Cond)
	w.expect(ite.Cond, types.AtomLog)

	thenType := w.walkExpr(ite.Then)
	if ite.Else == ast.NoNode {
		return types.AtomVoid
	}

	elseType := w.walkExpr(ite.Else)
	if types.IsAtom(thenType) && types.Equals(thenType, elseType) {
		return thenType
	}

	return types.AtomVoid
}

// walkFor walks a counting loop.
func (w *Walker) walkFor(f *ast.For) {
	if _, ok := w.tree.Node(f.Counter).(*ast.Name); !ok {
		report.ReportICE("for loop counter is not a name")
	}

	w.walkExpr(f.Counter)
	w.expect(f.Counter, types.AtomInt)

	for _, bound := range []ast.NodeID{f.Low, f.High, f.Step} {
		w.walkExpr(bound)
		w.expect(bound, types.AtomInt)
	}

	w.walkExpr(f.Body)
}
