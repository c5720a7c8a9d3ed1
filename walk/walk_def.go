package walk

import (
	"pinsc/ast"
	"pinsc/report"
	"pinsc/types"
)

// walkDefs walks the definitions of one scope: the program or a where clause.
// All names are declared before anything is resolved so that definitions can
// refer to each other regardless of their order.  Types and signatures are
// resolved before any function bodies are checked.
func (w *Walker) walkDefs(defs []ast.NodeID) {
	for _, id := range defs {
		name, ok := ast.DefName(w.tree.Node(id))
		if !ok {
			report.ReportICE("non-definition node %d in definition list", id)
		}

		w.define(name, id)
	}

	for _, id := range defs {
		switch v := w.tree.Node(id).(type) {
		case *ast.TypeDef:
			w.resolveTypeDef(id, v)
		case *ast.VarDef:
			w.walkVarDef(id, v)
		case *ast.FunDef:
			w.walkSignature(id, v)
		}
	}

	for _, id := range defs {
		if fd, ok := w.tree.Node(id).(*ast.FunDef); ok {
			w.walkFunBody(id, fd)
		}
	}
}

// walkVarDef resolves the type of a variable definition.
func (w *Walker) walkVarDef(id ast.NodeID, vd *ast.VarDef) {
	w.attrs.SetType(id, w.resolveType(vd.Type))
}

// walkSignature resolves the parameter and result types of a function.
func (w *Walker) walkSignature(id ast.NodeID, fd *ast.FunDef) {
	ft := &types.FunType{}

	for _, paramID := range fd.Params {
		param := w.tree.Node(paramID).(*ast.Param)
		paramType := w.resolveType(param.Type)

		if !types.IsAtom(paramType) && !types.IsArray(paramType) {
			w.error(report.TypeError, w.tree.Span(param.Type), "invalid parameter type `%s`", paramType.Repr())
		}

		w.attrs.SetType(paramID, paramType)
		ft.Params = append(ft.Params, paramType)
	}

	ft.Result = w.resolveType(fd.Result)
	if !types.IsAtom(ft.Result) {
		w.error(report.TypeError, w.tree.Span(fd.Result), "function result must be an atom type, not `%s`", ft.Result.Repr())
	}

	w.attrs.SetType(id, ft)
}

// walkFunBody checks the body of a function within a new scope holding its
// parameters.
func (w *Walker) walkFunBody(id ast.NodeID, fd *ast.FunDef) {
	w.pushScope()
	defer w.popScope()

	for _, paramID := range fd.Params {
		w.define(w.tree.Node(paramID).(*ast.Param).Name, paramID)
	}

	w.walkExpr(fd.Body)

	ft := w.typeOf(id).(*types.FunType)
	if bodyType := w.typeOf(fd.Body); !types.Equals(bodyType, ft.Result) {
		w.error(
			report.TypeError,
			w.tree.Span(fd.Body),
			"body of `%s` has type `%s` but the function returns `%s`",
			fd.Name,
			bodyType.Repr(),
			ft.Result.Repr(),
		)
	}
}

// -----------------------------------------------------------------------------

// resolveTypeDef resolves the type named by a type definition.
func (w *Walker) resolveTypeDef(id ast.NodeID, td *ast.TypeDef) types.Type {
	if typ, ok := w.attrs.Type(id); ok {
		return typ
	}

	if _, ok := w.resolving[id]; ok {
		w.error(report.TypeError, td.Span(), "type `%s` is defined in terms of itself", td.Name)
	}

	w.resolving[id] = struct{}{}
	typ := w.resolveType(td.Type)
	delete(w.resolving, id)

	w.attrs.SetType(id, typ)
	return typ
}

// resolveType converts a type node into the type it denotes.
func (w *Walker) resolveType(id ast.NodeID) types.Type {
	var typ types.Type

	switch v := w.tree.Node(id).(type) {
	case *ast.AtomType:
		switch v.Kind {
		case ast.AtomInteger:
			typ = types.AtomInt
		case ast.AtomLogical:
			typ = types.AtomLog
		default:
			typ = types.AtomStr
		}
	case *ast.ArrayType:
		typ = &types.ArrayType{Size: v.Size, Elem: w.resolveType(v.Elem)}
	case *ast.TypeName:
		defID := w.lookup(v.Name, v.Span())

		td, ok := w.tree.Node(defID).(*ast.TypeDef)
		if !ok {
			w.error(report.NameError, v.Span(), "`%s` is not a type", v.Name)
		}

		w.attrs.BindDef(id, defID)
		typ = w.resolveTypeDef(defID, td)
	default:
		report.ReportICE("node %d is not a type", id)
	}

	w.attrs.SetType(id, typ)
	return typ
}
