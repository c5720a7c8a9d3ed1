package walk

import (
	"pinsc/ast"
	"pinsc/common"
	"pinsc/report"
	"pinsc/sem"
	"pinsc/types"
)

// Walker is responsible for walking a program tree and performing semantic
// analysis on it: it binds every use of a name to its definition and computes
// the type of every expression, type node and definition.
type Walker struct {
	// The tree being walked.
	tree *ast.Tree

	// The attributes being computed.
	attrs *sem.Attributes

	// The stack of scopes used to lookup definitions.  The first scope is the
	// program's global scope.
	scopes []map[string]ast.NodeID

	// The set of type definitions currently being resolved.  Used to detect
	// cyclic type definitions.
	resolving map[ast.NodeID]struct{}
}

// WalkProgram semantically analyzes the given tree and returns its attributes.
func WalkProgram(tree *ast.Tree) (attrs *sem.Attributes, err error) {
	defer report.Catch(&err)

	w := &Walker{
		tree:      tree,
		attrs:     sem.NewAttributes(),
		resolving: make(map[ast.NodeID]struct{}),
	}

	prog := tree.Program()
	if prog == nil {
		report.ReportICE("tree has no program root")
	}

	w.pushScope()
	w.walkDefs(prog.Defs)
	w.checkEntryPoint(prog)
	w.popScope()

	return w.attrs, nil
}

// checkEntryPoint checks that the program defines a valid main function.
func (w *Walker) checkEntryPoint(prog *ast.Program) {
	id, ok := w.scopes[0][common.EntryPointName]
	if !ok {
		w.error(report.NameError, prog.Span(), "program does not define a `%s` function", common.EntryPointName)
	}

	fd, ok := w.tree.Node(id).(*ast.FunDef)
	if !ok {
		w.error(report.NameError, w.tree.Span(id), "`%s` must be a function", common.EntryPointName)
	}

	if len(fd.Params) != 0 {
		w.error(report.NameError, fd.Span(), "`%s` must not take any parameters", common.EntryPointName)
	}
}

// -----------------------------------------------------------------------------

// lookup looks up a definition by name in all visible scopes.  If no
// definition by the given name can be found, then an error is reported.
func (w *Walker) lookup(name string, span *report.TextSpan) ast.NodeID {
	// Traverse scopes in reverse order to implement shadowing.
	for i := len(w.scopes) - 1; i > -1; i-- {
		if id, ok := w.scopes[i][name]; ok {
			return id
		}
	}

	w.error(report.NameError, span, "undefined name `%s`", name)
	return ast.NoNode
}

// define defines a name in the current scope.  If the name is already defined
// in that scope or is reserved for an intrinsic, then an error is reported.
func (w *Walker) define(name string, id ast.NodeID) {
	if _, ok := common.LookupIntrinsic(name); ok {
		w.error(report.NameError, w.tree.Span(id), "`%s` is reserved for a standard library function", name)
	}

	currScope := w.scopes[len(w.scopes)-1]
	if _, ok := currScope[name]; ok {
		w.error(report.NameError, w.tree.Span(id), "multiple definitions named `%s` in the same scope", name)
	}

	currScope[name] = id
}

// pushScope pushes a new scope onto the scope stack.
func (w *Walker) pushScope() {
	w.scopes = append(w.scopes, make(map[string]ast.NodeID))
}

// popScope removes the top scope from the scope stack.
func (w *Walker) popScope() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

// -----------------------------------------------------------------------------

// error reports an error on the given span that aborts walking.
func (w *Walker) error(kind report.ErrorKind, span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(kind, span, msg, args...))
}

// typeOf returns the already computed type of a node.
func (w *Walker) typeOf(id ast.NodeID) types.Type {
	if typ, ok := w.attrs.Type(id); ok {
		return typ
	}

	report.ReportICE("node %d has no type", id)
	return nil
}

// expect checks that the type of an expression is the expected type.
func (w *Walker) expect(id ast.NodeID, expected types.Type) {
	if actual := w.typeOf(id); !types.Equals(actual, expected) {
		w.error(report.TypeError, w.tree.Span(id), "expected type `%s` but got `%s`", expected.Repr(), actual.Repr())
	}
}
