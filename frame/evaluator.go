package frame

import (
	"pinsc/ast"
	"pinsc/common"
	"pinsc/report"
	"pinsc/sem"
)

// Layout is the result of frame evaluation: one frame per function definition
// and one access per variable and parameter definition.
type Layout struct {
	// Frames maps function definitions to their frames.
	Frames map[ast.NodeID]*Frame

	// Accesses maps variable and parameter definitions to their accesses.
	Accesses map[ast.NodeID]Access

	// Functions lists the function definitions in the order their frames were
	// completed.
	Functions []ast.NodeID
}

// Frame returns the frame of a function definition.
func (l *Layout) Frame(fun ast.NodeID) (*Frame, bool) {
	f, ok := l.Frames[fun]
	return f, ok
}

// Access returns the access of a variable or parameter definition.
func (l *Layout) Access(def ast.NodeID) (Access, bool) {
	a, ok := l.Accesses[def]
	return a, ok
}

// -----------------------------------------------------------------------------

// Evaluator computes the layout of every frame and the access of every
// variable of an attributed tree in a single pass.
type Evaluator struct {
	tree  *ast.Tree
	attrs *sem.Attributes
	alloc *Allocator

	layout *Layout

	// The current static level: 0 outside of any function.
	staticLevel int

	// The builder of the frame of the enclosing function.
	builder *Builder
}

// Evaluate computes the frame layout of an attributed tree.  Anonymous labels
// for nested functions are taken from alloc.
func Evaluate(tree *ast.Tree, attrs *sem.Attributes, alloc *Allocator) (layout *Layout, err error) {
	defer report.Catch(&err)

	e := &Evaluator{
		tree:  tree,
		attrs: attrs,
		alloc: alloc,
		layout: &Layout{
			Frames:   make(map[ast.NodeID]*Frame),
			Accesses: make(map[ast.NodeID]Access),
		},
	}

	prog := tree.Program()
	if prog == nil {
		report.ReportICE("tree has no program root")
	}

	e.evalDefs(prog.Defs)
	return e.layout, nil
}

// error raises a frame error on the given node.
func (e *Evaluator) error(id ast.NodeID, msg string, args ...interface{}) {
	panic(report.Raise(report.FrameError, e.tree.Span(id), msg, args...))
}

// sizeOf returns the storage size of a definition.  A definition that cannot
// be sized is fatal.
func (e *Evaluator) sizeOf(id ast.NodeID, name string, asParam bool) int {
	typ, ok := e.attrs.Type(id)
	if !ok {
		e.error(id, "`%s` has no type", name)
	}

	size := typ.SizeInBytes()
	if asParam {
		size = typ.SizeInBytesAsParam()
	}

	if size <= 0 {
		e.error(id, "cannot determine the size of `%s` of type `%s`", name, typ.Repr())
	}

	return size
}

// -----------------------------------------------------------------------------

// evalDefs evaluates the definitions of one scope.
func (e *Evaluator) evalDefs(defs []ast.NodeID) {
	for _, id := range defs {
		switch v := e.tree.Node(id).(type) {
		case *ast.VarDef:
			e.evalVarDef(id, v)
		case *ast.FunDef:
			e.evalFunDef(id, v)
		}
	}
}

// evalVarDef creates the access for a variable.  Variables outside of any
// function are globals.
func (e *Evaluator) evalVarDef(id ast.NodeID, vd *ast.VarDef) {
	size := e.sizeOf(id, vd.Name, false)

	if e.staticLevel == 0 {
		e.layout.Accesses[id] = &GlobalAccess{Size: size, Label: NamedLabel(vd.Name)}
	} else {
		e.layout.Accesses[id] = &LocalAccess{
			Size:        size,
			Offset:      e.builder.AddLocal(size),
			StaticLevel: e.staticLevel,
		}
	}
}

// evalFunDef builds the frame of a function.  Top level functions are labeled
// by their name; nested functions get anonymous labels since their names need
// not be unique.
func (e *Evaluator) evalFunDef(id ast.NodeID, fd *ast.FunDef) {
	outerBuilder := e.builder
	e.staticLevel++

	var label Label
	if e.staticLevel == 1 {
		label = NamedLabel(fd.Name)
	} else {
		label = e.alloc.NewLabel()
	}

	e.builder = NewBuilder(label, e.staticLevel)

	for _, paramID := range fd.Params {
		param := e.tree.Node(paramID).(*ast.Param)
		size := e.sizeOf(paramID, param.Name, true)

		e.layout.Accesses[paramID] = &ParamAccess{
			Size:        size,
			Offset:      e.builder.AddParameter(size),
			StaticLevel: e.staticLevel,
		}
	}

	e.evalExpr(fd.Body)

	e.layout.Frames[id] = e.builder.Build()
	e.layout.Functions = append(e.layout.Functions, id)

	e.staticLevel--
	e.builder = outerBuilder
}

// evalExpr visits an expression collecting locals and calls.
func (e *Evaluator) evalExpr(id ast.NodeID) {
	switch v := e.tree.Node(id).(type) {
	case *ast.Call:
		e.evalCall(id, v)
	case *ast.Where:
		e.evalDefs(v.Defs)
		e.evalExpr(v.Expr)
		return
	}

	for _, child := range ast.Children(e.tree.Node(id)) {
		e.evalExpr(child)
	}
}

// evalCall records the staging space needed by a call in the caller's frame:
// the static link (or frame pointer for intrinsics), the arguments and the
// saved frame pointer.
func (e *Evaluator) evalCall(id ast.NodeID, call *ast.Call) {
	if _, ok := common.LookupIntrinsic(call.Name); !ok {
		def, ok := e.attrs.Def(id)
		if !ok {
			e.error(id, "call to `%s` does not refer to a function", call.Name)
		}

		if _, ok := e.tree.Node(def).(*ast.FunDef); !ok {
			e.error(id, "call to `%s` does not refer to a function", call.Name)
		}
	}

	footprint := 2 * common.WordSize
	for _, arg := range call.Args {
		typ, ok := e.attrs.Type(arg)
		if !ok {
			e.error(arg, "argument to `%s` has no type", call.Name)
		}

		footprint += typ.SizeInBytesAsParam()
	}

	e.builder.AddCall(footprint)
}
