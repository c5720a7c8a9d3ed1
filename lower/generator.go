package lower

import (
	"pinsc/ast"
	"pinsc/common"
	"pinsc/frame"
	"pinsc/ir"
	"pinsc/report"
	"pinsc/sem"
	"pinsc/types"
)

// Generator converts an attributed syntax tree into chunks of tree IR.  One
// generator is used for exactly one tree.
type Generator struct {
	tree   *ast.Tree
	attrs  *sem.Attributes
	layout *frame.Layout
	alloc  *frame.Allocator

	// The standard library functions, recognized by name.
	intrinsics map[string]*common.Intrinsic

	// The chunks generated so far in program order.
	chunks []ir.Chunk

	// The labels of the data chunks of every string literal generated so far,
	// keyed by text.
	strings map[string]frame.Label

	// The static level of the function being lowered: 0 at the top level.
	staticLevel int
}

// NewGenerator creates a new generator for the given tree.  The allocator must
// be the one that was used to evaluate the layout.
func NewGenerator(tree *ast.Tree, attrs *sem.Attributes, layout *frame.Layout, alloc *frame.Allocator) *Generator {
	return &Generator{
		tree:       tree,
		attrs:      attrs,
		layout:     layout,
		alloc:      alloc,
		intrinsics: common.Intrinsics,
		strings:    make(map[string]frame.Label),
	}
}

// Generate lowers a whole program into chunks: one code chunk per function,
// one global chunk per global variable and one data chunk per distinct string
// literal.
func Generate(tree *ast.Tree, attrs *sem.Attributes, layout *frame.Layout, alloc *frame.Allocator) ([]ir.Chunk, error) {
	return NewGenerator(tree, attrs, layout, alloc).Generate()
}

// Generate runs the generator.
func (g *Generator) Generate() (chunks []ir.Chunk, err error) {
	defer report.Catch(&err)

	prog := g.tree.Program()
	if prog == nil {
		report.ReportICE("tree has no program root")
	}

	g.lowerDefs(prog.Defs)
	return g.chunks, nil
}

// -----------------------------------------------------------------------------

// error raises a generation error on the given node.
func (g *Generator) error(id ast.NodeID, msg string, args ...interface{}) {
	panic(report.Raise(report.GenerationError, g.tree.Span(id), msg, args...))
}

// typeOf returns the resolved type of a node.
func (g *Generator) typeOf(id ast.NodeID) types.Type {
	typ, ok := g.attrs.Type(id)
	if !ok {
		g.error(id, "node has no resolved type")
	}

	return typ
}

// defOf returns the definition a use refers to.
func (g *Generator) defOf(id ast.NodeID) ast.NodeID {
	def, ok := g.attrs.Def(id)
	if !ok {
		g.error(id, "name is not bound to a definition")
	}

	return def
}

// accessOf returns the access of a variable or parameter definition.
func (g *Generator) accessOf(def ast.NodeID) frame.Access {
	access, ok := g.layout.Access(def)
	if !ok {
		g.error(def, "variable has no storage")
	}

	return access
}

// frameOf returns the frame of a function definition.  A function without a
// frame was never evaluated, which is a frame error rather than a generation
// error.
func (g *Generator) frameOf(fun ast.NodeID) *frame.Frame {
	f, ok := g.layout.Frame(fun)
	if !ok {
		panic(report.Raise(report.FrameError, g.tree.Span(fun), "function has no frame"))
	}

	return f
}

// internString returns the label of the data chunk holding the given text,
// creating the chunk the first time the text is seen.
func (g *Generator) internString(text string) frame.Label {
	if label, ok := g.strings[text]; ok {
		return label
	}

	label := g.alloc.NewLabel()
	g.strings[text] = label
	g.chunks = append(g.chunks, &ir.DataChunk{
		Access: &frame.GlobalAccess{Size: common.WordSize, Label: label},
		Data:   text,
	})

	return label
}

// staticLink returns the address of the frame `levels` static links up from
// the current frame: `Mem^levels(Name FP)`.
func staticLink(levels int) ir.Expr {
	var link ir.Expr = &ir.Name{Label: frame.FP}
	for i := 0; i < levels; i++ {
		link = &ir.Mem{Addr: link}
	}

	return link
}
