package lower

import (
	"pinsc/ast"
	"pinsc/frame"
	"pinsc/ir"
)

// lowerDefs lowers the definitions of one scope.  Functions become code chunks
// and globals become global chunks.  Locals need no code: their storage is
// part of the enclosing frame.
func (g *Generator) lowerDefs(defs []ast.NodeID) {
	for _, id := range defs {
		switch v := g.tree.Node(id).(type) {
		case *ast.FunDef:
			g.lowerFunDef(id, v)
		case *ast.VarDef:
			if g.staticLevel == 0 {
				g.lowerGlobal(id)
			}
		}
	}
}

// lowerGlobal creates the global chunk of a top level variable.
func (g *Generator) lowerGlobal(id ast.NodeID) {
	ga, ok := g.accessOf(id).(*frame.GlobalAccess)
	if !ok {
		g.error(id, "top level variable does not have global storage")
	}

	g.chunks = append(g.chunks, &ir.GlobalChunk{Access: ga})
}

// lowerFunDef creates the code chunk of a function.  The value of the body is
// stored in the first word of the frame, over the static link, where the
// caller reads it after the call returns.
func (g *Generator) lowerFunDef(id ast.NodeID, fd *ast.FunDef) {
	f := g.frameOf(id)

	outerLevel := g.staticLevel
	g.staticLevel = f.StaticLevel()

	body := g.lowerExpr(fd.Body)

	g.chunks = append(g.chunks, &ir.CodeChunk{
		Frame: f,
		Body: &ir.Move{
			Dst: &ir.Mem{Addr: &ir.Name{Label: frame.FP}},
			Src: body.asExpr(),
		},
	})

	g.staticLevel = outerLevel
}
