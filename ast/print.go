package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented dump of the tree to w.
func Fprint(w io.Writer, t *Tree) {
	p := &printer{w: w, t: t}
	p.print(t.Root, 0)
}

type printer struct {
	w io.Writer
	t *Tree
}

func (p *printer) line(depth int, id NodeID, format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))

	if span := p.t.Span(id); span != nil {
		fmt.Fprintf(p.w, " @%d:%d", span.StartLine+1, span.StartCol+1)
	}

	fmt.Fprintln(p.w)
}

func (p *printer) printAll(ids []NodeID, depth int) {
	for _, id := range ids {
		p.print(id, depth)
	}
}

func (p *printer) print(id NodeID, depth int) {
	switch v := p.t.Node(id).(type) {
	case *Program:
		p.line(depth, id, "Program")
		p.printAll(v.Defs, depth+1)
	case *FunDef:
		p.line(depth, id, "FunDef %s", v.Name)
		p.printAll(v.Params, depth+1)
		p.print(v.Result, depth+1)
		p.print(v.Body, depth+1)
	case *Param:
		p.line(depth, id, "Param %s", v.Name)
		p.print(v.Type, depth+1)
	case *VarDef:
		p.line(depth, id, "VarDef %s", v.Name)
		p.print(v.Type, depth+1)
	case *TypeDef:
		p.line(depth, id, "TypeDef %s", v.Name)
		p.print(v.Type, depth+1)
	case *AtomType:
		p.line(depth, id, "AtomType %s", [...]string{"integer", "logical", "string"}[v.Kind])
	case *ArrayType:
		p.line(depth, id, "ArrayType [%d]", v.Size)
		p.print(v.Elem, depth+1)
	case *TypeName:
		p.line(depth, id, "TypeName %s", v.Name)
	case *Literal:
		if v.Kind == LitString {
			p.line(depth, id, "Literal %s", strconv.Quote(v.Value))
		} else {
			p.line(depth, id, "Literal %s", v.Value)
		}
	case *Name:
		p.line(depth, id, "Name %s", v.Name)
	case *Call:
		p.line(depth, id, "Call %s", v.Name)
		p.printAll(v.Args, depth+1)
	case *Binary:
		p.line(depth, id, "Binary %s", v.Op)
		p.print(v.Left, depth+1)
		p.print(v.Right, depth+1)
	case *Unary:
		p.line(depth, id, "Unary %s", v.Op)
		p.print(v.Operand, depth+1)
	case *Index:
		p.line(depth, id, "Index")
		p.print(v.Array, depth+1)
		p.print(v.Index, depth+1)
	case *Assign:
		p.line(depth, id, "Assign")
		p.print(v.Target, depth+1)
		p.print(v.Value, depth+1)
	case *Block:
		p.line(depth, id, "Block")
		p.printAll(v.Exprs, depth+1)
	case *IfThenElse:
		p.line(depth, id, "IfThenElse")
		p.print(v.Cond, depth+1)
		p.print(v.Then, depth+1)
		if v.Else != NoNode {
			p.print(v.Else, depth+1)
		}
	case *While:
		p.line(depth, id, "While")
		p.print(v.Cond, depth+1)
		p.print(v.Body, depth+1)
	case *For:
		p.line(depth, id, "For")
		p.print(v.Counter, depth+1)
		p.print(v.Low, depth+1)
		p.print(v.High, depth+1)
		p.print(v.Step, depth+1)
		p.print(v.Body, depth+1)
	case *Where:
		p.line(depth, id, "Where")
		p.print(v.Expr, depth+1)
		p.printAll(v.Defs, depth+1)
	}
}
