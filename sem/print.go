package sem

import (
	"fmt"
	"io"
	"pinsc/ast"
	"strings"
)

// Fprint writes the attributes of every node which has any to w, one node per
// line in node ID order.  Each line gives the kind of the node, its position,
// its type and the definition it refers to.
func Fprint(w io.Writer, tree *ast.Tree, attrs *Attributes) {
	for i := 1; i <= tree.Len(); i++ {
		id := ast.NodeID(i)

		typ, hasType := attrs.Type(id)
		def, hasDef := attrs.Def(id)
		if !hasType && !hasDef {
			continue
		}

		node := tree.Node(id)
		fmt.Fprintf(w, "#%d %s", id, strings.TrimPrefix(fmt.Sprintf("%T", node), "*ast."))

		switch v := node.(type) {
		case *ast.Name:
			fmt.Fprintf(w, " %s", v.Name)
		case *ast.Call:
			fmt.Fprintf(w, " %s", v.Name)
		case *ast.TypeName:
			fmt.Fprintf(w, " %s", v.Name)
		default:
			if name, ok := ast.DefName(node); ok {
				fmt.Fprintf(w, " %s", name)
			}
		}

		if span := tree.Span(id); span != nil {
			fmt.Fprintf(w, " @%d:%d", span.StartLine+1, span.StartCol+1)
		}

		if hasType {
			fmt.Fprintf(w, " : %s", typ.Repr())
		}

		if hasDef {
			fmt.Fprintf(w, " -> #%d", def)
		}

		fmt.Fprintln(w)
	}
}
