package frame

import (
	"fmt"
	"io"
	"pinsc/ast"
	"sort"
)

// Fprint writes a description of every frame and access of a layout to w.
func Fprint(w io.Writer, tree *ast.Tree, layout *Layout) {
	for _, id := range layout.Functions {
		f := layout.Frames[id]
		name, _ := ast.DefName(tree.Node(id))

		fmt.Fprintf(
			w,
			"frame %s [%s] level=%d params=%v locals=%v outgoing=%d size=%d oldfp=%d\n",
			name,
			f.Label(),
			f.StaticLevel(),
			f.paramSizes,
			f.localSizes,
			f.OutgoingSize(),
			f.Size(),
			f.OldFPOffset(),
		)
	}

	ids := make([]int, 0, len(layout.Accesses))
	for id := range layout.Accesses {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	for _, id := range ids {
		name, _ := ast.DefName(tree.Node(ast.NodeID(id)))

		access := layout.Accesses[ast.NodeID(id)]
		size := access.StorageSize()

		switch a := access.(type) {
		case *GlobalAccess:
			fmt.Fprintf(w, "global %s: size=%d label=%s\n", name, size, a.Label)
		case *LocalAccess:
			fmt.Fprintf(w, "local %s: size=%d offset=%d level=%d\n", name, size, a.Offset, a.StaticLevel)
		case *ParamAccess:
			fmt.Fprintf(w, "param %s: size=%d offset=%d level=%d\n", name, size, a.Offset, a.StaticLevel)
		}
	}
}
