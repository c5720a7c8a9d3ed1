package ir

import (
	"fmt"
	"io"
	"pinsc/frame"
	"strconv"
	"strings"
)

// Chunk is one compiled top level fragment of a program.
type Chunk interface {
	// Label returns the label the chunk is stored at.
	Label() frame.Label

	chunk()
}

// CodeChunk is the compiled body of a function.
type CodeChunk struct {
	Frame *frame.Frame
	Body  Stmt
}

// DataChunk is a statically allocated string constant.
type DataChunk struct {
	Access *frame.GlobalAccess
	Data   string
}

// GlobalChunk is a statically allocated global variable with no initializer.
type GlobalChunk struct {
	Access *frame.GlobalAccess
}

func (*CodeChunk) chunk()   {}
func (*DataChunk) chunk()   {}
func (*GlobalChunk) chunk() {}

func (cc *CodeChunk) Label() frame.Label {
	return cc.Frame.Label()
}

func (dc *DataChunk) Label() frame.Label {
	return dc.Access.Label
}

func (gc *GlobalChunk) Label() frame.Label {
	return gc.Access.Label
}

// -----------------------------------------------------------------------------

// Fprint writes the chunks of a program to w.  Sequences are printed one
// statement per line with labels outdented.
func Fprint(w io.Writer, chunks []Chunk) {
	for _, chunk := range chunks {
		switch v := chunk.(type) {
		case *CodeChunk:
			fmt.Fprintf(w, "code %s (level %d, size %d):\n", v.Label(), v.Frame.StaticLevel(), v.Frame.Size())
			fprintStmt(w, v.Body, 1)
		case *DataChunk:
			fmt.Fprintf(w, "data %s (size %d): %s\n", v.Label(), v.Access.Size, strconv.Quote(v.Data))
		case *GlobalChunk:
			fmt.Fprintf(w, "global %s (size %d)\n", v.Label(), v.Access.Size)
		}

		fmt.Fprintln(w)
	}
}

func fprintStmt(w io.Writer, stmt Stmt, depth int) {
	indent := strings.Repeat("  ", depth)

	switch v := stmt.(type) {
	case *Seq:
		for _, inner := range v.Stmts {
			fprintStmt(w, inner, depth)
		}
	case *Label:
		fmt.Fprintf(w, "%s:\n", v.Label.Name())
	default:
		fmt.Fprintf(w, "%s%s\n", indent, stmt.Repr())
	}
}
