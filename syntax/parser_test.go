package syntax

import (
	"pinsc/ast"
	"pinsc/report"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()

	tree, err := ParseSource(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	return tree
}

// bodyOf returns the body of the first top level function.
func bodyOf(t *testing.T, tree *ast.Tree) ast.Node {
	t.Helper()

	fd, ok := tree.Node(tree.Program().Defs[0]).(*ast.FunDef)
	if !ok {
		t.Fatalf("first definition is not a function")
	}

	return tree.Node(fd.Body)
}

func TestParseDefinitions(t *testing.T) {
	tree := mustParse(t, `
		typ vec : arr[3] integer;
		var g : vec;
		fun f(a : integer, b : arr[2] logical) : string = 'x'
	`)

	defs := tree.Program().Defs
	if len(defs) != 3 {
		t.Fatalf("got %d definitions, want 3", len(defs))
	}

	td, ok := tree.Node(defs[0]).(*ast.TypeDef)
	if !ok || td.Name != "vec" {
		t.Fatalf("definition 0 = %#v", tree.Node(defs[0]))
	}

	at, ok := tree.Node(td.Type).(*ast.ArrayType)
	if !ok || at.Size != 3 {
		t.Fatalf("type of vec = %#v", tree.Node(td.Type))
	}

	vd := tree.Node(defs[1]).(*ast.VarDef)
	if tn, ok := tree.Node(vd.Type).(*ast.TypeName); !ok || tn.Name != "vec" {
		t.Errorf("type of g = %#v", tree.Node(vd.Type))
	}

	fd := tree.Node(defs[2]).(*ast.FunDef)
	if len(fd.Params) != 2 {
		t.Fatalf("f has %d params, want 2", len(fd.Params))
	}

	if param := tree.Node(fd.Params[1]).(*ast.Param); param.Name != "b" {
		t.Errorf("second param = %q", param.Name)
	}
}

func TestParsePrecedence(t *testing.T) {
	tree := mustParse(t, "fun main() : integer = 2 + 3 * 4")

	add, ok := bodyOf(t, tree).(*ast.Binary)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("body = %#v", bodyOf(t, tree))
	}

	if mul, ok := tree.Node(add.Right).(*ast.Binary); !ok || mul.Op != ast.OpMul {
		t.Errorf("right operand = %#v", tree.Node(add.Right))
	}
}

func TestParseLogicalPrecedence(t *testing.T) {
	tree := mustParse(t, "fun main() : logical = a < 1 | b & !c")

	or, ok := bodyOf(t, tree).(*ast.Binary)
	if !ok || or.Op != ast.OpOr {
		t.Fatalf("body = %#v", bodyOf(t, tree))
	}

	if cmp, ok := tree.Node(or.Left).(*ast.Binary); !ok || cmp.Op != ast.OpLt {
		t.Errorf("left operand = %#v", tree.Node(or.Left))
	}

	and, ok := tree.Node(or.Right).(*ast.Binary)
	if !ok || and.Op != ast.OpAnd {
		t.Fatalf("right operand = %#v", tree.Node(or.Right))
	}

	if not, ok := tree.Node(and.Right).(*ast.Unary); !ok || not.Op != ast.OpNot {
		t.Errorf("and right operand = %#v", tree.Node(and.Right))
	}
}

func TestParseCompoundExprs(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(ast.Node) bool
	}{
		{"assign", "{x = 1}", func(n ast.Node) bool { _, ok := n.(*ast.Assign); return ok }},
		{"if", "{if x then 1}", func(n ast.Node) bool {
			ite, ok := n.(*ast.IfThenElse)
			return ok && ite.Else == ast.NoNode
		}},
		{"if else", "{if x then 1 else 2}", func(n ast.Node) bool {
			ite, ok := n.(*ast.IfThenElse)
			return ok && ite.Else != ast.NoNode
		}},
		{"while", "{while x : y}", func(n ast.Node) bool { _, ok := n.(*ast.While); return ok }},
		{"for", "{for i = 0, 10, 1 : x}", func(n ast.Node) bool { _, ok := n.(*ast.For); return ok }},
		{"block", "(1, 2, 3)", func(n ast.Node) bool {
			b, ok := n.(*ast.Block)
			return ok && len(b.Exprs) == 3
		}},
		{"call", "f(1, g())", func(n ast.Node) bool {
			c, ok := n.(*ast.Call)
			return ok && c.Name == "f" && len(c.Args) == 2
		}},
		{"index", "a[1][2]", func(n ast.Node) bool { _, ok := n.(*ast.Index); return ok }},
		{"where", "x { where var x : integer }", func(n ast.Node) bool {
			w, ok := n.(*ast.Where)
			return ok && len(w.Defs) == 1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, "fun main() : integer = "+tt.body)

			if body := bodyOf(t, tree); !tt.check(body) {
				t.Errorf("unexpected body %#v", body)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing type", "var x"},
		{"chained comparison", "fun f() : logical = 1 < 2 < 3"},
		{"zero length array", "var a : arr[0] integer"},
		{"unterminated block", "fun f() : integer = (1, 2"},
		{"missing then", "fun f() : integer = {if x 1}"},
		{"trailing semicolon", "var x : integer;"},
		{"empty source", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}

			if !report.IsKind(err, report.SyntaxError) {
				t.Errorf("error = %v, want a syntax error", err)
			}
		})
	}
}
