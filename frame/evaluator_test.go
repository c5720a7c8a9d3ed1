package frame

import (
	"bytes"
	"pinsc/ast"
	"pinsc/report"
	"pinsc/sem"
	"pinsc/syntax"
	"pinsc/types"
	"pinsc/walk"
	"strings"
	"testing"
)

func evaluateSource(t *testing.T, src string) (*ast.Tree, *Layout) {
	t.Helper()

	tree, err := syntax.ParseSource(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected syntax error: %s", err)
	}

	attrs, err := walk.WalkProgram(tree)
	if err != nil {
		t.Fatalf("unexpected semantic error: %s", err)
	}

	layout, err := Evaluate(tree, attrs, NewAllocator())
	if err != nil {
		t.Fatalf("unexpected frame error: %s", err)
	}

	return tree, layout
}

// findDef finds the first definition with the given name.
func findDef(tree *ast.Tree, name string) ast.NodeID {
	for id := 1; id <= tree.Len(); id++ {
		if defName, ok := ast.DefName(tree.Node(ast.NodeID(id))); ok && defName == name {
			return ast.NodeID(id)
		}
	}

	return ast.NoNode
}

const layoutSource = `
var g : integer;
fun f(a : integer, b : arr[3] integer) : integer = (x + a) {
	where
		var x : integer;
		var y : arr[2] integer;
		fun inner(z : integer) : integer = z + x
};
fun main() : integer = f(1, h) { where var h : arr[3] integer }
`

func TestEvaluateFrames(t *testing.T) {
	tree, layout := evaluateSource(t, layoutSource)

	tests := []struct {
		name     string
		label    string
		level    int
		params   []int
		locals   []int
		outgoing int
	}{
		{"f", "f", 1, []int{w, w, w}, []int{w, 2 * w}, 0},
		{"inner", "", 2, []int{w, w}, nil, 0},
		{"main", "main", 1, []int{w}, []int{3 * w}, 4 * w},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := layout.Frame(findDef(tree, tt.name))
			if !ok {
				t.Fatalf("no frame for %s", tt.name)
			}

			if tt.label == "" {
				if !f.Label().IsAnonymous() {
					t.Errorf("nested function label %s should be anonymous", f.Label())
				}
			} else if f.Label() != NamedLabel(tt.label) {
				t.Errorf("label = %s, want %s", f.Label(), tt.label)
			}

			if f.StaticLevel() != tt.level {
				t.Errorf("level = %d, want %d", f.StaticLevel(), tt.level)
			}

			if !equalInts(f.ParamSizes(), tt.params) {
				t.Errorf("params = %v, want %v", f.ParamSizes(), tt.params)
			}

			if !equalInts(f.LocalSizes(), tt.locals) {
				t.Errorf("locals = %v, want %v", f.LocalSizes(), tt.locals)
			}

			if f.OutgoingSize() != tt.outgoing {
				t.Errorf("outgoing = %d, want %d", f.OutgoingSize(), tt.outgoing)
			}
		})
	}
}

func TestEvaluateFrameSize(t *testing.T) {
	_, layout := evaluateSource(t, layoutSource)

	for id, f := range layout.Frames {
		sum := 0
		for _, size := range f.LocalSizes() {
			sum += size
		}

		if f.Size() != sum+f.OutgoingSize() {
			t.Errorf("frame %d: size %d != locals %d + outgoing %d", id, f.Size(), sum, f.OutgoingSize())
		}

		if params := f.ParamSizes(); len(params) == 0 || params[0] != w {
			t.Errorf("frame %d: static link missing from %v", id, params)
		}
	}
}

func TestEvaluateAccesses(t *testing.T) {
	tree, layout := evaluateSource(t, layoutSource)

	tests := []struct {
		name string
		want Access
	}{
		{"g", &GlobalAccess{Size: w, Label: NamedLabel("g")}},
		{"a", &ParamAccess{Size: w, Offset: w, StaticLevel: 1}},
		{"b", &ParamAccess{Size: w, Offset: 2 * w, StaticLevel: 1}},
		{"x", &LocalAccess{Size: w, Offset: -w, StaticLevel: 1}},
		{"y", &LocalAccess{Size: 2 * w, Offset: -3 * w, StaticLevel: 1}},
		{"z", &ParamAccess{Size: w, Offset: w, StaticLevel: 2}},
		{"h", &LocalAccess{Size: 3 * w, Offset: -3 * w, StaticLevel: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, ok := layout.Access(findDef(tree, tt.name))
			if !ok {
				t.Fatalf("no access for %s", tt.name)
			}

			switch want := tt.want.(type) {
			case *GlobalAccess:
				if got, ok := access.(*GlobalAccess); !ok || *got != *want {
					t.Errorf("access = %#v, want %#v", access, want)
				}
			case *LocalAccess:
				if got, ok := access.(*LocalAccess); !ok || *got != *want {
					t.Errorf("access = %#v, want %#v", access, want)
				}
			case *ParamAccess:
				if got, ok := access.(*ParamAccess); !ok || *got != *want {
					t.Errorf("access = %#v, want %#v", access, want)
				}
			}
		})
	}
}

func TestEvaluateIntrinsicCallFootprint(t *testing.T) {
	tree, layout := evaluateSource(t, "fun main() : integer = rand_int(0, 10)")

	f, _ := layout.Frame(findDef(tree, "main"))
	if f.OutgoingSize() != 4*w {
		t.Errorf("outgoing = %d, want %d", f.OutgoingSize(), 4*w)
	}
}

func TestEvaluateUnsizedVariable(t *testing.T) {
	tree, err := syntax.ParseSource(strings.NewReader("var x : integer; fun main() : integer = 0"))
	if err != nil {
		t.Fatal(err)
	}

	// attributes from a broken front end: x has a type with no storage
	attrs := sem.NewAttributes()
	attrs.SetType(findDef(tree, "x"), types.AtomVoid)

	_, err = Evaluate(tree, attrs, NewAllocator())
	if !report.IsKind(err, report.FrameError) {
		t.Errorf("error = %v, want a frame error", err)
	}

	// and one with no type at all
	_, err = Evaluate(tree, sem.NewAttributes(), NewAllocator())
	if !report.IsKind(err, report.FrameError) {
		t.Errorf("error = %v, want a frame error", err)
	}
}

func TestFprintLayout(t *testing.T) {
	tree, layout := evaluateSource(t, layoutSource)

	buff := &bytes.Buffer{}
	Fprint(buff, tree, layout)

	out := buff.String()
	for _, want := range []string{"frame main [main] level=1", "global g: size=4 label=g", "local x: size=4 offset=-4 level=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
