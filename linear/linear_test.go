package linear

import (
	"pinsc/frame"
	"pinsc/ir"
	"pinsc/lower"
	"pinsc/report"
	"pinsc/syntax"
	"pinsc/walk"
	"strings"
	"testing"
)

func linearizeSource(t *testing.T, src string) []ir.Chunk {
	t.Helper()

	tree, err := syntax.ParseSource(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected syntax error: %s", err)
	}

	attrs, err := walk.WalkProgram(tree)
	if err != nil {
		t.Fatalf("unexpected semantic error: %s", err)
	}

	alloc := frame.NewAllocator()
	layout, err := frame.Evaluate(tree, attrs, alloc)
	if err != nil {
		t.Fatalf("unexpected frame error: %s", err)
	}

	chunks, err := lower.Generate(tree, attrs, layout, alloc)
	if err != nil {
		t.Fatalf("unexpected generation error: %s", err)
	}

	linear, err := Linearize(chunks, alloc)
	if err != nil {
		t.Fatalf("unexpected linearization error: %s", err)
	}

	return linear
}

// bodyOf returns the flat statements of a linearized code chunk.
func bodyOf(t *testing.T, chunk ir.Chunk) []ir.Stmt {
	t.Helper()

	cc, ok := chunk.(*ir.CodeChunk)
	if !ok {
		t.Fatalf("chunk %s is not code", chunk.Label())
	}

	body, ok := cc.Body.(*ir.Seq)
	if !ok {
		t.Fatalf("body of %s is not a sequence", cc.Label())
	}

	return body.Stmts
}

// nestedCalls counts the calls nested inside an expression.
func nestedCalls(expr ir.Expr) int {
	switch v := expr.(type) {
	case *ir.Mem:
		return nestedCalls(v.Addr)
	case *ir.Binop:
		return nestedCalls(v.Left) + nestedCalls(v.Right)
	case *ir.Call:
		n := 1
		for _, arg := range v.Args {
			n += nestedCalls(arg)
		}
		return n
	case *ir.Eseq:
		return 1000
	default:
		return 0
	}
}

const programs = `
fun fact(n : integer) : integer = {if n <= 1 then 1 else n * fact(n - 1)};
fun fib(n : integer) : integer = {if n < 2 then n else fib(n - 1) + fib(n - 2)};
fun main() : integer = (
	{for i = 0, 3, 1 : print_int(fact(i) + fib(i))},
	{while i > 0 : {i = i - 1}},
	{if i == 0 then print_str('done')},
	{if fact(3) > 2 & true then print_log(true) else print_log(false)},
	fact(fact(3))
) { where var i : integer }
`

// checkShape reports every statement of the linearized code chunks which
// still hides a call or an ESEQ inside an expression.
func checkShape(t *testing.T, chunks []ir.Chunk) {
	t.Helper()

	for _, chunk := range chunks {
		if _, ok := chunk.(*ir.CodeChunk); !ok {
			continue
		}

		for _, stmt := range bodyOf(t, chunk) {
			var calls int
			switch v := stmt.(type) {
			case *ir.Seq:
				t.Errorf("%s: nested sequence %s", chunk.Label(), v.Repr())
			case *ir.Move:
				if call, ok := v.Src.(*ir.Call); ok {
					if _, ok := v.Dst.(*ir.Temp); !ok {
						t.Errorf("%s: call moved into memory: %s", chunk.Label(), v.Repr())
					}

					calls = nestedCalls(call) - 1
				} else {
					calls = nestedCalls(v.Src)
				}

				calls += nestedCalls(v.Dst)
			case *ir.Exp:
				if call, ok := v.Expr.(*ir.Call); ok {
					calls = nestedCalls(call) - 1
				} else {
					t.Errorf("%s: expression evaluated for nothing: %s", chunk.Label(), v.Repr())
				}
			case *ir.CJump:
				calls = nestedCalls(v.Cond)
			}

			if calls != 0 {
				t.Errorf("%s: nested calls or ESEQ in %s", chunk.Label(), stmt.Repr())
			}
		}
	}
}

func TestLinearShape(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"loops and conditionals", programs},
		{
			"call as the value of a sequence",
			`fun f() : integer = 2;
			 fun main() : integer = ({x = 1}, f()) + 1 { where var x : integer }`,
		},
		{
			"call as a condition",
			`fun f() : integer = 2;
			 fun main() : integer = ({if ({x = 1}, f()) > x then print_int(1)}, x) { where var x : integer }`,
		},
		{
			"unused values",
			`fun main() : integer = (a[1], x, {x = 2}, x + 1) { where var x : integer; var a : arr[2] integer }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkShape(t, linearizeSource(t, tt.src))
		})
	}
}

func TestSequenceValueCall(t *testing.T) {
	src := `fun f() : integer = 2;
	        fun main() : integer = ({x = 1}, f()) + 1 { where var x : integer }`

	for _, chunk := range linearizeSource(t, src) {
		if chunk.Label().Name() != "main" {
			continue
		}

		stmts := bodyOf(t, chunk)
		last, ok := stmts[len(stmts)-1].(*ir.Move)
		if !ok {
			t.Fatalf("main ends with %s", stmts[len(stmts)-1].Repr())
		}

		if nestedCalls(last.Src) != 0 {
			t.Errorf("call left in the returned value: %s", last.Repr())
		}

		var lifted bool
		for _, stmt := range stmts {
			if move, ok := stmt.(*ir.Move); ok {
				if _, ok := move.Src.(*ir.Call); ok {
					_, lifted = move.Dst.(*ir.Temp)
				}
			}
		}

		if !lifted {
			t.Error("call to f was not moved into a temporary")
		}
	}
}

func TestCJumpFollowedByFalseLabel(t *testing.T) {
	for _, chunk := range linearizeSource(t, programs) {
		if _, ok := chunk.(*ir.CodeChunk); !ok {
			continue
		}

		stmts := bodyOf(t, chunk)
		for i, stmt := range stmts {
			cjump, ok := stmt.(*ir.CJump)
			if !ok {
				continue
			}

			if i+1 == len(stmts) {
				t.Errorf("%s: CJUMP at the end of the body", chunk.Label())
				continue
			}

			label, ok := stmts[i+1].(*ir.Label)
			if !ok || label.Label != cjump.False {
				t.Errorf("%s: %s is followed by %s", chunk.Label(), cjump.Repr(), stmts[i+1].Repr())
			}
		}
	}
}

func TestDataChunksPassThrough(t *testing.T) {
	chunks := linearizeSource(t, programs)

	found := false
	for _, chunk := range chunks {
		if dc, ok := chunk.(*ir.DataChunk); ok && dc.Data == "done" {
			found = true
		}
	}

	if !found {
		t.Error("data chunk was dropped")
	}
}

// -----------------------------------------------------------------------------

func codeChunk(stmts ...ir.Stmt) *ir.CodeChunk {
	return &ir.CodeChunk{
		Frame: frame.NewBuilder(frame.NamedLabel("main"), 1).Build(),
		Body:  &ir.Seq{Stmts: stmts},
	}
}

func TestFixCJumps(t *testing.T) {
	alloc := frame.NewAllocator()
	t1, f1 := alloc.NewLabel(), alloc.NewLabel()
	cond := &ir.Temp{Temp: alloc.NewTemp()}

	tests := []struct {
		name  string
		stmts []ir.Stmt
		want  string
	}{
		{
			"false label follows",
			[]ir.Stmt{
				&ir.CJump{Cond: cond, True: t1, False: f1},
				&ir.Label{Label: f1}, &ir.Label{Label: t1},
			},
			"SEQ(CJUMP(T1, L1, L2); LABEL L2; LABEL L1)",
		},
		{
			"true label follows",
			[]ir.Stmt{
				&ir.CJump{Cond: cond, True: t1, False: f1},
				&ir.Label{Label: t1}, &ir.Label{Label: f1},
			},
			"SEQ(CJUMP(EQ(T1, 0), L2, L1); LABEL L1; LABEL L2)",
		},
		{
			"no label follows",
			[]ir.Stmt{
				&ir.CJump{Cond: cond, True: t1, False: f1},
				&ir.Exp{Expr: &ir.Call{Label: frame.NamedLabel("f")}},
				&ir.Label{Label: t1}, &ir.Label{Label: f1},
			},
			"SEQ(CJUMP(T1, L1, L3); LABEL L3; JUMP L2; EXP(CALL f()); LABEL L1; LABEL L2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// each case starts from the same allocator state
			alloc := frame.NewAllocator()
			alloc.NewLabel()
			alloc.NewLabel()

			linear, err := Linearize([]ir.Chunk{codeChunk(tt.stmts...)}, alloc)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			if got := linear[0].(*ir.CodeChunk).Body.Repr(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReorder(t *testing.T) {
	alloc := frame.NewAllocator()
	l := &Linearizer{alloc: alloc}

	x := &ir.Mem{Addr: &ir.Name{Label: frame.NamedLabel("x")}}
	call := &ir.Call{Label: frame.NamedLabel("f"), Args: []ir.Expr{&ir.Name{Label: frame.FP}}}

	// the load of x must happen before the call, which may store to x
	stmt := l.canonStmt(&ir.Exp{Expr: &ir.Binop{Op: ir.ADD, Left: x, Right: call}})

	want := "SEQ(MOVE(T2, MEM(NAME x)); MOVE(T1, CALL f(NAME {FP})))"
	if got := stmt.Repr(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	// a constant commutes with the call
	alloc = frame.NewAllocator()
	l = &Linearizer{alloc: alloc}
	stmt = l.canonStmt(&ir.Move{
		Dst: &ir.Mem{Addr: &ir.Name{Label: frame.FP}},
		Src: &ir.Binop{Op: ir.ADD, Left: &ir.Const{Value: 1}, Right: call},
	})

	want = "SEQ(MOVE(T1, CALL f(NAME {FP})); MOVE(MEM(NAME {FP}), ADD(1, T1)))"
	if got := stmt.Repr(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEseqDestination(t *testing.T) {
	alloc := frame.NewAllocator()
	tmp := &ir.Temp{Temp: alloc.NewTemp()}

	chunk := codeChunk(&ir.Move{
		Dst: &ir.Eseq{Stmt: &ir.Move{Dst: tmp, Src: &ir.Const{Value: 4}}, Expr: &ir.Mem{Addr: tmp}},
		Src: &ir.Const{Value: 9},
	})

	linear, err := Linearize([]ir.Chunk{chunk}, alloc)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := "SEQ(MOVE(T1, 4); MOVE(MEM(T1), 9))"
	if got := linear[0].(*ir.CodeChunk).Body.Repr(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestUndefinedLabel(t *testing.T) {
	alloc := frame.NewAllocator()
	missing := alloc.NewLabel()

	tests := []struct {
		name string
		stmt ir.Stmt
	}{
		{"jump", &ir.Jump{Label: missing}},
		{"conditional jump", &ir.CJump{Cond: &ir.Const{Value: 1}, True: missing, False: missing}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Linearize([]ir.Chunk{codeChunk(tt.stmt)}, alloc)
			if !report.IsKind(err, report.LinearizationError) {
				t.Errorf("got error %v, want a linearization error", err)
			}
		})
	}
}
