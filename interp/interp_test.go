package interp

import (
	"bytes"
	"pinsc/common"
	"pinsc/frame"
	"pinsc/ir"
	"pinsc/linear"
	"pinsc/lower"
	"pinsc/report"
	"pinsc/syntax"
	"pinsc/walk"
	"strings"
	"testing"
)

func compileSource(t *testing.T, src string) []ir.Chunk {
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

	chunks, err = linear.Linearize(chunks, alloc)
	if err != nil {
		t.Fatalf("unexpected linearization error: %s", err)
	}

	return chunks
}

func runChunks(chunks []ir.Chunk, memSize int, seed int64) (string, int, error) {
	buff := &bytes.Buffer{}

	in, err := New(chunks, Options{MemorySize: memSize, Output: buff, Seed: &seed})
	if err != nil {
		return "", 0, err
	}

	result, err := in.Run()
	return buff.String(), result, err
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		output string
		result int
	}{
		{
			"arithmetic",
			"fun main() : integer = print_int(2 + 3 * 4)",
			"14\n", 14,
		},
		{
			"factorial",
			`fun fact(n : integer) : integer = {if n <= 1 then 1 else n * fact(n - 1)};
			 fun main() : integer = print_int(fact(5))`,
			"120\n", 120,
		},
		{
			"nested function reads enclosing local",
			`fun main() : integer = outer(0);
			 fun outer(n : integer) : integer = ({x = 7}, inner(n)) {
				where var x : integer; fun inner(m : integer) : integer = x + m
			 }`,
			"", 7,
		},
		{
			"arrays",
			`fun main() : integer = ({a[2] = 9}, print_int(a[2]), print_int(a[0]), a[2] + a[1]) {
				where var a : arr[3] integer
			 }`,
			"9\n0\n", 9,
		},
		{
			"array parameters",
			`fun sum(b : arr[3] integer) : integer = b[0] + b[1] + b[2];
			 fun main() : integer = ({a[0] = 1}, {a[1] = 2}, {a[2] = 3}, sum(a)) {
				where var a : arr[3] integer
			 }`,
			"", 6,
		},
		{
			"nested arrays",
			`fun main() : integer = ({m[1][2] = 5}, {m[0][2] = 1}, m[1][2] * 10 + m[0][2]) {
				where var m : arr[2] arr[3] integer
			 }`,
			"", 51,
		},
		{
			"globals",
			`var g : integer;
			 fun bump() : integer = ({g = g + 1}, g);
			 fun main() : integer = (bump(), bump(), print_int(g))`,
			"2\n", 2,
		},
		{
			"for loop",
			`fun main() : integer = ({for i = 0, 10, 3 : print_int(i)}, i) { where var i : integer }`,
			"0\n3\n6\n9\n", 12,
		},
		{
			"while loop",
			`fun main() : integer = ({n = 3}, {while n > 0 : {n = n - 1}}, n) { where var n : integer }`,
			"", 0,
		},
		{
			"strings and logicals",
			`fun main() : integer = (print_str('it''s'), print_log(1 < 2 & !false), print_log(1 == 2), 0)`,
			"it's\ntrue\nfalse\n", 0,
		},
		{
			"string values",
			`fun pick(b : logical) : string = {if b then 'yes' else 'no'};
			 fun main() : integer = ({s = pick(false)}, print_str(pick(true)), print_str(s), 0) {
				where var s : string
			 }`,
			"yes\nno\n", 0,
		},
		{
			"division truncates toward zero",
			"fun main() : integer = (print_int(-7 / 2), print_int(-7 % 2), 0)",
			"-3\n-1\n", 0,
		},
		{
			"integers wrap",
			"fun main() : integer = 2147483647 + 1",
			"", -2147483648,
		},
		{
			"call as the value of a sequence",
			`fun main() : integer = (print_int(({x = 1}, f()) + x), {if ({x = 5}, f()) > x then 1 else x}) {
				where var x : integer;
				fun f() : integer = ({x = x + 1}, 2)
			 }`,
			"4\n", 6,
		},
		{
			"mutual recursion",
			`fun even(n : integer) : logical = {if n == 0 then true else odd(n - 1)};
			 fun odd(n : integer) : logical = {if n == 0 then false else even(n - 1)};
			 fun main() : integer = (print_log(even(10)), print_log(odd(7)), 0)`,
			"true\ntrue\n", 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, result, err := runChunks(compileSource(t, tt.src), 0, 1)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			if output != tt.output {
				t.Errorf("output = %q, want %q", output, tt.output)
			}

			if result != tt.result {
				t.Errorf("result = %d, want %d", result, tt.result)
			}
		})
	}
}

func TestRandomIsSeeded(t *testing.T) {
	chunks := compileSource(t, `fun main() : integer = (
		seed(42),
		print_int(rand_int(0, 100)),
		print_int(rand_int(0, 100)),
		0
	)`)

	first, _, err := runChunks(chunks, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	// the initial seed does not matter once the program reseeds
	second, _, err := runChunks(chunks, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if first != second {
		t.Errorf("seeded runs differ: %q and %q", first, second)
	}

	if lines := strings.Split(strings.TrimSpace(first), "\n"); len(lines) != 2 {
		t.Errorf("expected two numbers, got %q", first)
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		memSize int
		msg     string
	}{
		{
			"division by zero",
			"fun main() : integer = 1 / (1 - 1)",
			0, "division by zero",
		},
		{
			"modulo by zero",
			"fun main() : integer = 1 % 0",
			0, "modulo by zero",
		},
		{
			"stack overflow",
			"fun f(n : integer) : integer = f(n + 1); fun main() : integer = f(0)",
			common.MinMemorySize, "stack overflow",
		},
		{
			"empty random range",
			"fun main() : integer = rand_int(5, 5)",
			0, "empty range",
		},
		{
			"index out of memory",
			"fun main() : integer = a[100000] { where var a : arr[1] integer }",
			0, "out of bounds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runChunks(compileSource(t, tt.src), tt.memSize, 1)
			if !report.IsKind(err, report.RuntimeError) {
				t.Fatalf("got error %v, want a runtime error", err)
			}

			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

// -----------------------------------------------------------------------------

func mainChunk(body ...ir.Stmt) *ir.CodeChunk {
	b := frame.NewBuilder(frame.NamedLabel(common.EntryPointName), 1)
	b.AddCall(3 * common.WordSize)

	return &ir.CodeChunk{Frame: b.Build(), Body: &ir.Seq{Stmts: body}}
}

func TestCallErrors(t *testing.T) {
	global := &ir.GlobalChunk{Access: &frame.GlobalAccess{Size: common.WordSize, Label: frame.NamedLabel("g")}}
	fp := &ir.Name{Label: frame.FP}

	tests := []struct {
		name string
		call *ir.Call
		msg  string
	}{
		{
			"call of a variable",
			&ir.Call{Label: frame.NamedLabel("g"), Args: []ir.Expr{fp}},
			"only functions can be called",
		},
		{
			"call of an undefined label",
			&ir.Call{Label: frame.NamedLabel("nowhere"), Args: []ir.Expr{fp}},
			"undefined label",
		},
		{
			"intrinsic arity",
			&ir.Call{Label: frame.NamedLabel("print_int"), Args: []ir.Expr{fp}},
			"takes 1 arguments but got 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := []ir.Chunk{global, mainChunk(&ir.Exp{Expr: tt.call})}

			_, _, err := runChunks(chunks, 0, 1)
			if !report.IsKind(err, report.RuntimeError) {
				t.Fatalf("got error %v, want a runtime error", err)
			}

			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestIntrinsicNamesAreReserved(t *testing.T) {
	// a cell registered under an intrinsic's name does not hide the intrinsic
	shadow := &ir.GlobalChunk{Access: &frame.GlobalAccess{Size: common.WordSize, Label: frame.NamedLabel("print_int")}}
	call := &ir.Call{Label: frame.NamedLabel("print_int"), Args: []ir.Expr{&ir.Name{Label: frame.FP}, &ir.Const{Value: 5}}}

	output, _, err := runChunks([]ir.Chunk{shadow, mainChunk(&ir.Exp{Expr: call})}, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if output != "5\n" {
		t.Errorf("output = %q, want %q", output, "5\n")
	}
}

func TestUnlinearizedCode(t *testing.T) {
	eseq := &ir.Eseq{Stmt: &ir.Exp{Expr: &ir.Const{Value: 0}}, Expr: &ir.Const{Value: 1}}
	chunks := []ir.Chunk{mainChunk(&ir.Exp{Expr: eseq})}

	_, _, err := runChunks(chunks, 0, 1)
	if !report.IsKind(err, report.RuntimeError) {
		t.Errorf("got error %v, want a runtime error", err)
	}
}

func TestNilOutputDiscards(t *testing.T) {
	chunks := compileSource(t, "fun main() : integer = print_int(3)")

	in, err := New(chunks, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if result, err := in.Run(); err != nil || result != 3 {
		t.Errorf("Run() = %d, %v", result, err)
	}
}

func TestIntrinsicsImplemented(t *testing.T) {
	for name := range common.Intrinsics {
		if _, ok := intrinsics[name]; !ok {
			t.Errorf("intrinsic %s has no implementation", name)
		}
	}
}
