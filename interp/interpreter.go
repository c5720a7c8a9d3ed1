package interp

import (
	"io"
	"io/ioutil"
	"math/rand"
	"pinsc/common"
	"pinsc/frame"
	"pinsc/ir"
	"pinsc/report"
	"time"
)

// Options configures an interpreter.
type Options struct {
	// The size of memory in bytes.  Zero selects the default size.
	MemorySize int

	// The stream that the intrinsics print to.  A nil writer discards all
	// output.
	Output io.Writer

	// The initial seed of the random number generator.  If it is nil, the
	// generator is seeded from the current time.
	Seed *int64
}

// Interpreter executes linearized code chunks on a stack machine.  An
// interpreter owns all of its state and must not be shared between
// goroutines.
type Interpreter struct {
	mem *Memory
	out io.Writer
	rng *rand.Rand

	// The frame pointer and stack pointer registers.
	fp, sp int

	// The flat statements of every code chunk.
	bodies map[*ir.CodeChunk][]ir.Stmt
}

// activation holds the state local to one function call.
type activation struct {
	chunk *ir.CodeChunk
	temps map[frame.Temp]int
}

// New creates an interpreter and registers every chunk in its memory.
func New(chunks []ir.Chunk, opts Options) (in *Interpreter, err error) {
	defer report.Catch(&err)

	memSize := opts.MemorySize
	if memSize == 0 {
		memSize = common.DefaultMemorySize
	}

	mem, merr := NewMemory(memSize)
	if merr != nil {
		return nil, report.Raise(report.RuntimeError, nil, "%s", merr)
	}

	out := opts.Output
	if out == nil {
		out = ioutil.Discard
	}

	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	in = &Interpreter{
		mem:    mem,
		out:    out,
		rng:    rand.New(rand.NewSource(seed)),
		bodies: make(map[*ir.CodeChunk][]ir.Stmt),
	}

	for _, chunk := range chunks {
		in.register(chunk)
	}

	return in, nil
}

// register allocates the static storage of a chunk.
func (in *Interpreter) register(chunk ir.Chunk) {
	var err error

	switch v := chunk.(type) {
	case *ir.CodeChunk:
		_, err = in.mem.Register(v.Label(), common.WordSize, Word{Kind: WordCode, Code: v})
		in.bodies[v] = flatBody(v.Body)
	case *ir.DataChunk:
		_, err = in.mem.Register(v.Label(), v.Access.Size, Word{Kind: WordStr, Str: v.Data})
	case *ir.GlobalChunk:
		_, err = in.mem.Register(v.Label(), v.Access.Size, Word{})
	default:
		report.ReportICE("unknown chunk kind")
	}

	in.check(err)
}

// flatBody returns the statements of a linear body.
func flatBody(body ir.Stmt) []ir.Stmt {
	var stmts []ir.Stmt

	if s, ok := body.(*ir.Seq); ok {
		for _, inner := range s.Stmts {
			stmts = append(stmts, flatBody(inner)...)
		}
	} else {
		stmts = append(stmts, body)
	}

	return stmts
}

// Run calls the main function and returns the value it produces.
func (in *Interpreter) Run() (result int, err error) {
	defer report.Catch(&err)

	addr, ok := in.mem.Address(frame.NamedLabel(common.EntryPointName))
	if !ok {
		in.error("program has no `%s` function", common.EntryPointName)
	}

	w, _ := in.mem.Load(addr)
	if w.Kind != WordCode {
		in.error("`%s` is not a function", common.EntryPointName)
	}

	// main is called from a frame with nothing but a staging area for the call
	in.fp = in.mem.Size()
	in.sp = in.fp - w.Code.Frame.CallFootprint()
	if in.sp < in.mem.StaticEnd() {
		in.error("stack overflow")
	}

	return in.call(w.Code, []int{0}), nil
}

// -----------------------------------------------------------------------------

// call calls a function: the arguments, starting with the static link, are
// stored in the caller's staging area at the stack pointer.  The value of
// the call is read from the first word of the callee's frame after it
// returns.
func (in *Interpreter) call(cc *ir.CodeChunk, args []int) int {
	f := cc.Frame

	paramSizes := f.ParamSizes()
	if len(args) != len(paramSizes) {
		in.error("`%s` takes %d arguments but got %d", cc.Label(), len(paramSizes)-1, len(args)-1)
	}

	offset := 0
	for i, arg := range args {
		in.storeInt(in.sp+offset, arg)
		offset += paramSizes[i]
	}

	in.storeInt(in.sp+f.OldFPOffset(), in.fp)

	in.fp = in.sp
	in.sp -= f.Size()
	if in.sp < in.mem.StaticEnd() {
		in.error("stack overflow")
	}

	for addr := in.fp - f.LocalsSize(); addr < in.fp; addr += common.WordSize {
		in.storeInt(addr, 0)
	}

	in.exec(&activation{chunk: cc, temps: make(map[frame.Temp]int)})

	in.sp = in.fp
	in.fp = in.loadInt(in.fp + f.OldFPOffset())

	return in.loadInt(in.sp)
}

// exec executes the body of a function.
func (in *Interpreter) exec(act *activation) {
	stmts := in.bodies[act.chunk]

	for pc := 0; pc < len(stmts); {
		switch v := stmts[pc].(type) {
		case *ir.Move:
			in.execMove(act, v)
			pc++
		case *ir.Exp:
			in.eval(act, v.Expr)
			pc++
		case *ir.Label:
			pc++
		case *ir.Jump:
			pc = in.findLabel(act, v.Label)
		case *ir.CJump:
			if in.eval(act, v.Cond) != 0 {
				pc = in.findLabel(act, v.True)
			} else {
				pc = in.findLabel(act, v.False)
			}
		default:
			report.ReportICE("unknown IR statement: %s", v.Repr())
		}
	}
}

// findLabel returns the position of a label in the body of the current
// function.
func (in *Interpreter) findLabel(act *activation, label frame.Label) int {
	for pc, stmt := range in.bodies[act.chunk] {
		if l, ok := stmt.(*ir.Label); ok && l.Label == label {
			return pc
		}
	}

	in.error("jump to undefined label `%s` in `%s`", label, act.chunk.Label())
	return 0
}

// execMove executes a move into a temporary or into memory.
func (in *Interpreter) execMove(act *activation, move *ir.Move) {
	switch dst := move.Dst.(type) {
	case *ir.Temp:
		act.temps[dst.Temp] = in.eval(act, move.Src)
	case *ir.Mem:
		addr := in.eval(act, dst.Addr)
		in.storeInt(addr, in.eval(act, move.Src))
	default:
		in.error("cannot move into %s", move.Dst.Repr())
	}
}

// -----------------------------------------------------------------------------

// error raises a runtime error.  Runtime errors have no source position.
func (in *Interpreter) error(msg string, args ...interface{}) {
	panic(report.Raise(report.RuntimeError, nil, msg, args...))
}

// check raises a memory error as a runtime error.
func (in *Interpreter) check(err error) {
	if err != nil {
		in.error("%s", err)
	}
}

func (in *Interpreter) loadInt(addr int) int {
	v, err := in.mem.LoadInt(addr)
	in.check(err)
	return v
}

func (in *Interpreter) storeInt(addr, value int) {
	in.check(in.mem.StoreInt(addr, value))
}
