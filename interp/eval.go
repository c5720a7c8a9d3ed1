package interp

import (
	"pinsc/frame"
	"pinsc/ir"
	"pinsc/report"
)

// eval evaluates an expression.  Integers are 32 bits wide and wrap on
// overflow.
func (in *Interpreter) eval(act *activation, expr ir.Expr) int {
	switch v := expr.(type) {
	case *ir.Const:
		return v.Value
	case *ir.Name:
		return in.evalName(v.Label)
	case *ir.Temp:
		value, ok := act.temps[v.Temp]
		if !ok {
			in.error("temporary %s is used before it is set in `%s`", v.Temp, act.chunk.Label())
		}

		return value
	case *ir.Mem:
		return in.evalMem(act, v)
	case *ir.Binop:
		return in.evalBinop(v.Op, in.eval(act, v.Left), in.eval(act, v.Right))
	case *ir.Call:
		args := make([]int, len(v.Args))
		for i, arg := range v.Args {
			args[i] = in.eval(act, arg)
		}

		return in.callLabel(v.Label, args)
	case *ir.Eseq:
		in.error("code of `%s` is not linearized", act.chunk.Label())
	default:
		report.ReportICE("unknown IR expression: %s", expr.Repr())
	}

	return 0
}

// evalName returns the address of a label or the value of a register.
func (in *Interpreter) evalName(label frame.Label) int {
	switch label {
	case frame.FP:
		return in.fp
	case frame.SP:
		return in.sp
	}

	addr, ok := in.mem.Address(label)
	if !ok {
		in.error("undefined label `%s`", label)
	}

	return addr
}

// evalMem loads a word from memory.  A label which holds a string constant or
// code evaluates to its own address since neither can be loaded as an
// integer.
func (in *Interpreter) evalMem(act *activation, mem *ir.Mem) int {
	if name, ok := mem.Addr.(*ir.Name); ok && name.Label != frame.FP && name.Label != frame.SP {
		addr := in.evalName(name.Label)

		w, err := in.mem.Load(addr)
		in.check(err)

		if w.Kind != WordInt {
			return addr
		}

		return w.Int
	}

	return in.loadInt(in.eval(act, mem.Addr))
}

// evalBinop applies a binary operator.
func (in *Interpreter) evalBinop(op ir.Operator, l, r int) int {
	switch op {
	case ir.ADD:
		return wrap(l + r)
	case ir.SUB:
		return wrap(l - r)
	case ir.MUL:
		return wrap(l * r)
	case ir.DIV:
		if r == 0 {
			in.error("division by zero")
		}

		return wrap(l / r)
	case ir.MOD:
		if r == 0 {
			in.error("modulo by zero")
		}

		return wrap(l % r)
	case ir.AND:
		return boolToInt(l != 0 && r != 0)
	case ir.OR:
		return boolToInt(l != 0 || r != 0)
	case ir.EQ:
		return boolToInt(l == r)
	case ir.NEQ:
		return boolToInt(l != r)
	case ir.LT:
		return boolToInt(l < r)
	case ir.GT:
		return boolToInt(l > r)
	case ir.LEQ:
		return boolToInt(l <= r)
	case ir.GEQ:
		return boolToInt(l >= r)
	default:
		report.ReportICE("unknown IR operator: %d", int(op))
		return 0
	}
}

// callLabel calls the function or intrinsic with the given label.  The names
// of the intrinsics are reserved: they are never looked up in memory.
func (in *Interpreter) callLabel(label frame.Label, args []int) int {
	if !label.IsAnonymous() {
		if intrinsic, ok := intrinsics[label.Name()]; ok {
			return intrinsic(in, label.Name(), args)
		}
	}

	addr, ok := in.mem.Address(label)
	if !ok {
		in.error("call to undefined label `%s`", label)
	}

	w, err := in.mem.Load(addr)
	in.check(err)

	if w.Kind != WordCode {
		in.error("only functions can be called: `%s` is not a function", label)
	}

	return in.call(w.Code, args)
}

// -----------------------------------------------------------------------------

func wrap(v int) int {
	return int(int32(v))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
