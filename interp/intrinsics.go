package interp

import (
	"fmt"
	"math/rand"
	"pinsc/common"
)

// intrinsicFunc implements an intrinsic.  The first argument is always the
// frame pointer of the caller.
type intrinsicFunc func(in *Interpreter, name string, args []int) int

// intrinsics maps the name of every intrinsic to its implementation.
var intrinsics = map[string]intrinsicFunc{
	"print_int": printInt,
	"print_str": printStr,
	"print_log": printLog,
	"rand_int":  randInt,
	"seed":      seed,
}

// checkArity checks the number of arguments to an intrinsic including the
// frame pointer.
func (in *Interpreter) checkArity(name string, args []int) {
	intrinsic, _ := common.LookupIntrinsic(name)
	if len(args) != intrinsic.Arity()+1 {
		in.error("`%s` takes %d arguments but got %d", name, intrinsic.Arity(), len(args)-1)
	}
}

// print writes one line of output.
func (in *Interpreter) print(text string) {
	if _, err := fmt.Fprintln(in.out, text); err != nil {
		in.error("failed to write output: %s", err)
	}
}

func printInt(in *Interpreter, name string, args []int) int {
	in.checkArity(name, args)

	in.print(fmt.Sprint(args[1]))
	return args[1]
}

func printStr(in *Interpreter, name string, args []int) int {
	in.checkArity(name, args)

	w, err := in.mem.Load(args[1])
	in.check(err)

	if w.Kind != WordStr {
		in.error("address %d does not hold a string", args[1])
	}

	in.print(w.Str)
	return args[1]
}

func printLog(in *Interpreter, name string, args []int) int {
	in.checkArity(name, args)

	if args[1] != 0 {
		in.print("true")
	} else {
		in.print("false")
	}

	return args[1]
}

func randInt(in *Interpreter, name string, args []int) int {
	in.checkArity(name, args)

	min, max := args[1], args[2]
	if max <= min {
		in.error("rand_int: empty range [%d, %d)", min, max)
	}

	return min + in.rng.Intn(max-min)
}

func seed(in *Interpreter, name string, args []int) int {
	in.checkArity(name, args)

	in.rng = rand.New(rand.NewSource(int64(args[1])))
	return args[1]
}
