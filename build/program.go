package build

import (
	"io"
	"pinsc/interp"
	"pinsc/ir"
)

// Program is a compiled PINS program: the linearized chunks of every function,
// global and string constant.  A program can be run any number of times and
// every run starts from fresh memory.
type Program struct {
	Chunks []ir.Chunk
}

// Run executes the program on a new interpreter and returns the value of
// `main`.  Output of the program is written to out.  If seed is nil, the
// random number generator is seeded from the current time.
func (p *Program) Run(out io.Writer, memSize int, seed *int64) (int, error) {
	in, err := interp.New(p.Chunks, interp.Options{
		MemorySize: memSize,
		Output:     out,
		Seed:       seed,
	})
	if err != nil {
		return 0, err
	}

	return in.Run()
}
