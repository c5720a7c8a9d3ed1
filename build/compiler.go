package build

import (
	"fmt"
	"io"
	"os"
	"pinsc/ast"
	"pinsc/config"
	"pinsc/frame"
	"pinsc/ir"
	"pinsc/linear"
	"pinsc/lower"
	"pinsc/report"
	"pinsc/sem"
	"pinsc/syntax"
	"pinsc/walk"
)

// Compiler is the data structure responsible for running every phase of the
// compiler over one PINS source file.
type Compiler struct {
	// The absolute path to the source file and the path to display for it.
	absPath, reprPath string

	// The configuration the file is compiled with.
	conf *config.Config

	// The stream that phase dumps are written to.
	dumpOut io.Writer

	// The results of the phases that have run so far.
	tree   *ast.Tree
	attrs  *sem.Attributes
	alloc  *frame.Allocator
	layout *frame.Layout
	chunks []ir.Chunk
}

// NewCompiler creates a new compiler for a source file.  Dumps requested by the
// configuration are written to dumpOut.
func NewCompiler(absPath, reprPath string, conf *config.Config, dumpOut io.Writer) *Compiler {
	return &Compiler{
		absPath:  absPath,
		reprPath: reprPath,
		conf:     conf,
		dumpOut:  dumpOut,
		alloc:    frame.NewAllocator(),
	}
}

// CompileFile opens the compiler's source file and compiles it.
func (c *Compiler) CompileFile() (*Program, error) {
	f, err := os.Open(c.absPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return c.Compile(f)
}

// Compile runs every phase of the compiler on the given source text and
// returns the runnable program.  The first phase to fail stops compilation.
func (c *Compiler) Compile(src io.Reader) (*Program, error) {
	report.ReportCompileHeader(c.reprPath)

	phases := []struct {
		name string
		run  func() error
		dump string
	}{
		{"Parsing", func() (err error) { c.tree, err = syntax.ParseSource(src); return }, config.DumpAST},
		{"Checking", func() (err error) { c.attrs, err = walk.WalkProgram(c.tree); return }, config.DumpTypes},
		{"Framing", func() (err error) { c.layout, err = frame.Evaluate(c.tree, c.attrs, c.alloc); return }, config.DumpFrames},
		{"Generating", func() (err error) { c.chunks, err = lower.Generate(c.tree, c.attrs, c.layout, c.alloc); return }, config.DumpIR},
		{"Linearizing", func() (err error) { c.chunks, err = linear.Linearize(c.chunks, c.alloc); return }, config.DumpLinear},
	}

	for _, phase := range phases {
		report.ReportBeginPhase(phase.name)
		err := phase.run()
		report.ReportEndPhase(err == nil)

		if err != nil {
			return nil, err
		}

		if phase.dump != "" && c.conf.Dumps(phase.dump) {
			c.dump(phase.dump)
		}
	}

	return &Program{Chunks: c.chunks}, nil
}

// dump writes the output of a phase to the dump stream.
func (c *Compiler) dump(phase string) {
	if c.dumpOut == nil {
		return
	}

	fmt.Fprintf(c.dumpOut, "# %s\n", phase)

	switch phase {
	case config.DumpAST:
		ast.Fprint(c.dumpOut, c.tree)
	case config.DumpTypes:
		sem.Fprint(c.dumpOut, c.tree, c.attrs)
	case config.DumpFrames:
		frame.Fprint(c.dumpOut, c.tree, c.layout)
	case config.DumpIR, config.DumpLinear:
		ir.Fprint(c.dumpOut, c.chunks)
	}
}
