package report

import "fmt"

// ErrorKind classifies a compile error by the phase which detected it.
type ErrorKind int

// Enumeration of error kinds.
const (
	SyntaxError ErrorKind = iota
	NameError
	TypeError
	FrameError
	GenerationError
	LinearizationError
	RuntimeError
	ConfigError
)

var errorKindNames = map[ErrorKind]string{
	SyntaxError:        "syntax error",
	NameError:          "name error",
	TypeError:          "type error",
	FrameError:         "frame error",
	GenerationError:    "generation error",
	LinearizationError: "linearization error",
	RuntimeError:       "runtime error",
	ConfigError:        "config error",
}

func (ek ErrorKind) String() string {
	if name, ok := errorKindNames[ek]; ok {
		return name
	}

	return "error"
}

// -----------------------------------------------------------------------------

// CompileError is a fatal error produced by one of the phases of the compiler
// or by the interpreter.  Every error in PINS is fatal: a phase which produces
// one stops immediately.
type CompileError struct {
	// The phase that produced the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.  This may be nil if the error has
	// no meaningful source position (eg. most runtime errors).
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	if ce.Span == nil {
		return fmt.Sprintf("%s: %s", ce.Kind, ce.Message)
	}

	return fmt.Sprintf("%d:%d: %s: %s", ce.Span.StartLine+1, ce.Span.StartCol+1, ce.Kind, ce.Message)
}

// Raise creates a new compile error.  It is meant to be used as the argument
// to `panic` inside a phase whose entry point defers `Catch`.
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// Catch converts a compile error raised by a `panic` during a phase into a
// returned error.  Any other panic keeps unwinding: those are bugs.
// NB: This function must ALWAYS be deferred.
func Catch(err *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			*err = cerr
		} else {
			panic(x)
		}
	}
}

// IsKind returns whether err is a compile error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	cerr, ok := err.(*CompileError)
	return ok && cerr.Kind == kind
}
