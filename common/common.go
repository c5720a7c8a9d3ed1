package common

// PinsVersion is the current compiler version as a string.
const PinsVersion string = "0.3.0"

// PinsConfigFileName is the name of the optional run configuration file.
const PinsConfigFileName string = "pins.toml"

// PinsFileExt is the file extension for a PINS source file.
const PinsFileExt string = ".pins"

// WordSize is the size of a machine word in bytes.  Integers, logicals,
// string references, static links and saved frame pointers all occupy exactly
// one word.
const WordSize int = 4

// DefaultMemorySize is the default size of the interpreter's memory in bytes.
const DefaultMemorySize int = 65536

// MinMemorySize is the smallest memory the interpreter will accept.
const MinMemorySize int = 1024

// MaxMemorySize is the largest memory the interpreter will allocate.
const MaxMemorySize int = 64 << 20

// EntryPointName is the name of the function the interpreter starts in.
const EntryPointName string = "main"

// The names of the reserved frame and stack pointer labels.
const (
	FramePointerName = "{FP}"
	StackPointerName = "{SP}"
)
