package interp

import (
	"fmt"
	"pinsc/common"
	"pinsc/frame"
	"pinsc/ir"
)

// WordKind is the kind of value held by one word of memory.
type WordKind int

// Enumeration of word kinds.
const (
	WordInt WordKind = iota
	WordStr
	WordCode
)

// Word is one cell of memory.  Integers (and addresses) are stored directly.
// The cell at the label of a string constant holds the whole string and the
// cell at the label of a function holds its code.
type Word struct {
	Kind WordKind
	Int  int
	Str  string
	Code *ir.CodeChunk
}

// Memory is the flat memory of the interpreter.  It is addressed in bytes but
// only whole, aligned words can be accessed.  Address 0 is never valid.
// Static data is laid out upward from the first word and the stack grows
// downward from the end of memory.
type Memory struct {
	words []Word

	// labels maps every registered label to its address.
	labels map[frame.Label]int

	// staticEnd is the address of the first byte after the static data.
	staticEnd int
}

// NewMemory creates a memory of the given size in bytes.  The size must be a
// positive multiple of the word size.
func NewMemory(size int) (*Memory, error) {
	if size <= common.WordSize || size%common.WordSize != 0 {
		return nil, fmt.Errorf("invalid memory size: %d", size)
	}

	return &Memory{
		words:     make([]Word, size/common.WordSize),
		labels:    make(map[frame.Label]int),
		staticEnd: common.WordSize,
	}, nil
}

// Size returns the size of memory in bytes.
func (m *Memory) Size() int {
	return len(m.words) * common.WordSize
}

// StaticEnd returns the address of the first byte after the static data.  The
// stack may not grow below it.
func (m *Memory) StaticEnd() int {
	return m.staticEnd
}

// index converts an address into the index of its word.
func (m *Memory) index(addr int) (int, error) {
	if addr%common.WordSize != 0 {
		return 0, fmt.Errorf("misaligned memory access at address %d", addr)
	}

	if addr <= 0 || addr >= m.Size() {
		return 0, fmt.Errorf("memory access out of bounds at address %d", addr)
	}

	return addr / common.WordSize, nil
}

// Load returns the word at an address.
func (m *Memory) Load(addr int) (Word, error) {
	ndx, err := m.index(addr)
	if err != nil {
		return Word{}, err
	}

	return m.words[ndx], nil
}

// LoadInt returns the integer at an address.
func (m *Memory) LoadInt(addr int) (int, error) {
	w, err := m.Load(addr)
	if err != nil {
		return 0, err
	}

	if w.Kind != WordInt {
		return 0, fmt.Errorf("address %d does not hold an integer", addr)
	}

	return w.Int, nil
}

// Store stores a word at an address.
func (m *Memory) Store(addr int, w Word) error {
	ndx, err := m.index(addr)
	if err != nil {
		return err
	}

	m.words[ndx] = w
	return nil
}

// StoreInt stores an integer at an address.
func (m *Memory) StoreInt(addr, value int) error {
	return m.Store(addr, Word{Kind: WordInt, Int: value})
}

// -----------------------------------------------------------------------------

// Register allocates static storage of the given size for a label and fills
// its first word with init.  The rest of the storage is zeroed.
func (m *Memory) Register(label frame.Label, size int, init Word) (int, error) {
	if _, ok := m.labels[label]; ok {
		return 0, fmt.Errorf("label `%s` is defined multiple times", label)
	}

	// round up to whole words: every label is word aligned
	words := (size + common.WordSize - 1) / common.WordSize
	if words == 0 {
		words = 1
	}

	addr := m.staticEnd
	if addr+words*common.WordSize > m.Size() {
		return 0, fmt.Errorf("out of memory for static data of `%s`", label)
	}

	m.words[addr/common.WordSize] = init
	for i := 1; i < words; i++ {
		m.words[addr/common.WordSize+i] = Word{}
	}

	m.labels[label] = addr
	m.staticEnd += words * common.WordSize

	return addr, nil
}

// Address returns the address of a registered label.
func (m *Memory) Address(label frame.Label) (int, bool) {
	addr, ok := m.labels[label]
	return addr, ok
}
