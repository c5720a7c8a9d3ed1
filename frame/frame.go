package frame

import "pinsc/common"

// Frame describes the activation record of one function.  Addresses grow
// upward and the stack grows downward.  Relative to the frame pointer, a frame
// is laid out as follows:
//
//	FP + ParamsSize()          saved FP of the caller
//	FP + 0 .. ParamsSize()-1   static link, then the declared parameters
//	FP - LocalsSize() .. FP-1  local variables
//	SP .. SP + OutgoingSize()  staging area for calls made by this function
//
// where SP = FP - Size().  The parameters and the saved FP live in the
// caller's staging area.  Frames are built with a Builder and are immutable
// afterward.
type Frame struct {
	label       Label
	staticLevel int

	paramSizes []int
	localSizes []int

	paramsSize, localsSize, outgoingSize int
}

// Label returns the label of the function's code.
func (f *Frame) Label() Label {
	return f.label
}

// StaticLevel returns the nesting depth of the function: top level functions
// have static level 1.
func (f *Frame) StaticLevel() int {
	return f.staticLevel
}

// ParamSizes returns the sizes of the parameters in order.  The first
// parameter is always the static link.
func (f *Frame) ParamSizes() []int {
	return append([]int(nil), f.paramSizes...)
}

// LocalSizes returns the sizes of the local variables in declaration order.
func (f *Frame) LocalSizes() []int {
	return append([]int(nil), f.localSizes...)
}

// ParamsSize returns the total size of the parameters including the static
// link.
func (f *Frame) ParamsSize() int {
	return f.paramsSize
}

// LocalsSize returns the total size of the local variables.
func (f *Frame) LocalsSize() int {
	return f.localsSize
}

// OutgoingSize returns the size of the area used to stage calls.
func (f *Frame) OutgoingSize() int {
	return f.outgoingSize
}

// Size returns the amount the stack pointer moves by when the function is
// entered.
func (f *Frame) Size() int {
	return f.localsSize + f.outgoingSize
}

// OldFPOffset returns the offset from the frame pointer at which the caller's
// frame pointer is saved.
func (f *Frame) OldFPOffset() int {
	return f.paramsSize
}

// CallFootprint returns the space a caller must reserve in its staging area
// to call this function: the arguments plus the saved frame pointer.
func (f *Frame) CallFootprint() int {
	return f.paramsSize + common.WordSize
}

// -----------------------------------------------------------------------------

// Builder accumulates the layout of a frame in declaration order.
type Builder struct {
	frame *Frame
}

// NewBuilder starts building a frame for the function with the given label and
// static level.  The static link is registered as the first parameter.
func NewBuilder(label Label, staticLevel int) *Builder {
	b := &Builder{frame: &Frame{label: label, staticLevel: staticLevel}}
	b.AddParameter(common.WordSize)
	return b
}

// AddParameter adds a parameter of the given size and returns its offset.
func (b *Builder) AddParameter(size int) int {
	offset := b.frame.paramsSize

	b.frame.paramSizes = append(b.frame.paramSizes, size)
	b.frame.paramsSize += size

	return offset
}

// AddLocal adds a local variable of the given size and returns its offset.
// Locals are placed below the frame pointer so their offsets are negative.
func (b *Builder) AddLocal(size int) int {
	b.frame.localSizes = append(b.frame.localSizes, size)
	b.frame.localsSize += size

	return -b.frame.localsSize
}

// AddCall records a call which needs the given amount of staging space.  The
// staging area is sized for the largest call.
func (b *Builder) AddCall(footprint int) {
	if footprint > b.frame.outgoingSize {
		b.frame.outgoingSize = footprint
	}
}

// Build finalizes the frame.  The builder must not be used afterward.
func (b *Builder) Build() *Frame {
	f := b.frame
	b.frame = nil
	return f
}
