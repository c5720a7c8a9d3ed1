package frame

import (
	"fmt"
	"pinsc/common"
)

// Label is a symbolic name for a memory location or a code position.  A label
// is either named, in which case its text is fixed for the whole compilation,
// or anonymous, in which case it is identified by a number handed out by an
// Allocator.  Labels are compared with ==.
type Label struct {
	name string
	id   int
}

// NamedLabel returns the named label with the given text.
func NamedLabel(name string) Label {
	return Label{name: name}
}

// IsAnonymous returns whether the label was generated by an allocator.
func (l Label) IsAnonymous() bool {
	return l.id != 0
}

// Name returns the text of the label.  Anonymous labels are printed as `L`
// followed by their number.
func (l Label) Name() string {
	if l.IsAnonymous() {
		return fmt.Sprintf("L%d", l.id)
	}

	return l.name
}

func (l Label) String() string {
	return l.Name()
}

// The labels of the frame and stack pointer registers.
var (
	FP = NamedLabel(common.FramePointerName)
	SP = NamedLabel(common.StackPointerName)
)

// Temp identifies a temporary: a register-like value local to one function
// activation.  Valid temporaries are positive.
type Temp int

func (t Temp) String() string {
	return fmt.Sprintf("T%d", int(t))
}

// -----------------------------------------------------------------------------

// Allocator hands out anonymous labels and temporaries for one compilation.
// Every phase which creates labels or temporaries must share the same
// allocator so that the values it creates never collide.
type Allocator struct {
	nextLabel, nextTemp int
}

// NewAllocator creates a new allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// NewLabel returns a fresh anonymous label.
func (a *Allocator) NewLabel() Label {
	a.nextLabel++
	return Label{id: a.nextLabel}
}

// NewTemp returns a fresh temporary.
func (a *Allocator) NewTemp() Temp {
	a.nextTemp++
	return Temp(a.nextTemp)
}
