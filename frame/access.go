package frame

// Access describes where a variable or parameter lives.
type Access interface {
	// StorageSize returns the number of bytes of storage the access refers to.
	StorageSize() int
}

// GlobalAccess is a statically allocated cell identified by a named label.
type GlobalAccess struct {
	Size  int
	Label Label
}

func (ga *GlobalAccess) StorageSize() int {
	return ga.Size
}

// LocalAccess is a local variable at a fixed offset from the frame pointer of
// the function with the given static level.
type LocalAccess struct {
	Size        int
	Offset      int
	StaticLevel int
}

func (la *LocalAccess) StorageSize() int {
	return la.Size
}

// ParamAccess is a parameter at a fixed offset from the frame pointer of the
// function with the given static level.
type ParamAccess struct {
	Size        int
	Offset      int
	StaticLevel int
}

func (pa *ParamAccess) StorageSize() int {
	return pa.Size
}
