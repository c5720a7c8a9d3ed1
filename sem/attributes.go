package sem

import (
	"pinsc/ast"
	"pinsc/types"
)

// Attributes stores the results of name resolution and type checking for one
// tree.  Both tables are keyed by node ID.  Later phases treat them as
// read-only: a node they need an attribute for which has none is a bug in an
// earlier phase.
type Attributes struct {
	// defs maps a use (Name, Call, TypeName) to the definition it refers to.
	defs map[ast.NodeID]ast.NodeID

	// types maps expressions, type nodes and definitions to their types.
	types map[ast.NodeID]types.Type
}

// NewAttributes creates a new empty attribute store.
func NewAttributes() *Attributes {
	return &Attributes{
		defs:  make(map[ast.NodeID]ast.NodeID),
		types: make(map[ast.NodeID]types.Type),
	}
}

// BindDef records that use refers to def.
func (a *Attributes) BindDef(use, def ast.NodeID) {
	a.defs[use] = def
}

// Def returns the definition a use refers to.  Calls to intrinsics have no
// definition.
func (a *Attributes) Def(use ast.NodeID) (ast.NodeID, bool) {
	def, ok := a.defs[use]
	return def, ok
}

// SetType records the type of a node.
func (a *Attributes) SetType(id ast.NodeID, typ types.Type) {
	a.types[id] = typ
}

// Type returns the type of a node.
func (a *Attributes) Type(id ast.NodeID) (types.Type, bool) {
	typ, ok := a.types[id]
	return typ, ok
}
