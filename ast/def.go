package ast

// Program is the root node of a PINS source file.
type Program struct {
	ASTBase

	// The top level definitions in source order.
	Defs []NodeID
}

// FunDef is an AST node for a function definition.
type FunDef struct {
	ASTBase

	Name   string
	Params []NodeID

	// The declared result type node.
	Result NodeID

	Body NodeID
}

// Param is an AST node for a function parameter.
type Param struct {
	ASTBase

	Name string
	Type NodeID
}

// VarDef is an AST node for a variable definition.
type VarDef struct {
	ASTBase

	Name string
	Type NodeID
}

// TypeDef is an AST node for a named type definition.
type TypeDef struct {
	ASTBase

	Name string
	Type NodeID
}

// DefName returns the name defined by a definition node and whether the node
// is a definition at all.
func DefName(n Node) (string, bool) {
	switch v := n.(type) {
	case *FunDef:
		return v.Name, true
	case *Param:
		return v.Name, true
	case *VarDef:
		return v.Name, true
	case *TypeDef:
		return v.Name, true
	}

	return "", false
}

// -----------------------------------------------------------------------------

// Enumeration of atom type kinds.
const (
	AtomInteger = iota
	AtomLogical
	AtomString
)

// AtomType is a type node for one of the builtin atom types.
type AtomType struct {
	ASTBase

	// Kind must be one of the enumerated atom type kinds.
	Kind int
}

// ArrayType is a type node for an array type.
type ArrayType struct {
	ASTBase

	// The declared number of elements.
	Size int

	// The element type node.
	Elem NodeID
}

// TypeName is a type node referring to a named type definition.
type TypeName struct {
	ASTBase

	Name string
}
