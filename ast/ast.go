package ast

import "pinsc/report"

// NodeID uniquely identifies a node within a Tree.  The zero ID is never
// assigned to a node: it marks an absent child (eg. a missing else branch).
type NodeID int

// NoNode is the ID used for absent children.
const NoNode NodeID = 0

// The abstract interface for all AST nodes.
type Node interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// Tree is an arena holding every node of one program.  Nodes refer to their
// children by ID, and every later phase stores its results in side tables
// keyed by ID rather than on the nodes themselves.
type Tree struct {
	// The nodes of the tree: the node with ID n is stored at index n-1.
	nodes []Node

	// The ID of the root Program node.
	Root NodeID
}

// NewTree creates a new empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Add adds a node to the tree and returns its ID.
func (t *Tree) Add(n Node) NodeID {
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes))
}

// Node returns the node with the given ID.  It returns nil for NoNode and for
// IDs which are not part of the tree.
func (t *Tree) Node(id NodeID) Node {
	if id <= 0 || int(id) > len(t.nodes) {
		return nil
	}

	return t.nodes[id-1]
}

// Span returns the span of the node with the given ID or nil if there is no
// such node.
func (t *Tree) Span(id NodeID) *report.TextSpan {
	if n := t.Node(id); n != nil {
		return n.Span()
	}

	return nil
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Program returns the root program node.
func (t *Tree) Program() *Program {
	if prog, ok := t.Node(t.Root).(*Program); ok {
		return prog
	}

	return nil
}
