package ast

// Children returns the IDs of the direct children of a node in source order.
// Absent children are omitted.
func Children(n Node) []NodeID {
	var ids []NodeID

	switch v := n.(type) {
	case *Program:
		ids = append(ids, v.Defs...)
	case *FunDef:
		ids = append(ids, v.Params...)
		ids = append(ids, v.Result, v.Body)
	case *Param:
		ids = append(ids, v.Type)
	case *VarDef:
		ids = append(ids, v.Type)
	case *TypeDef:
		ids = append(ids, v.Type)
	case *ArrayType:
		ids = append(ids, v.Elem)
	case *Call:
		ids = append(ids, v.Args...)
	case *Binary:
		ids = append(ids, v.Left, v.Right)
	case *Unary:
		ids = append(ids, v.Operand)
	case *Index:
		ids = append(ids, v.Array, v.Index)
	case *Assign:
		ids = append(ids, v.Target, v.Value)
	case *Block:
		ids = append(ids, v.Exprs...)
	case *IfThenElse:
		ids = append(ids, v.Cond, v.Then)
		if v.Else != NoNode {
			ids = append(ids, v.Else)
		}
	case *While:
		ids = append(ids, v.Cond, v.Body)
	case *For:
		ids = append(ids, v.Counter, v.Low, v.High, v.Step, v.Body)
	case *Where:
		ids = append(ids, v.Expr)
		ids = append(ids, v.Defs...)
	}

	return ids
}
