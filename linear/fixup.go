package linear

import (
	"pinsc/frame"
	"pinsc/ir"
)

// fixCJumps rewrites conditional jumps so that each one is immediately
// followed by its false label.
func (l *Linearizer) fixCJumps(stmts []ir.Stmt) []ir.Stmt {
	fixed := make([]ir.Stmt, 0, len(stmts))

	for i, stmt := range stmts {
		cjump, ok := stmt.(*ir.CJump)
		if !ok {
			fixed = append(fixed, stmt)
			continue
		}

		var next frame.Label
		hasNext := false
		if i+1 < len(stmts) {
			if label, ok := stmts[i+1].(*ir.Label); ok {
				next, hasNext = label.Label, true
			}
		}

		switch {
		case hasNext && next == cjump.False:
			fixed = append(fixed, cjump)
		case hasNext && next == cjump.True:
			fixed = append(fixed, &ir.CJump{
				Cond:  &ir.Binop{Op: ir.EQ, Left: cjump.Cond, Right: &ir.Const{Value: 0}},
				True:  cjump.False,
				False: cjump.True,
			})
		default:
			falseLabel := l.alloc.NewLabel()
			fixed = append(fixed,
				&ir.CJump{Cond: cjump.Cond, True: cjump.True, False: falseLabel},
				&ir.Label{Label: falseLabel},
				&ir.Jump{Label: cjump.False},
			)
		}
	}

	return fixed
}

// checkLabels checks that every jump in a flat body targets a label defined
// in that body.
func (l *Linearizer) checkLabels(fun frame.Label, stmts []ir.Stmt) {
	defined := make(map[frame.Label]struct{})
	for _, stmt := range stmts {
		if label, ok := stmt.(*ir.Label); ok {
			defined[label.Label] = struct{}{}
		}
	}

	check := func(target frame.Label) {
		if _, ok := defined[target]; !ok {
			l.error("jump to undefined label `%s` in `%s`", target, fun)
		}
	}

	for _, stmt := range stmts {
		switch v := stmt.(type) {
		case *ir.Jump:
			check(v.Label)
		case *ir.CJump:
			check(v.True)
			check(v.False)
		}
	}
}
