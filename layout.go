package protoplay

// resolveLayoutPosition decides whether a child's position delta is a
// side effect of its auto-layout parent rather than an authored move.
//
// The nearest ancestor with an explicit auto-layout mode is looked up by id
// in each tree. When the two parents differ in primary-axis alignment, the
// child's x is recomputed as if laid out fresh under the target alignment;
// y is taken from the target child unchanged. Otherwise, when the parents
// differ in size, both axes are rescaled proportionally. The boolean result
// is false when neither applies and the raw target position stands.
func resolveLayoutPosition(srcRoot, tgtRoot, srcChild, tgtChild *Snapshot) (PositionValue, bool) {
	sp := layoutAncestor(srcRoot, srcChild.ID)
	tp := layoutAncestor(tgtRoot, tgtChild.ID)
	if sp == nil || tp == nil {
		return PositionValue{}, false
	}

	if sp.PrimaryAxisAlignItems != tp.PrimaryAxisAlignItems {
		if x, ok := alignedX(tp.PrimaryAxisAlignItems, tp.Width, tgtChild.Width); ok {
			return PositionValue{X: x, Y: tgtChild.Y}, true
		}
		return PositionValue{}, false
	}

	if sp.Width != tp.Width || sp.Height != tp.Height {
		p := PositionValue{X: tgtChild.X, Y: tgtChild.Y}
		if sp.Width != 0 {
			p.X = srcChild.X / sp.Width * tp.Width
		}
		if sp.Height != 0 {
			p.Y = srcChild.Y / sp.Height * tp.Height
		}
		return p, true
	}
	return PositionValue{}, false
}

// alignedX places a child of width cw inside a parent of width pw.
// SPACE_BETWEEN resolves to the start edge regardless of sibling count.
func alignedX(align Align, pw, cw float64) (float64, bool) {
	switch align {
	case AlignMin, AlignSpaceBetween:
		return 0, true
	case AlignCenter:
		return (pw - cw) / 2, true
	case AlignMax:
		return pw - cw, true
	}
	return 0, false
}

// layoutAncestor returns the nearest ancestor of the node with the given id
// whose layout mode is HORIZONTAL or VERTICAL. The root itself counts as an
// ancestor. Returns nil when the node is the root, is not in the tree, or
// has no auto-layout ancestor.
func layoutAncestor(root *Snapshot, id string) *Snapshot {
	var stack []*Snapshot
	var found *Snapshot
	var visit func(n *Snapshot) bool
	visit = func(n *Snapshot) bool {
		stack = append(stack, n)
		for _, c := range n.Children {
			if c.ID != id {
				continue
			}
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].LayoutMode.IsAuto() {
					found = stack[i]
					break
				}
			}
			return true
		}
		for _, c := range n.Children {
			if visit(c) {
				return true
			}
		}
		stack = stack[:len(stack)-1]
		return false
	}
	visit(root)
	return found
}
