package protoplay

// DetectChanges compares two snapshots of the same logical element and
// returns every observed property delta. The result is deterministic:
// root-level checks come first in the order size, opacity, background,
// borderRadius, layout, sizing, followed by the changes of every
// descendant present on both sides, in source pre-order.
//
// Descendants are matched by their slash-joined name path relative to the
// compared root, never by id, because the same logical child carries a
// different id in each variant. Children present on one side only produce
// no change.
func DetectChanges(source, target *Snapshot) []Change {
	if source == nil || target == nil {
		return nil
	}
	var changes []Change

	if source.Width != target.Width || source.Height != target.Height {
		changes = append(changes, Change{
			Property: PropSize,
			Source:   SizeValue{source.Width, source.Height},
			Target:   SizeValue{target.Width, target.Height},
		})
	}

	if so, to := source.EffectiveOpacity(), target.EffectiveOpacity(); so != to {
		changes = append(changes, Change{
			Property: PropOpacity,
			Source:   OpacityValue(so),
			Target:   OpacityValue(to),
		})
	}

	if fillsDiffer(source.Fills, target.Fills) {
		changes = append(changes, Change{
			Property: PropBackground,
			Source:   FillsValue(source.Fills),
			Target:   FillsValue(target.Fills),
		})
	}

	if source.CornerRadius != target.CornerRadius {
		changes = append(changes, Change{
			Property: PropBorderRadius,
			Source:   RadiusValue(source.CornerRadius),
			Target:   RadiusValue(target.CornerRadius),
		})
	}

	if sl, tl := source.layoutProps(), target.layoutProps(); sl != tl {
		changes = append(changes, Change{
			Property: PropLayout,
			Source:   sl,
			Target:   tl,
		})
	}

	if source.LayoutSizingHorizontal != target.LayoutSizingHorizontal ||
		source.LayoutSizingVertical != target.LayoutSizingVertical {
		changes = append(changes, Change{
			Property: PropSizing,
			Source:   SizingValue{source.LayoutSizingHorizontal, source.LayoutSizingVertical},
			Target:   SizingValue{target.LayoutSizingHorizontal, target.LayoutSizingVertical},
		})
	}

	return append(changes, detectChildChanges(source, target)...)
}

// detectChildChanges compares every descendant path present in both trees.
func detectChildChanges(source, target *Snapshot) []Change {
	sm := newChildMap(source)
	tm := newChildMap(target)

	var changes []Change
	for _, path := range sm.paths {
		sc := sm.nodes[path]
		tc, ok := tm.nodes[path]
		if !ok {
			continue
		}

		if sc.X != tc.X || sc.Y != tc.Y {
			from := PositionValue{sc.X, sc.Y}
			to := PositionValue{tc.X, tc.Y}
			if p, ok := resolveLayoutPosition(source, target, sc, tc); ok {
				to = p
			}
			if to != from {
				changes = append(changes, Change{
					Property:  PropChildPosition,
					Source:    from,
					Target:    to,
					ChildName: path,
					ChildID:   sc.ID,
				})
			}
		}

		if sc.Width != tc.Width || sc.Height != tc.Height {
			changes = append(changes, Change{
				Property:  PropChildSize,
				Source:    SizeValue{sc.Width, sc.Height},
				Target:    SizeValue{tc.Width, tc.Height},
				ChildName: path,
				ChildID:   sc.ID,
			})
		}

		if so, to := sc.EffectiveOpacity(), tc.EffectiveOpacity(); so != to {
			changes = append(changes, Change{
				Property:  PropChildOpacity,
				Source:    OpacityValue(so),
				Target:    OpacityValue(to),
				ChildName: path,
				ChildID:   sc.ID,
			})
		}

		if fillsDiffer(sc.Fills, tc.Fills) {
			prop := PropChildBackground
			if sc.Type == NodeVector {
				prop = PropChildFill
			}
			changes = append(changes, Change{
				Property:  prop,
				Source:    FillsValue(sc.Fills),
				Target:    FillsValue(tc.Fills),
				ChildName: path,
				ChildID:   sc.ID,
			})
		}

		if sc.Type == NodeVector && pathsDiffer(sc.VectorPaths, tc.VectorPaths) {
			changes = append(changes, Change{
				Property:  PropVectorPaths,
				Source:    PathsValue(sc.VectorPaths),
				Target:    PathsValue(tc.VectorPaths),
				ChildName: path,
				ChildID:   sc.ID,
			})
		}
	}
	return changes
}

// childMap maps every descendant of a root, at any depth, to its
// slash-joined name path. paths keeps first-insertion order; a later
// sibling with a duplicate path replaces the node but keeps the slot.
type childMap struct {
	paths []string
	nodes map[string]*Snapshot
}

func newChildMap(root *Snapshot) childMap {
	m := childMap{nodes: make(map[string]*Snapshot)}
	m.add(root, "")
	return m
}

func (m *childMap) add(n *Snapshot, prefix string) {
	for _, c := range n.Children {
		path := c.Name
		if prefix != "" {
			path = prefix + "/" + c.Name
		}
		if _, ok := m.nodes[path]; !ok {
			m.paths = append(m.paths, path)
		}
		m.nodes[path] = c
		m.add(c, path)
	}
}

// fillsDiffer reports whether two fill lists differ. Both absent is equal,
// one absent is different, lengths must match, and each positional pair is
// compared by type, opacity and, when both are SOLID, RGB.
func fillsDiffer(a, b []Fill) bool {
	if a == nil && b == nil {
		return false
	}
	if a == nil || b == nil {
		return true
	}
	if len(a) != len(b) {
		return true
	}
	for i := range a {
		fa, fb := &a[i], &b[i]
		if fa.Type != fb.Type {
			return true
		}
		if !equalOptional(fa.Opacity, fb.Opacity) {
			return true
		}
		if fa.Type == FillSolid && fb.Type == FillSolid {
			if (fa.Color == nil) != (fb.Color == nil) {
				return true
			}
			if fa.Color != nil && *fa.Color != *fb.Color {
				return true
			}
		}
	}
	return false
}

func equalOptional(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func pathsDiffer(a, b []VectorPath) bool {
	if len(a) != len(b) {
		return true
	}
	for i := range a {
		if a[i] != b[i] {
			return true
		}
	}
	return false
}
