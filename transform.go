package protoplay

// updateWorld recomputes the world position, alpha and visibility of n and
// its descendants. A node's world position is its parent's plus its layout
// position plus its translation.
func updateWorld(n *Node, parentX, parentY, parentAlpha float64, parentVisible bool) {
	c := &n.computed
	n.worldX = parentX + n.X + c.TranslateX
	n.worldY = parentY + n.Y + c.TranslateY
	n.worldAlpha = parentAlpha * c.Alpha
	n.worldVisible = parentVisible && c.Visible
	for _, child := range n.children {
		updateWorld(child, n.worldX, n.worldY, n.worldAlpha, n.worldVisible)
	}
}

// WorldBounds returns the node's box in world coordinates as of the last
// update.
func (n *Node) WorldBounds() Rect {
	return Rect{X: n.worldX, Y: n.worldY, Width: n.computed.Width, Height: n.computed.Height}
}

// WorldAlpha returns the node's alpha multiplied by its ancestors'.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}

// WorldVisible reports whether the node and all its ancestors are shown.
func (n *Node) WorldVisible() bool {
	return n.worldVisible
}

// SetPosition sets the node's layout position relative to its parent.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return wx - n.worldX, wy - n.worldY
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return lx + n.worldX, ly + n.worldY
}
