package protoplay

import "testing"

func TestUpdateWorldPosition(t *testing.T) {
	root := NewNode("body")
	parent := NewNode("div")
	parent.SetPosition(10, 20)
	child := NewNode("div")
	child.SetPosition(5, 5)
	child.SetStyle("transform", "translate(3px, 4px)")
	root.AddChild(parent)
	parent.AddChild(child)

	updateWorld(root, 0, 0, 1, true)

	b := child.WorldBounds()
	if b.X != 18 || b.Y != 29 {
		t.Errorf("world = (%v, %v), want (18, 29)", b.X, b.Y)
	}
}

func TestUpdateWorldAlphaAndVisibility(t *testing.T) {
	root := NewNode("body")
	parent := NewNode("div")
	parent.SetStyle("opacity", "0.5")
	child := NewNode("div")
	child.SetStyle("opacity", "0.5")
	root.AddChild(parent)
	parent.AddChild(child)

	updateWorld(root, 0, 0, 1, true)
	assertApprox(t, "child world alpha", child.WorldAlpha(), 0.25)

	parent.SetStyle("display", "none")
	updateWorld(root, 0, 0, 1, true)
	if child.WorldVisible() {
		t.Error("child of hidden parent should not be world visible")
	}
	if !root.WorldVisible() {
		t.Error("root should stay visible")
	}
}

func TestWorldLocalRoundTrip(t *testing.T) {
	root := NewNode("body")
	n := NewNode("div")
	n.SetPosition(40, 60)
	root.AddChild(n)
	updateWorld(root, 0, 0, 1, true)

	lx, ly := n.WorldToLocal(50, 65)
	if lx != 10 || ly != 5 {
		t.Errorf("WorldToLocal = (%v, %v), want (10, 5)", lx, ly)
	}
	wx, wy := n.LocalToWorld(lx, ly)
	if wx != 50 || wy != 65 {
		t.Errorf("LocalToWorld = (%v, %v), want (50, 65)", wx, wy)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	for _, p := range [][2]float64{{10, 10}, {30, 30}, {20, 15}} {
		if !r.Contains(p[0], p[1]) {
			t.Errorf("Contains(%v) = false", p)
		}
	}
	for _, p := range [][2]float64{{9, 10}, {31, 20}, {20, 31}} {
		if r.Contains(p[0], p[1]) {
			t.Errorf("Contains(%v) = true", p)
		}
	}
}

func TestColorRGBA8(t *testing.T) {
	r, g, b, a := Color{1, 0.5, -1, 2}.RGBA8()
	if r != 255 || g != 128 || b != 0 || a != 255 {
		t.Errorf("RGBA8 = %d %d %d %d", r, g, b, a)
	}
}
