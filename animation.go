package protoplay

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// styleTween animates up to 4 float64 fields of a node's computed state
// simultaneously: one tween per transitioned CSS property. Nodes own their
// tweens and advance them from updateTweens; there is no global animation
// manager.
type styleTween struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// newStyleTween creates a tween moving each field from its current value
// to the matching entry of to over duration seconds.
func newStyleTween(fields []*float64, to []float64, duration float32, fn ease.TweenFunc) *styleTween {
	g := &styleTween{count: min(len(fields), 4)}
	for i := 0; i < g.count; i++ {
		g.tweens[i] = gween.New(float32(*fields[i]), float32(to[i]), duration, fn)
		g.fields[i] = fields[i]
	}
	return g
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *styleTween) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// updateTweens advances every running transition in the subtree rooted at
// n by dt seconds. Finished tweens are dropped.
func updateTweens(n *Node, dt float32) {
	if n.disposed {
		return
	}
	for prop, tw := range n.tweens {
		tw.Update(dt)
		if tw.Done {
			delete(n.tweens, prop)
		}
	}
	for _, c := range n.children {
		updateTweens(c, dt)
	}
}

// Animating reports whether any transition is running on the node.
func (n *Node) Animating() bool {
	return len(n.tweens) > 0
}
