package protoplay

import (
	"math"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func solid(r, g, b float64) Fill {
	return Fill{Type: FillSolid, Color: &RGB{R: r, G: g, B: b}}
}

func frame(id, name string, w, h float64, children ...*Snapshot) *Snapshot {
	return &Snapshot{ID: id, Name: name, Type: NodeFrame, Width: w, Height: h, Children: children}
}

func at(s *Snapshot, x, y float64) *Snapshot {
	s.X, s.Y = x, y
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func assertApprox(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approx(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func reaction(trigger TriggerType, dest string, tr *Transition) Reaction {
	return Reaction{Trigger: Trigger{Type: trigger}, Action: Action{DestinationID: dest, Transition: tr}}
}

func timeoutReaction(seconds float64, dest string, tr *Transition) Reaction {
	r := reaction(TriggerTimeout, dest, tr)
	r.Trigger.Timeout = seconds
	return r
}

func smart(d float64) *Transition {
	return &Transition{Type: TransitionSmartAnimate, Duration: d, Easing: Easing{Type: EasingLinear}}
}

func dissolve(d float64) *Transition {
	return &Transition{Type: TransitionDissolve, Duration: d, Easing: Easing{Type: EasingGentle}}
}

// buildAndRegister renders snap and registers every node of it with e.
func buildAndRegister(e *Engine, parent *Node, snap *Snapshot) *Node {
	n := BuildNode(snap)
	parent.AddChild(n)
	byID := make(map[string]*Node)
	n.Walk(func(c *Node) bool {
		if id := c.NodeID(); id != "" {
			byID[id] = c
		}
		return true
	})
	snap.Walk(func(s *Snapshot) bool {
		e.RegisterElement(s.ID, byID[s.ID], s)
		return true
	})
	return n
}
