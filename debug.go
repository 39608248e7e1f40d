package protoplay

import "fmt"

// globalDebug enables the tree checks below. Set through Scene.SetDebugMode.
var globalDebug bool

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("protoplay debug: %s on disposed node %q (id %q)", op, n.Name, n.NodeID()))
	}
}

// debugMaxTreeDepth is the depth past which debugCheckTreeDepth warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugMaxChildCount is the child count past which debugCheckChildCount warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("node child count exceeds threshold",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// debugStats counts what a scene update did. Logged at debug level when the
// scene is in debug mode.
type debugStats struct {
	nodes     int
	visible   int
	animating int
	timers    int
}

func collectStats(root *Node, sched *Scheduler) debugStats {
	var s debugStats
	root.Walk(func(n *Node) bool {
		s.nodes++
		if n.worldVisible {
			s.visible++
		}
		if n.Animating() {
			s.animating++
		}
		return true
	})
	s.timers = sched.Pending()
	return s
}

func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	Logger().Debug("scene update",
		"nodes", stats.nodes, "visible", stats.visible,
		"animating", stats.animating, "timers", stats.timers)
}
