package protoplay

// pointerState tracks the single mouse pointer between updates.
type pointerState struct {
	down    bool
	button  MouseButton
	hitNode *Node
	lastX   float64
	lastY   float64
}

// livePointer is the most recent real pointer reading from a renderer.
type livePointer struct {
	set     bool
	x, y    float64
	pressed bool
	button  MouseButton
}

// SetPointer records the current real pointer position and button state.
// It is processed on the next Update unless injected input is pending.
func (s *Scene) SetPointer(x, y float64, pressed bool, button MouseButton) {
	s.live = livePointer{set: true, x: x, y: y, pressed: pressed, button: button}
}

// processInput feeds one event into the pointer state machine: an injected
// one if any is queued, otherwise the live pointer.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.live.set {
		s.processPointer(s.live.x, s.live.y, s.live.pressed, s.live.button)
	}
}

// processPointer runs the press/release state machine. A press fires
// pointer-down on the node under the pointer; a left-button release over
// the node that was pressed fires click; every release fires pointer-up.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	switch {
	case pressed && !ps.down:
		target := s.HitTest(x, y)
		ps.down = true
		ps.button = button
		ps.hitNode = target
		dispatch(target, EventPointerDown)
	case !pressed && ps.down:
		target := s.HitTest(x, y)
		if ps.button == MouseButtonLeft && ps.hitNode != nil && ps.hitNode == target {
			dispatch(target, EventClick)
		}
		dispatch(target, EventPointerUp)
		ps.down = false
		ps.hitNode = nil
	}
	ps.lastX = x
	ps.lastY = y
}

// dispatch runs the handler for ev on n or, failing that, on its nearest
// ancestor that has one. It reports whether a handler ran.
func dispatch(n *Node, ev EventType) bool {
	for p := n; p != nil; p = p.Parent {
		if fn := p.handlers[ev]; fn != nil {
			fn()
			return true
		}
	}
	return false
}

// collectVisible appends the shown nodes of the subtree in paint order.
func collectVisible(n *Node, buf []*Node) []*Node {
	if !n.worldVisible || n.disposed {
		return buf
	}
	buf = append(buf, n)
	for _, c := range n.children {
		buf = collectVisible(c, buf)
	}
	return buf
}

// HitTest returns the topmost shown node whose box contains the world
// point (x, y), or nil. Positions are those of the last update.
func (s *Scene) HitTest(x, y float64) *Node {
	s.hitBuf = collectVisible(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		if n == s.root {
			continue
		}
		if n.computed.Width <= 0 || n.computed.Height <= 0 {
			continue
		}
		if n.WorldBounds().Contains(x, y) {
			return n
		}
	}
	return nil
}
