package protoplay

// syntheticPointerEvent represents a single injected pointer event in
// world coordinates, which is also what a screenshot shows.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// InjectPress queues a pointer press event at the given coordinates (left
// button). The event is consumed on the next Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event at the given coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two updates.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectClickNode queues a click at the centre of the element registered
// for id. It reports false, queuing nothing, when there is no such node.
func (s *Scene) InjectClickNode(id string) bool {
	n, ok := s.engine.Element(id).(*Node)
	if !ok {
		return false
	}
	b := n.WorldBounds()
	s.InjectClick(b.X+b.Width/2, b.Y+b.Height/2)
	return true
}

// InjectPending reports whether injected events are still queued.
func (s *Scene) InjectPending() bool {
	return len(s.injectQueue) > 0
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (live
// pointer input is skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(evt.x, evt.y, evt.pressed, evt.button)
	return true
}
