package protoplay

import "testing"

func TestInjectClickQueuesTwoEvents(t *testing.T) {
	s := NewScene()
	n := box(0, 0, 50, 50)
	s.Root().AddChild(n)
	refresh(s)
	clicks := 0
	n.SetHandler(EventClick, func() { clicks++ })

	s.InjectClick(25, 25)
	if len(s.injectQueue) != 2 || !s.InjectPending() {
		t.Fatalf("queue = %d, want 2", len(s.injectQueue))
	}
	s.Update(frameDT)
	if clicks != 0 || len(s.injectQueue) != 1 {
		t.Errorf("after press: clicks = %d, queue = %d", clicks, len(s.injectQueue))
	}
	s.Update(frameDT)
	if clicks != 1 || s.InjectPending() {
		t.Errorf("after release: clicks = %d, pending = %v", clicks, s.InjectPending())
	}
}

func TestInjectPressRelease(t *testing.T) {
	s := NewScene()
	n := box(0, 0, 50, 50)
	s.Root().AddChild(n)
	refresh(s)
	var events []EventType
	for _, ev := range []EventType{EventPointerDown, EventPointerUp} {
		n.SetHandler(ev, func() { events = append(events, ev) })
	}
	s.InjectPress(5, 5)
	s.InjectRelease(200, 200)
	s.Update(frameDT)
	s.Update(frameDT)
	if len(events) != 1 || events[0] != EventPointerDown {
		t.Errorf("events = %v, want only pointer-down (release missed the node)", events)
	}
	if s.pointer.down {
		t.Error("pointer should be released")
	}
}

func TestInjectClickNode(t *testing.T) {
	s := NewScene()
	n := box(10, 20, 40, 60)
	n.SetAttr(AttrNodeID, "n")
	s.Root().AddChild(n)
	s.Engine().RegisterElement("n", n, nil)
	refresh(s)

	if s.InjectClickNode("missing") {
		t.Error("unknown node should report false")
	}
	if s.InjectPending() {
		t.Error("nothing should be queued for an unknown node")
	}
	if !s.InjectClickNode("n") {
		t.Fatal("registered node should report true")
	}
	if ev := s.injectQueue[0]; ev.x != 30 || ev.y != 50 || !ev.pressed {
		t.Errorf("press = %+v, want centre (30, 50)", ev)
	}
}
