package protoplay

// Scene is the top-level object that owns the node tree, the scheduler
// and the engine, and the input state feeding them.
type Scene struct {
	root   *Node
	sched  *Scheduler
	engine *Engine
	debug  bool

	// ClearColor is painted behind the tree by renderers.
	ClearColor Color

	// OnScreenshot is called for every screenshot a test script asks for.
	// Renderers set it to capture the next frame.
	OnScreenshot func(label string)

	// Input state
	pointer     pointerState
	hitBuf      []*Node
	injectQueue []syntheticPointerEvent
	live        livePointer
	testRunner  *TestRunner
}

// NewScene creates a new scene with a pre-created root node and an engine
// scheduling on the scene's clock.
func NewScene() *Scene {
	root := NewNode("body")
	root.Name = "root"
	sched := NewScheduler()
	return &Scene{
		root:   root,
		sched:  sched,
		engine: NewEngine(sched, NodeLocator{}),
	}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Engine returns the scene's engine.
func (s *Scene) Engine() *Engine {
	return s.engine
}

// Scheduler returns the scene's clock.
func (s *Scene) Scheduler() *Scheduler {
	return s.sched
}

// Load mounts a document into the scene.
func (s *Scene) Load(doc *Document) error {
	if err := s.engine.Mount(doc, s.root); err != nil {
		return err
	}
	updateWorld(s.root, 0, 0, 1, true)
	return nil
}

// Update advances the scene by dt seconds: the test runner steps, one
// queued or live pointer event is processed, running transitions move,
// due timers fire, and world positions are refreshed.
func (s *Scene) Update(dt float64) {
	if s.testRunner != nil {
		s.testRunner.step(s, dt)
	}
	s.processInput()
	updateTweens(s.root, float32(dt))
	s.sched.Advance(secondsToDuration(dt))
	updateWorld(s.root, 0, 0, 1, true)
	if s.debug {
		s.debugLog(collectStats(s.root, s.sched))
	}
}

// Screenshot asks the renderer for a labeled capture of the next frame.
func (s *Scene) Screenshot(label string) {
	if s.OnScreenshot == nil {
		Logger().Debug("screenshot requested without a renderer", "label", label)
		return
	}
	s.OnScreenshot(label)
}

// Destroy cancels every timer and drops the tree.
func (s *Scene) Destroy() {
	s.engine.Destroy()
	for _, c := range append([]*Node(nil), s.root.Children()...) {
		c.Dispose()
	}
	s.injectQueue = nil
	s.testRunner = nil
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-update stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}
