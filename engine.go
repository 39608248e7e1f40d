package protoplay

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingElement is returned when an animation names an element that
	// was never registered.
	ErrMissingElement = errors.New("protoplay: element not registered")
	// ErrMissingSnapshot is returned when an animation names an element
	// registered without a snapshot.
	ErrMissingSnapshot = errors.New("protoplay: snapshot not registered")
)

// Animation is one run of ExecuteAnimation. SourceID is the element the
// visual change starts from: for a variant instance that is its active
// variant, which may differ from the node whose trigger fired.
type Animation struct {
	SourceID string
	TargetID string
	Options  AnimationOptions
	// Changes detected between source and target; empty unless the
	// transition is a smart animation.
	Changes []Change
	// Instance is the variant instance being switched, or nil for a plain
	// element to element animation.
	Instance *VariantInstance

	// Done is set once the switch has happened and the target's reactions
	// are installed.
	Done bool
	// Cancelled is set when a later animation on the same instance or
	// element superseded this one before it finished.
	Cancelled bool

	key      string
	timers   []*Timer
	rollback func()
}

func (a *Animation) track(t *Timer) {
	a.timers = append(a.timers, t)
}

func (a *Animation) cancel() {
	for _, t := range a.timers {
		t.Stop()
	}
	a.timers = nil
	if a.rollback != nil {
		a.rollback()
	}
	a.Cancelled = true
}

// Engine orchestrates prototype animations: it detects the differences
// between two snapshots, turns them into style mutations, drives them
// through the scheduler, and switches variant instances when they end.
//
// An Engine is driven from a single goroutine together with its scheduler.
type Engine struct {
	sched    *Scheduler
	loc      Locator
	elements map[string]Element
	nodes    map[string]*Snapshot
	variants VariantRegistry

	pending        map[string]*Animation
	reactionTimers map[string][]*Timer
}

// NewEngine creates an engine that schedules on sched and finds
// descendants through loc.
func NewEngine(sched *Scheduler, loc Locator) *Engine {
	return &Engine{
		sched:          sched,
		loc:            loc,
		elements:       make(map[string]Element),
		nodes:          make(map[string]*Snapshot),
		pending:        make(map[string]*Animation),
		reactionTimers: make(map[string][]*Timer),
	}
}

// Scheduler returns the engine's scheduler.
func (e *Engine) Scheduler() *Scheduler {
	return e.sched
}

// RegisterElement records the element rendered for id and the snapshot it
// was rendered from. A nil snapshot registers the element alone.
func (e *Engine) RegisterElement(id string, el Element, snap *Snapshot) {
	if el != nil {
		e.elements[id] = el
	}
	if snap != nil {
		e.nodes[id] = snap
	}
}

// RegisterVariantInstances records variant instances.
func (e *Engine) RegisterVariantInstances(instances []VariantInstance) {
	for _, inst := range instances {
		e.variants.Register(inst)
	}
}

// Element returns the element registered for id, or nil.
func (e *Engine) Element(id string) Element {
	return e.elements[id]
}

// Snapshot returns the snapshot registered for id, or nil.
func (e *Engine) Snapshot(id string) *Snapshot {
	return e.nodes[id]
}

// Variants returns the variant registry.
func (e *Engine) Variants() *VariantRegistry {
	return &e.variants
}

// ExecuteAnimation animates from sourceID to targetID.
//
// When sourceID is a variant or template of a registered instance and
// targetID is one of its variants, the instance is switched. Otherwise,
// when targetID is a variant of some instance, that instance is switched
// from its active variant. Otherwise the source element is animated into
// the target element directly.
//
// The timing comes from the first reaction of sourceID; without one the
// switch is instant. An error is returned, and nothing is changed, when a
// needed element or snapshot was never registered.
func (e *Engine) ExecuteAnimation(sourceID, targetID string) (*Animation, error) {
	if inst := e.variants.Find(sourceID); inst != nil && inst.Has(targetID) {
		return e.animateVariant(inst, sourceID, targetID)
	}
	if inst := e.variants.FindByTarget(targetID); inst != nil {
		return e.animateVariant(inst, sourceID, targetID)
	}
	return e.animatePlain(sourceID, targetID)
}

// animatePlain animates the source element into the target element and
// then shows the target in its place.
func (e *Engine) animatePlain(sourceID, targetID string) (*Animation, error) {
	srcEl, srcSnap, err := e.lookup(sourceID)
	if err != nil {
		return nil, err
	}
	tgtEl, tgtSnap, err := e.lookup(targetID)
	if err != nil {
		return nil, err
	}
	opts := OptionsFromReaction(srcSnap.FirstReaction())

	key := sourceID
	e.cancelPending(key)
	e.cancelShownTimers(sourceID)

	a := &Animation{SourceID: sourceID, TargetID: targetID, Options: opts, key: key}
	e.pending[key] = a
	Logger().Debug("animate element",
		"from", sourceID, "to", targetID, "type", opts.TransitionType, "duration", opts.Duration)

	done := func() {
		resetElement(e.loc, srcEl)
		srcEl.SetStyle("display", "none")
		forceShow(tgtEl)
		e.finish(a)
	}

	switch opts.TransitionType {
	case TransitionSmartAnimate:
		a.Changes = DetectChanges(srcSnap, tgtSnap)
		state := captureState(e.loc, srcEl)
		a.rollback = state.restore
		SetupTransitions(e.loc, srcEl, a.Changes, opts)
		a.track(e.sched.NextFrame(func() {
			for _, c := range a.Changes {
				ApplyChange(e.loc, srcEl, c)
			}
			a.track(e.sched.AfterFunc(opts.delay(), func() {
				state.restore()
				done()
			}))
		}))
	case TransitionDissolve:
		e.crossFade(a, srcEl, tgtEl, opts, done)
	default:
		done()
	}
	return a, nil
}

// lookup returns the element and snapshot registered for id.
func (e *Engine) lookup(id string) (Element, *Snapshot, error) {
	el, ok := e.elements[id]
	if !ok {
		Logger().Warn("animation target not found", "id", id, "missing", "element")
		return nil, nil, fmt.Errorf("%w: %q", ErrMissingElement, id)
	}
	snap, ok := e.nodes[id]
	if !ok {
		Logger().Warn("animation target not found", "id", id, "missing", "snapshot")
		return nil, nil, fmt.Errorf("%w: %q", ErrMissingSnapshot, id)
	}
	return el, snap, nil
}

// cancelPending cancels the unfinished animation registered under key.
func (e *Engine) cancelPending(key string) {
	a, ok := e.pending[key]
	if !ok {
		return
	}
	delete(e.pending, key)
	if !a.Done {
		a.cancel()
		Logger().Debug("animation cancelled", "from", a.SourceID, "to", a.TargetID)
	}
}

// finish marks a done and installs the reactions of its target.
func (e *Engine) finish(a *Animation) {
	a.Done = true
	a.timers = nil
	a.rollback = nil
	if e.pending[a.key] == a {
		delete(e.pending, a.key)
	}
	e.setupShownTimeouts(a.TargetID)
	e.SetupClickReactions(a.TargetID)
}

// ClearAllTimeouts cancels every pending timer: reaction timeouts as well
// as the frame and completion timers of running animations.
// Running animations are cancelled first, so their elements are left with
// the inline styles they had before the animation began.
func (e *Engine) ClearAllTimeouts() {
	for key := range e.pending {
		e.cancelPending(key)
	}
	e.sched.Clear()
	clear(e.reactionTimers)
}

// Destroy cancels every timer and empties the registries.
func (e *Engine) Destroy() {
	e.ClearAllTimeouts()
	clear(e.elements)
	clear(e.nodes)
	e.variants.Clear()
}
