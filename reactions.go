package protoplay

import (
	"slices"
	"time"
)

// minReactionTimeout is the shortest delay of a timeout reaction. Two
// reactions that time out into each other after zero seconds still leave
// the scheduler room to return.
const minReactionTimeout = time.Millisecond

// SetupTimeoutReactions schedules every AFTER_TIMEOUT reaction of nodeID.
// When one fires it runs ExecuteAnimation from nodeID to the reaction's
// destination. The timers are cancelled if the engine animates away from
// nodeID first. Calling it twice schedules twice.
func (e *Engine) SetupTimeoutReactions(nodeID string) {
	snap := e.nodes[nodeID]
	if snap == nil {
		return
	}
	for _, r := range snap.Reactions {
		if r.Trigger.Type != TriggerTimeout {
			continue
		}
		dest := r.Action.DestinationID
		d := max(secondsToDuration(r.Trigger.Timeout), minReactionTimeout)
		var t *Timer
		t = e.sched.AfterFunc(d, func() {
			e.forgetReactionTimer(nodeID, t)
			e.runReaction(nodeID, dest)
		})
		e.reactionTimers[nodeID] = append(e.reactionTimers[nodeID], t)
	}
}

// setupShownTimeouts schedules the timeout reactions of nodeID and of every
// descendant displayed with it.
func (e *Engine) setupShownTimeouts(nodeID string) {
	e.walkShown(nodeID, e.SetupTimeoutReactions)
}

// walkShown calls fn for nodeID and its descendants. A nested instance
// template is never displayed; its active variant is walked instead.
func (e *Engine) walkShown(nodeID string, fn func(id string)) {
	snap := e.nodes[nodeID]
	if snap == nil {
		return
	}
	snap.Walk(func(s *Snapshot) bool {
		if s != snap {
			if inst := e.variants.Template(s.ID); inst != nil {
				if inst.ActiveVariant != nodeID {
					e.walkShown(inst.ActiveVariant, fn)
				}
				return false
			}
		}
		fn(s.ID)
		return true
	})
}

// SetupClickReactions installs input handlers for the ON_CLICK and
// ON_PRESS reactions of nodeID. Each event type gets one handler, driven by
// the first reaction with that trigger. Installing again replaces the
// handlers rather than adding to them.
func (e *Engine) SetupClickReactions(nodeID string) {
	el := e.elements[nodeID]
	snap := e.nodes[nodeID]
	if el == nil || snap == nil {
		return
	}
	installed := make(map[EventType]bool)
	for _, r := range snap.Reactions {
		var ev EventType
		switch r.Trigger.Type {
		case TriggerClick:
			ev = EventClick
		case TriggerPress:
			ev = EventPointerDown
		default:
			continue
		}
		if installed[ev] {
			continue
		}
		installed[ev] = true
		dest := r.Action.DestinationID
		el.SetHandler(ev, func() {
			e.runReaction(nodeID, dest)
		})
	}
}

// runReaction executes an animation on behalf of a listener, where there
// is no caller to return an error to.
func (e *Engine) runReaction(sourceID, targetID string) {
	if _, err := e.ExecuteAnimation(sourceID, targetID); err != nil {
		Logger().Warn("reaction skipped", "from", sourceID, "to", targetID, "error", err)
	}
}

// cancelReactionTimers stops the timeout reactions scheduled for nodeID.
func (e *Engine) cancelReactionTimers(nodeID string) {
	for _, t := range e.reactionTimers[nodeID] {
		t.Stop()
	}
	delete(e.reactionTimers, nodeID)
}

// cancelShownTimers stops the timeout reactions of nodeID and of every
// descendant displayed with it.
func (e *Engine) cancelShownTimers(nodeID string) {
	e.walkShown(nodeID, e.cancelReactionTimers)
}

func (e *Engine) forgetReactionTimer(nodeID string, t *Timer) {
	timers := slices.DeleteFunc(e.reactionTimers[nodeID], func(x *Timer) bool { return x == t })
	if len(timers) == 0 {
		delete(e.reactionTimers, nodeID)
		return
	}
	e.reactionTimers[nodeID] = timers
}
