package protoplay

import "slices"

// VariantInstance is a group of mutually exclusive variant elements placed
// for one component instance. InstanceID names the template element, a
// layout anchor that is never shown. Exactly one of Variants is active.
type VariantInstance struct {
	InstanceID    string   `json:"instanceId"`
	Variants      []string `json:"variants"`
	ActiveVariant string   `json:"activeVariant"`
	CurrentIndex  int      `json:"currentIndex"`
}

// Has reports whether id is one of the instance's variants.
func (v *VariantInstance) Has(id string) bool {
	return slices.Contains(v.Variants, id)
}

// VariantRegistry holds the registered variant instances in registration
// order.
type VariantRegistry struct {
	instances []*VariantInstance
}

// Register adds an instance. An ActiveVariant that is empty or not one of
// Variants defaults to the first variant; CurrentIndex is derived from
// ActiveVariant.
func (r *VariantRegistry) Register(inst VariantInstance) *VariantInstance {
	v := &inst
	v.Variants = slices.Clone(inst.Variants)
	if len(v.Variants) > 0 && !v.Has(v.ActiveVariant) {
		if v.ActiveVariant != "" {
			Logger().Warn("active variant not in instance, using first",
				"instance", v.InstanceID, "active", v.ActiveVariant, "first", v.Variants[0])
		}
		v.ActiveVariant = v.Variants[0]
	}
	v.CurrentIndex = max(slices.Index(v.Variants, v.ActiveVariant), 0)
	r.instances = append(r.instances, v)
	return v
}

// Find returns the first instance that has id as a variant or as its
// template, or nil.
func (r *VariantRegistry) Find(id string) *VariantInstance {
	for _, v := range r.instances {
		if v.InstanceID == id || v.Has(id) {
			return v
		}
	}
	return nil
}

// Template returns the instance whose template is id, or nil.
func (r *VariantRegistry) Template(id string) *VariantInstance {
	for _, v := range r.instances {
		if v.InstanceID == id {
			return v
		}
	}
	return nil
}

// FindByTarget returns the first instance that has id as a variant, or nil.
// Unlike Find it ignores templates.
func (r *VariantRegistry) FindByTarget(id string) *VariantInstance {
	for _, v := range r.instances {
		if v.Has(id) {
			return v
		}
	}
	return nil
}

// Instances returns the registered instances. The returned slice MUST NOT
// be mutated by the caller.
func (r *VariantRegistry) Instances() []*VariantInstance {
	return r.instances
}

// Clear removes every instance.
func (r *VariantRegistry) Clear() {
	r.instances = nil
}

// capturedProps are the inline properties saved before a smart animation
// and written back once it ends.
var capturedProps = []string{
	"transition", "transform", "opacity", "background-color", "fill",
	"border-radius", "width", "height", "display",
}

type elementState struct {
	el     Element
	values []string
}

// styleState is a saved set of inline declarations.
type styleState []elementState

// captureState saves the captured properties of el, its addressable
// descendants and their vector paths.
func captureState(loc Locator, el Element) styleState {
	var st styleState
	save := func(e Element) {
		vals := make([]string, len(capturedProps))
		for i, p := range capturedProps {
			vals[i] = e.Style(p)
		}
		st = append(st, elementState{el: e, values: vals})
		if path := loc.VectorPath(e); path != nil {
			pv := make([]string, len(capturedProps))
			for i, p := range capturedProps {
				pv[i] = path.Style(p)
			}
			st = append(st, elementState{el: path, values: pv})
		}
	}
	save(el)
	for _, d := range loc.Descendants(el) {
		save(d)
	}
	return st
}

// restore writes the saved declarations back, transition first so the
// others land under the saved transition rather than the current one.
func (st styleState) restore() {
	for _, s := range st {
		for i, p := range capturedProps {
			s.el.SetStyle(p, s.values[i])
		}
	}
}

// resetElement clears transition, transform and opacity on el and its
// addressable descendants.
func resetElement(loc Locator, el Element) {
	clearMotion(el)
	for _, d := range loc.Descendants(el) {
		clearMotion(d)
	}
}

func clearMotion(el Element) {
	el.SetStyle("transition", "")
	el.SetStyle("transform", "")
	el.SetStyle("opacity", "")
}

// forceShow makes el visible with writes no transition can override.
func forceShow(el Element) {
	el.SetStyleImportant("display", "block")
	el.SetStyleImportant("opacity", "1")
	el.SetStyleImportant("transform", "none")
}

// animateVariant animates inst from its active variant to targetID. The
// timing comes from the first reaction of sourceID, which is the node the
// trigger fired on and may be the template or a nested child rather than
// the active variant itself.
func (e *Engine) animateVariant(inst *VariantInstance, sourceID, targetID string) (*Animation, error) {
	fromID := inst.ActiveVariant
	fromEl, fromSnap, err := e.lookup(fromID)
	if err != nil {
		return nil, err
	}
	toEl, toSnap, err := e.lookup(targetID)
	if err != nil {
		return nil, err
	}
	opts := OptionsFromReaction(e.nodes[sourceID].FirstReaction())

	if tmpl := e.elements[inst.InstanceID]; tmpl != nil && inst.InstanceID != fromID {
		tmpl.SetStyle("display", "none")
	}

	key := inst.InstanceID
	e.cancelPending(key)
	e.cancelShownTimers(fromID)
	if sourceID != fromID {
		e.cancelReactionTimers(sourceID)
	}

	a := &Animation{SourceID: fromID, TargetID: targetID, Options: opts, Instance: inst, key: key}
	e.pending[key] = a
	Logger().Debug("animate variant",
		"instance", inst.InstanceID, "from", fromID, "to", targetID,
		"type", opts.TransitionType, "duration", opts.Duration)

	done := func() {
		e.switchVariant(inst, fromID, targetID)
		e.finish(a)
	}

	switch opts.TransitionType {
	case TransitionSmartAnimate:
		a.Changes = DetectChanges(fromSnap, toSnap)
		state := captureState(e.loc, fromEl)
		a.rollback = state.restore
		SetupTransitions(e.loc, fromEl, a.Changes, opts)
		a.track(e.sched.NextFrame(func() {
			ApplyStyleChanges(CompileChanges(e.loc, fromEl, a.Changes))
			a.track(e.sched.AfterFunc(opts.delay(), func() {
				state.restore()
				done()
			}))
		}))
	case TransitionDissolve:
		e.crossFade(a, fromEl, toEl, opts, done)
	default:
		done()
	}
	return a, nil
}

// crossFade fades from out and to in over the animation's duration, then
// calls done.
func (e *Engine) crossFade(a *Animation, from, to Element, opts AnimationOptions, done func()) {
	state := append(captureState(e.loc, from), captureState(e.loc, to)...)
	a.rollback = state.restore

	to.SetStyle("display", "block")
	to.SetStyle("opacity", "0")
	decl := TransitionDeclaration([]string{"opacity"}, opts)
	from.SetStyle("transition", decl)
	to.SetStyle("transition", decl)
	a.track(e.sched.NextFrame(func() {
		from.SetStyle("opacity", "0")
		to.SetStyle("opacity", "1")
		a.track(e.sched.AfterFunc(opts.delay(), done))
	}))
}

// switchVariant makes targetID the only visible variant of inst.
func (e *Engine) switchVariant(inst *VariantInstance, fromID, targetID string) {
	if src := e.elements[fromID]; src != nil {
		resetElement(e.loc, src)
	}
	for _, id := range inst.Variants {
		if el := e.elements[id]; el != nil {
			el.SetStyle("display", "none")
		}
	}
	if tgt := e.elements[targetID]; tgt != nil {
		forceShow(tgt)
	}
	inst.ActiveVariant = targetID
	if i := slices.Index(inst.Variants, targetID); i >= 0 {
		inst.CurrentIndex = i
	}
	Logger().Debug("switched variant", "instance", inst.InstanceID, "active", targetID)
}
