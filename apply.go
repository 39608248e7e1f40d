package protoplay

// ApplyStyleChange writes a compiled mutation to its target element.
func ApplyStyleChange(sc StyleChange) {
	if sc.Target == nil {
		return
	}
	switch sc.Type {
	case StyleTransform:
		sc.Target.SetStyle("transform", sc.Value)
	case StyleSize, StyleChildSize:
		sc.Target.SetStyle("width", cssPixels(sc.Width))
		sc.Target.SetStyle("height", cssPixels(sc.Height))
	case StyleOpacity:
		sc.Target.SetStyle("opacity", sc.Value)
	case StyleBackgroundColor:
		sc.Target.SetStyle("background-color", sc.Value)
	case StyleFill:
		sc.Target.SetStyle("fill", sc.Value)
	case StyleBorderRadius:
		sc.Target.SetStyle("border-radius", sc.Value)
	case StyleWidth:
		sc.Target.SetStyle("width", sc.Value)
	case StyleHeight:
		sc.Target.SetStyle("height", sc.Value)
	}
}

// ApplyStyleChanges writes a whole batch in order. Callers run it inside a
// single scheduler tick so every mutation of the batch starts together.
func ApplyStyleChanges(batch []StyleChange) {
	for _, sc := range batch {
		ApplyStyleChange(sc)
	}
}

// CompileChanges compiles every change of a list against root. Changes
// whose target cannot be found are dropped without affecting the others.
func CompileChanges(loc Locator, root Element, changes []Change) []StyleChange {
	var out []StyleChange
	for _, c := range changes {
		out = append(out, CompileChange(loc, root, c)...)
	}
	return out
}

// ApplyChange resolves and writes a single change in one step. It is the
// simple path used when a change does not need to be synchronised with
// others.
func ApplyChange(loc Locator, root Element, c Change) {
	for _, sc := range CompileChange(loc, root, c) {
		ApplyStyleChange(sc)
	}
}
