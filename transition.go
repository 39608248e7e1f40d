package protoplay

import "strings"

// transitionProperties maps each change kind to the CSS properties that
// must transition for it to animate.
var transitionProperties = map[Property][]string{
	PropChildPosition:   {"transform"},
	PropSize:            {"transform"},
	PropChildSize:       {"transform"},
	PropOpacity:         {"opacity"},
	PropChildOpacity:    {"opacity"},
	PropBackground:      {"background-color"},
	PropChildBackground: {"background-color"},
	PropChildFill:       {"fill"},
	PropBorderRadius:    {"border-radius"},
	PropSizing:          {"width", "height"},
	PropLayout:          {"all"},
}

// TransitionProperties returns the CSS properties the changes need to
// transition, deduplicated, in order of first appearance.
func TransitionProperties(changes []Change) []string {
	var props []string
	seen := make(map[string]bool)
	for _, c := range changes {
		for _, p := range transitionProperties[c.Property] {
			if !seen[p] {
				seen[p] = true
				props = append(props, p)
			}
		}
	}
	return props
}

// TransitionDeclaration builds a CSS transition value such as
// "transform 0.3s ease-out, opacity 0.3s ease-out".
func TransitionDeclaration(props []string, opts AnimationOptions) string {
	if len(props) == 0 {
		return ""
	}
	parts := make([]string, len(props))
	suffix := " " + cssNumber(opts.Duration) + "s " + opts.Easing
	for i, p := range props {
		parts[i] = p + suffix
	}
	return strings.Join(parts, ", ")
}

// SetupTransitions installs transition declarations before any value is
// mutated. The root element gets the properties of the whole change set;
// every addressed descendant then gets only the properties of its own
// changes. A childFill also puts the declaration on the child's vector
// path, which is where the fill is written.
func SetupTransitions(loc Locator, root Element, changes []Change, opts AnimationOptions) {
	if decl := TransitionDeclaration(TransitionProperties(changes), opts); decl != "" {
		root.SetStyle("transition", decl)
	}

	var keys []string
	groups := make(map[string][]Change)
	for _, c := range changes {
		if !c.Property.IsChild() {
			continue
		}
		k := c.childKey()
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], c)
	}

	for _, k := range keys {
		own := groups[k]
		el := findChild(loc, root, own[0])
		if el == nil {
			continue
		}
		decl := TransitionDeclaration(TransitionProperties(own), opts)
		if decl == "" {
			continue
		}
		el.SetStyle("transition", decl)
		for _, c := range own {
			if c.Property != PropChildFill {
				continue
			}
			if path := loc.VectorPath(el); path != nil {
				path.SetStyle("transition", decl)
			}
			break
		}
	}
}
