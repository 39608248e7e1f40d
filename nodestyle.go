package protoplay

import (
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"github.com/tanema/gween/ease"
)

// transitionSpec is one entry of a node's transition declaration.
type transitionSpec struct {
	duration float32
	easing   ease.TweenFunc
}

// parseTransition parses a CSS transition value into per-property
// entries. Entries that do not parse are skipped.
func parseTransition(v string) map[string]transitionSpec {
	out := make(map[string]transitionSpec)
	for _, item := range splitTopLevel(v) {
		fields := strings.Fields(item)
		if len(fields) < 2 {
			continue
		}
		d, ok := parseSeconds(fields[1])
		if !ok {
			continue
		}
		easing := "ease"
		if len(fields) > 2 {
			easing = strings.Join(fields[2:], " ")
		}
		out[fields[0]] = transitionSpec{duration: float32(d), easing: EasingFunc(easing)}
	}
	return out
}

// splitTopLevel splits on commas that are not inside parentheses.
func splitTopLevel(v string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range v {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(v[start:i]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(v[start:]); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

func parseSeconds(v string) (float64, bool) {
	if s, ok := strings.CutSuffix(v, "ms"); ok {
		f, err := strconv.ParseFloat(s, 64)
		return f / 1000, err == nil
	}
	if s, ok := strings.CutSuffix(v, "s"); ok {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// transitionFor returns the transition covering prop, if any.
func (n *Node) transitionFor(prop string) (transitionSpec, bool) {
	if s, ok := n.transitions[prop]; ok {
		return s, true
	}
	s, ok := n.transitions["all"]
	return s, ok
}

// applyStyle recomputes the visual state driven by prop from its inline
// declaration, or from the base state when there is none. With animate
// set, a property covered by the transition declaration starts a tween
// from its current value instead of jumping.
func (n *Node) applyStyle(prop string, animate bool) {
	v := n.Style(prop)
	c := &n.computed
	switch prop {
	case "transition":
		if v == "" {
			n.transitions = nil
		} else {
			n.transitions = parseTransition(v)
		}
	case "display":
		switch v {
		case "":
			c.Visible = n.base.Visible
		case "none":
			c.Visible = false
		default:
			c.Visible = true
		}
	case "transform":
		tx, ty := n.base.TranslateX, n.base.TranslateY
		if v == "none" {
			tx, ty = 0, 0
		} else if x, y, ok := parseTranslate(v); ok {
			tx, ty = x, y
		}
		n.moveTo(prop, animate, []*float64{&c.TranslateX, &c.TranslateY}, []float64{tx, ty})
	case "opacity":
		a := n.base.Alpha
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			a = min(max(f, 0), 1)
		}
		n.moveTo(prop, animate, []*float64{&c.Alpha}, []float64{a})
	case "background-color":
		col := n.base.Background
		if p, ok := parseColor(v); ok {
			col = p
		}
		n.moveTo(prop, animate, colorFields(&c.Background), colorValues(col))
	case "fill":
		col := n.base.Fill
		if p, ok := parseColor(v); ok {
			col = p
		}
		n.moveTo(prop, animate, colorFields(&c.Fill), colorValues(col))
	case "border-radius":
		r := n.base.Radius
		if f, ok := parsePixels(v); ok {
			r = f
		}
		n.moveTo(prop, animate, []*float64{&c.Radius}, []float64{r})
	case "width":
		n.moveTo(prop, animate, []*float64{&c.Width}, []float64{n.resolveLength(v, true)})
	case "height":
		n.moveTo(prop, animate, []*float64{&c.Height}, []float64{n.resolveLength(v, false)})
	}
}

// moveTo sets fields to values, through a tween when animate is set and
// prop is transitioned. A tween already running for prop is replaced; the
// new one starts from wherever the old one had got to.
func (n *Node) moveTo(prop string, animate bool, fields []*float64, values []float64) {
	delete(n.tweens, prop)
	spec, ok := n.transitionFor(prop)
	if !animate || !ok || spec.duration <= 0 || atValues(fields, values) {
		for i, f := range fields {
			*f = values[i]
		}
		return
	}
	if n.tweens == nil {
		n.tweens = make(map[string]*styleTween)
	}
	n.tweens[prop] = newStyleTween(fields, values, spec.duration, spec.easing)
}

func atValues(fields []*float64, values []float64) bool {
	for i, f := range fields {
		if *f != values[i] {
			return false
		}
	}
	return true
}

func colorFields(c *Color) []*float64 {
	return []*float64{&c.R, &c.G, &c.B, &c.A}
}

func colorValues(c Color) []float64 {
	return []float64{c.R, c.G, c.B, c.A}
}

// resolveLength resolves a width (horizontal) or height declaration.
// Percentages are of the parent's computed size; fit-content and auto
// wrap the children.
func (n *Node) resolveLength(v string, horizontal bool) float64 {
	base := n.base.Height
	if horizontal {
		base = n.base.Width
	}
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return base
	case v == "fit-content" || v == "auto":
		if len(n.children) == 0 {
			return base
		}
		var extent float64
		for _, c := range n.children {
			if horizontal {
				extent = max(extent, c.X+c.computed.Width)
			} else {
				extent = max(extent, c.Y+c.computed.Height)
			}
		}
		return extent
	case strings.HasSuffix(v, "%"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil || n.Parent == nil {
			return base
		}
		if horizontal {
			return n.Parent.computed.Width * f / 100
		}
		return n.Parent.computed.Height * f / 100
	}
	if f, ok := parsePixels(v); ok {
		return f
	}
	return base
}

// parsePixels accepts "12px" and a bare "12".
func parsePixels(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	return f, err == nil
}

// parseTranslate accepts "translate(12px, -4px)".
func parseTranslate(v string) (x, y float64, ok bool) {
	args, ok := cssFunctionArgs(v, "translate")
	if !ok || len(args) != 2 {
		return 0, 0, false
	}
	x, okX := parsePixels(args[0])
	y, okY := parsePixels(args[1])
	return x, y, okX && okY
}

// parseColor accepts any CSS color: rgb(), rgba(), hex, hsl(), named
// colors and transparent.
func parseColor(v string) (Color, bool) {
	c, err := csscolorparser.Parse(strings.TrimSpace(v))
	if err != nil {
		return Color{}, false
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, true
}

// cssFunctionArgs splits "name(a, b)" into its arguments.
func cssFunctionArgs(v, name string) ([]string, bool) {
	rest, ok := strings.CutPrefix(v, name+"(")
	if !ok {
		return nil, false
	}
	rest, ok = strings.CutSuffix(rest, ")")
	if !ok {
		return nil, false
	}
	args := strings.Split(rest, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return args, true
}
