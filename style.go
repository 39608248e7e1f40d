package protoplay

import (
	"fmt"
	"math"
	"strconv"
)

// StyleType is the kind of mutation a StyleChange performs.
type StyleType string

const (
	StyleTransform       StyleType = "transform"
	StyleSize            StyleType = "size"
	StyleOpacity         StyleType = "opacity"
	StyleBackgroundColor StyleType = "backgroundColor"
	StyleFill            StyleType = "fill"
	StyleBorderRadius    StyleType = "borderRadius"
	StyleChildSize       StyleType = "childSize"
	StyleWidth           StyleType = "width"
	StyleHeight          StyleType = "height"
)

// StyleChange is a resolved, not yet applied mutation: the element it
// targets and the value to write. Width and Height are used by the size
// types, Value by the others.
type StyleChange struct {
	Type   StyleType
	Value  string
	Width  float64
	Height float64
	Target Element
}

// CompileChange resolves the element a change addresses under root and
// the concrete value to write, without writing it. Compiling every change
// of a batch before applying any of them keeps the reads of one change
// from observing the writes of another.
//
// The result is empty when the change maps to no mutation (layout,
// vectorPaths, FIXED sizing, a fill list without a SOLID paint) or when the
// addressed element cannot be found.
func CompileChange(loc Locator, root Element, c Change) []StyleChange {
	switch c.Property {
	case PropSize:
		if v, ok := c.Target.(SizeValue); ok {
			return []StyleChange{{Type: StyleSize, Width: v.Width, Height: v.Height, Target: root}}
		}
	case PropOpacity:
		if v, ok := c.Target.(OpacityValue); ok {
			return []StyleChange{{Type: StyleOpacity, Value: cssNumber(float64(v)), Target: root}}
		}
	case PropBackground:
		if v, ok := c.Target.(FillsValue); ok {
			if color, ok := solidColor(v); ok {
				return []StyleChange{{Type: StyleBackgroundColor, Value: color, Target: root}}
			}
		}
	case PropBorderRadius:
		if v, ok := c.Target.(RadiusValue); ok {
			return []StyleChange{{Type: StyleBorderRadius, Value: cssPixels(float64(v)), Target: root}}
		}
	case PropSizing:
		if v, ok := c.Target.(SizingValue); ok {
			return compileSizing(root, v)
		}
	case PropChildPosition:
		from, ok1 := c.Source.(PositionValue)
		to, ok2 := c.Target.(PositionValue)
		if !ok1 || !ok2 {
			return nil
		}
		el := findChild(loc, root, c)
		if el == nil {
			return nil
		}
		return []StyleChange{{Type: StyleTransform, Value: cssTranslate(to.X-from.X, to.Y-from.Y), Target: el}}
	case PropChildSize:
		v, ok := c.Target.(SizeValue)
		if !ok {
			return nil
		}
		if el := findChild(loc, root, c); el != nil {
			return []StyleChange{{Type: StyleChildSize, Width: v.Width, Height: v.Height, Target: el}}
		}
	case PropChildOpacity:
		v, ok := c.Target.(OpacityValue)
		if !ok {
			return nil
		}
		if el := findChild(loc, root, c); el != nil {
			return []StyleChange{{Type: StyleOpacity, Value: cssNumber(float64(v)), Target: el}}
		}
	case PropChildBackground:
		v, ok := c.Target.(FillsValue)
		if !ok {
			return nil
		}
		color, ok := solidColor(v)
		if !ok {
			return nil
		}
		if el := findChild(loc, root, c); el != nil {
			return []StyleChange{{Type: StyleBackgroundColor, Value: color, Target: el}}
		}
	case PropChildFill:
		v, ok := c.Target.(FillsValue)
		if !ok {
			return nil
		}
		color, ok := solidColor(v)
		if !ok {
			return nil
		}
		el := findChild(loc, root, c)
		if el == nil {
			return nil
		}
		if path := loc.VectorPath(el); path != nil {
			return []StyleChange{{Type: StyleFill, Value: color, Target: path}}
		}
	}
	return nil
}

// compileSizing maps FILL to 100% and HUG to fit-content on each axis.
// FIXED is assumed to be correct already.
func compileSizing(el Element, v SizingValue) []StyleChange {
	var out []StyleChange
	if s, ok := sizingValue(v.Horizontal); ok {
		out = append(out, StyleChange{Type: StyleWidth, Value: s, Target: el})
	}
	if s, ok := sizingValue(v.Vertical); ok {
		out = append(out, StyleChange{Type: StyleHeight, Value: s, Target: el})
	}
	return out
}

func sizingValue(s Sizing) (string, bool) {
	switch s {
	case SizingFill:
		return "100%", true
	case SizingHug:
		return "fit-content", true
	}
	return "", false
}

// solidColor formats the first SOLID fill of the list as an rgba() color.
// A missing or zero fill opacity is written as 1.
func solidColor(fills []Fill) (string, bool) {
	c, ok := solidFill(fills)
	if !ok {
		return "", false
	}
	return cssRGBA(RGB{R: c.R, G: c.G, B: c.B}, c.A), true
}

// cssNumber formats a number the way a JavaScript template literal does:
// shortest representation, no trailing zeros.
func cssNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cssPixels(v float64) string {
	return cssNumber(v) + "px"
}

func cssTranslate(dx, dy float64) string {
	return "translate(" + cssPixels(dx) + ", " + cssPixels(dy) + ")"
}

func cssRGBA(c RGB, a float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		int(math.Round(c.R*255)), int(math.Round(c.G*255)), int(math.Round(c.B*255)), cssNumber(a))
}
