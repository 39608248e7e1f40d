package protoplay

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tanema/gween/ease"
)

// AnimationOptions are the timing parameters of one animation.
// Duration is in seconds; Easing is a CSS timing function.
type AnimationOptions struct {
	Duration       float64
	Easing         string
	TransitionType TransitionType
}

// defaultEasing is used when a transition names no known easing.
const defaultEasing = "ease-out"

// instantOptions switch without animating.
var instantOptions = AnimationOptions{Easing: defaultEasing, TransitionType: TransitionInstant}

// OptionsFromReaction derives animation options from a reaction. A nil
// reaction or one without a transition yields an instant, zero-length
// switch.
func OptionsFromReaction(r *Reaction) AnimationOptions {
	if r == nil || r.Action.Transition == nil {
		return instantOptions
	}
	t := r.Action.Transition
	typ := t.Type
	if typ == "" {
		typ = TransitionInstant
	}
	d := t.Duration
	if d < 0 {
		d = 0
	}
	return AnimationOptions{
		Duration:       d,
		Easing:         CSSEasing(t.Easing),
		TransitionType: typ,
	}
}

// delay converts the duration to a scheduler delay.
func (o AnimationOptions) delay() time.Duration {
	return secondsToDuration(o.Duration)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// CSSEasing maps the design tool's named easing to a CSS timing function.
func CSSEasing(e Easing) string {
	switch e.Type {
	case EasingLinear:
		return "linear"
	case EasingEaseIn:
		return "ease-in"
	case EasingEaseOut:
		return "ease-out"
	case EasingEaseInAndOut:
		return "ease-in-out"
	case EasingEaseInBack:
		return "cubic-bezier(0.3, -0.05, 0.7, -0.5)"
	case EasingEaseOutBack:
		return "cubic-bezier(0.45, 1.45, 0.8, 1)"
	case EasingEaseInAndOutBack:
		return "cubic-bezier(0.7, -0.4, 0.4, 1.4)"
	case EasingGentle:
		return "cubic-bezier(0.25, 0.1, 0.25, 1)"
	case EasingQuick:
		return "cubic-bezier(0.2, 0, 0, 1)"
	case EasingBouncy:
		return "cubic-bezier(0.34, 1.56, 0.64, 1)"
	case EasingSlow:
		return "cubic-bezier(0.65, 0, 0.35, 1)"
	case EasingCustomCubicBezier:
		if b := e.CubicBezier; b != nil {
			return "cubic-bezier(" + cssNumber(b.X1) + ", " + cssNumber(b.Y1) + ", " +
				cssNumber(b.X2) + ", " + cssNumber(b.Y2) + ")"
		}
	}
	return defaultEasing
}

// EasingFunc returns the gween easing function for a CSS timing function.
// Unknown values fall back to CSS "ease".
func EasingFunc(css string) ease.TweenFunc {
	css = strings.TrimSpace(css)
	switch css {
	case "linear":
		return ease.Linear
	case "ease-in":
		return cubicBezier(0.42, 0, 1, 1)
	case "ease-out":
		return cubicBezier(0, 0, 0.58, 1)
	case "ease-in-out":
		return cubicBezier(0.42, 0, 0.58, 1)
	}
	if args, ok := strings.CutPrefix(css, "cubic-bezier("); ok {
		args = strings.TrimSuffix(args, ")")
		parts := strings.Split(args, ",")
		if len(parts) == 4 {
			var v [4]float64
			valid := true
			for i, p := range parts {
				f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
				if err != nil {
					valid = false
					break
				}
				v[i] = f
			}
			if valid {
				return cubicBezier(v[0], v[1], v[2], v[3])
			}
		}
	}
	return cubicBezier(0.25, 0.1, 0.25, 1)
}

// cubicBezier builds a tween function for the CSS curve with control points
// (x1, y1) and (x2, y2). Progress is solved for x with Newton iterations,
// falling back to bisection when the slope is too flat.
func cubicBezier(x1, y1, x2, y2 float64) ease.TweenFunc {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solve := func(x float64) float64 {
		t := x
		for i := 0; i < 8; i++ {
			dx := sampleX(t) - x
			if math.Abs(dx) < 1e-7 {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= dx / d
		}
		lo, hi := 0.0, 1.0
		t = x
		for lo < hi {
			v := sampleX(t)
			if math.Abs(v-x) < 1e-7 {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			next := (lo + hi) / 2
			if next == t {
				break
			}
			t = next
		}
		return t
	}

	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		x := float64(t / d)
		if x <= 0 {
			return b
		}
		if x >= 1 {
			return b + c
		}
		return b + c*float32(sampleY(solve(x)))
	}
}
