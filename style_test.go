package protoplay

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
)

func cardSnapshot() *Snapshot {
	icon := &Snapshot{ID: "icon", Name: "Icon", Type: NodeVector, Width: 10, Height: 10, Fills: []Fill{solid(0, 0, 0)}}
	label := at(frame("label", "Label", 40, 10), 5, 5)
	return frame("card", "Card", 100, 50, label, icon)
}

// --- Compile ---

func TestCompileChangeRootProperties(t *testing.T) {
	root := NewNode("div")
	loc := NodeLocator{}

	tests := []struct {
		name string
		c    Change
		want StyleChange
	}{
		{"opacity", Change{Property: PropOpacity, Target: OpacityValue(0.25)},
			StyleChange{Type: StyleOpacity, Value: "0.25", Target: root}},
		{"background", Change{Property: PropBackground, Target: FillsValue{solid(1, 0, 0)}},
			StyleChange{Type: StyleBackgroundColor, Value: "rgba(255, 0, 0, 1)", Target: root}},
		{"radius", Change{Property: PropBorderRadius, Target: RadiusValue(8)},
			StyleChange{Type: StyleBorderRadius, Value: "8px", Target: root}},
	}
	for _, tt := range tests {
		got := CompileChange(loc, root, tt.c)
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestCompileChangeNoMutation(t *testing.T) {
	root := BuildNode(cardSnapshot())
	loc := NodeLocator{}
	for _, c := range []Change{
		{Property: PropLayout, Target: LayoutValue{LayoutMode: LayoutHorizontal}},
		{Property: PropVectorPaths, Target: PathsValue{{Data: "M0 0"}}, ChildID: "icon"},
		{Property: PropSizing, Target: SizingValue{SizingFixed, SizingFixed}},
		{Property: PropBackground, Target: FillsValue{{Type: FillImage}}},
		{Property: PropChildOpacity, Target: OpacityValue(0), ChildID: "gone", ChildName: "Gone"},
	} {
		if got := CompileChange(loc, root, c); len(got) != 0 {
			t.Errorf("%s: got %+v, want none", c.Property, got)
		}
	}
}

func TestCompileSizing(t *testing.T) {
	root := NewNode("div")
	got := CompileChange(NodeLocator{}, root, Change{Property: PropSizing, Target: SizingValue{SizingFill, SizingHug}})
	want := []StyleChange{
		{Type: StyleWidth, Value: "100%", Target: root},
		{Type: StyleHeight, Value: "fit-content", Target: root},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCompileChildPosition(t *testing.T) {
	root := BuildNode(cardSnapshot())
	c := Change{
		Property:  PropChildPosition,
		Source:    PositionValue{5, 5},
		Target:    PositionValue{25, 0},
		ChildName: "Label",
		ChildID:   "label",
	}
	got := CompileChange(NodeLocator{}, root, c)
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
	if got[0].Value != "translate(20px, -5px)" {
		t.Errorf("Value = %q", got[0].Value)
	}
	if got[0].Target.Attr(AttrNodeID) != "label" {
		t.Errorf("Target id = %q, want label", got[0].Target.Attr(AttrNodeID))
	}
}

func TestCompileChildFallsBackToName(t *testing.T) {
	root := BuildNode(cardSnapshot())
	c := Change{Property: PropChildOpacity, Target: OpacityValue(0.5), ChildName: "Card/Label", ChildID: "other-variant-id"}
	got := CompileChange(NodeLocator{}, root, c)
	if len(got) != 1 || got[0].Target.Attr(AttrNodeID) != "label" {
		t.Errorf("got %+v, want the Label element", got)
	}
}

func TestCompileChildFillTargetsPath(t *testing.T) {
	root := BuildNode(cardSnapshot())
	c := Change{Property: PropChildFill, Target: FillsValue{solid(0, 0, 1)}, ChildName: "Icon", ChildID: "icon"}
	got := CompileChange(NodeLocator{}, root, c)
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
	if n := got[0].Target.(*Node); n.Tag != "path" {
		t.Errorf("Target tag = %q, want path", n.Tag)
	}
	if got[0].Value != "rgba(0, 0, 255, 1)" {
		t.Errorf("Value = %q", got[0].Value)
	}
}

func TestCompileChangesSkipsMissing(t *testing.T) {
	root := BuildNode(cardSnapshot())
	changes := []Change{
		{Property: PropChildOpacity, Target: OpacityValue(0.5), ChildName: "Nope", ChildID: "nope"},
		{Property: PropChildOpacity, Target: OpacityValue(0.5), ChildName: "Label", ChildID: "label"},
	}
	if got := CompileChanges(NodeLocator{}, root, changes); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

// --- Apply ---

func TestApplyStyleChange(t *testing.T) {
	n := NewNode("div")
	ApplyStyleChanges([]StyleChange{
		{Type: StyleSize, Width: 120, Height: 30, Target: n},
		{Type: StyleOpacity, Value: "0.5", Target: n},
		{Type: StyleBackgroundColor, Value: "rgba(0, 0, 0, 1)", Target: n},
		{Type: StyleTransform, Value: "translate(1px, 2px)", Target: n},
		{Type: StyleBorderRadius, Value: "3px", Target: n},
		{Type: StyleFill, Value: "#ffffff", Target: n},
	})
	want := map[string]string{
		"width": "120px", "height": "30px", "opacity": "0.5",
		"background-color": "rgba(0, 0, 0, 1)", "transform": "translate(1px, 2px)",
		"border-radius": "3px", "fill": "#ffffff",
	}
	for p, v := range want {
		if got := n.Style(p); got != v {
			t.Errorf("%s = %q, want %q", p, got, v)
		}
	}
	ApplyStyleChange(StyleChange{Type: StyleOpacity, Value: "1"}) // nil target is a no-op
}

// --- Formatting ---

func TestSolidColor(t *testing.T) {
	tests := []struct {
		fills []Fill
		want  string
		ok    bool
	}{
		{[]Fill{solid(1, 0.5, 0)}, "rgba(255, 128, 0, 1)", true},
		{[]Fill{{Type: FillSolid, Color: &RGB{B: 1}, Opacity: fptr(0.4)}}, "rgba(0, 0, 255, 0.4)", true},
		{[]Fill{{Type: FillSolid, Color: &RGB{}, Opacity: fptr(0)}}, "rgba(0, 0, 0, 1)", true},
		{[]Fill{{Type: FillImage}, solid(0, 1, 0)}, "rgba(0, 255, 0, 1)", true},
		{[]Fill{{Type: FillGradientLinear}}, "", false},
		{nil, "", false},
	}
	for _, tt := range tests {
		got, ok := solidColor(tt.fills)
		if got != tt.want || ok != tt.ok {
			t.Errorf("solidColor(%v) = %q, %v, want %q, %v", tt.fills, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCSSNumber(t *testing.T) {
	for v, want := range map[float64]string{0: "0", 1: "1", 0.5: "0.5", 12.25: "12.25", -3: "-3"} {
		if got := cssNumber(v); got != want {
			t.Errorf("cssNumber(%v) = %q, want %q", v, got, want)
		}
	}
}

// --- Transitions ---

func TestTransitionProperties(t *testing.T) {
	changes := []Change{
		{Property: PropChildPosition},
		{Property: PropSize},
		{Property: PropOpacity},
		{Property: PropSizing},
		{Property: PropChildFill},
	}
	want := []string{"transform", "opacity", "width", "height", "fill"}
	if got := TransitionProperties(changes); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := TransitionProperties(nil); got != nil {
		t.Errorf("empty: got %v", got)
	}
}

func TestTransitionDeclaration(t *testing.T) {
	opts := AnimationOptions{Duration: 0.3, Easing: "ease-out"}
	got := TransitionDeclaration([]string{"transform", "opacity"}, opts)
	want := "transform 0.3s ease-out, opacity 0.3s ease-out"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := TransitionDeclaration(nil, opts); got != "" {
		t.Errorf("empty: got %q", got)
	}
}

func TestSetupTransitions(t *testing.T) {
	root := BuildNode(cardSnapshot())
	loc := NodeLocator{}
	changes := []Change{
		{Property: PropOpacity, Target: OpacityValue(0.5)},
		{Property: PropChildPosition, ChildName: "Label", ChildID: "label"},
		{Property: PropChildFill, ChildName: "Icon", ChildID: "icon"},
	}
	opts := AnimationOptions{Duration: 1, Easing: "linear"}
	SetupTransitions(loc, root, changes, opts)

	if got, want := root.Style("transition"), "opacity 1s linear, transform 1s linear, fill 1s linear"; got != want {
		t.Errorf("root transition = %q, want %q", got, want)
	}
	label := loc.Descendant(root, "label")
	if got := label.Style("transition"); got != "transform 1s linear" {
		t.Errorf("label transition = %q", got)
	}
	icon := loc.Descendant(root, "icon")
	if got := icon.Style("transition"); got != "fill 1s linear" {
		t.Errorf("icon transition = %q", got)
	}
	if got := loc.VectorPath(icon).Style("transition"); got != "fill 1s linear" {
		t.Errorf("path transition = %q", got)
	}
}

// --- Filter ---

func TestFilterChanges(t *testing.T) {
	changes := []Change{
		{Property: PropSize},
		{Property: PropChildOpacity, ChildName: "Card/Label"},
		{Property: PropChildOpacity, ChildName: "Footer/Label"},
	}
	got, err := FilterChanges(changes, "Card/**")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ChildName != "Card/Label" {
		t.Errorf("Card/** = %v", got)
	}
	all, err := FilterChanges(changes, "**")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("** kept %d, want 3", len(all))
	}
	if _, err := FilterChanges(changes, "Card/[a"); !errors.Is(err, doublestar.ErrBadPattern) {
		t.Errorf("bad pattern error = %v", err)
	}
}

func TestChangeString(t *testing.T) {
	c := Change{Property: PropChildOpacity, Source: OpacityValue(1), Target: OpacityValue(0.5), ChildName: "A/B"}
	if got, want := c.String(), "childOpacity [A/B] 1 -> 0.5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !PropChildFill.IsChild() || PropSize.IsChild() {
		t.Error("IsChild misclassifies properties")
	}
}
