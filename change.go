package protoplay

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Property tags a detected Change. Properties without the "child" prefix
// describe the compared root itself; the others address a descendant.
type Property string

const (
	PropSize            Property = "size"
	PropOpacity         Property = "opacity"
	PropBackground      Property = "background"
	PropBorderRadius    Property = "borderRadius"
	PropLayout          Property = "layout"
	PropSizing          Property = "sizing"
	PropChildPosition   Property = "childPosition"
	PropChildSize       Property = "childSize"
	PropChildOpacity    Property = "childOpacity"
	PropChildBackground Property = "childBackground"
	PropChildFill       Property = "childFill"
	PropVectorPaths     Property = "vectorPaths"
)

// IsChild reports whether the property addresses a descendant.
func (p Property) IsChild() bool {
	switch p {
	case PropChildPosition, PropChildSize, PropChildOpacity,
		PropChildBackground, PropChildFill, PropVectorPaths:
		return true
	}
	return false
}

// Value is the payload of a Change. The concrete type is fixed by the
// Change's Property:
//
//	size, childSize            SizeValue
//	opacity, childOpacity      OpacityValue
//	background, childBackground, childFill  FillsValue
//	borderRadius               RadiusValue
//	layout                     LayoutValue
//	sizing                     SizingValue
//	childPosition              PositionValue
//	vectorPaths                PathsValue
type Value interface {
	isValue()
}

// SizeValue is a width/height pair in pixels.
type SizeValue struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PositionValue is a position relative to the parent, in pixels.
type PositionValue struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OpacityValue is an opacity in [0, 1].
type OpacityValue float64

// FillsValue is a complete fill list.
type FillsValue []Fill

// RadiusValue is a corner radius in pixels.
type RadiusValue float64

// LayoutValue is the full auto-layout property set of one side. It is not
// a per-field diff; consumers decide which fields to act on.
type LayoutValue struct {
	LayoutMode            LayoutMode `json:"layoutMode"`
	CounterAxisAlignItems Align      `json:"counterAxisAlignItems"`
	PrimaryAxisAlignItems Align      `json:"primaryAxisAlignItems"`
	ItemSpacing           float64    `json:"itemSpacing"`
	PaddingLeft           float64    `json:"paddingLeft"`
	PaddingRight          float64    `json:"paddingRight"`
	PaddingTop            float64    `json:"paddingTop"`
	PaddingBottom         float64    `json:"paddingBottom"`
}

// SizingValue is the pair of auto-layout sizing modes.
type SizingValue struct {
	Horizontal Sizing `json:"horizontal"`
	Vertical   Sizing `json:"vertical"`
}

// PathsValue is a vector node's path list.
type PathsValue []VectorPath

func (SizeValue) isValue()     {}
func (PositionValue) isValue() {}
func (OpacityValue) isValue()  {}
func (FillsValue) isValue()    {}
func (RadiusValue) isValue()   {}
func (LayoutValue) isValue()   {}
func (SizingValue) isValue()   {}
func (PathsValue) isValue()    {}

// Change is one observed property delta between a source and target
// snapshot. Child changes carry the source child's id and its slash-joined
// name path relative to the compared root; the id is tried first when
// resolving the element, the last path segment second.
type Change struct {
	Property  Property `json:"property"`
	Source    Value    `json:"sourceValue"`
	Target    Value    `json:"targetValue"`
	ChildName string   `json:"childName,omitempty"`
	ChildID   string   `json:"childId,omitempty"`
}

// String formats the change for logs and the diff command.
func (c Change) String() string {
	var b strings.Builder
	b.WriteString(string(c.Property))
	if c.ChildName != "" {
		b.WriteString(" [")
		b.WriteString(c.ChildName)
		b.WriteString("]")
	}
	fmt.Fprintf(&b, " %v -> %v", c.Source, c.Target)
	return b.String()
}

// childKey identifies the element a child change addresses.
func (c Change) childKey() string {
	if c.ChildID != "" {
		return "#" + c.ChildID
	}
	return c.ChildName
}

// lastSegment returns the final element of a slash-joined name path.
func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// FilterChanges returns the changes whose child path matches the doublestar
// glob pattern. Root-level changes match the empty path, so "**" keeps
// everything and "Card/**" keeps only changes under Card.
func FilterChanges(changes []Change, pattern string) ([]Change, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("filter changes %q: %w", pattern, doublestar.ErrBadPattern)
	}
	var out []Change
	for _, c := range changes {
		if ok, _ := doublestar.Match(pattern, c.ChildName); ok {
			out = append(out, c)
		}
	}
	return out, nil
}
