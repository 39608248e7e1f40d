package protoplay

// NodeType is the design tool's node kind.
type NodeType string

const (
	NodeFrame        NodeType = "FRAME"
	NodeGroup        NodeType = "GROUP"
	NodeComponent    NodeType = "COMPONENT"
	NodeComponentSet NodeType = "COMPONENT_SET"
	NodeInstance     NodeType = "INSTANCE"
	NodeText         NodeType = "TEXT"
	NodeVector       NodeType = "VECTOR"
	NodeRectangle    NodeType = "RECTANGLE"
	NodeEllipse      NodeType = "ELLIPSE"
)

// LayoutMode is the auto-layout direction of a frame.
type LayoutMode string

const (
	LayoutNone       LayoutMode = "NONE"
	LayoutHorizontal LayoutMode = "HORIZONTAL"
	LayoutVertical   LayoutMode = "VERTICAL"
)

// IsAuto reports whether the mode is an explicit auto-layout direction.
// The empty value (field absent) and NONE both report false.
func (m LayoutMode) IsAuto() bool {
	return m == LayoutHorizontal || m == LayoutVertical
}

// Align is an auto-layout alignment along one axis.
type Align string

const (
	AlignMin          Align = "MIN"
	AlignCenter       Align = "CENTER"
	AlignMax          Align = "MAX"
	AlignSpaceBetween Align = "SPACE_BETWEEN"
)

// Sizing is how a node sizes itself inside an auto-layout parent.
type Sizing string

const (
	SizingFixed Sizing = "FIXED"
	SizingFill  Sizing = "FILL"
	SizingHug   Sizing = "HUG"
)

// FillType is the kind of paint in a fill list.
type FillType string

const (
	FillSolid          FillType = "SOLID"
	FillGradientLinear FillType = "GRADIENT_LINEAR"
	FillGradientRadial FillType = "GRADIENT_RADIAL"
	FillImage          FillType = "IMAGE"
)

// RGB is a color with components in [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// GradientStop is one stop of a gradient fill. Position is in [0, 100].
type GradientStop struct {
	Position float64 `json:"position"`
	Color    RGB     `json:"color"`
}

// Fill is one paint in a node's fill list.
type Fill struct {
	Type          FillType       `json:"type"`
	Color         *RGB           `json:"color,omitempty"`
	Opacity       *float64       `json:"opacity,omitempty"`
	GradientStops []GradientStop `json:"gradientStops,omitempty"`
}

// VectorPath is one path of a vector node's geometry.
type VectorPath struct {
	WindingRule string `json:"windingRule,omitempty"`
	Data        string `json:"data"`
}

// TriggerType is what fires a reaction.
type TriggerType string

const (
	TriggerClick   TriggerType = "ON_CLICK"
	TriggerPress   TriggerType = "ON_PRESS"
	TriggerTimeout TriggerType = "AFTER_TIMEOUT"
	TriggerDrag    TriggerType = "ON_DRAG"
)

// TransitionType is how a reaction animates to its destination.
type TransitionType string

const (
	TransitionSmartAnimate TransitionType = "SMART_ANIMATE"
	TransitionDissolve     TransitionType = "DISSOLVE"
	TransitionInstant      TransitionType = "INSTANT"
)

// EasingType is the design tool's named easing.
type EasingType string

const (
	EasingLinear            EasingType = "LINEAR"
	EasingEaseIn            EasingType = "EASE_IN"
	EasingEaseOut           EasingType = "EASE_OUT"
	EasingEaseInAndOut      EasingType = "EASE_IN_AND_OUT"
	EasingEaseInBack        EasingType = "EASE_IN_BACK"
	EasingEaseOutBack       EasingType = "EASE_OUT_BACK"
	EasingEaseInAndOutBack  EasingType = "EASE_IN_AND_OUT_BACK"
	EasingGentle            EasingType = "GENTLE"
	EasingQuick             EasingType = "QUICK"
	EasingBouncy            EasingType = "BOUNCY"
	EasingSlow              EasingType = "SLOW"
	EasingCustomCubicBezier EasingType = "CUSTOM_CUBIC_BEZIER"
)

// CubicBezier holds the two control points of a custom easing curve.
type CubicBezier struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Easing selects the timing curve of a transition.
type Easing struct {
	Type        EasingType   `json:"type"`
	CubicBezier *CubicBezier `json:"easingFunctionCubicBezier,omitempty"`
}

// Transition describes how a reaction's destination is animated in.
// Duration is in seconds.
type Transition struct {
	Type     TransitionType `json:"type"`
	Duration float64        `json:"duration"`
	Easing   Easing         `json:"easing"`
}

// Trigger is the event side of a reaction. Timeout is in seconds and only
// meaningful for AFTER_TIMEOUT.
type Trigger struct {
	Type    TriggerType `json:"type"`
	Timeout float64     `json:"timeout,omitempty"`
}

// Action is the effect side of a reaction. A nil Transition means an
// instant switch.
type Action struct {
	DestinationID string      `json:"destinationId"`
	Transition    *Transition `json:"transition,omitempty"`
}

// Reaction is a declarative trigger to action rule.
type Reaction struct {
	Trigger Trigger `json:"trigger"`
	Action  Action  `json:"action"`
}

// Snapshot is the immutable description of one visual node: geometry,
// style, auto-layout flags, reactions and children. Snapshots are produced
// by the export step and never modified by the engine.
//
// Fills distinguishes an absent list (nil) from an empty one.
type Snapshot struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Type   NodeType `json:"type"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`

	Opacity      *float64 `json:"opacity,omitempty"`
	Fills        []Fill   `json:"fills"`
	CornerRadius float64  `json:"cornerRadius,omitempty"`

	LayoutMode             LayoutMode `json:"layoutMode,omitempty"`
	PrimaryAxisAlignItems  Align      `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems  Align      `json:"counterAxisAlignItems,omitempty"`
	ItemSpacing            float64    `json:"itemSpacing,omitempty"`
	PaddingLeft            float64    `json:"paddingLeft,omitempty"`
	PaddingRight           float64    `json:"paddingRight,omitempty"`
	PaddingTop             float64    `json:"paddingTop,omitempty"`
	PaddingBottom          float64    `json:"paddingBottom,omitempty"`
	LayoutSizingHorizontal Sizing     `json:"layoutSizingHorizontal,omitempty"`
	LayoutSizingVertical   Sizing     `json:"layoutSizingVertical,omitempty"`

	VectorPaths []VectorPath `json:"vectorPaths,omitempty"`
	Characters  string       `json:"characters,omitempty"`

	Reactions []Reaction  `json:"reactions,omitempty"`
	Children  []*Snapshot `json:"children,omitempty"`
}

// EffectiveOpacity returns Opacity, defaulting to 1 when absent.
func (s *Snapshot) EffectiveOpacity() float64 {
	if s.Opacity == nil {
		return 1
	}
	return *s.Opacity
}

// FirstReaction returns the first reaction, or nil if there are none.
func (s *Snapshot) FirstReaction() *Reaction {
	if s == nil || len(s.Reactions) == 0 {
		return nil
	}
	return &s.Reactions[0]
}

// Walk visits s and all its descendants in pre-order. Returning false from
// fn skips the node's children.
func (s *Snapshot) Walk(fn func(*Snapshot) bool) {
	if s == nil || !fn(s) {
		return
	}
	for _, c := range s.Children {
		c.Walk(fn)
	}
}

// Find returns the descendant (or s itself) with the given id.
func (s *Snapshot) Find(id string) *Snapshot {
	var found *Snapshot
	s.Walk(func(n *Snapshot) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// layoutProps extracts the eight auto-layout fields compared by the
// detector.
func (s *Snapshot) layoutProps() LayoutValue {
	return LayoutValue{
		LayoutMode:            s.LayoutMode,
		CounterAxisAlignItems: s.CounterAxisAlignItems,
		PrimaryAxisAlignItems: s.PrimaryAxisAlignItems,
		ItemSpacing:           s.ItemSpacing,
		PaddingLeft:           s.PaddingLeft,
		PaddingRight:          s.PaddingRight,
		PaddingTop:            s.PaddingTop,
		PaddingBottom:         s.PaddingBottom,
	}
}
