package protoplay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// ErrInvalidDocument is wrapped by every validation error LoadDocument
// returns.
var ErrInvalidDocument = errors.New("protoplay: invalid document")

// Document is an exported prototype: the top-level frames, the component
// instances whose variants can be switched, and optionally the frame the
// prototype starts on.
type Document struct {
	Roots     []*Snapshot        `json:"roots"`
	Instances []ResolvedInstance `json:"instances,omitempty"`
	Start     string             `json:"start,omitempty"`
}

// ResolvedInstance is a component instance with its variants resolved to
// snapshots. Instance is the instance node as it appears in Roots. Each
// variant is rendered in the instance's place; ActiveVariant is the one
// shown first and defaults to MainComponentID, then to the first variant.
type ResolvedInstance struct {
	Instance        *Snapshot   `json:"instance"`
	MainComponentID string      `json:"mainComponentId,omitempty"`
	ComponentSetID  string      `json:"componentSetId,omitempty"`
	Variants        []*Snapshot `json:"variants"`
	ActiveVariant   string      `json:"activeVariant,omitempty"`
}

// VariantIDs returns the ids of the instance's variants.
func (ri ResolvedInstance) VariantIDs() []string {
	ids := make([]string, 0, len(ri.Variants))
	for _, v := range ri.Variants {
		ids = append(ids, v.ID)
	}
	return ids
}

// active returns the id of the variant shown first.
func (ri ResolvedInstance) active() string {
	ids := ri.VariantIDs()
	if slices.Contains(ids, ri.ActiveVariant) {
		return ri.ActiveVariant
	}
	if slices.Contains(ids, ri.MainComponentID) {
		return ri.MainComponentID
	}
	if len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// Find returns the snapshot with the given id from the roots or from any
// instance's variants, or nil.
func (d *Document) Find(id string) *Snapshot {
	for _, r := range d.Roots {
		if s := r.Find(id); s != nil {
			return s
		}
	}
	for _, ri := range d.Instances {
		for _, v := range ri.Variants {
			if s := v.Find(id); s != nil {
				return s
			}
		}
	}
	return nil
}

// LoadDocument decodes and validates a JSON document.
func LoadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks that the document has at least one root, that every
// instance has an instance node and variants, and that node ids are unique
// across roots and variants.
func (d *Document) Validate() error {
	if len(d.Roots) == 0 {
		return fmt.Errorf("%w: no roots", ErrInvalidDocument)
	}
	seen := make(map[string]bool)
	check := func(s *Snapshot) error {
		var err error
		s.Walk(func(n *Snapshot) bool {
			if err != nil {
				return false
			}
			switch {
			case n.ID == "":
				err = fmt.Errorf("%w: node %q has no id", ErrInvalidDocument, n.Name)
			case seen[n.ID]:
				err = fmt.Errorf("%w: duplicate node id %q", ErrInvalidDocument, n.ID)
			}
			seen[n.ID] = true
			return err == nil
		})
		return err
	}
	for i, r := range d.Roots {
		if r == nil {
			return fmt.Errorf("%w: root %d is null", ErrInvalidDocument, i)
		}
		if err := check(r); err != nil {
			return err
		}
	}
	for i, ri := range d.Instances {
		if ri.Instance == nil || ri.Instance.ID == "" {
			return fmt.Errorf("%w: instance %d has no instance node", ErrInvalidDocument, i)
		}
		if len(ri.Variants) == 0 {
			return fmt.Errorf("%w: instance %q has no variants", ErrInvalidDocument, ri.Instance.ID)
		}
		for _, v := range ri.Variants {
			if v == nil {
				return fmt.Errorf("%w: instance %q has a null variant", ErrInvalidDocument, ri.Instance.ID)
			}
			if err := check(v); err != nil {
				return err
			}
		}
	}
	if d.Start != "" && !slices.ContainsFunc(d.Roots, func(r *Snapshot) bool { return r.ID == d.Start }) {
		return fmt.Errorf("%w: start %q is not a root", ErrInvalidDocument, d.Start)
	}
	return nil
}

// BuildNode renders a snapshot subtree into nodes. Every node carries the
// id and name attributes; vectors get a "path" child that holds their
// fill.
func BuildNode(snap *Snapshot) *Node {
	tag := "div"
	if snap.Type == NodeVector {
		tag = "svg"
	}
	n := NewNode(tag)
	n.Name = snap.Name
	n.SetAttr(AttrNodeID, snap.ID)
	n.SetAttr(AttrNodeName, snap.Name)
	n.SetPosition(snap.X, snap.Y)
	n.Text = snap.Characters

	v := Visual{
		Width:   snap.Width,
		Height:  snap.Height,
		Alpha:   snap.EffectiveOpacity(),
		Radius:  snap.CornerRadius,
		Visible: true,
	}
	paint, hasPaint := solidFill(snap.Fills)
	switch snap.Type {
	case NodeVector:
		path := NewNode("path")
		path.Name = snap.Name
		pv := Visual{Width: snap.Width, Height: snap.Height, Alpha: 1, Visible: true}
		if hasPaint {
			pv.Fill = paint
		}
		path.SetBase(pv)
		n.AddChild(path)
	case NodeText:
		if hasPaint {
			v.Fill = paint
		} else {
			v.Fill = Color{A: 1}
		}
	default:
		if hasPaint {
			v.Background = paint
		}
	}
	n.SetBase(v)

	for _, c := range snap.Children {
		n.AddChild(BuildNode(c))
	}
	return n
}

// solidFill returns the first SOLID fill as a Color. A missing or zero
// fill opacity counts as opaque.
func solidFill(fills []Fill) (Color, bool) {
	for _, f := range fills {
		if f.Type != FillSolid || f.Color == nil {
			continue
		}
		a := 1.0
		if f.Opacity != nil && *f.Opacity != 0 {
			a = *f.Opacity
		}
		return Color{R: f.Color.R, G: f.Color.G, B: f.Color.B, A: a}, true
	}
	return Color{}, false
}

// Mount renders doc under root and registers everything with the engine:
// each snapshot's element, each instance's variants placed where the
// instance sits, the click reactions of every node, and the timeout
// reactions of every node visible at start.
//
// Instance templates and inactive variants are hidden. When doc.Start is
// set, the other roots are hidden too.
func (e *Engine) Mount(doc *Document, root *Node) error {
	var order []string
	built := make(map[string]*Node)
	register := func(snap *Snapshot, n *Node) {
		byID := make(map[string]*Node)
		n.Walk(func(c *Node) bool {
			if id := c.NodeID(); id != "" {
				byID[id] = c
			}
			return true
		})
		snap.Walk(func(s *Snapshot) bool {
			if el := byID[s.ID]; el != nil {
				e.RegisterElement(s.ID, el, s)
				built[s.ID] = el
				order = append(order, s.ID)
			}
			return true
		})
	}

	var shown []string
	for _, r := range doc.Roots {
		n := BuildNode(r)
		root.AddChild(n)
		register(r, n)
		if doc.Start != "" && r.ID != doc.Start {
			n.SetStyle("display", "none")
			continue
		}
		shown = append(shown, r.ID)
	}

	for _, ri := range doc.Instances {
		tmpl, ok := built[ri.Instance.ID]
		if !ok {
			return fmt.Errorf("%w: instance %q is not in any root", ErrInvalidDocument, ri.Instance.ID)
		}
		parent := tmpl.Parent
		at := slices.Index(parent.Children(), tmpl) + 1
		active := ri.active()
		for _, v := range ri.Variants {
			vn := BuildNode(v)
			vn.SetPosition(tmpl.X, tmpl.Y)
			parent.AddChildAt(vn, at)
			at++
			register(v, vn)
			if v.ID != active {
				vn.SetStyle("display", "none")
			}
		}
		tmpl.SetStyle("display", "none")
		e.RegisterVariantInstances([]VariantInstance{{
			InstanceID:    ri.Instance.ID,
			Variants:      ri.VariantIDs(),
			ActiveVariant: active,
		}})
	}

	for _, id := range order {
		e.SetupClickReactions(id)
	}
	for _, id := range shown {
		e.setupShownTimeouts(id)
	}
	Logger().Debug("document mounted",
		"roots", len(doc.Roots), "instances", len(doc.Instances), "elements", len(order))
	return nil
}
