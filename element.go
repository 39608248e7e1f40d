package protoplay

// Attribute keys the renderer puts on every element it creates for a
// snapshot. The engine finds descendants through them.
const (
	AttrNodeID   = "data-node-id"
	AttrNodeName = "data-node-name"
)

// Element is a renderable handle the engine writes inline styles to.
//
// Style property names are CSS names ("transform", "background-color").
// Setting a value to the empty string removes the declaration.
// SetStyleImportant writes with the highest priority available: the value
// takes effect immediately and any transition still in flight for that
// property is discarded.
//
// SetHandler installs the callback for one event type, replacing any
// previous one, like assigning an element's onclick property. A nil fn
// removes it.
type Element interface {
	Style(prop string) string
	SetStyle(prop, value string)
	SetStyleImportant(prop, value string)
	Attr(key string) string
	SetHandler(ev EventType, fn func())
}

// Locator finds elements inside a rendered subtree. It is supplied by the
// renderer; the engine only calls through it. Every method returns nil
// when nothing matches.
type Locator interface {
	// Descendant returns the descendant of root whose node id is id.
	Descendant(root Element, id string) Element
	// DescendantByAttr returns the first descendant of root, in document
	// order, whose attribute key equals value.
	DescendantByAttr(root Element, key, value string) Element
	// VectorPath returns the path sub-element an SVG-rendered element
	// paints its fill with.
	VectorPath(el Element) Element
	// Descendants returns every addressable descendant of root (those
	// carrying a node id), in document order.
	Descendants(root Element) []Element
}

// findChild resolves the element a child change addresses: by id first,
// then by the last segment of its name path against the name attribute.
func findChild(loc Locator, root Element, c Change) Element {
	if c.ChildID != "" {
		if el := loc.Descendant(root, c.ChildID); el != nil {
			return el
		}
	}
	if c.ChildName != "" {
		return loc.DescendantByAttr(root, AttrNodeName, lastSegment(c.ChildName))
	}
	return nil
}
