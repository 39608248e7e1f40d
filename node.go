package protoplay

// Visual is the paintable state of a node: its layout box size, a
// translation on top of its layout position, and its paint. A node keeps
// two of these: the base state built from its snapshot, and the computed
// state that inline styles and running transitions move away from it.
type Visual struct {
	TranslateX, TranslateY float64
	Width, Height          float64
	Alpha                  float64
	Background             Color
	Fill                   Color
	Radius                 float64
	Visible                bool
}

// styleDecl is one inline style declaration.
type styleDecl struct {
	value     string
	important bool
}

// Node is the element the engine drives. Nodes form a tree mirroring the
// snapshot they were built from; each carries inline styles, attributes
// and event handlers, and implements Element.
type Node struct {
	// Identity
	Name string
	Tag  string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout position relative to the parent's origin.
	X, Y float64

	// Text content for TEXT nodes.
	Text string

	attrs    map[string]string
	styles   map[string]styleDecl
	handlers map[EventType]func()

	base     Visual
	computed Visual

	transitions map[string]transitionSpec
	tweens      map[string]*styleTween

	// World state, updated by updateWorld.
	worldX, worldY float64
	worldAlpha     float64
	worldVisible   bool

	disposed bool
}

// NewNode creates an element node with the given tag ("div", "svg",
// "path"). It starts visible, fully opaque and zero-sized.
func NewNode(tag string) *Node {
	n := &Node{Tag: tag}
	v := Visual{Alpha: 1, Visible: true}
	n.base = v
	n.computed = v
	n.worldAlpha = 1
	n.worldVisible = true
	return n
}

// SetBase replaces the node's base visual state and resets the computed
// state to it. Inline styles already set are re-applied on top.
func (n *Node) SetBase(v Visual) {
	n.base = v
	n.computed = v
	clear(n.tweens)
	for prop := range n.styles {
		n.applyStyle(prop, false)
	}
}

// Base returns the node's base visual state.
func (n *Node) Base() Visual {
	return n.base
}

// Computed returns the node's current visual state, including the progress
// of any running transition.
func (n *Node) Computed() Visual {
	return n.computed
}

// --- Element ---

// Style returns the inline value of prop, or "" if it is not set.
func (n *Node) Style(prop string) string {
	return n.styles[prop].value
}

// SetStyle sets an inline declaration. An empty value removes it and the
// property falls back to the base state. When the property is covered by
// the node's transition declaration, the computed value moves to the new
// one over the transition's duration.
func (n *Node) SetStyle(prop, value string) {
	n.setStyle(prop, value, false)
}

// SetStyleImportant sets an inline declaration that takes effect at once,
// discarding any transition still running for prop.
func (n *Node) SetStyleImportant(prop, value string) {
	n.setStyle(prop, value, true)
}

func (n *Node) setStyle(prop, value string, important bool) {
	if n.disposed {
		return
	}
	if value == "" {
		delete(n.styles, prop)
	} else {
		if n.styles == nil {
			n.styles = make(map[string]styleDecl)
		}
		n.styles[prop] = styleDecl{value: value, important: important}
	}
	n.applyStyle(prop, !important)
}

// Attr returns the value of an attribute, or "".
func (n *Node) Attr(key string) string {
	return n.attrs[key]
}

// SetAttr sets an attribute.
func (n *Node) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// SetHandler installs fn for ev, replacing any previous handler. A nil fn
// removes it.
func (n *Node) SetHandler(ev EventType, fn func()) {
	if fn == nil {
		delete(n.handlers, ev)
		return
	}
	if n.handlers == nil {
		n.handlers = make(map[EventType]func())
	}
	n.handlers[ev] = fn
}

// Handler returns the handler installed for ev, or nil.
func (n *Node) Handler(ev EventType) func() {
	return n.handlers[ev]
}

// NodeID returns the node's data-node-id attribute.
func (n *Node) NodeID() string {
	return n.attrs[AttrNodeID]
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("protoplay: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("protoplay: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("protoplay: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("protoplay: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("protoplay: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("protoplay: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Walk visits n and its descendants in document order. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.handlers = nil
	n.tweens = nil
	n.transitions = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// --- Locator ---

// NodeLocator implements Locator over a Node tree. Elements it is given
// must be *Node; anything else matches nothing.
type NodeLocator struct{}

// Descendant implements Locator.
func (NodeLocator) Descendant(root Element, id string) Element {
	return NodeLocator{}.DescendantByAttr(root, AttrNodeID, id)
}

// DescendantByAttr implements Locator.
func (NodeLocator) DescendantByAttr(root Element, key, value string) Element {
	r, ok := root.(*Node)
	if !ok || r == nil {
		return nil
	}
	var found *Node
	for _, c := range r.children {
		c.Walk(func(n *Node) bool {
			if found != nil {
				return false
			}
			if v, ok := n.attrs[key]; ok && v == value {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// VectorPath implements Locator. It returns the first "path" child.
func (NodeLocator) VectorPath(el Element) Element {
	n, ok := el.(*Node)
	if !ok || n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.Tag == "path" {
			return c
		}
	}
	return nil
}

// Descendants implements Locator.
func (NodeLocator) Descendants(root Element) []Element {
	r, ok := root.(*Node)
	if !ok || r == nil {
		return nil
	}
	var out []Element
	for _, c := range r.children {
		c.Walk(func(n *Node) bool {
			if n.attrs[AttrNodeID] != "" {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}
