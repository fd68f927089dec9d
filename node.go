package skillmap

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// NodeKind distinguishes the role of a Node in the content tree.
type NodeKind uint8

const (
	NodeKindContainer         NodeKind = iota // group node with no visual output (content layer)
	NodeKindIsland                            // category wrapper with background and title
	NodeKindIslandPlaceholder                 // empty space reserved for a placeholder category
	NodeKindTitle                             // island heading text
	NodeKindCell                              // hexagon cell for a single skill
)

// ItemID is the stable identity of a skill cell: its category and item name.
type ItemID struct {
	Category string
	Name     string
}

// String returns "category/name".
func (id ItemID) String() string {
	return id.Category + "/" + id.Name
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, the map is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is an element of the content layer. A single flat struct is used for
// all kinds to keep traversal free of interface dispatch.
//
// X and Y are offsets relative to the parent (like a DOM offsetLeft/offsetTop);
// Width and Height are unscaled content-space dimensions.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Kind NodeKind

	// Hierarchy
	Parent   *Node
	children []*Node

	// Geometry (content space, relative to parent)
	X, Y          float64
	Width, Height float64

	// Appearance
	Label      string
	Color      Color
	Background Color
	Visible    bool

	// Selection
	Item        ItemID
	Skill       *Skill
	Placeholder bool

	// Hit testing (local coordinates)
	HitShape HitShape

	// Internal
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Color = ColorWhite
	n.Visible = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Kind: NodeKindContainer}
	nodeDefaults(n)
	return n
}

// NewNode creates a node of the given kind and size.
func NewNode(name string, kind NodeKind, w, h float64) *Node {
	n := &Node{Name: name, Kind: kind, Width: w, Height: h}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("skillmap: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("skillmap: adding child would create a cycle")
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

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("skillmap: child's parent is not this node")
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

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for i, child := range n.children {
		child.Parent = nil
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
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
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.Skill = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Queries ---

// Selectable reports whether the node is a skill cell that can be clicked,
// focused and opened. Placeholder cells are not selectable.
func (n *Node) Selectable() bool {
	return n != nil && n.Kind == NodeKindCell && !n.Placeholder && !n.disposed
}

// Bounds returns the node's rectangle relative to its parent.
func (n *Node) Bounds() Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// WorldPosition returns the node's top-left corner in content space, which is
// the sum of its own and all ancestors' offsets.
func (n *Node) WorldPosition() (x, y float64) {
	for p := n; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// WorldBounds returns the node's rectangle in content space.
func (n *Node) WorldBounds() Rect {
	x, y := n.WorldPosition()
	return Rect{X: x, Y: y, Width: n.Width, Height: n.Height}
}

// WorldToLocal converts a content-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	x, y := n.WorldPosition()
	inv := invertAffine(translateAffine(x, y))
	return transformPoint(inv, wx, wy)
}

// Island returns the closest island ancestor (or the node itself), or nil.
func (n *Node) Island() *Node {
	for p := n; p != nil; p = p.Parent {
		if p.Kind == NodeKindIsland {
			return p
		}
	}
	return nil
}

// AttachedTo reports whether root is this node or one of its ancestors.
func (n *Node) AttachedTo(root *Node) bool {
	if n == nil || root == nil || n.disposed {
		return false
	}
	return isAncestor(root, n)
}

// Walk visits n and all descendants in depth-first tree order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// --- Measurement ---

// Measurer reports the content-space offset rectangle of a content-layer
// child. The viewport uses it to compute the content bounding box, which keeps
// the centering math testable without a real layout.
type Measurer interface {
	Measure(n *Node) Rect
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(n *Node) Rect

// Measure calls f(n).
func (f MeasureFunc) Measure(n *Node) Rect {
	return f(n)
}

// NodeMeasurer measures nodes by their own offset bounds.
var NodeMeasurer Measurer = MeasureFunc(func(n *Node) Rect { return n.Bounds() })

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
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
