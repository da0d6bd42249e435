package domain

// Node represents one labelled vertex of an output tree.
// Children are kept in insertion order, which is also the rendering order.
type Node struct {
	// Content is the label shown for this node.
	Content string

	children []*Node

	// parent is a non-owning back-reference to the node whose children
	// slice holds this node. It is only used for root detection and
	// sibling queries; ownership flows strictly from parent to child.
	parent *Node
}

// NewNode creates a detached node with no children.
func NewNode(content string) *Node {
	return &Node{Content: content}
}

// AddChild appends child to n and points child's back-reference at n.
// It does not guard against cycles or against a child that is already
// attached elsewhere; callers building trees must not reuse nodes.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
	child.parent = n
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Parent returns the node n was attached to, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of n's children in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the i-th child. It panics if i is out of range.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// Labels returns the contents of n's direct children.
func (n *Node) Labels() []string {
	out := make([]string, len(n.children))
	for i, c := range n.children {
		out[i] = c.Content
	}
	return out
}

// Walk visits n and its descendants depth-first in pre-order.
// Depth is 0 for n itself. Returning false from fn skips the subtree
// below the visited node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Depth returns the depth of the deepest node below n (0 for a leaf).
func (n *Node) Depth() int {
	deepest := 0
	n.Walk(func(_ *Node, d int) bool {
		if d > deepest {
			deepest = d
		}
		return true
	})
	return deepest
}
