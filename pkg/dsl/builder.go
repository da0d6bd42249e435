package dsl

import "github.com/aretw0/arbor/pkg/domain"

// Builder manages the tree construction.
type Builder struct {
	root *NodeBuilder
}

// New creates a new tree builder with the given root label.
func New(rootLabel string) *Builder {
	return &Builder{root: &NodeBuilder{label: rootLabel}}
}

// Root returns the builder of the root node.
func (b *Builder) Root() *NodeBuilder {
	return b.root
}

// Add appends a child to the root and returns its builder.
func (b *Builder) Add(label string) *NodeBuilder {
	return b.root.Add(label)
}

// Build materialises the tree. Every call returns a fresh, independent tree,
// so a Builder can be reused as a template.
func (b *Builder) Build() *domain.Node {
	return b.root.build()
}

// Tree builds a node with the given children attached in order.
func Tree(label string, children ...*domain.Node) *domain.Node {
	n := domain.NewNode(label)
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}
