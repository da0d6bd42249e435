package dsl

import "github.com/aretw0/arbor/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	label    string
	children []*NodeBuilder
	parent   *NodeBuilder
}

// Add appends a child and returns the child's builder.
func (n *NodeBuilder) Add(label string) *NodeBuilder {
	child := &NodeBuilder{label: label, parent: n}
	n.children = append(n.children, child)
	return child
}

// Leaves appends childless nodes and returns the same builder.
func (n *NodeBuilder) Leaves(labels ...string) *NodeBuilder {
	for _, l := range labels {
		n.Add(l)
	}
	return n
}

// Up returns the parent builder, or the node itself at the root.
func (n *NodeBuilder) Up() *NodeBuilder {
	if n.parent == nil {
		return n
	}
	return n.parent
}

func (n *NodeBuilder) build() *domain.Node {
	node := domain.NewNode(n.label)
	for _, c := range n.children {
		node.AddChild(c.build())
	}
	return node
}
