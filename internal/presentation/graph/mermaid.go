package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart for the tree rooted at root.
// Nodes are identified by their pre-order position (n0 is the root) since
// labels need not be unique. It applies semantic styling:
// - Root: ((Circle))
// - Inner node: [Rectangle]
// - Leaf: (Rounded), also tagged with the "leaf" class
func GenerateMermaid(root *domain.Node) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root == nil {
		return sb.String()
	}

	ids := make(map[*domain.Node]string)
	var leaves []string

	root.Walk(func(n *domain.Node, depth int) bool {
		id := fmt.Sprintf("n%d", len(ids))
		ids[n] = id

		opener, closer := "[", "]"
		switch {
		case depth == 0:
			opener, closer = "((", "))"
		case n.Len() == 0:
			opener, closer = "(", ")"
			leaves = append(leaves, id)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escapeLabel(n.Content), closer)

		if parent := n.Parent(); depth > 0 && parent != nil {
			fmt.Fprintf(&sb, "    %s --> %s\n", ids[parent], id)
		}
		return true
	})

	if len(leaves) > 0 {
		sb.WriteString("\n    classDef leaf fill:#e1f5fe,stroke:#01579b,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s leaf;\n", strings.Join(leaves, ","))
	}

	return sb.String()
}

// escapeLabel makes arbitrary cell or text content safe inside a quoted
// Mermaid label.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "\r\n", "<br/>")
	s = strings.ReplaceAll(s, "\n", "<br/>")
	return s
}
