package validator

import (
	"errors"
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
)

// ValidateTree checks the structural invariants of the tree rooted at root:
// root has no parent, every child's back-reference points at the node that
// holds it, and no node is reachable twice (shared children or cycles).
// All violations are reported, joined into one error.
func ValidateTree(root *domain.Node) error {
	if root == nil {
		return fmt.Errorf("cannot validate nil tree")
	}

	var errs []error
	if !root.IsRoot() {
		errs = append(errs, fmt.Errorf("%w: root %q has a parent", domain.ErrBrokenParentLink, root.Content))
	}

	visited := map[*domain.Node]bool{root: true}
	queue := []*domain.Node{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for i, child := range current.Children() {
			if child.Parent() != current {
				errs = append(errs, fmt.Errorf("%w: child %d (%q) of %q", domain.ErrBrokenParentLink, i, child.Content, current.Content))
			}
			if visited[child] {
				// Do not descend again; a cycle would never terminate.
				errs = append(errs, fmt.Errorf("%w: %q under %q", domain.ErrSharedNode, child.Content, current.Content))
				continue
			}
			visited[child] = true
			queue = append(queue, child)
		}
	}

	return errors.Join(errs...)
}
