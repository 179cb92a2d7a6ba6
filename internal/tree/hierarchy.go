// Package tree reconstructs feature hierarchies from the flat,
// parent-referenced collection that is the canonical storage shape.
// Everything here is a pure projection: building the hierarchy twice
// from unmodified input yields structurally identical trees.
package tree

import (
	"fmt"

	"github.com/starford/raido/internal/models"
)

// Node is a feature node with its resolved children, ordered by the
// insertion order of the flat input.
type Node struct {
	models.FeatureNode
	Children []*Node `json:"children"`
}

// Build reconstructs parent→children trees from a flat collection.
// Roots are nodes with an empty ParentID or a ParentID that does not
// resolve within the input. Input order is preserved for both roots and
// children.
func Build(flat []models.FeatureNode) []*Node {
	byID := make(map[string]*Node, len(flat))
	ordered := make([]*Node, len(flat))
	for i := range flat {
		n := &Node{FeatureNode: flat[i], Children: []*Node{}}
		byID[n.ID] = n
		ordered[i] = n
	}

	var roots []*Node
	for _, n := range ordered {
		parent, ok := byID[n.ParentID]
		if n.ParentID == "" || !ok || parent == n {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}
	return roots
}

// Flatten is the inverse projection: a depth-first walk emitting each
// node's stored form. ParentID values are preserved untouched, so
// Flatten(Build(flat)) covers the same node-id set as flat.
func Flatten(roots []*Node) []models.FeatureNode {
	var out []models.FeatureNode
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n.FeatureNode)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}

// Validate checks the structural invariants of a flat collection: ids
// are unique and the parent-pointer graph is acyclic. Unresolved parent
// ids are allowed (such nodes become roots).
func Validate(flat []models.FeatureNode) error {
	byID := make(map[string]int, len(flat))
	for _, n := range flat {
		if _, dup := byID[n.ID]; dup {
			return fmt.Errorf("tree: duplicate node id %q", n.ID)
		}
		byID[n.ID] = 0
	}

	parent := make(map[string]string, len(flat))
	for _, n := range flat {
		parent[n.ID] = n.ParentID
	}
	for _, n := range flat {
		seen := map[string]struct{}{n.ID: {}}
		cur := n.ParentID
		for cur != "" {
			if _, cycle := seen[cur]; cycle {
				return fmt.Errorf("tree: parent cycle through node %q", cur)
			}
			seen[cur] = struct{}{}
			next, ok := parent[cur]
			if !ok {
				break // unresolved parent, treated as root
			}
			cur = next
		}
	}
	return nil
}

// Descendants returns the ids of every node below id in the parent
// graph, not including id itself.
func Descendants(flat []models.FeatureNode, id string) []string {
	children := make(map[string][]string, len(flat))
	for _, n := range flat {
		if n.ParentID != "" {
			children[n.ParentID] = append(children[n.ParentID], n.ID)
		}
	}
	var out []string
	queue := append([]string(nil), children[id]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		queue = append(queue, children[cur]...)
	}
	return out
}
