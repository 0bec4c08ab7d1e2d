package registry

import "github.com/hharuki/sitemapper/internal/model"

// Node is one entry in the exported site hierarchy.
type Node struct {
	// URL is the canonical URL.
	URL string `json:"url"`

	// Text is the display text.
	Text string `json:"text"`

	// Type is the node's kind.
	Type string `json:"type"`

	// Depth is the click depth from the seed.
	Depth int `json:"depth"`

	// Processed reports whether the node's unit of work ran.
	Processed bool `json:"processed"`

	// FilePath is the local artifact path, or empty.
	FilePath string `json:"file_path"`

	// Children are the nodes discovered from this one.
	Children []*Node `json:"children"`
}

// Tree is the export shape: one or more root nodes with nested children.
type Tree struct {
	// Roots holds the depth-0 node first, then any orphans.
	Roots []*Node `json:"roots"`
}

// BuildHierarchy rebuilds the parent/child tree from the flat node
// list. Input order is preserved within each child list, so exports are
// stable across runs.
//
// Orphans (a parent pointer to a node outside the list, which happens
// when shortest-path rewrites move a parent under a different root) are
// promoted to additional roots rather than dropped. The map stays
// complete at the cost of a flat spot in the tree.
func BuildHierarchy(nodes []*model.LinkNode) *Tree {
	tree := &Tree{Roots: []*Node{}}

	byID := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = &Node{
			URL:       n.URL,
			Text:      n.Text,
			Type:      n.Kind.String(),
			Depth:     n.Depth,
			Processed: n.Processed,
			FilePath:  n.FilePath,
			Children:  []*Node{},
		}
	}

	for _, n := range nodes {
		node := byID[n.ID]
		if n.Depth == 0 || n.ParentID == "" {
			tree.Roots = append(tree.Roots, node)
			continue
		}
		parent, ok := byID[n.ParentID]
		if !ok {
			tree.Roots = append(tree.Roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return tree
}
