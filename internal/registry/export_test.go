package registry

import (
	"testing"

	"github.com/hharuki/sitemapper/internal/model"
)

// TestBuildHierarchy rebuilds a small tree: root A with children B and
// C, C with grandchild D.
func TestBuildHierarchy(t *testing.T) {
	t.Parallel()

	nodes := []*model.LinkNode{
		{ID: "a", URL: "https://example.com", Kind: model.KindPage, Depth: 0, Processed: true},
		{ID: "b", URL: "https://example.com/b", Kind: model.KindPage, ParentID: "a", Depth: 1},
		{ID: "c", URL: "https://example.com/c.pdf", Kind: model.KindPDF, ParentID: "a", Depth: 1},
		{ID: "d", URL: "https://example.com/d", Kind: model.KindPage, ParentID: "c", Depth: 2},
	}

	tree := BuildHierarchy(nodes)

	if len(tree.Roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(tree.Roots))
	}
	root := tree.Roots[0]
	if root.URL != "https://example.com" || !root.Processed {
		t.Errorf("root = %+v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	if root.Children[0].URL != "https://example.com/b" {
		t.Errorf("insertion order not preserved: %q first", root.Children[0].URL)
	}
	c := root.Children[1]
	if c.Type != model.KindPDF.String() {
		t.Errorf("child type = %q, want pdf", c.Type)
	}
	if len(c.Children) != 1 || c.Children[0].URL != "https://example.com/d" {
		t.Errorf("grandchild missing: %+v", c.Children)
	}
	if root.Children[0].Children == nil {
		t.Error("leaf children must be an empty slice, not nil")
	}
}

// TestBuildHierarchyOrphanFallback promotes nodes whose parent is
// outside the list to additional roots.
func TestBuildHierarchyOrphanFallback(t *testing.T) {
	t.Parallel()

	nodes := []*model.LinkNode{
		{ID: "a", URL: "https://example.com", Kind: model.KindPage, Depth: 0},
		{ID: "x", URL: "https://example.com/x", Kind: model.KindPage, ParentID: "elsewhere", Depth: 2},
	}

	tree := BuildHierarchy(nodes)

	if len(tree.Roots) != 2 {
		t.Fatalf("got %d roots, want orphan promoted alongside the real root", len(tree.Roots))
	}
	if tree.Roots[1].URL != "https://example.com/x" {
		t.Errorf("second root = %q, want the orphan", tree.Roots[1].URL)
	}
}
