package menu_test

import (
	"testing"
	"time"

	"github.com/stellar-admin/stellar-admin/internal/menu"
	_ "github.com/stellar-admin/stellar-admin/testing"
)

func row(id, parent int64, kind, key string) menu.Menu {
	return menu.Menu{
		ID:        id,
		ParentID:  parent,
		Title:     key,
		Key:       key,
		Path:      "/" + key,
		Kind:      kind,
		Visible:   menu.VisibleYes,
		IsCache:   menu.CacheYes,
		IsFrame:   1,
		Status:    "0",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildMenuTreeNesting(t *testing.T) {
	rows := []menu.Menu{
		row(1, 0, menu.KindDir, "system"),
		row(2, 1, menu.KindMenu, "user"),
		row(3, 1, menu.KindMenu, "role"),
		row(4, 2, menu.KindButton, "user-add"),
	}
	tree := menu.BuildMenuTree(rows, 0)
	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}
	root := tree[0]
	if root.ID != 1 || len(root.Children) != 2 {
		t.Fatalf("unexpected root %#v", root)
	}
	if len(root.Children[0].Children) != 1 || root.Children[0].Children[0].ID != 4 {
		t.Fatalf("expected button under user, got %#v", root.Children[0].Children)
	}
	// Input order is preserved among siblings.
	if root.Children[0].ID != 2 || root.Children[1].ID != 3 {
		t.Fatalf("expected input order preserved, got %d, %d", root.Children[0].ID, root.Children[1].ID)
	}
}

func TestBuildMenuTreeDanglingParentPromotedToRoot(t *testing.T) {
	rows := []menu.Menu{
		row(1, 0, menu.KindDir, "system"),
		row(5, 99, menu.KindMenu, "orphan"),
	}
	tree := menu.BuildMenuTree(rows, 0)
	if len(tree) != 2 {
		t.Fatalf("expected orphan attached at root, got %d roots", len(tree))
	}
	if tree[1].ID != 5 {
		t.Fatalf("expected orphan as second root, got %d", tree[1].ID)
	}
}

func TestBuildMenuTreeSelfParentPromotedToRoot(t *testing.T) {
	rows := []menu.Menu{row(8, 8, menu.KindMenu, "loop")}
	tree := menu.BuildMenuTree(rows, 8)
	if len(tree) != 1 || tree[0].ID != 8 {
		t.Fatalf("expected self-referencing node at root, got %#v", tree)
	}
	if tree[0].Children != nil {
		t.Fatalf("expected no children, got %#v", tree[0].Children)
	}
}

func TestBuildMenuTreeLeavesHaveNilChildren(t *testing.T) {
	rows := []menu.Menu{
		row(1, 0, menu.KindDir, "system"),
		row(2, 1, menu.KindMenu, "user"),
	}
	tree := menu.BuildMenuTree(rows, 0)
	if tree[0].Children[0].Children != nil {
		t.Fatalf("expected leaf children pruned to nil")
	}
}

func TestBuildMenuTreeDeepChain(t *testing.T) {
	const depth = 50000
	rows := make([]menu.Menu, 0, depth)
	for i := int64(1); i <= depth; i++ {
		rows = append(rows, row(i, i-1, menu.KindMenu, "n"))
	}
	tree := menu.BuildMenuTree(rows, 0)
	if len(tree) != 1 {
		t.Fatalf("expected single chain root, got %d", len(tree))
	}
}

func TestBuildMenuTreeRoundTripPreservesNodeSet(t *testing.T) {
	rows := []menu.Menu{
		row(3, 1, menu.KindMenu, "role"),
		row(1, 0, menu.KindDir, "system"),
		row(4, 2, menu.KindButton, "user-add"),
		row(2, 1, menu.KindMenu, "user"),
	}
	tree := menu.BuildMenuTree(rows, 0)

	flat := map[int64]*menu.MenuNode{}
	stack := append([]*menu.MenuNode(nil), tree...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		flat[node.ID] = node
		stack = append(stack, node.Children...)
	}
	if len(flat) != len(rows) {
		t.Fatalf("expected %d nodes after flattening, got %d", len(rows), len(flat))
	}
	for _, m := range rows {
		node, ok := flat[m.ID]
		if !ok {
			t.Fatalf("node %d lost in round trip", m.ID)
		}
		if node.ParentID != m.ParentID || node.Name != m.Key || node.Kind != m.Kind {
			t.Fatalf("node %d fields mangled: %#v", m.ID, node)
		}
	}
}

func TestBuildRouteTreePromotesOrphanScenario(t *testing.T) {
	rows := []menu.Menu{
		row(1, 0, menu.KindDir, "sys"),
		row(2, 1, menu.KindMenu, "view"),
		row(3, 99, menu.KindMenu, "edit"),
	}
	routes := menu.BuildRouteTree(rows, 0)
	if len(routes) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(routes))
	}
	if routes[0].ID != 1 || len(routes[0].Children) != 1 || routes[0].Children[0].ID != 2 {
		t.Fatalf("unexpected first root %#v", routes[0])
	}
	if routes[1].ID != 3 || routes[1].Children != nil {
		t.Fatalf("expected node 3 promoted to root with no children, got %#v", routes[1])
	}
}

func TestBuildRouteTreeExcludesButtons(t *testing.T) {
	rows := []menu.Menu{
		row(1, 0, menu.KindDir, "system"),
		row(2, 1, menu.KindMenu, "user"),
		row(3, 2, menu.KindButton, "user-add"),
	}
	routes := menu.BuildRouteTree(rows, 0)
	if len(routes) != 1 {
		t.Fatalf("expected 1 root, got %d", len(routes))
	}
	user := routes[0].Children[0]
	if user.ID != 2 {
		t.Fatalf("expected menu node, got %d", user.ID)
	}
	if user.Children != nil {
		t.Fatalf("expected button excluded from routes, got %#v", user.Children)
	}
}

func TestBuildRouteTreeChildOfButtonPromoted(t *testing.T) {
	rows := []menu.Menu{
		row(3, 0, menu.KindButton, "button"),
		row(4, 3, menu.KindMenu, "stranded"),
	}
	routes := menu.BuildRouteTree(rows, 0)
	if len(routes) != 1 || routes[0].ID != 4 {
		t.Fatalf("expected stranded child promoted to root, got %#v", routes)
	}
}

func TestExternalLinkRequiresFlagAndAbsoluteURL(t *testing.T) {
	external := row(1, 0, menu.KindMenu, "docs")
	external.IsFrame = menu.FrameExternal
	external.Path = "https://example.com/docs"

	flagOnly := row(2, 0, menu.KindMenu, "relative")
	flagOnly.IsFrame = menu.FrameExternal
	flagOnly.Path = "/system/user"

	urlOnly := row(3, 0, menu.KindMenu, "unflagged")
	urlOnly.IsFrame = 1
	urlOnly.Path = "https://example.com"

	routes := menu.BuildRouteTree([]menu.Menu{external, flagOnly, urlOnly}, 0)
	if !routes[0].Meta.IsFrame {
		t.Fatalf("expected flagged absolute url to be external")
	}
	if routes[1].Meta.IsFrame {
		t.Fatalf("expected relative path to stay internal despite the flag")
	}
	if routes[2].Meta.IsFrame {
		t.Fatalf("expected absolute url without the flag to stay internal")
	}
}
