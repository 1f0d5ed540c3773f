package menu

import "net/url"

// MenuNode is the management projection: every non-deleted node with its
// raw fields, used for administrative listing.
type MenuNode struct {
	ID         int64       `json:"id"`
	ParentID   int64       `json:"parentId"`
	Name       string      `json:"name"`
	Title      string      `json:"title"`
	Kind       string      `json:"type"`
	Path       string      `json:"path,omitempty"`
	Component  string      `json:"component,omitempty"`
	Icon       string      `json:"icon,omitempty"`
	Permission string      `json:"permission,omitempty"`
	Rank       int         `json:"rank"`
	Status     string      `json:"status"`
	IsShow     bool        `json:"isShow"`
	IsCache    bool        `json:"isCache"`
	IsFrame    bool        `json:"isFrame"`
	CreatedAt  string      `json:"createTime"`
	Children   []*MenuNode `json:"children,omitempty"`
}

// RouteMeta is the metadata block on a route descriptor.
type RouteMeta struct {
	Title   string `json:"title"`
	Icon    string `json:"icon,omitempty"`
	Rank    int    `json:"rank"`
	IsCache bool   `json:"isCache"`
	IsFrame bool   `json:"isFrame"`
}

// RouteNode is the route projection consumed by client-side navigation.
// Buttons are excluded and parent identifiers are stripped.
type RouteNode struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Path      string       `json:"path"`
	Component string       `json:"component,omitempty"`
	Meta      RouteMeta    `json:"meta"`
	Children  []*RouteNode `json:"children,omitempty"`
}

// BuildMenuTree converts flat rows into the management tree. Children keep
// the input order, so callers must sort by rank upstream for deterministic
// ordering. A node whose parent is absent from the input is attached at the
// root rather than dropped; a self-referencing node is treated the same way.
func BuildMenuTree(menus []Menu, rootID int64) []*MenuNode {
	index := make(map[int64]*MenuNode, len(menus))
	for _, m := range menus {
		index[m.ID] = formatMenuNode(m)
	}
	roots := make([]*MenuNode, 0)
	for _, m := range menus {
		node := index[m.ID]
		parentID := m.ParentID
		if parentID == 0 {
			parentID = rootID
		}
		parent, ok := index[parentID]
		if !ok || parent == node {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	pruneMenuChildren(roots)
	return roots
}

// BuildRouteTree converts flat rows into the route tree, excluding button
// nodes. Attachment rules match BuildMenuTree: a node whose parent is
// missing or was filtered out (a button parent) is promoted to the root.
func BuildRouteTree(menus []Menu, rootID int64) []*RouteNode {
	index := make(map[int64]*RouteNode, len(menus))
	for _, m := range menus {
		if m.Kind == KindButton {
			continue
		}
		index[m.ID] = formatRouteNode(m)
	}
	roots := make([]*RouteNode, 0)
	for _, m := range menus {
		if m.Kind == KindButton {
			continue
		}
		node := index[m.ID]
		parentID := m.ParentID
		if parentID == 0 {
			parentID = rootID
		}
		parent, ok := index[parentID]
		if !ok || parent == node {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	pruneRouteChildren(roots)
	return roots
}

func formatMenuNode(m Menu) *MenuNode {
	return &MenuNode{
		ID:         m.ID,
		ParentID:   m.ParentID,
		Name:       m.Key,
		Title:      m.Title,
		Kind:       m.Kind,
		Path:       m.Path,
		Component:  m.Component,
		Icon:       m.Icon,
		Permission: m.Perms,
		Rank:       m.Rank,
		Status:     m.Status,
		IsShow:     m.Visible == VisibleYes,
		IsCache:    m.IsCache == CacheYes,
		IsFrame:    isExternalLink(m),
		CreatedAt:  m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func formatRouteNode(m Menu) *RouteNode {
	return &RouteNode{
		ID:        m.ID,
		Name:      m.Key,
		Path:      m.Path,
		Component: m.Component,
		Meta: RouteMeta{
			Title:   m.Title,
			Icon:    m.Icon,
			Rank:    m.Rank,
			IsCache: m.IsCache == CacheYes,
			IsFrame: isExternalLink(m),
		},
	}
}

// isExternalLink requires both the explicit flag and a syntactically valid
// absolute URL; neither alone marks a node external.
func isExternalLink(m Menu) bool {
	if m.IsFrame != FrameExternal {
		return false
	}
	u, err := url.Parse(m.Path)
	return err == nil && u.IsAbs() && u.Host != ""
}

// The prune passes drop empty children slices so leaves serialize without
// a spurious empty collection. They walk with an explicit stack: admin
// trees are shallow, but pathological depth must not overflow the stack.

func pruneMenuChildren(roots []*MenuNode) {
	stack := append([]*MenuNode(nil), roots...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(node.Children) == 0 {
			node.Children = nil
			continue
		}
		stack = append(stack, node.Children...)
	}
}

func pruneRouteChildren(roots []*RouteNode) {
	stack := append([]*RouteNode(nil), roots...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(node.Children) == 0 {
			node.Children = nil
			continue
		}
		stack = append(stack, node.Children...)
	}
}
