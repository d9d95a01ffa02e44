package router

import (
	"fmt"
	"strings"
)

// Definition declares one route in a tree. Definitions are the input to
// BuildTree; manifest files and hand-written route tables both produce
// them.
type Definition struct {
	// Pattern is the route pattern relative to the parent definition.
	Pattern string

	// View is the opaque view identifier rendered when this route is the
	// deepest match. The router never calls view code; it only hands the
	// identifier back to the caller.
	View string

	// CatchAllView, when set, is the view rendered when this node's own
	// pattern matched but the remaining path matched no child. This gives
	// a subtree its own not-found page.
	CatchAllView string

	// Children are nested route definitions, matched in declaration
	// order.
	Children []Definition
}

// DuplicateViewError is returned by BuildTree when duplicate view ids are
// forbidden and two routes share one.
type DuplicateViewError struct {
	// View is the duplicated view identifier.
	View string

	// First and Second are the full patterns of the colliding routes.
	First  string
	Second string
}

// Error implements the error interface.
func (e *DuplicateViewError) Error() string {
	return fmt.Sprintf("duplicate view %q declared by %q and %q", e.View, e.First, e.Second)
}

// Node is a node in the route tree. Nodes are immutable after BuildTree
// and exclusively owned by their parent.
type Node struct {
	pattern      *Pattern
	view         string
	catchAllView string
	parent       *Node
	children     []*Node
}

// Tree is an immutable hierarchy of route definitions. It performs no
// matching state of its own; Match is a pure function of (tree, path).
type Tree struct {
	roots []*Node
}

// treeConfig holds BuildTree options.
type treeConfig struct {
	forbidDuplicateViews bool
}

// TreeOption configures tree construction.
type TreeOption func(*treeConfig)

// ForbidDuplicateViews makes BuildTree fail with a *DuplicateViewError
// when two routes declare the same view id. The default allows duplicates:
// multiple paths may render the same view.
func ForbidDuplicateViews() TreeOption {
	return func(c *treeConfig) {
		c.forbidDuplicateViews = true
	}
}

// BuildTree compiles nested definitions into an immutable route tree.
//
// Malformed patterns are fatal here, at startup, so navigation time never
// sees a compile error.
func BuildTree(defs []Definition, opts ...TreeOption) (*Tree, error) {
	var config treeConfig
	for _, opt := range opts {
		opt(&config)
	}

	seenViews := make(map[string]string)

	var build func(def Definition, parent *Node) (*Node, error)
	build = func(def Definition, parent *Node) (*Node, error) {
		pattern, err := Compile(def.Pattern)
		if err != nil {
			return nil, err
		}

		node := &Node{
			pattern:      pattern,
			view:         def.View,
			catchAllView: def.CatchAllView,
			parent:       parent,
		}

		if pattern.HasWildcard() && len(def.Children) > 0 {
			return nil, patternErrf(def.Pattern, "wildcard route cannot have children")
		}

		if config.forbidDuplicateViews && def.View != "" {
			full := node.FullPattern()
			if first, ok := seenViews[def.View]; ok {
				return nil, &DuplicateViewError{View: def.View, First: first, Second: full}
			}
			seenViews[def.View] = full
		}

		for _, childDef := range def.Children {
			child, err := build(childDef, node)
			if err != nil {
				return nil, err
			}
			node.children = append(node.children, child)
		}
		return node, nil
	}

	tree := &Tree{}
	for _, def := range defs {
		root, err := build(def, nil)
		if err != nil {
			return nil, err
		}
		tree.roots = append(tree.roots, root)
	}
	return tree, nil
}

// Roots returns the top-level nodes in declaration order.
func (t *Tree) Roots() []*Node {
	out := make([]*Node, len(t.roots))
	copy(out, t.roots)
	return out
}

// Walk visits every node depth-first, children in declaration order. This
// is the same order the matcher uses for tie-breaking. Return false from
// fn to stop the walk.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var visit func(n *Node, depth int) bool
	visit = func(n *Node, depth int) bool {
		if !fn(n, depth) {
			return false
		}
		for _, child := range n.children {
			if !visit(child, depth+1) {
				return false
			}
		}
		return true
	}
	for _, root := range t.roots {
		if !visit(root, 0) {
			return
		}
	}
}

// RouteInfo is a flattened view of one route, used by tooling.
type RouteInfo struct {
	// Path is the full pattern from the root.
	Path string

	// View is the route's view identifier.
	View string

	// CatchAllView is the subtree not-found view, if any.
	CatchAllView string

	// Wildcard reports whether the route ends in a wildcard segment.
	Wildcard bool

	// Depth is the node depth, 0 for roots.
	Depth int
}

// Routes returns the flattened route table in declaration order.
func (t *Tree) Routes() []RouteInfo {
	var out []RouteInfo
	t.Walk(func(n *Node, depth int) bool {
		out = append(out, RouteInfo{
			Path:         n.FullPattern(),
			View:         n.view,
			CatchAllView: n.catchAllView,
			Wildcard:     n.pattern.HasWildcard(),
			Depth:        depth,
		})
		return true
	})
	return out
}

// Pattern returns the node's compiled pattern, relative to its parent.
func (n *Node) Pattern() *Pattern {
	return n.pattern
}

// View returns the node's view identifier.
func (n *Node) View() string {
	return n.view
}

// CatchAllView returns the subtree not-found view id, or "".
func (n *Node) CatchAllView() string {
	return n.catchAllView
}

// Parent returns the node's parent, or nil for roots.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in declaration order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// FullPattern returns the concatenation of ancestor patterns down to this
// node, e.g. "/dashboard/courses" for a "courses" node under "/dashboard".
func (n *Node) FullPattern() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		trimmed := strings.Trim(cur.pattern.String(), "/")
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	// parts were collected leaf-to-root
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}
