package router

import (
	"strings"

	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// MatchOptions are the explicitly-configured matching policies. The zero
// value is the strict default: trailing slashes are significant and static
// segments compare case-sensitively.
type MatchOptions struct {
	// TrimTrailingSlash drops a trailing slash from the path before
	// matching, so "/user/42/" matches "/user/:id".
	TrimTrailingSlash bool

	// CaseInsensitiveStatic compares static segments case-insensitively.
	CaseInsensitiveStatic bool
}

// Match is the result of matching a full path against a tree.
type Match struct {
	// Chain is the matched nodes from root to the deepest leaf, in order.
	// Nested layouts render outer-to-inner by walking it front-to-back.
	Chain []*Node

	// Params maps dynamic segment names to their percent-decoded values.
	// Re-declaring a name deeper in the tree overwrites the shallower
	// binding (last-match-wins).
	Params map[string]string

	// Remainder is the unmatched tail of the path. It is empty unless a
	// wildcard segment or a catch-all view absorbed it.
	Remainder string

	// CatchAllView is set when the leaf result came from a node's
	// catch-all view rather than a full pattern match. It is the view to
	// render for the subtree's not-found page.
	CatchAllView string
}

// Leaf returns the deepest matched node.
func (m *Match) Leaf() *Node {
	if len(m.Chain) == 0 {
		return nil
	}
	return m.Chain[len(m.Chain)-1]
}

// Views returns the view ids of the chain root-to-leaf, with CatchAllView
// appended when a catch-all fired.
func (m *Match) Views() []string {
	views := make([]string, 0, len(m.Chain)+1)
	for _, n := range m.Chain {
		views = append(views, n.View())
	}
	if m.CatchAllView != "" {
		views = append(views, m.CatchAllView)
	}
	return views
}

// Match finds the best-matching leaf-to-root chain for fullPath using the
// strict default options. The boolean is false when no root matches; that
// is a normal outcome, not an error.
func (t *Tree) Match(fullPath string) (*Match, bool) {
	return t.MatchWith(fullPath, MatchOptions{})
}

// MatchWith is Match with explicit policy options.
//
// The traversal is depth-first over roots and children in declaration
// order; the first successful result wins. Identical (tree, path, options)
// inputs always yield structurally equal results.
func (t *Tree) MatchWith(fullPath string, opts MatchOptions) (*Match, bool) {
	path, _ := routepath.SplitPathAndQuery(fullPath)

	if opts.TrimTrailingSlash && len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	segs := splitSegments(path)

	m := &matcher{opts: opts}
	for _, root := range t.roots {
		m.bindings = m.bindings[:0]
		chain, remainder, catchAll, ok := m.matchNode(root, segs)
		if !ok {
			continue
		}

		params := make(map[string]string, len(m.bindings))
		for _, b := range m.bindings {
			params[b.name] = b.value
		}

		return &Match{
			Chain:        chain,
			Params:       params,
			Remainder:    remainder,
			CatchAllView: catchAll,
		}, true
	}
	return nil, false
}

// splitSegments splits a path into raw (undecoded) segments. A trailing
// slash yields a trailing empty segment, which no pattern segment can
// consume; under the strict policy that is what rejects "/user/42/".
func splitSegments(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// binding is one name→value pair extracted during matching. Bindings are
// kept ordered so deeper re-declarations overwrite shallower ones and
// backtracking is a truncation.
type binding struct {
	name  string
	value string
}

type matcher struct {
	opts     MatchOptions
	bindings []binding
}

// matchNode attempts to consume n's pattern against segs and then resolve
// a leaf result per the three leaf conditions: (a) nothing remains, (b) a
// child consumes the remainder, (c) the node declares a catch-all view and
// a remainder exists. Returns the chain from n downward.
func (m *matcher) matchNode(n *Node, segs []string) (chain []*Node, remainder, catchAll string, ok bool) {
	mark := len(m.bindings)
	rest := segs

	for _, seg := range n.pattern.segments {
		switch seg.Kind {
		case SegmentStatic:
			if len(rest) == 0 || !m.staticEqual(rest[0], seg.Value) {
				m.bindings = m.bindings[:mark]
				return nil, "", "", false
			}
			rest = rest[1:]

		case SegmentDynamic:
			// An empty segment (trailing slash) is never a value.
			if len(rest) == 0 || rest[0] == "" {
				m.bindings = m.bindings[:mark]
				return nil, "", "", false
			}
			decoded, err := routepath.DecodeSegment(rest[0], false)
			if err != nil {
				m.bindings = m.bindings[:mark]
				return nil, "", "", false
			}
			m.bindings = append(m.bindings, binding{name: seg.Value, value: decoded})
			rest = rest[1:]

		case SegmentWildcard:
			if len(rest) == 0 {
				m.bindings = m.bindings[:mark]
				return nil, "", "", false
			}
			absorbed, err := decodeRemainder(rest)
			if err != nil {
				m.bindings = m.bindings[:mark]
				return nil, "", "", false
			}
			if seg.Value != "" {
				m.bindings = append(m.bindings, binding{name: seg.Value, value: absorbed})
			}
			// Wildcard is terminal by construction.
			return []*Node{n}, absorbed, "", true
		}
	}

	// (a) Own pattern consumed everything.
	if len(rest) == 0 {
		return []*Node{n}, "", "", true
	}

	// (b) A child fully consumes the remainder. Declaration order is the
	// only priority; the first success wins.
	for _, child := range n.children {
		childChain, childRem, childCatch, childOK := m.matchNode(child, rest)
		if childOK {
			return append([]*Node{n}, childChain...), childRem, childCatch, true
		}
	}

	// (c) No child matched but the node declares a subtree not-found view.
	if n.catchAllView != "" {
		absorbed, err := decodeRemainder(rest)
		if err != nil {
			m.bindings = m.bindings[:mark]
			return nil, "", "", false
		}
		return []*Node{n}, absorbed, n.catchAllView, true
	}

	m.bindings = m.bindings[:mark]
	return nil, "", "", false
}

func (m *matcher) staticEqual(got, want string) bool {
	if m.opts.CaseInsensitiveStatic {
		return strings.EqualFold(got, want)
	}
	return got == want
}

// decodeRemainder decodes the remaining segments individually and rejoins
// them, preserving slashes as separators.
func decodeRemainder(segs []string) (string, error) {
	decoded := make([]string, len(segs))
	for i, seg := range segs {
		d, err := routepath.DecodeSegment(seg, true)
		if err != nil {
			return "", err
		}
		decoded[i] = d
	}
	return strings.Join(decoded, "/"), nil
}
