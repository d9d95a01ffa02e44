// Package router implements the route model for Wayfind: pattern
// compilation, the immutable route tree, and path matching.
//
// The package provides:
//   - A pattern compiler for path templates with dynamic and wildcard segments
//   - An immutable tree of view definitions built once at startup
//   - A declaration-order, depth-first matcher producing root-to-leaf chains
//
// # Patterns
//
// A pattern is a "/"-separated template. Each segment is one of:
//
//	users        static, matched byte-for-byte
//	:id          dynamic, consumes exactly one segment and binds it
//	*  or *rest  wildcard, consumes the whole remainder (terminal only)
//
// A dynamic marker must occupy a whole segment; ":id-:slug" is rejected at
// compile time. A wildcard must be the last segment of its pattern.
//
// # Trees and matching
//
// Trees are built from nested Definitions. Node patterns are relative to
// their parent, so the tree mirrors nested layout composition:
//
//	tree, err := router.BuildTree([]router.Definition{
//	    {Pattern: "/", View: "Home"},
//	    {Pattern: "/dashboard", View: "Dashboard", Children: []router.Definition{
//	        {Pattern: "courses", View: "Courses"},
//	    }},
//	})
//
//	m, ok := tree.Match("/dashboard/courses")
//	// m.Chain is [Dashboard, Courses], m.Params is empty
//
// Sibling priority is declaration order, never specificity: a sibling
// declared earlier wins even when a later sibling is a more specific match.
// This is a deliberate simplification and is exercised explicitly in the
// tests.
//
// Matching never fails with an error; an unmatched path returns (nil, false)
// and is an ordinary outcome for the caller to handle.
package router
