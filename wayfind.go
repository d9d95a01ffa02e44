// Package wayfind provides the public API for the Wayfind router core.
//
// This is the recommended import for most applications:
//
//	import "github.com/wayfind-dev/wayfind"
//
// Usage:
//
//	session, err := wayfind.New([]wayfind.Definition{
//	    {Pattern: "/", View: "Home"},
//	    {Pattern: "/user/:id", View: "User"},
//	})
//	session.OnRender(func(chain []*wayfind.Node, params, query map[string]string) { ... })
//	session.Init("/")
//	session.Navigate("/user/42?tab=posts")
package wayfind

import (
	"github.com/wayfind-dev/wayfind/pkg/history"
	"github.com/wayfind-dev/wayfind/pkg/nav"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Route declaration and match types, re-exported from pkg/router.
type (
	Definition = router.Definition
	Tree       = router.Tree
	Node       = router.Node
	Match      = router.Match
)

// Session types, re-exported from pkg/nav.
type (
	Session        = nav.Session
	Event          = nav.Event
	Option         = nav.Option
	NavigateOption = nav.NavigateOption
	Middleware     = nav.Middleware
	MiddlewareFunc = nav.MiddlewareFunc
)

// Entry is one history entry, re-exported from pkg/history.
type Entry = history.Entry

// Session options.
var (
	WithHistoryDepth          = nav.WithHistoryDepth
	WithTrimTrailingSlash     = nav.WithTrimTrailingSlash
	WithCaseInsensitiveStatic = nav.WithCaseInsensitiveStatic
	WithMiddleware            = nav.WithMiddleware
	WithErrorHook             = nav.WithErrorHook
)

// Navigation options.
var (
	WithReplace = nav.WithReplace
	WithState   = nav.WithState
)

// New compiles definitions into a route tree and binds a session to it.
// Call Init on the session before navigating.
func New(defs []Definition, opts ...Option) (*Session, error) {
	tree, err := router.BuildTree(defs)
	if err != nil {
		return nil, err
	}
	return nav.New(tree, opts...), nil
}

// MustNew is New for static route tables; it panics on invalid patterns.
func MustNew(defs []Definition, opts ...Option) *Session {
	s, err := New(defs, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
