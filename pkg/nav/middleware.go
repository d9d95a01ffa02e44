package nav

import (
	"context"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Context carries one navigation through the middleware chain. It is
// created per navigation and discarded after the commit.
type Context struct {
	// Path is the normalized navigation path, without query string.
	Path string

	// Query is the parsed query (last occurrence wins).
	Query map[string]string

	// Match is the successful match being committed.
	Match *router.Match

	// Replace reports whether the commit will replace instead of push.
	Replace bool

	std    context.Context
	values map[any]any
}

// StdContext returns the standard context for downstream calls (trace
// propagation and the like). Defaults to context.Background().
func (c *Context) StdContext() context.Context {
	if c.std == nil {
		return context.Background()
	}
	return c.std
}

// WithStdContext swaps the standard context, e.g. to carry a trace span.
func (c *Context) WithStdContext(ctx context.Context) {
	c.std = ctx
}

// Value returns a value stored by a middleware, or nil.
func (c *Context) Value(key any) any {
	if c.values == nil {
		return nil
	}
	return c.values[key]
}

// SetValue stores a value for downstream middleware.
func (c *Context) SetValue(key, val any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

// Middleware runs around the commit of a matched navigation. Returning an
// error (or not calling next) aborts the commit: the history stack is
// untouched and subscribers are not notified. Middleware never sees
// unmatched navigations; those bypass the commit entirely.
type Middleware interface {
	Handle(ctx *Context, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(ctx *Context, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx *Context, next func() error) error {
	return f(ctx, next)
}

// Compose builds a handler chain from middleware and a final commit.
// Middleware executes in order (first to last), the commit at the end.
func Compose(ctx *Context, mw []Middleware, commit func() error) error {
	if len(mw) == 0 {
		return commit()
	}

	chain := commit
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(ctx, next)
		}
	}
	return chain()
}

// Chain combines multiple middleware into one, preserving order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx *Context, next func() error) error {
		return Compose(ctx, middleware, next)
	})
}
