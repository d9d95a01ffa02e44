// Package nav implements the navigation session: the glue object a view
// layer consumes. It composes the route tree, the matcher, the history
// stack, and the path utilities behind one entry point, Navigate.
//
// A session has an explicit lifecycle: New binds a tree, Init commits the
// initial path, Close tears everything down. There is no ambient global
// state; embedding two independent sessions in one process is fine.
//
// The session is single-threaded and cooperative. All operations are
// synchronous and run to completion; subscriber notification is a plain
// callback fan-out in subscription order. A subscriber that navigates
// during its own notification is queued and processed after the current
// fan-out completes, never recursively interleaved. Hosts that call from
// multiple goroutines must serialize access themselves — the session
// provides no internal locking.
//
// Missing routes are a normal outcome, not an error: the session enters
// an explicit unmatched state and invokes the registered not-found
// handler. Only malformed route definitions are fatal, and those fail at
// tree build time, never during navigation.
package nav
