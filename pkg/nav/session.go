package nav

import (
	"errors"
	"sync/atomic"

	"github.com/wayfind-dev/wayfind/pkg/history"
	"github.com/wayfind-dev/wayfind/pkg/routepath"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Session lifecycle errors.
var (
	ErrNotInitialized     = errors.New("session not initialized")
	ErrAlreadyInitialized = errors.New("session already initialized")
	ErrSessionClosed      = errors.New("session closed")
)

// RenderFunc is the view layer's single consumption point, invoked once
// per committed navigation with the root-to-leaf match chain so nested
// layouts render outer-to-inner.
type RenderFunc func(chain []*router.Node, params, query map[string]string)

// UnmatchedFunc is invoked instead of the render hook when no route
// matches the navigated path.
type UnmatchedFunc func(path string)

// Event is delivered to subscribers after every committed navigation.
type Event struct {
	// Op is the history operation that committed.
	Op history.Op

	// Entry is the history entry at the cursor.
	Entry history.Entry

	// Match is the committed match result.
	Match *router.Match

	// Query is the parsed query for the entry (last occurrence wins).
	Query map[string]string
}

// Listener receives committed navigation events.
type Listener func(Event)

// Handle identifies a subscription for later removal.
type Handle uint64

type sessionSub struct {
	id Handle
	fn Listener
}

// reqKind discriminates queued navigation requests.
type reqKind int

const (
	reqNavigate reqKind = iota
	reqBack
	reqForward
)

type request struct {
	kind reqKind
	path string
	opts NavigateOptions
}

// Stats is a snapshot of the session's counters.
type Stats struct {
	Navigations   uint64
	Replaces      uint64
	Unmatched     uint64
	Aborted       uint64
	BoundaryNoops uint64
}

// Session composes the route tree, matcher, and history stack behind a
// synchronous navigation API. See the package documentation for the
// concurrency and lifecycle contract.
type Session struct {
	tree         *router.Tree
	stack        *history.Stack
	policy       routepath.Policy
	matchOpts    router.MatchOptions
	middleware   []Middleware
	historyDepth int

	render    RenderFunc
	unmatched UnmatchedFunc
	errHook   func(error)

	subs   []sessionSub
	nextID Handle

	current       *router.Match
	currentQuery  map[string]string
	unmatchedPath string
	hasUnmatched  bool

	initialized bool
	closed      bool

	// draining guards the re-entrancy queue: while a fan-out runs, new
	// requests are appended to queue instead of being processed inline.
	draining bool
	queue    []request

	navigations   atomic.Uint64
	replaces      atomic.Uint64
	unmatchedNavs atomic.Uint64
	aborted       atomic.Uint64
	boundaryNoops atomic.Uint64
}

// New creates a session bound to tree. Call Init before navigating.
func New(tree *router.Tree, opts ...Option) *Session {
	s := &Session{
		tree:         tree,
		historyDepth: history.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.stack = history.NewStack(history.WithMaxDepth(s.historyDepth))
	return s
}

// OnRender sets the view layer's render hook. It is invoked before
// subscriber fan-out on every committed navigation.
func (s *Session) OnRender(fn RenderFunc) {
	s.render = fn
}

// OnUnmatched sets the not-found hook. Without one, an unmatched
// navigation still leaves the session in its unmatched state.
func (s *Session) OnUnmatched(fn UnmatchedFunc) {
	s.unmatched = fn
}

// Init commits the initial path and makes the session navigable. It
// returns an error when called twice or after Close; an unmatched initial
// path is not an error.
func (s *Session) Init(initialPath string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.initialized {
		return ErrAlreadyInitialized
	}
	s.initialized = true
	s.enqueue(request{kind: reqNavigate, path: initialPath})
	return nil
}

// Close tears the session down: all listeners are unsubscribed and the
// history stack is released. A closed session ignores navigation.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.subs = nil
	s.queue = nil
	s.current = nil
	s.currentQuery = nil
	s.stack.Clear()
}

// Navigate performs an in-memory navigation to path (which may carry a
// query string). It never blocks, never retries, and never returns an
// error: unmatched paths surface through the unmatched hook, pipeline
// errors through the error hook.
func (s *Session) Navigate(path string, opts ...NavigateOption) {
	if s.closed || !s.initialized {
		s.reportErr(ErrNotInitialized)
		return
	}

	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}
	s.enqueue(request{kind: reqNavigate, path: path, opts: options})
}

// Back moves one entry toward the oldest. It returns false at the stack
// boundary — a reported no-op, not an error.
func (s *Session) Back() bool {
	if s.closed || !s.initialized {
		return false
	}
	if !s.stack.CanBack() {
		s.boundaryNoops.Add(1)
		return false
	}
	s.enqueue(request{kind: reqBack})
	return true
}

// Forward moves one entry toward the newest. It returns false at the
// stack boundary.
func (s *Session) Forward() bool {
	if s.closed || !s.initialized {
		return false
	}
	if !s.stack.CanForward() {
		s.boundaryNoops.Add(1)
		return false
	}
	s.enqueue(request{kind: reqForward})
	return true
}

// Subscribe registers a listener for committed navigations. Notification
// order is subscription order.
func (s *Session) Subscribe(fn Listener) Handle {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, sessionSub{id: id, fn: fn})
	return id
}

// Unsubscribe removes a listener. Unknown handles are ignored.
func (s *Session) Unsubscribe(h Handle) {
	for i, sub := range s.subs {
		if sub.id == h {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Current returns the committed match. The boolean is false before the
// first committed navigation and while the session is unmatched.
func (s *Session) Current() (*router.Match, bool) {
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}

// CurrentEntry returns the history entry at the cursor.
func (s *Session) CurrentEntry() (history.Entry, bool) {
	return s.stack.Current()
}

// Query returns a copy of the parsed query for the current navigation.
func (s *Session) Query() map[string]string {
	out := make(map[string]string, len(s.currentQuery))
	for k, v := range s.currentQuery {
		out[k] = v
	}
	return out
}

// Unmatched returns the path of the last unmatched navigation. The
// boolean is false when the session is in a matched state.
func (s *Session) Unmatched() (string, bool) {
	return s.unmatchedPath, s.hasUnmatched
}

// History exposes the underlying stack for tooling. Mutating it directly
// bypasses matching; prefer Navigate/Back/Forward.
func (s *Session) History() *history.Stack {
	return s.stack
}

// Tree returns the bound route tree.
func (s *Session) Tree() *router.Tree {
	return s.tree
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Stats {
	return Stats{
		Navigations:   s.navigations.Load(),
		Replaces:      s.replaces.Load(),
		Unmatched:     s.unmatchedNavs.Load(),
		Aborted:       s.aborted.Load(),
		BoundaryNoops: s.boundaryNoops.Load(),
	}
}

// enqueue appends a request and drains the queue unless a drain is
// already running, in which case the request waits for the current
// fan-out to complete (re-entrant calls are queued, not interleaved).
func (s *Session) enqueue(r request) {
	s.queue = append(s.queue, r)
	if s.draining {
		return
	}
	s.draining = true
	for len(s.queue) > 0 && !s.closed {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.process(next)
	}
	s.draining = false
}

func (s *Session) process(r request) {
	switch r.kind {
	case reqNavigate:
		s.processNavigate(r.path, r.opts)
	case reqBack:
		if s.stack.Back() {
			s.restore(history.OpBack)
		}
	case reqForward:
		if s.stack.Forward() {
			s.restore(history.OpForward)
		}
	}
}

func (s *Session) processNavigate(path string, opts NavigateOptions) {
	if err := routepath.ValidateNavPath(path); err != nil {
		s.reportErr(err)
		return
	}

	result, err := routepath.Normalize(path, s.policy)
	if err != nil {
		s.reportErr(err)
		return
	}

	// A normalization rewrite forces replace so the raw and normalized
	// forms never occupy two history entries.
	replace := opts.Replace || result.Changed

	query := routepath.ParseQuery(result.Query)

	m, ok := s.tree.MatchWith(result.Path, s.matchOpts)
	if !ok {
		s.unmatchedNavs.Add(1)
		s.current = nil
		s.currentQuery = query
		s.unmatchedPath = result.Path
		s.hasUnmatched = true
		if s.unmatched != nil {
			s.unmatched(result.Path)
		}
		return
	}

	ctx := &Context{
		Path:    result.Path,
		Query:   query,
		Match:   m,
		Replace: replace,
	}

	commit := func() error {
		entry := history.Entry{Path: result.Path, Query: result.Query, State: opts.State}
		op := history.OpPush
		if replace {
			op = history.OpReplace
			s.replaces.Add(1)
			s.stack.Replace(entry)
		} else {
			s.stack.Push(entry)
		}
		s.navigations.Add(1)
		s.settle(m, query)
		s.fanOut(op, entry, m, query)
		return nil
	}

	if err := Compose(ctx, s.middleware, commit); err != nil {
		s.aborted.Add(1)
		s.reportErr(err)
	}
}

// restore re-runs the match for the entry the cursor moved to.
func (s *Session) restore(op history.Op) {
	entry, ok := s.stack.Current()
	if !ok {
		return
	}
	query := routepath.ParseQuery(entry.Query)

	m, matched := s.tree.MatchWith(entry.Path, s.matchOpts)
	if !matched {
		// Entries are only committed for matched paths; the tree is
		// immutable, so this branch means direct stack manipulation.
		s.unmatchedNavs.Add(1)
		s.current = nil
		s.currentQuery = query
		s.unmatchedPath = entry.Path
		s.hasUnmatched = true
		if s.unmatched != nil {
			s.unmatched(entry.Path)
		}
		return
	}

	s.navigations.Add(1)
	s.settle(m, query)
	s.fanOut(op, entry, m, query)
}

func (s *Session) settle(m *router.Match, query map[string]string) {
	s.current = m
	s.currentQuery = query
	s.unmatchedPath = ""
	s.hasUnmatched = false
}

// fanOut notifies the render hook and then every listener, in
// subscription order, synchronously.
func (s *Session) fanOut(op history.Op, entry history.Entry, m *router.Match, query map[string]string) {
	if s.render != nil {
		s.render(m.Chain, m.Params, query)
	}

	event := Event{Op: op, Entry: entry, Match: m, Query: query}
	snapshot := make([]sessionSub, len(s.subs))
	copy(snapshot, s.subs)
	for _, sub := range snapshot {
		if s.closed {
			return
		}
		sub.fn(event)
	}
}

func (s *Session) reportErr(err error) {
	if s.errHook != nil {
		s.errHook(err)
	}
}
