// Package history implements the navigation stack: an ordered list of
// entries with a movable cursor, browser-style push/replace/back/forward
// semantics, and synchronous subscriber notification.
//
// The stack is single-threaded and cooperative like the rest of the router
// core; embedding hosts serialize access themselves.
package history

import "sync/atomic"

// DefaultMaxDepth is the stack cap applied when none is configured.
const DefaultMaxDepth = 128

// Entry represents one navigation in the stack.
type Entry struct {
	// Path is the full navigation path, without query string.
	Path string

	// Query is the raw query string, without leading "?".
	Query string

	// State is an arbitrary opaque payload attached by the caller at
	// push/replace time. The stack never inspects it.
	State any
}

// Op identifies which stack operation produced a notification.
type Op int

const (
	OpPush Op = iota
	OpReplace
	OpBack
	OpForward
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpPush:
		return "push"
	case OpReplace:
		return "replace"
	case OpBack:
		return "back"
	case OpForward:
		return "forward"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after the cursor settles.
type Change struct {
	// Op is the operation that committed.
	Op Op

	// Entry is the entry at the cursor after the operation.
	Entry Entry

	// Cursor is the cursor position after the operation.
	Cursor int
}

// Handle identifies a subscription for later removal.
type Handle uint64

type subscriber struct {
	id Handle
	fn func(Change)
}

// Stack is the navigation history: entries plus a cursor. Every mutating
// operation notifies subscribers synchronously, in subscription order,
// after the cursor settles. There is no batching and no coalescing;
// ordering of rapid calls is strictly the call order.
type Stack struct {
	entries   []Entry
	cursor    int
	maxDepth  int
	subs      []subscriber
	nextID    Handle
	evictions atomic.Uint64
}

// Option configures a Stack.
type Option func(*Stack)

// WithMaxDepth caps the stack length. Pushing past the cap evicts the
// oldest entry. Values < 1 fall back to DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(s *Stack) {
		if n >= 1 {
			s.maxDepth = n
		}
	}
}

// NewStack creates an empty history stack.
func NewStack(opts ...Option) *Stack {
	s := &Stack{
		cursor:   -1,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push appends entry after the cursor, discarding any forward entries
// (navigating from the middle of the stack drops the old future), then
// advances the cursor. If the stack exceeds its cap, the oldest entry is
// evicted.
func (s *Stack) Push(entry Entry) {
	// Truncate the forward portion.
	s.entries = append(s.entries[:s.cursor+1], entry)
	s.cursor++

	if len(s.entries) > s.maxDepth {
		s.entries = s.entries[1:]
		s.cursor--
		s.evictions.Add(1)
	}

	s.notify(OpPush)
}

// Replace overwrites the entry at the cursor in place. It does not move
// the cursor and does not grow the stack. On an empty stack it behaves
// like Push.
func (s *Stack) Replace(entry Entry) {
	if s.cursor < 0 {
		s.Push(entry)
		return
	}
	s.entries[s.cursor] = entry
	s.notify(OpReplace)
}

// Back moves the cursor one entry toward the oldest. At the boundary it
// is a no-op and returns false; that is a reported outcome, not an error.
func (s *Stack) Back() bool {
	if s.cursor <= 0 {
		return false
	}
	s.cursor--
	s.notify(OpBack)
	return true
}

// Forward moves the cursor one entry toward the newest. At the boundary
// it is a no-op and returns false.
func (s *Stack) Forward() bool {
	if s.cursor < 0 || s.cursor >= len(s.entries)-1 {
		return false
	}
	s.cursor++
	s.notify(OpForward)
	return true
}

// CanBack reports whether Back would move the cursor.
func (s *Stack) CanBack() bool {
	return s.cursor > 0
}

// CanForward reports whether Forward would move the cursor.
func (s *Stack) CanForward() bool {
	return s.cursor >= 0 && s.cursor < len(s.entries)-1
}

// Current returns the entry at the cursor. The boolean is false when the
// stack is empty.
func (s *Stack) Current() (Entry, bool) {
	if s.cursor < 0 {
		return Entry{}, false
	}
	return s.entries[s.cursor], true
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Cursor returns the cursor position, -1 when empty.
func (s *Stack) Cursor() int {
	return s.cursor
}

// Entries returns a copy of the stack oldest-first, for tooling.
func (s *Stack) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Evictions returns how many entries were dropped past the cap.
func (s *Stack) Evictions() uint64 {
	return s.evictions.Load()
}

// Subscribe registers fn to be called synchronously after every committed
// operation. Notification order is subscription order.
func (s *Stack) Subscribe(fn func(Change)) Handle {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return id
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (s *Stack) Unsubscribe(h Handle) {
	for i, sub := range s.subs {
		if sub.id == h {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Clear drops all entries and subscribers. Used at session teardown.
func (s *Stack) Clear() {
	s.entries = nil
	s.cursor = -1
	s.subs = nil
}

func (s *Stack) notify(op Op) {
	entry := s.entries[s.cursor]
	change := Change{Op: op, Entry: entry, Cursor: s.cursor}
	// Iterate over a snapshot so a subscriber that unsubscribes during
	// the fan-out does not skip its neighbors.
	snapshot := make([]subscriber, len(s.subs))
	copy(snapshot, s.subs)
	for _, sub := range snapshot {
		sub.fn(change)
	}
}
