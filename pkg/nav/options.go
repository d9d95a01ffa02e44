package nav

// Option configures a Session at construction time.
type Option func(*Session)

// WithHistoryDepth caps the history stack; pushing past the cap evicts
// the oldest entry.
func WithHistoryDepth(n int) Option {
	return func(s *Session) {
		s.historyDepth = n
	}
}

// WithTrimTrailingSlash enables the trailing-slash normalization policy:
// "/user/42/" is treated as "/user/42". The default is strict.
func WithTrimTrailingSlash() Option {
	return func(s *Session) {
		s.policy.TrimTrailingSlash = true
		s.matchOpts.TrimTrailingSlash = true
	}
}

// WithCaseInsensitiveStatic compares static segments case-insensitively.
// The default is strict, case-sensitive matching.
func WithCaseInsensitiveStatic() Option {
	return func(s *Session) {
		s.matchOpts.CaseInsensitiveStatic = true
	}
}

// WithMiddleware appends middleware run around every committed
// navigation, in the given order.
func WithMiddleware(mw ...Middleware) Option {
	return func(s *Session) {
		s.middleware = append(s.middleware, mw...)
	}
}

// WithErrorHook sets the callback for navigation-pipeline errors:
// rejected paths and middleware aborts. Unmatched routes are not errors
// and never reach this hook.
func WithErrorHook(fn func(error)) Option {
	return func(s *Session) {
		s.errHook = fn
	}
}

// NavigateOptions configures one navigation.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// State is an opaque payload stored on the history entry.
	State any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithState attaches an opaque state payload to the history entry.
func WithState(state any) NavigateOption {
	return func(o *NavigateOptions) {
		o.State = state
	}
}
