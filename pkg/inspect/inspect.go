// Package inspect serves a development HTTP surface over a navigation
// session: the route table, a match probe, the history stack, a
// navigation endpoint, Prometheus metrics, and a websocket feed of
// committed navigations. It exists for tooling and debugging; the core
// router packages never perform I/O.
package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wayfind-dev/wayfind/pkg/nav"
)

// Server exposes a session over HTTP. The session is single-threaded;
// the server serializes all session access behind one mutex so concurrent
// requests cannot interleave navigations.
type Server struct {
	session *nav.Session
	mu      sync.Mutex

	logger  *slog.Logger
	metrics http.Handler

	feed *feed
}

// Option configures the inspection server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler replaces the /metrics handler, e.g. to expose a
// non-default Prometheus registry.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// New creates an inspection server over session and subscribes to it so
// committed navigations reach the websocket feed.
func New(session *nav.Session, opts ...Option) *Server {
	s := &Server{
		session: session,
		logger:  slog.Default(),
		metrics: promhttp.Handler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.feed = newFeed(s.logger)

	session.Subscribe(func(e nav.Event) {
		s.feed.broadcast(navigationFrame(e))
	})
	return s
}

// Handler returns the HTTP handler tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/routes", s.handleRoutes)
	r.Get("/match", s.handleMatch)
	r.Get("/history", s.handleHistory)
	r.Post("/navigate", s.handleNavigate)
	r.Post("/back", s.handleBack)
	r.Post("/forward", s.handleForward)
	r.Handle("/metrics", s.metrics)
	r.Get("/ws", s.feed.handleWebSocket)
	return r
}

// Close disconnects all websocket clients.
func (s *Server) Close() {
	s.feed.close()
}

type routePayload struct {
	Pattern  string `json:"pattern"`
	View     string `json:"view"`
	CatchAll string `json:"catch_all,omitempty"`
	Wildcard bool   `json:"wildcard,omitempty"`
	Depth    int    `json:"depth"`
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	routes := s.session.Tree().Routes()
	s.mu.Unlock()

	payload := make([]routePayload, len(routes))
	for i, info := range routes {
		payload[i] = routePayload{
			Pattern:  info.Path,
			View:     info.View,
			CatchAll: info.CatchAllView,
			Wildcard: info.Wildcard,
			Depth:    info.Depth,
		}
	}
	s.writeJSON(w, http.StatusOK, payload)
}

type matchPayload struct {
	Matched   bool              `json:"matched"`
	Views     []string          `json:"views,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
	Remainder string            `json:"remainder,omitempty"`
}

// handleMatch probes the tree without committing a navigation.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		s.writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	s.mu.Lock()
	m, ok := s.session.Tree().Match(path)
	s.mu.Unlock()

	if !ok {
		s.writeJSON(w, http.StatusOK, matchPayload{Matched: false})
		return
	}
	s.writeJSON(w, http.StatusOK, matchPayload{
		Matched:   true,
		Views:     m.Views(),
		Params:    m.Params,
		Remainder: m.Remainder,
	})
}

type historyPayload struct {
	Cursor  int            `json:"cursor"`
	Entries []entryPayload `json:"entries"`
}

type entryPayload struct {
	Path  string `json:"path"`
	Query string `json:"query,omitempty"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stack := s.session.History()
	entries := stack.Entries()
	cursor := stack.Cursor()
	s.mu.Unlock()

	payload := historyPayload{Cursor: cursor, Entries: make([]entryPayload, len(entries))}
	for i, e := range entries {
		payload.Entries[i] = entryPayload{Path: e.Path, Query: e.Query}
	}
	s.writeJSON(w, http.StatusOK, payload)
}

type navigateRequest struct {
	Path    string `json:"path"`
	Replace bool   `json:"replace,omitempty"`
}

type navigateResponse struct {
	Matched bool     `json:"matched"`
	Path    string   `json:"path"`
	Views   []string `json:"views,omitempty"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		s.writeError(w, http.StatusBadRequest, "missing path")
		return
	}

	s.mu.Lock()
	var opts []nav.NavigateOption
	if req.Replace {
		opts = append(opts, nav.WithReplace())
	}
	s.session.Navigate(req.Path, opts...)
	m, matched := s.session.Current()
	entry, _ := s.session.CurrentEntry()
	s.mu.Unlock()

	resp := navigateResponse{Matched: matched, Path: entry.Path}
	if matched {
		resp.Views = m.Views()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type movePayload struct {
	Moved bool   `json:"moved"`
	Path  string `json:"path,omitempty"`
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	moved := s.session.Back()
	entry, _ := s.session.CurrentEntry()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, movePayload{Moved: moved, Path: entry.Path})
}

func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	moved := s.session.Forward()
	entry, _ := s.session.CurrentEntry()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, movePayload{Moved: moved, Path: entry.Path})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("inspect: encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// frame is one websocket message, sent per committed navigation.
type frame struct {
	Op     string            `json:"op"`
	Path   string            `json:"path"`
	Query  map[string]string `json:"query,omitempty"`
	Views  []string          `json:"views"`
	Params map[string]string `json:"params,omitempty"`
}

func navigationFrame(e nav.Event) frame {
	return frame{
		Op:     e.Op.String(),
		Path:   e.Entry.Path,
		Query:  e.Query,
		Views:  e.Match.Views(),
		Params: e.Match.Params,
	}
}
