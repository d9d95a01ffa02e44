// Package manifest loads declarative route tables from TOML or JSON
// files and turns them into route definitions. It is the input format of
// the wayfind CLI; programs embedding the router directly can skip it
// and build definitions in code.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wayfind-dev/wayfind/pkg/nav"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Manifest validation errors.
var (
	ErrNoRoutes          = errors.New("manifest declares no routes")
	ErrMissingPattern    = errors.New("route is missing a pattern")
	ErrMissingView       = errors.New("route is missing a view")
	ErrUnknownExtension  = errors.New("unknown manifest extension")
	ErrInvalidHistoryCap = errors.New("history_depth must be positive")
)

// Route is one route declaration. Children nest under the parent's
// pattern the same way router.Definition children do.
type Route struct {
	Pattern  string  `toml:"pattern" json:"pattern"`
	View     string  `toml:"view" json:"view"`
	CatchAll string  `toml:"catch_all" json:"catch_all,omitempty"`
	Children []Route `toml:"children" json:"children,omitempty"`
}

// Policy carries the session-level knobs a manifest may set.
type Policy struct {
	TrimTrailingSlash     bool `toml:"trim_trailing_slash" json:"trim_trailing_slash,omitempty"`
	CaseInsensitiveStatic bool `toml:"case_insensitive_static" json:"case_insensitive_static,omitempty"`
	HistoryDepth          int  `toml:"history_depth" json:"history_depth,omitempty"`
}

// Manifest is a parsed route table.
type Manifest struct {
	Policy Policy  `toml:"policy" json:"policy"`
	Routes []Route `toml:"route" json:"routes"`
}

// FileError wraps a parse or validation error with the manifest path.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Load reads a manifest file, dispatching on extension: ".toml" parses
// as TOML, ".json" as JSON. Parse and validation errors carry the path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m *Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		m, err = Parse(data)
	case ".json":
		m, err = ParseJSON(data)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownExtension, filepath.Ext(path))
	}
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return m, nil
}

// Parse parses TOML manifest data and validates it.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseJSON parses JSON manifest data and validates it.
func ParseJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if len(m.Routes) == 0 {
		return ErrNoRoutes
	}
	if m.Policy.HistoryDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHistoryCap, m.Policy.HistoryDepth)
	}
	for i := range m.Routes {
		if err := validateRoute(&m.Routes[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateRoute(r *Route) error {
	if r.Pattern == "" {
		return fmt.Errorf("%w (view %q)", ErrMissingPattern, r.View)
	}
	if r.View == "" {
		return fmt.Errorf("%w (pattern %q)", ErrMissingView, r.Pattern)
	}
	for i := range r.Children {
		if err := validateRoute(&r.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

// Definitions converts the manifest's routes into router definitions.
// Declaration order is preserved; it is the matcher's priority order.
func (m *Manifest) Definitions() []router.Definition {
	return toDefinitions(m.Routes)
}

func toDefinitions(routes []Route) []router.Definition {
	defs := make([]router.Definition, len(routes))
	for i, r := range routes {
		defs[i] = router.Definition{
			Pattern:      r.Pattern,
			View:         r.View,
			CatchAllView: r.CatchAll,
			Children:     toDefinitions(r.Children),
		}
	}
	return defs
}

// Build compiles the manifest into a route tree. Pattern errors surface
// the compiler's *router.PatternError unchanged.
func (m *Manifest) Build(opts ...router.TreeOption) (*router.Tree, error) {
	return router.BuildTree(m.Definitions(), opts...)
}

// SessionOptions translates the manifest policy into session options.
func (m *Manifest) SessionOptions() []nav.Option {
	var opts []nav.Option
	if m.Policy.TrimTrailingSlash {
		opts = append(opts, nav.WithTrimTrailingSlash())
	}
	if m.Policy.CaseInsensitiveStatic {
		opts = append(opts, nav.WithCaseInsensitiveStatic())
	}
	if m.Policy.HistoryDepth > 0 {
		opts = append(opts, nav.WithHistoryDepth(m.Policy.HistoryDepth))
	}
	return opts
}

// Session builds a tree and a session from the manifest in one step.
// Extra options are applied after the manifest policy so callers can
// override it.
func (m *Manifest) Session(opts ...nav.Option) (*nav.Session, error) {
	tree, err := m.Build()
	if err != nil {
		return nil, err
	}
	return nav.New(tree, append(m.SessionOptions(), opts...)...), nil
}
