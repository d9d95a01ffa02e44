package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

const demoTOML = `
[policy]
trim_trailing_slash = true
history_depth = 64

[[route]]
pattern = "/"
view = "Home"

[[route]]
pattern = "/about"
view = "About"

[[route]]
pattern = "/dashboard"
view = "Dashboard"
catch_all = "DashboardNotFound"

  [[route.children]]
  pattern = "courses"
  view = "Courses"

  [[route.children]]
  pattern = "settings/:tab"
  view = "Settings"
`

const demoJSON = `{
  "policy": {"trim_trailing_slash": true, "history_depth": 64},
  "routes": [
    {"pattern": "/", "view": "Home"},
    {"pattern": "/about", "view": "About"},
    {"pattern": "/dashboard", "view": "Dashboard", "catch_all": "DashboardNotFound",
     "children": [
       {"pattern": "courses", "view": "Courses"},
       {"pattern": "settings/:tab", "view": "Settings"}
     ]}
  ]
}`

func TestParseTOML(t *testing.T) {
	m, err := Parse([]byte(demoTOML))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if !m.Policy.TrimTrailingSlash {
		t.Error("policy.trim_trailing_slash not parsed")
	}
	if m.Policy.HistoryDepth != 64 {
		t.Errorf("history_depth = %d, want 64", m.Policy.HistoryDepth)
	}
	if len(m.Routes) != 3 {
		t.Fatalf("routes = %d, want 3", len(m.Routes))
	}
	dash := m.Routes[2]
	if dash.CatchAll != "DashboardNotFound" {
		t.Errorf("catch_all = %q, want DashboardNotFound", dash.CatchAll)
	}
	if len(dash.Children) != 2 || dash.Children[1].Pattern != "settings/:tab" {
		t.Errorf("children = %+v, want courses + settings/:tab", dash.Children)
	}
}

func TestParseJSONMatchesTOML(t *testing.T) {
	fromTOML, err := Parse([]byte(demoTOML))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	fromJSON, err := ParseJSON([]byte(demoJSON))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}

	if !reflect.DeepEqual(fromTOML, fromJSON) {
		t.Errorf("TOML and JSON forms disagree:\n toml: %+v\n json: %+v", fromTOML, fromJSON)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want error
	}{
		{"no routes", `[policy]` + "\n" + `history_depth = 4`, ErrNoRoutes},
		{"missing pattern", "[[route]]\nview = \"Home\"", ErrMissingPattern},
		{"missing view", "[[route]]\npattern = \"/\"", ErrMissingView},
		{"missing child view", "[[route]]\npattern = \"/\"\nview = \"Home\"\n[[route.children]]\npattern = \"x\"", ErrMissingView},
		{"negative history depth", "[policy]\nhistory_depth = -1\n[[route]]\npattern = \"/\"\nview = \"Home\"", ErrInvalidHistoryCap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDefinitionsPreserveOrder(t *testing.T) {
	m, err := Parse([]byte(demoTOML))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	defs := m.Definitions()
	got := make([]string, len(defs))
	for i, d := range defs {
		got[i] = d.View
	}
	if want := []string{"Home", "About", "Dashboard"}; !reflect.DeepEqual(got, want) {
		t.Errorf("top-level views = %v, want %v", got, want)
	}
	if defs[2].CatchAllView != "DashboardNotFound" {
		t.Errorf("CatchAllView = %q, want DashboardNotFound", defs[2].CatchAllView)
	}
}

func TestBuildSurfacesPatternErrors(t *testing.T) {
	m, err := Parse([]byte("[[route]]\npattern = \"/files/*rest/tail\"\nview = \"Files\""))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	_, err = m.Build()
	var perr *router.PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("Build error = %v, want *router.PatternError", err)
	}
	if perr.Pattern != "/files/*rest/tail" {
		t.Errorf("Pattern = %q, want /files/*rest/tail", perr.Pattern)
	}
}

func TestSessionFromManifest(t *testing.T) {
	m, err := Parse([]byte(demoTOML))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	s, err := m.Session()
	if err != nil {
		t.Fatalf("Session error: %v", err)
	}
	if err := s.Init("/"); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	// Manifest policy enabled trailing-slash trimming.
	s.Navigate("/dashboard/settings/profile/")
	match, ok := s.Current()
	if !ok {
		t.Fatal("expected match under manifest policy")
	}
	if match.Params["tab"] != "profile" {
		t.Errorf("params[tab] = %q, want profile", match.Params["tab"])
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "routes.toml")
	if err := os.WriteFile(tomlPath, []byte(demoTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "routes.json")
	if err := os.WriteFile(jsonPath, []byte(demoJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{tomlPath, jsonPath} {
		m, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error: %v", path, err)
		}
		if len(m.Routes) != 3 {
			t.Errorf("Load(%s) routes = %d, want 3", path, len(m.Routes))
		}
	}

	t.Run("unknown extension", func(t *testing.T) {
		otherPath := filepath.Join(dir, "routes.yaml")
		if err := os.WriteFile(otherPath, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(otherPath)
		if !errors.Is(err, ErrUnknownExtension) {
			t.Errorf("Load error = %v, want ErrUnknownExtension", err)
		}
		var ferr *FileError
		if !errors.As(err, &ferr) || ferr.Path != otherPath {
			t.Errorf("error does not carry path: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.toml"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
