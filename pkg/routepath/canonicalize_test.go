package routepath

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{"empty input", "", "/"},
		{"root", "/", "/"},
		{"simple path", "/blog/post", "/blog/post"},
		{"missing leading slash", "blog/post", "/blog/post"},
		{"double slashes", "/blog//post", "/blog/post"},
		{"many slashes", "/a///b////c", "/a/b/c"},
		{"dot segment", "/blog/./post", "/blog/post"},
		{"dotdot segment", "/blog/../other", "/other"},
		{"dotdot chain", "/a/b/../../c", "/c"},
		{"query preserved", "/blog?page=2", "/blog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, Policy{})
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tt.input, err)
			}
			if got.Path != tt.wantPath {
				t.Errorf("Normalize(%q).Path = %q, want %q", tt.input, got.Path, tt.wantPath)
			}
		})
	}
}

func TestNormalizeTrailingSlash(t *testing.T) {
	// Strict default keeps the trailing slash.
	got, err := Normalize("/user/42/", Policy{})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got.Path != "/user/42/" {
		t.Errorf("strict policy: Path = %q, want %q", got.Path, "/user/42/")
	}

	// Opt-in trimming removes it.
	got, err = Normalize("/user/42/", Policy{TrimTrailingSlash: true})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got.Path != "/user/42" {
		t.Errorf("trim policy: Path = %q, want %q", got.Path, "/user/42")
	}

	// Root never grows or loses its slash.
	got, err = Normalize("/", Policy{TrimTrailingSlash: true})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got.Path != "/" {
		t.Errorf("root: Path = %q, want %q", got.Path, "/")
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"backslash", `/blog\post`, ErrBackslashInPath},
		{"literal nul", "/blog\x00", ErrNullByteInPath},
		{"encoded nul", "/blog%00", ErrNullByteInPath},
		{"encoded nul lowercase", "/blog%00x", ErrNullByteInPath},
		{"bad escape", "/blog%GG", ErrInvalidPercentEscape},
		{"truncated escape", "/blog%2", ErrInvalidPercentEscape},
		{"escape above root", "/../secret", ErrPathEscapesRoot},
		{"deep escape above root", "/a/../../secret", ErrPathEscapesRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input, Policy{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Normalize(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeChanged(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/blog/post", false},
		{"/blog//post", true},
		{"blog", true},
		{"/blog/./post", true},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.input, Policy{})
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", tt.input, err)
		}
		if got.Changed != tt.want {
			t.Errorf("Normalize(%q).Changed = %v, want %v", tt.input, got.Changed, tt.want)
		}
	}
}

func TestValidateNavPath(t *testing.T) {
	tests := []struct {
		path   string
		wantOK bool
	}{
		{"/dashboard", true},
		{"/", true},
		{"dashboard", false},
		{"http://evil.example/x", false},
		{"https://evil.example/x", false},
		{"//evil.example/x", false},
		{"", false},
	}

	for _, tt := range tests {
		err := ValidateNavPath(tt.path)
		if (err == nil) != tt.wantOK {
			t.Errorf("ValidateNavPath(%q) = %v, want ok=%v", tt.path, err, tt.wantOK)
		}
	}
}

func TestDecodeSegment(t *testing.T) {
	tests := []struct {
		name     string
		segment  string
		wildcard bool
		want     string
		wantErr  error
	}{
		{"plain", "hello", false, "hello", nil},
		{"space", "hello%20world", false, "hello world", nil},
		{"unicode", "caf%C3%A9", false, "café", nil},
		{"encoded slash rejected", "a%2Fb", false, "", ErrEncodedSlashInSegment},
		{"encoded slash allowed in wildcard", "a%2Fb", true, "a/b", nil},
		{"bad escape", "%zz", false, "", ErrInvalidPercentEscape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSegment(tt.segment, tt.wildcard)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DecodeSegment(%q) error = %v, want %v", tt.segment, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DecodeSegment(%q) = %q, want %q", tt.segment, got, tt.want)
			}
		})
	}
}

func TestSplitPathAndQuery(t *testing.T) {
	tests := []struct {
		input     string
		wantPath  string
		wantQuery string
	}{
		{"/a/b?x=1", "/a/b", "x=1"},
		{"/a/b", "/a/b", ""},
		{"/a?x=1&y=2", "/a", "x=1&y=2"},
		{"/a?", "/a", ""},
	}

	for _, tt := range tests {
		path, query := SplitPathAndQuery(tt.input)
		if path != tt.wantPath || query != tt.wantQuery {
			t.Errorf("SplitPathAndQuery(%q) = (%q, %q), want (%q, %q)",
				tt.input, path, query, tt.wantPath, tt.wantQuery)
		}
	}
}
