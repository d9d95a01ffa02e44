package router

import (
	"errors"
	"reflect"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		pattern string
		want    []Segment
	}{
		{"/", nil},
		{"/users", []Segment{{SegmentStatic, "users"}}},
		{"users", []Segment{{SegmentStatic, "users"}}},
		{"/user/:id", []Segment{{SegmentStatic, "user"}, {SegmentDynamic, "id"}}},
		{"/user/:id/profile", []Segment{
			{SegmentStatic, "user"}, {SegmentDynamic, "id"}, {SegmentStatic, "profile"},
		}},
		{"/files/*", []Segment{{SegmentStatic, "files"}, {SegmentWildcard, ""}}},
		{"/files/*path", []Segment{{SegmentStatic, "files"}, {SegmentWildcard, "path"}}},
		{":id", []Segment{{SegmentDynamic, "id"}}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.pattern, err)
			}
			got := p.Segments()
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compile(%q) segments = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"empty pattern", ""},
		{"non-terminal wildcard", "/files/*/extra"},
		{"named non-terminal wildcard", "/files/*path/extra"},
		{"duplicate dynamic names", "/user/:id/post/:id"},
		{"duplicate name with wildcard", "/user/:id/*id"},
		{"mixed static and dynamic", "/user/:id-:slug"},
		{"dynamic suffix on static", "/user/x:id"},
		{"star inside segment", "/user/a*b"},
		{"unnamed dynamic", "/user/:"},
		{"empty segment", "/user//profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.pattern)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want error", tt.pattern)
			}
			if !errors.Is(err, ErrInvalidPattern) {
				t.Errorf("Compile(%q) error = %v, want ErrInvalidPattern", tt.pattern, err)
			}
			var perr *PatternError
			if !errors.As(err, &perr) {
				t.Errorf("Compile(%q) error is not a *PatternError", tt.pattern)
			}
		})
	}
}

func TestCompileDeterministic(t *testing.T) {
	a := MustCompile("/user/:id/files/*rest")
	b := MustCompile("/user/:id/files/*rest")

	if !reflect.DeepEqual(a.Segments(), b.Segments()) {
		t.Error("equal inputs produced structurally different patterns")
	}
	if a.String() != b.String() {
		t.Errorf("String() = %q vs %q", a.String(), b.String())
	}
}

func TestPatternAccessors(t *testing.T) {
	p := MustCompile("/user/:id/files/*rest")

	if !p.HasWildcard() {
		t.Error("HasWildcard() = false, want true")
	}
	if got := p.NumSegments(); got != 4 {
		t.Errorf("NumSegments() = %d, want 4", got)
	}
	if got := p.DynamicNames(); !reflect.DeepEqual(got, []string{"id", "rest"}) {
		t.Errorf("DynamicNames() = %v, want [id rest]", got)
	}

	if p := MustCompile("/about"); p.HasWildcard() {
		t.Error("HasWildcard() = true for static pattern")
	}
}

func TestSegmentKindString(t *testing.T) {
	tests := []struct {
		kind SegmentKind
		want string
	}{
		{SegmentStatic, "static"},
		{SegmentDynamic, "dynamic"},
		{SegmentWildcard, "wildcard"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
