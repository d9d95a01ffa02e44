package router

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPattern is the sentinel wrapped by every *PatternError.
var ErrInvalidPattern = errors.New("invalid route pattern")

// PatternError describes why a route pattern failed to compile.
type PatternError struct {
	// Pattern is the offending pattern string.
	Pattern string

	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid route pattern %q: %s", e.Pattern, e.Reason)
}

// Unwrap returns ErrInvalidPattern for errors.Is support.
func (e *PatternError) Unwrap() error {
	return ErrInvalidPattern
}

func patternErrf(pattern, format string, args ...any) error {
	return &PatternError{Pattern: pattern, Reason: fmt.Sprintf(format, args...)}
}

// SegmentKind identifies how a pattern segment consumes path segments.
type SegmentKind int

const (
	// SegmentStatic matches one path segment byte-for-byte.
	SegmentStatic SegmentKind = iota

	// SegmentDynamic consumes one path segment unconditionally and binds
	// its decoded value to the segment name.
	SegmentDynamic

	// SegmentWildcard consumes the whole remainder of the path. It is
	// always the last segment of its pattern.
	SegmentWildcard
)

// String returns the kind name for debug output.
func (k SegmentKind) String() string {
	switch k {
	case SegmentStatic:
		return "static"
	case SegmentDynamic:
		return "dynamic"
	case SegmentWildcard:
		return "wildcard"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// Segment is one element of a compiled pattern.
type Segment struct {
	// Kind is the segment kind.
	Kind SegmentKind

	// Value is the literal text for static segments and the binding name
	// for dynamic segments. For wildcards it is the optional binding name
	// ("" for a bare "*").
	Value string
}

// Pattern is an immutable compiled route pattern.
type Pattern struct {
	raw      string
	segments []Segment
	wildcard bool
}

// Compile turns a pattern string into a matchable Pattern.
//
// It fails with a *PatternError (wrapping ErrInvalidPattern) when the
// pattern is empty, a wildcard is not the last segment, two dynamic
// segments share a name, a segment mixes static and dynamic syntax, or a
// segment is empty.
//
// Compilation is pure: the same input always yields structurally equal
// output.
func Compile(pattern string) (*Pattern, error) {
	if pattern == "" {
		return nil, patternErrf(pattern, "pattern is empty")
	}

	p := &Pattern{raw: pattern}

	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		// Root pattern "/" consumes nothing by itself.
		return p, nil
	}

	rawSegments := strings.Split(trimmed, "/")
	seen := make(map[string]bool, len(rawSegments))

	for i, seg := range rawSegments {
		if p.wildcard {
			return nil, patternErrf(pattern, "wildcard must be the last segment")
		}

		switch {
		case seg == "":
			return nil, patternErrf(pattern, "empty segment at position %d", i)

		case strings.HasPrefix(seg, "*"):
			name := seg[1:]
			if strings.ContainsAny(name, ":*") {
				return nil, patternErrf(pattern, "malformed wildcard segment %q", seg)
			}
			if name != "" {
				if seen[name] {
					return nil, patternErrf(pattern, "duplicate dynamic segment name %q", name)
				}
				seen[name] = true
			}
			p.segments = append(p.segments, Segment{Kind: SegmentWildcard, Value: name})
			p.wildcard = true

		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if name == "" {
				return nil, patternErrf(pattern, "dynamic segment has no name")
			}
			if strings.ContainsAny(name, ":*") {
				// ":id-:slug" and friends: a dynamic marker must own
				// the whole segment.
				return nil, patternErrf(pattern, "segment %q mixes static and dynamic syntax", seg)
			}
			if seen[name] {
				return nil, patternErrf(pattern, "duplicate dynamic segment name %q", name)
			}
			seen[name] = true
			p.segments = append(p.segments, Segment{Kind: SegmentDynamic, Value: name})

		default:
			if strings.ContainsAny(seg, ":*") {
				return nil, patternErrf(pattern, "segment %q mixes static and dynamic syntax", seg)
			}
			p.segments = append(p.segments, Segment{Kind: SegmentStatic, Value: seg})
		}
	}

	return p, nil
}

// MustCompile is like Compile but panics on error. Intended for static
// route tables in tests and examples.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original pattern string.
func (p *Pattern) String() string {
	return p.raw
}

// Segments returns a copy of the compiled segments.
func (p *Pattern) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// NumSegments returns the number of compiled segments.
func (p *Pattern) NumSegments() int {
	return len(p.segments)
}

// HasWildcard reports whether the pattern ends in a wildcard segment.
func (p *Pattern) HasWildcard() bool {
	return p.wildcard
}

// DynamicNames returns the binding names declared by the pattern, in
// segment order. The wildcard name is included when present.
func (p *Pattern) DynamicNames() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.Kind != SegmentStatic && seg.Value != "" {
			names = append(names, seg.Value)
		}
	}
	return names
}
