// Package routepath provides pure string-level helpers for navigation paths:
// normalization, percent-escape validation, segment decoding, and query
// parsing. It has no knowledge of route trees or history; the router and
// session packages build on it.
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Result contains the result of path normalization.
type Result struct {
	// Path is the normalized path (without query string).
	Path string

	// Query is the query string (without leading "?").
	Query string

	// Changed indicates if the path was modified during normalization.
	Changed bool
}

// Path validation errors.
var (
	ErrInvalidPath           = errors.New("invalid path")
	ErrBackslashInPath       = errors.New("path contains backslash")
	ErrNullByteInPath        = errors.New("path contains null byte")
	ErrInvalidPercentEscape  = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot       = errors.New("path escapes root via ..")
	ErrEncodedSlashInSegment = errors.New("encoded slash (%2F) in non-wildcard segment")
)

// Policy controls the optional, explicitly-configured normalization rules.
// The zero value is the strict default: trailing slashes are preserved (and
// therefore fail to match routes that do not declare a trailing empty
// segment).
type Policy struct {
	// TrimTrailingSlash removes a trailing slash (except for root "/").
	TrimTrailingSlash bool
}

// Normalize validates and normalizes a navigation path.
//
// The following transformations are always applied:
//   - Ensure a leading "/"
//   - Collapse repeated slashes (/blog//post -> /blog/post)
//   - Remove "." segments (/blog/./post -> /blog/post)
//   - Resolve ".." segments (/blog/../other -> /other)
//
// Trailing-slash removal is opt-in via Policy.TrimTrailingSlash.
//
// The following inputs are rejected:
//   - Paths containing backslash (\)
//   - Paths containing a NUL byte (literal or %00)
//   - Invalid percent-escapes (e.g. %GG, a truncated %2)
//   - ".." that would climb above root (e.g. /../secret)
//
// The input may include a query string, which is split off and preserved
// verbatim.
func Normalize(input string, policy Policy) (Result, error) {
	if input == "" {
		return Result{Path: "/", Changed: true}, nil
	}

	path, query := SplitPathAndQuery(input)

	// SECURITY: reject backslash and NUL before any other processing.
	if strings.Contains(path, "\\") {
		return Result{}, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return Result{}, ErrNullByteInPath
	}

	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return Result{}, err
		}
	}

	original := path

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	// Remember whether the caller's path ended in a slash so the strict
	// policy can preserve the trailing empty segment.
	trailing := len(path) > 1 && strings.HasSuffix(path, "/")

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	var kept []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) == 0 {
				// SECURITY: ".." would escape root.
				return Result{}, ErrPathEscapesRoot
			}
			kept = kept[:len(kept)-1]
		default:
			kept = append(kept, seg)
		}
	}

	path = "/" + strings.Join(kept, "/")

	if trailing && !policy.TrimTrailingSlash && len(kept) > 0 {
		path += "/"
	}

	return Result{
		Path:    path,
		Query:   query,
		Changed: path != original,
	}, nil
}

// ValidateNavPath checks that a navigation target is a relative path.
//
// Absolute URLs are rejected to prevent open-redirect style targets from
// entering the history stack:
//   - MUST start with "/"
//   - MUST NOT start with "http://", "https://", or "//"
func ValidateNavPath(path string) error {
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") {
		return ErrInvalidPath
	}
	if !strings.HasPrefix(path, "/") {
		return ErrInvalidPath
	}
	return nil
}

// SplitPathAndQuery splits input into path and query components.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// DecodeSegment percent-decodes a single path segment.
//
// For non-wildcard bindings, a decoded "/" (i.e. %2F in the raw segment)
// is rejected as a path smuggling attempt.
func DecodeSegment(segment string, wildcard bool) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	if !wildcard && strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInSegment
	}
	return decoded, nil
}

// validatePercentEscapes checks that every "%" begins a valid %XX escape.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); {
		if path[i] != '%' {
			i++
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 3
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
