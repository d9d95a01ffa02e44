// Package errors provides coded errors for the CLI surface. Library
// packages return plain sentinel and typed errors; this package maps
// them to stable codes with fix suggestions for terminal reporting.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/wayfind-dev/wayfind/pkg/manifest"
	"github.com/wayfind-dev/wayfind/pkg/routepath"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Category represents the type of error.
type Category string

const (
	CategoryPattern  Category = "pattern"
	CategoryManifest Category = "manifest"
	CategoryPath     Category = "path"
	CategoryCLI      Category = "cli"
)

// CodedError is a structured error with a stable code and a fix
// suggestion for terminal display.
type CodedError struct {
	// Code is a unique error identifier (e.g., "W001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *CodedError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *CodedError) WithDetail(format string, args ...any) *CodedError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion replaces the fix suggestion.
func (e *CodedError) WithSuggestion(s string) *CodedError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *CodedError) Wrap(err error) *CodedError {
	e.Wrapped = err
	return e
}

// New creates a CodedError from a registered error code.
func New(code string) *CodedError {
	template, ok := registry[code]
	if !ok {
		return &CodedError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &CodedError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a CodedError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *CodedError {
	return &CodedError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Classify maps a library error to a coded error. Unknown errors come
// back as an uncoded CLI error so they still format consistently.
func Classify(err error) *CodedError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CodedError); ok {
		return ce
	}

	var perr *router.PatternError
	if stderrors.As(err, &perr) {
		return New("W001").WithDetail("pattern %q: %s", perr.Pattern, perr.Reason).Wrap(err)
	}

	var derr *router.DuplicateViewError
	if stderrors.As(err, &derr) {
		return New("W002").
			WithDetail("view %q appears at %q and %q", derr.View, derr.First, derr.Second).
			Wrap(err)
	}

	switch {
	case stderrors.Is(err, manifest.ErrNoRoutes):
		return New("W010").Wrap(err)
	case stderrors.Is(err, manifest.ErrMissingPattern),
		stderrors.Is(err, manifest.ErrMissingView):
		return New("W011").WithDetail("%v", err).Wrap(err)
	case stderrors.Is(err, manifest.ErrUnknownExtension):
		return New("W012").Wrap(err)
	case stderrors.Is(err, manifest.ErrInvalidHistoryCap):
		return New("W013").WithDetail("%v", err).Wrap(err)
	case stderrors.Is(err, routepath.ErrInvalidPath),
		stderrors.Is(err, routepath.ErrBackslashInPath),
		stderrors.Is(err, routepath.ErrNullByteInPath),
		stderrors.Is(err, routepath.ErrInvalidPercentEscape),
		stderrors.Is(err, routepath.ErrPathEscapesRoot):
		return New("W020").WithDetail("%v", err).Wrap(err)
	}

	return Newf(CategoryCLI, "%v", err).Wrap(err)
}
