package middleware

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wayfind-dev/wayfind/pkg/nav"
)

func matchedContext(t *testing.T, path string) *nav.Context {
	t.Helper()
	m, ok := testTree(t).Match(path)
	if !ok {
		t.Fatalf("no match for %q", path)
	}
	return &nav.Context{Path: path, Match: m}
}

func TestOpenTelemetryStoresTraceContext(t *testing.T) {
	ctx := matchedContext(t, "/user/7")

	mw := OpenTelemetry(
		WithIncludeParams(true),
		WithAttributeExtractor(func(*nav.Context) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	var sawSpan bool
	err := mw.Handle(ctx, func() error {
		// The no-op global tracer still yields a usable span.
		_ = SpanFromContext(ctx)
		_ = trace.SpanContextFromContext(ctx.StdContext())
		sawSpan = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sawSpan {
		t.Fatal("next was not invoked")
	}

	stored := ctx.Value(spanContextKey{})
	if _, ok := stored.(context.Context); !ok {
		t.Fatalf("expected span context stored on ctx, got %T", stored)
	}
}

func TestOpenTelemetryErrorPropagates(t *testing.T) {
	ctx := matchedContext(t, "/user/7")
	abort := errors.New("abort")

	err := OpenTelemetry().Handle(ctx, func() error { return abort })
	if !errors.Is(err, abort) {
		t.Fatalf("error = %v, want abort", err)
	}
}

func TestOpenTelemetryFilterSkipsSpan(t *testing.T) {
	ctx := matchedContext(t, "/user/7")

	mw := OpenTelemetry(WithNavigationFilter(func(*nav.Context) bool { return false }))

	var called bool
	if err := mw.Handle(ctx, func() error { called = true; return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("next was not invoked")
	}
	if got := ctx.Value(spanContextKey{}); got != nil {
		t.Errorf("span context stored despite filter: %v", got)
	}
}

func TestOpenTelemetryOnSession(t *testing.T) {
	s := nav.New(testTree(t), nav.WithMiddleware(OpenTelemetry()))
	if err := s.Init("/"); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	s.Navigate("/user/3")

	m, ok := s.Current()
	if !ok || m.Params["id"] != "3" {
		t.Fatalf("navigation did not commit through tracing middleware: %v, %v", m, ok)
	}
}
