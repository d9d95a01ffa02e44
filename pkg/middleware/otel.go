package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wayfind-dev/wayfind/pkg/nav"
)

// Default tracer name for navigation spans.
const defaultTracerName = "wayfind"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "wayfind").
	TracerName string

	// IncludeParams includes route parameter values as span attributes.
	// Parameter values come from user-controlled paths, so this is
	// disabled by default.
	IncludeParams bool

	// Filter determines which navigations to trace. Return true to
	// trace, false to skip. If nil, all navigations are traced.
	Filter func(ctx *nav.Context) bool

	// AttributeExtractor extracts custom attributes from the context.
	// Called for each traced navigation.
	AttributeExtractor func(ctx *nav.Context) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeParams enables route parameter values as span attributes.
func WithIncludeParams(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeParams = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(ctx *nav.Context) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx *nav.Context) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every committed
// navigation.
//
// The middleware:
//   - Creates a span per navigation named after the matched route pattern
//   - Injects the span context into ctx.StdContext() for downstream calls
//   - Records aborts as span errors and sets span status
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// before building the session:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) nav.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return nav.MiddlewareFunc(func(ctx *nav.Context, next func() error) error {
		if config.Filter != nil && !config.Filter(ctx) {
			return next()
		}

		route := routeLabel(ctx)

		attrs := []attribute.KeyValue{
			attribute.String("wayfind.path", ctx.Path),
			attribute.String("wayfind.route", route),
			attribute.Bool("wayfind.replace", ctx.Replace),
		}
		if config.IncludeParams && ctx.Match != nil {
			for name, value := range ctx.Match.Params {
				attrs = append(attrs, attribute.String("wayfind.param."+name, value))
			}
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ctx)...)
		}

		spanCtx, span := config.tracer.Start(
			ctx.StdContext(),
			"navigate "+route,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		// Downstream middleware and the commit see the span context.
		ctx.WithStdContext(spanCtx)
		ctx.SetValue(spanContextKey{}, spanCtx)

		err := next()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	})
}

type spanContextKey struct{}

// SpanFromContext retrieves the current trace span from a navigation
// context. Returns a no-op span if tracing middleware did not run.
func SpanFromContext(ctx *nav.Context) trace.Span {
	if spanCtx, ok := ctx.Value(spanContextKey{}).(context.Context); ok {
		return trace.SpanFromContext(spanCtx)
	}
	return trace.SpanFromContext(ctx.StdContext())
}
