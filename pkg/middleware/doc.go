// Package middleware provides observability middleware for navigation
// sessions: Prometheus metrics and OpenTelemetry tracing.
//
// Both constructors return a nav.Middleware and follow the same shape:
// functional options over a config struct, sensible defaults, and no
// required setup beyond registering the middleware on the session.
package middleware
