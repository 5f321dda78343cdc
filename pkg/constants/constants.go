// Package constants holds shared identifiers used across layers.
package constants

// ServiceName identifies this service in logs and traces.
const ServiceName = "shelfd"

// ContextKey represents keys used in context.Context.
type ContextKey string

const (
	// ContextKeyRequestID is the key for the per-request ID in context.
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTraceID is the key for the distributed trace ID in context.
	ContextKeyTraceID ContextKey = "trace_id"
)

// HeaderRequestID is the HTTP header carrying the request ID.
const HeaderRequestID = "X-Request-ID"

// EnvironmentProduction disables debug surfaces like pprof when set in
// server.environment.
const EnvironmentProduction = "production"
