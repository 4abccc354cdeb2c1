package telemetry

import (
	"go.opentelemetry.io/otel/trace/noop"
)

// NewNoOpTracer returns a tracer whose spans record nothing. Engines built outside
// the graft graph, such as those in tests, use it in place of the global provider.
func NewNoOpTracer() *OTelTracer {
	return NewOTelTracerWithProvider(noop.NewTracerProvider(), "ppac")
}
