package modules

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Default tracer name for vtree patches.
const defaultTracerName = "vtree"

// TracingConfig configures the OpenTelemetry module.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "vtree").
	TracerName string

	// SpanName is the name given to each patch span (default: "vtree.patch").
	SpanName string

	// Context returns the parent context for the next patch span.
	// If nil, context.Background() is used.
	Context func() context.Context

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider
}

// TracingOption configures the OpenTelemetry module.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithSpanName sets the span name.
func WithSpanName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.SpanName = name
	}
}

// WithParentContext sets the function providing each span's parent context.
func WithParentContext(fn func() context.Context) TracingOption {
	return func(c *TracingConfig) {
		c.Context = fn
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.TracerProvider = tp
	}
}

// patchSpan tracks the span of the patch in progress.
type patchSpan struct {
	span      trace.Span
	created   int
	updated   int
	destroyed int
	removed   int
}

// Tracing returns a module that wraps every patch in a span, opened by the
// pre hook and ended by the post hook, with per-patch node counts recorded
// as span attributes.
//
// The tracer comes from the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before patching:
//
//	otel.SetTracerProvider(tp)
func Tracing(opts ...TracingOption) reconcile.Module {
	config := TracingConfig{
		TracerName: defaultTracerName,
		SpanName:   "vtree.patch",
	}
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	var cur patchSpan
	return reconcile.Module{
		Name: "tracing",
		Pre: func() {
			ctx := context.Background()
			if config.Context != nil {
				ctx = config.Context()
			}
			_, span := tracer.Start(ctx, config.SpanName, trace.WithSpanKind(trace.SpanKindInternal))
			cur = patchSpan{span: span}
		},
		Create:  func(_, _ *vdom.VNode) { cur.created++ },
		Update:  func(_, _ *vdom.VNode) { cur.updated++ },
		Destroy: func(_ *vdom.VNode) { cur.destroyed++ },
		Remove: func(_ *vdom.VNode, rm func()) {
			cur.removed++
			rm()
		},
		Post: func() {
			if cur.span == nil {
				return
			}
			cur.span.SetAttributes(
				attribute.Int("vtree.nodes_created", cur.created),
				attribute.Int("vtree.nodes_updated", cur.updated),
				attribute.Int("vtree.nodes_destroyed", cur.destroyed),
				attribute.Int("vtree.nodes_removed", cur.removed),
			)
			cur.span.End()
			cur = patchSpan{}
		},
	}
}
