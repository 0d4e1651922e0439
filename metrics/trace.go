package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
)

const tracerName = "github.com/katalvlaran/gridstar/astar"

// Tracer wraps each search run in an OpenTelemetry span named "astar.Run".
type Tracer struct {
	tracer trace.Tracer
	ctx    context.Context
	span   trace.Span
	layout string
}

// NewTracer creates a Tracer from tp. Spans are children of ctx; layout is
// recorded as the gridstar.layout attribute.
func NewTracer(ctx context.Context, tp trace.TracerProvider, layout string) *Tracer {
	return &Tracer{tracer: tp.Tracer(tracerName), ctx: ctx, layout: layout}
}

// Options returns the hook options that open and close the run span.
func (t *Tracer) Options() []astar.Option {
	return []astar.Option{
		astar.WithOnStart(func(start, goal gridgraph.Cell) {
			_, t.span = t.tracer.Start(t.ctx, "astar.Run", trace.WithAttributes(
				attribute.String("gridstar.layout", t.layout),
				attribute.String("gridstar.start", start.String()),
				attribute.String("gridstar.goal", goal.String()),
			))
		}),
		astar.WithOnFinish(func(status astar.Status, expanded int) {
			if t.span == nil {
				return
			}
			t.span.SetAttributes(
				attribute.String("gridstar.status", status.String()),
				attribute.Int("gridstar.expanded", expanded),
			)
			if status == astar.Succeeded {
				t.span.SetStatus(codes.Ok, "")
			} else {
				t.span.AddEvent("no path")
			}
			t.span.End()
			t.span = nil
		}),
	}
}

// End closes the span of a run that stopped before a terminal status, such as
// one interrupted by a canceled context. err is recorded on the span. It is a
// no-op when no run span is open, so it is safe to defer.
func (t *Tracer) End(err error) {
	if t.span == nil {
		return
	}
	if err != nil {
		t.span.RecordError(err)
		t.span.SetStatus(codes.Error, err.Error())
	}
	t.span.AddEvent("abandoned")
	t.span.End()
	t.span = nil
}
