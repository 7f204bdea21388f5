package telemetry

import (
	"context"
	"strings"
	"sync"

	"github.com/launchdarkly/http-contract-tests/steps"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type stepSpan struct {
	ctx  context.Context
	span trace.Span
}

type stepListener struct {
	base   context.Context
	tracer trace.Tracer
	open   []stepSpan
	lock   sync.Mutex
}

// StepListener returns a steps.Listener that starts a span when a step starts and ends it when
// the step finishes. Nested steps become child spans; the outermost step's span is a child of
// whatever span ctx carries.
func StepListener(ctx context.Context, tracer trace.Tracer) steps.Listener {
	return &stepListener{base: ctx, tracer: tracer}
}

func (l *stepListener) StepStarted(path []string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	parent := l.base
	if len(l.open) > 0 {
		parent = l.open[len(l.open)-1].ctx
	}
	ctx, span := l.tracer.Start(parent, path[len(path)-1],
		trace.WithAttributes(attribute.String("step.path", strings.Join(path, " / "))))
	l.open = append(l.open, stepSpan{ctx: ctx, span: span})
}

func (l *stepListener) StepFinished(record steps.StepRecord) {
	l.lock.Lock()
	if len(l.open) == 0 {
		l.lock.Unlock()
		return
	}
	top := l.open[len(l.open)-1]
	l.open = l.open[:len(l.open)-1]
	l.lock.Unlock()

	for _, a := range record.Attachments {
		top.span.AddEvent("attachment", trace.WithAttributes(
			attribute.String("attachment.name", a.Name),
			attribute.String("attachment.content", a.Content),
		))
	}
	if record.Err != nil {
		top.span.RecordError(record.Err)
		top.span.SetStatus(codes.Error, record.Err.Error())
	} else {
		top.span.SetStatus(codes.Ok, "")
	}
	top.span.End(trace.WithTimestamp(record.Start.Add(record.Duration)))
}
