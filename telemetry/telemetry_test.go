package telemetry

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/launchdarkly/http-contract-tests/steps"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	return sr, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
}

func TestStepsBecomeNestedSpans(t *testing.T) {
	sr, tp := newRecordingTracer()
	recorder := steps.NewRecorder(steps.Config{
		Listener: StepListener(context.Background(), tp.Tracer("test")),
	})

	err := recorder.Run("Create user", func() error {
		recorder.Attach("Request", "curl -X POST")
		return recorder.Run("Verify response", func() error { return nil })
	})
	require.NoError(t, err)

	ended := sr.Ended()
	require.Len(t, ended, 2)
	inner, outer := ended[0], ended[1]
	assert.Equal(t, "Verify response", inner.Name())
	assert.Equal(t, "Create user", outer.Name())
	assert.Equal(t, outer.SpanContext().SpanID(), inner.Parent().SpanID())
	assert.Equal(t, outer.SpanContext().TraceID(), inner.SpanContext().TraceID())
	assert.Equal(t, codes.Ok, outer.Status().Code)

	require.Len(t, outer.Events(), 1)
	assert.Equal(t, "attachment", outer.Events()[0].Name)

	var path string
	for _, a := range inner.Attributes() {
		if a.Key == "step.path" {
			path = a.Value.AsString()
		}
	}
	assert.Equal(t, "Create user / Verify response", path)
}

func TestFailedStepHasErrorStatus(t *testing.T) {
	sr, tp := newRecordingTracer()
	recorder := steps.NewRecorder(steps.Config{
		Listener: StepListener(context.Background(), tp.Tracer("test")),
	})

	_ = recorder.Run("Get user", func() error { return errors.New("expected HTTP status 404 but got 200") })

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, ended[0].Status().Description, "expected HTTP status 404")
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestStepSpanIsChildOfContextSpan(t *testing.T) {
	sr, tp := newRecordingTracer()
	ctx, root := tp.Tracer("test").Start(context.Background(), "suite")
	recorder := steps.NewRecorder(steps.Config{Listener: StepListener(ctx, tp.Tracer("test"))})

	require.NoError(t, recorder.Run("step", func() error { return nil }))
	root.End()

	ended := sr.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, root.SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestInitTracerWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracer("contract-tests", &buf)
	require.NoError(t, err)

	_, span := Tracer().Start(context.Background(), "Register user")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name": "Register user"`)
	assert.Contains(t, buf.String(), "contract-tests")
}
