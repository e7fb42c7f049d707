package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/c3pm/internal/adapters/telemetry"
	"go.trai.ch/c3pm/internal/core/ports"
	"go.trai.ch/c3pm/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRecordedTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return telemetry.NewOTelTracerWithProvider(tp, "test"), recorder
}

func TestOTelTracer_SpanLifecycle(t *testing.T) {
	tracer, recorder := newRecordedTracer(t)

	ctx, parent := tracer.Start(context.Background(), "deps")
	_, child := tracer.Start(ctx, "fetch fmt")
	child.SetAttribute("dependency", "fmt")
	child.SetAttribute("depth", 1)
	child.SetAttribute("existing", false)
	child.SetAttribute("commit", struct{ ID string }{ID: "abc"})
	_, err := child.Write([]byte("cloning\n"))
	require.NoError(t, err)
	child.RecordError(errors.New("boom"))
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	fetch := spans[0]
	assert.Equal(t, "fetch fmt", fetch.Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), fetch.Parent().SpanID())
	assert.Equal(t, codes.Error, fetch.Status().Code)
	assert.Equal(t, "boom", fetch.Status().Description)
	assert.Contains(t, fetch.Attributes(), attribute.String("dependency", "fmt"))
	assert.Contains(t, fetch.Attributes(), attribute.Int("depth", 1))
	assert.Contains(t, fetch.Attributes(), attribute.Bool("existing", false))
	assert.Contains(t, fetch.Attributes(), attribute.String("commit", "{abc}"))

	var names []string
	for _, e := range fetch.Events() {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "log")
}

func TestOTelTracer_RecordNilError(t *testing.T) {
	tracer, recorder := newRecordedTracer(t)

	_, span := tracer.Start(context.Background(), "build")
	span.RecordError(nil)
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, codes.Unset, recorder.Ended()[0].Status().Code)
}

func TestOTelTracer_QuietSpan(t *testing.T) {
	tracer, recorder := newRecordedTracer(t)

	_, span := tracer.Start(context.Background(), "read manifest", ports.WithQuiet())
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Contains(t, recorder.Ended()[0].Attributes(), attribute.Bool(telemetry.QuietAttribute, true))
}

func TestOTelTracer_WriteForwardsToRenderer(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	tracer, _ := newRecordedTracer(t)
	tracer.WithRenderer(renderer)

	renderer.EXPECT().OnTaskLog(gomock.Any(), []byte("-- Configuring done\n")).Times(1)

	_, span := tracer.Start(context.Background(), "configure")
	_, err := span.Write([]byte("-- Configuring done\n"))
	require.NoError(t, err)
	span.End()

	_, quiet := tracer.Start(context.Background(), "hidden", ports.WithQuiet())
	_, err = quiet.Write([]byte("not forwarded\n"))
	require.NoError(t, err)
	quiet.End()
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "anything", ports.WithQuiet())
	assert.Equal(t, ctx, got)

	n, err := span.Write([]byte("data"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}
