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
	"go.trai.ch/spawn/internal/adapters/telemetry"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/spawn/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
	var _ sdktrace.SpanProcessor = (*telemetry.LogBridge)(nil)
}

func TestOTelTracer_Attributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := telemetry.NewOTelTracer(provider, "test")

	_, span := tracer.Start(context.Background(), "op", ports.WithAttribute("entry", "/src/w.ts"))
	span.SetAttribute("count", 3)
	span.SetAttribute("ok", true)
	span.SetAttribute("other", struct{ A int }{1})
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	attrs := ended[0].Attributes()
	assert.Contains(t, attrs, attribute.String("entry", "/src/w.ts"))
	assert.Contains(t, attrs, attribute.Int("count", 3))
	assert.Contains(t, attrs, attribute.Bool("ok", true))
	assert.Contains(t, attrs, attribute.String("other", "{1}"))
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "log", ended[0].Events()[0].Name)
}

func TestOTelSpan_RecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := telemetry.NewOTelTracer(provider, "test")

	_, span := tracer.Start(context.Background(), "op")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestLogBridge_LogsWorkerSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "bundled worker src/w.ts → w.js")
	}).Times(1)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(telemetry.NewLogBridge(logger, "/project")),
	)
	tracer := telemetry.NewOTelTracer(provider, "test")

	_, span := tracer.Start(context.Background(), telemetry.WorkerSpanName,
		ports.WithAttribute("worker.entry", "/project/src/w.ts"))
	span.SetAttribute("worker.filename", "w.js")
	span.End()

	_, other := tracer.Start(context.Background(), "build")
	other.End()

	_, failed := tracer.Start(context.Background(), telemetry.WorkerSpanName)
	failed.RecordError(errors.New("boom"))
	failed.End()
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()
	gotCtx, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, gotCtx)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.End()
}
