package telemetry

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/spawn/internal/core/ports"
)

// WorkerSpanName is the span started for every nested worker build.
const WorkerSpanName = "worker.bundle"

// LogBridge implements sdktrace.SpanProcessor and reports finished worker builds to a logger.
type LogBridge struct {
	logger ports.Logger
	root   string
}

// NewLogBridge returns a bridge that logs entries relative to root.
func NewLogBridge(logger ports.Logger, root string) *LogBridge {
	return &LogBridge{
		logger: logger,
		root:   root,
	}
}

// OnStart does nothing.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs a summary line for worker build spans.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if s.Name() != WorkerSpanName || s.Status().Code == codes.Error {
		return
	}

	var entry, filename string
	for _, kv := range s.Attributes() {
		switch kv.Key {
		case attribute.Key("worker.entry"):
			entry = kv.Value.AsString()
		case attribute.Key("worker.filename"):
			filename = kv.Value.AsString()
		}
	}
	if rel, err := filepath.Rel(b.root, filepath.FromSlash(entry)); err == nil && b.root != "" {
		entry = filepath.ToSlash(rel)
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	b.logger.Info(fmt.Sprintf("bundled worker %s → %s (%s)", entry, filename, elapsed))
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}
