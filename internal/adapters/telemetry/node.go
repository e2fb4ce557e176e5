package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/spawn/internal/adapters/logger"
	"go.trai.ch/spawn/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			provider := sdktrace.NewTracerProvider(
				sdktrace.WithSpanProcessor(NewLogBridge(log, wd)),
			)
			return NewOTelTracer(provider, "spawn"), nil
		},
	})
}
