package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spawn/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/spawn/internal/adapters/esbuild"   //nolint:depguard // Wired in app layer
	"go.trai.ch/spawn/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/spawn/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/spawn/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/spawn/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/spawn/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			esbuild.NodeID,
			fs.WriterNodeID,
			fs.HasherNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	bundler, err := graft.Dep[ports.Bundler](ctx)
	if err != nil {
		return nil, err
	}
	writer, err := graft.Dep[ports.OutputWriter](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	a := New(loader, bundler, writer, hasher, log, tracer)
	return a.WithWatcherFactory(func() (ports.Watcher, error) {
		return watcher.NewWatcher(log)
	}), nil
}
