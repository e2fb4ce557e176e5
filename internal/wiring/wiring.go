// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/spawn/internal/adapters/config"
	_ "go.trai.ch/spawn/internal/adapters/esbuild"
	_ "go.trai.ch/spawn/internal/adapters/fs"
	_ "go.trai.ch/spawn/internal/adapters/logger"
	_ "go.trai.ch/spawn/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/spawn/internal/app"
)
