package ports

import (
	"context"

	"go.trai.ch/spawn/internal/core/domain"
)

// Pipeline is the set of hooks the host build drives during a pass.
type Pipeline interface {
	// BuildStart is called once at the start of every pass.
	BuildStart()
	// LoadQuery returns the synthesized module for a query-suffixed worker import,
	// or nil when id carries no worker query.
	LoadQuery(ctx context.Context, id string) (*domain.LoadResult, error)
	// TransformURL rewrites `new Worker(new URL(...))` references in one module.
	TransformURL(ctx context.Context, code, id string, resolver Resolver) (*domain.TransformResult, error)
	// Render replaces worker asset placeholders in an output chunk.
	Render(code string, rc domain.RenderContext) string
	// Finalize emits cached worker artifacts into the pass output.
	Finalize(bundle OutputBundle)
	// FileChanged invalidates cached worker bundles that depend on path.
	FileChanged(path string)
}

// Bundler opens host build sessions.
//
//go:generate go run go.uber.org/mock/mockgen -source=pipeline.go -destination=mocks/mock_pipeline.go -package=mocks
type Bundler interface {
	// Compiler returns a nested-build compiler for the project.
	Compiler(project *domain.Project) Compiler
	// Open prepares a host build with the pipeline installed.
	Open(ctx context.Context, project *domain.Project, pipeline Pipeline) (Session, error)
}

// Session is an open host build that can be run repeatedly.
type Session interface {
	// Rebuild runs one pass of the host build.
	Rebuild(ctx context.Context) (*domain.BuildReport, error)
	// Close releases the build.
	Close()
}
