// Package worker turns worker references in module source into separately bundled entries.
//
// A Pipeline is created once per host build and owns two bundle caches: one for
// query-suffixed imports and one for `new URL(..., import.meta.url)` references. The host
// drives it through the ports.Pipeline hooks in this order on every pass: BuildStart,
// LoadQuery and TransformURL while modules load, Render for every output chunk, then
// Finalize. FileChanged may be called between passes.
package worker

import (
	"context"

	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/spawn/internal/engine/cache"
	"go.trai.ch/spawn/internal/engine/scan"
)

// Pipeline implements ports.Pipeline.
type Pipeline struct {
	orchestrator *Orchestrator
	logger       ports.Logger
	finder       scan.CandidateFinder

	root   string
	outDir string

	queryCache *cache.Cache
	urlCache   *cache.Cache
	emitter    *Emitter
}

var _ ports.Pipeline = (*Pipeline)(nil)

// NewPipeline creates the worker pipeline for one project build.
func NewPipeline(project *domain.Project, compiler ports.Compiler, logger ports.Logger, tracer ports.Tracer) *Pipeline {
	return &Pipeline{
		orchestrator: NewOrchestrator(compiler, project.Worker, tracer),
		logger:       logger,
		finder:       scan.RegexpFinder{},
		root:         project.Root,
		outDir:       project.OutputDir(),
		queryCache:   cache.New(logger),
		urlCache:     cache.New(logger),
		emitter:      NewEmitter(logger),
	}
}

// BuildStart resets per-pass emission tracking.
func (p *Pipeline) BuildStart() {
	p.emitter.Reset()
}

// FileChanged marks cached bundles that read path as invalidated.
func (p *Pipeline) FileChanged(path string) {
	path = normalizePath(path)
	p.queryCache.InvalidateAffected(path)
	p.urlCache.InvalidateAffected(path)
}

// Finalize emits every live worker entry and asset into the pass output.
func (p *Pipeline) Finalize(bundle ports.OutputBundle) {
	for _, c := range []*cache.Cache{p.queryCache, p.urlCache} {
		for _, b := range c.Bundles() {
			p.emitter.Emit(bundle, b.EntryFilename, []byte(b.EntryCode))
		}
		for _, a := range c.Assets() {
			p.emitter.Emit(bundle, a.FileName, a.Source)
		}
	}
}

// bundleThroughCache returns the live bundle for sourceFile, compiling it when it is
// missing or was invalidated since it was built.
func (p *Pipeline) bundleThroughCache(ctx context.Context, c *cache.Cache, sourceFile string) (*domain.WorkerBundle, error) {
	c.RemoveIfInvalidated(sourceFile)
	if b, ok := c.Bundle(sourceFile); ok {
		return b, nil
	}

	out, err := p.orchestrator.Bundle(ctx, sourceFile)
	if err != nil {
		return nil, err
	}
	return c.Save(sourceFile, out), nil
}
