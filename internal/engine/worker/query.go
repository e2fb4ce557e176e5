package worker

import (
	"context"

	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/engine/scan"
)

// LoadQuery synthesizes the module for a `?worker` or `?sharedworker` import.
// It returns nil for ids without a worker query.
func (p *Pipeline) LoadQuery(ctx context.Context, id string) (*domain.LoadResult, error) {
	q, ok := scan.ParseQuery(id)
	if !ok {
		return nil, nil
	}
	format := p.orchestrator.Format()

	if q.Inline {
		out, err := p.orchestrator.Bundle(ctx, id)
		if err != nil {
			return nil, err
		}
		return &domain.LoadResult{
			Contents:   InlineFactory(q.Kind, format, out.EntryCode),
			WatchFiles: out.WatchedFiles,
		}, nil
	}

	bundle, err := p.bundleThroughCache(ctx, p.queryCache, normalizePath(scan.CleanURL(id)))
	if err != nil {
		return nil, err
	}

	contents := URLFactory(q.Kind, format, bundle.EntryURLPlaceholder)
	if q.URL {
		contents = URLModule(bundle.EntryURLPlaceholder)
	}
	return &domain.LoadResult{
		Contents:   contents,
		WatchFiles: bundle.WatchedFiles,
	}, nil
}
