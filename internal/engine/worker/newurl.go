package worker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/spawn/internal/engine/scan"
	"go.trai.ch/zerr"
)

// TransformURL rewrites `new Worker(new URL("<path>", import.meta.url))` in the module
// id so the URL points at a placeholder for the bundled worker. Already rewritten
// references are left alone.
func (p *Pipeline) TransformURL(
	ctx context.Context, code, id string, resolver ports.Resolver,
) (*domain.TransformResult, error) {
	if !scan.MayContainWorkerURL(code) {
		return &domain.TransformResult{Code: code}, nil
	}
	masked, err := scan.Mask(code)
	if err != nil {
		p.logger.Warn(fmt.Sprintf("%s: %v, worker references after it are not rewritten",
			positionString(code, id, err), err))
	}

	ed := scan.NewEditor(code)
	var watch []string
	for _, c := range p.finder.Find(masked) {
		raw := code[c.URLStart:c.URLEnd]
		if c.Quote(code) == '`' && strings.Contains(raw, "${") {
			return nil, positioned(domain.ErrUnsupportedPattern, id, c.ExprStart)
		}

		url := c.URL(code)
		if strings.Contains(url, domain.PlaceholderPrefix) {
			continue
		}

		file, err := p.resolveWorkerURL(ctx, url, id, resolver)
		if err != nil {
			return nil, positioned(err, id, c.ExprStart)
		}

		bundle, err := p.bundleThroughCache(ctx, p.urlCache, file)
		if err != nil {
			return nil, err
		}
		watch = append(watch, bundle.WatchedFiles...)
		ed.Overwrite(c.ExprStart, c.ExprEnd, "new URL("+jsString(bundle.EntryURLPlaceholder)+", import.meta.url)")
	}

	return &domain.TransformResult{
		Code:       ed.String(),
		Changed:    ed.Changed(),
		WatchFiles: watch,
	}, nil
}

// resolveWorkerURL maps a worker URL literal to the absolute path of its entry.
func (p *Pipeline) resolveWorkerURL(ctx context.Context, url, importer string, resolver ports.Resolver) (string, error) {
	relative := normalizePath(filepath.Join(filepath.Dir(importer), filepath.FromSlash(url)))

	switch {
	case strings.HasPrefix(url, "."):
		return relative, nil
	case strings.HasPrefix(url, "/"):
		return normalizePath(filepath.Join(p.root, filepath.FromSlash(url[1:]))), nil
	}

	file, err := resolver.Resolve(ctx, url, importer)
	if err != nil {
		return relative, nil
	}
	if file == "" {
		return "", domain.WithMeta(domain.ErrWorkerResolution, "url", url)
	}
	return normalizePath(scan.CleanURL(file)), nil
}

// positioned attaches the source location of a failure.
func positioned(err error, file string, offset int) error {
	return domain.WithMeta(err, "file", file, "offset", offset)
}

// positionString formats the location recorded in err's offset metadata.
func positionString(code, file string, err error) string {
	var offset int
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		offset, _ = zErr.Metadata()["offset"].(int)
	}
	pos := scan.PositionAt(code, offset)
	return fmt.Sprintf("%s:%d:%d", file, pos.Line, pos.Column)
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
