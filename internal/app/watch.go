package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/spawn/internal/adapters/watcher"
	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	ConfigPath string
}

// Watch builds the project and rebuilds it incrementally whenever a file under
// the project root changes, until ctx is canceled. Failed passes are reported
// and the loop keeps watching.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	project, err := a.loadProject(opts.ConfigPath)
	if err != nil {
		return err
	}
	if a.newWatcher == nil {
		return zerr.New("no file watcher configured")
	}

	session, pipeline, err := a.open(ctx, project)
	if err != nil {
		return err
	}
	defer session.Close()

	filter := newChangeFilter(watcher.NewContentFilter(a.hasher), project)

	report, err := a.runPass(ctx, project, session)
	if err != nil && !errors.Is(err, domain.ErrBuildFailed) {
		return err
	}
	filter.recordOutputs(report)

	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	g, gctx := errgroup.WithContext(ctx)
	if err := w.Start(gctx, project.Root); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	a.logger.Info("watching " + project.Root + " for changes")

	batches := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(project.Watch.Debounce, func(paths []string) {
		select {
		case batches <- paths:
		case <-gctx.Done():
		}
	})
	defer debouncer.Stop()

	g.Go(func() error {
		for event := range w.Events() {
			if filter.relevant(event) {
				debouncer.Add(event.Path)
			}
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case paths := <-batches:
				for _, p := range paths {
					pipeline.FileChanged(p)
				}
				a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(paths)))

				report, err := a.runPass(gctx, project, session)
				switch {
				case err == nil:
					filter.recordOutputs(report)
				case gctx.Err() != nil:
					return nil
				case !errors.Is(err, domain.ErrBuildFailed):
					return err
				}
			}
		}
	})

	return g.Wait()
}

// changeFilter decides which watch events should trigger a rebuild.
type changeFilter struct {
	content *watcher.ContentFilter
	outDir  string

	mu      sync.RWMutex
	written map[string]struct{}
}

func newChangeFilter(content *watcher.ContentFilter, project *domain.Project) *changeFilter {
	return &changeFilter{
		content: content,
		outDir:  project.Outdir,
		written: make(map[string]struct{}),
	}
}

// recordOutputs remembers the files of the last pass so writing them does not
// trigger another pass.
func (f *changeFilter) recordOutputs(report *domain.BuildReport) {
	if report == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, out := range report.Outputs {
		f.written[filepath.Clean(out.Path)] = struct{}{}
	}
}

func (f *changeFilter) relevant(event ports.WatchEvent) bool {
	path := filepath.Clean(event.Path)
	if f.outDir != "" && (path == f.outDir || strings.HasPrefix(path, f.outDir+string(filepath.Separator))) {
		return false
	}

	f.mu.RLock()
	_, written := f.written[path]
	f.mu.RUnlock()
	if written {
		return false
	}

	if event.Operation == ports.OpWrite || event.Operation == ports.OpCreate {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return false
		}
	}
	return f.content.Changed(path)
}
