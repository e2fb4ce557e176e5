// Package app implements the application layer for spawn.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/spawn/internal/engine/worker"
	"go.trai.ch/spawn/internal/ui/output"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	bundler      ports.Bundler
	writer       ports.OutputWriter
	hasher       ports.Hasher
	logger       ports.Logger
	tracer       ports.Tracer
	newWatcher   func() (ports.Watcher, error)
	summary      io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	bundler ports.Bundler,
	writer ports.OutputWriter,
	hasher ports.Hasher,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		bundler:      bundler,
		writer:       writer,
		hasher:       hasher,
		logger:       log,
		tracer:       tracer,
		summary:      os.Stderr,
	}
}

// WithWatcherFactory sets the constructor used by Watch to observe the project.
func (a *App) WithWatcherFactory(factory func() (ports.Watcher, error)) *App {
	a.newWatcher = factory
	return a
}

// WithSummaryOutput redirects the per-pass file summary.
func (a *App) WithSummaryOutput(w io.Writer) *App {
	a.summary = w
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// ConfigPath names the config file. When empty, spawn.yaml is searched
	// from the working directory upwards.
	ConfigPath string
}

// Build runs a single build pass and writes its outputs.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	project, err := a.loadProject(opts.ConfigPath)
	if err != nil {
		return err
	}

	session, _, err := a.open(ctx, project)
	if err != nil {
		return err
	}
	defer session.Close()

	_, err = a.runPass(ctx, project, session)
	return err
}

func (a *App) loadProject(configPath string) (*domain.Project, error) {
	target := configPath
	if target == "" {
		target = "."
	}
	project, err := a.configLoader.Load(target)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

// open creates the worker pipeline for project and installs it into a host session.
func (a *App) open(ctx context.Context, project *domain.Project) (ports.Session, *worker.Pipeline, error) {
	pipeline := worker.NewPipeline(project, a.bundler.Compiler(project), a.logger, a.tracer)
	session, err := a.bundler.Open(ctx, project, pipeline)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to prepare build")
	}
	return session, pipeline, nil
}

// runPass rebuilds, reports warnings, writes the outputs and prints the summary.
// Host build errors are logged here and surface as domain.ErrBuildFailed.
func (a *App) runPass(ctx context.Context, project *domain.Project, session ports.Session) (*domain.BuildReport, error) {
	report, err := session.Rebuild(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		a.logger.Error(err)
		return nil, domain.ErrBuildFailed
	}

	for _, warning := range report.Warnings {
		a.logger.Warn(warning)
	}

	if err := a.writer.Write(report.Outputs); err != nil {
		return nil, err
	}

	if err := output.WriteSummary(a.summary, summaryRows(project.Root, report.Outputs), report.Duration); err != nil {
		return nil, zerr.Wrap(err, "failed to write build summary")
	}
	return report, nil
}

func summaryRows(root string, files []domain.OutputFile) []output.SummaryRow {
	rows := make([]output.SummaryRow, 0, len(files))
	for _, f := range files {
		path := f.Path
		if rel, err := filepath.Rel(root, f.Path); err == nil {
			path = filepath.ToSlash(rel)
		}
		rows = append(rows, output.SummaryRow{Path: path, Size: len(f.Contents)})
	}
	return rows
}
