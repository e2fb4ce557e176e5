package esbuild

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/google/uuid"
	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/zerr"
)

// Bundler implements ports.Bundler.
type Bundler struct {
	tracer ports.Tracer
}

var _ ports.Bundler = (*Bundler)(nil)

// NewBundler creates a bundler that traces every build pass.
func NewBundler(tracer ports.Tracer) *Bundler {
	return &Bundler{tracer: tracer}
}

// Compiler returns the nested-build compiler for project.
func (b *Bundler) Compiler(project *domain.Project) ports.Compiler {
	return NewCompiler(project)
}

// Open creates an esbuild context for the project's main build with the worker
// pipeline installed.
func (b *Bundler) Open(_ context.Context, project *domain.Project, pipeline ports.Pipeline) (ports.Session, error) {
	opts, err := mainOptions(project)
	if err != nil {
		return nil, err
	}

	s := &Session{
		project:  project,
		pipeline: pipeline,
		tracer:   b.tracer,
		pass:     context.Background(),
	}
	opts.Plugins = []api.Plugin{
		queryPlugin(pipeline, s.passContext),
		newURLPlugin(pipeline, s.passContext),
	}

	bctx, cerr := api.Context(opts)
	if cerr != nil {
		return nil, hostFailure(cerr.Errors)
	}
	s.build = bctx
	return s, nil
}

func mainOptions(project *domain.Project) (api.BuildOptions, error) {
	format, err := parseFormat("format", project.Format)
	if err != nil {
		return api.BuildOptions{}, err
	}
	platform, err := parsePlatform("platform", project.Platform)
	if err != nil {
		return api.BuildOptions{}, err
	}

	return api.BuildOptions{
		EntryPoints:       project.EntryPoints,
		AbsWorkingDir:     project.Root,
		Outdir:            project.Outdir,
		Outfile:           project.Outfile,
		Bundle:            true,
		Write:             false,
		LogLevel:          api.LogLevelSilent,
		Format:            format,
		Platform:          platform,
		MinifyWhitespace:  project.Minify,
		MinifyIdentifiers: project.Minify,
		MinifySyntax:      project.Minify,
		Sourcemap:         sourceMap(project.Sourcemap),
	}, nil
}

// Session is an open esbuild context for the main build.
type Session struct {
	project  *domain.Project
	pipeline ports.Pipeline
	tracer   ports.Tracer
	build    api.BuildContext

	mu   sync.RWMutex
	pass context.Context
}

var _ ports.Session = (*Session)(nil)

// passContext returns the context of the running pass for plugin callbacks.
func (s *Session) passContext() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pass
}

// Rebuild runs one pass: esbuild builds the main bundle, placeholders in the emitted
// code are resolved, and cached worker artifacts are added to the output.
func (s *Session) Rebuild(ctx context.Context) (*domain.BuildReport, error) {
	id := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "build", ports.WithAttribute("build.id", id))
	defer span.End()

	s.mu.Lock()
	s.pass = ctx
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, s.build.Cancel)
	defer stop()

	start := time.Now()
	result := s.build.Rebuild()
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "build canceled")
	}
	if len(result.Errors) > 0 {
		// The id ties the reported failure to its trace.
		err := zerr.With(hostFailure(result.Errors), "build_id", id)
		span.RecordError(err)
		return nil, err
	}

	outputs := newOutputSet(s.project.OutputDir(), result.OutputFiles)
	rc := s.project.RenderContext()
	outputs.render(func(code string) string {
		return s.pipeline.Render(code, rc)
	})
	s.pipeline.Finalize(outputs)

	report := &domain.BuildReport{
		Outputs:  outputs.Files(),
		Warnings: formatMessages(result.Warnings),
		Duration: time.Since(start),
	}
	span.SetAttribute("build.outputs", len(report.Outputs))
	return report, nil
}

// Close disposes the esbuild context.
func (s *Session) Close() {
	s.build.Dispose()
}

func hostFailure(msgs []api.Message) error {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, formatMessage(m))
		for _, n := range m.Notes {
			if n.Text != "" {
				lines = append(lines, "  "+n.Text)
			}
		}
	}
	err := zerr.Wrap(domain.ErrHostBuildFailed, strings.Join(lines, "\n"))
	return zerr.With(err, "errors", len(msgs))
}
