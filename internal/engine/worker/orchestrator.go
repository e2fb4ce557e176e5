package worker

import (
	"context"
	"errors"
	"strings"

	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/spawn/internal/engine/scan"
	"go.trai.ch/zerr"
)

const (
	internalFormatOption = "output.format"
	publicFormatOption   = "worker.format"
)

// Orchestrator runs nested builds of worker entries.
type Orchestrator struct {
	compiler ports.Compiler
	options  domain.WorkerOptions
	tracer   ports.Tracer
}

// NewOrchestrator creates an orchestrator that compiles entries with the given options.
func NewOrchestrator(compiler ports.Compiler, options domain.WorkerOptions, tracer ports.Tracer) *Orchestrator {
	return &Orchestrator{
		compiler: compiler,
		options:  options,
		tracer:   tracer,
	}
}

// Format returns the worker format entries are compiled to.
func (o *Orchestrator) Format() domain.WorkerFormat {
	return o.options.Format
}

// Bundle compiles the worker entry identified by id, ignoring any query suffix.
func (o *Orchestrator) Bundle(ctx context.Context, id string) (*domain.SubBuildOutput, error) {
	entry := scan.CleanURL(id)

	ctx, span := o.tracer.Start(ctx, "worker.bundle", ports.WithAttribute("worker.entry", entry))
	defer span.End()

	req := domain.SubBuildRequest{
		Entry:   entry,
		Format:  o.options.Format,
		Options: o.options.SubBundle,
	}
	if o.options.ClassicOutput() {
		req.ModuleTransform = scan.RewriteImportMeta
	}

	out, err := o.compiler.Build(ctx, req)
	if err != nil {
		err = renameFormatOption(err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("worker.filename", out.EntryFilename)
	span.SetAttribute("worker.assets", len(out.Assets))
	return out, nil
}

// renameFormatOption rewrites errors about the nested build's output format so they
// name the option users actually set.
func renameFormatOption(err error) error {
	var zErr *zerr.Error
	if !errors.As(err, &zErr) || !strings.Contains(zErr.Message(), internalFormatOption) {
		return err
	}

	msg := strings.ReplaceAll(zErr.Message(), internalFormatOption, publicFormatOption)
	var renamed error
	if cause := errors.Unwrap(zErr); cause != nil {
		renamed = zerr.Wrap(cause, msg)
	} else {
		renamed = zerr.New(msg)
	}
	for k, v := range zErr.Metadata() {
		renamed = zerr.With(renamed, k, v)
	}
	return renamed
}
