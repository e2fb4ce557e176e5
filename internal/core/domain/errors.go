package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrWorkerResolution is returned when a worker URL cannot be resolved to a file.
	ErrWorkerResolution = zerr.New("could not resolve worker file")

	// ErrUnsupportedPattern is returned for `new URL(...)` calls whose path is a template with interpolation.
	ErrUnsupportedPattern = zerr.New("`new URL(url, import.meta.url)` is not supported in dynamic template string")

	// ErrSubBuildFailed is returned when the nested build of a worker entry fails.
	ErrSubBuildFailed = zerr.New("failed to bundle worker entry")

	// ErrEntryChunkMissing is returned when a nested build produces no entry chunk.
	ErrEntryChunkMissing = zerr.New("worker build produced no entry chunk")

	// ErrInvalidOption is returned when a build option has an unsupported value.
	ErrInvalidOption = zerr.New("invalid build option")

	// ErrInvalidWorkerFormat is returned when the worker format is neither "es" nor "iife".
	ErrInvalidWorkerFormat = zerr.New("invalid worker format, expected 'es' or 'iife'")

	// ErrHostBuildFailed is returned when the main esbuild build reports errors.
	ErrHostBuildFailed = zerr.New("build failed")

	// ErrBuildFailed signals a failed build whose errors were already reported.
	ErrBuildFailed = zerr.New("build execution failed")

	// ErrConfigNotFound is returned when no spawn.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find spawn.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrNoEntryPoints is returned when the config declares no entry points.
	ErrNoEntryPoints = zerr.New("no entry points specified")

	// ErrConflictingOutput is returned when both outdir and outfile are set.
	ErrConflictingOutput = zerr.New("outdir and outfile are mutually exclusive")

	// ErrInvalidDebounce is returned when the watch debounce window cannot be parsed.
	ErrInvalidDebounce = zerr.New("invalid watch debounce duration")

	// ErrOutputWriteFailed is returned when an output file cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write output file")
)

// WithMeta attaches key/value pairs to err while keeping it reachable through errors.Is.
// zerr.With copies a *zerr.Error instead of wrapping it, which would detach a sentinel.
func WithMeta(err error, kv ...any) error {
	if err == nil {
		return nil
	}
	out := zerr.Wrap(err, "")
	for i := 0; i+1 < len(kv); i += 2 {
		out = zerr.With(out, fmt.Sprint(kv[i]), kv[i+1])
	}
	return out
}
