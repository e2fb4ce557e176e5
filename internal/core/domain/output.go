package domain

import (
	"path/filepath"
	"time"
)

// OutputFile is one artifact of a host build.
type OutputFile struct {
	// Path is absolute.
	Path     string
	Contents []byte
}

// BuildReport summarizes one pass of the host build.
type BuildReport struct {
	Outputs  []OutputFile
	Warnings []string
	Duration time.Duration
}

// RenderContext describes the host's output layout at render time.
type RenderContext struct {
	OutDir  string
	Outfile string
}

// Dir returns the output directory, or the directory of the single output file.
func (r RenderContext) Dir() string {
	if r.OutDir != "" {
		return r.OutDir
	}
	return dirOf(r.Outfile)
}

func dirOf(file string) string {
	if file == "" {
		return ""
	}
	return filepath.Dir(file)
}

// SubBuildRequest asks the host compiler for an isolated build of one worker entry.
type SubBuildRequest struct {
	// Entry is the query-stripped path of the worker entry.
	Entry   string
	Format  WorkerFormat
	Options SubBundleOptions
	// ModuleTransform, when set, rewrites the source of every module loaded into the build.
	ModuleTransform func(code string) (string, bool)
}

// SubBuildOutput is the result of a nested worker build.
type SubBuildOutput struct {
	EntryFilename string
	EntryCode     string
	Assets        []Asset
	WatchedFiles  []string
}

// LoadResult is the synthesized module for a query-suffixed worker import.
type LoadResult struct {
	Contents   string
	WatchFiles []string
}

// TransformResult is the outcome of rewriting worker URL references in one module.
type TransformResult struct {
	Code       string
	Changed    bool
	WatchFiles []string
}
