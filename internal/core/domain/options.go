package domain

import "time"

// WorkerFormat is the output format worker entries are compiled to.
type WorkerFormat string

const (
	// FormatES compiles workers as ES modules and starts them with type "module".
	FormatES WorkerFormat = "es"
	// FormatIIFE compiles workers as classic scripts.
	FormatIIFE WorkerFormat = "iife"
)

// ParseWorkerFormat validates a worker format name. An empty name selects FormatES.
func ParseWorkerFormat(name string) (WorkerFormat, error) {
	switch WorkerFormat(name) {
	case "", FormatES:
		return FormatES, nil
	case FormatIIFE:
		return FormatIIFE, nil
	default:
		return "", WithMeta(ErrInvalidWorkerFormat, "format", name)
	}
}

// Module reports whether workers in this format are started with type "module".
func (f WorkerFormat) Module() bool {
	return f == FormatES
}

// WorkerOptions configures how worker entries are discovered and compiled.
type WorkerOptions struct {
	Format    WorkerFormat
	SubBundle SubBundleOptions
}

// ClassicOutput reports whether the nested build emits classic script code, taking an
// explicit output format override into account.
func (o WorkerOptions) ClassicOutput() bool {
	switch o.SubBundle.Output.Format {
	case "":
		return !o.Format.Module()
	case "es", "esm":
		return false
	default:
		return true
	}
}

// SubBundleOptions is passed through to every nested worker build.
// Zero values leave the engine defaults in place.
type SubBundleOptions struct {
	Platform   string
	Target     string
	Minify     bool
	Splitting  bool
	Define     map[string]string
	External   []string
	Alias      map[string]string
	Loader     map[string]string
	Conditions []string
	Tsconfig   string
	Output     SubBundleOutputOptions
}

// SubBundleOutputOptions are the output options of a nested build.
// Format, when set, overrides the worker format for code generation.
type SubBundleOutputOptions struct {
	Format     string
	EntryNames string
	ChunkNames string
	AssetNames string
	Banner     string
	Footer     string
	Sourcemap  bool
}

// Project is the loaded build configuration.
type Project struct {
	// Root is the absolute project root; leading "/" worker URLs resolve against it.
	Root        string
	EntryPoints []string
	// Outdir and Outfile are absolute; exactly one of them is set.
	Outdir    string
	Outfile   string
	Format    string
	Platform  string
	Minify    bool
	Sourcemap bool
	Worker    WorkerOptions
	Watch     WatchOptions
}

// OutputDir returns the directory worker artifacts are emitted into.
func (p *Project) OutputDir() string {
	if p.Outdir != "" {
		return p.Outdir
	}
	return dirOf(p.Outfile)
}

// RenderContext returns the output layout used to resolve placeholders.
func (p *Project) RenderContext() RenderContext {
	return RenderContext{OutDir: p.Outdir, Outfile: p.Outfile}
}

// WatchOptions configures the watch loop.
type WatchOptions struct {
	Debounce time.Duration
}
