package esbuild

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	importMetaPluginName = "spawn:worker-import-meta"
	outputFormatOption   = "output.format"
)

// Compiler implements ports.Compiler with an isolated esbuild build per worker entry.
type Compiler struct {
	root   string
	outDir string
}

var _ ports.Compiler = (*Compiler)(nil)

// NewCompiler creates a compiler that emits into the project's output directory.
func NewCompiler(project *domain.Project) *Compiler {
	return &Compiler{
		root:   project.Root,
		outDir: project.OutputDir(),
	}
}

// Build compiles one worker entry. The esbuild context is disposed on every return path.
func (c *Compiler) Build(ctx context.Context, req domain.SubBuildRequest) (*domain.SubBuildOutput, error) {
	opts, err := c.options(req)
	if err != nil {
		return nil, err
	}

	bctx, cerr := api.Context(opts)
	if cerr != nil {
		return nil, c.failure(req.Entry, cerr.Errors)
	}
	defer bctx.Dispose()

	stop := context.AfterFunc(ctx, bctx.Cancel)
	defer stop()

	result := bctx.Rebuild()
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "worker build canceled")
	}
	if len(result.Errors) > 0 {
		return nil, c.failure(req.Entry, result.Errors)
	}
	return c.collect(req.Entry, &result)
}

// options merges the caller's sub-bundle options over the nested build defaults.
func (c *Compiler) options(req domain.SubBuildRequest) (api.BuildOptions, error) {
	sub := req.Options

	workerFormat := req.Format
	if workerFormat == "" {
		workerFormat = domain.FormatES
	}
	format, err := parseFormat(outputFormatOption, string(workerFormat))
	if err != nil {
		return api.BuildOptions{}, err
	}
	if sub.Output.Format != "" {
		if format, err = parseFormat(outputFormatOption, sub.Output.Format); err != nil {
			return api.BuildOptions{}, err
		}
	}
	platform, err := parsePlatform("platform", sub.Platform)
	if err != nil {
		return api.BuildOptions{}, err
	}
	target, err := parseTarget("target", sub.Target)
	if err != nil {
		return api.BuildOptions{}, err
	}
	loader, err := parseLoaders("loader", sub.Loader)
	if err != nil {
		return api.BuildOptions{}, err
	}

	opts := api.BuildOptions{
		EntryPoints:       []string{req.Entry},
		AbsWorkingDir:     c.root,
		Outdir:            c.outDir,
		Bundle:            true,
		Write:             false,
		Metafile:          true,
		TreeShaking:       api.TreeShakingTrue,
		LogLevel:          api.LogLevelSilent,
		Format:            format,
		Platform:          platform,
		Target:            target,
		MinifyWhitespace:  sub.Minify,
		MinifyIdentifiers: sub.Minify,
		MinifySyntax:      sub.Minify,
		Splitting:         sub.Splitting && format == api.FormatESModule,
		Define:            sub.Define,
		External:          sub.External,
		Alias:             sub.Alias,
		Loader:            loader,
		Conditions:        sub.Conditions,
		Tsconfig:          sub.Tsconfig,
		Sourcemap:         sourceMap(sub.Output.Sourcemap),
		EntryNames:        orDefault(sub.Output.EntryNames, "[name]"),
		ChunkNames:        orDefault(sub.Output.ChunkNames, "[name]-[hash]"),
		AssetNames:        orDefault(sub.Output.AssetNames, "[name]-[hash]"),
	}
	if sub.Output.Banner != "" {
		opts.Banner = map[string]string{"js": sub.Output.Banner}
	}
	if sub.Output.Footer != "" {
		opts.Footer = map[string]string{"js": sub.Output.Footer}
	}
	if req.ModuleTransform != nil {
		opts.Plugins = append(opts.Plugins, importMetaPlugin(req.ModuleTransform))
	}
	return opts, nil
}

// metafile is the subset of esbuild's metafile read after a nested build.
type metafile struct {
	Inputs  map[string]json.RawMessage `json:"inputs"`
	Outputs map[string]struct {
		EntryPoint string `json:"entryPoint"`
	} `json:"outputs"`
}

func (c *Compiler) collect(entry string, result *api.BuildResult) (*domain.SubBuildOutput, error) {
	var meta metafile
	if err := json.Unmarshal([]byte(result.Metafile), &meta); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse worker metafile"), "entry", entry)
	}

	entryOutput := ""
	for key, out := range meta.Outputs {
		if out.EntryPoint != "" && isCode(key) {
			entryOutput = c.abs(key)
			break
		}
	}
	if entryOutput == "" {
		return nil, domain.WithMeta(domain.ErrEntryChunkMissing, "entry", entry)
	}

	out := &domain.SubBuildOutput{}
	for _, f := range result.OutputFiles {
		name := c.relative(f.Path)
		if filepath.Clean(f.Path) == entryOutput {
			out.EntryFilename = name
			out.EntryCode = string(f.Contents)
			continue
		}
		out.Assets = append(out.Assets, domain.Asset{
			FileName: name,
			Source:   f.Contents,
			Text:     isText(name),
		})
	}
	if out.EntryFilename == "" {
		return nil, domain.WithMeta(domain.ErrEntryChunkMissing, "entry", entry)
	}

	for key := range meta.Inputs {
		if i := strings.IndexByte(key, ':'); i > 1 {
			// Namespaced virtual modules have no file to watch.
			continue
		}
		out.WatchedFiles = append(out.WatchedFiles, filepath.ToSlash(c.abs(key)))
	}
	return out, nil
}

func (c *Compiler) abs(key string) string {
	p := filepath.FromSlash(key)
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.root, p)
	}
	return filepath.Clean(p)
}

// relative returns the output name of path, relative to the output directory.
func (c *Compiler) relative(path string) string {
	rel, err := filepath.Rel(c.outDir, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

func (c *Compiler) failure(entry string, msgs []api.Message) error {
	rel, err := filepath.Rel(c.root, entry)
	if err != nil {
		rel = entry
	}
	text := "unknown error"
	if len(msgs) > 0 {
		text = formatMessage(msgs[0])
	}
	wrapped := zerr.Wrap(domain.ErrSubBuildFailed,
		fmt.Sprintf("failed to bundle worker %s: %s", filepath.ToSlash(rel), text))
	wrapped = zerr.With(wrapped, "entry", entry)
	return zerr.With(wrapped, "errors", len(msgs))
}

// importMetaPlugin applies transform to every source module loaded into the build.
func importMetaPlugin(transform func(string) (string, bool)) api.Plugin {
	return api.Plugin{
		Name: importMetaPluginName,
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: sourceFilter, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					//nolint:gosec // Path comes from esbuild's resolver
					data, err := os.ReadFile(args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					code, changed := transform(string(data))
					if !changed {
						return api.OnLoadResult{}, nil
					}
					return api.OnLoadResult{
						Contents:   &code,
						Loader:     loaderFor(args.Path),
						ResolveDir: filepath.Dir(args.Path),
					}, nil
				})
		},
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
