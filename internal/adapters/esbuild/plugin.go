package esbuild

import (
	"context"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/spawn/internal/engine/scan"
	"go.trai.ch/zerr"
)

const (
	queryPluginName  = "spawn:worker-query"
	newURLPluginName = "spawn:worker-new-url"

	// workerNamespace holds the synthesized factory modules of query imports.
	workerNamespace = "spawn-worker"

	// queryFilter selects import paths with a worker query.
	queryFilter = `(?:\?|&)(?:worker|sharedworker)(?:&|$)`
)

// queryPlugin routes `?worker` imports to the pipeline.
func queryPlugin(pipeline ports.Pipeline, pass func() context.Context) api.Plugin {
	return api.Plugin{
		Name: queryPluginName,
		Setup: func(build api.PluginBuild) {
			build.OnStart(func() (api.OnStartResult, error) {
				pipeline.BuildStart()
				return api.OnStartResult{}, nil
			})

			build.OnResolve(api.OnResolveOptions{Filter: queryFilter},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					path, query := scan.SplitQuery(args.Path)
					res := build.Resolve(path, api.ResolveOptions{
						Importer:   args.Importer,
						ResolveDir: args.ResolveDir,
						Kind:       args.Kind,
						Namespace:  "file",
					})
					if len(res.Errors) > 0 {
						return api.OnResolveResult{Errors: res.Errors}, nil
					}
					return api.OnResolveResult{
						Path:      res.Path + query,
						Namespace: workerNamespace,
					}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: workerNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					res, err := pipeline.LoadQuery(pass(), args.Path)
					if err != nil {
						return api.OnLoadResult{Errors: []api.Message{toMessage(err, "", "")}}, nil
					}
					if res == nil {
						return api.OnLoadResult{}, zerr.With(zerr.New("not a worker import"), "path", args.Path)
					}
					contents := res.Contents
					return api.OnLoadResult{
						Contents:   &contents,
						Loader:     api.LoaderJS,
						ResolveDir: filepath.Dir(scan.CleanURL(args.Path)),
						WatchFiles: res.WatchFiles,
					}, nil
				})
		},
	}
}

// newURLPlugin rewrites `new Worker(new URL(...))` references in source modules.
func newURLPlugin(pipeline ports.Pipeline, pass func() context.Context) api.Plugin {
	return api.Plugin{
		Name: newURLPluginName,
		Setup: func(build api.PluginBuild) {
			resolver := pluginResolver{build: build}

			build.OnLoad(api.OnLoadOptions{Filter: sourceFilter, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					//nolint:gosec // Path comes from esbuild's resolver
					data, err := os.ReadFile(args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					code := string(data)

					res, err := pipeline.TransformURL(pass(), code, args.Path, resolver)
					if err != nil {
						return api.OnLoadResult{Errors: []api.Message{toMessage(err, args.Path, code)}}, nil
					}
					if !res.Changed {
						return api.OnLoadResult{}, nil
					}
					return api.OnLoadResult{
						Contents:   &res.Code,
						Loader:     loaderFor(args.Path),
						ResolveDir: filepath.Dir(args.Path),
						WatchFiles: res.WatchFiles,
					}, nil
				})
		},
	}
}
