package esbuild

import (
	"context"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/zerr"
)

// pluginResolver resolves specifiers through the running esbuild build.
type pluginResolver struct {
	build api.PluginBuild
}

var _ ports.Resolver = pluginResolver{}

func (r pluginResolver) Resolve(_ context.Context, specifier, importer string) (string, error) {
	res := r.build.Resolve(specifier, api.ResolveOptions{
		Importer:   importer,
		ResolveDir: filepath.Dir(importer),
		Kind:       api.ResolveJSImportStatement,
	})
	if len(res.Errors) > 0 {
		return "", zerr.With(zerr.New(res.Errors[0].Text), "specifier", specifier)
	}
	if res.External {
		return "", nil
	}
	return res.Path, nil
}
