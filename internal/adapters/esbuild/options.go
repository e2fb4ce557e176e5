// Package esbuild hosts the worker pipeline on top of the esbuild Go API.
package esbuild

import (
	"fmt"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/zerr"
)

var (
	targets = map[string]api.Target{
		"esnext": api.ESNext,
		"es5":    api.ES5,
		"es2015": api.ES2015,
		"es2016": api.ES2016,
		"es2017": api.ES2017,
		"es2018": api.ES2018,
		"es2019": api.ES2019,
		"es2020": api.ES2020,
		"es2021": api.ES2021,
		"es2022": api.ES2022,
		"es2023": api.ES2023,
		"es2024": api.ES2024,
	}

	loaders = map[string]api.Loader{
		"base64":  api.LoaderBase64,
		"binary":  api.LoaderBinary,
		"copy":    api.LoaderCopy,
		"css":     api.LoaderCSS,
		"dataurl": api.LoaderDataURL,
		"empty":   api.LoaderEmpty,
		"file":    api.LoaderFile,
		"js":      api.LoaderJS,
		"json":    api.LoaderJSON,
		"jsx":     api.LoaderJSX,
		"text":    api.LoaderText,
		"ts":      api.LoaderTS,
		"tsx":     api.LoaderTSX,
	}
)

func invalidOption(option, value, expected string) error {
	err := zerr.Wrap(domain.ErrInvalidOption,
		fmt.Sprintf("invalid value %q for %q, expected %s", value, option, expected))
	err = zerr.With(err, "option", option)
	return zerr.With(err, "value", value)
}

func parseFormat(option, value string) (api.Format, error) {
	switch value {
	case "":
		return api.FormatDefault, nil
	case "es", "esm":
		return api.FormatESModule, nil
	case "iife":
		return api.FormatIIFE, nil
	case "cjs":
		return api.FormatCommonJS, nil
	default:
		return api.FormatDefault, invalidOption(option, value, `"es", "iife" or "cjs"`)
	}
}

func parsePlatform(option, value string) (api.Platform, error) {
	switch value {
	case "", "browser":
		return api.PlatformBrowser, nil
	case "node":
		return api.PlatformNode, nil
	case "neutral":
		return api.PlatformNeutral, nil
	default:
		return api.PlatformDefault, invalidOption(option, value, `"browser", "node" or "neutral"`)
	}
}

func parseTarget(option, value string) (api.Target, error) {
	if value == "" {
		return api.DefaultTarget, nil
	}
	t, ok := targets[value]
	if !ok {
		return api.DefaultTarget, invalidOption(option, value, "an ECMAScript version such as es2020")
	}
	return t, nil
}

func parseLoaders(option string, m map[string]string) (map[string]api.Loader, error) {
	if len(m) == 0 {
		return nil, nil
	}
	out := make(map[string]api.Loader, len(m))
	for ext, name := range m {
		l, ok := loaders[name]
		if !ok {
			return nil, invalidOption(option+"."+ext, name, "an esbuild loader name")
		}
		out[ext] = l
	}
	return out, nil
}

func sourceMap(enabled bool) api.SourceMap {
	if enabled {
		return api.SourceMapLinked
	}
	return api.SourceMapNone
}

// loaderFor picks the JavaScript dialect from a file extension.
func loaderFor(path string) api.Loader {
	switch filepath.Ext(path) {
	case ".ts", ".mts", ".cts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	case ".jsx":
		return api.LoaderJSX
	default:
		return api.LoaderJS
	}
}

// sourceFilter matches JavaScript and TypeScript modules.
const sourceFilter = `\.[cm]?[jt]sx?$`

func isCode(name string) bool {
	switch filepath.Ext(name) {
	case ".js", ".mjs", ".cjs":
		return true
	}
	return false
}

func isText(name string) bool {
	switch filepath.Ext(name) {
	case ".js", ".mjs", ".cjs", ".css", ".map", ".json", ".txt", ".html", ".svg":
		return true
	}
	return false
}
