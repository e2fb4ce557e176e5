// Package config provides the configuration loader for spawn.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the project configuration. A target naming a file is loaded directly;
// a directory is searched for spawn.yaml, walking upwards.
func (l *Loader) Load(target string) (*domain.Project, error) {
	configPath, err := findConfiguration(target)
	if err != nil {
		return nil, err
	}

	var file Spawnfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, domain.WithMeta(err, "path", configPath)
	}

	project, err := l.buildProject(configPath, &file)
	if err != nil {
		return nil, domain.WithMeta(err, "path", configPath)
	}
	return project, nil
}

func findConfiguration(target string) (string, error) {
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", target)
	}
	if !info.IsDir() {
		return target, nil
	}

	currentDir := target
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", domain.WithMeta(domain.ErrConfigNotFound, "cwd", target)
}

func (l *Loader) buildProject(configPath string, file *Spawnfile) (*domain.Project, error) {
	if len(file.EntryPoints) == 0 {
		return nil, domain.ErrNoEntryPoints
	}
	if file.Outdir != "" && file.Outfile != "" {
		return nil, domain.WithMeta(domain.ErrConflictingOutput, "outdir", file.Outdir, "outfile", file.Outfile)
	}

	workerFormat, err := domain.ParseWorkerFormat(file.Worker.Format)
	if err != nil {
		return nil, err
	}

	debounce, err := parseDebounce(file.Watch.Debounce)
	if err != nil {
		return nil, err
	}

	root := resolveRoot(configPath, file.Root)
	project := &domain.Project{
		Root:        root,
		EntryPoints: resolvePaths(root, file.EntryPoints),
		Format:      valueOr(file.Format, domain.DefaultFormat),
		Platform:    valueOr(file.Platform, domain.DefaultPlatform),
		Minify:      file.Minify,
		Sourcemap:   file.Sourcemap,
		Worker: domain.WorkerOptions{
			Format:    workerFormat,
			SubBundle: subBundleOptions(root, &file.Worker.Options),
		},
		Watch: domain.WatchOptions{Debounce: debounce},
	}

	switch {
	case file.Outfile != "":
		project.Outfile = resolvePath(root, file.Outfile)
	case file.Outdir != "":
		project.Outdir = resolvePath(root, file.Outdir)
	default:
		project.Outdir = filepath.Join(root, domain.DefaultOutdirName)
	}

	if file.Worker.Options.Splitting && project.Worker.ClassicOutput() {
		l.Logger.Warn(fmt.Sprintf("'worker.options.splitting' in %s has no effect with classic worker output",
			domain.ConfigFileName))
	}

	return project, nil
}

func subBundleOptions(root string, dto *SubBundleDTO) domain.SubBundleOptions {
	opts := domain.SubBundleOptions{
		Platform:   dto.Platform,
		Target:     dto.Target,
		Minify:     dto.Minify,
		Splitting:  dto.Splitting,
		Define:     dto.Define,
		External:   dto.External,
		Alias:      dto.Alias,
		Loader:     dto.Loader,
		Conditions: dto.Conditions,
		Output: domain.SubBundleOutputOptions{
			Format:     dto.Output.Format,
			EntryNames: dto.Output.EntryNames,
			ChunkNames: dto.Output.ChunkNames,
			AssetNames: dto.Output.AssetNames,
			Banner:     dto.Output.Banner,
			Footer:     dto.Output.Footer,
			Sourcemap:  dto.Output.Sourcemap,
		},
	}
	if dto.Tsconfig != "" {
		opts.Tsconfig = resolvePath(root, dto.Tsconfig)
	}
	return opts
}

func parseDebounce(value string) (time.Duration, error) {
	if value == "" {
		return domain.DefaultDebounce, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, domain.WithMeta(domain.ErrInvalidDebounce, "debounce", value)
	}
	return d, nil
}

// resolveRoot resolves the configured root against the directory of the config file.
func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if abs, err := filepath.Abs(configDir); err == nil {
		configDir = abs
	}
	return resolvePath(configDir, configuredRoot)
}

func resolvePath(base, p string) string {
	if p == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(base, p))
}

func resolvePaths(base string, paths []string) []string {
	res := make([]string, len(paths))
	for i, p := range paths {
		res[i] = resolvePath(base, p)
	}
	return res
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
