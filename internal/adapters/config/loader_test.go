package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spawn/internal/adapters/config"
	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger), mockLogger
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
entryPoints: [src/main.ts]
`)

	project, err := loader.Load(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean(root), project.Root)
	assert.Equal(t, []string{filepath.Join(root, "src", "main.ts")}, project.EntryPoints)
	assert.Equal(t, filepath.Join(root, "dist"), project.Outdir)
	assert.Empty(t, project.Outfile)
	assert.Equal(t, "esm", project.Format)
	assert.Equal(t, "browser", project.Platform)
	assert.Equal(t, domain.FormatES, project.Worker.Format)
	assert.Equal(t, domain.DefaultDebounce, project.Watch.Debounce)
}

func TestLoader_Load_FullFile(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
root: web
entryPoints: [src/main.ts, src/admin.ts]
outfile: out/app.js
format: iife
platform: neutral
minify: true
worker:
  format: iife
  options:
    target: es2020
    define:
      DEBUG: "false"
    external: [fs]
    loader:
      .txt: text
    tsconfig: tsconfig.worker.json
    output:
      assetNames: assets/[name]-[hash]
      banner: "/* worker */"
watch:
  debounce: 200ms
`)

	project, err := loader.Load(root)
	require.NoError(t, err)

	webRoot := filepath.Join(root, "web")
	assert.Equal(t, webRoot, project.Root)
	assert.Equal(t, []string{
		filepath.Join(webRoot, "src", "main.ts"),
		filepath.Join(webRoot, "src", "admin.ts"),
	}, project.EntryPoints)
	assert.Equal(t, filepath.Join(webRoot, "out", "app.js"), project.Outfile)
	assert.Empty(t, project.Outdir)
	assert.Equal(t, "iife", project.Format)
	assert.Equal(t, "neutral", project.Platform)
	assert.True(t, project.Minify)

	assert.Equal(t, domain.FormatIIFE, project.Worker.Format)
	sub := project.Worker.SubBundle
	assert.Equal(t, "es2020", sub.Target)
	assert.Equal(t, map[string]string{"DEBUG": "false"}, sub.Define)
	assert.Equal(t, []string{"fs"}, sub.External)
	assert.Equal(t, map[string]string{".txt": "text"}, sub.Loader)
	assert.Equal(t, filepath.Join(webRoot, "tsconfig.worker.json"), sub.Tsconfig)
	assert.Equal(t, "assets/[name]-[hash]", sub.Output.AssetNames)
	assert.Equal(t, "/* worker */", sub.Output.Banner)

	assert.Equal(t, 200*time.Millisecond, project.Watch.Debounce)
}

func TestLoader_Load_Discovery(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "entryPoints: [main.ts]\n")
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	project, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(root), project.Root)
}

func TestLoader_Load_ExplicitFile(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	path := createFile(t, root, "configs/custom.yaml", "root: ..\nentryPoints: [main.ts]\n")

	project, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(root), project.Root)
	assert.Equal(t, []string{filepath.Join(root, "main.ts")}, project.EntryPoints)
}

func TestLoader_Load_NotFound(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Load(t.TempDir())
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoader_Load_SplittingWarning(t *testing.T) {
	loader, mockLogger := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
entryPoints: [main.ts]
worker:
  format: iife
  options:
    splitting: true
`)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := loader.Load(root)
	require.NoError(t, err)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedErr error
		errContains string
	}{
		{
			name:        "no entry points",
			content:     "outdir: dist\n",
			expectedErr: domain.ErrNoEntryPoints,
		},
		{
			name:        "outdir and outfile",
			content:     "entryPoints: [a.ts]\noutdir: dist\noutfile: out.js\n",
			expectedErr: domain.ErrConflictingOutput,
		},
		{
			name:        "invalid worker format",
			content:     "entryPoints: [a.ts]\nworker:\n  format: umd\n",
			expectedErr: domain.ErrInvalidWorkerFormat,
		},
		{
			name:        "invalid debounce",
			content:     "entryPoints: [a.ts]\nwatch:\n  debounce: soon\n",
			expectedErr: domain.ErrInvalidDebounce,
		},
		{
			name:        "negative debounce",
			content:     "entryPoints: [a.ts]\nwatch:\n  debounce: -1s\n",
			expectedErr: domain.ErrInvalidDebounce,
		},
		{
			name:        "malformed yaml",
			content:     "entryPoints: [a.ts\n",
			errContains: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			root := t.TempDir()
			createFile(t, root, domain.ConfigFileName, tt.content)

			_, err := loader.Load(root)
			require.Error(t, err)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			}
			if tt.errContains != "" {
				assert.Contains(t, err.Error(), tt.errContains)
			}
		})
	}
}
