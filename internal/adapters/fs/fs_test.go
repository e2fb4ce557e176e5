package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spawn/internal/adapters/fs"
	"go.trai.ch/spawn/internal/core/domain"
)

func TestHasher_ComputeFileHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(path, []byte("export {}\n"), domain.FilePerm))

	h := fs.NewHasher()
	sum, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, xxhash.Sum64String("export {}\n"), sum)

	again, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, sum, again)
}

func TestHasher_MissingFile(t *testing.T) {
	_, err := fs.NewHasher().ComputeFileHash(filepath.Join(t.TempDir(), "missing.ts"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}

func TestWriter_CreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	w := fs.NewWriter(fs.NewHasher())

	files := []domain.OutputFile{
		{Path: filepath.Join(dir, "dist", "main.js"), Contents: []byte("main")},
		{Path: filepath.Join(dir, "dist", "assets", "w.js"), Contents: []byte("worker")},
	}
	require.NoError(t, w.Write(files))

	for _, f := range files {
		got, err := os.ReadFile(f.Path)
		require.NoError(t, err)
		assert.Equal(t, f.Contents, got)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "dist"))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files are left behind")
}

func TestWriter_SkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.js")
	require.NoError(t, os.WriteFile(path, []byte("same"), domain.FilePerm))

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, past, past))

	w := fs.NewWriter(fs.NewHasher())
	require.NoError(t, w.Write([]domain.OutputFile{{Path: path, Contents: []byte("same")}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past), "identical file must not be rewritten")

	require.NoError(t, w.Write([]domain.OutputFile{{Path: path, Contents: []byte("diff")}}))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "diff", string(got))
}
