package fs

import (
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputWriter = (*Writer)(nil)

// Writer writes build outputs to disk. Files whose content on disk already matches
// are left untouched so that watchers observing the output directory stay quiet.
type Writer struct {
	hasher ports.Hasher
}

// NewWriter creates a Writer that compares existing files using hasher.
func NewWriter(hasher ports.Hasher) *Writer {
	return &Writer{hasher: hasher}
}

// Write writes every file, creating parent directories as needed.
func (w *Writer) Write(files []domain.OutputFile) error {
	for _, f := range files {
		if w.unchanged(f) {
			continue
		}
		if err := writeFile(f.Path, f.Contents); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", f.Path)
		}
	}
	return nil
}

func (w *Writer) unchanged(f domain.OutputFile) bool {
	info, err := os.Stat(f.Path)
	if err != nil || info.Size() != int64(len(f.Contents)) {
		return false
	}
	sum, err := w.hasher.ComputeFileHash(f.Path)
	return err == nil && sum == xxhash.Sum64(f.Contents)
}

// writeFile replaces path atomically through a temporary file in the same directory.
func writeFile(path string, contents []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // Removing a renamed file fails harmlessly

	if _, err := tmp.Write(contents); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
