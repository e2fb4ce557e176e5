package esbuild

import (
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
)

// outputSet is the in-memory output of one host build pass, keyed by name relative
// to the output directory.
type outputSet struct {
	dir   string
	names []string
	files map[string][]byte
}

var _ ports.OutputBundle = (*outputSet)(nil)

func newOutputSet(dir string, files []api.OutputFile) *outputSet {
	s := &outputSet{
		dir:   dir,
		files: make(map[string][]byte, len(files)),
	}
	for _, f := range files {
		s.Emit(s.name(f.Path), f.Contents)
	}
	return s
}

func (s *outputSet) name(path string) string {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// Lookup implements ports.OutputBundle.
func (s *outputSet) Lookup(name string) ([]byte, bool) {
	c, ok := s.files[name]
	return c, ok
}

// Emit implements ports.OutputBundle.
func (s *outputSet) Emit(name string, contents []byte) {
	if _, ok := s.files[name]; !ok {
		s.names = append(s.names, name)
	}
	s.files[name] = contents
}

// render passes every code output through fn.
func (s *outputSet) render(fn func(string) string) {
	for _, name := range s.names {
		if isCode(name) {
			s.files[name] = []byte(fn(string(s.files[name])))
		}
	}
}

// Files returns the outputs in emission order with absolute paths.
func (s *outputSet) Files() []domain.OutputFile {
	out := make([]domain.OutputFile, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, domain.OutputFile{
			Path:     filepath.Join(s.dir, filepath.FromSlash(name)),
			Contents: s.files[name],
		})
	}
	return out
}
