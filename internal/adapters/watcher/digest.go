package watcher

import (
	"sync"

	"go.trai.ch/spawn/internal/core/ports"
)

// ContentFilter drops change notifications for files whose content is unchanged,
// such as editors saving without modification or touching a file.
type ContentFilter struct {
	mu      sync.Mutex
	hasher  ports.Hasher
	digests map[string]uint64
}

// NewContentFilter creates a ContentFilter that fingerprints files with hasher.
func NewContentFilter(hasher ports.Hasher) *ContentFilter {
	return &ContentFilter{
		hasher:  hasher,
		digests: make(map[string]uint64),
	}
}

// Seed records the current digest of each path without reporting a change.
func (f *ContentFilter) Seed(paths []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range paths {
		if sum, err := f.hasher.ComputeFileHash(p); err == nil {
			f.digests[p] = sum
		}
	}
}

// Changed reports whether path differs from its last recorded digest. Unreadable
// paths (removed, renamed away) always count as changed and are forgotten.
func (f *ContentFilter) Changed(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	sum, err := f.hasher.ComputeFileHash(path)
	if err != nil {
		delete(f.digests, path)
		return true
	}

	prev, known := f.digests[path]
	f.digests[path] = sum
	return !known || prev != sum
}
