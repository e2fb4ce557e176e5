// Package domain contains the core types of the worker bundling engine.
package domain

import "bytes"

// WorkerKind selects the constructor a worker entry is started with.
type WorkerKind uint8

const (
	// KindWorker is a dedicated Worker.
	KindWorker WorkerKind = iota
	// KindSharedWorker is a SharedWorker.
	KindSharedWorker
)

// Constructor returns the global constructor name for the kind.
func (k WorkerKind) Constructor() string {
	if k == KindSharedWorker {
		return "SharedWorker"
	}
	return "Worker"
}

// Asset is a secondary output of a sub-build: an additional chunk or a static resource.
// Assets are shared across bundles that reference the same file name.
type Asset struct {
	FileName          string
	OriginalFileName  string
	OriginalFileNames []string
	Source            []byte
	// Text reports whether Source holds source text rather than binary data.
	Text bool
}

// WorkerBundle is the cached result of sub-bundling one worker entry.
// A bundle is replaced wholesale on rebuild and never mutated in place.
type WorkerBundle struct {
	EntryFilename       string
	EntryCode           string
	EntryURLPlaceholder string
	ReferencedAssets    map[string]struct{}
	WatchedFiles        []string
	Assets              []Asset
}

// References reports whether the bundle references the asset with the given file name.
func (b *WorkerBundle) References(fileName string) bool {
	_, ok := b.ReferencedAssets[fileName]
	return ok
}

// Watches reports whether path was read while building the bundle.
func (b *WorkerBundle) Watches(path string) bool {
	for _, f := range b.WatchedFiles {
		if f == path {
			return true
		}
	}
	return false
}

// SameContent compares two artifact payloads byte for byte.
// Text and binary payloads are both held as bytes, so mixed comparisons use the encoded form.
func SameContent(a, b []byte) bool {
	return bytes.Equal(a, b)
}
