// Package cache stores compiled worker bundles and their assets for one pipeline run.
package cache

import (
	"fmt"
	"sort"
	"sync"

	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
)

// Cache maps worker source files to their compiled bundles.
// Invalidation only marks a bundle; eviction happens on the next visit of the same source.
type Cache struct {
	logger ports.Logger

	mu          sync.RWMutex
	bundles     map[string]*domain.WorkerBundle
	assets      map[string]domain.Asset
	fileNames   map[string]string
	invalidated map[string]struct{}
}

// New creates an empty cache.
func New(logger ports.Logger) *Cache {
	return &Cache{
		logger:      logger,
		bundles:     make(map[string]*domain.WorkerBundle),
		assets:      make(map[string]domain.Asset),
		fileNames:   make(map[string]string),
		invalidated: make(map[string]struct{}),
	}
}

// Save registers the assets of a sub-build and stores its bundle under sourceFile,
// replacing any previous bundle for that file.
func (c *Cache) Save(sourceFile string, out *domain.SubBuildOutput) *domain.WorkerBundle {
	c.mu.Lock()
	defer c.mu.Unlock()

	referenced := make(map[string]struct{}, len(out.Assets))
	for _, asset := range out.Assets {
		c.saveAsset(asset)
		referenced[asset.FileName] = struct{}{}
	}

	bundle := &domain.WorkerBundle{
		EntryFilename:       out.EntryFilename,
		EntryCode:           out.EntryCode,
		EntryURLPlaceholder: c.placeholder(out.EntryFilename),
		ReferencedAssets:    referenced,
		WatchedFiles:        out.WatchedFiles,
		Assets:              out.Assets,
	}
	c.bundles[sourceFile] = bundle
	return bundle
}

func (c *Cache) saveAsset(asset domain.Asset) {
	if prev, ok := c.assets[asset.FileName]; ok && !domain.SameContent(prev.Source, asset.Source) {
		c.logger.Warn(fmt.Sprintf(
			"The emitted file %q overwrites a previously emitted file of the same name.", asset.FileName))
	}
	c.assets[asset.FileName] = asset
}

func (c *Cache) placeholder(entryFilename string) string {
	hash := domain.Hash(entryFilename)
	if _, ok := c.fileNames[hash]; !ok {
		c.fileNames[hash] = entryFilename
	}
	return domain.Placeholder(hash)
}

// InvalidateAffected marks every bundle that watched changedFile and returns how many were marked.
func (c *Cache) InvalidateAffected(changedFile string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for source, bundle := range c.bundles {
		if bundle.Watches(changedFile) {
			c.invalidated[source] = struct{}{}
			n++
		}
	}
	return n
}

// Invalidated reports whether the bundle for sourceFile is pending eviction.
func (c *Cache) Invalidated(sourceFile string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.invalidated[sourceFile]
	return ok
}

// RemoveIfInvalidated evicts the bundle for sourceFile if it was marked invalidated.
// Assets it referenced are dropped unless another live bundle still references them.
func (c *Cache) RemoveIfInvalidated(sourceFile string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.invalidated[sourceFile]; !ok {
		return false
	}
	delete(c.invalidated, sourceFile)

	bundle, ok := c.bundles[sourceFile]
	if !ok {
		return false
	}
	delete(c.bundles, sourceFile)
	if !c.entryInUse(bundle.EntryFilename) {
		delete(c.fileNames, domain.Hash(bundle.EntryFilename))
	}
	delete(c.assets, bundle.EntryFilename)

	for name := range bundle.ReferencedAssets {
		if !c.assetInUse(name) {
			delete(c.assets, name)
		}
	}
	return true
}

// entryInUse reports whether a live bundle still has the given entry filename.
func (c *Cache) entryInUse(fileName string) bool {
	for _, b := range c.bundles {
		if b.EntryFilename == fileName {
			return true
		}
	}
	return false
}

func (c *Cache) assetInUse(fileName string) bool {
	for _, b := range c.bundles {
		if b.References(fileName) {
			return true
		}
	}
	return false
}

// Bundle returns the live bundle for sourceFile.
func (c *Cache) Bundle(sourceFile string) (*domain.WorkerBundle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bundles[sourceFile]
	return b, ok
}

// Bundles returns every live bundle ordered by source file.
func (c *Cache) Bundles() []*domain.WorkerBundle {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sources := make([]string, 0, len(c.bundles))
	for s := range c.bundles {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	out := make([]*domain.WorkerBundle, 0, len(sources))
	for _, s := range sources {
		out = append(out, c.bundles[s])
	}
	return out
}

// Assets returns every live asset ordered by file name.
func (c *Cache) Assets() []domain.Asset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Asset, 0, len(c.assets))
	for _, a := range c.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileName < out[j].FileName })
	return out
}

// FilenameForHash resolves a placeholder hash to its entry filename.
func (c *Cache) FilenameForHash(hash string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.fileNames[hash]
	return name, ok
}
