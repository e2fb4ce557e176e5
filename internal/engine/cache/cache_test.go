package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports/mocks"
	"go.trai.ch/spawn/internal/engine/cache"
	"go.uber.org/mock/gomock"
)

func output(entry string, watched []string, assets ...domain.Asset) *domain.SubBuildOutput {
	return &domain.SubBuildOutput{
		EntryFilename: entry,
		EntryCode:     "postMessage(1);",
		Assets:        assets,
		WatchedFiles:  watched,
	}
}

func asset(name, content string) domain.Asset {
	return domain.Asset{FileName: name, Source: []byte(content), Text: true}
}

func TestCache_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := cache.New(mocks.NewMockLogger(ctrl))

	b := c.Save("/src/w.ts", output("w.js", []string{"/src/w.ts"}, asset("chunk-1.js", "a")))

	assert.Equal(t, domain.PlaceholderFor("w.js"), b.EntryURLPlaceholder)
	assert.True(t, b.References("chunk-1.js"))

	got, ok := c.Bundle("/src/w.ts")
	require.True(t, ok)
	assert.Same(t, b, got)

	name, ok := c.FilenameForHash(domain.Hash("w.js"))
	require.True(t, ok)
	assert.Equal(t, "w.js", name)

	require.Len(t, c.Assets(), 1)
}

func TestCache_Save_ReplacesWholesale(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := cache.New(mocks.NewMockLogger(ctrl))

	first := c.Save("/src/w.ts", output("w.js", nil))
	second := c.Save("/src/w.ts", output("w.js", nil))

	got, _ := c.Bundle("/src/w.ts")
	assert.NotSame(t, first, got)
	assert.Same(t, second, got)
	assert.Len(t, c.Bundles(), 1)
}

func TestCache_SaveAsset_MismatchWarnsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().
		Warn(`The emitted file "shared.js" overwrites a previously emitted file of the same name.`).
		Times(1)

	c := cache.New(logger)
	c.Save("/src/a.ts", output("a.js", nil, asset("shared.js", "one")))
	c.Save("/src/b.ts", output("b.js", nil, asset("shared.js", "one")))
	c.Save("/src/c.ts", output("c.js", nil, asset("shared.js", "two")))

	assets := c.Assets()
	require.Len(t, assets, 1)
	assert.Equal(t, "two", string(assets[0].Source), "last write wins")
}

func TestCache_InvalidateDoesNotEvict(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := cache.New(mocks.NewMockLogger(ctrl))
	c.Save("/src/w.ts", output("w.js", []string{"/src/w.ts", "/src/dep.ts"}))

	assert.Equal(t, 0, c.InvalidateAffected("/src/other.ts"))
	assert.Equal(t, 1, c.InvalidateAffected("/src/dep.ts"))
	assert.True(t, c.Invalidated("/src/w.ts"))

	_, ok := c.Bundle("/src/w.ts")
	assert.True(t, ok, "invalidation must not evict")

	assert.False(t, c.RemoveIfInvalidated("/src/other.ts"))
	assert.True(t, c.RemoveIfInvalidated("/src/w.ts"))
	assert.False(t, c.Invalidated("/src/w.ts"))

	_, ok = c.Bundle("/src/w.ts")
	assert.False(t, ok)
	_, ok = c.FilenameForHash(domain.Hash("w.js"))
	assert.False(t, ok)
}

func TestCache_RemoveIfInvalidated_KeepsSharedAssets(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := cache.New(mocks.NewMockLogger(ctrl))

	c.Save("/src/a.ts", output("a.js", []string{"/src/a.ts"},
		asset("shared.js", "s"), asset("only-a.js", "a")))
	c.Save("/src/b.ts", output("b.js", []string{"/src/b.ts"},
		asset("shared.js", "s")))

	c.InvalidateAffected("/src/a.ts")
	require.True(t, c.RemoveIfInvalidated("/src/a.ts"))

	names := make([]string, 0)
	for _, a := range c.Assets() {
		names = append(names, a.FileName)
	}
	assert.Equal(t, []string{"shared.js"}, names)

	c.InvalidateAffected("/src/b.ts")
	require.True(t, c.RemoveIfInvalidated("/src/b.ts"))
	assert.Empty(t, c.Assets())
	assert.Empty(t, c.Bundles())
}

func TestCache_RemoveIfInvalidated_KeepsMappingOfSharedEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := cache.New(mocks.NewMockLogger(ctrl))

	c.Save("/src/w.ts", output("w.js", []string{"/src/w.ts", "/src/dep.ts"}))
	c.Save("/src/w.ts?inline", output("w.js", []string{"/src/w.ts"}))

	c.InvalidateAffected("/src/dep.ts")
	require.True(t, c.RemoveIfInvalidated("/src/w.ts"))

	name, ok := c.FilenameForHash(domain.Hash("w.js"))
	require.True(t, ok, "mapping stays while another bundle uses the entry")
	assert.Equal(t, "w.js", name)
}

func TestCache_PlaceholderRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := cache.New(mocks.NewMockLogger(ctrl))

	for _, f := range []string{"a.js", "nested/b-123.js", "c.mjs"} {
		b := c.Save("/src/"+f, output(f, nil))
		m := domain.PlaceholderPattern.FindStringSubmatch(b.EntryURLPlaceholder)
		require.Len(t, m, 2)

		name, ok := c.FilenameForHash(m[1])
		require.True(t, ok)
		assert.Equal(t, f, name)
	}
}

func TestCache_Bundles_Ordered(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := cache.New(mocks.NewMockLogger(ctrl))
	c.Save("/src/b.ts", output("b.js", nil))
	c.Save("/src/a.ts", output("a.js", nil))

	bundles := c.Bundles()
	require.Len(t, bundles, 2)
	assert.Equal(t, "a.js", bundles[0].EntryFilename)
	assert.Equal(t, "b.js", bundles[1].EntryFilename)
}
