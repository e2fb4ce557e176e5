package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spawn/internal/core/domain"
)

func TestHash(t *testing.T) {
	// sha256("") = e3b0c442...
	assert.Equal(t, "e3b0c442", domain.Hash(""))

	h := domain.Hash("worker.js")
	assert.Len(t, h, 8)
	assert.Regexp(t, `^[a-f0-9]{8}$`, h)
	assert.Equal(t, h, domain.Hash("worker.js"), "hash must be deterministic")
	assert.NotEqual(t, h, domain.Hash("other.js"))
}

func TestPlaceholderFor(t *testing.T) {
	ph := domain.PlaceholderFor("worker.js")
	assert.Equal(t, "__WORKER_ASSET__"+domain.Hash("worker.js")+"__", ph)

	m := domain.PlaceholderPattern.FindStringSubmatch(`new URL("` + ph + `", import.meta.url)`)
	require.Len(t, m, 2)
	assert.Equal(t, domain.Hash("worker.js"), m[1])
}

func TestPlaceholderPattern_RejectsMalformed(t *testing.T) {
	for _, s := range []string{
		"__WORKER_ASSET__abc__",
		"__WORKER_ASSET__ABCDEF12__",
		"__WORKER_ASSET__abcdefgh__",
	} {
		assert.False(t, domain.PlaceholderPattern.MatchString(s), s)
	}
}

func TestParseWorkerFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.WorkerFormat
		wantErr  bool
	}{
		{"", domain.FormatES, false},
		{"es", domain.FormatES, false},
		{"iife", domain.FormatIIFE, false},
		{"cjs", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseWorkerFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidWorkerFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWorkerOptions_ClassicOutput(t *testing.T) {
	es := domain.WorkerOptions{Format: domain.FormatES}
	assert.False(t, es.ClassicOutput())

	iife := domain.WorkerOptions{Format: domain.FormatIIFE}
	assert.True(t, iife.ClassicOutput())

	override := domain.WorkerOptions{Format: domain.FormatES}
	override.SubBundle.Output.Format = "iife"
	assert.True(t, override.ClassicOutput())

	back := domain.WorkerOptions{Format: domain.FormatIIFE}
	back.SubBundle.Output.Format = "esm"
	assert.False(t, back.ClassicOutput())
}

func TestRenderContext_Dir(t *testing.T) {
	assert.Equal(t, "/out", domain.RenderContext{OutDir: "/out"}.Dir())
	assert.Equal(t, "/dist", domain.RenderContext{Outfile: "/dist/app.js"}.Dir())
	assert.Empty(t, domain.RenderContext{}.Dir())
}

func TestWorkerKind_Constructor(t *testing.T) {
	assert.Equal(t, "Worker", domain.KindWorker.Constructor())
	assert.Equal(t, "SharedWorker", domain.KindSharedWorker.Constructor())
}

func TestWorkerBundle_References(t *testing.T) {
	b := &domain.WorkerBundle{
		ReferencedAssets: map[string]struct{}{"chunk-a.js": {}},
		WatchedFiles:     []string{"/src/worker.js"},
	}
	assert.True(t, b.References("chunk-a.js"))
	assert.False(t, b.References("chunk-b.js"))
	assert.True(t, b.Watches("/src/worker.js"))
	assert.False(t, b.Watches("/src/main.js"))
}
