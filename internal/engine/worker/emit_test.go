package worker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/spawn/internal/core/ports/mocks"
	"go.trai.ch/spawn/internal/engine/worker"
	"go.uber.org/mock/gomock"
)

// memoryBundle is an in-memory ports.OutputBundle.
type memoryBundle struct {
	files map[string][]byte
	emits int
}

func (b *memoryBundle) Lookup(name string) ([]byte, bool) {
	c, ok := b.files[name]
	return c, ok
}

func (b *memoryBundle) Emit(name string, contents []byte) {
	b.files[name] = contents
	b.emits++
}

func TestEmitter_SameContentOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	e := worker.NewEmitter(mocks.NewMockLogger(ctrl))
	out := &memoryBundle{files: map[string][]byte{}}

	e.Emit(out, "w.js", []byte("a"))
	e.Emit(out, "w.js", []byte("a"))

	assert.Equal(t, 1, out.emits)
	assert.Equal(t, "a", string(out.files["w.js"]))
}

func TestEmitter_DifferentContentWarnsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().
		Warn(`The emitted file "w.js" overwrites a previously emitted file of the same name.`).
		Times(1)

	e := worker.NewEmitter(logger)
	out := &memoryBundle{files: map[string][]byte{}}

	e.Emit(out, "w.js", []byte("a"))
	e.Emit(out, "w.js", []byte("b"))

	assert.Equal(t, 2, out.emits)
	assert.Equal(t, "b", string(out.files["w.js"]), "latest content wins")
}

func TestEmitter_SkipsExistingIdentical(t *testing.T) {
	ctrl := gomock.NewController(t)
	e := worker.NewEmitter(mocks.NewMockLogger(ctrl))
	out := &memoryBundle{files: map[string][]byte{"w.js": []byte("a")}}

	e.Emit(out, "w.js", []byte("a"))
	assert.Equal(t, 0, out.emits)

	e.Emit(out, "other.js", []byte("x"))
	assert.Equal(t, 1, out.emits)
}

func TestEmitter_WarnsWhenReplacingHostOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().
		Warn(`The emitted file "main.js" overwrites a previously emitted file of the same name.`).
		Times(1)

	e := worker.NewEmitter(logger)
	out := &memoryBundle{files: map[string][]byte{"main.js": []byte("app")}}

	e.Emit(out, "main.js", []byte("worker"))
	e.Emit(out, "main.js", []byte("worker"))

	assert.Equal(t, 1, out.emits)
	assert.Equal(t, "worker", string(out.files["main.js"]))
}

func TestEmitter_ResetStartsNewPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	e := worker.NewEmitter(mocks.NewMockLogger(ctrl))

	first := &memoryBundle{files: map[string][]byte{}}
	e.Emit(first, "w.js", []byte("a"))

	e.Reset()
	second := &memoryBundle{files: map[string][]byte{}}
	e.Emit(second, "w.js", []byte("b"))

	assert.Equal(t, 1, second.emits)
	assert.Equal(t, "b", string(second.files["w.js"]))
}
