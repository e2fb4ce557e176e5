package watcher_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/spawn/internal/adapters/watcher"
	"go.trai.ch/spawn/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestContentFilter_Changed(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockHasher(ctrl)
	f := watcher.NewContentFilter(hasher)

	gomock.InOrder(
		hasher.EXPECT().ComputeFileHash("/p/a.ts").Return(uint64(1), nil),
		hasher.EXPECT().ComputeFileHash("/p/a.ts").Return(uint64(1), nil),
		hasher.EXPECT().ComputeFileHash("/p/a.ts").Return(uint64(2), nil),
		hasher.EXPECT().ComputeFileHash("/p/a.ts").Return(uint64(0), errors.New("gone")),
		hasher.EXPECT().ComputeFileHash("/p/a.ts").Return(uint64(2), nil),
	)

	assert.True(t, f.Changed("/p/a.ts"), "first sighting")
	assert.False(t, f.Changed("/p/a.ts"), "same digest")
	assert.True(t, f.Changed("/p/a.ts"), "new digest")
	assert.True(t, f.Changed("/p/a.ts"), "unreadable")
	assert.True(t, f.Changed("/p/a.ts"), "forgotten after removal")
}

func TestContentFilter_Seed(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockHasher(ctrl)
	f := watcher.NewContentFilter(hasher)

	hasher.EXPECT().ComputeFileHash("/p/a.ts").Return(uint64(9), nil).Times(2)
	hasher.EXPECT().ComputeFileHash("/p/missing.ts").Return(uint64(0), errors.New("missing"))

	f.Seed([]string{"/p/a.ts", "/p/missing.ts"})
	assert.False(t, f.Changed("/p/a.ts"))
}
