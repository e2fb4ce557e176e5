package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spawn/internal/adapters/telemetry"
	"go.trai.ch/spawn/internal/app"
	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
	"go.trai.ch/spawn/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader   *mocks.MockConfigLoader
	bundler  *mocks.MockBundler
	session  *mocks.MockSession
	compiler *mocks.MockCompiler
	writer   *mocks.MockOutputWriter
	hasher   *mocks.MockHasher
	logger   *mocks.MockLogger
	summary  *bytes.Buffer
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		bundler:  mocks.NewMockBundler(ctrl),
		session:  mocks.NewMockSession(ctrl),
		compiler: mocks.NewMockCompiler(ctrl),
		writer:   mocks.NewMockOutputWriter(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		summary:  &bytes.Buffer{},
	}
	f.app = app.New(f.loader, f.bundler, f.writer, f.hasher, f.logger, telemetry.NewNoOpTracer()).
		WithSummaryOutput(f.summary)
	return f
}

func testProject() *domain.Project {
	root := filepath.FromSlash("/project")
	return &domain.Project{
		Root:        root,
		EntryPoints: []string{filepath.Join(root, "src", "main.ts")},
		Outdir:      filepath.Join(root, "dist"),
		Format:      "esm",
		Platform:    "browser",
		Worker:      domain.WorkerOptions{Format: domain.FormatES},
		Watch:       domain.WatchOptions{Debounce: 50 * time.Millisecond},
	}
}

func (f *fixture) expectOpen(project *domain.Project) {
	f.loader.EXPECT().Load(".").Return(project, nil)
	f.bundler.EXPECT().Compiler(project).Return(f.compiler)
	f.bundler.EXPECT().Open(gomock.Any(), project, gomock.Any()).Return(f.session, nil)
	f.session.EXPECT().Close()
}

func TestApp_Build(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	f := newFixture(t)
	project := testProject()
	f.expectOpen(project)

	outputs := []domain.OutputFile{
		{Path: filepath.Join(project.Outdir, "main.js"), Contents: []byte("console.log(1)")},
		{Path: filepath.Join(project.Outdir, "w.js"), Contents: []byte("postMessage(1)")},
	}
	f.session.EXPECT().Rebuild(gomock.Any()).Return(&domain.BuildReport{
		Outputs:  outputs,
		Warnings: []string{"src/main.ts:1:0: unused import"},
		Duration: 5 * time.Millisecond,
	}, nil)
	f.logger.EXPECT().Warn("src/main.ts:1:0: unused import")
	f.writer.EXPECT().Write(outputs).Return(nil)

	err := f.app.Build(context.Background(), app.BuildOptions{})
	require.NoError(t, err)

	assert.Contains(t, f.summary.String(), "dist/main.js")
	assert.Contains(t, f.summary.String(), "dist/w.js")
	assert.Contains(t, f.summary.String(), "wrote 2 files in 5ms")
}

func TestApp_Build_ExplicitConfig(t *testing.T) {
	f := newFixture(t)
	project := testProject()

	f.loader.EXPECT().Load("configs/spawn.yaml").Return(project, nil)
	f.bundler.EXPECT().Compiler(project).Return(f.compiler)
	f.bundler.EXPECT().Open(gomock.Any(), project, gomock.Any()).Return(f.session, nil)
	f.session.EXPECT().Close()
	f.session.EXPECT().Rebuild(gomock.Any()).Return(&domain.BuildReport{}, nil)
	f.writer.EXPECT().Write(gomock.Any()).Return(nil)

	require.NoError(t, f.app.Build(context.Background(), app.BuildOptions{ConfigPath: "configs/spawn.yaml"}))
}

func TestApp_Build_HostFailure(t *testing.T) {
	f := newFixture(t)
	project := testProject()
	f.expectOpen(project)

	hostErr := errors.New("src/main.ts:2:11: unsupported")
	f.session.EXPECT().Rebuild(gomock.Any()).Return(nil, hostErr)
	f.logger.EXPECT().Error(hostErr)

	err := f.app.Build(context.Background(), app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.Empty(t, f.summary.String())
}

func TestApp_Build_LoadFailure(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(nil, domain.ErrConfigNotFound)

	err := f.app.Build(context.Background(), app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Build_OpenFailure(t *testing.T) {
	f := newFixture(t)
	project := testProject()
	f.loader.EXPECT().Load(".").Return(project, nil)
	f.bundler.EXPECT().Compiler(project).Return(f.compiler)
	f.bundler.EXPECT().Open(gomock.Any(), project, gomock.Any()).Return(nil, domain.ErrInvalidOption)

	err := f.app.Build(context.Background(), app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidOption)
}

func TestApp_Build_WriteFailure(t *testing.T) {
	f := newFixture(t)
	project := testProject()
	f.expectOpen(project)

	f.session.EXPECT().Rebuild(gomock.Any()).Return(&domain.BuildReport{}, nil)
	f.writer.EXPECT().Write(gomock.Any()).Return(domain.ErrOutputWriteFailed)

	err := f.app.Build(context.Background(), app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrOutputWriteFailed)
}

// fakeWatcher delivers events pushed through in until the watch context ends.
type fakeWatcher struct {
	in  chan ports.WatchEvent
	out chan ports.WatchEvent
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{in: make(chan ports.WatchEvent), out: make(chan ports.WatchEvent)}
}

func (w *fakeWatcher) Start(ctx context.Context, _ string) error {
	go func() {
		defer close(w.out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-w.in:
				select {
				case w.out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return nil
}

func (w *fakeWatcher) Stop() error { return nil }

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.out {
			if !yield(ev) {
				return
			}
		}
	}
}

func TestApp_Watch_RebuildsOnChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.app.WithSummaryOutput(io.Discard)
		project := testProject()
		f.expectOpen(project)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		mainOut := filepath.Join(project.Outdir, "main.js")
		passes := 0
		f.session.EXPECT().Rebuild(gomock.Any()).DoAndReturn(func(context.Context) (*domain.BuildReport, error) {
			passes++
			if passes == 2 {
				cancel()
			}
			return &domain.BuildReport{Outputs: []domain.OutputFile{{Path: mainOut, Contents: []byte("x")}}}, nil
		}).Times(2)
		f.writer.EXPECT().Write(gomock.Any()).Return(nil).Times(2)
		f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

		source := filepath.Join(project.Root, "src", "w.ts")
		f.hasher.EXPECT().ComputeFileHash(source).Return(uint64(7), nil)

		fw := newFakeWatcher()
		f.app.WithWatcherFactory(func() (ports.Watcher, error) { return fw, nil })

		done := make(chan error, 1)
		go func() { done <- f.app.Watch(ctx, app.WatchOptions{}) }()
		synctest.Wait()

		// Output files are ignored; the source edit triggers exactly one pass.
		fw.in <- ports.WatchEvent{Path: mainOut, Operation: ports.OpWrite}
		fw.in <- ports.WatchEvent{Path: source, Operation: ports.OpWrite}

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		require.NoError(t, <-done)
		assert.Equal(t, 2, passes)
	})
}

func TestApp_Watch_UnchangedContentIsIgnored(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.app.WithSummaryOutput(io.Discard)
		project := testProject()
		f.expectOpen(project)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		passes := 0
		f.session.EXPECT().Rebuild(gomock.Any()).DoAndReturn(func(context.Context) (*domain.BuildReport, error) {
			passes++
			return &domain.BuildReport{}, nil
		}).Times(2)
		f.writer.EXPECT().Write(gomock.Any()).Return(nil).Times(2)
		f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

		source := filepath.Join(project.Root, "src", "w.ts")
		f.hasher.EXPECT().ComputeFileHash(source).Return(uint64(7), nil).Times(2)

		fw := newFakeWatcher()
		f.app.WithWatcherFactory(func() (ports.Watcher, error) { return fw, nil })

		done := make(chan error, 1)
		go func() { done <- f.app.Watch(ctx, app.WatchOptions{}) }()
		synctest.Wait()

		fw.in <- ports.WatchEvent{Path: source, Operation: ports.OpWrite}
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, 2, passes)

		// Same digest as before: no further pass.
		fw.in <- ports.WatchEvent{Path: source, Operation: ports.OpWrite}
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 2, passes)

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_KeepsWatchingAfterFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.app.WithSummaryOutput(io.Discard)
		project := testProject()
		f.expectOpen(project)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hostErr := errors.New("syntax error")
		gomock.InOrder(
			f.session.EXPECT().Rebuild(gomock.Any()).Return(nil, hostErr),
			f.session.EXPECT().Rebuild(gomock.Any()).DoAndReturn(func(context.Context) (*domain.BuildReport, error) {
				cancel()
				return &domain.BuildReport{}, nil
			}),
		)
		f.logger.EXPECT().Error(hostErr)
		f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
		f.writer.EXPECT().Write(gomock.Any()).Return(nil)

		source := filepath.Join(project.Root, "src", "main.ts")
		f.hasher.EXPECT().ComputeFileHash(source).Return(uint64(1), nil)

		fw := newFakeWatcher()
		f.app.WithWatcherFactory(func() (ports.Watcher, error) { return fw, nil })

		done := make(chan error, 1)
		go func() { done <- f.app.Watch(ctx, app.WatchOptions{}) }()
		synctest.Wait()

		fw.in <- ports.WatchEvent{Path: source, Operation: ports.OpWrite}
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		require.NoError(t, <-done)
	})
}

func TestApp_Watch_RequiresWatcher(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(testProject(), nil)

	err := f.app.Watch(context.Background(), app.WatchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file watcher configured")
}
