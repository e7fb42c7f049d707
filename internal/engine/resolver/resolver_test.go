package resolver_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/c3pm/internal/adapters/telemetry"
	"go.trai.ch/c3pm/internal/core/domain"
	"go.trai.ch/c3pm/internal/core/ports/mocks"
	"go.trai.ch/c3pm/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

var (
	depA = domain.Dependency{Name: "a", Owner: "o", Repository: "a"}
	depB = domain.Dependency{Name: "b", Owner: "o", Repository: "b", Revision: "v1.2.0"}
	depC = domain.Dependency{Name: "c", Owner: "o", Repository: "c"}
)

type testDeps struct {
	manifests *mocks.MockManifestReader
	fetcher   *mocks.MockFetcher
	resolver  *resolver.Resolver
}

func setup(t *testing.T) *testDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := &testDeps{
		manifests: mocks.NewMockManifestReader(ctrl),
		fetcher:   mocks.NewMockFetcher(ctrl),
	}
	d.resolver = resolver.New(d.manifests, d.fetcher, telemetry.NewNoOpTracer())
	return d
}

func manifest(deps ...domain.Dependency) *domain.Manifest {
	return &domain.Manifest{Dependencies: deps, Digest: "digest"}
}

func fetched(commit string) func(context.Context, domain.Dependency, string) (domain.FetchResult, error) {
	return func(_ context.Context, _ domain.Dependency, dir string) (domain.FetchResult, error) {
		return domain.FetchResult{Dir: dir, Commit: commit}, nil
	}
}

func TestResolve_NoManifest(t *testing.T) {
	d := setup(t)
	root := t.TempDir()

	d.manifests.EXPECT().Read(root).Return(nil, errors.Join(domain.ErrManifestNotFound, errors.New("missing")))

	res, err := d.resolver.Resolve(context.Background(), root, domain.ResolveOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Dependencies)
	assert.Empty(t, res.Digest)
	assert.NoDirExists(t, domain.DepsDir(root))
}

func TestResolve_EmptyManifestCreatesNoDepsDir(t *testing.T) {
	d := setup(t)
	root := t.TempDir()

	d.manifests.EXPECT().Read(root).Return(manifest(), nil)

	res, err := d.resolver.Resolve(context.Background(), root, domain.ResolveOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Dependencies)
	assert.Equal(t, "digest", res.Digest)
	assert.NoDirExists(t, domain.DepsDir(root))
}

func TestResolve_ParseErrorStopsBeforeFetch(t *testing.T) {
	d := setup(t)
	root := t.TempDir()

	d.manifests.EXPECT().Read(root).Return(nil, errors.Join(domain.ErrManifestParse, errors.New("bad toml")))

	_, err := d.resolver.Resolve(context.Background(), root, domain.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestParse)
	assert.NoDirExists(t, domain.DepsDir(root))
}

func TestResolve_NestedPreOrder(t *testing.T) {
	d := setup(t)
	root := t.TempDir()

	dirA := domain.DependencyDir(root, "a")
	dirB := domain.DependencyDir(dirA, "b")
	dirC := domain.DependencyDir(root, "c")
	notFound := errors.Join(domain.ErrManifestNotFound, errors.New("missing"))

	gomock.InOrder(
		d.manifests.EXPECT().Read(root).Return(manifest(depA, depC), nil),
		d.fetcher.EXPECT().Fetch(gomock.Any(), depA, dirA).DoAndReturn(fetched("aaa")),
		d.manifests.EXPECT().Read(dirA).Return(manifest(depB), nil),
		d.fetcher.EXPECT().Fetch(gomock.Any(), depB, dirB).DoAndReturn(fetched("bbb")),
		d.manifests.EXPECT().Read(dirB).Return(nil, notFound),
		d.fetcher.EXPECT().Fetch(gomock.Any(), depC, dirC).DoAndReturn(fetched("ccc")),
		d.manifests.EXPECT().Read(dirC).Return(manifest(), nil),
	)

	res, err := d.resolver.Resolve(context.Background(), root, domain.ResolveOptions{})
	require.NoError(t, err)

	assert.DirExists(t, domain.DepsDir(root))
	assert.DirExists(t, domain.DepsDir(dirA))
	assert.NoDirExists(t, domain.DepsDir(dirC))

	assert.Equal(t, []domain.ResolvedDependency{
		{Dependency: depA, Path: "deps/a", Depth: 1, Commit: "aaa"},
		{Dependency: depB, Path: "deps/a/deps/b", Depth: 2, Commit: "bbb"},
		{Dependency: depC, Path: "deps/c", Depth: 1, Commit: "ccc"},
	}, res.Dependencies)
	assert.Equal(t, 3, res.Fetched())
}

func TestResolve_ExistingDependency(t *testing.T) {
	root := t.TempDir()
	dirA := domain.DependencyDir(root, "a")
	existing := func(_ context.Context, _ domain.Dependency, dir string) (domain.FetchResult, error) {
		return domain.FetchResult{Dir: dir, Commit: "old", Existing: true}, nil
	}

	t.Run("recurses by default", func(t *testing.T) {
		d := setup(t)
		d.manifests.EXPECT().Read(root).Return(manifest(depA), nil)
		d.fetcher.EXPECT().Fetch(gomock.Any(), depA, dirA).DoAndReturn(existing)
		d.manifests.EXPECT().Read(dirA).Return(manifest(), nil)

		res, err := d.resolver.Resolve(context.Background(), root, domain.ResolveOptions{})
		require.NoError(t, err)
		require.Len(t, res.Dependencies, 1)
		assert.True(t, res.Dependencies[0].Existing)
		assert.False(t, res.Dependencies[0].SubtreeSkipped)
		assert.Equal(t, 0, res.Fetched())
	})

	t.Run("skips subtree when asked", func(t *testing.T) {
		d := setup(t)
		d.manifests.EXPECT().Read(root).Return(manifest(depA), nil)
		d.fetcher.EXPECT().Fetch(gomock.Any(), depA, dirA).DoAndReturn(existing)

		res, err := d.resolver.Resolve(context.Background(), root, domain.ResolveOptions{SkipExistingSubtrees: true})
		require.NoError(t, err)
		require.Len(t, res.Dependencies, 1)
		assert.True(t, res.Dependencies[0].SubtreeSkipped)
		assert.Equal(t, []string{"deps/a"}, res.SkippedSubtrees())
	})
}

func TestResolve_CycleDetected(t *testing.T) {
	d := setup(t)
	root := t.TempDir()

	dirA := domain.DependencyDir(root, "a")
	dirB := domain.DependencyDir(dirA, "b")

	d.manifests.EXPECT().Read(root).Return(manifest(depA), nil)
	d.fetcher.EXPECT().Fetch(gomock.Any(), depA, dirA).DoAndReturn(fetched("aaa"))
	d.manifests.EXPECT().Read(dirA).Return(manifest(depB), nil)
	d.fetcher.EXPECT().Fetch(gomock.Any(), depB, dirB).DoAndReturn(fetched("bbb"))
	d.manifests.EXPECT().Read(dirB).Return(manifest(depA), nil)

	_, err := d.resolver.Resolve(context.Background(), root, domain.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
	assert.NoDirExists(t, domain.DependencyDir(dirB, "a"))
}

func TestResolve_SameDependencyInSiblingsIsNotACycle(t *testing.T) {
	d := setup(t)
	root := t.TempDir()

	dirA := domain.DependencyDir(root, "a")
	dirC := domain.DependencyDir(root, "c")

	d.manifests.EXPECT().Read(root).Return(manifest(depA, depC), nil)
	d.fetcher.EXPECT().Fetch(gomock.Any(), depA, dirA).DoAndReturn(fetched("aaa"))
	d.manifests.EXPECT().Read(dirA).Return(manifest(), nil)
	d.fetcher.EXPECT().Fetch(gomock.Any(), depC, dirC).DoAndReturn(fetched("ccc"))
	d.manifests.EXPECT().Read(dirC).Return(manifest(depA), nil)
	d.fetcher.EXPECT().Fetch(gomock.Any(), depA, domain.DependencyDir(dirC, "a")).DoAndReturn(fetched("aaa"))
	d.manifests.EXPECT().Read(domain.DependencyDir(dirC, "a")).Return(manifest(), nil)

	res, err := d.resolver.Resolve(context.Background(), root, domain.ResolveOptions{})
	require.NoError(t, err)
	assert.Len(t, res.Dependencies, 3)
}

func TestResolve_FetchErrorAborts(t *testing.T) {
	d := setup(t)
	root := t.TempDir()

	d.manifests.EXPECT().Read(root).Return(manifest(depA, depC), nil)
	d.fetcher.EXPECT().Fetch(gomock.Any(), depA, gomock.Any()).
		Return(domain.FetchResult{}, errors.Join(domain.ErrFetchFailed, errors.New("unreachable")))

	res, err := d.resolver.Resolve(context.Background(), root, domain.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Contains(t, err.Error(), "dependency a")
	assert.Empty(t, res.Dependencies)
}

func TestResolve_Cancelled(t *testing.T) {
	d := setup(t)
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.manifests.EXPECT().Read(root).Return(manifest(depA), nil)

	_, err := d.resolver.Resolve(ctx, root, domain.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_RecordsFetchSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	manifests := mocks.NewMockManifestReader(ctrl)
	fetcher := mocks.NewMockFetcher(ctrl)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	root := t.TempDir()
	manifests.EXPECT().Read(root).Return(manifest(depA, depC), nil)
	fetcher.EXPECT().Fetch(gomock.Any(), depA, gomock.Any()).DoAndReturn(fetched("aaa"))
	manifests.EXPECT().Read(domain.DependencyDir(root, "a")).Return(manifest(), nil)
	fetcher.EXPECT().Fetch(gomock.Any(), depC, gomock.Any()).
		Return(domain.FetchResult{}, errors.Join(domain.ErrFetchFailed, errors.New("unreachable")))

	r := resolver.New(manifests, fetcher, telemetry.NewOTelTracerWithProvider(tp, "test"))
	_, err := r.Resolve(context.Background(), root, domain.ResolveOptions{})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "fetch a", spans[0].Name())
	assert.Equal(t, "fetch c", spans[1].Name())
	assert.Equal(t, "Error", spans[1].Status().Code.String())
}

func TestResolve_RelativePaths(t *testing.T) {
	d := setup(t)
	root := filepath.Join(t.TempDir(), "project")

	d.manifests.EXPECT().Read(root).Return(manifest(depA), nil)
	d.fetcher.EXPECT().Fetch(gomock.Any(), depA, filepath.Join(root, "deps", "a")).DoAndReturn(fetched("aaa"))
	d.manifests.EXPECT().Read(gomock.Any()).Return(manifest(), nil)

	res, err := d.resolver.Resolve(context.Background(), root, domain.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, root, res.Root)
	assert.Equal(t, "deps/a", res.Dependencies[0].Path)
}
