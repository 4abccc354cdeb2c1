package catalog_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogdoc "go.trai.ch/ppac/internal/adapters/catalog"
	"go.trai.ch/ppac/internal/adapters/telemetry"
	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports/mocks"
	"go.trai.ch/ppac/internal/engine/catalog"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var (
	repoMain = domain.Repository{
		Name:        "main",
		CatalogURL:  "https://main.example.com/packages.json",
		ArtifactURL: "https://main.example.com",
	}
	repoMirror = domain.Repository{
		Name:        "mirror",
		CatalogURL:  "https://mirror.example.com/packages.json",
		ArtifactURL: "https://mirror.example.com",
	}
	repoBroken = domain.Repository{
		Name:        "broken",
		CatalogURL:  "https://broken.example.com/packages.json",
		ArtifactURL: "https://broken.example.com",
	}
)

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

type fixture struct {
	fetcher *mocks.MockFetcher
	logger  *mocks.MockLogger
	metrics *mocks.MockMetrics
	builder *catalog.Builder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		fetcher: mocks.NewMockFetcher(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		metrics: mocks.NewMockMetrics(ctrl),
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.builder = catalog.NewBuilder(
		f.fetcher, catalogdoc.NewDecoder(), f.logger, telemetry.NewNoOpTracer(), f.metrics, 2,
	)
	return f
}

func TestBuild_LaterRepositoryWins(t *testing.T) {
	f := newFixture(t)

	f.fetcher.EXPECT().Fetch(gomock.Any(), repoMain.CatalogURL).Return(body(`{
		"tool": {"version": "1.0", "dependencies": "lib"},
		"lib":  {"version": "1.0"}
	}`), nil)
	f.fetcher.EXPECT().Fetch(gomock.Any(), repoMirror.CatalogURL).Return(body(`{
		"tool": {"version": "2.0", "dependencies": []}
	}`), nil)
	f.metrics.EXPECT().CatalogFetched("main", nil, gomock.Any())
	f.metrics.EXPECT().CatalogFetched("mirror", nil, gomock.Any())

	c, err := f.builder.Build(context.Background(), []domain.Repository{repoMain, repoMirror})
	require.NoError(t, err)

	version, ok := c.Version("tool")
	require.True(t, ok)
	assert.Equal(t, "2.0", version)
	assert.Equal(t, []string{}, c.Dependencies("tool"))
	assert.Equal(t, []domain.Repository{repoMain, repoMirror}, c.OfferedBy("tool"))

	assert.Equal(t, []domain.Repository{repoMain}, c.OfferedBy("lib"))
	assert.Equal(t, []string{"lib", "tool"}, c.Names())
	assert.Empty(t, c.Failures())
}

func TestBuild_FailedRepositoryIsSkipped(t *testing.T) {
	f := newFixture(t)

	transportErr := zerr.With(zerr.New("upstream unavailable"), "status_code", 503)
	f.fetcher.EXPECT().Fetch(gomock.Any(), repoBroken.CatalogURL).Return(nil, transportErr)
	f.fetcher.EXPECT().Fetch(gomock.Any(), repoMain.CatalogURL).Return(body(`{"a": {"version": "1.0"}}`), nil)
	f.metrics.EXPECT().CatalogFetched("broken", gomock.Not(gomock.Nil()), gomock.Any())
	f.metrics.EXPECT().CatalogFetched("main", nil, gomock.Any())

	var logged error
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err })

	c, err := f.builder.Build(context.Background(), []domain.Repository{repoBroken, repoMain})
	require.NoError(t, err)

	assert.True(t, c.Has("a"))
	assert.Equal(t, []domain.Repository{repoMain}, c.Loaded())

	failures := c.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "broken", failures[0].Repository.Name)

	require.ErrorIs(t, logged, domain.ErrCatalogFetchFailed)
	var zErr *zerr.Error
	require.True(t, errors.As(logged, &zErr))
	meta := zErr.Metadata()
	assert.Equal(t, "broken", meta["repository"])
	assert.Equal(t, repoBroken.CatalogURL, meta["url"])
	assert.Equal(t, 503, meta["status_code"])
}

func TestBuild_InvalidDocument(t *testing.T) {
	f := newFixture(t)

	f.fetcher.EXPECT().Fetch(gomock.Any(), repoMain.CatalogURL).Return(body(`not json`), nil)
	f.metrics.EXPECT().CatalogFetched("main", gomock.Not(gomock.Nil()), gomock.Any())
	f.logger.EXPECT().Error(gomock.Any())

	c, err := f.builder.Build(context.Background(), []domain.Repository{repoMain})
	require.NoError(t, err)
	assert.Zero(t, c.Len())
	assert.Len(t, c.Failures(), 1)
}

func TestBuild_NoRepositories(t *testing.T) {
	f := newFixture(t)

	c, err := f.builder.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
}

func TestBuild_Canceled(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, context.Canceled).AnyTimes()
	f.metrics.EXPECT().CatalogFetched(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	_, err := f.builder.Build(ctx, []domain.Repository{repoMain})
	assert.ErrorIs(t, err, context.Canceled)
}
