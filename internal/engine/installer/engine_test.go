package installer_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ppac/internal/adapters/archive"
	"go.trai.ch/ppac/internal/adapters/fs"
	"go.trai.ch/ppac/internal/adapters/ledger"
	"go.trai.ch/ppac/internal/adapters/metrics"
	"go.trai.ch/ppac/internal/adapters/telemetry"
	"go.trai.ch/ppac/internal/adapters/telemetry/progrock"
	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports/mocks"
	"go.trai.ch/ppac/internal/engine/installer"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var errNotFound = zerr.New("resource not found")

var (
	repoMain   = domain.Repository{Name: "main", CatalogURL: "https://main.example.com/packages.json", ArtifactURL: "https://main.example.com/pkgs"}
	repoMirror = domain.Repository{Name: "mirror", CatalogURL: "https://mirror.example.com/packages.json", ArtifactURL: "https://mirror.example.com/pkgs/"}
)

func pkg(name, version string, deps ...string) domain.PackageRecord {
	return domain.PackageRecord{Name: name, Version: version, Dependencies: deps}
}

// tarball builds a gzip tar archive holding the given files.
func tarball(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(body)),
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

type fixture struct {
	t        *testing.T
	root     string
	catalog  *domain.Catalog
	ledger   *ledger.Store
	fetcher  *mocks.MockFetcher
	prompter *mocks.MockPrompter
	warnings []string
	deps     installer.Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	home := t.TempDir()
	store, err := ledger.Open(filepath.Join(home, domain.LedgerFileName))
	require.NoError(t, err)

	f := &fixture{
		t:        t,
		root:     filepath.Join(home, domain.InstallDirName),
		catalog:  domain.NewCatalog(),
		ledger:   store,
		fetcher:  mocks.NewMockFetcher(ctrl),
		prompter: mocks.NewMockPrompter(ctrl),
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		f.warnings = append(f.warnings, msg)
	}).AnyTimes()

	f.deps = installer.Deps{
		Catalog:     f.catalog,
		Ledger:      store,
		Fetcher:     f.fetcher,
		Extractor:   archive.NewExtractor(),
		Tree:        fs.NewTree(fs.NewWalker()),
		Prompter:    f.prompter,
		Logger:      logger,
		Telemetry:   progrock.New(nil),
		Tracer:      telemetry.NewNoOpTracer(),
		Metrics:     metrics.New(),
		InstallRoot: f.root,
	}
	return f
}

func (f *fixture) engine(opts ...installer.Option) *installer.Engine {
	return installer.New(f.deps, opts...)
}

// serve expects one download of url answered with an archive of files.
func (f *fixture) serve(url string, files map[string]string) *gomock.Call {
	data := tarball(f.t, files)
	return f.fetcher.EXPECT().Fetch(gomock.Any(), url).Return(io.NopCloser(bytes.NewReader(data)), nil)
}

// missing expects one download of url that fails.
func (f *fixture) missing(url string) *gomock.Call {
	return f.fetcher.EXPECT().Fetch(gomock.Any(), url).Return(nil, errNotFound)
}

// servePackage expects the application and documentation downloads of name from repo.
func (f *fixture) servePackage(repo domain.Repository, name, version string) []any {
	return []any{
		f.serve(domain.ArtifactURL(repo.ArtifactURL, name), map[string]string{"bin/" + name: version}),
		f.serve(domain.DocsURL(repo.ArtifactURL, name), map[string]string{"README": name + " docs"}),
	}
}

func (f *fixture) confirm(answer bool) {
	f.prompter.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(answer, nil)
}

func (f *fixture) record(name, version string) {
	require.NoError(f.t, f.ledger.Record(name, version))
}

func (f *fixture) installed() map[string]string {
	state := make(map[string]string)
	for _, name := range f.ledger.Names() {
		state[name], _ = f.ledger.Version(name)
	}
	return state
}

func (f *fixture) readFile(rel string) string {
	data, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(rel)))
	require.NoError(f.t, err)
	return string(data)
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	return zErr.Metadata()
}

func TestInstall_DependenciesFirst(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("a", "1.0"), pkg("b", "2.0", "a")})

	f.prompter.EXPECT().Confirm(gomock.Any(), domain.ConfirmRequest{
		Package: "b",
		Version: "2.0",
		Plan:    []string{"a", "b"},
	}).Return(true, nil)
	gomock.InOrder(append(f.servePackage(repoMain, "a", "1.0"), f.servePackage(repoMain, "b", "2.0")...)...)

	require.NoError(t, f.engine().Install(context.Background(), "b"))

	assert.Equal(t, map[string]string{"a": "1.0", "b": "2.0"}, f.installed())
	assert.Equal(t, "1.0", f.readFile("a/bin/a"))
	assert.Equal(t, "2.0", f.readFile("b/bin/b"))
	assert.Equal(t, "b docs", f.readFile("b-docs/README"))
}

func TestInstall_UpgradesOnlyOutdatedPackages(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("a", "1.0"), pkg("b", "2.0", "a")})
	f.record("a", "1.0")
	f.record("b", "1.0")

	f.confirm(true)
	f.servePackage(repoMain, "b", "2.0")

	require.NoError(t, f.engine().Install(context.Background(), "b"))

	assert.Equal(t, map[string]string{"a": "1.0", "b": "2.0"}, f.installed())
	assert.Equal(t, "2.0", f.readFile("b/bin/b"))
}

func TestInstall_SameVersionIsSatisfied(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("a", "1.0")})
	f.record("a", "1.0")

	ledgerPath := filepath.Join(filepath.Dir(f.root), domain.LedgerFileName)
	before, err := os.ReadFile(ledgerPath)
	require.NoError(t, err)

	f.confirm(true)

	require.NoError(t, f.engine().Install(context.Background(), "a"))

	after, err := os.ReadFile(ledgerPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoDirExists(t, filepath.Join(f.root, "a"))
}

func TestInstall_SecondRepositorySelected(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("tool", "1.0")})
	f.catalog.Merge(repoMirror, []domain.PackageRecord{pkg("tool", "1.0")})

	f.confirm(true)
	f.prompter.EXPECT().Choose(gomock.Any(), domain.ChoiceRequest{
		Package: "tool",
		Options: []domain.Repository{repoMain, repoMirror},
	}).Return(2, nil)
	f.serve("https://mirror.example.com/pkgs/app/tool.tar.gz", map[string]string{"bin/tool": "mirror"})
	f.serve("https://mirror.example.com/pkgs/app-docs/tool.tar.gz", map[string]string{"README": "mirror docs"})

	require.NoError(t, f.engine().Install(context.Background(), "tool"))

	assert.Equal(t, "mirror", f.readFile("tool/bin/tool"))
	assert.Equal(t, map[string]string{"tool": "1.0"}, f.installed())
}

func TestInstall_ChoiceCanceled(t *testing.T) {
	tests := []struct {
		name   string
		answer int
		err    error
	}{
		{name: "cancel entry", answer: 3},
		{name: "out of range", answer: 0},
		{name: "far out of range", answer: 42},
		{name: "not a number", err: zerr.Wrap(domain.ErrInvalidChoice, "not a number")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("tool", "1.0")})
			f.catalog.Merge(repoMirror, []domain.PackageRecord{pkg("tool", "1.0")})

			f.confirm(true)
			f.prompter.EXPECT().Choose(gomock.Any(), gomock.Any()).Return(tt.answer, tt.err)

			err := f.engine().Install(context.Background(), "tool")
			require.ErrorIs(t, err, domain.ErrInstallAborted)
			assert.Empty(t, f.installed())
			assert.NoDirExists(t, f.root)
		})
	}
}

func TestInstall_Declined(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("a", "1.0"), pkg("b", "2.0", "a")})

	f.confirm(false)

	err := f.engine().Install(context.Background(), "b")
	require.ErrorIs(t, err, domain.ErrInstallAborted)
	assert.Empty(t, f.installed())
	assert.NoDirExists(t, f.root)
}

func TestInstall_PackageNotFound(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("a", "1.0")})

	err := f.engine().Install(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
	assert.Equal(t, "ghost", metadata(t, err)["package"])
}

func TestInstall_ResolutionFailsBeforeAnyEffect(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.PackageRecord
		want    error
	}{
		{
			name:    "missing dependency",
			records: []domain.PackageRecord{pkg("app", "1", "lib"), pkg("lib", "1", "ghost")},
			want:    domain.ErrDependencyNotFound,
		},
		{
			name:    "cycle",
			records: []domain.PackageRecord{pkg("app", "1", "lib"), pkg("lib", "1", "app")},
			want:    domain.ErrCyclicDependency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.catalog.Merge(repoMain, tt.records)

			err := f.engine().Install(context.Background(), "app")
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.installed())
		})
	}
}

func TestInstall_NoRollbackOfInstalledDependencies(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("a", "1.0"), pkg("b", "2.0", "a")})

	f.confirm(true)
	gomock.InOrder(
		append(f.servePackage(repoMain, "a", "1.0"),
			f.missing(domain.ArtifactURL(repoMain.ArtifactURL, "b")))...,
	)

	err := f.engine().Install(context.Background(), "b")
	require.ErrorIs(t, err, domain.ErrArchiveFetchFailed)
	require.ErrorIs(t, err, errNotFound)

	meta := metadata(t, err)
	assert.Equal(t, "b", meta["package"])
	assert.Equal(t, "main", meta["repository"])
	assert.Equal(t, "https://main.example.com/pkgs/app/b.tar.gz", meta["url"])

	// The dependency installed before the failure stays installed.
	assert.Equal(t, map[string]string{"a": "1.0"}, f.installed())
	assert.Equal(t, "1.0", f.readFile("a/bin/a"))
	assert.NoDirExists(t, filepath.Join(f.root, "b"))
}

func TestInstall_DependencyFailureStopsParent(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("a", "1.0"), pkg("b", "2.0", "a")})

	f.confirm(true)
	f.missing(domain.ArtifactURL(repoMain.ArtifactURL, "a"))

	err := f.engine().Install(context.Background(), "b")
	require.ErrorIs(t, err, domain.ErrArchiveFetchFailed)

	meta := metadata(t, err)
	assert.Equal(t, "a", meta["package"])
	assert.Equal(t, "b", meta["required_by"])
	assert.Empty(t, f.installed())
}

func TestInstall_FailedExtractionKeepsPreviousInstall(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("tool", "1.0")})
	f.record("tool", "0.9")
	require.NoError(t, os.MkdirAll(filepath.Join(f.root, "tool"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "tool", "old.txt"), []byte("0.9"), 0o600))

	f.confirm(true)
	f.fetcher.EXPECT().Fetch(gomock.Any(), domain.ArtifactURL(repoMain.ArtifactURL, "tool")).
		Return(io.NopCloser(bytes.NewReader([]byte("not a gzip stream"))), nil)

	err := f.engine().Install(context.Background(), "tool")
	require.ErrorIs(t, err, domain.ErrArchiveExtractFailed)

	assert.Equal(t, "0.9", f.readFile("tool/old.txt"))
	assert.Equal(t, map[string]string{"tool": "0.9"}, f.installed())

	entries, err := os.ReadDir(f.root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging directory must be discarded")
}

func TestInstall_MissingDocumentationIsAWarning(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("tool", "1.0")})

	f.confirm(true)
	gomock.InOrder(
		f.serve(domain.ArtifactURL(repoMain.ArtifactURL, "tool"), map[string]string{"bin/tool": "1.0"}),
		f.missing(domain.DocsURL(repoMain.ArtifactURL, "tool")),
	)

	require.NoError(t, f.engine().Install(context.Background(), "tool"))

	assert.Equal(t, map[string]string{"tool": "1.0"}, f.installed())
	assert.NoDirExists(t, filepath.Join(f.root, "tool-docs"))
	require.Len(t, f.warnings, 1)
	assert.Contains(t, f.warnings[0], "Documentation for tool")
}

func TestInstall_MissingDocumentationRemovesOutdatedDocs(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("tool", "2.0")})
	f.record("tool", "1.0")
	oldDocs := filepath.Join(f.root, "tool-docs", "README")
	require.NoError(t, os.MkdirAll(filepath.Dir(oldDocs), 0o750))
	require.NoError(t, os.WriteFile(oldDocs, []byte("1.0 docs"), 0o600))

	f.confirm(true)
	gomock.InOrder(
		f.serve(domain.ArtifactURL(repoMain.ArtifactURL, "tool"), map[string]string{"bin/tool": "2.0"}),
		f.missing(domain.DocsURL(repoMain.ArtifactURL, "tool")),
	)

	require.NoError(t, f.engine().Install(context.Background(), "tool"))

	assert.Equal(t, map[string]string{"tool": "2.0"}, f.installed())
	assert.Equal(t, "2.0", f.readFile("tool/bin/tool"))
	assert.NoDirExists(t, filepath.Join(f.root, "tool-docs"))
	require.Len(t, f.warnings, 1)
}

func TestInstall_PreselectedRepository(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("tool", "1.0", "lib"), pkg("lib", "1.0")})
	f.catalog.Merge(repoMirror, []domain.PackageRecord{pkg("tool", "1.0", "lib")})

	f.confirm(true)
	gomock.InOrder(append(f.servePackage(repoMain, "lib", "1.0"), f.servePackage(repoMirror, "tool", "1.0")...)...)

	require.NoError(t, f.engine(installer.WithRepository("mirror")).Install(context.Background(), "tool"))
	assert.Equal(t, map[string]string{"lib": "1.0", "tool": "1.0"}, f.installed())
}

func TestInstall_PreselectedRepositoryNotOffering(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("tool", "1.0")})

	f.confirm(true)

	err := f.engine(installer.WithRepository("mirror")).Install(context.Background(), "tool")
	require.ErrorIs(t, err, domain.ErrRepositoryNotOffering)
	assert.Equal(t, "mirror", metadata(t, err)["repository"])
	assert.Empty(t, f.installed())
}

func TestInstall_AssumeYes(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("tool", "1.0")})
	f.catalog.Merge(repoMirror, []domain.PackageRecord{pkg("tool", "1.1")})

	// Neither question is asked; the repository whose record won the merge is used.
	f.servePackage(repoMirror, "tool", "1.1")

	require.NoError(t, f.engine(installer.WithAssumeYes(true)).Install(context.Background(), "tool"))
	assert.Equal(t, map[string]string{"tool": "1.1"}, f.installed())
}

func TestInstall_RejectsInvalidName(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("../victim", "1.0"), pkg("tool", "1.0")})

	victim := filepath.Join(filepath.Dir(f.root), "victim", "precious.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(victim), 0o750))
	require.NoError(t, os.WriteFile(victim, []byte("keep"), 0o600))

	err := f.engine(installer.WithAssumeYes(true)).Install(context.Background(), "../victim")
	require.ErrorIs(t, err, domain.ErrInvalidPackageName)
	assert.Equal(t, "../victim", metadata(t, err)["package"])
	assert.FileExists(t, victim)
	assert.Empty(t, f.installed())
}
