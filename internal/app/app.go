// Package app implements the application layer for ppac.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/ppac/internal/engine/catalog"
	"go.trai.ch/ppac/internal/engine/installer"
	"go.trai.ch/zerr"
)

// Options are the per-invocation settings of a command.
type Options struct {
	// Home is the ppac home directory. Empty means domain.DefaultHome.
	Home string

	// AssumeYes answers every question with its default.
	AssumeYes bool

	// Repository preselects the repository an installed package is downloaded from.
	Repository string
}

// App represents the main application logic.
type App struct {
	logger       ports.Logger
	settings     ports.SettingsLoader
	repositories ports.RepositoryLoader
	fetchers     ports.FetcherProvider
	decoder      ports.CatalogDecoder
	extractor    ports.Extractor
	tree         ports.InstallTree
	ledgers      ports.LedgerStore
	prompter     ports.Prompter
	telemetry    ports.Telemetry
	tracer       ports.Tracer
	metrics      ports.Metrics
}

// New creates a new App instance.
func New(
	logger ports.Logger,
	settings ports.SettingsLoader,
	repositories ports.RepositoryLoader,
	fetchers ports.FetcherProvider,
	decoder ports.CatalogDecoder,
	extractor ports.Extractor,
	tree ports.InstallTree,
	ledgers ports.LedgerStore,
	prompter ports.Prompter,
	telemetry ports.Telemetry,
	tracer ports.Tracer,
	metrics ports.Metrics,
) *App {
	return &App{
		logger:       logger,
		settings:     settings,
		repositories: repositories,
		fetchers:     fetchers,
		decoder:      decoder,
		extractor:    extractor,
		tree:         tree,
		ledgers:      ledgers,
		prompter:     prompter,
		telemetry:    telemetry,
		tracer:       tracer,
		metrics:      metrics,
	}
}

// SetVerbose toggles debug logging when the logger supports it.
func (a *App) SetVerbose(verbose bool) {
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(verbose)
	}
}

// SetJSONLogs switches the logger to JSON records when it supports it.
func (a *App) SetJSONLogs(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// session is the state every command works on: the resolved settings, the merged
// catalog and the opened ledger.
type session struct {
	settings     domain.Settings
	repositories []domain.Repository
	catalog      *domain.Catalog
	ledger       ports.Ledger
	fetcher      ports.Fetcher
}

// Install installs a package and its dependencies.
func (a *App) Install(ctx context.Context, name string, opts Options) error {
	return a.run(ctx, opts, func(ctx context.Context, s *session) error {
		return a.engine(s, opts).Install(ctx, name)
	})
}

// Uninstall removes an installed package.
func (a *App) Uninstall(ctx context.Context, name string, opts Options) error {
	return a.run(ctx, opts, func(ctx context.Context, s *session) error {
		return a.engine(s, opts).Uninstall(ctx, name)
	})
}

// Update upgrades every installed package whose catalog version changed.
func (a *App) Update(ctx context.Context, opts Options) error {
	return a.run(ctx, opts, func(ctx context.Context, s *session) error {
		return a.engine(s, opts).UpdateAll(ctx)
	})
}

// PackageStatus describes an installed package against the catalog.
type PackageStatus struct {
	Name      string
	Installed string
	// Available is the catalog version, empty when no repository lists the package.
	Available string
	PURL      string
}

// UpdateAvailable reports whether the catalog offers a different version.
func (p PackageStatus) UpdateAvailable() bool {
	return p.Available != "" && p.Available != p.Installed
}

// List reports every installed package in name order.
func (a *App) List(ctx context.Context, opts Options) ([]PackageStatus, error) {
	var statuses []PackageStatus
	err := a.run(ctx, opts, func(_ context.Context, s *session) error {
		names := s.ledger.Names()
		statuses = make([]PackageStatus, 0, len(names))
		for _, name := range names {
			installed, _ := s.ledger.Version(name)
			available, _ := s.catalog.Version(name)
			statuses = append(statuses, PackageStatus{
				Name:      name,
				Installed: installed,
				Available: available,
				PURL:      domain.PackageURL(name, installed, winner(s.catalog, name)),
			})
		}
		return nil
	})
	return statuses, err
}

// PackageInfo describes a single package.
type PackageInfo struct {
	Name string
	// Record is the winning catalog record. InCatalog is false when no repository lists the package.
	Record    domain.PackageRecord
	InCatalog bool
	// OfferedBy lists the repositories publishing the package in load order.
	OfferedBy []domain.Repository
	// Installed is the ledger version, empty when the package is not installed.
	Installed string
	// Files is the number of installed files.
	Files int
	PURL  string
}

// Info reports what the catalog and the ledger know about a package.
func (a *App) Info(ctx context.Context, name string, opts Options) (PackageInfo, error) {
	info := PackageInfo{Name: name}
	err := a.run(ctx, opts, func(_ context.Context, s *session) error {
		info.Record, info.InCatalog = s.catalog.Record(name)
		info.Installed, _ = s.ledger.Version(name)
		if !info.InCatalog && info.Installed == "" {
			return zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "not in any repository"), "package", name)
		}
		info.OfferedBy = s.catalog.OfferedBy(name)

		version := info.Record.Version
		if info.Installed != "" {
			files, err := a.tree.Files(domain.PackageDir(s.settings.InstallRoot, name))
			if err != nil {
				return zerr.With(err, "package", name)
			}
			info.Files = len(files)
			if !info.InCatalog {
				version = info.Installed
			}
		}
		info.PURL = domain.PackageURL(name, version, winner(s.catalog, name))
		return nil
	})
	return info, err
}

// RepositoryStatus describes a configured repository after its catalog was loaded.
type RepositoryStatus struct {
	Repository domain.Repository
	// Packages is the number of packages the repository lists.
	Packages int
	// Err is set when the catalog could not be loaded.
	Err error
}

// Repositories reports every configured repository in configuration order.
func (a *App) Repositories(ctx context.Context, opts Options) ([]RepositoryStatus, error) {
	var statuses []RepositoryStatus
	err := a.run(ctx, opts, func(_ context.Context, s *session) error {
		counts := make(map[string]int)
		for _, name := range s.catalog.Names() {
			for _, repo := range s.catalog.OfferedBy(name) {
				counts[repo.Name]++
			}
		}
		failed := make(map[string]error)
		for _, failure := range s.catalog.Failures() {
			failed[failure.Repository.Name] = failure.Err
		}

		statuses = make([]RepositoryStatus, 0, len(s.repositories))
		for _, repo := range s.repositories {
			statuses = append(statuses, RepositoryStatus{
				Repository: repo,
				Packages:   counts[repo.Name],
				Err:        failed[repo.Name],
			})
		}
		return nil
	})
	return statuses, err
}

// run opens a session, calls fn and releases the session's resources.
func (a *App) run(ctx context.Context, opts Options, fn func(context.Context, *session) error) error {
	s, err := a.open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if flushErr := a.metrics.Flush(s.settings.MetricsTextfile); flushErr != nil {
			a.logger.Warn(fmt.Sprintf("Failed to write metrics: %v", flushErr))
		}
		if closeErr := a.telemetry.Close(); closeErr != nil {
			a.logger.Debug(fmt.Sprintf("Failed to close telemetry: %v", closeErr))
		}
	}()

	return fn(ctx, s)
}

// open resolves the settings, loads the repositories and their catalogs and opens the ledger.
// A missing repository configuration is reported and yields an empty catalog.
func (a *App) open(ctx context.Context, opts Options) (*session, error) {
	settings, err := a.settings.Load(home(opts))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load settings")
	}

	repos, err := a.repositories.Load(settings.RepositoriesPath)
	switch {
	case errors.Is(err, domain.ErrConfigMissing):
		a.logger.Warn(fmt.Sprintf(
			"No repository configuration found at %s. A configuration can be obtained from %s",
			settings.RepositoriesPath, domain.ConfigSourceURL,
		))
	case err != nil:
		return nil, err
	}

	fetcher, err := a.fetchers.Fetcher(settings)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to configure downloads")
	}

	builder := catalog.NewBuilder(fetcher, a.decoder, a.logger, a.tracer, a.metrics, settings.CatalogConcurrency)
	cat, err := builder.Build(ctx, repos)
	if err != nil {
		return nil, err
	}

	ledger, err := a.ledgers.Open(settings.LedgerPath)
	if err != nil {
		return nil, err
	}

	return &session{
		settings:     settings,
		repositories: repos,
		catalog:      cat,
		ledger:       ledger,
		fetcher:      fetcher,
	}, nil
}

func (a *App) engine(s *session, opts Options) *installer.Engine {
	return installer.New(installer.Deps{
		Catalog:     s.catalog,
		Ledger:      s.ledger,
		Fetcher:     s.fetcher,
		Extractor:   a.extractor,
		Tree:        a.tree,
		Prompter:    a.prompter,
		Logger:      a.logger,
		Telemetry:   a.telemetry,
		Tracer:      a.tracer,
		Metrics:     a.metrics,
		InstallRoot: s.settings.InstallRoot,
	}, installer.WithAssumeYes(opts.AssumeYes), installer.WithRepository(opts.Repository))
}

func home(opts Options) string {
	if opts.Home != "" {
		return opts.Home
	}
	return domain.DefaultHome()
}

// winner returns the repository whose record the catalog kept for name.
func winner(cat *domain.Catalog, name string) domain.Repository {
	rec, ok := cat.Record(name)
	if !ok {
		return domain.Repository{}
	}
	for _, repo := range cat.OfferedBy(name) {
		if repo.Name == rec.Repository {
			return repo
		}
	}
	return domain.Repository{}
}
