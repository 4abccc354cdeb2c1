// Package installer installs, uninstalls and updates packages against the catalog and the ledger.
package installer

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/ppac/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Deps are the collaborators of an Engine.
type Deps struct {
	Catalog   *domain.Catalog
	Ledger    ports.Ledger
	Fetcher   ports.Fetcher
	Extractor ports.Extractor
	Tree      ports.InstallTree
	Prompter  ports.Prompter
	Logger    ports.Logger
	Telemetry ports.Telemetry
	Tracer    ports.Tracer
	Metrics   ports.Metrics

	// InstallRoot is the directory packages are extracted into.
	InstallRoot string
}

// Option configures an Engine.
type Option func(*Engine)

// WithAssumeYes answers the confirmation automatically. When several repositories offer
// a package, the one whose record won the catalog merge is used instead of asking.
func WithAssumeYes(yes bool) Option {
	return func(e *Engine) {
		e.assumeYes = yes
	}
}

// WithRepository preselects the repository the requested package is downloaded from.
// Dependencies not offered by it are selected as usual.
func WithRepository(name string) Option {
	return func(e *Engine) {
		e.repository = name
	}
}

// Engine executes installation plans one package at a time.
type Engine struct {
	Deps

	assumeYes  bool
	repository string
}

// New creates an Engine.
func New(deps Deps, opts ...Option) *Engine {
	e := &Engine{Deps: deps}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Install installs name and every package it depends on, dependencies first.
//
// Nothing happens unless name is in the catalog, its plan resolves and the user
// confirms. Packages whose recorded version equals the catalog version are left alone.
// A failure stops the plan; packages installed before it stay installed.
func (e *Engine) Install(ctx context.Context, name string) error {
	ctx, span := e.Tracer.Start(ctx, "install")
	defer span.End()
	span.SetAttribute("package", name)

	err := e.install(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrInstallAborted) {
		span.RecordError(err)
	}
	return err
}

func (e *Engine) install(ctx context.Context, name string) error {
	if !domain.ValidPackageName(name) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidPackageName, "cannot install"), "package", name)
	}

	version, ok := e.Catalog.Version(name)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "not in any repository"), "package", name)
	}

	plan, err := resolver.Resolve(name, e.Catalog)
	if err != nil {
		return err
	}

	confirmed, err := e.confirm(ctx, domain.ConfirmRequest{Package: name, Version: version, Plan: plan.Names()})
	if err != nil {
		return err
	}
	if !confirmed {
		e.Metrics.PackageInstalled(ports.OutcomeAborted)
		return zerr.With(zerr.Wrap(domain.ErrInstallAborted, "declined"), "package", name)
	}

	for _, pkg := range plan.Names() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if pkg != name {
			e.Logger.Debug(fmt.Sprintf("Installing dependency %s of %s", pkg, name))
		}
		if err := e.installPackage(ctx, pkg, pkg == name); err != nil {
			if pkg != name {
				err = zerr.With(err, "required_by", name)
			}
			return err
		}
	}
	return nil
}

func (e *Engine) confirm(ctx context.Context, req domain.ConfirmRequest) (bool, error) {
	if e.assumeYes {
		return true, nil
	}
	return e.Prompter.Confirm(ctx, req)
}

// installPackage installs a single planned package.
func (e *Engine) installPackage(ctx context.Context, pkg string, target bool) error {
	_, vertex := e.Telemetry.Record(ctx, "install "+pkg)

	version, _ := e.Catalog.Version(pkg)
	outcome := ports.OutcomeInstalled

	if installed, ok := e.Ledger.Version(pkg); ok {
		if installed == version {
			vertex.Log(fmt.Sprintf("%s is already installed (v%s)", pkg, version))
			vertex.Cached()
			vertex.Complete(nil)
			e.Metrics.PackageInstalled(ports.OutcomeSkipped)
			return nil
		}
		vertex.Log(fmt.Sprintf("Updating %s from v%s to v%s", pkg, installed, version))
		outcome = ports.OutcomeUpgraded
	}

	err := e.deployPackage(ctx, vertex, pkg, version, target)
	vertex.Complete(err)

	switch {
	case err == nil:
		e.Metrics.PackageInstalled(outcome)
	case errors.Is(err, domain.ErrInstallAborted):
		e.Metrics.PackageInstalled(ports.OutcomeAborted)
	default:
		e.Metrics.PackageInstalled(ports.OutcomeFailed)
	}
	return err
}

func (e *Engine) deployPackage(ctx context.Context, vertex ports.Vertex, pkg, version string, target bool) error {
	repo, err := e.selectRepository(ctx, pkg, target)
	if err != nil {
		return err
	}

	vertex.Log(fmt.Sprintf("Downloading %s v%s from %s...", pkg, version, repo.Label()))
	dest := domain.PackageDir(e.InstallRoot, pkg)
	if err := e.deploy(ctx, domain.ArtifactURL(repo.ArtifactURL, pkg), dest); err != nil {
		err = zerr.With(err, "package", pkg)
		return zerr.With(err, "repository", repo.Name)
	}
	vertex.Log(fmt.Sprintf("Installed %s to %s", pkg, dest))

	docsDest := domain.DocsDir(e.InstallRoot, pkg)
	if err := e.deploy(ctx, domain.DocsURL(repo.ArtifactURL, pkg), docsDest); err != nil {
		e.Logger.Warn(fmt.Sprintf("Documentation for %s was not installed: %v", pkg, err))
		// Documentation of the replaced version no longer matches the install.
		if e.Tree.Exists(docsDest) {
			if removeErr := e.Tree.Remove(docsDest); removeErr != nil {
				e.Logger.Warn(fmt.Sprintf("Failed to remove outdated documentation of %s: %v", pkg, removeErr))
			}
		}
	} else {
		vertex.Log(fmt.Sprintf("Installed documentation for %s to %s", pkg, docsDest))
	}

	if err := e.Ledger.Record(pkg, version); err != nil {
		return zerr.With(err, "package", pkg)
	}
	return nil
}

// selectRepository picks the repository pkg is downloaded from.
func (e *Engine) selectRepository(ctx context.Context, pkg string, target bool) (domain.Repository, error) {
	candidates := e.Catalog.OfferedBy(pkg)
	if len(candidates) == 0 {
		err := zerr.Wrap(domain.ErrNoRepositoryAvailable, "no repository contains this package")
		return domain.Repository{}, zerr.With(err, "package", pkg)
	}

	if e.repository != "" {
		for _, repo := range candidates {
			if repo.Name == e.repository {
				return repo, nil
			}
		}
		if target {
			err := zerr.With(zerr.Wrap(domain.ErrRepositoryNotOffering, "cannot preselect"), "package", pkg)
			return domain.Repository{}, zerr.With(err, "repository", e.repository)
		}
	}

	if len(candidates) == 1 {
		return candidates[0], nil
	}

	if e.assumeYes {
		rec, _ := e.Catalog.Record(pkg)
		for _, repo := range candidates {
			if repo.Name == rec.Repository {
				return repo, nil
			}
		}
	}

	req := domain.ChoiceRequest{Package: pkg, Options: candidates}
	answer, err := e.Prompter.Choose(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidChoice) {
			return domain.Repository{}, domain.Because(domain.ErrInstallAborted, err)
		}
		return domain.Repository{}, err
	}

	repo, ok := req.Resolve(answer)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrInstallAborted, "canceled"), "package", pkg)
		return domain.Repository{}, zerr.With(err, "choice", answer)
	}
	return repo, nil
}

// deploy downloads the archive at url and swaps its contents in as dest.
// dest is untouched unless the whole archive extracted.
func (e *Engine) deploy(ctx context.Context, url, dest string) error {
	body, err := e.Fetcher.Fetch(ctx, url)
	if err != nil {
		return zerr.With(domain.Because(domain.ErrArchiveFetchFailed, err), "url", url)
	}
	defer func() { _ = body.Close() }()

	staging, err := e.Tree.Stage(dest)
	if err != nil {
		return zerr.With(domain.Because(domain.ErrArchiveExtractFailed, err), "url", url)
	}

	result, err := e.Extractor.Extract(ctx, body, staging)
	if err == nil {
		err = e.Tree.Commit(staging, dest)
	}
	if err != nil {
		if discardErr := e.Tree.Discard(staging); discardErr != nil {
			e.Logger.Warn(fmt.Sprintf("Failed to clean up %s: %v", staging, discardErr))
		}
		if !errors.Is(err, domain.ErrArchiveExtractFailed) {
			err = domain.Because(domain.ErrArchiveExtractFailed, err)
		}
		return zerr.With(err, "url", url)
	}

	e.Metrics.ArchiveExtracted(result.Bytes)
	e.Logger.Debug(fmt.Sprintf("Extracted %d files from %s (%d bytes, xxhash %s)", result.Files, url, result.Bytes, result.Digest))
	return nil
}
