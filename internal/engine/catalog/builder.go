// Package catalog builds the merged package catalog from the configured repositories.
package catalog

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Builder fetches every repository's catalog document and merges them.
type Builder struct {
	fetcher     ports.Fetcher
	decoder     ports.CatalogDecoder
	logger      ports.Logger
	tracer      ports.Tracer
	metrics     ports.Metrics
	concurrency int
}

// NewBuilder creates a Builder fetching at most concurrency documents at once.
func NewBuilder(
	fetcher ports.Fetcher,
	decoder ports.CatalogDecoder,
	logger ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
	concurrency int,
) *Builder {
	if concurrency < 1 {
		concurrency = domain.DefaultCatalogConcurrency
	}
	return &Builder{
		fetcher:     fetcher,
		decoder:     decoder,
		logger:      logger,
		tracer:      tracer,
		metrics:     metrics,
		concurrency: concurrency,
	}
}

type fetchResult struct {
	records []domain.PackageRecord
	err     error
}

// Build loads the catalog of every repository. A repository whose document cannot be
// fetched or decoded is logged and left out; documents are merged in configuration
// order whatever order they arrive in. Only cancellation of ctx fails the build.
func (b *Builder) Build(ctx context.Context, repos []domain.Repository) (*domain.Catalog, error) {
	ctx, span := b.tracer.Start(ctx, "catalog.build")
	defer span.End()
	span.SetAttribute("repositories", len(repos))

	results := make([]fetchResult, len(repos))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, repo := range repos {
		g.Go(func() error {
			b.logger.Debug(fmt.Sprintf("Loading repository [%s] from %s", repo.Name, repo.CatalogURL))

			start := time.Now()
			records, err := b.load(groupCtx, repo)
			b.metrics.CatalogFetched(repo.Name, err, time.Since(start))

			results[i] = fetchResult{records: records, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	catalog := domain.NewCatalog()
	for i, repo := range repos {
		res := results[i]
		if res.err != nil {
			b.logger.Error(res.err)
			catalog.MarkFailed(repo, res.err)
			continue
		}
		catalog.Merge(repo, res.records)
		b.logger.Info(fmt.Sprintf("Loaded repository [%s] (%d packages)", repo.Label(), len(res.records)))
	}

	span.SetAttribute("packages", catalog.Len())
	span.SetAttribute("failed_repositories", len(catalog.Failures()))
	return catalog, nil
}

func (b *Builder) load(ctx context.Context, repo domain.Repository) ([]domain.PackageRecord, error) {
	body, err := b.fetcher.Fetch(ctx, repo.CatalogURL)
	if err != nil {
		return nil, b.failure(repo, err)
	}
	defer func() { _ = body.Close() }()

	records, err := b.decoder.Decode(body)
	if err != nil {
		return nil, b.failure(repo, err)
	}
	return records, nil
}

func (b *Builder) failure(repo domain.Repository, cause error) error {
	err := zerr.With(domain.Because(domain.ErrCatalogFetchFailed, cause), "repository", repo.Name)
	return zerr.With(err, "url", repo.CatalogURL)
}
