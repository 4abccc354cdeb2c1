package ports

import (
	"context"
	"io"

	"go.trai.ch/ppac/internal/core/domain"
)

// Fetcher defines the interface for retrieving remote documents and archives.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch opens the resource at url. The caller must close the returned body.
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// FetcherProvider builds a Fetcher configured for a session.
type FetcherProvider interface {
	Fetcher(settings domain.Settings) (Fetcher, error)
}
