package fetch

import (
	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
)

// Provider implements ports.FetcherProvider.
type Provider struct{}

// NewProvider creates a new Provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Fetcher builds the fetcher stack for a session: HTTP(S) behind per-host circuit
// breakers, anonymous S3 and local files.
func (p *Provider) Fetcher(settings domain.Settings) (ports.Fetcher, error) {
	httpFetcher := NewHTTPFetcher(
		WithTimeout(settings.FetchTimeout),
		WithMaxRetries(settings.FetchRetries),
		WithUserAgent(settings.UserAgent),
	)

	return NewRouter().
		Handle(NewCircuitBreakerFetcher(httpFetcher), "http", "https").
		Handle(NewS3Fetcher(settings.S3Region, settings.S3Endpoint), "s3").
		Handle(NewFileFetcher(), "file"), nil
}
