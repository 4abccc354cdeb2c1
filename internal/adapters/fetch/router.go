package fetch

import (
	"context"
	"io"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fetcher = (*Router)(nil)

// Router dispatches a URL to the fetcher registered for its scheme and traces every fetch.
type Router struct {
	fetchers map[string]ports.Fetcher
	tracer   trace.Tracer
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		fetchers: make(map[string]ports.Fetcher),
		tracer:   otel.Tracer("go.trai.ch/ppac/fetch"),
	}
}

// Handle registers f for the given URL schemes.
func (r *Router) Handle(f ports.Fetcher, schemes ...string) *Router {
	for _, scheme := range schemes {
		r.fetchers[strings.ToLower(scheme)] = f
	}
	return r
}

// Fetch opens rawURL with the fetcher registered for its scheme.
func (r *Router) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	ctx, span := r.tracer.Start(ctx, "fetch", trace.WithAttributes(
		attribute.String("url.full", rawURL),
	))
	defer span.End()

	body, err := r.fetch(ctx, rawURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return body, nil
}

func (r *Router) fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid url"), "url", rawURL)
	}

	f, ok := r.fetchers[strings.ToLower(u.Scheme)]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrUnsupportedScheme, u.Scheme), "url", rawURL)
		return nil, err
	}
	return f.Fetch(ctx, rawURL)
}
