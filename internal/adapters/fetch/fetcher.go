// Package fetch provides streaming downloads of catalog documents and package archives
// over HTTP(S), S3 and local files, with retry and per-host circuit breaking.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/rs/dnscache"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	// ErrNotFound is returned when the remote resource does not exist.
	ErrNotFound = zerr.New("resource not found")
	// ErrRateLimited is returned when the remote server throttles requests.
	ErrRateLimited = zerr.New("rate limited by upstream")
	// ErrUpstreamDown is returned when the remote server fails or is unreachable.
	ErrUpstreamDown = zerr.New("upstream unavailable")
)

var _ ports.Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher downloads resources over HTTP(S).
type HTTPFetcher struct {
	client     *http.Client
	userAgent  string
	maxRetries int
	baseDelay  time.Duration
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxRetries sets the maximum retry attempts for transient failures.
func WithMaxRetries(n int) Option {
	return func(f *HTTPFetcher) {
		f.maxRetries = n
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
func WithBaseDelay(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.baseDelay = d
	}
}

// WithTimeout sets the overall timeout of a single request, body included.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.client.Timeout = d
	}
}

// NewHTTPFetcher creates an HTTPFetcher resolving hosts through a DNS cache.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	resolver := &dnscache.Resolver{}
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	f := &HTTPFetcher{
		client: &http.Client{
			Timeout: 5 * time.Minute,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					host, port, err := net.SplitHostPort(addr)
					if err != nil {
						return nil, err
					}
					ips, err := resolver.LookupHost(ctx, host)
					if err != nil {
						return nil, err
					}
					var lastErr error
					for _, ip := range ips {
						conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
						if err == nil {
							return conn, nil
						}
						lastErr = err
					}
					return nil, fmt.Errorf("failed to dial any resolved address of %s: %w", host, lastErr)
				},
				MaxIdleConns:          20,
				MaxIdleConnsPerHost:   4,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		userAgent:  "ppac",
		maxRetries: 3,
		baseDelay:  500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch opens the resource at url. Rate limiting and server errors are retried.
// The caller must close the returned body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with 10% jitter.
			delay := f.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			//nolint:gosec // jitter does not need a secure source
			delay += time.Duration(float64(delay) * (rand.Float64() * 0.1))

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := f.doFetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUpstreamDown) {
			continue
		}
		return nil, err
	}

	return nil, zerr.With(lastErr, "attempts", f.maxRetries+1)
}

func (f *HTTPFetcher) doFetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create request"), "url", url)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, zerr.With(zerr.Wrap(err, "request failed"), "url", url)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil

	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, statusError(ErrNotFound, url, resp.StatusCode)

	case resp.StatusCode == http.StatusTooManyRequests:
		_ = resp.Body.Close()
		return nil, statusError(ErrRateLimited, url, resp.StatusCode)

	case resp.StatusCode >= http.StatusInternalServerError:
		_ = resp.Body.Close()
		return nil, statusError(ErrUpstreamDown, url, resp.StatusCode)

	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		_ = resp.Body.Close()
		err := zerr.With(zerr.New("unexpected response status"), "url", url)
		err = zerr.With(err, "status_code", resp.StatusCode)
		return nil, zerr.With(err, "body", string(snippet))
	}
}

func statusError(sentinel error, url string, status int) error {
	err := zerr.With(zerr.Wrap(sentinel, http.StatusText(status)), "url", url)
	return zerr.With(err, "status_code", status)
}
