package fetch

import (
	"context"
	"errors"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/zerr"
)

// tripThreshold is the number of consecutive failures that opens a host's breaker.
const tripThreshold = 5

// CircuitBreakerFetcher wraps a Fetcher with per-host circuit breakers.
// Missing resources are answers, not failures, and never trip a breaker.
type CircuitBreakerFetcher struct {
	fetcher  ports.Fetcher
	breakers map[string]*circuit.Breaker
	mu       sync.RWMutex
}

// NewCircuitBreakerFetcher creates a circuit breaker wrapper for a fetcher.
func NewCircuitBreakerFetcher(f ports.Fetcher) *CircuitBreakerFetcher {
	return &CircuitBreakerFetcher{
		fetcher:  f,
		breakers: make(map[string]*circuit.Breaker),
	}
}

// breaker returns or creates the circuit breaker for a host.
func (cbf *CircuitBreakerFetcher) breaker(host string) *circuit.Breaker {
	cbf.mu.RLock()
	b, exists := cbf.breakers[host]
	cbf.mu.RUnlock()
	if exists {
		return b
	}

	cbf.mu.Lock()
	defer cbf.mu.Unlock()

	if b, exists := cbf.breakers[host]; exists {
		return b
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	b = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(tripThreshold),
	})
	cbf.breakers[host] = b
	return b
}

// Fetch calls the wrapped fetcher unless the host's breaker is open.
func (cbf *CircuitBreakerFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	host := hostOf(rawURL)
	b := cbf.breaker(host)

	if !b.Ready() {
		err := zerr.With(zerr.Wrap(ErrUpstreamDown, "circuit breaker open"), "host", host)
		return nil, zerr.With(err, "url", rawURL)
	}

	var (
		body     io.ReadCloser
		notFound error
	)
	err := b.Call(func() error {
		var fetchErr error
		body, fetchErr = cbf.fetcher.Fetch(ctx, rawURL)
		if errors.Is(fetchErr, ErrNotFound) {
			notFound = fetchErr
			return nil
		}
		return fetchErr
	}, 0)

	if notFound != nil {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// States reports which host breakers are open.
func (cbf *CircuitBreakerFetcher) States() map[string]string {
	cbf.mu.RLock()
	defer cbf.mu.RUnlock()

	states := make(map[string]string, len(cbf.breakers))
	for host, b := range cbf.breakers {
		if b.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

// hostOf returns the host used to group breakers.
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		if len(rawURL) > 50 {
			return rawURL[:50]
		}
		return rawURL
	}
	return parsed.Host
}
