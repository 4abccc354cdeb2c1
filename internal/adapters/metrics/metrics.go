// Package metrics counts package operations with Prometheus collectors and writes
// them as a node_exporter textfile.
package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "ppac"

var _ ports.Metrics = (*Recorder)(nil)

// Recorder implements ports.Metrics on a private Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	catalogFetches  *prometheus.CounterVec
	catalogDuration *prometheus.HistogramVec
	installs        *prometheus.CounterVec
	removals        prometheus.Counter
	archiveBytes    prometheus.Histogram
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,

		catalogFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_fetches_total",
			Help:      "Catalog documents fetched by repository and result",
		}, []string{"repository", "result"}),

		catalogDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_fetch_duration_seconds",
			Help:      "Time spent fetching and decoding a catalog document",
			Buckets:   prometheus.DefBuckets,
		}, []string{"repository"}),

		installs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "package_installs_total",
			Help:      "Packages processed by the installer by outcome",
		}, []string{"outcome"}),

		removals: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "package_removals_total",
			Help:      "Packages uninstalled",
		}),

		archiveBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "archive_extracted_bytes",
			Help:      "Compressed size of each extracted archive",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10), // 1KiB to 256MiB
		}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// CatalogFetched records a catalog fetch for a repository.
func (r *Recorder) CatalogFetched(repository string, err error, elapsed time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.catalogFetches.WithLabelValues(repository, result).Inc()
	r.catalogDuration.WithLabelValues(repository).Observe(elapsed.Seconds())
}

// PackageInstalled records the outcome of installing one package.
func (r *Recorder) PackageInstalled(outcome string) {
	r.installs.WithLabelValues(outcome).Inc()
}

// PackageRemoved records an uninstalled package.
func (r *Recorder) PackageRemoved() {
	r.removals.Inc()
}

// ArchiveExtracted records the compressed size of an extracted archive.
func (r *Recorder) ArchiveExtracted(bytes int64) {
	r.archiveBytes.Observe(float64(bytes))
}

// Flush writes the collected metrics to path. An empty path disables the textfile.
func (r *Recorder) Flush(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create metrics directory"), "path", path)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics textfile"), "path", path)
	}
	return nil
}
