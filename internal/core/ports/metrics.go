package ports

import "time"

// Install outcomes reported to Metrics.
const (
	OutcomeInstalled = "installed"
	OutcomeUpgraded  = "upgraded"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
	OutcomeAborted   = "aborted"
)

// Metrics defines the interface for counting package operations.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// CatalogFetched records a catalog fetch for a repository.
	CatalogFetched(repository string, err error, elapsed time.Duration)
	// PackageInstalled records the outcome of installing one package.
	PackageInstalled(outcome string)
	// PackageRemoved records an uninstalled package.
	PackageRemoved()
	// ArchiveExtracted records the size of an extracted archive.
	ArchiveExtracted(bytes int64)
	// Flush writes the collected metrics to a textfile.
	Flush(path string) error
}
