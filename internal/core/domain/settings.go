package domain

import "time"

// Settings holds the resolved runtime configuration of a ppac session.
type Settings struct {
	// Home is the ppac home directory every relative path is resolved against.
	Home string

	// InstallRoot is the directory packages are extracted into.
	InstallRoot string

	// LedgerPath is the installed package ledger file.
	LedgerPath string

	// RepositoriesPath is the repository configuration file.
	RepositoriesPath string

	// FetchTimeout bounds a single download.
	FetchTimeout time.Duration

	// FetchRetries is the number of retries for transient download failures.
	FetchRetries int

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// CatalogConcurrency bounds the number of catalog documents fetched at once.
	CatalogConcurrency int

	// S3Region is the default region for s3:// sources.
	S3Region string

	// S3Endpoint overrides the S3 endpoint, for S3 compatible stores. Empty means AWS.
	S3Endpoint string

	// MetricsTextfile is where metrics are written after each command. Empty disables it.
	MetricsTextfile string
}

const (
	// DefaultFetchTimeout is the default timeout of a single download.
	DefaultFetchTimeout = 5 * time.Minute

	// DefaultFetchRetries is the default number of retries for transient failures.
	DefaultFetchRetries = 3

	// DefaultCatalogConcurrency is the default number of parallel catalog fetches.
	DefaultCatalogConcurrency = 4

	// DefaultS3Region is used when the settings do not name a region.
	DefaultS3Region = "us-east-1"

	// DefaultUserAgent identifies ppac to remote servers.
	DefaultUserAgent = "ppac"
)
