package domain

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrConfigMissing is returned when the repository configuration file does not exist.
	ErrConfigMissing = zerr.New("repository configuration not found")

	// ErrConfigInvalid is returned when the repository configuration file cannot be parsed.
	ErrConfigInvalid = zerr.New("repository configuration is invalid")

	// ErrInvalidSettings is returned when the settings file cannot be read or contains invalid values.
	ErrInvalidSettings = zerr.New("invalid settings")

	// ErrCatalogFetchFailed is returned when a repository's catalog document cannot be retrieved or decoded.
	ErrCatalogFetchFailed = zerr.New("failed to fetch package catalog")

	// ErrPackageNotFound is returned when a requested package is not present in the catalog.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrInvalidPackageName is returned when a package name cannot be used as a directory below the install root.
	ErrInvalidPackageName = zerr.New("invalid package name")

	// ErrDependencyNotFound is returned when a transitive dependency is not present in the catalog.
	ErrDependencyNotFound = zerr.New("dependency not found")

	// ErrCyclicDependency is returned when the dependency declarations of the catalog form a cycle.
	ErrCyclicDependency = zerr.New("cyclic dependency")

	// ErrNoRepositoryAvailable is returned when no configured repository offers a package.
	ErrNoRepositoryAvailable = zerr.New("no repository offers package")

	// ErrNotInstalled is returned when uninstalling a package that is not in the ledger.
	ErrNotInstalled = zerr.New("package is not installed")

	// ErrArchiveFetchFailed is returned when a package archive cannot be downloaded.
	ErrArchiveFetchFailed = zerr.New("failed to fetch package archive")

	// ErrArchiveExtractFailed is returned when a package archive cannot be extracted.
	ErrArchiveExtractFailed = zerr.New("failed to extract package archive")

	// ErrUnsafeArchivePath is returned when an archive entry would be written outside its destination.
	// It is a kind of ErrArchiveExtractFailed.
	ErrUnsafeArchivePath = zerr.Wrap(ErrArchiveExtractFailed, "archive entry escapes destination")

	// ErrInstallAborted is returned when the user declines or cancels an installation.
	ErrInstallAborted = zerr.New("installation aborted")

	// ErrInvalidChoice is returned when a repository selection is outside the offered options.
	ErrInvalidChoice = zerr.New("invalid repository choice")

	// ErrRepositoryNotOffering is returned when a preselected repository does not offer the package.
	ErrRepositoryNotOffering = zerr.New("repository does not offer package")

	// ErrLedgerCorrupt is returned when the installed package ledger cannot be decoded.
	ErrLedgerCorrupt = zerr.New("installed package ledger is corrupt")

	// ErrLedgerWriteFailed is returned when the installed package ledger cannot be persisted.
	ErrLedgerWriteFailed = zerr.New("failed to write installed package ledger")

	// ErrUnsupportedScheme is returned when a URL uses a scheme no fetcher handles.
	ErrUnsupportedScheme = zerr.New("unsupported url scheme")

	// ErrUpdateFailed is returned when one or more packages fail to update.
	ErrUpdateFailed = zerr.New("update failed for one or more packages")
)

// Because classifies cause as kind. The result matches both kind and cause with
// errors.Is and carries the zerr metadata found along the cause's chain, the
// outermost value winning.
func Because(kind, cause error) error {
	if cause == nil {
		return nil
	}

	err := fmt.Errorf("%w: %w", kind, cause)
	seen := make(map[string]bool)
	for current := cause; current != nil; current = errors.Unwrap(current) {
		z, ok := current.(*zerr.Error)
		if !ok {
			continue
		}
		for k, v := range z.Metadata() {
			if seen[k] {
				continue
			}
			seen[k] = true
			err = zerr.With(err, k, v)
		}
	}
	return err
}
