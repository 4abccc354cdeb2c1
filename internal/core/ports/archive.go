package ports

import (
	"context"
	"io"

	"go.trai.ch/ppac/internal/core/domain"
)

// Extractor defines the interface for unpacking a package archive.
//
//go:generate mockgen -source=archive.go -destination=mocks/mock_archive.go -package=mocks
type Extractor interface {
	// Extract unpacks the gzip tar stream r into the existing directory dest.
	Extract(ctx context.Context, r io.Reader, dest string) (domain.ExtractResult, error)
}

// InstallTree defines the interface for managing installed package directories.
type InstallTree interface {
	// Stage creates an empty staging directory next to dest.
	Stage(dest string) (string, error)

	// Commit replaces dest with the staging directory.
	Commit(staging, dest string) error

	// Discard removes a staging directory.
	Discard(staging string) error

	// Remove deletes path and everything below it. A missing path is not an error.
	Remove(path string) error

	// Exists reports whether path exists.
	Exists(path string) bool

	// Files lists the regular files below dir, relative to dir and sorted.
	Files(dir string) ([]string, error)
}
