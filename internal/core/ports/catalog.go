package ports

import (
	"io"

	"go.trai.ch/ppac/internal/core/domain"
)

// CatalogDecoder defines the interface for parsing a repository's catalog document.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type CatalogDecoder interface {
	// Decode parses a catalog document into package records sorted by name.
	Decode(r io.Reader) ([]domain.PackageRecord, error)
}
