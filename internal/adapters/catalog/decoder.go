// Package catalog decodes the JSON catalog documents published by repositories.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CatalogDecoder = (*Decoder)(nil)

// Decoder implements ports.CatalogDecoder.
//
// A document is a JSON object mapping package names to entries of the form
// {"version": "1.0", "dependencies": ["a", "b"]}. A single dependency may be given
// as a bare string and a missing or null list means no dependencies.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// entryDTO is one package entry of a catalog document.
type entryDTO struct {
	Version      versionDTO      `json:"version"`
	Dependencies dependenciesDTO `json:"dependencies"`
}

type versionDTO string

// UnmarshalJSON accepts a string or a number.
func (v *versionDTO) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = versionDTO(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("version must be a string or number, got %s", data)
	}
	*v = versionDTO(n.String())
	return nil
}

type dependenciesDTO []string

// UnmarshalJSON accepts null, a string, or an array of strings.
func (d *dependenciesDTO) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = dependenciesDTO{}
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*d = dependenciesDTO{}
			return nil
		}
		*d = dependenciesDTO{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("dependencies must be a string or a list of strings, got %s", data)
	}
	*d = dependenciesDTO(list)
	return nil
}

// Decode parses a catalog document into records sorted by name.
func (d *Decoder) Decode(r io.Reader) ([]domain.PackageRecord, error) {
	var doc map[string]entryDTO
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, zerr.Wrap(err, "failed to decode catalog document")
	}

	records := make([]domain.PackageRecord, 0, len(doc))
	for name, entry := range doc {
		if !domain.ValidPackageName(name) {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidPackageName, "catalog entry"), "package", name)
		}
		for _, dep := range entry.Dependencies {
			if !domain.ValidPackageName(dep) {
				err := zerr.With(zerr.Wrap(domain.ErrInvalidPackageName, "catalog dependency"), "package", name)
				return nil, zerr.With(err, "dependency", dep)
			}
		}
		if entry.Version == "" {
			return nil, zerr.With(zerr.New("catalog entry has no version"), "package", name)
		}
		deps := []string(entry.Dependencies)
		if deps == nil {
			deps = []string{}
		}
		records = append(records, domain.PackageRecord{
			Name:         name,
			Version:      string(entry.Version),
			Dependencies: deps,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records, nil
}
