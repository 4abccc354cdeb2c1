package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/ini.v1"
)

// RepositoryLoader implements ports.RepositoryLoader for INI repository configurations.
//
// Every section other than DEFAULT names a repository. A section is kept only when
// both json_url and package_url are set; keys missing from a section fall back to DEFAULT.
type RepositoryLoader struct{}

// NewRepositoryLoader creates a new RepositoryLoader.
func NewRepositoryLoader() *RepositoryLoader {
	return &RepositoryLoader{}
}

// Load reads the repositories configured at path, in file order.
func (l *RepositoryLoader) Load(path string) ([]domain.Repository, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the ppac home
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Repository{}, zerr.With(zerr.Wrap(domain.ErrConfigMissing, "no repository configuration"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read repository configuration"), "path", path)
	}

	file, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, err.Error()), "path", path)
	}

	defaults := file.Section(ini.DefaultSection)

	repos := make([]domain.Repository, 0, len(file.Sections()))
	for _, sec := range file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}

		lookup := func(key string) string {
			if sec.HasKey(key) {
				return strings.TrimSpace(sec.Key(key).String())
			}
			if defaults.HasKey(key) {
				return strings.TrimSpace(defaults.Key(key).String())
			}
			return ""
		}

		repo := domain.Repository{
			Name:        sec.Name(),
			CatalogURL:  lookup(keyCatalogURL),
			ArtifactURL: lookup(keyArtifactURL),
			DisplayName: lookup(keyDisplayName),
		}
		if repo.CatalogURL == "" || repo.ArtifactURL == "" {
			continue
		}
		repos = append(repos, repo)
	}

	return repos, nil
}
