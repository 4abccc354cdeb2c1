// Package config provides the settings and repository configuration loaders for ppac.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SettingsLoader implements ports.SettingsLoader using an optional YAML file.
type SettingsLoader struct {
	Filename string
}

// NewSettingsLoader creates a loader reading ppac.yaml.
func NewSettingsLoader() *SettingsLoader {
	return &SettingsLoader{Filename: domain.SettingsFileName}
}

// Load reads the settings file under home. A missing file yields the defaults.
func (l *SettingsLoader) Load(home string) (domain.Settings, error) {
	var file SettingsFile

	path := filepath.Join(home, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the ppac home
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrInvalidSettings, err.Error()), "path", path)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to read settings file"), "path", path)
	}

	return resolve(home, file, path)
}

func resolve(home string, file SettingsFile, path string) (domain.Settings, error) {
	s := domain.Settings{
		Home:               home,
		InstallRoot:        resolvePath(home, file.InstallRoot, domain.InstallDirName),
		LedgerPath:         resolvePath(home, file.Ledger, domain.LedgerFileName),
		RepositoriesPath:   resolvePath(home, file.Repositories, domain.RepositoriesFileName),
		FetchTimeout:       domain.DefaultFetchTimeout,
		FetchRetries:       domain.DefaultFetchRetries,
		UserAgent:          domain.DefaultUserAgent,
		CatalogConcurrency: domain.DefaultCatalogConcurrency,
		S3Region:           domain.DefaultS3Region,
	}

	if file.Fetch.Timeout != "" {
		d, err := time.ParseDuration(file.Fetch.Timeout)
		if err != nil || d <= 0 {
			err := zerr.Wrap(domain.ErrInvalidSettings, "fetch.timeout must be a positive duration")
			err = zerr.With(err, "value", file.Fetch.Timeout)
			return domain.Settings{}, zerr.With(err, "path", path)
		}
		s.FetchTimeout = d
	}

	if file.Fetch.Retries != nil {
		if *file.Fetch.Retries < 0 {
			err := zerr.Wrap(domain.ErrInvalidSettings, "fetch.retries must not be negative")
			err = zerr.With(err, "value", *file.Fetch.Retries)
			return domain.Settings{}, zerr.With(err, "path", path)
		}
		s.FetchRetries = *file.Fetch.Retries
	}

	if file.Fetch.UserAgent != "" {
		s.UserAgent = file.Fetch.UserAgent
	}

	if file.Catalog.Concurrency < 0 {
		err := zerr.Wrap(domain.ErrInvalidSettings, "catalog.concurrency must not be negative")
		err = zerr.With(err, "value", file.Catalog.Concurrency)
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	if file.Catalog.Concurrency > 0 {
		s.CatalogConcurrency = file.Catalog.Concurrency
	}

	if file.S3.Region != "" {
		s.S3Region = file.S3.Region
	}
	s.S3Endpoint = file.S3.Endpoint

	if file.Metrics.Textfile != "" {
		s.MetricsTextfile = resolvePath(home, file.Metrics.Textfile, "")
	}

	return s, nil
}

// resolvePath returns value, or fallback when empty, joined onto home unless already absolute.
func resolvePath(home, value, fallback string) string {
	if value == "" {
		value = fallback
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(home, value)
}
