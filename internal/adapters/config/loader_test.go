package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ppac/internal/adapters/config"
	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestSettingsLoader_Defaults(t *testing.T) {
	home := t.TempDir()

	s, err := config.NewSettingsLoader().Load(home)
	require.NoError(t, err)

	assert.Equal(t, home, s.Home)
	assert.Equal(t, filepath.Join(home, "apps"), s.InstallRoot)
	assert.Equal(t, filepath.Join(home, "installed_packages.json"), s.LedgerPath)
	assert.Equal(t, filepath.Join(home, "repo.config"), s.RepositoriesPath)
	assert.Equal(t, domain.DefaultFetchTimeout, s.FetchTimeout)
	assert.Equal(t, domain.DefaultFetchRetries, s.FetchRetries)
	assert.Equal(t, domain.DefaultCatalogConcurrency, s.CatalogConcurrency)
	assert.Equal(t, domain.DefaultS3Region, s.S3Region)
	assert.Equal(t, domain.DefaultUserAgent, s.UserAgent)
	assert.Empty(t, s.MetricsTextfile)
}

func TestSettingsLoader_File(t *testing.T) {
	home := t.TempDir()
	content := `
install_root: /opt/ppac/apps
ledger: state/ledger.json
fetch:
  timeout: 30s
  retries: 0
  user_agent: ppac-test
catalog:
  concurrency: 8
s3:
  region: eu-west-1
  endpoint: http://localhost:9000
metrics:
  textfile: metrics/ppac.prom
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "ppac.yaml"), []byte(content), 0o600))

	s, err := config.NewSettingsLoader().Load(home)
	require.NoError(t, err)

	assert.Equal(t, "/opt/ppac/apps", s.InstallRoot)
	assert.Equal(t, filepath.Join(home, "state", "ledger.json"), s.LedgerPath)
	assert.Equal(t, filepath.Join(home, "repo.config"), s.RepositoriesPath)
	assert.Equal(t, 30*time.Second, s.FetchTimeout)
	assert.Equal(t, 0, s.FetchRetries)
	assert.Equal(t, "ppac-test", s.UserAgent)
	assert.Equal(t, 8, s.CatalogConcurrency)
	assert.Equal(t, "eu-west-1", s.S3Region)
	assert.Equal(t, "http://localhost:9000", s.S3Endpoint)
	assert.Equal(t, filepath.Join(home, "metrics", "ppac.prom"), s.MetricsTextfile)
}

func TestSettingsLoader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{name: "malformed yaml", content: "fetch: [\n"},
		{name: "bad timeout", content: "fetch:\n  timeout: soon\n", key: "value"},
		{name: "negative timeout", content: "fetch:\n  timeout: -1s\n", key: "value"},
		{name: "negative retries", content: "fetch:\n  retries: -2\n", key: "value"},
		{name: "negative concurrency", content: "catalog:\n  concurrency: -1\n", key: "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(home, "ppac.yaml"), []byte(tt.content), 0o600))

			_, err := config.NewSettingsLoader().Load(home)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidSettings)

			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			meta := zErr.Metadata()
			assert.Equal(t, filepath.Join(home, "ppac.yaml"), meta["path"])
			if tt.key != "" {
				assert.Contains(t, meta, tt.key)
			}
		})
	}
}
