package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ppac/internal/adapters/config"
	"go.trai.ch/ppac/internal/core/domain"
)

func writeRepoConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repo.config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRepositoryLoader_Load(t *testing.T) {
	path := writeRepoConfig(t, `
[main]
json_url = https://main.example/packages.json
package_url = https://main.example/pkgs
repo_name = Main Repository

[mirror]
json_url: https://mirror.example/packages.json
package_url: s3://mirror-bucket/pkgs
`)

	repos, err := config.NewRepositoryLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, []domain.Repository{
		{
			Name:        "main",
			CatalogURL:  "https://main.example/packages.json",
			ArtifactURL: "https://main.example/pkgs",
			DisplayName: "Main Repository",
		},
		{
			Name:        "mirror",
			CatalogURL:  "https://mirror.example/packages.json",
			ArtifactURL: "s3://mirror-bucket/pkgs",
		},
	}, repos)
}

func TestRepositoryLoader_SkipsIncompleteSections(t *testing.T) {
	path := writeRepoConfig(t, `
[no-package-url]
json_url = https://a.example/packages.json

[no-json-url]
package_url = https://b.example/pkgs

[empty-values]
json_url =
package_url =

[ok]
json_url = https://ok.example/packages.json
package_url = https://ok.example/pkgs
`)

	repos, err := config.NewRepositoryLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "ok", repos[0].Name)
}

func TestRepositoryLoader_DefaultSectionIsInherited(t *testing.T) {
	path := writeRepoConfig(t, `
package_url = https://shared.example/pkgs

[one]
json_url = https://one.example/packages.json

[two]
json_url = https://two.example/packages.json
package_url = https://two.example/pkgs
`)

	repos, err := config.NewRepositoryLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, repos, 2)

	assert.Equal(t, "one", repos[0].Name)
	assert.Equal(t, "https://shared.example/pkgs", repos[0].ArtifactURL)
	assert.Equal(t, "two", repos[1].Name)
	assert.Equal(t, "https://two.example/pkgs", repos[1].ArtifactURL)
}

func TestRepositoryLoader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo.config")

	repos, err := config.NewRepositoryLoader().Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigMissing)
	assert.NotNil(t, repos)
	assert.Empty(t, repos)
}

func TestRepositoryLoader_EmptyFile(t *testing.T) {
	path := writeRepoConfig(t, "")

	repos, err := config.NewRepositoryLoader().Load(path)
	require.NoError(t, err)
	assert.Empty(t, repos)
}
