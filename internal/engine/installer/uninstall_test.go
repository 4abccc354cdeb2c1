package installer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ppac/internal/core/domain"
)

func TestUninstall_NotInstalled(t *testing.T) {
	f := newFixture(t)

	// Files on disk without a ledger entry are left alone.
	stray := filepath.Join(f.root, "ghost", "bin", "ghost")
	require.NoError(t, os.MkdirAll(filepath.Dir(stray), 0o750))
	require.NoError(t, os.WriteFile(stray, []byte("x"), 0o600))

	err := f.engine().Uninstall(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrNotInstalled)
	assert.Equal(t, "ghost", metadata(t, err)["package"])
	assert.FileExists(t, stray)
}

func TestUninstall_RemovesFilesAndEntry(t *testing.T) {
	f := newFixture(t)
	f.record("tool", "1.0")
	f.record("other", "3.0")

	for _, rel := range []string{"tool/bin/tool", "tool/share/man/tool.1", "tool-docs/README", "other/bin/other"} {
		path := filepath.Join(f.root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(rel), 0o600))
	}

	require.NoError(t, f.engine().Uninstall(context.Background(), "tool"))

	assert.NoDirExists(t, filepath.Join(f.root, "tool"))
	assert.NoDirExists(t, filepath.Join(f.root, "tool-docs"))
	assert.FileExists(t, filepath.Join(f.root, "other", "bin", "other"))
	assert.Equal(t, map[string]string{"other": "3.0"}, f.installed())
}

func TestUninstall_MissingDirectories(t *testing.T) {
	f := newFixture(t)
	f.record("tool", "1.0")

	require.NoError(t, f.engine().Uninstall(context.Background(), "tool"))
	assert.Empty(t, f.installed())
}

func TestUninstall_WarnsAboutDependents(t *testing.T) {
	f := newFixture(t)
	f.catalog.Merge(repoMain, []domain.PackageRecord{pkg("lib", "1.0"), pkg("app", "1.0", "lib")})
	f.record("lib", "1.0")
	f.record("app", "1.0")

	require.NoError(t, f.engine().Uninstall(context.Background(), "lib"))

	require.Len(t, f.warnings, 1)
	assert.Contains(t, f.warnings[0], "lib is required by installed packages: app")
	assert.Equal(t, map[string]string{"app": "1.0"}, f.installed())
}

func TestUninstall_RejectsInvalidName(t *testing.T) {
	f := newFixture(t)
	f.record("../victim", "1.0")

	victim := filepath.Join(filepath.Dir(f.root), "victim", "precious.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(victim), 0o750))
	require.NoError(t, os.WriteFile(victim, []byte("keep"), 0o600))

	err := f.engine().Uninstall(context.Background(), "../victim")
	require.ErrorIs(t, err, domain.ErrInvalidPackageName)
	assert.FileExists(t, victim)
	assert.Equal(t, map[string]string{"../victim": "1.0"}, f.installed())
}
