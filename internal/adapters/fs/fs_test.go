package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ppac/internal/adapters/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bin", "tool"), "#!/bin/sh")
	writeFile(t, filepath.Join(root, "README.md"), "readme")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o750))

	var files []string
	for f := range fs.NewWalker().WalkFiles(root) {
		files = append(files, f)
	}

	assert.ElementsMatch(t, []string{"README.md", "bin/tool"}, files)
}

func TestWalker_StopsEarly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), "a")
	writeFile(t, filepath.Join(root, "b"), "b")

	count := 0
	for range fs.NewWalker().WalkFiles(root) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestTree_StageAndCommitFresh(t *testing.T) {
	root := filepath.Join(t.TempDir(), "apps")
	dest := filepath.Join(root, "tool")
	tree := fs.NewTree(fs.NewWalker())

	staging, err := tree.Stage(dest)
	require.NoError(t, err)
	assert.Equal(t, root, filepath.Dir(staging))
	writeFile(t, filepath.Join(staging, "bin", "tool"), "v1")

	require.NoError(t, tree.Commit(staging, dest))

	assert.False(t, tree.Exists(staging))
	files, err := tree.Files(dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/tool"}, files)
}

func TestTree_CommitReplacesPreviousInstall(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "tool")
	tree := fs.NewTree(fs.NewWalker())

	writeFile(t, filepath.Join(dest, "old-only.txt"), "old")
	writeFile(t, filepath.Join(dest, "shared.txt"), "old")

	staging, err := tree.Stage(dest)
	require.NoError(t, err)
	writeFile(t, filepath.Join(staging, "shared.txt"), "new")

	require.NoError(t, tree.Commit(staging, dest))

	files, err := tree.Files(dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared.txt"}, files)

	data, err := os.ReadFile(filepath.Join(dest, "shared.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.False(t, tree.Exists(dest+".previous"))
}

func TestTree_DiscardAndRemove(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "tool")
	tree := fs.NewTree(fs.NewWalker())

	staging, err := tree.Stage(dest)
	require.NoError(t, err)
	require.NoError(t, tree.Discard(staging))
	assert.False(t, tree.Exists(staging))

	writeFile(t, filepath.Join(dest, "nested", "deep", "file"), "x")
	require.NoError(t, tree.Remove(dest))
	assert.False(t, tree.Exists(dest))

	require.NoError(t, tree.Remove(filepath.Join(root, "never-existed")))
}

func TestTree_FilesMissingDir(t *testing.T) {
	tree := fs.NewTree(fs.NewWalker())

	files, err := tree.Files(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestTree_FilesNotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	writeFile(t, path, "x")

	_, err := fs.NewTree(fs.NewWalker()).Files(path)
	require.Error(t, err)
}
