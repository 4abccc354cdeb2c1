package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InstallTree = (*Tree)(nil)

// backupSuffix names the directory an existing install is moved to while a new one is swapped in.
const backupSuffix = ".previous"

// Tree implements ports.InstallTree on the local file system.
type Tree struct {
	walker *Walker
}

// NewTree creates a new Tree.
func NewTree(walker *Walker) *Tree {
	return &Tree{walker: walker}
}

// Stage creates an empty hidden directory next to dest for extraction.
func (t *Tree) Stage(dest string) (string, error) {
	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create install root"), "path", parent)
	}

	staging, err := os.MkdirTemp(parent, "."+filepath.Base(dest)+".staging-*")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create staging directory"), "path", dest)
	}
	return staging, nil
}

// Commit replaces dest with staging. When the swap fails the previous dest is restored.
func (t *Tree) Commit(staging, dest string) error {
	backup := dest + backupSuffix
	if err := os.RemoveAll(backup); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear stale backup"), "path", backup)
	}

	hadPrevious := t.Exists(dest)
	if hadPrevious {
		if err := os.Rename(dest, backup); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to move previous install aside"), "path", dest)
		}
	}

	if err := os.Rename(staging, dest); err != nil {
		if hadPrevious {
			_ = os.Rename(backup, dest)
		}
		return zerr.With(zerr.Wrap(err, "failed to move staged install into place"), "path", dest)
	}

	if hadPrevious {
		if err := os.RemoveAll(backup); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove previous install"), "path", backup)
		}
	}
	return nil
}

// Discard removes a staging directory.
func (t *Tree) Discard(staging string) error {
	if err := os.RemoveAll(staging); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove staging directory"), "path", staging)
	}
	return nil
}

// Remove deletes path recursively. A missing path is not an error.
func (t *Tree) Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove directory"), "path", path)
	}
	return nil
}

// Exists reports whether path exists. Symlinks are not followed.
func (t *Tree) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Files lists the files below dir relative to dir. A missing dir has no files.
func (t *Tree) Files(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat directory"), "path", dir)
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.New("not a directory"), "path", dir)
	}

	files := make([]string, 0)
	for file := range t.walker.WalkFiles(dir) {
		files = append(files, file)
	}
	sort.Strings(files)
	return files, nil
}
