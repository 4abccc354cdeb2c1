// Package archive extracts gzip compressed tar archives into the install tree.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Extractor = (*Extractor)(nil)

// Extractor implements ports.Extractor for .tar.gz archives.
//
// Entries are confined to the destination: absolute names, names escaping through "..",
// links pointing outside the destination and device nodes are rejected. Group and other
// write bits and the setuid, setgid and sticky bits are dropped from extracted files.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks r into dest, which must already exist.
func (e *Extractor) Extract(ctx context.Context, r io.Reader, dest string) (domain.ExtractResult, error) {
	counter := &countingReader{r: r}
	hasher := xxhash.New()
	stream := io.TeeReader(counter, hasher)

	gz, err := gzip.NewReader(stream)
	if err != nil {
		return domain.ExtractResult{}, extractError(err, dest)
	}
	defer gz.Close() //nolint:errcheck // Read-only stream

	files, err := e.unpack(ctx, tar.NewReader(gz), dest)
	if err != nil {
		return domain.ExtractResult{}, err
	}

	// Hash the complete compressed stream, including any trailing padding.
	if _, err := io.Copy(io.Discard, stream); err != nil {
		return domain.ExtractResult{}, extractError(err, dest)
	}

	return domain.ExtractResult{
		Files:  files,
		Bytes:  counter.n,
		Digest: fmt.Sprintf("%016x", hasher.Sum64()),
	}, nil
}

func (e *Extractor) unpack(ctx context.Context, tr *tar.Reader, dest string) (int, error) {
	files := 0
	for {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return files, extractError(err, dest)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return files, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return files, extractError(err, dest)
			}

		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode()); err != nil {
				return files, extractError(err, dest)
			}
			files++

		case tar.TypeSymlink:
			if err := writeSymlink(dest, target, hdr.Linkname); err != nil {
				return files, err
			}

		case tar.TypeLink:
			source, err := safeJoin(dest, hdr.Linkname)
			if err != nil {
				return files, err
			}
			if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
				return files, extractError(err, dest)
			}
			if err := os.Link(source, target); err != nil {
				return files, extractError(err, dest)
			}
			files++

		case tar.TypeChar, tar.TypeBlock, tar.TypeFifo:
			err := zerr.With(zerr.Wrap(domain.ErrUnsafeArchivePath, "special files are not allowed"), "entry", hdr.Name)
			return files, zerr.With(err, "path", dest)

		default:
			// Extended headers and vendor specific entries carry no file content.
		}
	}
}

// safeJoin resolves an entry name below dest, rejecting names that would escape it.
func safeJoin(dest, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return "", unsafePath(dest, name)
	}

	target := filepath.Join(dest, filepath.FromSlash(name))
	if !within(dest, target) || !confined(dest, target) {
		return "", unsafePath(dest, name)
	}
	return target, nil
}

// confined reports whether path stays below dest once the links already extracted
// along it are followed. A dangling link on the way counts as escaping.
func confined(dest, path string) bool {
	root, err := filepath.EvalSymlinks(dest)
	if err != nil {
		return false
	}

	var rest []string
	for current := path; ; {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			return within(root, filepath.Join(append([]string{resolved}, rest...)...))
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return false
		}
		if _, err := os.Lstat(current); err == nil {
			return false
		}

		parent := filepath.Dir(current)
		if parent == current {
			return false
		}
		rest = append([]string{filepath.Base(current)}, rest...)
		current = parent
	}
}

// within reports whether target is dest or below it.
func within(dest, target string) bool {
	rel, err := filepath.Rel(dest, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return err
	}

	perm := (mode.Perm() &^ 0o022) | 0o600
	//nolint:gosec // target is confined to the destination by safeJoin
	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil { //nolint:gosec // archive size is bounded by the download
		_ = f.Close()
		return err
	}
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeSymlink(dest, target, linkname string) error {
	if filepath.IsAbs(linkname) || strings.HasPrefix(linkname, "/") {
		return unsafePath(dest, linkname)
	}
	resolved := filepath.Join(filepath.Dir(target), filepath.FromSlash(linkname))
	if !within(dest, resolved) {
		return unsafePath(dest, linkname)
	}

	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return extractError(err, dest)
	}
	if err := os.Symlink(linkname, target); err != nil {
		return extractError(err, dest)
	}
	return nil
}

func unsafePath(dest, name string) error {
	err := zerr.With(zerr.Wrap(domain.ErrUnsafeArchivePath, "rejected archive entry"), "entry", name)
	return zerr.With(err, "path", dest)
}

func extractError(err error, dest string) error {
	return zerr.With(zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error()), "path", dest)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
