package fetch

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"net/url"
	"os"
	"path/filepath"

	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fetcher = (*FileFetcher)(nil)

// FileFetcher reads file:// URLs, used for local mirrors.
type FileFetcher struct{}

// NewFileFetcher creates a new FileFetcher.
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// Fetch opens the local file addressed by rawURL.
func (f *FileFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid file url"), "url", rawURL)
	}

	file, err := os.Open(filepath.FromSlash(u.Path)) //nolint:gosec // path comes from the repository configuration
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(ErrNotFound, "no such file"), "url", rawURL)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to open file"), "url", rawURL)
	}
	return file, nil
}
