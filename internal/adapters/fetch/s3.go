package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fetcher = (*S3Fetcher)(nil)

// S3Fetcher reads public objects addressed as s3://bucket/key.
// Requests are anonymous; repositories served from S3 must allow public reads.
type S3Fetcher struct {
	region   string
	endpoint string

	once   sync.Once
	client *s3.Client
}

// NewS3Fetcher creates an S3Fetcher. A non-empty endpoint selects an S3 compatible
// store addressed with path-style requests.
func NewS3Fetcher(region, endpoint string) *S3Fetcher {
	return &S3Fetcher{region: region, endpoint: endpoint}
}

func (f *S3Fetcher) s3Client() *s3.Client {
	f.once.Do(func() {
		opts := s3.Options{
			Region:      f.region,
			Credentials: aws.AnonymousCredentials{},
		}
		if f.endpoint != "" {
			opts.BaseEndpoint = aws.String(f.endpoint)
			opts.UsePathStyle = true
		}
		f.client = s3.New(opts)
	})
	return f.client
}

// Fetch opens the object at rawURL. The caller must close the returned body.
func (f *S3Fetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	bucket, key, err := parseS3URL(rawURL)
	if err != nil {
		return nil, err
	}

	out, err := f.s3Client().GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(ctx, err, rawURL)
	}
	return out.Body, nil
}

func parseS3URL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", zerr.With(zerr.Wrap(err, "invalid s3 url"), "url", rawURL)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", zerr.With(zerr.New("s3 url must be s3://bucket/key"), "url", rawURL)
	}
	return u.Host, key, nil
}

func classifyS3Error(ctx context.Context, err error, rawURL string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return statusError(ErrNotFound, rawURL, http.StatusNotFound)
	}

	var withStatus interface{ HTTPStatusCode() int }
	if errors.As(err, &withStatus) {
		status := withStatus.HTTPStatusCode()
		switch {
		case status == http.StatusNotFound:
			return statusError(ErrNotFound, rawURL, status)
		case status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable:
			return statusError(ErrRateLimited, rawURL, status)
		case status >= http.StatusInternalServerError:
			return statusError(ErrUpstreamDown, rawURL, status)
		}
		err = zerr.With(zerr.Wrap(err, "s3 request failed"), "url", rawURL)
		return zerr.With(err, "status_code", status)
	}

	return zerr.With(zerr.Wrap(err, "s3 request failed"), "url", rawURL)
}
