// Package http downloads repository indexes and package bundles.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/glorpus-work/apkg/internal/logger"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/fsutil"
)

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "apkg/1.0"

// HTTPClient handles HTTP operations for repositories.
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTP client with the given request timeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: DefaultUserAgent,
	}
}

// Download fetches rawURL into filePath. Parent directories are created as needed.
// A failed transfer leaves no partial file behind.
func (hc *HTTPClient) Download(ctx context.Context, rawURL, filePath string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: invalid URL %q", apkgErrors.ErrFetch, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", apkgErrors.ErrFetch, err)
	}
	req.Header.Set("User-Agent", hc.userAgent)

	logger.Debug("Downloading", logger.Fields{"url": rawURL, "target": filePath})

	resp, err := hc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apkgErrors.ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code: %d", apkgErrors.ErrFetch, resp.StatusCode)
	}

	if err := fsutil.EnsureFileDir(filePath); err != nil {
		return fmt.Errorf("%w: could not create directory for %s: %w", apkgErrors.ErrFetch, filePath, err)
	}

	out, err := fsutil.CreateFilePerm(filePath, fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("%w: could not create %s: %w", apkgErrors.ErrFetch, filePath, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(filePath)
		return fmt.Errorf("%w: failed to read response body: %w", apkgErrors.ErrFetch, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(filePath)
		return fmt.Errorf("%w: could not write %s: %w", apkgErrors.ErrFetch, filePath, err)
	}

	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		if modTime, err := http.ParseTime(lastModified); err == nil {
			_ = os.Chtimes(filePath, modTime, modTime)
		}
	}

	return nil
}
