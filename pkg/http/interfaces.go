//go:generate mockgen -destination=mocks/http.go . Client
package http

import "context"

// Client defines the interface for HTTP operations.
type Client interface {
	// Download fetches rawURL and writes the response body to filePath, replacing any previous file.
	Download(ctx context.Context, rawURL, filePath string) error
}
