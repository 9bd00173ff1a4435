// Package testutil holds helpers shared by the integration tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/apkg/internal/logger"
	"github.com/glorpus-work/apkg/pkg/config"
)

// TestServer serves a repository directory over HTTP.
type TestServer struct {
	Server *httptest.Server
	Dir    string
	URL    string
}

// NewTestServer starts a server for the files below dir. It is closed when the test ends.
func NewTestServer(t *testing.T, dir string) *TestServer {
	t.Helper()
	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	t.Cleanup(srv.Close)
	return &TestServer{Server: srv, Dir: dir, URL: srv.URL}
}

// Path returns the local path behind a URL path of the server.
func (ts *TestServer) Path(elem ...string) string {
	return filepath.Join(append([]string{ts.Dir}, elem...)...)
}

// SetupTestConfig writes settings.yaml content to the config file of root and returns its path.
func SetupTestConfig(t *testing.T, root, settings string) string {
	t.Helper()
	configPath := config.NewLayout(root).ConfigFile()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}
	if err := os.WriteFile(configPath, []byte(settings), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	logger.Debugf("Wrote test config to %s", configPath)
	return configPath
}
