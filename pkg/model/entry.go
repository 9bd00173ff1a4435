package model

import (
	"net/url"

	"github.com/glorpus-work/apkg/pkg/platform"
)

// RepositoryEntry is one package listed by a repository index.
type RepositoryEntry struct {
	Name string `json:"name"`
	OS   string `json:"os"`
	URL  string `json:"url"`
}

// MatchPlatform checks if the entry installs on the platform with the given tag.
func (e *RepositoryEntry) MatchPlatform(tag string) bool {
	return platform.Matches(e.OS, tag)
}

// GetURL returns the parsed download URL, or nil if it does not parse.
func (e *RepositoryEntry) GetURL() *url.URL {
	u, err := url.Parse(e.URL)
	if err != nil {
		return nil
	}
	return u
}
