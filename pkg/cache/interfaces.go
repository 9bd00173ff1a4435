// Package cache reports on and clears the scratch area below <root>/tmp.
package cache

// Manager defines the interface for scratch area operations.
type Manager interface {
	Clean(options CleanOptions) (*CleanResult, error)
	GetInfo() (*Info, error)
	GetDirectory() string
}

// CleanOptions specifies what to clean. With no flag set everything is cleaned.
type CleanOptions struct {
	All       bool
	Downloads bool
	Scratch   bool
}

// CleanResult contains the number of bytes freed per area.
type CleanResult struct {
	TotalFreed     int64
	DownloadsFreed int64
	ScratchFreed   int64
}

// Info describes the current size of the scratch area.
type Info struct {
	Directory     string
	TotalSize     int64
	DownloadSize  int64
	DownloadFiles int
	ScratchSize   int64
	ScratchFiles  int
}
