package index

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"slices"
	"strings"

	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/fsutil"
)

// ReadRepositoryList reads the newline-delimited repository URL list.
// Blank lines and lines starting with '#' are ignored.
func ReadRepositoryList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apkgErrors.ErrConfigMissing, path)
		}
		return nil, apkgErrors.Wrapf(err, "cannot read repository list %s", path)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apkgErrors.Wrapf(err, "cannot read repository list %s", path)
	}
	return urls, nil
}

// AddRepository appends rawURL to the repository list, creating the file if needed.
// It reports false when the URL is already listed.
func AddRepository(path, rawURL string) (bool, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := validateRepositoryURL(rawURL); err != nil {
		return false, err
	}

	urls, err := ReadRepositoryList(path)
	if err != nil && !errors.Is(err, apkgErrors.ErrConfigMissing) {
		return false, err
	}
	if slices.Contains(urls, rawURL) {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, apkgErrors.Wrapf(err, "cannot read repository list %s", path)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	data = append(data, rawURL+"\n"...)

	if err := fsutil.EnsureFileDir(path); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, fsutil.FileModeDefault); err != nil {
		return false, apkgErrors.Wrapf(err, "cannot write repository list %s", path)
	}
	return true, nil
}

// RemoveRepository drops every line equal to rawURL and keeps everything else, comments included.
// It reports false when the URL was not listed.
func RemoveRepository(path, rawURL string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("%w: %s", apkgErrors.ErrConfigMissing, path)
		}
		return false, apkgErrors.Wrapf(err, "cannot read repository list %s", path)
	}

	rawURL = strings.TrimSpace(rawURL)
	var kept []string
	removed := false
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if strings.TrimSpace(line) == rawURL {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return false, nil
	}

	content := ""
	if len(kept) > 0 {
		content = strings.Join(kept, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), fsutil.FileModeDefault); err != nil {
		return false, apkgErrors.Wrapf(err, "cannot write repository list %s", path)
	}
	return true, nil
}

func validateRepositoryURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: repository URL %q must be absolute", apkgErrors.ErrConfigValidation, rawURL)
	}
	return nil
}
