package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/model"
)

// Index is one repository document: the packages it offers in document order.
type Index struct {
	PackageList []model.RepositoryEntry `json:"packageList"`
}

type rawIndex struct {
	PackageList *[]model.RepositoryEntry `json:"packageList"`
}

// ParseIndex parses an index from JSON data. Every entry needs a name, an os tag and a url.
func ParseIndex(data []byte) (*Index, error) {
	var raw rawIndex
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse index: %v", apkgErrors.ErrParse, err)
	}
	if raw.PackageList == nil {
		return nil, fmt.Errorf("%w: missing packageList in index", apkgErrors.ErrParse)
	}

	idx := &Index{PackageList: *raw.PackageList}
	for i, e := range idx.PackageList {
		switch {
		case e.Name == "":
			return nil, fmt.Errorf("%w: entry %d has no name", apkgErrors.ErrParse, i)
		case e.OS == "":
			return nil, fmt.Errorf("%w: entry %d (%s) has no os", apkgErrors.ErrParse, i, e.Name)
		case e.URL == "":
			return nil, fmt.Errorf("%w: entry %d (%s) has no url", apkgErrors.ErrParse, i, e.Name)
		}
	}
	return idx, nil
}

// ParseIndexFromReader parses an index from an io.Reader.
func ParseIndexFromReader(reader io.Reader) (*Index, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apkgErrors.Wrap(err, "failed to read index data")
	}
	return ParseIndex(data)
}

// ParseIndexFromFile parses the index stored at filePath.
func ParseIndexFromFile(filePath string) (*Index, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, apkgErrors.Wrapf(err, "cannot open index file %s for parsing", filePath)
	}
	defer func() { _ = file.Close() }()
	return ParseIndexFromReader(file)
}

// ToJSON converts the index to JSON bytes.
func (idx *Index) ToJSON() ([]byte, error) {
	if idx.PackageList == nil {
		idx.PackageList = []model.RepositoryEntry{}
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return nil, apkgErrors.Wrap(err, "failed to marshal index to JSON")
	}
	return data, nil
}

// FindEntries returns every entry named name in document order.
func (idx *Index) FindEntries(name string) []model.RepositoryEntry {
	var found []model.RepositoryEntry
	for _, e := range idx.PackageList {
		if e.Name == name {
			found = append(found, e)
		}
	}
	return found
}
