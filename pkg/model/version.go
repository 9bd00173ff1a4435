package model

import (
	"fmt"

	"github.com/hashicorp/go-version"

	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
)

// ParseVersion parses a dot-separated numeric version. Missing trailing segments count as zero.
func ParseVersion(raw string) (*version.Version, error) {
	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: version %q: %v", apkgErrors.ErrParse, raw, err)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return nil, fmt.Errorf("%w: version %q is not purely numeric", apkgErrors.ErrParse, raw)
	}
	return v, nil
}

// CompareVersions returns -1, 0 or 1 as a is lower than, equal to or greater than b.
func CompareVersions(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}
