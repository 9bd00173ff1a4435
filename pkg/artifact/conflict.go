package artifact

import (
	"github.com/glorpus-work/apkg/pkg/artifact/database"
)

// CheckConflicts reports whether none of candidates is owned by an installed package.
// When one is, safe is false and conflict names the first such candidate.
// A registry that cannot be read is never treated as safe.
func CheckConflicts(candidates []string, reg database.InstalledManager) (safe bool, conflict string, err error) {
	installed, err := reg.ListInstalledFiles()
	if err != nil {
		return false, "", err
	}
	conflict, found := firstOwned(candidates, installed)
	return !found, conflict, nil
}

// CheckConflictsExcept is CheckConflicts restricted to packages other than owner.
func CheckConflictsExcept(candidates []string, reg database.InstalledManager, owner string) (safe bool, conflict string, err error) {
	names, err := reg.ListPackages()
	if err != nil {
		return false, "", err
	}

	var installed []string
	for _, name := range names {
		if name == owner {
			continue
		}
		files, err := reg.Files(name)
		if err != nil {
			return false, "", err
		}
		installed = append(installed, files...)
	}
	conflict, found := firstOwned(candidates, installed)
	return !found, conflict, nil
}

// FindOwner returns the name of the package owning path, or "" if none does.
func FindOwner(reg database.InstalledManager, path string) (string, error) {
	names, err := reg.ListPackages()
	if err != nil {
		return "", err
	}
	for _, name := range names {
		rec, err := reg.Get(name)
		if err != nil {
			return "", err
		}
		if rec.Owns(path) {
			return name, nil
		}
	}
	return "", nil
}

func firstOwned(candidates, installed []string) (string, bool) {
	owned := make(map[string]struct{}, len(installed))
	for _, f := range installed {
		owned[f] = struct{}{}
	}
	for _, c := range candidates {
		if _, ok := owned[c]; ok {
			return c, true
		}
	}
	return "", false
}
