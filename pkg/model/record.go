// Package model provides the data types shared by the registry, the index and the installer.
package model

// Record is one installed package as kept by the registry.
type Record struct {
	Name    string
	Version string
	Files   []string
}

// Owns reports whether the record lists path among its files.
func (r *Record) Owns(path string) bool {
	for _, f := range r.Files {
		if f == path {
			return true
		}
	}
	return false
}
