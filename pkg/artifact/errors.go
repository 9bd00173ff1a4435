package artifact

import "fmt"

// PathTraversalError is returned when a manifest path is absolute, leaves the install root or
// is not in canonical form.
type PathTraversalError struct {
	Path string
	Err  error
}

// NewPathTraversalError creates a new PathTraversalError.
func NewPathTraversalError(path string, err error) error {
	return &PathTraversalError{Path: path, Err: err}
}

// Error implements the error interface for PathTraversalError.
func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("invalid manifest path %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for PathTraversalError.
func (e *PathTraversalError) Unwrap() error {
	return e.Err
}

// ConflictError names the file that blocks an install and the package that owns it.
type ConflictError struct {
	Path  string
	Owner string
}

// Error implements the error interface for ConflictError.
func (e *ConflictError) Error() string {
	if e.Owner == "" {
		return fmt.Sprintf("%s is owned by another package", e.Path)
	}
	return fmt.Sprintf("%s is owned by package %s", e.Path, e.Owner)
}
