// Package errors defines the error kinds used across apkg and small helpers for wrapping them.
//
// Every operation returns plain Go errors. Callers tell the kinds apart with errors.Is against the
// sentinel values below, and use errors.As with FileOperationError or RepositoryError when they
// need the file or repository that caused the failure.
package errors

import "fmt"

// Error kinds.
var (
	// ErrConfigMissing is returned when the repository list file does not exist.
	ErrConfigMissing = fmt.Errorf("repository list not found")

	// ErrFetch is returned when a remote document cannot be downloaded.
	ErrFetch = fmt.Errorf("download failed")

	// ErrParse is returned for malformed index documents, manifests and version strings.
	ErrParse = fmt.Errorf("parse failed")

	// ErrExtract is returned when a package archive cannot be extracted.
	ErrExtract = fmt.Errorf("extraction failed")

	// ErrConflict is returned when a package file is already owned by a different package.
	ErrConflict = fmt.Errorf("file conflict")

	// ErrCopy is returned when a package file cannot be placed under the install root.
	ErrCopy = fmt.Errorf("file copy failed")

	// ErrRegistryRead is returned when the installed registry cannot be enumerated.
	ErrRegistryRead = fmt.Errorf("cannot read installed registry")

	// ErrRegistryWrite is returned when a package record cannot be written or removed.
	ErrRegistryWrite = fmt.Errorf("cannot write installed registry")

	// ErrNotInstalled is returned when an operation targets a package that is not registered.
	ErrNotInstalled = fmt.Errorf("package is not installed")

	// ErrDelete is returned when an owned file cannot be deleted during removal.
	ErrDelete = fmt.Errorf("file deletion failed")

	// ErrPackageNotFound is returned when no index entry matches a package name and platform.
	ErrPackageNotFound = fmt.Errorf("package not found")

	// ErrInvalidPath is returned for paths that are absolute or escape the install root.
	ErrInvalidPath = fmt.Errorf("invalid path")

	// ErrInvalidPackageName is returned for names that cannot be used as a registry key.
	ErrInvalidPackageName = fmt.Errorf("invalid package name")

	// ErrScratchDir is returned when the extraction scratch directory cannot be reset.
	ErrScratchDir = fmt.Errorf("cannot prepare extraction directory")

	// Config errors.
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigValidation = fmt.Errorf("invalid configuration")
	ErrInvalidLogLevel  = fmt.Errorf("invalid log level")
	ErrHTTPTimeout      = fmt.Errorf("http_timeout cannot be negative")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
)

// FileOperationError reports a failed operation on one file of a package.
type FileOperationError struct {
	Kind error
	Op   string
	Path string
	Err  error
}

// NewFileOperationError creates a FileOperationError of the given kind.
func NewFileOperationError(kind error, op, path string, err error) error {
	return &FileOperationError{Kind: kind, Op: op, Path: path, Err: err}
}

// Error implements the error interface for FileOperationError.
func (e *FileOperationError) Error() string {
	return fmt.Sprintf("%v: failed to %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *FileOperationError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// RepositoryError reports a failure while loading one repository of the configured list.
type RepositoryError struct {
	Kind     error
	URL      string
	Position int // 1-based position in the repository list
	Err      error
}

// NewRepositoryError creates a RepositoryError of the given kind.
func NewRepositoryError(kind error, url string, position int, err error) error {
	return &RepositoryError{Kind: kind, URL: url, Position: position, Err: err}
}

// Error implements the error interface for RepositoryError.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%v: repository #%d (%s): %v", e.Kind, e.Position, e.URL, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *RepositoryError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrInvalidLogLevelWithDetails creates an error naming the rejected level and the valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: debug, info, warn, error", ErrInvalidLogLevel, level)
}
