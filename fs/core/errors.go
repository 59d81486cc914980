package core

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned when a file or directory already exists.
	// Re-exported from io/fs for convenience.
	ErrExist = fs.ErrExist

	// ErrPermission is returned when permission is denied.
	// Re-exported from io/fs for convenience.
	ErrPermission = fs.ErrPermission

	// ErrUnsupported is returned when an operation is not supported by the backend.
	ErrUnsupported = errors.New("operation not supported")

	// ErrNotDir is returned when a directory operation targets a file.
	ErrNotDir = errors.New("not a directory")

	// ErrIsDir is returned when a file operation targets a directory.
	ErrIsDir = errors.New("is a directory")
)

// PathError wraps err in an *fs.PathError for op and path.
func PathError(op, path string, err error) error {
	return &fs.PathError{Op: op, Path: path, Err: err}
}
