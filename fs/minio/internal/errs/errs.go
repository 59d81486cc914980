// Package errs provides error handling utilities for the minio backend.
package errs

import (
	"fmt"
	"io/fs"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// Translate converts MinIO errors to the core sentinels.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	errResp := minio.ToErrorResponse(err)

	switch errResp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return core.ErrNotExist
	case "AccessDenied":
		return core.ErrPermission
	case "NotImplemented":
		return core.ErrUnsupported
	}

	return fmt.Errorf("minio: %w", err)
}

// PathError wraps an error in a fs.PathError for the given operation and path.
// If the error is nil, returns nil.
func PathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}

// PathErrorf creates a fs.PathError with a formatted error message.
func PathErrorf(op, path, format string, args ...interface{}) error {
	return &fs.PathError{Op: op, Path: path, Err: fmt.Errorf(format, args...)}
}
