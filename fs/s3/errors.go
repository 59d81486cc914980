package s3

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// apiError is satisfied by every modelled and generic service error.
type apiError interface {
	ErrorCode() string
}

// translate converts S3 errors to the core sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) || errors.As(err, &noSuchBucket) {
		return core.ErrNotExist
	}

	var apiErr apiError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return core.ErrNotExist
		case "AccessDenied", "Forbidden":
			return core.ErrPermission
		case "NotImplemented":
			return core.ErrUnsupported
		}
	}

	return fmt.Errorf("s3: %w", err)
}

func pathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}
