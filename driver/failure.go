package driver

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/jmgilman/go/fsdriver/errors"
	"github.com/jmgilman/go/fsdriver/fs/core"
)

// failure builds the coded error for op on id and logs it.
//
// A backend timeout is recorded as CodeTimeout beneath the returned code so
// its retryable classification survives.
func (d *Driver) failure(op, id string, code errors.ErrorCode, cause error, msg string) error {
	ctx := map[string]interface{}{
		"operation":  op,
		"identifier": id,
		"backend":    d.backend.Type().String(),
	}

	var err error
	if cause == nil {
		err = errors.WithContextMap(errors.New(code, msg), ctx)
	} else {
		if stderrors.Is(cause, context.DeadlineExceeded) {
			cause = errors.Wrap(cause, errors.CodeTimeout, "backend call timed out")
		}
		err = errors.WrapWithContext(cause, code, msg, ctx)
	}

	d.logger.Warn(msg,
		zap.String("operation", op),
		zap.String("identifier", id),
		zap.String("code", string(code)),
		zap.Error(cause),
	)
	return err
}

// missingCode picks NotFound for absent entries and OperationFailed for
// every other backend failure.
func missingCode(err error) errors.ErrorCode {
	if stderrors.Is(err, core.ErrNotExist) || stderrors.Is(err, core.ErrIsDir) || stderrors.Is(err, core.ErrNotDir) {
		return errors.CodeNotFound
	}
	return errors.CodeOperationFailed
}

// targetCode picks ExistingTarget when the backend refused to overwrite.
func targetCode(err error) errors.ErrorCode {
	if stderrors.Is(err, core.ErrExist) {
		return errors.CodeExistingTarget
	}
	return errors.CodeOperationFailed
}
