package errors

import "fmt"

// Wrap wraps err with a code and message. The cause stays reachable through
// Unwrap, errors.Is and errors.As.
//
// If err already carries a PlatformError its classification is kept, so a
// retryable backend timeout stays retryable after the driver re-codes it.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := backend.Write(path, data); err != nil {
//	    return errors.Wrap(err, errors.CodeOperationFailed, "writing file failed")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	return WrapWithContext(err, code, message, nil)
}

// Wrapf wraps err with a formatted message.
//
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps err and attaches a copy of ctx in one step.
//
// Returns nil if err is nil.
//
// Example:
//
//	return errors.WrapWithContext(err, errors.CodeOperationFailed, "rename failed", map[string]interface{}{
//	    "source": src,
//	    "target": dst,
//	})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var platformErr PlatformError
	if As(err, &platformErr) {
		classification = platformErr.Classification()
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		context:        copyContext(ctx),
		cause:          err,
	}
}
