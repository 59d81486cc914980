// Package errors provides the structured error model used by the storage
// driver and its backends.
//
// Every failure the driver surfaces carries an ErrorCode naming one of the
// driver's error kinds, a retry classification, a human-readable message,
// optional context metadata and the wrapped backend cause. Errors remain
// compatible with the standard library (errors.Is, errors.As, errors.Unwrap),
// so callers can still match backend sentinels such as core.ErrNotExist
// through a driver error.
//
// # Error Kinds
//
//   - CodeNotFound: an entry required by a read or metadata operation is absent
//   - CodeInvalidName: a name is empty after sanitization or contains
//     disallowed characters
//   - CodeInvalidArgument: an unsupported hash algorithm or unknown file
//     information property was requested
//   - CodeExistingTarget: the destination of a rename or move is occupied
//   - CodeOperationFailed: a backend mutation failed or its post-condition
//     did not hold
//   - CodeInvalidConfig: a driver or backend configuration is invalid
//
// # Usage
//
//	id, err := drv.RenameFile("/a.txt", "b.txt")
//	switch errors.GetCode(err) {
//	case errors.CodeExistingTarget:
//	    // pick another name
//	case errors.CodeOperationFailed:
//	    // report and move on
//	}
//
// Context travels with the error and is included in JSON output:
//
//	err = errors.WithContextMap(err, map[string]interface{}{
//	    "identifier": "/a.txt",
//	    "backend":    "memory",
//	})
//	data, _ := json.Marshal(errors.ToJSON(err))
//
// The driver never retries. Classification is informational for callers that
// implement their own retry policy: backend timeouts and unavailability are
// retryable, everything else is permanent.
package errors
