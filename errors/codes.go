package errors

// ErrorCode identifies the kind of a failure.
// Codes are strings so they read well in logs and serialize naturally to JSON.
type ErrorCode string

const (
	// Driver error kinds.

	// CodeNotFound indicates an entry required by the operation does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeInvalidName indicates a file or folder name is empty after
	// sanitization or contains disallowed characters.
	CodeInvalidName ErrorCode = "INVALID_NAME"

	// CodeInvalidArgument indicates an unsupported argument value, such as an
	// unknown hash algorithm or file information property.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// CodeExistingTarget indicates the destination of a rename or move
	// already exists.
	CodeExistingTarget ErrorCode = "EXISTING_TARGET"

	// CodeOperationFailed indicates a backend mutation failed or the state
	// expected after it could not be confirmed.
	CodeOperationFailed ErrorCode = "OPERATION_FAILED"

	// Configuration errors.

	// CodeInvalidConfig indicates a driver or backend configuration is invalid.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// Backend infrastructure errors.

	// CodeTimeout indicates a backend call exceeded its configured time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeUnavailable indicates the backend could not be reached.
	CodeUnavailable ErrorCode = "BACKEND_UNAVAILABLE"

	// CodeUnsupported indicates the backend does not support the operation.
	CodeUnsupported ErrorCode = "UNSUPPORTED"

	// System errors.

	// CodeInternal indicates an unexpected internal failure.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown is reported for errors that carry no code.
	CodeUnknown ErrorCode = "UNKNOWN"
)
