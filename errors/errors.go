package errors

// PlatformError is an error carrying a code, a retry classification, a
// message and optional context metadata.
//
// PlatformError values are immutable. Functions that add context or change
// the classification return a new value.
type PlatformError interface {
	error

	// Code returns the error kind.
	Code() ErrorCode

	// Classification reports whether retrying could succeed.
	Classification() ErrorClassification

	// Message returns the message without the code prefix or the cause.
	Message() string

	// Context returns a copy of the attached metadata, or nil if none.
	Context() map[string]interface{}

	// Unwrap returns the wrapped cause, or nil.
	Unwrap() error
}
