package errors

// ErrorClassification indicates whether an operation may succeed if retried.
type ErrorClassification string

const (
	// ClassificationRetryable marks transient failures such as backend timeouts.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent marks failures that will repeat on retry.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification is ClassificationRetryable.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeTimeout:     ClassificationRetryable,
	CodeUnavailable: ClassificationRetryable,

	CodeNotFound:        ClassificationPermanent,
	CodeInvalidName:     ClassificationPermanent,
	CodeInvalidArgument: ClassificationPermanent,
	CodeExistingTarget:  ClassificationPermanent,
	CodeOperationFailed: ClassificationPermanent,
	CodeInvalidConfig:   ClassificationPermanent,
	CodeUnsupported:     ClassificationPermanent,
	CodeInternal:        ClassificationPermanent,
	CodeUnknown:         ClassificationPermanent,
}

// getDefaultClassification returns the classification for code, falling back
// to ClassificationPermanent for codes without an explicit mapping.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
