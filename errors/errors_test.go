package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeInvalidName, "name is empty")

	require.Equal(t, CodeInvalidName, err.Code())
	require.Equal(t, "name is empty", err.Message())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Nil(t, err.Context())
	require.Nil(t, err.Unwrap())
	require.Equal(t, "[INVALID_NAME] name is empty", err.Error())
}

func TestNew_DefaultClassification(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want ErrorClassification
	}{
		{CodeTimeout, ClassificationRetryable},
		{CodeUnavailable, ClassificationRetryable},
		{CodeNotFound, ClassificationPermanent},
		{CodeExistingTarget, ClassificationPermanent},
		{CodeOperationFailed, ClassificationPermanent},
		{ErrorCode("SOMETHING_ELSE"), ClassificationPermanent},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			require.Equal(t, tt.want, New(tt.code, "x").Classification())
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidArgument, "hash algorithm %q is not supported", "crc32")
	require.Equal(t, `hash algorithm "crc32" is not supported`, err.Message())
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, CodeOperationFailed, "writing file failed")

	require.Equal(t, CodeOperationFailed, err.Code())
	require.Equal(t, cause, err.Unwrap())
	require.True(t, Is(err, cause))
	require.Equal(t, "[OPERATION_FAILED] writing file failed: disk full", err.Error())
}

func TestWrap_Nil(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeNotFound, "x"))
	require.Nil(t, Wrapf(nil, CodeNotFound, "x %d", 1))
	require.Nil(t, WrapWithContext(nil, CodeNotFound, "x", nil))
}

func TestWrap_PreservesClassification(t *testing.T) {
	timeout := New(CodeTimeout, "backend call timed out")
	wrapped := Wrap(timeout, CodeOperationFailed, "deleting file failed")

	require.Equal(t, CodeOperationFailed, wrapped.Code())
	require.True(t, wrapped.Classification().IsRetryable())
	require.True(t, IsRetryable(wrapped))
}

func TestWrapWithContext_CopiesMap(t *testing.T) {
	ctx := map[string]interface{}{"identifier": "/a.txt"}
	err := WrapWithContext(stderrors.New("boom"), CodeOperationFailed, "failed", ctx)

	ctx["identifier"] = "/changed.txt"
	require.Equal(t, "/a.txt", err.Context()["identifier"])

	returned := err.Context()
	returned["identifier"] = "/other.txt"
	require.Equal(t, "/a.txt", err.Context()["identifier"])
}

func TestWithContext(t *testing.T) {
	base := New(CodeNotFound, "file not found")
	err := WithContext(base, "identifier", "/missing.txt")
	err = WithContext(err, "storage", 33)

	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, "/missing.txt", err.Context()["identifier"])
	require.Equal(t, 33, err.Context()["storage"])
	require.Nil(t, base.Context())
}

func TestWithContext_StandardError(t *testing.T) {
	cause := stderrors.New("plain")
	err := WithContext(cause, "k", "v")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, "plain", err.Message())
	require.True(t, Is(err, cause))
}

func TestWithContextMap_Overrides(t *testing.T) {
	err := WithContextMap(New(CodeNotFound, "x"), map[string]interface{}{"a": 1, "b": 2})
	err = WithContextMap(err, map[string]interface{}{"b": 3})

	require.Equal(t, map[string]interface{}{"a": 1, "b": 3}, err.Context())
}

func TestWithClassification(t *testing.T) {
	err := WithClassification(New(CodeOperationFailed, "x"), ClassificationRetryable)

	require.Equal(t, CodeOperationFailed, err.Code())
	require.True(t, IsRetryable(err))
	require.Nil(t, WithClassification(nil, ClassificationRetryable))
}

func TestGetCode(t *testing.T) {
	require.Equal(t, CodeUnknown, GetCode(nil))
	require.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	require.Equal(t, CodeExistingTarget, GetCode(New(CodeExistingTarget, "x")))

	wrapped := fmt.Errorf("cli: %w", New(CodeNotFound, "x"))
	require.Equal(t, CodeNotFound, GetCode(wrapped))
	require.True(t, HasCode(wrapped, CodeNotFound))
	require.False(t, HasCode(nil, CodeUnknown))
}

func TestGetClassification(t *testing.T) {
	require.Equal(t, ClassificationPermanent, GetClassification(nil))
	require.Equal(t, ClassificationPermanent, GetClassification(stderrors.New("plain")))
	require.Equal(t, ClassificationRetryable, GetClassification(New(CodeUnavailable, "x")))
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeInvalidName, "bad"))

	var platformErr PlatformError
	require.True(t, As(err, &platformErr))
	require.Equal(t, CodeInvalidName, platformErr.Code())
}
