package errors

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToJSON(t *testing.T) {
	err := WrapWithContext(stderrors.New("bucket secret-bucket unreachable"), CodeUnavailable,
		"backend unavailable", map[string]interface{}{"identifier": "/a.txt"})

	resp := ToJSON(err)
	require.Equal(t, "BACKEND_UNAVAILABLE", resp.Code)
	require.Equal(t, "backend unavailable", resp.Message)
	require.Equal(t, "RETRYABLE", resp.Classification)
	require.Equal(t, "/a.txt", resp.Context["identifier"])
}

func TestToJSON_StandardError(t *testing.T) {
	resp := ToJSON(stderrors.New("plain"))
	require.Equal(t, "UNKNOWN", resp.Code)
	require.Equal(t, "plain", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)
	require.Nil(t, resp.Context)

	require.Nil(t, ToJSON(nil))
}

func TestMarshalJSON_OmitsCause(t *testing.T) {
	err := Wrap(stderrors.New("/var/secret/path"), CodeOperationFailed, "write failed")

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	require.NotContains(t, string(data), "/var/secret/path")
	require.NotContains(t, string(data), "context")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Equal(t, "OPERATION_FAILED", resp.Code)
	require.Equal(t, "write failed", resp.Message)
}
