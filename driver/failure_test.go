package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsdriver/errors"
	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/fs/core/mocks"
)

func remoteMock() *mocks.BackendMock {
	return &mocks.BackendMock{
		TypeFunc: func() core.BackendType { return core.BackendTypeRemote },
	}
}

func TestFailure_WriteError(t *testing.T) {
	cause := core.PathError("write", "a.txt", fmt.Errorf("connection reset"))
	backend := remoteMock()
	backend.WriteFunc = func(path string, data []byte) error { return cause }

	d := New(backend)
	_, err := d.SetFileContents("/a.txt", []byte("x"))
	requireCode(t, err, errors.CodeOperationFailed)
	assert.ErrorIs(t, err, cause)

	var pe errors.PlatformError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "set_contents", pe.Context()["operation"])
	assert.Equal(t, "/a.txt", pe.Context()["identifier"])
	assert.Equal(t, "remote", pe.Context()["backend"])
	assert.False(t, errors.IsRetryable(err))

	require.Len(t, backend.WriteCalls(), 1)
	assert.Equal(t, "a.txt", backend.WriteCalls()[0].Path)
}

func TestFailure_TimeoutStaysRetryable(t *testing.T) {
	backend := remoteMock()
	backend.ReadFunc = func(path string) ([]byte, error) {
		return nil, core.PathError("read", path, context.DeadlineExceeded)
	}

	d := New(backend)
	_, err := d.GetFileContents("/slow.bin")
	requireCode(t, err, errors.CodeOperationFailed)
	assert.True(t, errors.IsRetryable(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFailure_RenameFolderIdentity(t *testing.T) {
	backend := remoteMock()
	backend.ListFunc = func(path string) ([]core.Entry, error) {
		if path == "old" {
			return []core.Entry{{Path: "old/a.txt", Type: core.EntryFile, Size: 1}}, nil
		}
		return nil, nil
	}
	backend.RenameFunc = func(oldPath, newPath string) error {
		return core.PathError("rename", oldPath, core.ErrPermission)
	}

	d := New(backend)
	got := d.RenameFolder("/old/", "new")
	assert.Equal(t, map[string]string{"/old/": "/old/"}, got)

	require.Len(t, backend.RenameCalls(), 1)
	assert.Equal(t, "old", backend.RenameCalls()[0].OldPath)
	assert.Equal(t, "new", backend.RenameCalls()[0].NewPath)
}

func TestFailure_AddFileUnverifiedKeepsOriginal(t *testing.T) {
	local := filepath.Join(t.TempDir(), "upload.txt")
	require.NoError(t, os.WriteFile(local, []byte("data"), 0o644))

	backend := remoteMock()
	backend.WriteFunc = func(path string, data []byte) error { return nil }
	backend.IsFileFunc = func(path string) (bool, error) { return false, nil }

	d := New(backend)
	_, err := d.AddFile(local, "/", "", true)
	requireCode(t, err, errors.CodeOperationFailed)

	_, statErr := os.Stat(local)
	assert.NoError(t, statErr)
}

func TestFailure_BackendRefusesOverwrite(t *testing.T) {
	backend := remoteMock()
	backend.IsFileFunc = func(path string) (bool, error) { return false, nil }
	backend.RenameFunc = func(oldPath, newPath string) error {
		return core.PathError("rename", newPath, core.ErrExist)
	}

	d := New(backend)
	_, err := d.RenameFile("/a.txt", "b.txt")
	requireCode(t, err, errors.CodeExistingTarget)
}

func TestFailure_FileInfoOnFolder(t *testing.T) {
	backend := remoteMock()
	backend.MetadataFunc = func(path string) (core.Entry, error) {
		return core.Entry{Path: path, Type: core.EntryDir}, nil
	}

	d := New(backend)
	_, err := d.GetFileInfoByIdentifier("/dir")
	requireCode(t, err, errors.CodeNotFound)
	assert.ErrorIs(t, err, core.ErrIsDir)

	_, err = d.GetFileInfoByIdentifier("/dir", "color")
	requireCode(t, err, errors.CodeInvalidArgument)
	assert.Len(t, backend.MetadataCalls(), 1, "unknown properties fail before the backend is asked")
}

func TestFailure_ExistenceErrorsAreFalse(t *testing.T) {
	backend := remoteMock()
	backend.IsFileFunc = func(path string) (bool, error) { return false, fmt.Errorf("boom") }
	backend.IsDirFunc = func(path string) (bool, error) { return false, fmt.Errorf("boom") }

	d := New(backend)
	assert.False(t, d.FileExists("/a.txt"))
	assert.False(t, d.FolderExists("/a/"))
	assert.True(t, d.FolderExists("/"))
	assert.Len(t, backend.IsDirCalls(), 1)
	assert.Len(t, backend.IsFileCalls(), 1)
}
