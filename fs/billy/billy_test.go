package billy

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/fs/fstest"
)

func TestMemoryBackend_Suite(t *testing.T) {
	fstest.TestSuite(t, func() core.Backend {
		return NewMemory()
	})
}

func TestLocalBackend_Suite(t *testing.T) {
	fstest.TestSuite(t, func() core.Backend {
		b, err := NewLocal(t.TempDir())
		require.NoError(t, err)
		return b
	})
}

func TestNewLocal_EmptyRoot(t *testing.T) {
	_, err := NewLocal("")
	require.Error(t, err)
}

func TestNewLocal_CreatesRoot(t *testing.T) {
	root := t.TempDir() + "/nested/storage"
	b, err := NewLocal(root)
	require.NoError(t, err)

	ok, err := b.Exists("")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBackend_Type(t *testing.T) {
	local, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, core.BackendTypeLocal, local.Type())
	assert.Equal(t, core.BackendTypeMemory, NewMemory().Type())
}

func TestBackend_Unwrap(t *testing.T) {
	b := NewMemory()
	require.NoError(t, b.Write("file.txt", []byte("data")))

	_, err := b.Unwrap().Stat("/file.txt")
	require.NoError(t, err)
}

func TestWrap(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.CreateDir("jail"))

	sub, err := mem.Unwrap().Chroot("/jail")
	require.NoError(t, err)

	b := Wrap(sub, core.BackendTypeLocal)
	require.NoError(t, b.Write("inside.txt", []byte("x")))

	ok, err := mem.Exists("jail/inside.txt")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryBackend_StableTimestamps(t *testing.T) {
	b := NewMemory()
	require.NoError(t, b.Write("a.txt", []byte("x")))

	first, err := b.Metadata("a.txt")
	require.NoError(t, err)
	require.False(t, first.Timestamp.IsZero())

	time.Sleep(10 * time.Millisecond)
	second, err := b.Metadata("a.txt")
	require.NoError(t, err)
	assert.Equal(t, first.Timestamp, second.Timestamp)
}

func TestMemoryBackend_RenameKeepsTimestamp(t *testing.T) {
	b := NewMemory()
	require.NoError(t, b.Write("dir/a.txt", []byte("x")))
	before, err := b.Metadata("dir/a.txt")
	require.NoError(t, err)

	require.NoError(t, b.Rename("dir", "moved"))

	after, err := b.Metadata("moved/a.txt")
	require.NoError(t, err)
	assert.Equal(t, before.Timestamp, after.Timestamp)
}

func TestBackend_PathNormalization(t *testing.T) {
	b := NewMemory()
	require.NoError(t, b.Write("/a//b/./c.txt", []byte("x")))

	data, err := b.Read("a/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	e, err := b.Metadata("a/b/c.txt/")
	require.NoError(t, err)
	assert.Equal(t, "a/b/c.txt", e.Path)
}

func TestBackend_TypeMismatch(t *testing.T) {
	b := NewMemory()
	require.NoError(t, b.Write("file.txt", []byte("x")))
	require.NoError(t, b.CreateDir("dir"))

	_, err := b.Read("dir")
	assert.True(t, errors.Is(err, core.ErrIsDir))

	err = b.Delete("dir")
	assert.True(t, errors.Is(err, core.ErrIsDir))

	err = b.DeleteDir("file.txt")
	assert.True(t, errors.Is(err, core.ErrNotDir))

	_, err = b.List("file.txt")
	assert.True(t, errors.Is(err, core.ErrNotDir))

	err = b.Write("dir", []byte("x"))
	assert.True(t, errors.Is(err, core.ErrIsDir))
}

func TestBackend_RenameRules(t *testing.T) {
	b := NewMemory()
	require.NoError(t, b.Write("a/x.txt", []byte("x")))
	require.NoError(t, b.Write("b.txt", []byte("b")))

	err := b.Rename("b.txt", "a/x.txt")
	assert.True(t, errors.Is(err, core.ErrExist))

	err = b.Rename("a", "a/inner")
	assert.Error(t, err)

	require.NoError(t, b.Rename("b.txt", "b.txt"))
}

func TestBackend_DeleteRoot(t *testing.T) {
	err := NewMemory().DeleteDir("")
	assert.True(t, errors.Is(err, core.ErrPermission))
}

func TestBackend_MimeType(t *testing.T) {
	b := NewMemory()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, b.Write("image.bin", png))

	mtype, err := b.MimeType("image.bin")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mtype)

	_, err = b.MimeType("missing")
	assert.True(t, errors.Is(err, core.ErrNotExist))
}
