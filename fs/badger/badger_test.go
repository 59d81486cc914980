package badger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/fs/fstest"
)

func newMemory(t *testing.T) *Backend {
	t.Helper()
	b, err := New(Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBadgerConformance(t *testing.T) {
	fstest.TestSuite(t, func() core.Backend {
		return newMemory(t)
	})
}

func TestNew(t *testing.T) {
	t.Run("requires path", func(t *testing.T) {
		_, err := New(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path is required")
	})

	t.Run("persists across reopen", func(t *testing.T) {
		dir := t.TempDir()

		b, err := New(Config{Path: dir, Logger: zaptest.NewLogger(t)})
		require.NoError(t, err)
		require.NoError(t, b.Write("docs/a.txt", []byte("hello")))
		require.NoError(t, b.Close())

		b, err = New(Config{Path: dir})
		require.NoError(t, err)
		defer b.Close()

		data, err := b.Read("docs/a.txt")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
		assert.Equal(t, core.BackendTypeKV, b.Type())
	})
}

func TestRecordCodec(t *testing.T) {
	at := time.Unix(1700000000, 42)
	rec, err := decodeRecord(encodeRecord(kindFile, at, []byte("abc")))
	require.NoError(t, err)
	assert.Equal(t, kindFile, rec.kind)
	assert.True(t, at.Equal(rec.modTime))
	assert.Equal(t, []byte("abc"), rec.data)

	_, err = decodeRecord([]byte{kindFile})
	assert.Error(t, err)
	_, err = decodeRecord(encodeRecord('x', at, nil))
	assert.Error(t, err)
}

func TestTimestamps(t *testing.T) {
	b := newMemory(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	require.NoError(t, b.Write("a/b.txt", []byte("x")))

	e, err := b.Metadata("a/b.txt")
	require.NoError(t, err)
	assert.True(t, fixed.Equal(e.Timestamp))

	b.now = func() time.Time { return fixed.Add(time.Hour) }
	require.NoError(t, b.Rename("a", "c"))

	e, err = b.Metadata("c/b.txt")
	require.NoError(t, err)
	assert.True(t, fixed.Equal(e.Timestamp), "rename keeps modification time")
}

func TestTypeMismatches(t *testing.T) {
	b := newMemory(t)
	require.NoError(t, b.Write("f.txt", []byte("x")))
	require.NoError(t, b.CreateDir("d"))

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"write over dir", b.Write("d", []byte("x")), core.ErrIsDir},
		{"read dir", func() error { _, err := b.Read("d"); return err }(), core.ErrIsDir},
		{"delete dir", b.Delete("d"), core.ErrIsDir},
		{"rmdir file", b.DeleteDir("f.txt"), core.ErrNotDir},
		{"list file", func() error { _, err := b.List("f.txt"); return err }(), core.ErrNotDir},
		{"write below file", b.Write("f.txt/child", []byte("x")), core.ErrNotDir},
		{"mkdir over file", b.CreateDir("f.txt"), core.ErrExist},
		{"rename onto existing", b.Rename("d", "f.txt"), core.ErrExist},
		{"rmdir root", b.DeleteDir(""), core.ErrPermission},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("got error %v, want %v", tt.err, tt.want)
			}
		})
	}
}

func TestRenameIntoSelf(t *testing.T) {
	b := newMemory(t)
	require.NoError(t, b.Write("a/x.txt", []byte("x")))

	err := b.Rename("a", "a/b")
	require.Error(t, err)

	data, err := b.Read("a/x.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}

func TestListRecursive(t *testing.T) {
	b := newMemory(t)
	require.NoError(t, b.Write("r/a.txt", []byte("a")))
	require.NoError(t, b.Write("r/s/b.txt", []byte("b")))

	entries, err := b.ListRecursive("r")
	require.NoError(t, err)

	var got []string
	for _, e := range entries {
		got = append(got, e.Path)
	}
	assert.Equal(t, []string{"r/a.txt", "r/s", "r/s/b.txt"}, got)
}
