package core_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsdriver/fs/billy"
	"github.com/jmgilman/go/fsdriver/fs/core"
)

func TestBackendType_String(t *testing.T) {
	tests := []struct {
		typ  core.BackendType
		want string
	}{
		{core.BackendTypeUnknown, "unknown"},
		{core.BackendTypeLocal, "local"},
		{core.BackendTypeMemory, "memory"},
		{core.BackendTypeRemote, "remote"},
		{core.BackendTypeKV, "kv"},
		{core.BackendType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestEntryType_String(t *testing.T) {
	assert.Equal(t, "file", core.EntryFile.String())
	assert.Equal(t, "dir", core.EntryDir.String())
	assert.True(t, core.Entry{Type: core.EntryDir}.IsDir())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", core.Join())
	assert.Equal(t, "", core.Join("", ""))
	assert.Equal(t, "a/b", core.Join("a", "b"))
	assert.Equal(t, "a/b", core.Join("/a/", "/b/"))
	assert.Equal(t, "b", core.Join("", "b"))
}

func TestCopyFile(t *testing.T) {
	b := billy.NewMemory()
	require.NoError(t, b.Write("src.txt", []byte("data")))

	require.NoError(t, core.CopyFile(b, "src.txt", "dst/copy.txt"))

	data, err := b.Read("dst/copy.txt")
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestCopyTree(t *testing.T) {
	b := billy.NewMemory()
	require.NoError(t, b.Write("src/a.txt", []byte("a")))
	require.NoError(t, b.Write("src/sub/b.txt", []byte("b")))
	require.NoError(t, b.CreateDir("src/empty"))

	require.NoError(t, core.CopyTree(b, "src", "dst"))

	for _, p := range []string{"dst/a.txt", "dst/sub/b.txt"} {
		ok, err := b.IsFile(p)
		require.NoError(t, err)
		assert.True(t, ok, p)
	}
	ok, err := b.IsDir("dst/empty")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCopyFromFS(t *testing.T) {
	src := fstest.MapFS{
		"seed/readme.txt":      {Data: []byte("hello")},
		"seed/images/logo.svg": {Data: []byte("<svg/>")},
		"other/ignored.txt":    {Data: []byte("no")},
	}
	b := billy.NewMemory()

	require.NoError(t, core.CopyFromFS(src, b, "seed", "user_upload"))

	data, err := b.Read("user_upload/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	ok, err := b.Exists("user_upload/images/logo.svg")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Exists("user_upload/ignored.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}

// listOnly hides every optional capability of the wrapped backend.
type listOnly struct {
	core.Backend
}

func TestWalk(t *testing.T) {
	b := billy.NewMemory()
	require.NoError(t, b.Write("w/a.txt", []byte("a")))
	require.NoError(t, b.Write("w/s/b.txt", []byte("b")))
	require.NoError(t, b.CreateDir("w/s/empty"))

	want := []string{"w/a.txt", "w/s", "w/s/b.txt", "w/s/empty"}
	for name, backend := range map[string]core.Backend{"native": b, "fallback": listOnly{b}} {
		t.Run(name, func(t *testing.T) {
			entries, err := core.Walk(backend, "w")
			require.NoError(t, err)

			var got []string
			for _, e := range entries {
				got = append(got, e.Path)
			}
			assert.Equal(t, want, got)
		})
	}

	_, err := core.Walk(listOnly{b}, "missing")
	assert.ErrorIs(t, err, core.ErrNotExist)
}
