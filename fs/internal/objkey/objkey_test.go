package objkey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{".", ""},
		{"/", ""},
		{"a", "a"},
		{"/a/b/", "a/b"},
		{`a\b`, "a/b"},
		{"a/../b/./c", "b/c"},
		{"../../x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestLayout(t *testing.T) {
	plain := NewLayout("")
	assert.Equal(t, "a/b.txt", plain.Key("a/b.txt"))
	assert.Equal(t, "", plain.Key(""))
	assert.Equal(t, "a/", plain.DirKey("a"))
	assert.Equal(t, "", plain.DirKey(""))

	prefixed := NewLayout("/tenant/files/")
	assert.Equal(t, "tenant/files", prefixed.Prefix())
	assert.Equal(t, "tenant/files/a.txt", prefixed.Key("/a.txt"))
	assert.Equal(t, "tenant/files", prefixed.Key(""))
	assert.Equal(t, "tenant/files/", prefixed.DirKey(""))
	assert.Equal(t, "tenant/files/a/", prefixed.DirKey("a/"))
}

func TestRel(t *testing.T) {
	rel, dir := Rel("p/", "p/file.txt")
	assert.Equal(t, "file.txt", rel)
	assert.False(t, dir)

	rel, dir = Rel("p/", "p/sub/")
	assert.Equal(t, "sub", rel)
	assert.True(t, dir)

	rel, _ = Rel("p/", "p/")
	assert.Equal(t, "", rel)
}

func TestChildEntries(t *testing.T) {
	now := time.Unix(1700000000, 0)
	objects := []Object{
		{Key: "root/docs/"},
		{Key: "root/docs/b.txt", Size: 2, LastModified: now},
		{Key: "root/docs/a.txt", Size: 1, LastModified: now},
		{Key: "root/docs/sub/"},
	}

	entries := ChildEntries("docs", "root/docs/", objects)
	assert.Equal(t, []core.Entry{
		{Path: "docs/a.txt", Type: core.EntryFile, Size: 1, Timestamp: now},
		{Path: "docs/b.txt", Type: core.EntryFile, Size: 2, Timestamp: now},
		{Path: "docs/sub", Type: core.EntryDir},
	}, entries)
}

func TestTreeEntries(t *testing.T) {
	objects := []Object{
		{Key: "d/"},
		{Key: "d/a.txt", Size: 1},
		{Key: "d/x/y/z.txt", Size: 3},
		{Key: "d/empty/"},
	}

	entries := TreeEntries("d", "d/", objects)

	var got []string
	for _, e := range entries {
		got = append(got, e.Path+":"+e.Type.String())
	}
	assert.Equal(t, []string{
		"d/a.txt:file",
		"d/empty:dir",
		"d/x:dir",
		"d/x/y:dir",
		"d/x/y/z.txt:file",
	}, got)
}

func TestMoveTarget(t *testing.T) {
	assert.Equal(t, "new/sub/f.txt", MoveTarget("old/", "new/", "old/sub/f.txt"))
	assert.Equal(t, "new/", MoveTarget("old/", "new/", "old/"))
}
