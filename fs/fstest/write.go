package fstest

import (
	"bytes"
	"testing"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// TestWrite tests Write and CreateDir.
// Uses DefaultTestConfig().
func TestWrite(t *testing.T, backend core.Backend) {
	TestWriteWithConfig(t, backend, DefaultTestConfig())
}

// TestWriteWithConfig tests write operations with behavior configuration.
func TestWriteWithConfig(t *testing.T, backend core.Backend, config FSTestConfig) {
	run(t, config, "Write", "WriteNew", func(t *testing.T) {
		writeAndVerify(t, backend, "new.txt", []byte("hello"))
	})
	run(t, config, "Write", "Overwrite", func(t *testing.T) {
		writeAndVerify(t, backend, "over.txt", []byte("first version"))
		writeAndVerify(t, backend, "over.txt", []byte("second"))
	})
	run(t, config, "Write", "EmptyFile", func(t *testing.T) {
		writeAndVerify(t, backend, "empty.txt", []byte{})
		size, err := backend.Size("empty.txt")
		if err != nil || size != 0 {
			t.Errorf("Size(empty.txt) = %d, %v; want 0, nil", size, err)
		}
	})
	run(t, config, "Write", "ImplicitParents", func(t *testing.T) {
		writeAndVerify(t, backend, "a/b/c/deep.txt", []byte("deep"))
		for _, dir := range []string{"a", "a/b", "a/b/c"} {
			isDir, err := backend.IsDir(dir)
			if err != nil || !isDir {
				t.Errorf("IsDir(%q) after nested Write = %v, %v; want true, nil", dir, isDir, err)
			}
		}
	})
	run(t, config, "Write", "CreateDir", func(t *testing.T) {
		if err := backend.CreateDir("made"); err != nil {
			t.Fatalf("CreateDir(made): got error %v, want nil", err)
		}
		isDir, err := backend.IsDir("made")
		if err != nil || !isDir {
			t.Errorf("IsDir(made) = %v, %v; want true, nil", isDir, err)
		}
	})
	run(t, config, "Write", "CreateDirNested", func(t *testing.T) {
		if err := backend.CreateDir("x/y/z"); err != nil {
			t.Fatalf("CreateDir(x/y/z): got error %v, want nil", err)
		}
		for _, dir := range []string{"x", "x/y", "x/y/z"} {
			isDir, err := backend.IsDir(dir)
			if err != nil || !isDir {
				t.Errorf("IsDir(%q) = %v, %v; want true, nil", dir, isDir, err)
			}
		}
	})
	run(t, config, "Write", "CreateDirIdempotent", func(t *testing.T) {
		if err := backend.CreateDir("twice"); err != nil {
			t.Fatalf("CreateDir(twice): got error %v, want nil", err)
		}
		if err := backend.Write("twice/keep.txt", []byte("keep")); err != nil {
			t.Fatalf("Write(twice/keep.txt): setup failed: %v", err)
		}
		if err := backend.CreateDir("twice"); err != nil {
			t.Errorf("CreateDir(twice) second call: got error %v, want nil", err)
		}
		assertExists(t, backend, "twice/keep.txt", true)
	})
}

func writeAndVerify(t *testing.T, backend core.Backend, p string, data []byte) {
	t.Helper()
	if err := backend.Write(p, data); err != nil {
		t.Fatalf("Write(%q): got error %v, want nil", p, err)
	}
	got, err := backend.Read(p)
	if err != nil {
		t.Fatalf("Read(%q) after Write: got error %v, want nil", p, err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Read(%q) after Write: got %q, want %q", p, got, data)
	}
}
