package fstest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// TestRead tests Exists, Metadata, IsDir, IsFile, Read and Size.
// Uses DefaultTestConfig().
func TestRead(t *testing.T, backend core.Backend) {
	TestReadWithConfig(t, backend, DefaultTestConfig())
}

// TestReadWithConfig tests read operations with behavior configuration.
func TestReadWithConfig(t *testing.T, backend core.Backend, config FSTestConfig) {
	testContent := []byte("test file content")

	if err := backend.CreateDir("testdir"); err != nil {
		t.Fatalf("CreateDir(testdir): setup failed: %v", err)
	}
	if err := backend.Write("testdir/testfile.txt", testContent); err != nil {
		t.Fatalf("Write(testdir/testfile.txt): setup failed: %v", err)
	}

	run(t, config, "Read", "ExistsFile", func(t *testing.T) {
		assertExists(t, backend, "testdir/testfile.txt", true)
	})
	run(t, config, "Read", "ExistsDir", func(t *testing.T) {
		assertExists(t, backend, "testdir", true)
	})
	run(t, config, "Read", "ExistsNotExist", func(t *testing.T) {
		assertExists(t, backend, "missing.txt", false)
		assertExists(t, backend, "testdir/missing.txt", false)
	})
	run(t, config, "Read", "ExistsRoot", func(t *testing.T) {
		assertExists(t, backend, "", true)
	})
	run(t, config, "Read", "MetadataFile", func(t *testing.T) {
		e, err := backend.Metadata("testdir/testfile.txt")
		if err != nil {
			t.Fatalf("Metadata(testdir/testfile.txt): got error %v, want nil", err)
		}
		if e.Type != core.EntryFile {
			t.Errorf("Metadata(testdir/testfile.txt): Type = %v, want file", e.Type)
		}
		if e.Path != "testdir/testfile.txt" {
			t.Errorf("Metadata(testdir/testfile.txt): Path = %q, want %q", e.Path, "testdir/testfile.txt")
		}
		if e.Size != int64(len(testContent)) {
			t.Errorf("Metadata(testdir/testfile.txt): Size = %d, want %d", e.Size, len(testContent))
		}
	})
	run(t, config, "Read", "MetadataDir", func(t *testing.T) {
		e, err := backend.Metadata("testdir")
		if err != nil {
			t.Fatalf("Metadata(testdir): got error %v, want nil", err)
		}
		if e.Type != core.EntryDir {
			t.Errorf("Metadata(testdir): Type = %v, want dir", e.Type)
		}
	})
	run(t, config, "Read", "MetadataNotExist", func(t *testing.T) {
		_, err := backend.Metadata("missing.txt")
		if !errors.Is(err, core.ErrNotExist) {
			t.Errorf("Metadata(missing.txt): got error %v, want ErrNotExist", err)
		}
	})
	run(t, config, "Read", "IsDirIsFile", func(t *testing.T) {
		checks := []struct {
			path         string
			dir, regular bool
		}{
			{"testdir", true, false},
			{"testdir/testfile.txt", false, true},
			{"missing", false, false},
		}
		for _, c := range checks {
			isDir, err := backend.IsDir(c.path)
			if err != nil || isDir != c.dir {
				t.Errorf("IsDir(%q) = %v, %v; want %v, nil", c.path, isDir, err, c.dir)
			}
			isFile, err := backend.IsFile(c.path)
			if err != nil || isFile != c.regular {
				t.Errorf("IsFile(%q) = %v, %v; want %v, nil", c.path, isFile, err, c.regular)
			}
		}
	})
	run(t, config, "Read", "Read", func(t *testing.T) {
		data, err := backend.Read("testdir/testfile.txt")
		if err != nil {
			t.Fatalf("Read(testdir/testfile.txt): got error %v, want nil", err)
		}
		if !bytes.Equal(data, testContent) {
			t.Errorf("Read(testdir/testfile.txt): got %q, want %q", data, testContent)
		}
	})
	run(t, config, "Read", "ReadNotExist", func(t *testing.T) {
		_, err := backend.Read("missing.txt")
		if !errors.Is(err, core.ErrNotExist) {
			t.Errorf("Read(missing.txt): got error %v, want ErrNotExist", err)
		}
	})
	run(t, config, "Read", "Size", func(t *testing.T) {
		size, err := backend.Size("testdir/testfile.txt")
		if err != nil {
			t.Fatalf("Size(testdir/testfile.txt): got error %v, want nil", err)
		}
		if size != int64(len(testContent)) {
			t.Errorf("Size(testdir/testfile.txt) = %d, want %d", size, len(testContent))
		}
	})
	run(t, config, "Read", "SizeNotExist", func(t *testing.T) {
		_, err := backend.Size("missing.txt")
		if !errors.Is(err, core.ErrNotExist) {
			t.Errorf("Size(missing.txt): got error %v, want ErrNotExist", err)
		}
	})
}

func assertExists(t *testing.T, backend core.Backend, p string, want bool) {
	t.Helper()
	got, err := backend.Exists(p)
	if err != nil {
		t.Fatalf("Exists(%q): got error %v, want nil", p, err)
	}
	if got != want {
		t.Errorf("Exists(%q) = %v, want %v", p, got, want)
	}
}
