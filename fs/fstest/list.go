package fstest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// TestList tests List and, when implemented, ListRecursive.
// Uses DefaultTestConfig().
func TestList(t *testing.T, backend core.Backend) {
	TestListWithConfig(t, backend, DefaultTestConfig())
}

// TestListWithConfig tests listing with behavior configuration.
func TestListWithConfig(t *testing.T, backend core.Backend, config FSTestConfig) {
	mustWrite(t, backend, "dir/b.txt", "bb")
	mustWrite(t, backend, "dir/a.txt", "a")
	mustWrite(t, backend, "dir/sub/c.txt", "ccc")
	if err := backend.CreateDir("dir/empty"); err != nil {
		t.Fatalf("CreateDir(dir/empty): setup failed: %v", err)
	}
	mustWrite(t, backend, "dirx/other.txt", "o")

	run(t, config, "List", "OneLevel", func(t *testing.T) {
		entries, err := backend.List("dir")
		if err != nil {
			t.Fatalf("List(dir): got error %v, want nil", err)
		}
		want := []string{"dir/a.txt", "dir/b.txt", "dir/empty", "dir/sub"}
		if got := paths(entries); !reflect.DeepEqual(got, want) {
			t.Errorf("List(dir) = %v, want %v", got, want)
		}
	})
	run(t, config, "List", "EntryTypes", func(t *testing.T) {
		entries, err := backend.List("dir")
		if err != nil {
			t.Fatalf("List(dir): got error %v, want nil", err)
		}
		for _, e := range entries {
			wantDir := e.Path == "dir/sub" || e.Path == "dir/empty"
			if e.IsDir() != wantDir {
				t.Errorf("List(dir): %q IsDir() = %v, want %v", e.Path, e.IsDir(), wantDir)
			}
			if e.Path == "dir/b.txt" && e.Size != 2 {
				t.Errorf("List(dir): %q Size = %d, want 2", e.Path, e.Size)
			}
		}
	})
	run(t, config, "List", "Root", func(t *testing.T) {
		entries, err := backend.List("")
		if err != nil {
			t.Fatalf("List(root): got error %v, want nil", err)
		}
		want := []string{"dir", "dirx"}
		if got := paths(entries); !reflect.DeepEqual(got, want) {
			t.Errorf("List(root) = %v, want %v", got, want)
		}
	})
	run(t, config, "List", "EmptyDir", func(t *testing.T) {
		entries, err := backend.List("dir/empty")
		if err != nil {
			t.Fatalf("List(dir/empty): got error %v, want nil", err)
		}
		if len(entries) != 0 {
			t.Errorf("List(dir/empty) = %v, want empty", paths(entries))
		}
	})
	run(t, config, "List", "NotExist", func(t *testing.T) {
		_, err := backend.List("nothing")
		if !errors.Is(err, core.ErrNotExist) {
			t.Errorf("List(nothing): got error %v, want ErrNotExist", err)
		}
	})
	run(t, config, "List", "Recursive", func(t *testing.T) {
		lister, ok := backend.(core.RecursiveLister)
		if !ok {
			t.Skip("Backend does not implement core.RecursiveLister")
			return
		}
		entries, err := lister.ListRecursive("dir")
		if err != nil {
			t.Fatalf("ListRecursive(dir): got error %v, want nil", err)
		}
		want := []string{"dir/a.txt", "dir/b.txt", "dir/empty", "dir/sub", "dir/sub/c.txt"}
		if got := paths(entries); !reflect.DeepEqual(got, want) {
			t.Errorf("ListRecursive(dir) = %v, want %v", got, want)
		}
	})
}

func paths(entries []core.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}
