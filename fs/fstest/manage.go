package fstest

import (
	"errors"
	"testing"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// TestManage tests Delete, DeleteDir and Rename.
// Uses DefaultTestConfig().
func TestManage(t *testing.T, backend core.Backend) {
	TestManageWithConfig(t, backend, DefaultTestConfig())
}

// TestManageWithConfig tests file management with behavior configuration.
func TestManageWithConfig(t *testing.T, backend core.Backend, config FSTestConfig) {
	run(t, config, "Manage", "DeleteFile", func(t *testing.T) {
		mustWrite(t, backend, "del/file.txt", "x")
		if err := backend.Delete("del/file.txt"); err != nil {
			t.Fatalf("Delete(del/file.txt): got error %v, want nil", err)
		}
		assertExists(t, backend, "del/file.txt", false)
	})
	run(t, config, "Manage", "DeleteKeepsParent", func(t *testing.T) {
		if config.VirtualDirectories {
			t.Skip("Skipping - directories exist only through their children")
			return
		}
		if err := backend.CreateDir("keep"); err != nil {
			t.Fatalf("CreateDir(keep): setup failed: %v", err)
		}
		mustWrite(t, backend, "keep/only.txt", "x")
		if err := backend.Delete("keep/only.txt"); err != nil {
			t.Fatalf("Delete(keep/only.txt): got error %v, want nil", err)
		}
		assertExists(t, backend, "keep", true)
	})
	run(t, config, "Manage", "DeleteNotExist", func(t *testing.T) {
		err := backend.Delete("never.txt")
		if !errors.Is(err, core.ErrNotExist) {
			t.Errorf("Delete(never.txt): got error %v, want ErrNotExist", err)
		}
	})
	run(t, config, "Manage", "DeleteDirRecursive", func(t *testing.T) {
		mustWrite(t, backend, "tree/a.txt", "a")
		mustWrite(t, backend, "tree/sub/b.txt", "b")
		if err := backend.CreateDir("tree/empty"); err != nil {
			t.Fatalf("CreateDir(tree/empty): setup failed: %v", err)
		}
		if err := backend.DeleteDir("tree"); err != nil {
			t.Fatalf("DeleteDir(tree): got error %v, want nil", err)
		}
		for _, p := range []string{"tree", "tree/a.txt", "tree/sub", "tree/sub/b.txt", "tree/empty"} {
			assertExists(t, backend, p, false)
		}
	})
	run(t, config, "Manage", "DeleteDirLeavesSiblings", func(t *testing.T) {
		mustWrite(t, backend, "pre/x.txt", "x")
		mustWrite(t, backend, "prefix/y.txt", "y")
		if err := backend.DeleteDir("pre"); err != nil {
			t.Fatalf("DeleteDir(pre): got error %v, want nil", err)
		}
		assertExists(t, backend, "prefix/y.txt", true)
	})
	run(t, config, "Manage", "DeleteDirNotExist", func(t *testing.T) {
		err := backend.DeleteDir("nodir")
		if !errors.Is(err, core.ErrNotExist) {
			t.Errorf("DeleteDir(nodir): got error %v, want ErrNotExist", err)
		}
	})
	run(t, config, "Manage", "RenameFile", func(t *testing.T) {
		mustWrite(t, backend, "old.txt", "content")
		if err := backend.Rename("old.txt", "moved/new.txt"); err != nil {
			t.Fatalf("Rename(old.txt, moved/new.txt): got error %v, want nil", err)
		}
		assertExists(t, backend, "old.txt", false)
		assertContent(t, backend, "moved/new.txt", "content")
	})
	run(t, config, "Manage", "RenameFileLeavesSiblings", func(t *testing.T) {
		mustWrite(t, backend, "s", "short")
		mustWrite(t, backend, "sibling", "long")
		if err := backend.Rename("s", "t"); err != nil {
			t.Fatalf("Rename(s, t): got error %v, want nil", err)
		}
		assertContent(t, backend, "t", "short")
		assertContent(t, backend, "sibling", "long")
	})
	run(t, config, "Manage", "RenameDirectory", func(t *testing.T) {
		mustWrite(t, backend, "src/a.txt", "a")
		mustWrite(t, backend, "src/nested/b.txt", "b")
		if err := backend.Rename("src", "dst"); err != nil {
			t.Fatalf("Rename(src, dst): got error %v, want nil", err)
		}
		assertExists(t, backend, "src", false)
		assertContent(t, backend, "dst/a.txt", "a")
		assertContent(t, backend, "dst/nested/b.txt", "b")
	})
	run(t, config, "Manage", "RenameNotExist", func(t *testing.T) {
		err := backend.Rename("ghost.txt", "other.txt")
		if !errors.Is(err, core.ErrNotExist) {
			t.Errorf("Rename(ghost.txt, other.txt): got error %v, want ErrNotExist", err)
		}
	})
}

func mustWrite(t *testing.T, backend core.Backend, p, content string) {
	t.Helper()
	if err := backend.Write(p, []byte(content)); err != nil {
		t.Fatalf("Write(%q): setup failed: %v", p, err)
	}
}

func assertContent(t *testing.T, backend core.Backend, p, want string) {
	t.Helper()
	got, err := backend.Read(p)
	if err != nil {
		t.Fatalf("Read(%q): got error %v, want nil", p, err)
	}
	if string(got) != want {
		t.Errorf("Read(%q) = %q, want %q", p, got, want)
	}
}
