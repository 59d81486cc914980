// Package objkey maps backend paths onto object-store keys.
//
// Files are stored under their path. Directories are stored as zero-byte
// marker objects whose key ends with "/", and also exist implicitly while
// any key lies below them. All keys live under an optional prefix.
package objkey

import (
	"path"
	"slices"
	"strings"
	"time"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// Normalize cleans a path and ensures forward slashes.
// It applies: backslashes → slashes, Clean, trim slashes.
// Returns "" for the root.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.Trim(p, "/")
}

// Layout builds keys below a fixed prefix.
type Layout struct {
	prefix string
}

// NewLayout returns a Layout for prefix. The prefix is normalized, so
// "/app/data/" and "app/data" are equivalent.
func NewLayout(prefix string) Layout {
	return Layout{prefix: Normalize(prefix)}
}

// Prefix returns the normalized prefix.
func (l Layout) Prefix() string {
	return l.prefix
}

// Key returns the object key of the file at path p.
func (l Layout) Key(p string) string {
	p = Normalize(p)
	switch {
	case l.prefix == "":
		return p
	case p == "":
		return l.prefix
	default:
		return l.prefix + "/" + p
	}
}

// DirKey returns the key of the directory marker for p, which is also the
// listing prefix for its children. The root maps to the prefix itself
// followed by "/", or "" without a prefix.
func (l Layout) DirKey(p string) string {
	k := l.Key(p)
	if k == "" {
		return ""
	}
	return k + "/"
}

// Rel converts a key below dirKey into a path relative to the directory.
// Directory markers and common prefixes lose their trailing slash.
func Rel(dirKey, key string) (rel string, dir bool) {
	rel = strings.TrimPrefix(key, dirKey)
	if strings.HasSuffix(rel, "/") {
		return strings.TrimSuffix(rel, "/"), true
	}
	return rel, false
}

// Object is the subset of object metadata the layout needs.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ChildEntries turns the result of a delimited listing of dir into sorted
// entries. Keys ending in "/" are directories.
func ChildEntries(dir, dirKey string, objects []Object) []core.Entry {
	seen := make(map[string]bool, len(objects))
	entries := make([]core.Entry, 0, len(objects))
	for _, o := range objects {
		rel, isDir := Rel(dirKey, o.Key)
		if rel == "" || seen[rel] {
			continue
		}
		seen[rel] = true

		e := core.Entry{Path: core.Join(dir, rel), Type: core.EntryFile, Size: o.Size, Timestamp: o.LastModified}
		if isDir {
			e = core.Entry{Path: core.Join(dir, rel), Type: core.EntryDir}
		}
		entries = append(entries, e)
	}
	sortEntries(entries)
	return entries
}

// TreeEntries turns the result of a recursive listing of dir into sorted
// entries. Directories implied by deeper keys are synthesized.
func TreeEntries(dir, dirKey string, objects []Object) []core.Entry {
	dirs := make(map[string]bool)
	var entries []core.Entry
	for _, o := range objects {
		rel, isDir := Rel(dirKey, o.Key)
		if rel == "" {
			continue
		}

		parts := strings.Split(rel, "/")
		depth := len(parts) - 1
		if isDir {
			depth = len(parts)
		}
		for i := 1; i <= depth; i++ {
			sub := strings.Join(parts[:i], "/")
			if !dirs[sub] {
				dirs[sub] = true
				entries = append(entries, core.Entry{Path: core.Join(dir, sub), Type: core.EntryDir})
			}
		}

		if !isDir {
			entries = append(entries, core.Entry{
				Path:      core.Join(dir, rel),
				Type:      core.EntryFile,
				Size:      o.Size,
				Timestamp: o.LastModified,
			})
		}
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []core.Entry) {
	slices.SortFunc(entries, func(a, b core.Entry) int { return strings.Compare(a.Path, b.Path) })
}

// MoveTarget returns the key oldKey moves to when the tree at oldDirKey is
// renamed to newDirKey.
func MoveTarget(oldDirKey, newDirKey, oldKey string) string {
	return newDirKey + strings.TrimPrefix(oldKey, oldDirKey)
}
